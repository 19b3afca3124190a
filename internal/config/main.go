package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory   = kingpin.Arg("directory", "Song/chart directory").Required().ExistingDir()
	Mode        = kingpin.Flag("mode", "Generation mode (platform or rail)").Default("platform").Short('m').Enum("platform", "rail")
	Speed       = kingpin.Flag("speed", "Forward speed in world units per second").Default("6").Short('s').Float64()
	LaneSpacing = kingpin.Flag("spacing", "Lateral rail offset").Default("2").Float64()
	JumpHeight  = kingpin.Flag("jump-height", "Jump arc peak height").Default("1.2").Float64()
	HitWindow   = kingpin.Flag("window", "Hit window").Default("200ms").Short('w').Duration()
	FramePeriod = kingpin.Flag("frame-period", "Frame loop period").Default("16ms").Short('p').Duration()
	Keys        = kingpin.Flag("keys", "Left/right action keys").Default("xm").Short('k').String()
	Verbose     = kingpin.Flag("verbose", "Debug logging").Short('v').Bool()
)

func init() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
