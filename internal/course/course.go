package course

import (
	"time"

	"git.lost.host/meutraa/beatrun/internal/game"
	"git.lost.host/meutraa/beatrun/internal/world"
)

type Mode uint8

const (
	ModePlatform Mode = iota
	ModeRail
)

func (m Mode) String() string {
	if m == ModeRail {
		return "rail"
	}
	return "platform"
}

type Behavior uint8

const (
	BehaviorJump Behavior = iota
	BehaviorRun
	BehaviorRailLeft
	BehaviorRailRight
)

// Placement is the spatial realization of one note.
type Placement struct {
	Index int // Matches Note.Index in the chart
	Note  *game.Note
	Lane  int

	LaneX        float64
	StartZ, EndZ float64
	ContactY     float64 // Height the avatar's feet align to
	JumpHeight   float64 // 0 unless Behavior is BehaviorJump
	Behavior     Behavior

	// Representative cell, cleared when the note is resolved
	Cell world.Cell
}

// Course is a built, immutable spatial realization of a chart.
type Course struct {
	Mode        Mode
	Origin      world.Vec3
	Base        world.Cell
	Speed       float64 // World units per second
	LaneSpacing float64

	// BaseFeetY is the avatar's resting feet height while riding the course.
	BaseFeetY float64

	Placements []*Placement // Ascending by note time
	Writes     []world.CellWrite
	Duration   time.Duration
}

// dedupWrites collapses writes targeting the same cell, last write wins.
// Clearing assumes exactly one entry per coordinate.
func dedupWrites(in []world.CellWrite) []world.CellWrite {
	index := make(map[world.Cell]int, len(in))
	out := make([]world.CellWrite, 0, len(in))
	for _, w := range in {
		if i, ok := index[w.Cell]; ok {
			out[i].Material = w.Material
			continue
		}
		index[w.Cell] = len(out)
		out = append(out, w)
	}
	return out
}
