package audio

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
)

// BeepClock adapts a decoded audio stream to the runner's Clock. Play and
// Seek are best effort, the runner falls back to its wall clock when the
// stream misbehaves.
type BeepClock struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	started  bool
}

func Open(file string) (*BeepClock, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch path.Ext(file) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported audio format: %v", path.Ext(file))
	}
	if nil != err {
		return nil, err
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/30)); nil != err {
		streamer.Close()
		return nil, err
	}

	return &BeepClock{
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer},
	}, nil
}

func (c *BeepClock) Now() (time.Duration, bool) {
	if !c.started {
		return 0, false
	}
	speaker.Lock()
	pos := c.streamer.Position()
	speaker.Unlock()
	return c.format.SampleRate.D(pos), true
}

func (c *BeepClock) Play() error {
	if c.started {
		speaker.Lock()
		c.ctrl.Paused = false
		speaker.Unlock()
		return nil
	}
	c.started = true
	speaker.Play(c.ctrl)
	return nil
}

func (c *BeepClock) Pause() {
	speaker.Lock()
	c.ctrl.Paused = true
	speaker.Unlock()
}

func (c *BeepClock) Paused() bool {
	speaker.Lock()
	paused := c.ctrl.Paused
	speaker.Unlock()
	return paused
}

func (c *BeepClock) Seek(t time.Duration) error {
	speaker.Lock()
	defer speaker.Unlock()
	return c.streamer.Seek(c.format.SampleRate.N(t))
}

func (c *BeepClock) Close() error {
	return c.streamer.Close()
}
