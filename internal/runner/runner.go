package runner

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"git.lost.host/meutraa/beatrun/internal/course"
	"git.lost.host/meutraa/beatrun/internal/world"
)

type State uint8

const (
	StateIdle State = iota
	StateReady
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	}
	return "idle"
}

const (
	// Audio readings this far behind the previous one rebaseline the
	// wall clock instead of rewinding the avatar
	rebaselineEpsilon = time.Millisecond

	// Settle time after the last note before the run finishes
	endPadding = 2500 * time.Millisecond

	// Half-width of the jump arc around a jump note
	jumpSmoothing = 350 * time.Millisecond

	DefaultHitWindow = 200 * time.Millisecond
)

// Runner owns an applied course and keeps the avatar synchronized to the
// audio clock. All methods are driven from a single frame loop.
type Runner struct {
	grid   world.Grid
	avatar Avatar
	clock  Clock

	course   *course.Course
	state    State
	wallBase time.Time
	last     time.Duration

	finishFns []func()
}

func New(grid world.Grid, avatar Avatar) *Runner {
	return &Runner{grid: grid, avatar: avatar}
}

func (r *Runner) SetClock(c Clock) {
	r.clock = c
}

func (r *Runner) State() State {
	return r.state
}

func (r *Runner) Course() *course.Course {
	return r.course
}

// CurrentTime is the effective playback time of the last Update. It never
// regresses by more than the rebaseline epsilon within one run.
func (r *Runner) CurrentTime() time.Duration {
	return r.last
}

// OnFinish registers a callback fired exactly once per run, in
// registration order.
func (r *Runner) OnFinish(fn func()) {
	r.finishFns = append(r.finishFns, fn)
}

// ApplyCourse reverts any staged course and stages the new one. Playback
// does not start.
func (r *Runner) ApplyCourse(c *course.Course) {
	r.ClearCourse()
	r.course = c
	r.grid.WriteCells(c.Writes)
	r.state = StateReady
}

// ClearCourse reverts the staged writes and stops playback. Safe to call
// at any time, clearing twice is a no-op.
func (r *Runner) ClearCourse() {
	if r.state == StateRunning && nil != r.clock && !r.clock.Paused() {
		r.clock.Pause()
	}
	if nil != r.course {
		clear := r.grid.ClearMaterial()
		writes := make([]world.CellWrite, len(r.course.Writes))
		for i, w := range r.course.Writes {
			writes[i] = world.CellWrite{Cell: w.Cell, Material: clear}
		}
		r.grid.WriteCells(writes)
		r.course = nil
	}
	r.state = StateIdle
}

// Start begins playback from time zero. Returns false without a staged
// course or an attached clock.
func (r *Runner) Start() bool {
	if nil == r.course || nil == r.clock || r.state != StateReady {
		return false
	}

	r.last = 0
	r.positionAvatar(0)

	if err := r.clock.Seek(0); nil != err {
		log.Debug().Err(err).Msg("audio seek failed, continuing")
	}
	if err := r.clock.Play(); nil != err {
		// A rejected play does not abort the run, timing falls back
		// to the wall clock
		log.Debug().Err(err).Msg("audio play failed, using wall clock")
	}

	r.wallBase = time.Now()
	r.state = StateRunning
	return true
}

func (r *Runner) Stop() {
	if r.state != StateRunning {
		return
	}
	if nil != r.clock && !r.clock.Paused() {
		r.clock.Pause()
	}
	if nil != r.course {
		r.state = StateReady
	} else {
		r.state = StateIdle
	}
}

// Update advances playback by one frame. No-op unless running.
func (r *Runner) Update() {
	if r.state != StateRunning {
		return
	}

	t, ok := r.clock.Now()
	if !ok {
		t = time.Since(r.wallBase)
	}
	if t < r.last-rebaselineEpsilon {
		// Seek-back or driver jitter, hold position and realign the
		// wall-clock fallback
		r.wallBase = time.Now().Add(-r.last)
		t = r.last
	}
	r.last = t

	end := r.course.Duration + endPadding
	if t < 0 {
		t = 0
	} else if t > end {
		t = end
	}

	r.positionAvatar(t)

	if t >= end {
		r.finish()
	}
}

func (r *Runner) finish() {
	r.state = StateFinished
	for _, fn := range r.finishFns {
		fn()
	}
}

// ActivePlacements returns the placements whose note time lies within
// window of the current playback time.
func (r *Runner) ActivePlacements(window time.Duration) []*course.Placement {
	if nil == r.course {
		return nil
	}
	var active []*course.Placement
	for _, p := range r.course.Placements {
		if p.Note.Time > r.last+window {
			break
		}
		if p.Note.Time < r.last-window {
			continue
		}
		active = append(active, p)
	}
	return active
}

func (r *Runner) positionAvatar(t time.Duration) {
	c := r.course
	z := c.Origin.Z + t.Seconds()*c.Speed
	feet := c.BaseFeetY

	if c.Mode == course.ModePlatform {
		// Every nearby jump note contributes a sinusoidal arc, the
		// highest contribution wins
		for _, p := range c.Placements {
			if p.Note.Time > t+jumpSmoothing {
				break
			}
			if p.Behavior != course.BehaviorJump {
				continue
			}
			dt := t - p.Note.Time
			if dt < 0 {
				dt = -dt
			}
			if dt >= jumpSmoothing {
				continue
			}
			frac := 1 - dt.Seconds()/jumpSmoothing.Seconds()
			y := c.BaseFeetY + math.Sin(math.Pi*frac)*p.JumpHeight
			if y > feet {
				feet = y
			}
		}
	}

	center := feet + r.avatar.Height()/2
	r.avatar.SetPosition(c.Origin.X, center, z)
	r.avatar.LookAt(c.Origin.X, center, z+1)
	r.avatar.ZeroMotion()
}
