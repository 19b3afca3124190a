package score

import (
	"time"

	"git.lost.host/meutraa/beatrun/internal/course"
	"git.lost.host/meutraa/beatrun/internal/runner"
	"git.lost.host/meutraa/beatrun/internal/world"
)

// RailScorer resolves left/right actions against a rail course in real
// time. It is the sole owner of the hit/missed sets and must only be
// driven from the frame loop that owns the runner.
type RailScorer struct {
	runner *runner.Runner
	grid   world.Grid
	window time.Duration

	hitNotes    map[int]struct{}
	missedNotes map[int]struct{}
	combo       int
	bestCombo   int

	// Monotonic sweep pointer into the placement sequence, only
	// advances within one run
	next int
}

func NewRailScorer(r *runner.Runner, grid world.Grid) *RailScorer {
	s := &RailScorer{
		runner: r,
		grid:   grid,
		window: runner.DefaultHitWindow,
	}
	s.Reset()
	return s
}

// SetWindow overrides the default hit window. Non-positive values are
// ignored.
func (s *RailScorer) SetWindow(w time.Duration) {
	if w > 0 {
		s.window = w
	}
}

// Reset drops all resolution state. Call when a course is rebuilt or a
// run restarts.
func (s *RailScorer) Reset() {
	s.hitNotes = map[int]struct{}{}
	s.missedNotes = map[int]struct{}{}
	s.combo = 0
	s.bestCombo = 0
	s.next = 0
}

func (s *RailScorer) Combo() int     { return s.combo }
func (s *RailScorer) BestCombo() int { return s.bestCombo }
func (s *RailScorer) HitCount() int  { return len(s.hitNotes) }
func (s *RailScorer) MissCount() int { return len(s.missedNotes) }

func (s *RailScorer) IsHit(index int) bool {
	_, ok := s.hitNotes[index]
	return ok
}

func (s *RailScorer) IsMissed(index int) bool {
	_, ok := s.missedNotes[index]
	return ok
}

func (s *RailScorer) HitLeft() bool {
	return s.act(course.BehaviorRailLeft)
}

func (s *RailScorer) HitRight() bool {
	return s.act(course.BehaviorRailRight)
}

// act marks the nearest unresolved note on the requested side as hit.
// An action that matches nothing is a whiff and resets the combo.
func (s *RailScorer) act(side course.Behavior) bool {
	c := s.runner.Course()
	if s.runner.State() != runner.StateRunning || nil == c || c.Mode != course.ModeRail {
		return false
	}

	cur := s.runner.CurrentTime()
	var closest *course.Placement
	var closestD time.Duration
	for _, p := range s.runner.ActivePlacements(s.window) {
		if p.Behavior != side || s.resolved(p.Index) {
			continue
		}
		d := p.Note.Time - cur
		if d < 0 {
			d = -d
		}
		// Strict less-than, the first of two equidistant notes wins
		if nil == closest || d < closestD {
			closest = p
			closestD = d
		}
	}

	if nil == closest {
		s.combo = 0
		return false
	}

	s.hitNotes[closest.Index] = struct{}{}
	s.combo++
	if s.combo > s.bestCombo {
		s.bestCombo = s.combo
	}
	s.clearCell(closest)
	s.advance(c)
	return true
}

// ResolveMisses sweeps the pointer past every note whose hit window has
// elapsed, marking each missed. It stops at the first note that is still
// actionable. Invoke once per tick after the runner update.
func (s *RailScorer) ResolveMisses() {
	c := s.runner.Course()
	if s.runner.State() != runner.StateRunning || nil == c || c.Mode != course.ModeRail {
		return
	}

	cur := s.runner.CurrentTime()
	for s.next < len(c.Placements) {
		p := c.Placements[s.next]
		if !actionable(p) || s.resolved(p.Index) {
			s.next++
			continue
		}
		if p.Note.Time+s.window >= cur {
			break
		}
		s.missedNotes[p.Index] = struct{}{}
		s.combo = 0
		s.clearCell(p)
		s.next++
	}
}

func (s *RailScorer) advance(c *course.Course) {
	for s.next < len(c.Placements) {
		p := c.Placements[s.next]
		if actionable(p) && !s.resolved(p.Index) {
			break
		}
		s.next++
	}
}

func (s *RailScorer) resolved(index int) bool {
	return s.IsHit(index) || s.IsMissed(index)
}

func (s *RailScorer) clearCell(p *course.Placement) {
	s.grid.WriteCells([]world.CellWrite{
		{Cell: p.Cell, Material: s.grid.ClearMaterial()},
	})
}

func actionable(p *course.Placement) bool {
	return p.Behavior == course.BehaviorRailLeft || p.Behavior == course.BehaviorRailRight
}
