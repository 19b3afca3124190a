package course

import (
	"errors"
	"fmt"
	"math"

	"git.lost.host/meutraa/beatrun/internal/game"
	"git.lost.host/meutraa/beatrun/internal/world"
)

var ErrMissingMaterial = errors.New("material not in registry")

// Params are the generation options. Zero values fall back to defaults,
// the thresholds are empirically tuned and deliberately left adjustable.
type Params struct {
	Origin      world.Vec3
	Speed       float64 // World units per second, default 6
	LaneSpacing float64 // Lateral rail offset, default 2
	JumpHeight  float64 // Jump arc peak, default 1.2

	GapThreshold float64 // Longitudinal gap that triggers filling, default 1.2
	EndMargin    float64 // Extra rail track past the last note, default 8

	PlatformMaterial  string // default "platform"
	MarkerMaterial    string // default "marker"
	LeftRailMaterial  string // default "rail-left"
	RightRailMaterial string // default "rail-right"
	TrackMaterial     string // default "track"
}

func (p Params) withDefaults() Params {
	if p.Speed == 0 {
		p.Speed = 6
	}
	if p.LaneSpacing == 0 {
		p.LaneSpacing = 2
	}
	if p.JumpHeight == 0 {
		p.JumpHeight = 1.2
	}
	if p.GapThreshold == 0 {
		p.GapThreshold = 1.2
	}
	if p.EndMargin == 0 {
		p.EndMargin = 8
	}
	if p.PlatformMaterial == "" {
		p.PlatformMaterial = "platform"
	}
	if p.MarkerMaterial == "" {
		p.MarkerMaterial = "marker"
	}
	if p.LeftRailMaterial == "" {
		p.LeftRailMaterial = "rail-left"
	}
	if p.RightRailMaterial == "" {
		p.RightRailMaterial = "rail-right"
	}
	if p.TrackMaterial == "" {
		p.TrackMaterial = "track"
	}
	return p
}

// Builder maps charts to courses. Material ids are resolved once at
// construction, building is pure after that.
type Builder struct {
	params Params

	platform  int
	marker    int
	leftRail  int
	rightRail int
	track     int
}

func NewBuilder(grid world.Grid, params Params) (*Builder, error) {
	b := &Builder{params: params.withDefaults()}

	for _, m := range []struct {
		name string
		id   *int
	}{
		{b.params.PlatformMaterial, &b.platform},
		{b.params.MarkerMaterial, &b.marker},
		{b.params.LeftRailMaterial, &b.leftRail},
		{b.params.RightRailMaterial, &b.rightRail},
		{b.params.TrackMaterial, &b.track},
	} {
		id, ok := grid.ResolveMaterial(m.name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingMaterial, m.name)
		}
		*m.id = id
	}

	return b, nil
}

// cellCoord centers a unit-width cell under a continuous coordinate,
// rounding x - 0.5 half up.
func cellCoord(x float64) int {
	return int(math.Floor(x))
}

func (b *Builder) Build(chart *game.Chart, mode Mode) *Course {
	p := b.params
	c := &Course{
		Mode:        mode,
		Origin:      p.Origin,
		Base:        world.Cell{X: cellCoord(p.Origin.X), Y: cellCoord(p.Origin.Y), Z: cellCoord(p.Origin.Z)},
		Speed:       p.Speed,
		LaneSpacing: p.LaneSpacing,
		Duration:    chart.Duration(),
	}

	if mode == ModeRail {
		b.buildRail(chart, c)
	} else {
		b.buildPlatform(chart, c)
	}

	c.Writes = dedupWrites(c.Writes)
	return c
}

func (b *Builder) buildPlatform(chart *game.Chart, c *Course) {
	p := b.params
	baseY := c.Base.Y
	cx := c.Base.X
	c.BaseFeetY = float64(baseY) + 1

	prevEnd := math.NaN()
	for _, n := range chart.Notes {
		startZ := p.Origin.Z + n.Time.Seconds()*p.Speed
		endZ := p.Origin.Z + n.End.Seconds()*p.Speed

		if !math.IsNaN(prevEnd) {
			b.fillGap(c, cx, baseY, prevEnd, startZ)
		}
		prevEnd = endZ

		pl := &Placement{
			Index:  n.Index,
			Note:   n,
			Lane:   n.Lane,
			LaneX:  p.Origin.X,
			StartZ: startZ,
			EndZ:   endZ,
		}

		if n.Kind == game.KindShort {
			cz := cellCoord(startZ)
			c.Writes = append(c.Writes,
				world.CellWrite{Cell: world.Cell{X: cx, Y: baseY, Z: cz}, Material: b.platform},
				world.CellWrite{Cell: world.Cell{X: cx, Y: baseY + 1, Z: cz}, Material: b.marker},
			)
			pl.ContactY = float64(baseY) + 1
			pl.JumpHeight = p.JumpHeight
			pl.Behavior = BehaviorJump
			pl.Cell = world.Cell{X: cx, Y: baseY + 1, Z: cz}
		} else {
			first := cellCoord(startZ)
			for cz := first; cz <= cellCoord(endZ); cz++ {
				c.Writes = append(c.Writes,
					world.CellWrite{Cell: world.Cell{X: cx, Y: baseY, Z: cz}, Material: b.platform})
			}
			pl.ContactY = float64(baseY)
			pl.Behavior = BehaviorRun
			pl.Cell = world.Cell{X: cx, Y: baseY, Z: first}
		}

		c.Placements = append(c.Placements, pl)
	}
}

// fillGap bridges a longitudinal void between two placements with evenly
// spaced cells one level below the platform. The avatar must never face a
// drop wider than the threshold.
func (b *Builder) fillGap(c *Course, cx, baseY int, prevEnd, nextStart float64) {
	gap := nextStart - prevEnd
	if gap <= b.params.GapThreshold {
		return
	}
	count := int(math.Floor(gap - 0.5))
	for i := 1; i <= count; i++ {
		z := prevEnd + gap*float64(i)/float64(count+1)
		c.Writes = append(c.Writes, world.CellWrite{
			Cell:     world.Cell{X: cx, Y: baseY - 1, Z: cellCoord(z)},
			Material: b.platform,
		})
	}
}

func (b *Builder) buildRail(chart *game.Chart, c *Course) {
	p := b.params
	baseY := c.Base.Y
	cx := c.Base.X
	c.BaseFeetY = float64(baseY) + 2

	// One continuous track strip on the center lane
	length := chart.Duration().Seconds()*p.Speed + p.EndMargin
	for cz := cellCoord(p.Origin.Z); cz <= cellCoord(p.Origin.Z+length); cz++ {
		c.Writes = append(c.Writes,
			world.CellWrite{Cell: world.Cell{X: cx, Y: baseY, Z: cz}, Material: b.track})
	}

	for _, n := range chart.Notes {
		z := p.Origin.Z + n.Time.Seconds()*p.Speed

		left := n.Lane*2 < chart.KeyCount
		laneX := p.Origin.X + p.LaneSpacing
		material := b.rightRail
		behavior := BehaviorRailRight
		if left {
			laneX = p.Origin.X - p.LaneSpacing
			material = b.leftRail
			behavior = BehaviorRailLeft
		}

		cell := world.Cell{X: cellCoord(laneX), Y: baseY + 1, Z: cellCoord(z)}
		c.Writes = append(c.Writes, world.CellWrite{Cell: cell, Material: material})

		c.Placements = append(c.Placements, &Placement{
			Index:    n.Index,
			Note:     n,
			Lane:     n.Lane,
			LaneX:    laneX,
			StartZ:   z,
			EndZ:     z,
			ContactY: float64(baseY) + 2,
			Behavior: behavior,
			Cell:     cell,
		})
	}
}
