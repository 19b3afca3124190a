package course

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"git.lost.host/meutraa/beatrun/internal/game"
	"git.lost.host/meutraa/beatrun/internal/world"
)

func testGrid() *world.MemoryGrid {
	return world.NewMemoryGrid("platform", "marker", "rail-left", "rail-right", "track")
}

func shortNote(index, lane int, at time.Duration) *game.Note {
	return &game.Note{Index: index, Lane: lane, Kind: game.KindShort, Time: at, End: at}
}

func testChart(notes ...*game.Note) *game.Chart {
	return &game.Chart{KeyCount: 4, Notes: notes}
}

func TestNewBuilderMissingMaterial(t *testing.T) {
	grid := world.NewMemoryGrid("platform")
	_, err := NewBuilder(grid, Params{})
	if !errors.Is(err, ErrMissingMaterial) {
		t.Log("error", err)
		t.Fail()
	}
}

func TestBuildDeterministic(t *testing.T) {
	grid := testGrid()
	b, err := NewBuilder(grid, Params{Origin: world.Vec3{Y: 64}})
	if nil != err {
		t.Fatal(err)
	}
	chart := testChart(
		shortNote(0, 0, time.Second),
		&game.Note{Index: 1, Lane: 2, Kind: game.KindLong, Time: 2 * time.Second, End: 3 * time.Second},
		shortNote(2, 3, 4*time.Second),
	)

	for _, mode := range []Mode{ModePlatform, ModeRail} {
		a, b2 := b.Build(chart, mode), b.Build(chart, mode)
		if !reflect.DeepEqual(a.Placements, b2.Placements) {
			t.Log("mode", mode, "placements differ")
			t.Fail()
		}
		if !reflect.DeepEqual(a.Writes, b2.Writes) {
			t.Log("mode", mode, "writes differ")
			t.Fail()
		}
	}
}

// A single short note at 2s with speed 6 lands at cell z=12, a marker
// above a platform, feet contact one above the base.
func TestBuildPlatformShortNote(t *testing.T) {
	grid := testGrid()
	b, err := NewBuilder(grid, Params{Origin: world.Vec3{Y: 64}, Speed: 6})
	if nil != err {
		t.Fatal(err)
	}
	c := b.Build(testChart(shortNote(0, 0, 2*time.Second)), ModePlatform)

	if len(c.Placements) != 1 {
		t.Fatal("placements", len(c.Placements))
	}
	p := c.Placements[0]
	if p.Behavior != BehaviorJump {
		t.Log("behavior", p.Behavior)
		t.Fail()
	}
	if p.ContactY != 65 {
		t.Log("contact", p.ContactY)
		t.Fail()
	}
	if p.JumpHeight != 1.2 {
		t.Log("jump height", p.JumpHeight)
		t.Fail()
	}
	if p.Cell != (world.Cell{X: 0, Y: 65, Z: 12}) {
		t.Log("cell", p.Cell)
		t.Fail()
	}

	platformID, _ := grid.ResolveMaterial("platform")
	markerID, _ := grid.ResolveMaterial("marker")
	expected := map[world.Cell]int{
		{X: 0, Y: 64, Z: 12}: platformID,
		{X: 0, Y: 65, Z: 12}: markerID,
	}
	if len(c.Writes) != len(expected) {
		t.Fatal("writes", c.Writes)
	}
	for _, w := range c.Writes {
		if expected[w.Cell] != w.Material {
			t.Log("write", w)
			t.Fail()
		}
	}
}

func TestBuildPlatformLongNote(t *testing.T) {
	grid := testGrid()
	b, err := NewBuilder(grid, Params{Origin: world.Vec3{Y: 64}, Speed: 6})
	if nil != err {
		t.Fatal(err)
	}
	c := b.Build(testChart(
		&game.Note{Index: 0, Lane: 1, Kind: game.KindLong, Time: time.Second, End: 2 * time.Second},
	), ModePlatform)

	p := c.Placements[0]
	if p.Behavior != BehaviorRun || p.ContactY != 64 || p.JumpHeight != 0 {
		t.Log("placement", p)
		t.Fail()
	}

	// Contiguous run of platform cells from z=6 to z=12 at the base level
	if len(c.Writes) != 7 {
		t.Fatal("writes", len(c.Writes))
	}
	for i, w := range c.Writes {
		if w.Cell != (world.Cell{X: 0, Y: 64, Z: 6 + i}) {
			t.Log("write", i, w)
			t.Fail()
		}
	}
}

// Two notes a full second apart at speed 6 leave a 6 unit gap, bridged
// by floor(6 - 0.5) = 5 filler cells one level below the platform.
func TestBuildPlatformGapFill(t *testing.T) {
	grid := testGrid()
	b, err := NewBuilder(grid, Params{Origin: world.Vec3{Y: 64}, Speed: 6})
	if nil != err {
		t.Fatal(err)
	}
	c := b.Build(testChart(
		shortNote(0, 0, 0),
		shortNote(1, 0, time.Second),
	), ModePlatform)

	fillers := 0
	for _, w := range c.Writes {
		if w.Cell.Y != 63 {
			continue
		}
		fillers++
		if w.Cell.Z <= 0 || w.Cell.Z >= 6 {
			t.Log("filler outside gap", w.Cell)
			t.Fail()
		}
	}
	if fillers != 5 {
		t.Log("fillers ", fillers)
		t.Log("expected", 5)
		t.Fail()
	}
}

func TestBuildPlatformNoFillUnderThreshold(t *testing.T) {
	grid := testGrid()
	b, err := NewBuilder(grid, Params{Origin: world.Vec3{Y: 64}, Speed: 6})
	if nil != err {
		t.Fatal(err)
	}
	// 200ms apart at speed 6 is a 1.2 unit gap, exactly the threshold
	c := b.Build(testChart(
		shortNote(0, 0, 0),
		shortNote(1, 0, 200*time.Millisecond),
	), ModePlatform)

	for _, w := range c.Writes {
		if w.Cell.Y == 63 {
			t.Log("unexpected filler", w.Cell)
			t.Fail()
		}
	}
}

func TestBuildRailLanes(t *testing.T) {
	grid := testGrid()
	b, err := NewBuilder(grid, Params{Origin: world.Vec3{Y: 64}, Speed: 6, LaneSpacing: 2})
	if nil != err {
		t.Fatal(err)
	}
	c := b.Build(testChart(
		shortNote(0, 0, time.Second),
		shortNote(1, 1, 2*time.Second),
		shortNote(2, 2, 3*time.Second),
		shortNote(3, 3, 4*time.Second),
	), ModeRail)

	expected := []struct {
		behavior Behavior
		laneX    float64
	}{
		{BehaviorRailLeft, -2},
		{BehaviorRailLeft, -2},
		{BehaviorRailRight, 2},
		{BehaviorRailRight, 2},
	}
	for i, p := range c.Placements {
		if p.Behavior != expected[i].behavior || p.LaneX != expected[i].laneX {
			t.Log("placement", i, p.Behavior, p.LaneX)
			t.Log("expected ", expected[i].behavior, expected[i].laneX)
			t.Fail()
		}
		if p.ContactY != 66 {
			t.Log("contact", p.ContactY)
			t.Fail()
		}
		if p.Cell.Y != 65 {
			t.Log("marker height", p.Cell)
			t.Fail()
		}
	}
}

func TestBuildRailTrackContinuous(t *testing.T) {
	grid := testGrid()
	b, err := NewBuilder(grid, Params{Origin: world.Vec3{Y: 64}, Speed: 6, EndMargin: 8})
	if nil != err {
		t.Fatal(err)
	}
	c := b.Build(testChart(shortNote(0, 0, time.Second)), ModeRail)

	trackID, _ := grid.ResolveMaterial("track")
	cells := map[int]bool{}
	for _, w := range c.Writes {
		if w.Material == trackID && w.Cell.Y == 64 {
			cells[w.Cell.Z] = true
		}
	}
	// Track spans duration*speed + margin = 14 units from the origin
	for z := 0; z <= 14; z++ {
		if !cells[z] {
			t.Log("missing track cell at", z)
			t.Fail()
		}
	}
}

func TestWriteDedup(t *testing.T) {
	grid := testGrid()
	b, err := NewBuilder(grid, Params{Origin: world.Vec3{Y: 64}, Speed: 6})
	if nil != err {
		t.Fatal(err)
	}
	// Identical placements target the same cells
	c := b.Build(testChart(
		shortNote(0, 0, time.Second),
		shortNote(1, 0, time.Second),
	), ModePlatform)

	seen := map[world.Cell]bool{}
	for _, w := range c.Writes {
		if seen[w.Cell] {
			t.Log("duplicate write", w.Cell)
			t.Fail()
		}
		seen[w.Cell] = true
	}
}

func TestDedupLastWriteWins(t *testing.T) {
	in := []world.CellWrite{
		{Cell: world.Cell{X: 1}, Material: 1},
		{Cell: world.Cell{X: 2}, Material: 2},
		{Cell: world.Cell{X: 1}, Material: 3},
	}
	out := dedupWrites(in)
	if len(out) != 2 {
		t.Fatal("writes", out)
	}
	if out[0].Material != 3 || out[1].Material != 2 {
		t.Log("writes", out)
		t.Fail()
	}
}
