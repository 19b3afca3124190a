package game

import (
	"time"
)

type TimingPoint struct {
	Time  time.Duration
	BPM   float64
	Meter int
}

// BPMAt returns the tempo of the nearest timing point at or before t.
// Queries before the first point return the first point's tempo, a chart
// without timing points reports 0.
func (c *Chart) BPMAt(t time.Duration) float64 {
	if len(c.TimingPoints) == 0 {
		return 0
	}
	sel := c.TimingPoints[0].BPM
	for _, tp := range c.TimingPoints {
		if t >= tp.Time {
			sel = tp.BPM
		} else {
			break
		}
	}
	return sel
}
