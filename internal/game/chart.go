package game

import (
	"time"
)

type Chart struct {
	Title   string
	Artist  string
	Creator string
	Version string

	KeyCount     int
	Notes        []*Note // Sorted ascending by Time
	TimingPoints []*TimingPoint
}

// Duration is the end time of the last note to finish, 0 for an empty chart.
func (c *Chart) Duration() time.Duration {
	var max time.Duration
	for _, n := range c.Notes {
		if n.End > max {
			max = n.End
		}
	}
	return max
}
