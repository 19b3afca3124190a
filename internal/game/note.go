package game

import (
	"time"
)

type Kind uint8

const (
	KindShort Kind = iota
	KindLong
)

type Note struct {
	Index int  // Position in the chart's note list
	Lane  int  // The chart column
	Kind  Kind
	Time  time.Duration // The time the note should be hit
	End   time.Duration // Equal to Time for short notes
}

// Length is zero for short notes, End - Time for holds.
func (n *Note) Length() time.Duration {
	return n.End - n.Time
}
