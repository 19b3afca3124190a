package render

import (
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	Fill(row, column int, message string)
	RenderLoop(period time.Duration, render func(now time.Time) bool)
}
