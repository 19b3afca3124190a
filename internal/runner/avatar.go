package runner

import (
	"time"

	"git.lost.host/meutraa/beatrun/internal/world"
)

// Avatar is the physics collaborator. The runner drives it kinematically,
// it never integrates forces while a course is playing.
type Avatar interface {
	SetPosition(x, y, z float64) // Body center
	LookAt(x, y, z float64)
	ZeroMotion() // Velocity, forces and impulses
	Height() float64
}

// Clock is the audio collaborator. Play and Seek are fire-and-forget,
// the runner has a wall-clock fallback when they fail or Now is
// unavailable.
type Clock interface {
	Now() (time.Duration, bool)
	Play() error
	Pause()
	Paused() bool
	Seek(t time.Duration) error
}

// DefaultAvatar is a headless kinematic body used by the demo binary and
// tests.
type DefaultAvatar struct {
	Position   world.Vec3
	Target     world.Vec3
	BodyHeight float64
	Zeroed     int
}

func (a *DefaultAvatar) SetPosition(x, y, z float64) {
	a.Position = world.Vec3{X: x, Y: y, Z: z}
}

func (a *DefaultAvatar) LookAt(x, y, z float64) {
	a.Target = world.Vec3{X: x, Y: y, Z: z}
}

func (a *DefaultAvatar) ZeroMotion() {
	a.Zeroed++
}

func (a *DefaultAvatar) Height() float64 {
	if a.BodyHeight == 0 {
		return 1.8
	}
	return a.BodyHeight
}
