package theme

import "git.lost.host/meutraa/beatrun/internal/course"

type Theme interface {
	RenderPlacement(b course.Behavior) string
	RenderTrack() string
	RenderAvatar() string
	RenderResolved(hit bool) string
}
