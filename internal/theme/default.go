package theme

import (
	"git.lost.host/meutraa/beatrun/internal/course"
)

type DefaultTheme struct{}

const (
	jumpSym      = "\033[1;33m▲\033[0m"
	runSym       = "\033[1;32m━\033[0m"
	railLeftSym  = "\033[1;34m◀\033[0m"
	railRightSym = "\033[1;31m▶\033[0m"
	trackSym     = "\033[38;5;240m·\033[0m"
	avatarSym    = "\033[1;37m◆\033[0m"
	hitSym       = "\033[1;32m✓\033[0m"
	missSym      = "\033[1;31m✗\033[0m"
)

func (t *DefaultTheme) RenderPlacement(b course.Behavior) string {
	switch b {
	case course.BehaviorJump:
		return jumpSym
	case course.BehaviorRun:
		return runSym
	case course.BehaviorRailLeft:
		return railLeftSym
	case course.BehaviorRailRight:
		return railRightSym
	}
	return trackSym
}

func (t *DefaultTheme) RenderTrack() string {
	return trackSym
}

func (t *DefaultTheme) RenderAvatar() string {
	return avatarSym
}

func (t *DefaultTheme) RenderResolved(hit bool) string {
	if hit {
		return hitSym
	}
	return missSym
}
