package parser

import "git.lost.host/meutraa/beatrun/internal/game"

type Parser interface {
	Parse(file string) (*game.Chart, error)
}
