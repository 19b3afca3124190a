package score

import (
	"git.lost.host/meutraa/beatrun/internal/game"
)

type Scorer interface {
	Init() error
	Deinit()

	// Save the result of a finished run
	Save(chart *game.Chart, result *Result)

	// Load previous results for the chart
	Load(chart *game.Chart) []History
}

type Result struct {
	Hits      int
	Misses    int
	BestCombo int
	Rate      float64
}

type History struct {
	Sum string
	Result
}
