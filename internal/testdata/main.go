package testdata

import (
	"git.lost.host/meutraa/beatrun/internal/game"
	"git.lost.host/meutraa/beatrun/internal/parser"
)

const data = `osu file format v14

[General]
AudioFilename: audio.mp3
Mode: 3

[Metadata]
Title:Fixture
Artist:Nobody
Creator:beatrun
Version:4K Normal

[Difficulty]
CircleSize:4
OverallDifficulty:7

[TimingPoints]
0,500,4,2,0,100,1,0
20000,-100,4,2,0,100,0,0

[HitObjects]
64,192,1000,1,0,0:0:0:0:
192,192,2000,1,0,0:0:0:0:
320,192,3000,128,0,4000:0:0:0:0:
448,192,5000,1,0,0:0:0:0:
`

func GetChart() *game.Chart {
	p := parser.DefaultParser{}
	return p.ParseData([]byte(data))
}

func Data() []byte {
	return []byte(data)
}
