package parser

import (
	"io/ioutil"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"git.lost.host/meutraa/beatrun/internal/game"
)

// Track width the lateral hit-object position is expressed against.
const trackWidth = 512

const holdBit = 128 // type bitmask flag for hold notes

type DefaultParser struct{}

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.ParseData(data), nil
}

// ParseData parses the sectioned beatmap text. Unparsable records are
// skipped at line granularity, a chart with no valid notes has zero
// duration rather than being an error.
func (p *DefaultParser) ParseData(data []byte) *game.Chart {
	chart := &game.Chart{KeyCount: 4}

	str := strings.ReplaceAll(string(data), "\r", "")
	section := ""
	for _, line := range strings.Split(str, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			continue
		}

		switch section {
		case "Metadata", "General", "Difficulty":
			kv := strings.SplitN(line, ":", 2)
			if len(kv) != 2 {
				continue
			}
			p.applyKeyValue(chart, strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1]))
		case "TimingPoints":
			if tp := p.parseTimingPoint(line); nil != tp {
				chart.TimingPoints = append(chart.TimingPoints, tp)
			}
		case "HitObjects":
			if n := p.parseHitObject(line, chart.KeyCount); nil != n {
				chart.Notes = append(chart.Notes, n)
			}
		}
	}

	sort.SliceStable(chart.Notes, func(i, j int) bool {
		return chart.Notes[i].Time < chart.Notes[j].Time
	})
	for i, n := range chart.Notes {
		n.Index = i
	}
	sort.SliceStable(chart.TimingPoints, func(i, j int) bool {
		return chart.TimingPoints[i].Time < chart.TimingPoints[j].Time
	})

	return chart
}

func (p *DefaultParser) applyKeyValue(chart *game.Chart, key, value string) {
	switch key {
	case "Title":
		chart.Title = value
	case "Artist":
		chart.Artist = value
	case "Creator":
		chart.Creator = value
	case "Version":
		chart.Version = value
	case "CircleSize":
		keys, err := strconv.ParseFloat(value, 64)
		if nil != err || keys < 1 {
			log.Debug().Str("value", value).Msg("skipping bad key count")
			return
		}
		chart.KeyCount = int(keys)
	}
}

func (p *DefaultParser) parseTimingPoint(line string) *game.TimingPoint {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		log.Debug().Str("line", line).Msg("skipping short timing point")
		return nil
	}
	ms, err := strconv.ParseFloat(fields[0], 64)
	if nil != err {
		return nil
	}
	beatLength, err := strconv.ParseFloat(fields[1], 64)
	if nil != err {
		return nil
	}
	if beatLength <= 0 {
		// Inherited/velocity points carry no tempo
		return nil
	}
	meter := 4
	if len(fields) > 2 {
		if m, err := strconv.Atoi(fields[2]); nil == err && m > 0 {
			meter = m
		}
	}
	return &game.TimingPoint{
		Time:  time.Duration(ms * float64(time.Millisecond)),
		BPM:   60000.0 / beatLength,
		Meter: meter,
	}
}

func (p *DefaultParser) parseHitObject(line string, keyCount int) *game.Note {
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		log.Debug().Str("line", line).Msg("skipping short hit object")
		return nil
	}
	x, err := strconv.Atoi(fields[0])
	if nil != err {
		return nil
	}
	ms, err := strconv.Atoi(fields[2])
	if nil != err {
		return nil
	}
	kind, err := strconv.Atoi(fields[3])
	if nil != err {
		return nil
	}

	lane := x / (trackWidth / keyCount)
	if lane < 0 {
		lane = 0
	} else if lane >= keyCount {
		lane = keyCount - 1
	}

	note := &game.Note{
		Lane: lane,
		Kind: game.KindShort,
		Time: time.Duration(ms) * time.Millisecond,
	}
	note.End = note.Time

	if kind&holdBit != 0 && len(fields) > 5 {
		// Hold end time is the first colon-delimited trailing field
		endStr := strings.SplitN(fields[5], ":", 2)[0]
		end, err := strconv.Atoi(endStr)
		if nil != err {
			log.Debug().Str("line", line).Msg("skipping hold with bad end time")
			return nil
		}
		if endMs := time.Duration(end) * time.Millisecond; endMs > note.Time {
			note.End = endMs
			note.Kind = game.KindLong
		}
	}
	return note
}
