package main

import (
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"git.lost.host/meutraa/beatrun/internal/audio"
	"git.lost.host/meutraa/beatrun/internal/config"
	"git.lost.host/meutraa/beatrun/internal/course"
	"git.lost.host/meutraa/beatrun/internal/parser"
	"git.lost.host/meutraa/beatrun/internal/render"
	"git.lost.host/meutraa/beatrun/internal/runner"
	"git.lost.host/meutraa/beatrun/internal/score"
	"git.lost.host/meutraa/beatrun/internal/theme"
	"git.lost.host/meutraa/beatrun/internal/world"
)

// Seconds of course visible ahead of the avatar in the strip
const stripLookahead = 4.0

func main() {
	if err := run(); nil != err {
		stdlog.Fatalln(err)
	}
}

func setupLogging() error {
	level := zerolog.WarnLevel
	if *config.Verbose {
		level = zerolog.DebugLevel
	}
	// The terminal is owned by the renderer, diagnostics go to a file
	f, err := os.OpenFile("beatrun.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if nil != err {
		return err
	}
	log.Logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
	return nil
}

func run() error {
	if err := setupLogging(); nil != err {
		return err
	}

	var psr parser.Parser = &parser.DefaultParser{}
	var th theme.Theme = &theme.DefaultTheme{}
	var r render.Renderer = &render.DefaultRenderer{}

	var audioFile, chartFile string
	if err := filepath.Walk(*config.Directory, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".mp3", ".ogg":
			audioFile = p
		case ".osu":
			chartFile = p
		}
		return nil
	}); nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}
	if audioFile == "" || chartFile == "" {
		return errors.New("unable to find .osu and .mp3/.ogg file in given directory")
	}

	chart, err := psr.Parse(chartFile)
	if nil != err {
		return err
	}
	if len(chart.Notes) == 0 {
		return errors.New("chart has no notes")
	}

	mode := course.ModePlatform
	if *config.Mode == "rail" {
		mode = course.ModeRail
	}

	grid := world.NewMemoryGrid("platform", "marker", "rail-left", "rail-right", "track")
	builder, err := course.NewBuilder(grid, course.Params{
		Origin:      world.Vec3{X: 0, Y: 64, Z: 0},
		Speed:       *config.Speed,
		LaneSpacing: *config.LaneSpacing,
		JumpHeight:  *config.JumpHeight,
	})
	if nil != err {
		return err
	}

	clock, err := audio.Open(audioFile)
	if nil != err {
		return err
	}
	defer clock.Close()

	avatar := &runner.DefaultAvatar{}
	rn := runner.New(grid, avatar)
	rn.SetClock(clock)
	scorer := score.NewRailScorer(rn, grid)
	scorer.SetWindow(*config.HitWindow)

	var history score.Scorer = &score.DefaultScorer{}
	if err := history.Init(); nil != err {
		return err
	}
	defer history.Deinit()

	fmt.Printf("%v - %v [%v] %vk, %v notes, bpm %.0f\n",
		chart.Artist, chart.Title, chart.Version,
		chart.KeyCount, len(chart.Notes), chart.BPMAt(0))
	for i, h := range history.Load(chart) {
		fmt.Printf("%2v) hits %4v  misses %4v  combo %4v\n", i+1, h.Hits, h.Misses, h.BestCombo)
	}

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Warn().Err(err).Msg("unable to close keyboard")
		}
	}()

	columns, _, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}

	keys := []rune(*config.Keys)
	if len(keys) < 2 {
		keys = []rune("xm")
	}

	built := builder.Build(chart, mode)
	rn.ApplyCourse(built)
	scorer.Reset()
	if !rn.Start() {
		rn.ClearCourse()
		return errors.New("unable to start run")
	}

	finished := false
	rn.OnFinish(func() {
		finished = true
		history.Save(chart, &score.Result{
			Hits:      scorer.HitCount(),
			Misses:    scorer.MissCount(),
			BestCombo: scorer.BestCombo(),
			Rate:      1.0,
		})
	})

	if err := r.Init(); nil != err {
		return err
	}
	defer r.Deinit()

	r.RenderLoop(*config.FramePeriod, func(now time.Time) bool {
		for i := 0; i < len(keyChannel); i++ {
			key := <-keyChannel
			switch {
			case key.Key == keyboard.KeyEsc || key.Rune == 'q' || finished:
				rn.ClearCourse()
				return false
			case key.Rune == keys[0]:
				scorer.HitLeft()
			case key.Rune == keys[1]:
				scorer.HitRight()
			}
		}

		rn.Update()
		scorer.ResolveMisses()

		t := rn.CurrentTime()
		r.Fill(1, 2, fmt.Sprintf("\033[K%v - %v [%v]", chart.Artist, chart.Title, chart.Version))
		r.Fill(2, 2, fmt.Sprintf("\033[K%v  %v  %6.2fs / %.2fs",
			built.Mode, rn.State(), t.Seconds(), built.Duration.Seconds()))
		r.Fill(3, 2, fmt.Sprintf("\033[Kcombo %4v  best %4v  hits %4v  misses %4v",
			scorer.Combo(), scorer.BestCombo(), scorer.HitCount(), scorer.MissCount()))
		r.Fill(4, 2, fmt.Sprintf("\033[Kavatar  x %5.1f  y %5.1f  z %7.1f",
			avatar.Position.X, avatar.Position.Y, avatar.Position.Z))

		r.Fill(6, 2, strip(th, built, scorer, t, columns-4))

		if finished {
			r.Fill(8, 2, "\033[Krun finished, press any key to exit")
		}

		return true
	})

	return nil
}

// strip renders the upcoming placements as a one-line track.
func strip(th theme.Theme, c *course.Course, s *score.RailScorer, t time.Duration, width int) string {
	if width < 8 {
		width = 8
	}
	cells := make([]string, width)
	for i := range cells {
		cells[i] = th.RenderTrack()
	}
	cells[0] = th.RenderAvatar()

	for _, p := range c.Placements {
		ahead := (p.Note.Time - t).Seconds()
		if ahead < 0 || ahead >= stripLookahead {
			continue
		}
		col := int(ahead / stripLookahead * float64(width))
		if col >= width {
			col = width - 1
		}
		if s.IsHit(p.Index) || s.IsMissed(p.Index) {
			cells[col] = th.RenderResolved(s.IsHit(p.Index))
		} else {
			cells[col] = th.RenderPlacement(p.Behavior)
		}
	}
	return "\033[K" + strings.Join(cells, "")
}
