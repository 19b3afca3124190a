package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"git.lost.host/meutraa/beatrun/internal/game"
)

type DefaultScorer struct {
	db *sql.DB
}

func (s *DefaultScorer) Init() error {
	db, err := sql.Open("sqlite3", "./scores.db")
	if nil != err {
		return err
	}

	initStatement := `
	create table if not exists runs
	  (
		  id integer not null primary key,
		  sum text,
		  rate real,
		  hits integer,
		  misses integer,
		  best_combo integer
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

// hashChart keys history on the note content, so re-tagged metadata does
// not orphan old runs.
func hashChart(c *game.Chart) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v;", c.KeyCount)
	for _, n := range c.Notes {
		fmt.Fprintf(&b, "%v:%v:%v;", n.Lane, n.Time.Milliseconds(), n.End.Milliseconds())
	}
	sum := sha256.Sum256([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultScorer) Save(c *game.Chart, result *Result) {
	_, err := s.db.Exec(
		"insert into runs(sum, rate, hits, misses, best_combo) values(?, ?, ?, ?, ?)",
		hashChart(c), result.Rate, result.Hits, result.Misses, result.BestCombo)
	if nil != err {
		log.Warn().Err(err).Msg("unable to save run")
	}
}

func (s *DefaultScorer) Load(c *game.Chart) []History {
	histories := []History{}
	rows, err := s.db.Query(
		"select sum, rate, hits, misses, best_combo from runs where sum = ?", hashChart(c))
	if nil != err {
		log.Warn().Err(err).Msg("unable to load runs")
		return histories
	}
	defer rows.Close()
	for rows.Next() {
		var h History
		if err := rows.Scan(&h.Sum, &h.Rate, &h.Hits, &h.Misses, &h.BestCombo); nil != err {
			log.Warn().Err(err).Msg("unable to scan run")
			continue
		}
		histories = append(histories, h)
	}
	return histories
}
