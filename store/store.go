// Package store persists tuning runs to a SQLite file so experiments can be
// compared across invocations. Each run records the chosen model, the
// selection metric, the winning parameters, and the final test scores; the
// per-candidate grid results are stored alongside it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"elevate/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	model       TEXT NOT NULL,
	target      TEXT NOT NULL,
	metric      TEXT NOT NULL,
	best_params TEXT NOT NULL,
	test_scores TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS candidates (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	idx    INTEGER NOT NULL,
	params TEXT NOT NULL,
	mean   TEXT NOT NULL,
	std    TEXT NOT NULL,
	PRIMARY KEY (run_id, idx)
);
`

// Run is one recorded tuning experiment.
type Run struct {
	ID         int64
	Name       string
	Model      string
	Target     string
	Metric     string
	BestParams map[string]float64
	TestScores map[string]float64
	CreatedAt  time.Time
}

// Candidate is one grid combination evaluated during a run.
type Candidate struct {
	RunID  int64
	Index  int
	Params map[string]float64
	Mean   map[string]float64
	Std    map[string]float64
}

// Store wraps the SQLite database holding runs and candidates.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite file at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening experiment store")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating experiment store schema")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts a run and fills in its ID and CreatedAt.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	bestParams, err := json.Marshal(run.BestParams)
	if err != nil {
		return errors.Wrap(err, "encoding best params")
	}
	testScores, err := json.Marshal(run.TestScores)
	if err != nil {
		return errors.Wrap(err, "encoding test scores")
	}

	run.CreatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (name, model, target, metric, best_params, test_scores, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Name, run.Model, run.Target, run.Metric,
		string(bestParams), string(testScores), run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.Wrap(err, "inserting run")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "reading run id")
	}
	run.ID = id
	return nil
}

// SaveCandidates inserts the candidates of a run in one transaction.
func (s *Store) SaveCandidates(ctx context.Context, runID int64, candidates []Candidate) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO candidates (run_id, idx, params, mean, std) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing candidate insert")
	}
	defer stmt.Close()

	for i, c := range candidates {
		params, err := json.Marshal(c.Params)
		if err != nil {
			return errors.Wrap(err, "encoding candidate params")
		}
		mean, err := json.Marshal(c.Mean)
		if err != nil {
			return errors.Wrap(err, "encoding candidate means")
		}
		std, err := json.Marshal(c.Std)
		if err != nil {
			return errors.Wrap(err, "encoding candidate stds")
		}
		if _, err := stmt.ExecContext(ctx, runID, i, string(params), string(mean), string(std)); err != nil {
			return errors.Wrapf(err, "inserting candidate %d", i)
		}
	}
	return errors.Wrap(tx.Commit(), "committing candidates")
}

// Runs returns every recorded run, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, model, target, metric, best_params, test_scores, created_at
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var bestParams, testScores, createdAt string
		if err := rows.Scan(&r.ID, &r.Name, &r.Model, &r.Target, &r.Metric,
			&bestParams, &testScores, &createdAt); err != nil {
			return nil, errors.Wrap(err, "scanning run")
		}
		if err := json.Unmarshal([]byte(bestParams), &r.BestParams); err != nil {
			return nil, errors.Wrap(err, "decoding best params")
		}
		if err := json.Unmarshal([]byte(testScores), &r.TestScores); err != nil {
			return nil, errors.Wrap(err, "decoding test scores")
		}
		r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, errors.Wrap(err, "parsing run timestamp")
		}
		runs = append(runs, r)
	}
	return runs, errors.Wrap(rows.Err(), "iterating runs")
}

// Candidates returns a run's candidates in grid order.
func (s *Store) Candidates(ctx context.Context, runID int64) ([]Candidate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, idx, params, mean, std FROM candidates WHERE run_id = ? ORDER BY idx`,
		runID)
	if err != nil {
		return nil, errors.Wrap(err, "querying candidates")
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		var params, mean, std string
		if err := rows.Scan(&c.RunID, &c.Index, &params, &mean, &std); err != nil {
			return nil, errors.Wrap(err, "scanning candidate")
		}
		if err := json.Unmarshal([]byte(params), &c.Params); err != nil {
			return nil, errors.Wrap(err, "decoding candidate params")
		}
		if err := json.Unmarshal([]byte(mean), &c.Mean); err != nil {
			return nil, errors.Wrap(err, "decoding candidate means")
		}
		if err := json.Unmarshal([]byte(std), &c.Std); err != nil {
			return nil, errors.Wrap(err, "decoding candidate stds")
		}
		candidates = append(candidates, c)
	}
	return candidates, errors.Wrap(rows.Err(), "iterating candidates")
}
