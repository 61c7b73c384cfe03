package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "experiments.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := &Run{
		Name:       "elevators-knn",
		Model:      "knn_reg",
		Target:     "speed_fpm",
		Metric:     "rmse",
		BestParams: map[string]float64{"neighbors": 7},
		TestScores: map[string]float64{"rmse": 0.12, "r2": 0.84},
	}
	require.NoError(t, s.SaveRun(ctx, run))
	assert.NotZero(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	second := &Run{
		Name:       "elevators-ridge",
		Model:      "ridge_reg",
		Target:     "speed_fpm",
		Metric:     "rmse",
		BestParams: map[string]float64{"penalty": 0.1},
		TestScores: map[string]float64{"rmse": 0.14},
	}
	require.NoError(t, s.SaveRun(ctx, second))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "elevators-ridge", runs[0].Name)
	assert.Equal(t, "elevators-knn", runs[1].Name)
	assert.Equal(t, 7.0, runs[1].BestParams["neighbors"])
	assert.Equal(t, 0.84, runs[1].TestScores["r2"])
}

func TestSaveAndListCandidates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := &Run{
		Name:       "grid",
		Model:      "ridge_reg",
		Target:     "speed_fpm",
		Metric:     "rmse",
		BestParams: map[string]float64{},
		TestScores: map[string]float64{},
	}
	require.NoError(t, s.SaveRun(ctx, run))

	candidates := []Candidate{
		{
			Params: map[string]float64{"penalty": 0.1},
			Mean:   map[string]float64{"rmse": 0.2},
			Std:    map[string]float64{"rmse": 0.05},
		},
		{
			Params: map[string]float64{"penalty": 1.0},
			Mean:   map[string]float64{"rmse": 0.3},
			Std:    map[string]float64{"rmse": 0.04},
		},
	}
	require.NoError(t, s.SaveCandidates(ctx, run.ID, candidates))

	got, err := s.Candidates(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, 0.1, got[0].Params["penalty"])
	assert.Equal(t, 0.3, got[1].Mean["rmse"])

	none, err := s.Candidates(ctx, run.ID+999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiments.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveRun(context.Background(), &Run{
		Name: "first", Model: "linear_reg", Target: "y", Metric: "rmse",
		BestParams: map[string]float64{}, TestScores: map[string]float64{},
	}))
	require.NoError(t, s.Close())

	// Reopening keeps existing rows.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	runs, err := s2.Runs(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
