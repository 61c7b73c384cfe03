package tune

import (
	"slices"
	"time"

	"elevate/dataset"
	"elevate/metrics"
	"elevate/pkg/errors"
	"elevate/pkg/log"
	"elevate/resample"
	"elevate/workflow"
)

// Candidate is one evaluated parameter combination with its cross-validated
// metric summaries.
type Candidate struct {
	Params map[string]float64
	Mean   map[string]float64
	Std    map[string]float64
}

// Results holds every candidate a grid search evaluated, in grid order.
type Results struct {
	MetricNames []string
	Candidates  []Candidate
}

// GridSearch cross-validates wf once per grid candidate and collects the
// mean and standard deviation of each metric. Candidates run sequentially;
// the folds inside each cross-validation run concurrently.
func GridSearch(wf *workflow.Workflow, tbl *dataset.Table, vf *resample.VFold, grid *Grid, metricNames []string) (*Results, error) {
	candidates, err := grid.Expand()
	if err != nil {
		return nil, err
	}

	logger := log.GetLoggerWithName("tune")
	logger.Info("grid search started",
		log.ModelNameKey, wf.Spec().Name(),
		log.CandidatesKey, len(candidates),
		log.FoldsKey, vf.V,
	)
	start := time.Now()

	results := &Results{
		MetricNames: append([]string(nil), metricNames...),
		Candidates:  make([]Candidate, 0, len(candidates)),
	}
	for i, params := range candidates {
		res, err := resample.CrossValidate(wf.WithParams(params), tbl, vf, metricNames)
		if err != nil {
			return nil, errors.Wrapf(err, "candidate %d", i)
		}

		c := Candidate{
			Params: params,
			Mean:   make(map[string]float64, len(metricNames)),
			Std:    make(map[string]float64, len(metricNames)),
		}
		for _, name := range metricNames {
			c.Mean[name] = res.Mean(name)
			c.Std[name] = res.Std(name)
		}
		results.Candidates = append(results.Candidates, c)

		logger.Debug("candidate evaluated",
			log.CandidateKey, i,
			log.MetricKey, metricNames[0],
			log.ScoreKey, c.Mean[metricNames[0]],
		)
	}

	logger.Info("grid search finished",
		log.ModelNameKey, wf.Spec().Name(),
		log.CandidatesKey, len(candidates),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return results, nil
}

// SelectBest returns the candidate with the best mean value for the metric,
// minimizing or maximizing according to the metric's direction. Ties keep
// the earlier candidate.
func (r *Results) SelectBest(metric string) (Candidate, error) {
	if len(r.Candidates) == 0 {
		return Candidate{}, errors.Newf("tune: no candidates to select from")
	}
	if !slices.Contains(r.MetricNames, metric) {
		return Candidate{}, errors.NewValidationError("metric", "metric was not collected during search", metric)
	}

	lower := metrics.LowerIsBetter(metric)
	best := 0
	for i := 1; i < len(r.Candidates); i++ {
		v := r.Candidates[i].Mean[metric]
		cur := r.Candidates[best].Mean[metric]
		if (lower && v < cur) || (!lower && v > cur) {
			best = i
		}
	}
	return r.Candidates[best], nil
}

// Finalize returns an unfitted copy of wf with the candidate's parameters
// applied, ready for a last fit on the full training set.
func Finalize(wf *workflow.Workflow, c Candidate) *workflow.Workflow {
	return wf.WithParams(c.Params)
}
