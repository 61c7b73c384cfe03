package resample

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"elevate/dataset"
	"elevate/metrics"
	"elevate/pkg/errors"
	"elevate/pkg/log"
	"elevate/workflow"
)

// FoldScores holds the metric values a single fold produced on its
// assessment set.
type FoldScores struct {
	Fold   int
	Scores map[string]float64
}

// Result aggregates per-fold scores across a cross-validation run.
type Result struct {
	MetricNames []string
	Folds       []FoldScores
}

// Values returns the per-fold values for one metric, in fold order.
func (r *Result) Values(metric string) []float64 {
	out := make([]float64, len(r.Folds))
	for i, f := range r.Folds {
		out[i] = f.Scores[metric]
	}
	return out
}

// Mean returns the metric's average across folds.
func (r *Result) Mean(metric string) float64 {
	return stat.Mean(r.Values(metric), nil)
}

// Std returns the metric's sample standard deviation across folds.
func (r *Result) Std(metric string) float64 {
	return stat.StdDev(r.Values(metric), nil)
}

// CrossValidate fits an unfitted clone of wf on each fold's analysis rows and
// scores its predictions on the assessment rows. Folds run concurrently; the
// first fold error aborts the result.
func CrossValidate(wf *workflow.Workflow, tbl *dataset.Table, vf *VFold, metricNames []string) (*Result, error) {
	if len(metricNames) == 0 {
		return nil, errors.NewValidationError("metrics", "at least one metric is required", metricNames)
	}
	fns := make([]metrics.Metric, len(metricNames))
	for i, name := range metricNames {
		fn, err := metrics.ByName(name)
		if err != nil {
			return nil, err
		}
		fns[i] = fn
	}

	folds, err := vf.Split(tbl.NumRows())
	if err != nil {
		return nil, err
	}

	logger := log.GetLoggerWithName("resample")
	logger.Info("cross-validation started",
		log.ModelNameKey, wf.Spec().Name(),
		log.FoldsKey, len(folds),
		log.SamplesKey, tbl.NumRows(),
	)
	start := time.Now()

	result := &Result{
		MetricNames: append([]string(nil), metricNames...),
		Folds:       make([]FoldScores, len(folds)),
	}
	errs := make([]error, len(folds))

	var wg sync.WaitGroup
	for i, fold := range folds {
		wg.Add(1)
		go func(i int, fold Fold) {
			defer wg.Done()
			scores, err := scoreFold(wf, tbl, fold, metricNames, fns)
			if err != nil {
				errs[i] = errors.Wrapf(err, "fold %d", i)
				return
			}
			result.Folds[i] = FoldScores{Fold: i, Scores: scores}
		}(i, fold)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	logger.Info("cross-validation finished",
		log.ModelNameKey, wf.Spec().Name(),
		log.FoldsKey, len(folds),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return result, nil
}

func scoreFold(wf *workflow.Workflow, tbl *dataset.Table, fold Fold, names []string, fns []metrics.Metric) (map[string]float64, error) {
	analysis, err := tbl.Subset(fold.Analysis)
	if err != nil {
		return nil, err
	}
	assessment, err := tbl.Subset(fold.Assessment)
	if err != nil {
		return nil, err
	}

	fitted := wf.Clone()
	if err := fitted.Fit(analysis); err != nil {
		return nil, err
	}

	yPred, err := fitted.Predict(assessment)
	if err != nil {
		return nil, err
	}
	// Baked outcome, so metrics compare on the scale the model was trained
	// on even when a recipe step transforms the target.
	yTrue, err := fitted.Outcome(assessment)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(names))
	for i, fn := range fns {
		v, err := fn(yTrue, yPred)
		if err != nil {
			return nil, err
		}
		scores[names[i]] = v
	}
	return scores, nil
}
