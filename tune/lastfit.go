package tune

import (
	"elevate/dataset"
	"elevate/metrics"
	"elevate/pkg/errors"
	"elevate/pkg/log"
	"elevate/workflow"
)

// FinalFit is the outcome of fitting a workflow on the training portion of a
// split and scoring it once on the held-out test portion.
type FinalFit struct {
	Workflow *workflow.Workflow
	Metrics  map[string]float64
}

// LastFit fits wf on split.Train and evaluates the requested metrics on
// split.Test. The test set is touched exactly once, after all tuning
// decisions are made.
func LastFit(wf *workflow.Workflow, split *dataset.Split, metricNames []string) (*FinalFit, error) {
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

	fitted := wf.Clone()
	if err := fitted.Fit(split.Train); err != nil {
		return nil, err
	}

	yPred, err := fitted.Predict(split.Test)
	if err != nil {
		return nil, err
	}
	// Baked outcome: test metrics stay on the scale the model was trained
	// on when a recipe step transforms the target.
	yTrue, err := fitted.Outcome(split.Test)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(metricNames))
	for i, fn := range fns {
		v, err := fn(yTrue, yPred)
		if err != nil {
			return nil, err
		}
		scores[metricNames[i]] = v
	}

	logger := log.GetLoggerWithName("tune")
	for _, name := range metricNames {
		logger.Info("test set evaluated",
			log.ModelNameKey, fitted.Spec().Name(),
			log.MetricKey, name,
			log.ScoreKey, scores[name],
		)
	}
	return &FinalFit{Workflow: fitted, Metrics: scores}, nil
}
