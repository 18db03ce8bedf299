package linear

import (
	"github.com/YuminosukeSato/descent/core/model"
	"github.com/YuminosukeSato/descent/optimize"
	"github.com/YuminosukeSato/descent/pkg/log"
	"github.com/YuminosukeSato/descent/preprocessing"
)

// Option configures a Regression.
type Option func(*Regression)

// WithHyperParameters replaces the optimizer hyperparameters. Minimize is
// always forced to true by Fit.
func WithHyperParameters(hp optimize.HyperParameters) Option {
	return func(r *Regression) {
		r.params = hp
	}
}

// WithPolicy selects the step-size policy.
func WithPolicy(p optimize.Policy) Option {
	return func(r *Regression) {
		r.params.Policy = p
	}
}

// WithLearningRate sets the initial learning rate of the fixed-step policy.
func WithLearningRate(lr float64) Option {
	return func(r *Regression) {
		r.params.LearningRate = lr
	}
}

// WithMaxIterations sets the iteration budget.
func WithMaxIterations(n int) Option {
	return func(r *Regression) {
		r.params.MaxIterations = n
	}
}

// WithTolerance sets the relative-error stopping tolerance.
func WithTolerance(tol float64) Option {
	return func(r *Regression) {
		r.params.RelativeErrorTolerance = tol
	}
}

// WithSeed sets the seed of the initial parameter draw.
func WithSeed(seed uint64) Option {
	return func(r *Regression) {
		r.seed = seed
	}
}

// WithInitRange sets the half-width of the uniform initial parameter draw.
func WithInitRange(halfWidth float64) Option {
	return func(r *Regression) {
		r.initRange = halfWidth
	}
}

// WithScaler replaces the feature scaler. The factory is called once per Fit.
func WithScaler(factory model.TransformerFactory) Option {
	return func(r *Regression) {
		r.newScaler = factory
	}
}

// WithConstantFeatures sets how the default StandardScaler treats
// zero-variance features. It has no effect together with WithScaler.
func WithConstantFeatures(p preprocessing.ConstantFeaturePolicy) Option {
	return func(r *Regression) {
		r.constant = p
	}
}

// WithParallelThreshold sets the number of examples above which cost sums are
// computed in parallel.
func WithParallelThreshold(n int) Option {
	return func(r *Regression) {
		r.threshold = n
	}
}

// WithLogger sets the logger of the regression and its optimizer.
func WithLogger(logger log.Logger) Option {
	return func(r *Regression) {
		r.logger = logger
	}
}
