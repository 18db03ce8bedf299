package optimize

import (
	"math"
	"strings"

	"github.com/YuminosukeSato/descent/pkg/errors"
)

// Policy selects how the step size of each iteration is chosen.
type Policy int

const (
	// Backtracking shrinks a unit step until the Armijo condition holds.
	Backtracking Policy = iota
	// FixedStep uses LearningRate and shrinks it permanently on every rejected step.
	FixedStep
)

func (p Policy) String() string {
	switch p {
	case Backtracking:
		return "backtracking"
	case FixedStep:
		return "fixed"
	default:
		return "unknown"
	}
}

// ParsePolicy accepts "backtracking" and "fixed" (also "fixed-step", "fixed_step").
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "backtracking", "line-search", "":
		return Backtracking, nil
	case "fixed", "fixed-step", "fixed_step":
		return FixedStep, nil
	default:
		return Backtracking, errors.NewValidationError("policy", "must be backtracking or fixed", s)
	}
}

// Default hyperparameter values.
const (
	DefaultLearningRate           = 0.1
	DefaultSearchControlFactor    = 0.5
	DefaultReductionFactor        = 0.2
	DefaultRelativeErrorTolerance = 1e-5
	DefaultGradientTolerance      = 1e-10
	DefaultMaxIterations          = 10000
	DefaultMaxLineSearchSteps     = 64
)

// HyperParameters configure a GradientDescent. They are immutable once handed
// to the optimizer; adaptive state lives only inside one Optimize call.
type HyperParameters struct {
	// Minimize selects minimization (true) or maximization (false).
	Minimize bool
	Policy   Policy

	// LearningRate is the initial step multiplier of the FixedStep policy.
	LearningRate float64
	// SearchControlFactor is the Armijo constant c in (0,1).
	SearchControlFactor float64
	// ReductionFactor in (0,1) shrinks the step after a rejection.
	ReductionFactor float64

	// RelativeErrorTolerance stops the loop once |prev-curr|/|curr| falls to it.
	RelativeErrorTolerance float64
	// GradientTolerance stops the loop at a point whose gradient norm is below it.
	GradientTolerance float64
	MaxIterations     int
	// MaxLineSearchSteps bounds the number of step reductions per iteration.
	MaxLineSearchSteps int
}

// DefaultHyperParameters returns the defaults: minimize with backtracking.
func DefaultHyperParameters() HyperParameters {
	return HyperParameters{
		Minimize:               true,
		Policy:                 Backtracking,
		LearningRate:           DefaultLearningRate,
		SearchControlFactor:    DefaultSearchControlFactor,
		ReductionFactor:        DefaultReductionFactor,
		RelativeErrorTolerance: DefaultRelativeErrorTolerance,
		GradientTolerance:      DefaultGradientTolerance,
		MaxIterations:          DefaultMaxIterations,
		MaxLineSearchSteps:     DefaultMaxLineSearchSteps,
	}
}

// Validate returns a ValidationError for the first out-of-range field.
func (hp HyperParameters) Validate() error {
	switch {
	case hp.Policy != Backtracking && hp.Policy != FixedStep:
		return errors.NewValidationError("policy", "unknown step policy", int(hp.Policy))
	case !(hp.LearningRate > 0) || math.IsInf(hp.LearningRate, 0):
		return errors.NewValidationError("learning_rate", "must be positive and finite", hp.LearningRate)
	case !(hp.SearchControlFactor > 0 && hp.SearchControlFactor < 1):
		return errors.NewValidationError("search_control_factor", "must be in (0, 1)", hp.SearchControlFactor)
	case !(hp.ReductionFactor > 0 && hp.ReductionFactor < 1):
		return errors.NewValidationError("reduction_factor", "must be in (0, 1)", hp.ReductionFactor)
	case !(hp.RelativeErrorTolerance >= 0):
		return errors.NewValidationError("relative_error_tolerance", "must be non-negative", hp.RelativeErrorTolerance)
	case !(hp.GradientTolerance >= 0):
		return errors.NewValidationError("gradient_tolerance", "must be non-negative", hp.GradientTolerance)
	case hp.MaxIterations < 1:
		return errors.NewValidationError("max_iterations", "must be at least 1", hp.MaxIterations)
	case hp.MaxLineSearchSteps < 1:
		return errors.NewValidationError("max_line_search_steps", "must be at least 1", hp.MaxLineSearchSteps)
	}
	return nil
}
