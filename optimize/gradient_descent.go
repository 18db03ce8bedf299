package optimize

import (
	"context"
	"fmt"
	"math"

	"github.com/YuminosukeSato/descent/core/vector"
	"github.com/YuminosukeSato/descent/pkg/errors"
	"github.com/YuminosukeSato/descent/pkg/log"
)

// Result is the outcome of one Optimize call.
type Result struct {
	// OptimalPoint is the last accepted iterate.
	OptimalPoint vector.Vector
	// OptimalValue is the objective at OptimalPoint, in the caller's sign.
	OptimalValue float64
	// Iterations counts outer iterations, including rejected fixed steps.
	Iterations int
	// Evaluations counts calls to Function.Eval.
	Evaluations int
	// Converged is false when MaxIterations was exhausted first.
	Converged bool
	// History holds the objective of every accepted iterate, starting with
	// the initial point.
	History []float64
}

// GradientDescent minimizes (or maximizes) a Function. A configured value is
// read-only during Optimize, so one optimizer can serve sequential calls.
type GradientDescent struct {
	params HyperParameters
	logger log.Logger
}

// NewGradientDescent returns an optimizer with DefaultHyperParameters.
func NewGradientDescent() *GradientDescent {
	return &GradientDescent{params: DefaultHyperParameters()}
}

// WithHyperParameters returns a copy of gd configured with hp. Validation is
// deferred to Optimize.
func (gd *GradientDescent) WithHyperParameters(hp HyperParameters) *GradientDescent {
	c := *gd
	c.params = hp
	return &c
}

// WithLogger returns a copy of gd that logs to logger.
func (gd *GradientDescent) WithLogger(logger log.Logger) *GradientDescent {
	c := *gd
	c.logger = logger
	return &c
}

// HyperParameters returns the configured hyperparameters.
func (gd *GradientDescent) HyperParameters() HyperParameters {
	return gd.params
}

func (gd *GradientDescent) log() log.Logger {
	if gd.logger != nil {
		return gd.logger
	}
	return log.GetLoggerWithName("GradientDescent")
}

// Optimize runs gradient descent on f from initial, which is not modified.
//
// The loop always performs at least one iteration. It stops as converged when
// the relative change of the objective between two accepted iterates is at
// most RelativeErrorTolerance, or when the gradient norm at an accepted
// iterate drops below GradientTolerance. Reaching MaxIterations first returns
// a Result with Converged == false and emits a ConvergenceWarning.
func (gd *GradientDescent) Optimize(f Function, initial vector.Vector) (res Result, err error) {
	defer errors.Recover(&err, "GradientDescent.Optimize")

	p := gd.params
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if f == nil {
		return Result{}, errors.NewValueError("GradientDescent.Optimize", "objective function is nil")
	}
	if len(initial) == 0 {
		return Result{}, errors.NewValueError("GradientDescent.Optimize", "initial point must not be empty")
	}
	if !vector.IsFinite(initial) {
		return Result{}, errors.NewValueError("GradientDescent.Optimize", "initial point must be finite")
	}

	logger := gd.log()
	debug := logger.Enabled(context.Background(), log.LevelDebug)

	obj := newObjective(f, p.Minimize)
	point := vector.Clone(initial)
	value := obj.value(point)
	if err := errors.CheckScalar("objective", value, 0); err != nil {
		return Result{}, err
	}
	grad, err := checkedGradient(obj, point, 0)
	if err != nil {
		return Result{}, err
	}

	history := []float64{obj.report(value)}
	lr := p.LearningRate
	relErr := math.Inf(1)
	iter := 0
	converged := false

	for {
		if iter > 0 && vector.Norm(grad) < p.GradientTolerance {
			converged = true
			break
		}

		var (
			next      vector.Vector
			nextValue float64
			accepted  bool
		)
		switch p.Policy {
		case FixedStep:
			next = vector.AddScaled(point, -lr, grad)
			nextValue = obj.value(next)
			if errors.IsFinite(nextValue) && nextValue <= value {
				accepted = true
			} else {
				lr *= p.ReductionFactor
			}
		default:
			next, nextValue, err = lineSearch(obj, p, point, value, grad, iter)
			if err != nil {
				return Result{}, err
			}
			accepted = true
		}
		iter++

		if accepted {
			relErr = relativeError(value, nextValue)
			point, value = next, nextValue
			history = append(history, obj.report(value))
			if grad, err = checkedGradient(obj, point, iter); err != nil {
				return Result{}, err
			}
		}

		if debug {
			logger.Debug("Gradient descent iteration",
				log.IterationKey, iter,
				log.LossKey, obj.report(value),
				log.RelativeErrorKey, relErr,
				log.LearningRateKey, lr,
				"accepted", accepted,
			)
		}

		if relErr <= p.RelativeErrorTolerance {
			converged = true
			break
		}
		if iter >= p.MaxIterations {
			break
		}
	}

	res = Result{
		OptimalPoint: point,
		OptimalValue: obj.report(value),
		Iterations:   iter,
		Evaluations:  obj.evals,
		Converged:    converged,
		History:      history,
	}

	if !converged {
		warning := errors.NewConvergenceWarning("GradientDescent", iter,
			fmt.Sprintf("relative error %.3g is above tolerance %.3g", relErr, p.RelativeErrorTolerance))
		errors.Warn(warning)
		logger.Warn("Gradient descent did not converge",
			log.IterationKey, iter,
			log.LossKey, res.OptimalValue,
			log.RelativeErrorKey, relErr,
			log.PolicyKey, p.Policy.String(),
		)
	} else if debug {
		logger.Debug("Gradient descent converged",
			log.IterationKey, iter,
			log.EvaluationsKey, obj.evals,
			log.LossKey, res.OptimalValue,
		)
	}
	return res, nil
}

// lineSearch returns the first point x - step·g, step = 1, r, r², ... that
// satisfies f(x) - f(x - step·g) ≥ step·c·‖g‖². It gives up after
// MaxLineSearchSteps reductions.
func lineSearch(obj *objective, p HyperParameters, point vector.Vector, value float64, grad vector.Vector, iter int) (vector.Vector, float64, error) {
	slope := -vector.SqLength(grad)
	target := slope * p.SearchControlFactor

	step := 1.0
	for k := 0; ; k++ {
		candidate := vector.AddScaled(point, -step, grad)
		cv := obj.value(candidate)
		if errors.IsFinite(cv) && value-cv >= -step*target {
			return candidate, cv, nil
		}
		if k == p.MaxLineSearchSteps {
			return nil, 0, errors.NewLineSearchError(iter, p.MaxLineSearchSteps, step, slope)
		}
		step *= p.ReductionFactor
	}
}

func checkedGradient(obj *objective, point vector.Vector, iter int) (vector.Vector, error) {
	g := obj.gradient(point)
	if len(g) != len(point) {
		return nil, errors.NewDimensionError("GradientDescent.Optimize", len(point), len(g), 1)
	}
	if err := errors.CheckNumericalStability("gradient", g, iter); err != nil {
		return nil, err
	}
	return g, nil
}

// relativeError is |prev-curr|/|curr|, or the absolute change when curr is 0.
func relativeError(prev, curr float64) float64 {
	diff := math.Abs(prev - curr)
	if curr == 0 {
		return diff
	}
	return diff / math.Abs(curr)
}
