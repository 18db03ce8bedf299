package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "optimize", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component is logging, e.g. "GradientDescent".
	ComponentKey = "ml.component"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
)

// Optimization progress and metrics.
const (
	// IterationKey records the outer iteration of the optimization loop.
	IterationKey = "training.iteration"

	// EvaluationsKey records how many times the objective was evaluated.
	EvaluationsKey = "training.evaluations"

	// ConvergedKey records whether the relative-error stopping rule fired.
	ConvergedKey = "training.converged"

	// LossKey records the current objective value.
	LossKey = "metrics.loss"

	// RelativeErrorKey records |prev-curr|/|curr| between accepted iterates.
	RelativeErrorKey = "metrics.relative_error"

	// GradientNormKey records the Euclidean norm of the gradient.
	GradientNormKey = "metrics.gradient_norm"

	R2ScoreKey  = "metrics.r2_score"
	AccuracyKey = "metrics.accuracy"

	DurationMsKey = "perf.duration_ms"
)

// Hyperparameters and configuration.
const (
	PolicyKey       = "hyperparams.policy"
	LearningRateKey = "hyperparams.learning_rate"
	StepSizeKey     = "hyperparams.step_size"
	ToleranceKey    = "hyperparams.tolerance"
	RandomSeedKey   = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationOptimize = "optimize"
	OperationScore    = "score"
)
