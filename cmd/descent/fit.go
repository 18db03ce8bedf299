package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/descent/core/model"
	"github.com/YuminosukeSato/descent/core/vector"
	"github.com/YuminosukeSato/descent/linear"
	"github.com/YuminosukeSato/descent/optimize"
	"github.com/YuminosukeSato/descent/pkg/errors"
	"github.com/YuminosukeSato/descent/pkg/log"
	"github.com/YuminosukeSato/descent/visualize"
)

// regressor is the surface shared by LinearRegression and LogisticRegression.
type regressor interface {
	model.Regressor
	RawParameters() (vector.Vector, error)
	Result() (optimize.Result, error)
}

func newFitCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit --data train.csv",
		Short: "Fit a model to a CSV training set",
		Long: `Fit a linear or logistic regression model to a CSV file whose rows are
feature...,label. Features are standardized before the optimization; the
printed parameters are mapped back to the original feature space.

Every flag can also be set through a DESCENT_* environment variable
(DESCENT_MAX_ITER=500) or a key of the --config file (max-iter: 500).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadFitConfig(v)
			if err != nil {
				return err
			}
			return errors.SafeExecute("descent fit", func() error {
				return runFit(cmd.OutOrStdout(), cfg)
			})
		},
	}

	f := cmd.Flags()
	f.String("data", "", "Training CSV (feature...,label)")
	f.Bool("header", false, "Skip the first CSV record")
	f.String("model", "linear", "Model: linear or logistic")
	f.String("policy", optimize.Backtracking.String(), "Step policy: backtracking or fixed")
	f.Float64("learning-rate", optimize.DefaultLearningRate, "Initial learning rate of the fixed-step policy")
	f.Float64("control-factor", optimize.DefaultSearchControlFactor, "Armijo control factor of the line search")
	f.Float64("reduction", optimize.DefaultReductionFactor, "Step reduction factor")
	f.Float64("tolerance", optimize.DefaultRelativeErrorTolerance, "Relative error tolerance")
	f.Int("max-iter", optimize.DefaultMaxIterations, "Maximum number of iterations")
	f.Uint64("seed", linear.DefaultSeed, "Seed of the initial parameters")
	f.String("scaler", "standard", "Feature scaler: standard or minmax")
	f.String("constant-features", "reject", "Zero-variance features: reject or unit-scale")
	f.String("predict", "", "CSV of inputs to predict after fitting")
	f.String("plot", "", "Write the convergence plot to this image file")
	return cmd
}

func runFit(out io.Writer, cfg fitConfig) error {
	logger := log.GetLoggerWithName("descent").With(log.OperationKey, log.OperationFit)

	set, err := readTrainingSet(cfg.Data, cfg.Header)
	if err != nil {
		return err
	}
	opts, err := cfg.options()
	if err != nil {
		return err
	}

	var (
		m         regressor
		scoreName string
	)
	switch cfg.Model {
	case "linear", "":
		m, scoreName = linear.NewLinearRegression(opts...), "r2"
	case "logistic":
		m, scoreName = linear.NewLogisticRegression(opts...), "accuracy"
	default:
		return errors.NewValidationError("model", "must be linear or logistic", cfg.Model)
	}

	if err := m.Fit(set); err != nil {
		logger.Error("Fit failed", err)
		return err
	}
	res, _ := m.Result()
	raw, _ := m.RawParameters()

	fmt.Fprintf(out, "model:       %s\n", cfg.Model)
	fmt.Fprintf(out, "samples:     %d\n", set.Len())
	fmt.Fprintf(out, "converged:   %t\n", res.Converged)
	fmt.Fprintf(out, "iterations:  %d\n", res.Iterations)
	fmt.Fprintf(out, "evaluations: %d\n", res.Evaluations)
	fmt.Fprintf(out, "cost:        %.10g\n", res.OptimalValue)
	fmt.Fprintf(out, "parameters:  %v\n", raw)

	if score, err := m.Score(set); err == nil {
		fmt.Fprintf(out, "%-12s %.6f\n", scoreName+":", score)
	} else {
		logger.Warn("Score skipped", err)
	}

	if cfg.Plot != "" {
		if err := visualize.SaveConvergencePlot(res.History, cfg.Plot); err != nil {
			return err
		}
		fmt.Fprintf(out, "plot:        %s\n", cfg.Plot)
	}

	if cfg.Predict != "" {
		inputs, err := readInputs(cfg.Predict, cfg.Header, set.Dim())
		if err != nil {
			return err
		}
		for _, x := range inputs {
			y, err := m.Predict(x)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "prediction:  %.10g\n", y)
		}
	}
	return nil
}
