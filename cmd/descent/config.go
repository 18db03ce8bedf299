package main

import (
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/descent/core/model"
	"github.com/YuminosukeSato/descent/linear"
	"github.com/YuminosukeSato/descent/optimize"
	"github.com/YuminosukeSato/descent/pkg/errors"
	"github.com/YuminosukeSato/descent/preprocessing"
)

// fitConfig mirrors the flags of the fit command. Keys are the flag names.
type fitConfig struct {
	Data             string  `mapstructure:"data"`
	Header           bool    `mapstructure:"header"`
	Model            string  `mapstructure:"model"`
	Policy           string  `mapstructure:"policy"`
	LearningRate     float64 `mapstructure:"learning-rate"`
	ControlFactor    float64 `mapstructure:"control-factor"`
	Reduction        float64 `mapstructure:"reduction"`
	Tolerance        float64 `mapstructure:"tolerance"`
	MaxIter          int     `mapstructure:"max-iter"`
	Seed             uint64  `mapstructure:"seed"`
	Scaler           string  `mapstructure:"scaler"`
	ConstantFeatures string  `mapstructure:"constant-features"`
	Predict          string  `mapstructure:"predict"`
	Plot             string  `mapstructure:"plot"`
}

func loadFitConfig(v *viper.Viper) (fitConfig, error) {
	var cfg fitConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decode configuration")
	}
	if cfg.Data == "" {
		return cfg, errors.NewValidationError("data", "a training CSV is required", cfg.Data)
	}
	return cfg, nil
}

// hyperParameters converts the configuration into optimizer settings.
func (c fitConfig) hyperParameters() (optimize.HyperParameters, error) {
	policy, err := optimize.ParsePolicy(c.Policy)
	if err != nil {
		return optimize.HyperParameters{}, err
	}
	hp := optimize.DefaultHyperParameters()
	hp.Policy = policy
	hp.LearningRate = c.LearningRate
	hp.SearchControlFactor = c.ControlFactor
	hp.ReductionFactor = c.Reduction
	hp.RelativeErrorTolerance = c.Tolerance
	hp.MaxIterations = c.MaxIter
	return hp, hp.Validate()
}

func (c fitConfig) options() ([]linear.Option, error) {
	hp, err := c.hyperParameters()
	if err != nil {
		return nil, err
	}
	constant, err := preprocessing.ParseConstantFeaturePolicy(c.ConstantFeatures)
	if err != nil {
		return nil, err
	}
	opts := []linear.Option{
		linear.WithHyperParameters(hp),
		linear.WithSeed(c.Seed),
		linear.WithConstantFeatures(constant),
	}

	switch c.Scaler {
	case "standard", "":
	case "minmax":
		opts = append(opts, linear.WithScaler(func() model.Transformer {
			return preprocessing.NewMinMaxScalerDefault().WithConstantFeatures(constant)
		}))
	default:
		return nil, errors.NewValidationError("scaler", "must be standard or minmax", c.Scaler)
	}
	return opts, nil
}
