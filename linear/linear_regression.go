package linear

import (
	"github.com/YuminosukeSato/descent/core/model"
	"github.com/YuminosukeSato/descent/core/vector"
	"github.com/YuminosukeSato/descent/metrics"
)

// LinearRegression は二乗誤差を最小化する線形回帰モデル
type LinearRegression struct {
	*Regression
}

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	return &LinearRegression{
		Regression: NewRegression("LinearRegression", MeanSquaredErrorFactory,
			func(params vector.Vector) model.Evaluator { return NewLinearModel(params) },
			opts...),
	}
}

// Score は set に対する決定係数（R²）を計算する
func (lr *LinearRegression) Score(set model.TrainingSet) (float64, error) {
	yTrue, yPred, err := lr.predictSet(set, "LinearRegression.Score")
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(yTrue, yPred)
}

// MSE は set に対する平均二乗誤差を計算する
func (lr *LinearRegression) MSE(set model.TrainingSet) (float64, error) {
	yTrue, yPred, err := lr.predictSet(set, "LinearRegression.MSE")
	if err != nil {
		return 0, err
	}
	return metrics.MSE(yTrue, yPred)
}

var _ model.Regressor = (*LinearRegression)(nil)
