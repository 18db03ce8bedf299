package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/descent/core/model"
	"github.com/YuminosukeSato/descent/core/vector"
	"github.com/YuminosukeSato/descent/metrics"
	"github.com/YuminosukeSato/descent/pkg/errors"
)

// DefaultThreshold は PredictClass と Score が使う決定閾値
const DefaultThreshold = 0.5

// LogisticRegression は交差エントロピーを最小化する二値ロジスティック回帰。
// Predict は正例の確率を返す。
type LogisticRegression struct {
	*Regression
}

// NewLogisticRegression は新しいロジスティック回帰モデルを作成する
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	return &LogisticRegression{
		Regression: NewRegression("LogisticRegression", CrossEntropyFactory,
			func(params vector.Vector) model.Evaluator { return NewLogisticModel(params) },
			opts...),
	}
}

// PredictClass は確率が threshold 以上なら 1、そうでなければ 0 を返す
func (lr *LogisticRegression) PredictClass(x vector.Vector, threshold float64) (float64, error) {
	if !(threshold >= 0 && threshold <= 1) {
		return 0, errors.NewValidationError("threshold", "must be in [0, 1]", threshold)
	}
	p, err := lr.Predict(x)
	if err != nil {
		return 0, err
	}
	if p >= threshold {
		return 1, nil
	}
	return 0, nil
}

// Score は閾値 0.5 での正解率を計算する
func (lr *LogisticRegression) Score(set model.TrainingSet) (float64, error) {
	yTrue, prob, err := lr.predictSet(set, "LogisticRegression.Score")
	if err != nil {
		return 0, err
	}
	classes := mat.NewVecDense(prob.Len(), nil)
	for i := 0; i < prob.Len(); i++ {
		if prob.AtVec(i) >= DefaultThreshold {
			classes.SetVec(i, 1)
		}
	}
	return metrics.Accuracy(yTrue, classes)
}

// LogLoss は set に対する二値対数損失を計算する。ラベルは 0 または 1 でなければならない。
func (lr *LogisticRegression) LogLoss(set model.TrainingSet) (float64, error) {
	yTrue, prob, err := lr.predictSet(set, "LogisticRegression.LogLoss")
	if err != nil {
		return 0, err
	}
	return metrics.BinaryLogLoss(yTrue, prob)
}

var _ model.Regressor = (*LogisticRegression)(nil)
