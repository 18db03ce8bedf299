package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/descent/core/vector"
)

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(set TrainingSet) error
}

// Predictor は単一の入力に対して予測を行うモデルのインターフェース
type Predictor interface {
	// Predict は入力ベクトルに対する予測値を返す
	Predict(x vector.Vector) (float64, error)
}

// BatchPredictor は行列形式の入力をまとめて予測できるモデルのインターフェース
type BatchPredictor interface {
	// PredictMatrix は各行に対する予測値を返す
	PredictMatrix(X mat.Matrix) (*mat.VecDense, error)
}

// Scorer はモデルの評価指標を計算するインターフェース
type Scorer interface {
	// Score は学習データとは別のデータに対する評価値を返す
	// （線形回帰ではR²、ロジスティック回帰では正解率）
	Score(set TrainingSet) (float64, error)
}

// Regressor は学習・予測・評価をまとめたインターフェース
type Regressor interface {
	Fitter
	Predictor
	BatchPredictor
	Scorer
	IsFitted() bool
}

// Evaluator は固定されたパラメータで入力を評価する関数モデル
type Evaluator interface {
	// Eval は入力ベクトルに対するモデルの出力を返す
	Eval(x vector.Vector) float64
	// Parameters はモデルのパラメータ（最後の要素がバイアス）を返す
	Parameters() vector.Vector
}
