package linear

import (
	"math"

	"github.com/YuminosukeSato/descent/core/model"
	"github.com/YuminosukeSato/descent/core/vector"
)

// LinearModel は y = w·x + b を評価する。パラメータの最後の要素がバイアス b。
type LinearModel struct {
	params vector.Vector
}

// NewLinearModel は params（長さ d+1）を持つ線形モデルを作成する。
// params はコピーされる。
func NewLinearModel(params vector.Vector) *LinearModel {
	return &LinearModel{params: vector.Clone(params)}
}

// Eval は params[:d]·x + params[d] を返す
func (m *LinearModel) Eval(x vector.Vector) float64 {
	d := len(m.params) - 1
	return vector.Dot(m.params[:d], x) + m.params[d]
}

// Parameters はパラメータのコピーを返す
func (m *LinearModel) Parameters() vector.Vector {
	return vector.Clone(m.params)
}

// Dim は入力の次元（パラメータ数 - 1）
func (m *LinearModel) Dim() int {
	return len(m.params) - 1
}

// LogisticModel は σ(w·x + b) を評価する
type LogisticModel struct {
	LinearModel
}

// NewLogisticModel は params（長さ d+1）を持つロジスティックモデルを作成する
func NewLogisticModel(params vector.Vector) *LogisticModel {
	return &LogisticModel{LinearModel: LinearModel{params: vector.Clone(params)}}
}

// Eval は線形部分にシグモイドを一度だけ適用した確率を返す
func (m *LogisticModel) Eval(x vector.Vector) float64 {
	return Sigmoid(m.LinearModel.Eval(x))
}

// Sigmoid は 1/(1+e^-z) を計算する。
// z の符号で分岐し、exp の引数が常に 0 以下になるようにしてオーバーフローを避ける。
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// ModelFactory は学習済みパラメータから評価モデルを作る関数
type ModelFactory func(params vector.Vector) model.Evaluator

var (
	_ model.Evaluator = (*LinearModel)(nil)
	_ model.Evaluator = (*LogisticModel)(nil)
)
