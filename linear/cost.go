package linear

import (
	"math"

	"github.com/YuminosukeSato/descent/core/model"
	"github.com/YuminosukeSato/descent/core/parallel"
	"github.com/YuminosukeSato/descent/core/vector"
	"github.com/YuminosukeSato/descent/optimize"
	"github.com/YuminosukeSato/descent/pkg/errors"
)

// DefaultParallelThreshold は残差の総和を並列化する最小の事例数。
// この値以下では呼び出し元のゴルーチンで逐次計算する。
const DefaultParallelThreshold = 1000

// labelTolerance 以内で 1（または 0）に一致するラベルは片側の項だけを加算する
const labelTolerance = 1e-8

// CostFactory は訓練データに束縛されたコスト関数を作る
type CostFactory func(set model.TrainingSet) optimize.Function

// MeanSquaredError は (1/2N) Σ (w·x_i + b - y_i)² を表すコスト関数。
// 訓練データはコピーせずに参照する。
type MeanSquaredError struct {
	set       model.TrainingSet
	threshold int
}

// NewMeanSquaredError は set に束縛された二乗誤差コストを作成する。
// threshold 以下の事例数では総和を逐次計算する。
func NewMeanSquaredError(set model.TrainingSet, threshold int) *MeanSquaredError {
	return &MeanSquaredError{set: set, threshold: threshold}
}

// MeanSquaredErrorFactory は NewMeanSquaredError を CostFactory として返す
func MeanSquaredErrorFactory(threshold int) CostFactory {
	return func(set model.TrainingSet) optimize.Function {
		return NewMeanSquaredError(set, threshold)
	}
}

// Eval はパラメータ params でのコストを返す
func (c *MeanSquaredError) Eval(params vector.Vector) float64 {
	d := checkParams("MeanSquaredError.Eval", c.set, params)
	partials := parallel.Reduce(len(c.set), c.threshold, func(start, end int) float64 {
		var sum float64
		for _, ex := range c.set[start:end] {
			r := vector.Dot(params[:d], ex.X) + params[d] - ex.Y
			sum += r * r
		}
		return sum
	})
	return sumPartials(partials) / (2 * float64(len(c.set)))
}

// Gradient は (1/N) Σ r_i x_i と、バイアス成分 (1/N) Σ r_i を返す
func (c *MeanSquaredError) Gradient(params vector.Vector) vector.Vector {
	d := checkParams("MeanSquaredError.Gradient", c.set, params)
	return residualGradient(c.set, c.threshold, d, func(ex model.Example) float64 {
		return vector.Dot(params[:d], ex.X) + params[d] - ex.Y
	})
}

// CrossEntropy は二値分類の交差エントロピー
// -(1/N) Σ [y log σ(z) + (1-y) log(1-σ(z))], z = w·x + b を表すコスト関数。
type CrossEntropy struct {
	set       model.TrainingSet
	threshold int
}

// NewCrossEntropy は set に束縛された交差エントロピーコストを作成する
func NewCrossEntropy(set model.TrainingSet, threshold int) *CrossEntropy {
	return &CrossEntropy{set: set, threshold: threshold}
}

// CrossEntropyFactory は NewCrossEntropy を CostFactory として返す
func CrossEntropyFactory(threshold int) CostFactory {
	return func(set model.TrainingSet) optimize.Function {
		return NewCrossEntropy(set, threshold)
	}
}

// Eval はパラメータ params でのコストを返す。
// log σ(z) = -softplus(-z)、log(1-σ(z)) = -softplus(z) として計算するので
// 飽和した予測でも log(0) にはならない。
func (c *CrossEntropy) Eval(params vector.Vector) float64 {
	d := checkParams("CrossEntropy.Eval", c.set, params)
	partials := parallel.Reduce(len(c.set), c.threshold, func(start, end int) float64 {
		var sum float64
		for _, ex := range c.set[start:end] {
			z := vector.Dot(params[:d], ex.X) + params[d]
			switch {
			case math.Abs(ex.Y-1) <= labelTolerance:
				sum -= errors.Softplus(-z)
			case math.Abs(ex.Y) <= labelTolerance:
				sum -= errors.Softplus(z)
			default:
				sum -= ex.Y*errors.Softplus(-z) + (1-ex.Y)*errors.Softplus(z)
			}
		}
		return sum
	})
	return -sumPartials(partials) / float64(len(c.set))
}

// Gradient は r_i = σ(z_i) - y_i として二乗誤差と同じ形の勾配を返す
func (c *CrossEntropy) Gradient(params vector.Vector) vector.Vector {
	d := checkParams("CrossEntropy.Gradient", c.set, params)
	return residualGradient(c.set, c.threshold, d, func(ex model.Example) float64 {
		return Sigmoid(vector.Dot(params[:d], ex.X)+params[d]) - ex.Y
	})
}

// residualGradient は (1/N) Σ r_i [x_i, 1] を計算する。
// 部分和はパーティション順に足し合わせる。
func residualGradient(set model.TrainingSet, threshold, d int, residual func(model.Example) float64) vector.Vector {
	partials := parallel.Reduce(len(set), threshold, func(start, end int) vector.Vector {
		g := vector.New(d + 1)
		for _, ex := range set[start:end] {
			r := residual(ex)
			for k, xk := range ex.X {
				g[k] += r * xk
			}
			g[d] += r
		}
		return g
	})

	grad := vector.New(d + 1)
	for _, p := range partials {
		grad = vector.Add(grad, p)
	}
	return vector.Scale(1/float64(len(set)), grad)
}

func sumPartials(partials []float64) float64 {
	var sum float64
	for _, p := range partials {
		sum += p
	}
	return sum
}

// checkParams はパラメータ長が入力次元+1であることを確認する。
// 不一致はプログラミングエラーなので panic し、API 境界の Recover で捕捉される。
func checkParams(op string, set model.TrainingSet, params vector.Vector) int {
	d := set.Dim()
	if len(params) != d+1 {
		panic(errors.NewDimensionError(op, d+1, len(params), 0))
	}
	return d
}

var (
	_ optimize.Function = (*MeanSquaredError)(nil)
	_ optimize.Function = (*CrossEntropy)(nil)
)
