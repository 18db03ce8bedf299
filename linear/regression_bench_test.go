package linear

import (
	"math/rand/v2"
	"testing"

	"github.com/YuminosukeSato/descent/core/model"
	"github.com/YuminosukeSato/descent/core/vector"
)

// createBenchmarkData はベンチマーク用のデータを生成する
func createBenchmarkData(rows, cols int) model.TrainingSet {
	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(42, 42))

	// 真の重みベクトル
	trueWeights := make([]float64, cols)
	for j := 0; j < cols; j++ {
		trueWeights[j] = float64(j+1) * 0.5
	}

	set := make(model.TrainingSet, rows)
	for i := 0; i < rows; i++ {
		x := vector.New(cols)
		for j := range x {
			// -1.0 から 1.0 の範囲のランダムな値
			x[j] = rng.Float64()*2.0 - 1.0
		}
		// y = x·w + 1 + 小さなノイズ
		y := vector.Dot(x, trueWeights) + 1.0 + (rng.Float64()-0.5)*0.1
		set[i] = model.Example{X: x, Y: y}
	}
	return set
}

// BenchmarkLinearRegressionFit はFitメソッドのベンチマークを実行する
func BenchmarkLinearRegressionFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"Small_100x10", 100, 10},
		{"Small_500x10", 500, 10},
		{"Medium_1000x10", 1000, 10}, // 並列処理の閾値
		{"Medium_2000x10", 2000, 10},
		{"Large_5000x20", 5000, 20},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			set := createBenchmarkData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lr := NewLinearRegression(WithLogger(quietLogger()))
				if err := lr.Fit(set); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkCostGradient は勾配計算を逐次版と並列版で比較する
func BenchmarkCostGradient(b *testing.B) {
	set := createBenchmarkData(20000, 20)
	params := vector.New(21)

	for _, tc := range []struct {
		name      string
		threshold int
	}{
		{"Sequential", len(set)},
		{"Parallel", DefaultParallelThreshold},
	} {
		b.Run(tc.name, func(b *testing.B) {
			cost := NewMeanSquaredError(set, tc.threshold)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = cost.Gradient(params)
			}
		})
	}
}
