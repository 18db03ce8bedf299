package preprocessing

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/descent/core/model"
	"github.com/YuminosukeSato/descent/core/vector"
	"github.com/YuminosukeSato/descent/pkg/errors"
)

// ConstantFeaturePolicy は分散が0の特徴量（全サンプルで同じ値）の扱いを決める
type ConstantFeaturePolicy int

const (
	// RejectConstant は定数特徴量を DegenerateFeatureError として拒否する（デフォルト）
	RejectConstant ConstantFeaturePolicy = iota
	// UnitScale は定数特徴量を中心化のみ行い、スケールを1のままにする
	UnitScale
)

func (p ConstantFeaturePolicy) String() string {
	if p == UnitScale {
		return "unit-scale"
	}
	return "reject"
}

// ParseConstantFeaturePolicy は "reject" または "unit-scale" を解釈する
func ParseConstantFeaturePolicy(s string) (ConstantFeaturePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject", "":
		return RejectConstant, nil
	case "unit-scale", "unit_scale", "unit":
		return UnitScale, nil
	default:
		return RejectConstant, errors.NewValidationError("constant_features", "must be reject or unit-scale", s)
	}
}

// constantTolerance 以下の相対的な広がりしか持たない特徴量は定数とみなす
const constantTolerance = 1e-12

// isConstant は spread <= 1e-12·max(1, |center|) のとき true を返す。
// 厳密に0でなくても、中心に対して丸め誤差程度の広がりなら定数扱いになる。
func isConstant(spread, center float64) bool {
	return spread <= constantTolerance*math.Max(1, math.Abs(center))
}

// affine は x' = (x - shift) / scale の形の特徴量ごとの変換を共有実装する
type affine struct {
	state *model.StateManager
	shift vector.Vector
	scale vector.Vector
}

func (a *affine) nFeatures() int {
	n, _ := a.state.GetDimensions()
	return n
}

func (a *affine) apply(X mat.Matrix, op string, inverse bool) (mat.Matrix, error) {
	if err := a.state.RequireFitted(op); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != a.nFeatures() {
		return nil, errors.NewDimensionError(a.state.Name()+"."+op, a.nFeatures(), c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if inverse {
				result.Set(i, j, v*a.scale[j]+a.shift[j])
			} else {
				result.Set(i, j, (v-a.shift[j])/a.scale[j])
			}
		}
	}
	return result, nil
}

func (a *affine) transformVector(x vector.Vector) (vector.Vector, error) {
	if err := a.state.RequireFeatures("TransformVector", len(x)); err != nil {
		return nil, err
	}
	return vector.Div(vector.Sub(x, a.shift), a.scale), nil
}

func (a *affine) set(shift, scale []float64, nSamples int) {
	a.shift = shift
	a.scale = scale
	a.state.SetDimensions(len(shift), nSamples)
	a.state.SetFitted()
}

// StandardScaler はデータを平均0、標準偏差1に変換する。
// 統計量は母集団（N で割る）標準偏差で計算する。
// 標準偏差が 1e-12·max(1, |平均|) 以下の特徴量は定数として ConstantFeatures に従って扱う。
type StandardScaler struct {
	affine

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool

	// ConstantFeatures は分散0の特徴量の扱い (デフォルト: RejectConstant)
	ConstantFeatures ConstantFeaturePolicy
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// パラメータ:
//   - withMean: 平均を引くかどうか (デフォルト: true)
//   - withStd: 標準偏差で割るかどうか (デフォルト: true)
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	err := scaler.Fit(X)
//	XScaled, err := scaler.Transform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		affine:   affine{state: model.NewStateManager("StandardScaler")},
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// WithConstantFeatures は定数特徴量の扱いを設定し、レシーバを返す
func (s *StandardScaler) WithConstantFeatures(p ConstantFeaturePolicy) *StandardScaler {
	s.ConstantFeatures = p
	return s
}

// Fit は訓練データから各特徴量の平均と標準偏差を計算する
//
// 戻り値:
//   - error: データが空の場合 ModelError、定数特徴量が拒否された場合 DegenerateFeatureError
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	mean := make([]float64, c)
	scale := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		m, std := stat.PopMeanStdDev(col, nil)

		if s.WithMean {
			mean[j] = m
		}
		scale[j] = 1
		if !s.WithStd {
			continue
		}
		if isConstant(std, m) {
			if s.ConstantFeatures == RejectConstant {
				return errors.NewDegenerateFeatureError("StandardScaler.Fit", j, col[0])
			}
			continue
		}
		scale[j] = std
	}

	s.set(mean, scale, r)
	return nil
}

// Mean は各特徴量の平均値を返す
func (s *StandardScaler) Mean() vector.Vector { return vector.Clone(s.shift) }

// Scale は各特徴量の標準偏差（定数特徴量は1）を返す
func (s *StandardScaler) Scale() vector.Vector { return vector.Clone(s.scale) }

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	return s.apply(X, "Transform", false)
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	return s.apply(X, "InverseTransform", true)
}

// TransformVector は単一の入力を標準化する
func (s *StandardScaler) TransformVector(x vector.Vector) (vector.Vector, error) {
	return s.transformVector(x)
}

// Affine は x' = (x - shift) / scale の shift（平均）と scale（標準偏差）を返す
func (s *StandardScaler) Affine() (shift, scale vector.Vector) {
	return vector.Clone(s.shift), vector.Clone(s.scale)
}

// IsFitted は学習済みかどうかを返す
func (s *StandardScaler) IsFitted() bool { return s.state.IsFitted() }

// GetParams はスケーラーのパラメータを取得する
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean":         s.WithMean,
		"with_std":          s.WithStd,
		"constant_features": s.ConstantFeatures.String(),
	}
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, s.nFeatures())
}

// MinMaxScaler はデータを指定した範囲（デフォルト[0,1]）にスケーリングする
type MinMaxScaler struct {
	affine

	// DataMin, DataMax は学習データの各特徴量の最小値・最大値
	DataMin []float64
	DataMax []float64

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64

	// ConstantFeatures は値域が0の特徴量の扱い (デフォルト: RejectConstant)
	ConstantFeatures ConstantFeaturePolicy
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler([2]float64{-1.0, 1.0})
//	err := scaler.Fit(X)
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{
		affine:       affine{state: model.NewStateManager("MinMaxScaler")},
		FeatureRange: featureRange,
	}
}

// NewMinMaxScalerDefault はデフォルト設定([0,1]範囲)でMinMaxScalerを作成する
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// WithConstantFeatures は定数特徴量の扱いを設定し、レシーバを返す
func (m *MinMaxScaler) WithConstantFeatures(p ConstantFeaturePolicy) *MinMaxScaler {
	m.ConstantFeatures = p
	return m
}

// Fit は訓練データから最小値・最大値を計算する。
// 変換は x' = (x - DataMin) / (DataMax - DataMin) * (hi - lo) + lo であり、
// これを shift と scale の形に直して保持する。
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	width := m.FeatureRange[1] - m.FeatureRange[0]
	if !(width > 0) {
		return errors.NewValidationError("feature_range", "upper bound must exceed lower bound", m.FeatureRange)
	}

	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	shift := make([]float64, c)
	scale := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		lo, hi := floats.Min(col), floats.Max(col)
		m.DataMin[j], m.DataMax[j] = lo, hi

		dataRange := hi - lo
		if isConstant(dataRange, lo) {
			if m.ConstantFeatures == RejectConstant {
				return errors.NewDegenerateFeatureError("MinMaxScaler.Fit", j, lo)
			}
			dataRange = 1
		}
		scale[j] = dataRange / width
		shift[j] = lo - m.FeatureRange[0]*scale[j]
	}

	m.set(shift, scale, r)
	return nil
}

// Transform は学習済みの統計情報を使ってデータをスケーリングする
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	return m.apply(X, "Transform", false)
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	return m.apply(X, "InverseTransform", true)
}

// TransformVector は単一の入力をスケーリングする
func (m *MinMaxScaler) TransformVector(x vector.Vector) (vector.Vector, error) {
	return m.transformVector(x)
}

// Affine は x' = (x - shift) / scale となる shift と scale を返す
func (m *MinMaxScaler) Affine() (shift, scale vector.Vector) {
	return vector.Clone(m.shift), vector.Clone(m.scale)
}

// IsFitted は学習済みかどうかを返す
func (m *MinMaxScaler) IsFitted() bool { return m.state.IsFitted() }

// GetParams はスケーラーのパラメータを取得する
func (m *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range":     m.FeatureRange,
		"constant_features": m.ConstantFeatures.String(),
	}
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f])",
			m.FeatureRange[0], m.FeatureRange[1])
	}
	return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f], n_features=%d)",
		m.FeatureRange[0], m.FeatureRange[1], m.nFeatures())
}

var (
	_ model.Transformer = (*StandardScaler)(nil)
	_ model.Transformer = (*MinMaxScaler)(nil)
)
