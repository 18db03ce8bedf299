// Package linear provides linear and logistic regression fitted by gradient
// descent on standardized features.
//
// Fit validates the training set, standardizes every feature with a fresh
// scaler, draws the initial parameters from a seeded uniform source and
// minimizes the injected cost function. Predict reuses the stored scaler, so
// callers always pass inputs in the original feature space.
package linear

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/descent/core/model"
	"github.com/YuminosukeSato/descent/core/random"
	"github.com/YuminosukeSato/descent/core/vector"
	"github.com/YuminosukeSato/descent/optimize"
	"github.com/YuminosukeSato/descent/pkg/errors"
	"github.com/YuminosukeSato/descent/pkg/log"
	"github.com/YuminosukeSato/descent/preprocessing"
)

const (
	// DefaultSeed は初期パラメータの乱数シード
	DefaultSeed uint64 = 42
	// DefaultInitRange は初期パラメータを一様分布 [-r, r] から引くときの r
	DefaultInitRange = 0.5
)

// Regression は正規化・学習・予測をまとめるオーケストレーター。
// コスト関数と評価モデルは生成関数として注入される。
type Regression struct {
	name  string
	state *model.StateManager

	costFor  func(threshold int) CostFactory
	newModel ModelFactory

	// 設定（Option で変更）
	params    optimize.HyperParameters
	seed      uint64
	initRange float64
	threshold int
	newScaler model.TransformerFactory
	constant  preprocessing.ConstantFeaturePolicy
	logger    log.Logger

	// 学習結果
	scaler model.Transformer
	fitted model.Evaluator
	result optimize.Result
}

// NewRegression は name を持つ回帰モデルを作成する。
// costFor は並列化の閾値を受け取って CostFactory を返し、newModel は学習済み
// パラメータから評価モデルを作る。
func NewRegression(name string, costFor func(threshold int) CostFactory, newModel ModelFactory, opts ...Option) *Regression {
	r := &Regression{
		name:      name,
		state:     model.NewStateManager(name),
		costFor:   costFor,
		newModel:  newModel,
		params:    optimize.DefaultHyperParameters(),
		seed:      DefaultSeed,
		initRange: DefaultInitRange,
		threshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Regression) log() log.Logger {
	if r.logger != nil {
		return r.logger
	}
	return log.GetLoggerWithName(r.name)
}

func (r *Regression) scalerFactory() model.TransformerFactory {
	if r.newScaler != nil {
		return r.newScaler
	}
	policy := r.constant
	return func() model.Transformer {
		return preprocessing.NewStandardScalerDefault().WithConstantFeatures(policy)
	}
}

// Fit はモデルを訓練データで学習させる。
// 最適化が収束しなかった場合もエラーにはならず、Result().Converged が false になる。
func (r *Regression) Fit(set model.TrainingSet) (err error) {
	op := r.name + ".Fit"
	defer errors.Recover(&err, op)

	if err := set.Validate(op); err != nil {
		return err
	}
	hp := r.params
	hp.Minimize = true
	if err := hp.Validate(); err != nil {
		return err
	}
	if !(r.initRange >= 0) || math.IsInf(r.initRange, 0) {
		return errors.NewValidationError("init_range", "must be non-negative and finite", r.initRange)
	}

	// 再学習に失敗した場合に古いパラメータで予測しないよう、先にリセットする
	r.state.Reset()

	logger := r.log().With(log.OperationKey, log.OperationFit)
	logger.Info("Fitting model",
		log.SamplesKey, set.Len(),
		log.FeaturesKey, set.Dim(),
		log.PolicyKey, hp.Policy.String(),
		log.RandomSeedKey, r.seed,
	)
	start := time.Now()

	scaler := r.scalerFactory()()
	Xt, err := scaler.FitTransform(set.Inputs())
	if err != nil {
		return err
	}
	normalized, err := set.WithInputs(Xt)
	if err != nil {
		return err
	}

	initial := random.New(r.seed).Uniform(set.Dim()+1, -r.initRange, r.initRange)
	gd := optimize.NewGradientDescent().WithHyperParameters(hp).WithLogger(r.log())
	res, err := gd.Optimize(r.costFor(r.threshold)(normalized), initial)
	if err != nil {
		logger.Error("Optimization failed", err)
		return errors.NewModelError(op, "optimization failed", err)
	}

	r.scaler = scaler
	r.fitted = r.newModel(res.OptimalPoint)
	r.result = res
	r.state.SetDimensions(set.Dim(), set.Len())
	r.state.SetFitted()

	logger.Info("Model fitted",
		log.IterationKey, res.Iterations,
		log.EvaluationsKey, res.Evaluations,
		log.ConvergedKey, res.Converged,
		log.LossKey, res.OptimalValue,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict は元の特徴量空間の入力 x に対する予測値を返す
func (r *Regression) Predict(x vector.Vector) (float64, error) {
	if err := r.state.RequireFeatures("Predict", len(x)); err != nil {
		return 0, err
	}
	xt, err := r.scaler.TransformVector(x)
	if err != nil {
		return 0, err
	}
	return r.fitted.Eval(xt), nil
}

// PredictMatrix は X の各行に対する予測値を返す
func (r *Regression) PredictMatrix(X mat.Matrix) (*mat.VecDense, error) {
	rows, cols := X.Dims()
	if err := r.state.RequireFeatures("PredictMatrix", cols); err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errors.NewModelError(r.name+".PredictMatrix", "empty input", errors.ErrEmptyData)
	}
	Xt, err := r.scaler.Transform(X)
	if err != nil {
		return nil, err
	}
	out := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		out.SetVec(i, r.fitted.Eval(mat.Row(nil, i, Xt)))
	}
	return out, nil
}

// Parameters は正規化された特徴量空間でのパラメータ（最後がバイアス）を返す
func (r *Regression) Parameters() (vector.Vector, error) {
	if err := r.state.RequireFitted("Parameters"); err != nil {
		return nil, err
	}
	return r.fitted.Parameters(), nil
}

// RawParameters は元の特徴量空間に戻したパラメータを返す。
// x' = (x - shift)/scale なので w_raw = w/scale、b_raw = b - Σ w·shift/scale。
func (r *Regression) RawParameters() (vector.Vector, error) {
	if err := r.state.RequireFitted("RawParameters"); err != nil {
		return nil, err
	}
	p := r.fitted.Parameters()
	shift, scale := r.scaler.Affine()
	d := len(p) - 1

	raw := vector.New(d + 1)
	raw[d] = p[d]
	for k := 0; k < d; k++ {
		raw[k] = p[k] / scale[k]
		raw[d] -= raw[k] * shift[k]
	}
	return raw, nil
}

// Result は最後の Fit の最適化結果を返す
func (r *Regression) Result() (optimize.Result, error) {
	if err := r.state.RequireFitted("Result"); err != nil {
		return optimize.Result{}, err
	}
	return r.result, nil
}

// Model は学習済みの評価モデル（正規化空間）を返す
func (r *Regression) Model() (model.Evaluator, error) {
	if err := r.state.RequireFitted("Model"); err != nil {
		return nil, err
	}
	return r.fitted, nil
}

// Scaler は学習時にフィットした特徴量スケーラーを返す
func (r *Regression) Scaler() (model.Transformer, error) {
	if err := r.state.RequireFitted("Scaler"); err != nil {
		return nil, err
	}
	return r.scaler, nil
}

// NFeatures は学習時の特徴量数（未学習なら 0）
func (r *Regression) NFeatures() int {
	n, _ := r.state.GetDimensions()
	return n
}

// IsFitted は学習済みかどうかを返す
func (r *Regression) IsFitted() bool {
	return r.state.IsFitted()
}

// HyperParameters は設定されたハイパーパラメータを返す
func (r *Regression) HyperParameters() optimize.HyperParameters {
	return r.params
}

// Name はモデル名を返す
func (r *Regression) Name() string {
	return r.name
}

// predictSet は set の全事例に対する予測とラベルを返す
func (r *Regression) predictSet(set model.TrainingSet, op string) (yTrue, yPred *mat.VecDense, err error) {
	if err := set.Validate(op); err != nil {
		return nil, nil, err
	}
	yPred, err = r.PredictMatrix(set.Inputs())
	if err != nil {
		return nil, nil, err
	}
	return set.Labels(), yPred, nil
}
