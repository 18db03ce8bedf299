// Package descent is a small numeric-optimization toolkit for Go: a gradient
// descent minimizer and the linear and logistic regression models built on it.
//
// # Features
//
// - Two step-size policies: a fixed learning rate that shrinks after every
// rejected step, and a backtracking line search with the Armijo condition
// - Feature standardization with stored statistics, so predictions always use
// the same normalization as training
// - Seeded, reproducible fits
// - Structured errors (cockroachdb/errors) and structured logging (zerolog or slog)
// - Convergence plots with gonum/plot and a cobra/viper command line tool
//
// # Installation
//
//	go get github.com/YuminosukeSato/descent
//
// # Quick Start
//
// Minimize an arbitrary differentiable function:
//
//	f := optimize.FunctionOf(
//	    func(v vector.Vector) float64 { return (v[0]-20)*(v[0]-20) + v[1]*v[1] + 50 },
//	    func(v vector.Vector) vector.Vector { return vector.Vector{2 * (v[0] - 20), 2 * v[1]} },
//	)
//	res, err := optimize.NewGradientDescent().Optimize(f, vector.Vector{100, 100})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.OptimalValue, res.OptimalPoint) // ≈ 50 at (20, 0)
//
// Fit a linear regression:
//
//	set := model.TrainingSet{
//	    {X: vector.Vector{1}, Y: 3},
//	    {X: vector.Vector{2}, Y: 5},
//	    {X: vector.Vector{3}, Y: 7},
//	}
//	lr := linear.NewLinearRegression(linear.WithPolicy(optimize.FixedStep))
//	if err := lr.Fit(set); err != nil {
//	    log.Fatal(err)
//	}
//	y, _ := lr.Predict(vector.Vector{4}) // ≈ 9
//
// # Packages
//
//   - optimize: GradientDescent, HyperParameters, step policies
//   - linear: LinearRegression, LogisticRegression, cost functions, model evaluators
//   - preprocessing: StandardScaler, MinMaxScaler
//   - metrics: MSE, RMSE, MAE, R², accuracy, log loss
//   - visualize: convergence plots
//   - core/vector, core/random, core/model, core/parallel: building blocks
//   - pkg/errors, pkg/log: error types and logging
//
// # Performance
//
// Cost and gradient sums are split across CPU cores for training sets with
// more than 1000 examples (linear.WithParallelThreshold). Partial sums are
// combined in a fixed order, so a fit is reproducible on a given machine.
package descent
