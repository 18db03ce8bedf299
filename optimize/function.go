// Package optimize implements gradient descent for differentiable scalar
// functions of a fixed-dimension real vector.
//
// Two step-size policies are available: a fixed learning rate that shrinks
// whenever a step would make the objective worse, and a backtracking line
// search enforcing the Armijo sufficient-decrease condition. Both stop when
// the relative change of the objective between accepted iterates falls below
// a tolerance or the iteration budget is exhausted.
package optimize

import (
	"github.com/YuminosukeSato/descent/core/vector"
)

// Function is a differentiable scalar function. Gradient must return a vector
// of the same dimension as x.
type Function interface {
	Eval(x vector.Vector) float64
	Gradient(x vector.Vector) vector.Vector
}

type funcAdapter struct {
	eval func(vector.Vector) float64
	grad func(vector.Vector) vector.Vector
}

func (f funcAdapter) Eval(x vector.Vector) float64           { return f.eval(x) }
func (f funcAdapter) Gradient(x vector.Vector) vector.Vector { return f.grad(x) }

// FunctionOf adapts a pair of closures to Function.
func FunctionOf(eval func(vector.Vector) float64, grad func(vector.Vector) vector.Vector) Function {
	return funcAdapter{eval: eval, grad: grad}
}

// objective presents f to the descent loop as a minimization problem and
// counts evaluations. Values are reported back in the caller's sign.
type objective struct {
	f     Function
	sign  float64
	evals int
}

func newObjective(f Function, minimize bool) *objective {
	sign := 1.0
	if !minimize {
		sign = -1.0
	}
	return &objective{f: f, sign: sign}
}

func (o *objective) value(x vector.Vector) float64 {
	o.evals++
	return o.sign * o.f.Eval(x)
}

func (o *objective) gradient(x vector.Vector) vector.Vector {
	g := o.f.Gradient(x)
	if o.sign < 0 {
		return vector.Scale(-1, g)
	}
	return g
}

func (o *objective) report(v float64) float64 {
	return o.sign * v
}
