// Package vector provides the fixed-dimension real vector used as the point
// type of the optimizer and as a single input of the regression models.
//
// All operations are pure: they return a new Vector and never modify their
// arguments. Operations on two vectors panic when the lengths differ, which is
// the contract of the underlying gonum floats routines.
package vector

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Vector is an ordered sequence of float64.
type Vector []float64

// New returns a zero vector of dimension n.
func New(n int) Vector {
	return make(Vector, n)
}

// Clone returns a copy of v. A nil v stays nil.
func Clone(v Vector) Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Add returns a + b.
func Add(a, b Vector) Vector {
	return floats.AddTo(make(Vector, len(a)), a, b)
}

// Sub returns a - b.
func Sub(a, b Vector) Vector {
	return floats.SubTo(make(Vector, len(a)), a, b)
}

// Mul returns the element-wise product of a and b.
func Mul(a, b Vector) Vector {
	return floats.MulTo(make(Vector, len(a)), a, b)
}

// Div returns the element-wise quotient a / b.
func Div(a, b Vector) Vector {
	return floats.DivTo(make(Vector, len(a)), a, b)
}

// Scale returns c * v.
func Scale(c float64, v Vector) Vector {
	return floats.ScaleTo(make(Vector, len(v)), c, v)
}

// AddScalar returns v with c added to every element.
func AddScalar(v Vector, c float64) Vector {
	out := Clone(v)
	floats.AddConst(c, out)
	return out
}

// AddScaled returns a + alpha*b.
func AddScaled(a Vector, alpha float64, b Vector) Vector {
	return floats.AddScaledTo(make(Vector, len(a)), a, alpha, b)
}

// Dot returns the inner product of a and b.
func Dot(a, b Vector) float64 {
	return floats.Dot(a, b)
}

// SqLength returns the squared Euclidean length of v.
func SqLength(v Vector) float64 {
	return floats.Dot(v, v)
}

// Norm returns the Euclidean length of v.
func Norm(v Vector) float64 {
	return floats.Norm(v, 2)
}

// Apply returns fn applied to every element of v.
func Apply(v Vector, fn func(float64) float64) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = fn(x)
	}
	return out
}

// Equal reports whether a and b have the same length and every pair of
// elements differs by at most tol.
func Equal(a, b Vector, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	return floats.EqualApprox(a, b, tol)
}

// IsFinite reports whether every element of v is neither NaN nor ±Inf.
func IsFinite(v Vector) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Len returns the dimension of v.
func (v Vector) Len() int { return len(v) }

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.6g", x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
