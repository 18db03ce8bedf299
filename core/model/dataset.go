package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/descent/core/vector"
	"github.com/YuminosukeSato/descent/pkg/errors"
)

// Example is one labelled observation.
type Example struct {
	X vector.Vector
	Y float64
}

// TrainingSet is an ordered collection of examples that share one input
// dimension. Cost functions hold a reference to it and never copy it.
type TrainingSet []Example

// Len returns the number of examples.
func (s TrainingSet) Len() int { return len(s) }

// Dim returns the input dimension of the first example, or 0 for an empty set.
func (s TrainingSet) Dim() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0].X)
}

// Validate rejects empty sets, examples without features, inconsistent input
// dimensions and non-finite values. op names the calling operation in errors.
func (s TrainingSet) Validate(op string) error {
	if len(s) == 0 {
		return errors.NewModelError(op, "empty training set", errors.ErrEmptyData)
	}
	d := s.Dim()
	if d == 0 {
		return errors.NewValueError(op, "examples must have at least one feature")
	}
	for i, ex := range s {
		if len(ex.X) != d {
			return errors.NewDimensionError(op, d, len(ex.X), 1)
		}
		if !vector.IsFinite(ex.X) || !errors.IsFinite(ex.Y) {
			return errors.NewValueError(op, fmt.Sprintf("example %d contains a non-finite value", i))
		}
	}
	return nil
}

// Inputs returns the inputs as an N×d matrix.
func (s TrainingSet) Inputs() *mat.Dense {
	if len(s) == 0 {
		return nil
	}
	d := s.Dim()
	data := make([]float64, 0, len(s)*d)
	for _, ex := range s {
		data = append(data, ex.X...)
	}
	return mat.NewDense(len(s), d, data)
}

// Labels returns the labels as a vector of length N.
func (s TrainingSet) Labels() *mat.VecDense {
	if len(s) == 0 {
		return nil
	}
	y := make([]float64, len(s))
	for i, ex := range s {
		y[i] = ex.Y
	}
	return mat.NewVecDense(len(s), y)
}

// WithInputs returns a new set with the same labels and the rows of X as
// inputs. X must have one row per example.
func (s TrainingSet) WithInputs(X mat.Matrix) (TrainingSet, error) {
	r, _ := X.Dims()
	if r != len(s) {
		return nil, errors.NewDimensionError("TrainingSet.WithInputs", len(s), r, 0)
	}
	out := make(TrainingSet, len(s))
	for i := range s {
		out[i] = Example{X: vector.Vector(mat.Row(nil, i, X)), Y: s[i].Y}
	}
	return out, nil
}

// FromMatrix builds a training set from an N×d input matrix and N labels.
func FromMatrix(X mat.Matrix, y mat.Vector) (TrainingSet, error) {
	r, _ := X.Dims()
	if y.Len() != r {
		return nil, errors.NewDimensionError("FromMatrix", r, y.Len(), 0)
	}
	set := make(TrainingSet, r)
	for i := 0; i < r; i++ {
		set[i] = Example{X: vector.Vector(mat.Row(nil, i, X)), Y: y.AtVec(i)}
	}
	return set, nil
}
