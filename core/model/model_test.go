package model

import (
	"math"
	"sync"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/descent/core/vector"
	"github.com/YuminosukeSato/descent/pkg/errors"
)

func TestTrainingSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     TrainingSet
		check   func(error) bool
		wantErr bool
	}{
		{
			name: "valid",
			set:  TrainingSet{{X: vector.Vector{1, 2}, Y: 3}, {X: vector.Vector{4, 5}, Y: 6}},
		},
		{
			name:    "empty",
			set:     TrainingSet{},
			wantErr: true,
			check:   func(err error) bool { return errors.Is(err, errors.ErrEmptyData) },
		},
		{
			name:    "no features",
			set:     TrainingSet{{X: vector.Vector{}, Y: 1}},
			wantErr: true,
			check: func(err error) bool {
				var e *errors.ValueError
				return errors.As(err, &e)
			},
		},
		{
			name:    "dimension mismatch",
			set:     TrainingSet{{X: vector.Vector{1, 2}, Y: 3}, {X: vector.Vector{4}, Y: 6}},
			wantErr: true,
			check: func(err error) bool {
				var e *errors.DimensionError
				return errors.As(err, &e) && e.Expected == 2 && e.Got == 1
			},
		},
		{
			name:    "NaN label",
			set:     TrainingSet{{X: vector.Vector{1}, Y: math.NaN()}},
			wantErr: true,
			check: func(err error) bool {
				var e *errors.ValueError
				return errors.As(err, &e)
			},
		},
		{
			name:    "Inf feature",
			set:     TrainingSet{{X: vector.Vector{math.Inf(1)}, Y: 0}},
			wantErr: true,
			check: func(err error) bool {
				var e *errors.ValueError
				return errors.As(err, &e)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate("Fit")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(err) {
				t.Errorf("unexpected error type: %v", err)
			}
		})
	}
}

func TestTrainingSetMatrixBridges(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	y := mat.NewVecDense(3, []float64{10, 20, 30})

	set, err := FromMatrix(X, y)
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 3 || set.Dim() != 2 {
		t.Fatalf("unexpected shape %d×%d", set.Len(), set.Dim())
	}
	if !mat.Equal(set.Inputs(), X) {
		t.Errorf("Inputs() = %v, want %v", mat.Formatted(set.Inputs()), mat.Formatted(X))
	}
	if !mat.Equal(set.Labels(), y) {
		t.Error("Labels() mismatch")
	}

	scaled := mat.NewDense(3, 2, nil)
	scaled.Scale(2, X)
	rescaled, err := set.WithInputs(scaled)
	if err != nil {
		t.Fatal(err)
	}
	if rescaled[1].X[1] != 8 || rescaled[1].Y != 20 {
		t.Errorf("WithInputs row 1 = %+v", rescaled[1])
	}
	if set[1].X[1] != 4 {
		t.Error("WithInputs modified the original set")
	}

	if _, err := FromMatrix(X, mat.NewVecDense(2, nil)); err == nil {
		t.Error("expected dimension error for mismatched labels")
	}
	if _, err := set.WithInputs(mat.NewDense(2, 2, nil)); err == nil {
		t.Error("expected dimension error for mismatched rows")
	}
	if (TrainingSet{}).Inputs() != nil || (TrainingSet{}).Labels() != nil {
		t.Error("empty set should have nil matrices")
	}
}

func TestStateManager(t *testing.T) {
	sm := NewStateManager("LinearRegression")

	err := sm.RequireFitted("Predict")
	var nf *errors.NotFittedError
	if !errors.As(err, &nf) || nf.ModelName != "LinearRegression" || nf.Method != "Predict" {
		t.Fatalf("expected NotFittedError, got %v", err)
	}

	sm.SetDimensions(3, 100)
	sm.SetFitted()
	if !sm.IsFitted() {
		t.Fatal("expected fitted")
	}
	if f, n := sm.GetDimensions(); f != 3 || n != 100 {
		t.Errorf("GetDimensions() = %d, %d", f, n)
	}
	if err := sm.RequireFeatures("Predict", 3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	var dim *errors.DimensionError
	if err := sm.RequireFeatures("Predict", 2); !errors.As(err, &dim) {
		t.Errorf("expected DimensionError, got %v", err)
	}

	sm.Reset()
	if sm.IsFitted() {
		t.Error("Reset should clear fitted state")
	}
}

func TestStateManagerConcurrentReads(t *testing.T) {
	sm := NewStateManager("m")
	sm.SetFitted()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if !sm.IsFitted() {
					t.Error("lost fitted state")
					return
				}
			}
		}()
	}
	wg.Wait()
}
