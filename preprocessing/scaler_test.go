package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/descent/core/vector"
	"github.com/YuminosukeSato/descent/pkg/errors"
)

func TestStandardScalerPopulationStatistics(t *testing.T) {
	// column 0: 1,2,3,4 → mean 2.5, population std sqrt(1.25)
	// column 1: 10,10,20,20 → mean 15, population std 5
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 20,
		4, 20,
	})
	s := NewStandardScalerDefault()
	if err := s.Fit(X); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if !vector.Equal(s.Mean(), vector.Vector{2.5, 15}, 1e-12) {
		t.Errorf("Mean() = %v", s.Mean())
	}
	if !vector.Equal(s.Scale(), vector.Vector{math.Sqrt(1.25), 5}, 1e-12) {
		t.Errorf("Scale() = %v", s.Scale())
	}

	Xt, err := s.Transform(X)
	if err != nil {
		t.Fatal(err)
	}
	for j := 0; j < 2; j++ {
		col := mat.Col(nil, j, Xt)
		m, sd := 0.0, 0.0
		for _, v := range col {
			m += v
		}
		m /= float64(len(col))
		for _, v := range col {
			sd += (v - m) * (v - m)
		}
		sd = math.Sqrt(sd / float64(len(col)))
		if math.Abs(m) > 1e-12 || math.Abs(sd-1) > 1e-12 {
			t.Errorf("column %d: mean %v std %v after transform", j, m, sd)
		}
	}

	back, err := s.InverseTransform(Xt)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.EqualApprox(back, X, 1e-12) {
		t.Errorf("InverseTransform round trip failed: %v", mat.Formatted(back))
	}
}

func TestStandardScalerConstantFeature(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 0.1,
		2, 0.1,
		3, 0.1,
	})

	err := NewStandardScalerDefault().Fit(X)
	var dfErr *errors.DegenerateFeatureError
	if !errors.As(err, &dfErr) {
		t.Fatalf("expected DegenerateFeatureError, got %v", err)
	}
	if dfErr.Feature != 1 || dfErr.Value != 0.1 {
		t.Errorf("unexpected error fields %+v", dfErr)
	}

	s := NewStandardScalerDefault().WithConstantFeatures(UnitScale)
	if err := s.Fit(X); err != nil {
		t.Fatalf("UnitScale Fit() error = %v", err)
	}
	shift, scale := s.Affine()
	if scale[1] != 1 {
		t.Errorf("constant feature scale = %v, want 1", scale[1])
	}
	got, err := s.TransformVector(vector.Vector{2, 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got[0]) > 1e-12 || math.Abs(got[1]) > 1e-12 {
		t.Errorf("TransformVector at the mean = %v, want zeros (shift %v)", got, shift)
	}
}

func TestStandardScalerRelativeSpreadRule(t *testing.T) {
	tests := []struct {
		name       string
		col        []float64
		degenerate bool
	}{
		{"exactly constant", []float64{5, 5, 5}, true},
		{"rounding-level spread at large magnitude", []float64{1e6, 1e6 + 1e-7, 1e6}, true},
		{"small real spread", []float64{1, 1.001, 1}, false},
		{"tiny values near zero", []float64{0, 1e-9, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			X := mat.NewDense(len(tt.col), 1, tt.col)
			err := NewStandardScalerDefault().Fit(X)
			var dfErr *errors.DegenerateFeatureError
			if got := errors.As(err, &dfErr); got != tt.degenerate {
				t.Fatalf("degenerate = %v, want %v (err %v)", got, tt.degenerate, err)
			}
			if !tt.degenerate && err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
		})
	}
}

func TestStandardScalerWithoutMeanOrStd(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{2, 2})
	s := NewStandardScaler(false, false)
	if err := s.Fit(X); err != nil {
		t.Fatalf("constant column must be accepted without std scaling: %v", err)
	}
	shift, scale := s.Affine()
	if shift[0] != 0 || scale[0] != 1 {
		t.Errorf("identity transform expected, got shift %v scale %v", shift, scale)
	}
}

func TestScalerErrors(t *testing.T) {
	s := NewStandardScalerDefault()

	var nf *errors.NotFittedError
	if _, err := s.Transform(mat.NewDense(1, 1, []float64{1})); !errors.As(err, &nf) {
		t.Errorf("expected NotFittedError, got %v", err)
	}
	if _, err := s.TransformVector(vector.Vector{1}); !errors.As(err, &nf) {
		t.Errorf("expected NotFittedError, got %v", err)
	}

	if err := s.Fit(&mat.Dense{}); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}

	if err := s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 5})); err != nil {
		t.Fatal(err)
	}
	var dim *errors.DimensionError
	if _, err := s.Transform(mat.NewDense(1, 3, nil)); !errors.As(err, &dim) {
		t.Errorf("expected DimensionError, got %v", err)
	}
	if _, err := s.TransformVector(vector.Vector{1}); !errors.As(err, &dim) {
		t.Errorf("expected DimensionError, got %v", err)
	}
}

func TestMinMaxScaler(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		0, -5,
		5, 0,
		10, 5,
	})

	tests := []struct {
		name  string
		rng   [2]float64
		input vector.Vector
		want  vector.Vector
	}{
		{"unit range", [2]float64{0, 1}, vector.Vector{5, 5}, vector.Vector{0.5, 1}},
		{"symmetric range", [2]float64{-1, 1}, vector.Vector{0, 0}, vector.Vector{-1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMinMaxScaler(tt.rng)
			Xt, err := m.FitTransform(X)
			if err != nil {
				t.Fatal(err)
			}
			for j := 0; j < 2; j++ {
				col := mat.Col(nil, j, Xt)
				if math.Abs(col[0]-tt.rng[0]) > 1e-12 || math.Abs(col[2]-tt.rng[1]) > 1e-12 {
					t.Errorf("column %d = %v, want endpoints %v", j, col, tt.rng)
				}
			}
			got, err := m.TransformVector(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if !vector.Equal(got, tt.want, 1e-12) {
				t.Errorf("TransformVector(%v) = %v, want %v", tt.input, got, tt.want)
			}
			back, err := m.InverseTransform(Xt)
			if err != nil {
				t.Fatal(err)
			}
			if !mat.EqualApprox(back, X, 1e-12) {
				t.Errorf("round trip failed: %v", mat.Formatted(back))
			}
		})
	}
}

func TestMinMaxScalerConstantAndRange(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{4, 4})

	var dfErr *errors.DegenerateFeatureError
	if err := NewMinMaxScalerDefault().Fit(X); !errors.As(err, &dfErr) {
		t.Errorf("expected DegenerateFeatureError, got %v", err)
	}
	if err := NewMinMaxScalerDefault().WithConstantFeatures(UnitScale).Fit(X); err != nil {
		t.Errorf("UnitScale should accept constant feature: %v", err)
	}

	var vErr *errors.ValidationError
	if err := NewMinMaxScaler([2]float64{1, 1}).Fit(mat.NewDense(2, 1, []float64{0, 1})); !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError for empty range, got %v", err)
	}
}

func TestScalerString(t *testing.T) {
	s := NewStandardScalerDefault()
	if s.String() != "StandardScaler(with_mean=true, with_std=true)" {
		t.Errorf("String() = %q", s.String())
	}
	_ = s.Fit(mat.NewDense(2, 1, []float64{0, 1}))
	if s.String() != "StandardScaler(with_mean=true, with_std=true, n_features=1)" {
		t.Errorf("String() = %q", s.String())
	}
	if p := s.GetParams(); p["constant_features"] != "reject" {
		t.Errorf("GetParams() = %v", p)
	}
}

func TestParseConstantFeaturePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ConstantFeaturePolicy
		wantErr bool
	}{
		{"", RejectConstant, false},
		{"reject", RejectConstant, false},
		{"Unit-Scale", UnitScale, false},
		{"unit_scale", UnitScale, false},
		{"drop", RejectConstant, true},
	}
	for _, tt := range tests {
		got, err := ParseConstantFeaturePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseConstantFeaturePolicy(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseConstantFeaturePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
