package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "optimization failed",
			err:      fmt.Errorf("test error"),
			wantMsg:  "descent: Fit: optimization failed: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "descent: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestModelErrorUnwrap(t *testing.T) {
	err := NewModelError("Fit", "empty training set", ErrEmptyData)
	if !Is(err, ErrEmptyData) {
		t.Error("Expected Is(err, ErrEmptyData) to be true through ModelError.Unwrap")
	}
}

func TestNewDimensionError(t *testing.T) {
	tests := []struct {
		axis int
		want string
	}{
		{0, "descent: Predict: dimension mismatch on axis 0 (rows). Expected 10, got 9"},
		{1, "descent: Predict: dimension mismatch on axis 1 (features). Expected 3, got 4"},
	}
	for _, tt := range tests {
		var err error
		if tt.axis == 0 {
			err = NewDimensionError("Predict", 10, 9, 0)
		} else {
			err = NewDimensionError("Predict", 3, 4, 1)
		}
		if err.Error() != tt.want {
			t.Errorf("Error() = %v, want %v", err.Error(), tt.want)
		}

		var dimErr *DimensionError
		if !As(err, &dimErr) {
			t.Fatal("Error should be castable to *DimensionError")
		}
		if dimErr.Axis != tt.axis {
			t.Errorf("Axis = %d, want %d", dimErr.Axis, tt.axis)
		}
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("LinearRegression", "Predict")

	want := "descent: LinearRegression: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValueError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		param   string
		value   interface{}
		message string
		wantMsg string
	}{
		{
			name:    "with message",
			op:      "Optimize",
			param:   "initial_point",
			value:   0,
			message: "must not be empty",
			wantMsg: "descent: Optimize: initial_point: 0 (must not be empty)",
		},
		{
			name:    "without message",
			op:      "Fit",
			param:   "features",
			value:   "NaN",
			message: "",
			wantMsg: "descent: Fit: features: NaN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.message != "" {
				err = NewValueError(tt.op, fmt.Sprintf("%s: %v (%s)", tt.param, tt.value, tt.message))
			} else {
				err = NewValueError(tt.op, fmt.Sprintf("%s: %v", tt.param, tt.value))
			}

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var valErr *ValueError
			if !As(err, &valErr) {
				t.Error("Error should be castable to *ValueError")
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("learning_rate", "must be positive", -0.5)
	want := "descent: validation failed for parameter 'learning_rate': must be positive (got: -0.5)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
	var vErr *ValidationError
	if !As(err, &vErr) {
		t.Fatal("Error should be castable to *ValidationError")
	}
	if vErr.ParamName != "learning_rate" {
		t.Errorf("ParamName = %q", vErr.ParamName)
	}
}

func TestNewLineSearchError(t *testing.T) {
	err := NewLineSearchError(7, 64, 1e-20, -4)
	var lsErr *LineSearchError
	if !As(err, &lsErr) {
		t.Fatal("Error should be castable to *LineSearchError")
	}
	if lsErr.Iteration != 7 || lsErr.Steps != 64 {
		t.Errorf("unexpected fields: %+v", lsErr)
	}
	if !strings.Contains(err.Error(), "line search failed at iteration 7") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestNewDegenerateFeatureError(t *testing.T) {
	err := NewDegenerateFeatureError("StandardScaler.Fit", 2, 3.5)
	want := "descent: StandardScaler.Fit: feature 2 has zero variance (every sample equals 3.5) and cannot be standardized"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
	var dfErr *DegenerateFeatureError
	if !As(err, &dfErr) || dfErr.Feature != 2 {
		t.Error("Error should be castable to *DegenerateFeatureError with Feature 2")
	}
}

func TestNewConvergenceWarning(t *testing.T) {
	warn := NewConvergenceWarning("GradientDescent", 1000, "loss did not decrease")

	want := "GradientDescent failed to converge after 1000 iterations: loss did not decrease"
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}

	var convWarn *ConvergenceWarning
	if !As(warn, &convWarn) {
		t.Error("Warning should be castable to *ConvergenceWarning")
	}
}

func TestConvergenceWarningMarshalZerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Warn().Object("warning", NewConvergenceWarning("GradientDescent", 5, "stalled")).Msg("w")

	out := buf.String()
	for _, want := range []string{`"algorithm":"GradientDescent"`, `"iterations":5`, `"type":"ConvergenceWarning"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestWarnRouting(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(func(w error) {})

	Warn(NewConvergenceWarning("GradientDescent", 1, ""))
	if len(got) != 1 {
		t.Fatalf("expected handler to receive 1 warning, got %d", len(got))
	}

	var viaZerolog int
	SetZerologWarnFunc(func(w error) { viaZerolog++ })
	Warn(NewConvergenceWarning("GradientDescent", 2, ""))
	SetZerologWarnFunc(nil)

	if viaZerolog != 1 {
		t.Errorf("expected zerolog func to receive warning, got %d", viaZerolog)
	}
	if len(got) != 1 {
		t.Errorf("fallback handler should not be called while zerolog func is set")
	}
}

func TestWrapf(t *testing.T) {
	baseErr := ErrEmptyData

	wrapped := Wrapf(baseErr, "in %s: expected %d, got %d", "Fit", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Fit: expected 10, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	// スタックトレースの確認（詳細表示）
	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
