package sim

import (
	"math"
	"testing"
)

func TestSample_IsFinite(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		finite bool
	}{
		{"zero", Sample{}, true},
		{"typical", Sample{T: 1, X: 10, V: 5, A: 0.1, We: 100}, true},
		{"nan velocity", Sample{V: math.NaN()}, false},
		{"inf position", Sample{X: math.Inf(1)}, false},
		{"negative inf accel", Sample{A: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sample.IsFinite(); got != tt.finite {
				t.Errorf("IsFinite() = %v, want %v", got, tt.finite)
			}
		})
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
}
