package sim

import (
	"fmt"
	"math"
)

// Inputs is one (throttle, grade) pair fed to the model for a single step.
type Inputs struct {
	Throttle float64
	Grade    float64 // road grade angle (rad), positive uphill
}

// Sample is the recorded state at one time index, taken before the step
// that consumes the inputs for that index.
type Sample struct {
	T  float64
	X  float64
	V  float64
	A  float64
	We float64
}

func (s Sample) IsFinite() bool {
	for _, v := range []float64{s.T, s.X, s.V, s.A, s.We} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Profile produces the driving inputs for time t given the vehicle
// position recorded before the step. Implementations must be pure so the
// position feedback stays explicit and testable.
type Profile interface {
	Inputs(t, x float64) Inputs
}

// Observer is notified with each pre-step sample and the inputs about to
// be applied.
type Observer interface {
	OnStep(s Sample, in Inputs)
}

type Metric interface {
	Name() string
	Observe(s Sample, in Inputs)
	Value() float64
	Reset()
}

type Config struct {
	Duration      float64
	ValidateState bool
}

// Result holds one trajectory in column form; index i corresponds to time
// Times[i] = i*dt and to the state sampled before step i.
type Result struct {
	Times         []float64
	Positions     []float64
	Velocities    []float64
	Accelerations []float64
	EngineSpeeds  []float64
	Throttles     []float64
	Grades        []float64

	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
