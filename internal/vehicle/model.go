package vehicle

import (
	"fmt"
	"math"
)

// Params holds the fixed physical parameters of the longitudinal model.
// They are set at construction and never change during a run.
type Params struct {
	A0 float64 // engine torque polynomial: Te = throttle * (a0 + a1*we + a2*we^2)
	A1 float64
	A2 float64 // negative, bends the torque curve down at high engine speed
	GR float64 // gear ratio

	Re float64 // effective tire radius (m)
	Je float64 // engine inertia (kg m^2)
	M  float64 // vehicle mass (kg)
	G  float64 // gravitational acceleration (m/s^2)

	Ca   float64 // aerodynamic drag coefficient
	Cr1  float64 // rolling resistance coefficient
	C    float64 // tire stiffness (linear slip regime)
	FMax float64 // maximum tire force (N)

	Dt float64 // integration timestep (s)
}

// DefaultParams returns the calibrated parameter set.
func DefaultParams() Params {
	return Params{
		A0:   400,
		A1:   0.1,
		A2:   -0.0002,
		GR:   0.35,
		Re:   0.3,
		Je:   10,
		M:    2000,
		G:    9.81,
		Ca:   1.36,
		Cr1:  0.01,
		C:    10000,
		FMax: 10000,
		Dt:   0.01,
	}
}

// Validate checks that the parameter set is physically meaningful.
// Step itself performs no validation; misconfigured parameters produce
// numerically defined but meaningless trajectories.
func (p Params) Validate() error {
	positives := []struct {
		name string
		val  float64
	}{
		{"a0", p.A0},
		{"a1", p.A1},
		{"gear ratio", p.GR},
		{"tire radius", p.Re},
		{"engine inertia", p.Je},
		{"mass", p.M},
		{"gravity", p.G},
		{"drag coefficient", p.Ca},
		{"rolling coefficient", p.Cr1},
		{"tire stiffness", p.C},
		{"max tire force", p.FMax},
		{"dt", p.Dt},
	}
	for _, f := range positives {
		if f.val <= 0 {
			return fmt.Errorf("%s must be positive, got %f", f.name, f.val)
		}
	}
	if p.A2 >= 0 {
		return fmt.Errorf("a2 must be negative, got %f", p.A2)
	}
	return nil
}

// Initial state restored by Reset.
const (
	initX  = 0.0
	initV  = 5.0
	initWe = 100.0
)

// Model is the longitudinal vehicle model: a single mutable aggregate
// advanced in place by Step, one timestep per call.
type Model struct {
	Params Params

	X     float64 // position (m)
	V     float64 // velocity (m/s)
	A     float64 // acceleration (m/s^2)
	We    float64 // engine angular velocity (rad/s)
	WeDot float64 // engine angular acceleration (rad/s^2)
}

func New() *Model {
	return NewWithParams(DefaultParams())
}

func NewWithParams(p Params) *Model {
	m := &Model{Params: p}
	m.Reset()
	return m
}

// NewValidated fails fast on a misconfigured parameter set.
func NewValidated(p Params) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return NewWithParams(p), nil
}

// Reset restores the mutable state to its initial values, leaving the
// parameters untouched. Idempotent.
func (m *Model) Reset() {
	m.X = initX
	m.V = initV
	m.A = 0
	m.We = initWe
	m.WeDot = 0
}

// Step advances the state by one timestep given a throttle command
// (nominally in [0,1], not enforced) and a road grade angle in radians.
//
// The evaluation order is load-bearing: load forces and engine torque use
// the pre-update V and We, the velocity update runs before the position
// update, and the position update uses the already-updated velocity. The
// slip ratio divides by V and is undefined at V = 0; callers must keep
// V > 0 (the default initial velocity does). When the slip magnitude
// reaches 1, including the non-finite values produced near V = 0, tire
// force saturates at FMax.
func (m *Model) Step(throttle, gradeAngle float64) {
	p := m.Params

	rx := p.Cr1 * m.V
	fGrade := p.M * p.G * math.Sin(gradeAngle)
	fAero := p.Ca * m.V * m.V
	fLoad := fAero + rx + fGrade

	te := throttle * (p.A0 + p.A1*m.We + p.A2*m.We*m.We)

	ww := p.GR * m.We
	s := (ww*p.Re - m.V) / m.V

	var fx float64
	if math.Abs(s) < 1 {
		fx = p.C * s
	} else {
		fx = p.FMax
	}

	m.A = (fx - fLoad) / p.M
	m.V += m.A * p.Dt
	m.X += m.V * p.Dt // semi-implicit: position uses the updated velocity

	m.WeDot = (te - p.GR*p.Re*fLoad) / p.Je
	m.We += m.WeDot * p.Dt
}

// IsFinite reports whether all state fields are finite. A run that drives
// V toward zero can produce non-finite state; the model does not mask it.
func (m *Model) IsFinite() bool {
	for _, v := range []float64{m.X, m.V, m.A, m.We, m.WeDot} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
