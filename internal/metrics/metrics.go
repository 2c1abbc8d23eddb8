package metrics

import (
	"math"

	"github.com/san-kum/longsim/internal/sim"
)

// Distance tracks net displacement between the first and last observed
// samples.
type Distance struct {
	name    string
	firstX  float64
	lastX   float64
	samples int
}

func NewDistance() *Distance {
	return &Distance{name: "distance"}
}

func (d *Distance) Name() string { return d.name }

func (d *Distance) Observe(s sim.Sample, in sim.Inputs) {
	if d.samples == 0 {
		d.firstX = s.X
	}
	d.lastX = s.X
	d.samples++
}

func (d *Distance) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.lastX - d.firstX
}

func (d *Distance) Reset() {
	d.firstX = 0
	d.lastX = 0
	d.samples = 0
}

// PeakAcceleration tracks the largest acceleration magnitude seen.
type PeakAcceleration struct {
	name string
	peak float64
}

func NewPeakAcceleration() *PeakAcceleration {
	return &PeakAcceleration{name: "peak_accel"}
}

func (p *PeakAcceleration) Name() string { return p.name }

func (p *PeakAcceleration) Observe(s sim.Sample, in sim.Inputs) {
	if a := math.Abs(s.A); a > p.peak {
		p.peak = a
	}
}

func (p *PeakAcceleration) Value() float64 { return p.peak }
func (p *PeakAcceleration) Reset()         { p.peak = 0 }

// ThrottleEffort is the mean squared throttle command over the run.
type ThrottleEffort struct {
	name    string
	total   float64
	samples int
}

func NewThrottleEffort() *ThrottleEffort {
	return &ThrottleEffort{name: "throttle_effort"}
}

func (e *ThrottleEffort) Name() string { return e.name }

func (e *ThrottleEffort) Observe(s sim.Sample, in sim.Inputs) {
	e.total += in.Throttle * in.Throttle
	e.samples++
}

func (e *ThrottleEffort) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *ThrottleEffort) Reset() {
	e.total = 0
	e.samples = 0
}

// Finite reports the fraction of observed samples with fully finite
// state. Anything below 1 means the run crossed the v=0 domain boundary.
type Finite struct {
	name       string
	violations int
	samples    int
}

func NewFinite() *Finite {
	return &Finite{name: "finite"}
}

func (f *Finite) Name() string { return f.name }

func (f *Finite) Observe(s sim.Sample, in sim.Inputs) {
	f.samples++
	if !s.IsFinite() {
		f.violations++
	}
}

func (f *Finite) Value() float64 {
	if f.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(f.violations)/float64(f.samples)
}

func (f *Finite) Reset() {
	f.violations = 0
	f.samples = 0
}

// Defaults is the metric set attached to CLI runs.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewDistance(),
		NewPeakAcceleration(),
		NewThrottleEffort(),
		NewFinite(),
	}
}
