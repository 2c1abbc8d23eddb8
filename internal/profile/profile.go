package profile

import (
	"math"

	"github.com/san-kum/longsim/internal/sim"
)

// Constant holds throttle and grade fixed for the whole run.
type Constant struct {
	Throttle float64
	Grade    float64
}

func (c Constant) Inputs(t, x float64) sim.Inputs {
	return sim.Inputs{Throttle: c.Throttle, Grade: c.Grade}
}

// TwoStageRamp is the reference calibration scenario: a trapezoidal
// throttle schedule and a two-segment incline whose grade switches once
// the vehicle has travelled SwitchX meters. The grade depends on the
// position sampled before the step, which preserves the scenario's
// position feedback while keeping the profile a pure function.
type TwoStageRamp struct {
	BaseThrottle float64 // throttle at t=0
	PeakThrottle float64 // throttle held between RampUpEnd and HoldEnd
	RampUpEnd    float64 // s
	HoldEnd      float64 // s
	DecayRate    float64 // throttle decrease per second after HoldEnd

	SwitchX     float64 // position at which the second incline starts (m)
	FirstGrade  float64 // rad
	SecondGrade float64 // rad
}

// NewTwoStageRamp returns the calibrated reference scenario: throttle
// 0.2 + 0.06t up to 5s, 0.5 until 15s, then ramping down at 0.1/s; a
// 3/60 rise until x=60m followed by a steeper 9/90 rise.
func NewTwoStageRamp() TwoStageRamp {
	return TwoStageRamp{
		BaseThrottle: 0.2,
		PeakThrottle: 0.5,
		RampUpEnd:    5,
		HoldEnd:      15,
		DecayRate:    0.1,
		SwitchX:      60,
		FirstGrade:   math.Atan(3.0 / 60.0),
		SecondGrade:  math.Atan(9.0 / 90.0),
	}
}

func (r TwoStageRamp) Inputs(t, x float64) sim.Inputs {
	rampRate := (r.PeakThrottle - r.BaseThrottle) / r.RampUpEnd

	var throttle float64
	switch {
	case t < r.RampUpEnd:
		throttle = r.BaseThrottle + rampRate*t
	case t <= r.HoldEnd:
		throttle = r.PeakThrottle
	default:
		throttle = r.PeakThrottle - r.DecayRate*(t-r.HoldEnd)
	}

	grade := r.FirstGrade
	if x >= r.SwitchX {
		grade = r.SecondGrade
	}

	return sim.Inputs{Throttle: throttle, Grade: grade}
}

// Segment is a half-open time window [T0, T1) with fixed inputs. A
// negative T1 means the segment extends to the end of the run.
type Segment struct {
	T0       float64
	T1       float64
	Throttle float64
	Grade    float64
}

// Schedule evaluates piecewise-constant segments in order, falling back
// to Defaults when no segment covers t. The first matching segment wins.
type Schedule struct {
	Defaults sim.Inputs
	Segments []Segment
}

func (s Schedule) Inputs(t, x float64) sim.Inputs {
	for _, seg := range s.Segments {
		t1 := seg.T1
		if t1 < 0 {
			t1 = math.Inf(1)
		}
		if t >= seg.T0 && t < t1 {
			return sim.Inputs{Throttle: seg.Throttle, Grade: seg.Grade}
		}
	}
	return s.Defaults
}
