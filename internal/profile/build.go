package profile

import (
	"fmt"
	"math"

	"github.com/san-kum/longsim/internal/config"
	"github.com/san-kum/longsim/internal/sim"
)

// FromConfig builds the named profile out of a run configuration.
func FromConfig(cfg *config.Config) (sim.Profile, error) {
	switch cfg.Profile {
	case "constant":
		return Constant{Throttle: cfg.Throttle, Grade: cfg.Grade}, nil
	case "ramp":
		r := NewTwoStageRamp()
		rc := cfg.Ramp
		if rc.PeakThrottle > 0 {
			r.BaseThrottle = rc.BaseThrottle
			r.PeakThrottle = rc.PeakThrottle
		}
		if rc.RampUpEnd > 0 {
			r.RampUpEnd = rc.RampUpEnd
		}
		if rc.HoldEnd > 0 {
			r.HoldEnd = rc.HoldEnd
		}
		if rc.DecayRate > 0 {
			r.DecayRate = rc.DecayRate
		}
		if rc.SwitchX > 0 {
			r.SwitchX = rc.SwitchX
		}
		if rc.FirstRun > 0 {
			r.FirstGrade = math.Atan(rc.FirstRise / rc.FirstRun)
		}
		if rc.SecondRun > 0 {
			r.SecondGrade = math.Atan(rc.SecondRise / rc.SecondRun)
		}
		return r, nil
	case "schedule":
		s := Schedule{
			Defaults: sim.Inputs{Throttle: cfg.Throttle, Grade: cfg.Grade},
			Segments: make([]Segment, 0, len(cfg.Segments)),
		}
		for _, seg := range cfg.Segments {
			s.Segments = append(s.Segments, Segment{
				T0: seg.T0, T1: seg.T1, Throttle: seg.Throttle, Grade: seg.Grade,
			})
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown profile: %s", cfg.Profile)
	}
}
