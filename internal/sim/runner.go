package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/longsim/internal/vehicle"
)

// Runner drives a single vehicle model against a driving profile. The
// loop is sequential by construction: the profile for step i reads the
// position recorded before step i, so calls are never concurrent.
type Runner struct {
	model     *vehicle.Model
	profile   Profile
	metrics   []Metric
	observers []Observer
}

func New(model *vehicle.Model, profile Profile) *Runner {
	return &Runner{
		model:     model,
		profile:   profile,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run advances the model for cfg.Duration seconds at the model's fixed
// timestep. Each iteration records the pre-step state paired with time
// i*dt, then steps, so sample i aligns with time i*dt. With
// cfg.ValidateState set, a non-finite post-step state stops the run and
// is surfaced in Result.Errors instead of being masked.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	dt := r.model.Params.Dt
	if err := validate(cfg, dt); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / dt)
	result := &Result{
		Times:         make([]float64, 0, steps),
		Positions:     make([]float64, 0, steps),
		Velocities:    make([]float64, 0, steps),
		Accelerations: make([]float64, 0, steps),
		EngineSpeeds:  make([]float64, 0, steps),
		Throttles:     make([]float64, 0, steps),
		Grades:        make([]float64, 0, steps),
		Metrics:       make(map[string]float64),
		Errors:        make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(i) * dt
		s := Sample{T: t, X: r.model.X, V: r.model.V, A: r.model.A, We: r.model.We}
		in := r.profile.Inputs(t, r.model.X)

		for _, m := range r.metrics {
			m.Observe(s, in)
		}
		for _, obs := range r.observers {
			obs.OnStep(s, in)
		}

		result.Times = append(result.Times, s.T)
		result.Positions = append(result.Positions, s.X)
		result.Velocities = append(result.Velocities, s.V)
		result.Accelerations = append(result.Accelerations, s.A)
		result.EngineSpeeds = append(result.EngineSpeeds, s.We)
		result.Throttles = append(result.Throttles, in.Throttle)
		result.Grades = append(result.Grades, in.Grade)

		r.model.Step(in.Throttle, in.Grade)
		result.StepsTaken++

		if cfg.ValidateState && !r.model.IsFinite() {
			result.Errors = append(result.Errors, SimError{
				Time: t, Step: i, Message: "non-finite state (NaN/Inf)",
			})
			break
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the model until the duration elapses or the
// callback returns false. The callback sees the same pre-step sample the
// recorder would.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(s Sample, in Inputs) bool) error {
	dt := r.model.Params.Dt
	if err := validate(cfg, dt); err != nil {
		return err
	}

	steps := int(cfg.Duration / dt)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := float64(i) * dt
		s := Sample{T: t, X: r.model.X, V: r.model.V, A: r.model.A, We: r.model.We}
		in := r.profile.Inputs(t, r.model.X)

		if !callback(s, in) {
			return nil
		}

		r.model.Step(in.Throttle, in.Grade)

		if cfg.ValidateState && !r.model.IsFinite() {
			return SimError{Time: t, Step: i, Message: "non-finite state (NaN/Inf)"}
		}
	}

	return nil
}

func validate(cfg Config, dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
