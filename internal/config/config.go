package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/longsim/internal/vehicle"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 20.0
	DefaultThrottle = 0.2
)

type Config struct {
	Profile  string          `yaml:"profile"`
	Dt       float64         `yaml:"dt"`
	Duration float64         `yaml:"duration"`
	Throttle float64         `yaml:"throttle"`
	Grade    float64         `yaml:"grade"`
	Ramp     RampConfig      `yaml:"ramp"`
	Segments []SegmentConfig `yaml:"segments"`
	Vehicle  VehicleConfig   `yaml:"vehicle"`
}

type RampConfig struct {
	BaseThrottle float64 `yaml:"base_throttle"`
	PeakThrottle float64 `yaml:"peak_throttle"`
	RampUpEnd    float64 `yaml:"ramp_up_end"`
	HoldEnd      float64 `yaml:"hold_end"`
	DecayRate    float64 `yaml:"decay_rate"`
	SwitchX      float64 `yaml:"switch_x"`
	FirstRise    float64 `yaml:"first_rise"`  // rise over FirstRun, sets the first grade
	FirstRun     float64 `yaml:"first_run"`
	SecondRise   float64 `yaml:"second_rise"`
	SecondRun    float64 `yaml:"second_run"`
}

type SegmentConfig struct {
	T0       float64 `yaml:"t0"`
	T1       float64 `yaml:"t1"`
	Throttle float64 `yaml:"throttle"`
	Grade    float64 `yaml:"grade"`
}

// VehicleConfig overrides the calibrated vehicle parameters; zero fields
// keep the defaults.
type VehicleConfig struct {
	Mass          float64 `yaml:"mass"`
	GearRatio     float64 `yaml:"gear_ratio"`
	TireRadius    float64 `yaml:"tire_radius"`
	EngineInertia float64 `yaml:"engine_inertia"`
	DragCoeff     float64 `yaml:"drag_coeff"`
	RollCoeff     float64 `yaml:"roll_coeff"`
	TireStiffness float64 `yaml:"tire_stiffness"`
	MaxTireForce  float64 `yaml:"max_tire_force"`
	TorqueA0      float64 `yaml:"torque_a0"`
	TorqueA1      float64 `yaml:"torque_a1"`
	TorqueA2      float64 `yaml:"torque_a2"`
}

func DefaultConfig() *Config {
	return &Config{
		Profile:  "ramp",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Throttle: DefaultThrottle,
		Ramp: RampConfig{
			BaseThrottle: 0.2,
			PeakThrottle: 0.5,
			RampUpEnd:    5,
			HoldEnd:      15,
			DecayRate:    0.1,
			SwitchX:      60,
			FirstRise:    3,
			FirstRun:     60,
			SecondRise:   9,
			SecondRun:    90,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// VehicleParams maps the config onto the model parameters, keeping the
// calibrated defaults for any field left at zero.
func (c *Config) VehicleParams() vehicle.Params {
	p := vehicle.DefaultParams()
	if c.Dt > 0 {
		p.Dt = c.Dt
	}
	v := c.Vehicle
	if v.Mass > 0 {
		p.M = v.Mass
	}
	if v.GearRatio > 0 {
		p.GR = v.GearRatio
	}
	if v.TireRadius > 0 {
		p.Re = v.TireRadius
	}
	if v.EngineInertia > 0 {
		p.Je = v.EngineInertia
	}
	if v.DragCoeff > 0 {
		p.Ca = v.DragCoeff
	}
	if v.RollCoeff > 0 {
		p.Cr1 = v.RollCoeff
	}
	if v.TireStiffness > 0 {
		p.C = v.TireStiffness
	}
	if v.MaxTireForce > 0 {
		p.FMax = v.MaxTireForce
	}
	if v.TorqueA0 > 0 {
		p.A0 = v.TorqueA0
	}
	if v.TorqueA1 > 0 {
		p.A1 = v.TorqueA1
	}
	if v.TorqueA2 != 0 {
		p.A2 = v.TorqueA2
	}
	return p
}
