package config

var Presets = map[string]*Config{
	"ramp_climb": {
		Profile: "ramp", Dt: 0.01, Duration: 20.0,
		Ramp: RampConfig{
			BaseThrottle: 0.2, PeakThrottle: 0.5,
			RampUpEnd: 5, HoldEnd: 15, DecayRate: 0.1,
			SwitchX: 60, FirstRise: 3, FirstRun: 60, SecondRise: 9, SecondRun: 90,
		},
	},
	"coast": {
		Profile: "constant", Dt: 0.01, Duration: 10.0,
		Throttle: 0.0, Grade: 0.0,
	},
	"cruise": {
		Profile: "constant", Dt: 0.01, Duration: 100.0,
		Throttle: 0.2, Grade: 0.0,
	},
	"pulse": {
		Profile: "schedule", Dt: 0.01, Duration: 30.0,
		Segments: []SegmentConfig{
			{T0: 0, T1: 10, Throttle: 0.4},
			{T0: 10, T1: 20, Throttle: 0.1},
			{T0: 20, T1: -1, Throttle: 0.4},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
