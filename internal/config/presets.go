package config

import "sort"

var Presets = map[string]map[string]*Config{
	"binary": {
		"orbit": {
			Scenario: "binary", Scheme: "leapfrog", Dt: 0.001, Steps: 6300,
			Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations,
		},
		"precise": {
			Scenario: "binary", Scheme: "rk4", Dt: 0.001, Steps: 6300,
			Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations,
		},
		"drift": {
			Scenario: "binary", Scheme: "euler", Dt: 0.0005, Steps: 12600,
			Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations,
		},
	},
	"solar": {
		"year": {
			Scenario: "solar", Scheme: "leapfrog", Dt: 0.001, Steps: 1000,
			Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations,
		},
		"decade": {
			Scenario: "solar", Scheme: "leapfrog", Dt: 0.001, Steps: 10000, Stride: 10,
			Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations,
		},
	},
	"figure8": {
		"loop": {
			Scenario: "figure8", Scheme: "rk4", Dt: 0.001, Steps: 6326,
			Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations,
		},
		"long": {
			Scenario: "figure8", Scheme: "leapfrog", Dt: 0.001, Steps: 63260, Stride: 10,
			Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations,
		},
	},
	"trio": {
		"tumble": {
			Scenario: "trio", Scheme: "rk4", Dt: 0.0005, Steps: 20000, Stride: 10,
			Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations,
		},
	},
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
