package config

// Presets carry the classic projectile parameter sets (muzzle velocities
// slowed to visible speeds, masses and accelerations rescaled to match)
// plus spring and bungee rigs.
var Presets = map[string]map[string]*Config{
	"bullet": {
		"standard": {
			Scenario: "bullet", Integrator: "euler", Dt: DefaultDt, Duration: 5.0,
			InitState: InitState{Y: 1.5, VX: 35, AY: -1, Mass: 2, Damping: 0.99},
		},
		"gravity": {
			Scenario: "bullet", Integrator: "euler", Dt: DefaultDt, Duration: 1.0,
			InitState: InitState{Y: 5, VX: 35, Mass: 2, Damping: 0.99},
			Forces:    ForceConfig{Gravity: true},
		},
	},
	"artillery": {
		"standard": {
			Scenario: "artillery", Integrator: "euler", Dt: DefaultDt, Duration: 8.0,
			InitState: InitState{Y: 1.0, VX: 30, VY: 40, AY: -20, Mass: 200, Damping: 0.99},
		},
	},
	"fireball": {
		"standard": {
			Scenario: "fireball", Integrator: "euler", Dt: DefaultDt, Duration: 10.0,
			InitState: InitState{Y: 1.0, VX: 10, AY: 0.6, Mass: 1, Damping: 0.9},
		},
	},
	"springpair": {
		"standard": {
			Scenario: "springpair", Integrator: "euler", Dt: DefaultDt, Duration: 10.0,
			InitState: InitState{X: 3, Mass: 1, Damping: 0.95},
			Forces:    ForceConfig{SpringConstant: 20, SpringDamping: 2.0, RestLength: 1.0},
		},
		"stiff": {
			Scenario: "springpair", Integrator: "rk4", Dt: 0.005, Duration: 10.0,
			InitState: InitState{X: 3, Mass: 1, Damping: 0.95},
			Forces:    ForceConfig{SpringConstant: 200, SpringDamping: 1.0, RestLength: 1.0},
		},
	},
	"bungeepair": {
		"standard": {
			Scenario: "bungeepair", Integrator: "euler", Dt: DefaultDt, Duration: 10.0,
			InitState: InitState{X: 4, Mass: 1, Damping: 0.95},
			Forces:    ForceConfig{SpringConstant: 20, SpringDamping: 2.0, RestLength: 2.0},
		},
	},
	"anchored": {
		"standard": {
			Scenario: "anchored", Integrator: "rk4", Dt: 0.01, Duration: 10.0,
			InitState: InitState{Y: -2, Mass: 1, Damping: 1.0},
			Forces:    ForceConfig{SpringConstant: 10, RestLength: 1.0},
		},
		"oscillator": {
			Scenario: "anchored", Integrator: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: InitState{X: 1, Mass: 1, Damping: 1.0},
			Forces:    ForceConfig{SpringConstant: 1, RestLength: 0},
		},
	},
}

// GetPreset returns a copy, so callers can override fields freely.
func GetPreset(scenario, name string) *Config {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	p, ok := group[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets(scenario string) []string {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
