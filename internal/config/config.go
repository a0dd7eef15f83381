package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 1.0 / 60
	DefaultDuration = 5.0
	DefaultSubsteps = 100
	DefaultMass     = 2.0
	DefaultDamping  = 0.99

	DefaultSpringConstant = 50.0
	DefaultSpringDamping  = 0.1
	DefaultRestLength     = 1.0

	DefaultDragLinear    = 0.05
	DefaultDragQuadratic = 0.005
)

type Config struct {
	Scenario   string      `yaml:"scenario"`
	Integrator string      `yaml:"integrator"`
	Substeps   int         `yaml:"substeps"`
	Dt         float64     `yaml:"dt"`
	Duration   float64     `yaml:"duration"`
	InitState  InitState   `yaml:"init_state"`
	Forces     ForceConfig `yaml:"forces"`
}

type InitState struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Z       float64 `yaml:"z"`
	VX      float64 `yaml:"vx"`
	VY      float64 `yaml:"vy"`
	VZ      float64 `yaml:"vz"`
	AX      float64 `yaml:"ax"`
	AY      float64 `yaml:"ay"`
	AZ      float64 `yaml:"az"`
	Mass    float64 `yaml:"mass"`
	Damping float64 `yaml:"damping"`
}

type ForceConfig struct {
	Gravity        bool    `yaml:"gravity"`
	DragLinear     float64 `yaml:"drag_linear"`
	DragQuadratic  float64 `yaml:"drag_quadratic"`
	SpringConstant float64 `yaml:"spring_constant"`
	SpringDamping  float64 `yaml:"spring_damping"`
	RestLength     float64 `yaml:"rest_length"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   "bullet",
		Integrator: "euler",
		Substeps:   DefaultSubsteps,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		InitState: InitState{
			Y:       5.0,
			VX:      35.0,
			Mass:    DefaultMass,
			Damping: DefaultDamping,
		},
		Forces: ForceConfig{
			Gravity:        true,
			SpringConstant: DefaultSpringConstant,
			SpringDamping:  DefaultSpringDamping,
			RestLength:     DefaultRestLength,
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
