package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kselvik/springsim/internal/oscillator"
	"github.com/kselvik/springsim/internal/solver"
)

const (
	DefaultPosition = 0.5
	DefaultVelocity = 0.0
	DefaultFPS      = 60
	DefaultDuration = 50.0
)

type Config struct {
	Damping    float64          `yaml:"damping"`
	Stiffness  float64          `yaml:"stiffness"`
	Mass       float64          `yaml:"mass"`
	Forcing    float64          `yaml:"forcing"`
	InitState  InitStateConfig  `yaml:"init_state"`
	Integrator IntegratorConfig `yaml:"integrator"`
	FPS        int              `yaml:"fps"`
	Duration   float64          `yaml:"duration"`
}

type InitStateConfig struct {
	Position float64 `yaml:"position"`
	Velocity float64 `yaml:"velocity"`
}

type IntegratorConfig struct {
	Method      string  `yaml:"method"`
	AbsTol      float64 `yaml:"abs_tol"`
	RelTol      float64 `yaml:"rel_tol"`
	InitialStep float64 `yaml:"initial_step"`
}

func DefaultConfig() *Config {
	sc := solver.DefaultConfig()
	return &Config{
		Damping:   oscillator.DefaultDamping,
		Stiffness: oscillator.DefaultStiffness,
		Mass:      oscillator.DefaultMass,
		Forcing:   oscillator.DefaultForcing,
		InitState: InitStateConfig{
			Position: DefaultPosition,
			Velocity: DefaultVelocity,
		},
		Integrator: IntegratorConfig{
			Method:      string(sc.Method),
			AbsTol:      sc.AbsTol,
			RelTol:      sc.RelTol,
			InitialStep: sc.InitialStep,
		},
		FPS:      DefaultFPS,
		Duration: DefaultDuration,
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

func (c *Config) Params() oscillator.Params {
	return oscillator.Params{
		Damping:   c.Damping,
		Stiffness: c.Stiffness,
		Mass:      c.Mass,
		Forcing:   c.Forcing,
	}
}

func (c *Config) InitialState() solver.Vec {
	return solver.Vec{c.InitState.Position, c.InitState.Velocity}
}

// SolverConfig maps the file-level integrator section onto the solver
// config, keeping solver defaults for fields the file does not carry.
func (c *Config) SolverConfig() solver.Config {
	sc := solver.DefaultConfig()
	sc.Method = solver.Method(c.Integrator.Method)
	sc.AbsTol = c.Integrator.AbsTol
	sc.RelTol = c.Integrator.RelTol
	if c.Integrator.InitialStep > 0 {
		sc.InitialStep = c.Integrator.InitialStep
	}
	return sc
}
