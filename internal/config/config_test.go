package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kselvik/springsim/internal/oscillator"
	"github.com/kselvik/springsim/internal/solver"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mass != oscillator.DefaultMass || cfg.Stiffness != oscillator.DefaultStiffness {
		t.Errorf("physical defaults not seeded from the oscillator: %+v", cfg)
	}
	if cfg.Integrator.Method != string(solver.MethodRK1Imp) {
		t.Errorf("default method = %q, want rk1imp", cfg.Integrator.Method)
	}
	if cfg.FPS != DefaultFPS || cfg.Duration != DefaultDuration {
		t.Errorf("fps/duration defaults wrong: %d %.1f", cfg.FPS, cfg.Duration)
	}
	if cfg.InitialState() != (solver.Vec{0.5, 0}) {
		t.Errorf("initial state = %v, want {0.5, 0}", cfg.InitialState())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Damping = 1.5
	cfg.InitState.Velocity = -0.3
	cfg.Integrator.Method = string(solver.MethodRK45)
	cfg.FPS = 30

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if *loaded != *cfg {
		t.Errorf("round trip changed the config:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "stiffness: 8.0\nintegrator:\n  method: rk45\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Stiffness != 8.0 {
		t.Errorf("stiffness = %g, want 8", cfg.Stiffness)
	}
	if cfg.Integrator.Method != string(solver.MethodRK45) {
		t.Errorf("method = %q, want rk45", cfg.Integrator.Method)
	}
	// Everything the file omits stays at its default.
	if cfg.Mass != oscillator.DefaultMass || cfg.FPS != DefaultFPS {
		t.Errorf("omitted fields lost their defaults: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("mass: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSolverConfig_Mapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Integrator.Method = string(solver.MethodRK45)
	cfg.Integrator.AbsTol = 1e-9
	cfg.Integrator.RelTol = 1e-7
	cfg.Integrator.InitialStep = 0

	sc := cfg.SolverConfig()
	if sc.Method != solver.MethodRK45 || sc.AbsTol != 1e-9 || sc.RelTol != 1e-7 {
		t.Errorf("integrator section not mapped: %+v", sc)
	}
	// Zero initial step falls back to the solver default.
	if sc.InitialStep != solver.DefaultConfig().InitialStep {
		t.Errorf("initial step = %g, want solver default", sc.InitialStep)
	}
	if sc.MaxSteps != solver.DefaultConfig().MaxSteps {
		t.Errorf("max steps = %d, want solver default", sc.MaxSteps)
	}
}
