package solver

import (
	"fmt"
	"math"
)

// Vec is the state of a second-order scalar system: Vec{position, velocity}.
type Vec [2]float64

func (v Vec) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Mat is the 2x2 Jacobian d(dy/dt)/dy.
type Mat [2][2]float64

// System is the right-hand side of dy/dt = f(t, y) together with its
// analytic Jacobian. Jacobian returns df/dy and the time partial df/dt;
// implicit methods require both. Implementations must be pure: no side
// effects, deterministic for identical inputs, safe to call again from
// step-retry logic.
type System interface {
	Derive(t float64, y Vec) Vec
	Jacobian(t float64, y Vec) (dfdy Mat, dfdt Vec)
}

// Method selects the stepping scheme.
type Method string

const (
	// MethodRK45 is the explicit adaptive Dormand-Prince scheme.
	MethodRK45 Method = "rk45"
	// MethodRK1Imp is implicit Euler with Newton iteration on the
	// analytic Jacobian. Stable for stiff parameter regimes.
	MethodRK1Imp Method = "rk1imp"
)

func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case MethodRK45, MethodRK1Imp:
		return Method(name), nil
	}
	return "", fmt.Errorf("unknown method: %s", name)
}

type Config struct {
	AbsTol      float64
	RelTol      float64
	InitialStep float64
	MinStep     float64
	MaxSteps    int
	Method      Method
}

func DefaultConfig() Config {
	return Config{
		AbsTol:      1e-6,
		RelTol:      1e-6,
		InitialStep: 1e-3,
		MinStep:     1e-12,
		MaxSteps:    100000,
		Method:      MethodRK1Imp,
	}
}

func (c Config) validate() error {
	if c.AbsTol < 0 || c.RelTol < 0 {
		return fmt.Errorf("tolerances must be non-negative, got abs=%g rel=%g", c.AbsTol, c.RelTol)
	}
	if c.AbsTol == 0 && c.RelTol == 0 {
		// Pure relative tolerance is unstable near zero crossings of a
		// decaying oscillator, so at least one bound must be set.
		return fmt.Errorf("at least one of abs/rel tolerance must be positive")
	}
	if c.InitialStep <= 0 {
		return fmt.Errorf("initial step must be positive, got %g", c.InitialStep)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", c.MaxSteps)
	}
	if _, err := ParseMethod(string(c.Method)); err != nil {
		return err
	}
	return nil
}

// Statistics counts the work performed by a Driver across Advance calls.
type Statistics struct {
	Steps       int
	Rejected    int
	Evaluations int
	LastStep    float64
}
