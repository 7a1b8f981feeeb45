package oscillator

import (
	"fmt"
	"math"

	"github.com/kselvik/springsim/internal/solver"
)

// Default demonstration parameters. Non-stiff, converging to a steady
// state position of Forcing/Stiffness = 2.5.
const (
	DefaultDamping   = 0.2
	DefaultStiffness = 2.0
	DefaultMass      = 20.0
	DefaultForcing   = 5.0
)

// Params are the physical constants of the damped mass-spring system
//
//	M x'' + c x' + k x = F
//
// Immutable once handed to an Oscillator.
type Params struct {
	Damping   float64
	Stiffness float64
	Mass      float64
	Forcing   float64
}

func DefaultParams() Params {
	return Params{
		Damping:   DefaultDamping,
		Stiffness: DefaultStiffness,
		Mass:      DefaultMass,
		Forcing:   DefaultForcing,
	}
}

func (p Params) validate() error {
	if p.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %g", p.Mass)
	}
	if p.Stiffness <= 0 {
		return fmt.Errorf("stiffness must be positive, got %g", p.Stiffness)
	}
	if p.Damping < 0 {
		return fmt.Errorf("damping must be non-negative, got %g", p.Damping)
	}
	return nil
}

// Oscillator implements solver.System for the damped mass-spring ODE.
type Oscillator struct {
	p Params
}

func New(p Params) (*Oscillator, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Oscillator{p: p}, nil
}

func (o *Oscillator) Params() Params { return o.p }

func (o *Oscillator) Derive(t float64, y solver.Vec) solver.Vec {
	return solver.Vec{
		y[1],
		(o.p.Forcing - o.p.Damping*y[1] - o.p.Stiffness*y[0]) / o.p.Mass,
	}
}

// Jacobian returns df/dy and df/dt. The system is time-invariant, so
// the time partial is identically zero.
func (o *Oscillator) Jacobian(t float64, y solver.Vec) (solver.Mat, solver.Vec) {
	return solver.Mat{
		{0, 1},
		{-o.p.Stiffness / o.p.Mass, -o.p.Damping / o.p.Mass},
	}, solver.Vec{}
}

// Energy is kinetic plus elastic potential minus the work of the
// constant forcing term.
func (o *Oscillator) Energy(y solver.Vec) float64 {
	return 0.5*o.p.Mass*y[1]*y[1] + 0.5*o.p.Stiffness*y[0]*y[0] - o.p.Forcing*y[0]
}

// NaturalFrequency is the undamped angular frequency sqrt(k/M).
func (o *Oscillator) NaturalFrequency() float64 {
	return math.Sqrt(o.p.Stiffness / o.p.Mass)
}

// SteadyState is the equilibrium the damped system converges to under
// constant forcing: position F/k, velocity 0.
func (o *Oscillator) SteadyState() solver.Vec {
	return solver.Vec{o.p.Forcing / o.p.Stiffness, 0}
}

// GetParams and SetParam expose the physical constants to the live
// parameter editor. SetParam enforces the same bounds as New.
func (o *Oscillator) GetParams() map[string]float64 {
	return map[string]float64{
		"damping":   o.p.Damping,
		"stiffness": o.p.Stiffness,
		"mass":      o.p.Mass,
		"forcing":   o.p.Forcing,
	}
}

func (o *Oscillator) SetParam(name string, value float64) error {
	next := o.p
	switch name {
	case "damping":
		next.Damping = value
	case "stiffness":
		next.Stiffness = value
	case "mass":
		next.Mass = value
	case "forcing":
		next.Forcing = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	if err := next.validate(); err != nil {
		return err
	}
	o.p = next
	return nil
}
