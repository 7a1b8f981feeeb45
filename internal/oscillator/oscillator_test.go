package oscillator

import (
	"math"
	"testing"

	"github.com/kselvik/springsim/internal/solver"
)

func TestDerive_Values(t *testing.T) {
	o, err := New(DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	// M x'' = F - c v - k x with x=0.5, v=0: acceleration (5 - 1)/20.
	got := o.Derive(0, solver.Vec{0.5, 0})
	want := solver.Vec{0, (5.0 - 2.0*0.5) / 20.0}
	if got != want {
		t.Errorf("Derive = %v, want %v", got, want)
	}

	// Velocity always passes through unchanged.
	got = o.Derive(0, solver.Vec{0, 1.5})
	if got[0] != 1.5 {
		t.Errorf("position rate = %g, want 1.5", got[0])
	}
}

func TestJacobian_MatchesFiniteDifferences(t *testing.T) {
	o, err := New(Params{Damping: 0.7, Stiffness: 3.1, Mass: 2.4, Forcing: 1.2})
	if err != nil {
		t.Fatal(err)
	}

	y := solver.Vec{0.3, -0.8}
	jac, dfdt := o.Jacobian(0, y)

	const h = 1e-6
	for j := 0; j < 2; j++ {
		yp, ym := y, y
		yp[j] += h
		ym[j] -= h
		fp := o.Derive(0, yp)
		fm := o.Derive(0, ym)
		for i := 0; i < 2; i++ {
			num := (fp[i] - fm[i]) / (2 * h)
			if math.Abs(jac[i][j]-num) > 1e-6 {
				t.Errorf("jac[%d][%d] = %g, finite difference %g", i, j, jac[i][j], num)
			}
		}
	}

	if dfdt != (solver.Vec{}) {
		t.Errorf("time partial = %v, want zero for an autonomous system", dfdt)
	}
}

func TestSteadyState(t *testing.T) {
	o, err := New(DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	ss := o.SteadyState()
	if ss != (solver.Vec{2.5, 0}) {
		t.Errorf("steady state = %v, want {2.5, 0}", ss)
	}
	if f := o.Derive(0, ss); f != (solver.Vec{}) {
		t.Errorf("derivative at steady state = %v, want zero", f)
	}
}

func TestEnergy(t *testing.T) {
	o, err := New(DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	if e := o.Energy(solver.Vec{}); e != 0 {
		t.Errorf("energy at origin = %g, want 0", e)
	}

	// The steady state is the energy minimum: -F^2/(2k).
	min := o.Energy(o.SteadyState())
	if math.Abs(min-(-6.25)) > 1e-12 {
		t.Errorf("steady state energy = %g, want -6.25", min)
	}
	for _, y := range []solver.Vec{{0, 0}, {2.5, 0.1}, {3, 0}, {-1, -1}} {
		if o.Energy(y) < min {
			t.Errorf("energy at %v below the steady state minimum", y)
		}
	}
}

func TestNaturalFrequency(t *testing.T) {
	o, err := New(DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if w := o.NaturalFrequency(); math.Abs(w-math.Sqrt(0.1)) > 1e-15 {
		t.Errorf("natural frequency = %g, want sqrt(0.1)", w)
	}
}

func TestNew_Validation(t *testing.T) {
	bad := []Params{
		{Damping: 0.2, Stiffness: 2, Mass: 0, Forcing: 5},
		{Damping: 0.2, Stiffness: 2, Mass: -1, Forcing: 5},
		{Damping: 0.2, Stiffness: 0, Mass: 20, Forcing: 5},
		{Damping: -0.1, Stiffness: 2, Mass: 20, Forcing: 5},
	}
	for _, p := range bad {
		if _, err := New(p); err == nil {
			t.Errorf("expected validation error for %+v", p)
		}
	}

	// Zero forcing and zero damping are both legal.
	if _, err := New(Params{Stiffness: 2, Mass: 20}); err != nil {
		t.Errorf("unexpected error for undamped unforced params: %v", err)
	}
}

func TestSetParam(t *testing.T) {
	o, err := New(DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	if err := o.SetParam("stiffness", 4.0); err != nil {
		t.Fatal(err)
	}
	if got := o.GetParams()["stiffness"]; got != 4.0 {
		t.Errorf("stiffness = %g after update, want 4", got)
	}

	// A rejected value leaves the previous one in effect.
	if err := o.SetParam("mass", -3); err == nil {
		t.Error("expected error for negative mass")
	}
	if got := o.GetParams()["mass"]; got != DefaultMass {
		t.Errorf("mass = %g after rejected update, want %g", got, DefaultMass)
	}

	if err := o.SetParam("gravity", 9.8); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestExact_InitialConditionAndLimit(t *testing.T) {
	o, err := New(DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	y0 := solver.Vec{0.5, 0}
	at0 := o.Exact(0, y0)
	if math.Abs(at0[0]-y0[0]) > 1e-12 || math.Abs(at0[1]-y0[1]) > 1e-12 {
		t.Errorf("Exact(0) = %v, want %v", at0, y0)
	}

	// The damped solution decays onto the forced equilibrium.
	late := o.Exact(2000, y0)
	ss := o.SteadyState()
	if math.Abs(late[0]-ss[0]) > 1e-3 || math.Abs(late[1]) > 1e-3 {
		t.Errorf("Exact(2000) = %v, want near %v", late, ss)
	}
}

func TestExact_SatisfiesODE(t *testing.T) {
	o, err := New(DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	// Finite-difference the closed form in time and compare with Derive.
	y0 := solver.Vec{0.5, 0}
	const h = 1e-6
	for _, ts := range []float64{0.5, 3, 10} {
		y := o.Exact(ts, y0)
		yp := o.Exact(ts+h, y0)
		ym := o.Exact(ts-h, y0)
		f := o.Derive(ts, y)
		for i := 0; i < 2; i++ {
			num := (yp[i] - ym[i]) / (2 * h)
			if math.Abs(f[i]-num) > 1e-5 {
				t.Errorf("t=%g component %d: Derive %g vs d/dt of closed form %g", ts, i, f[i], num)
			}
		}
	}
}
