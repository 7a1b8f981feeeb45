package solver

import (
	"math"
	"testing"
)

// stiffDecay has widely separated time scales: the fast component dies
// within microseconds, the slow one within seconds. Explicit schemes
// are stability-limited to dt ~ 1/1000 here for the whole interval.
type stiffDecay struct{}

func (stiffDecay) Derive(t float64, y Vec) Vec {
	return Vec{-1000 * y[0], -y[1]}
}

func (stiffDecay) Jacobian(t float64, y Vec) (Mat, Vec) {
	return Mat{{-1000, 0}, {0, -1}}, Vec{}
}

func TestRK1Imp_StiffDecay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = MethodRK1Imp

	d, err := NewDriver(stiffDecay{}, cfg, 0, Vec{1, 1})
	if err != nil {
		t.Fatal(err)
	}

	y, err := d.Advance(1.0)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	if math.Abs(y[0]) > 1e-3 {
		t.Errorf("fast component not decayed: got %g", y[0])
	}
	if math.Abs(y[1]-math.Exp(-1)) > 5e-3 {
		t.Errorf("slow component: got %.6f, want %.6f", y[1], math.Exp(-1))
	}
}

// At loose tolerance the step count is accuracy-limited, not
// stability-limited: far fewer steps than the ~500 an explicit scheme
// would need to stay stable over the interval.
func TestRK1Imp_StiffEfficiency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = MethodRK1Imp
	cfg.AbsTol = 1e-3
	cfg.RelTol = 0

	d, err := NewDriver(stiffDecay{}, cfg, 0, Vec{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	y, err := d.Advance(1.0)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(y[1]-math.Exp(-1)) > 0.05 {
		t.Errorf("slow component: got %.4f, want %.4f", y[1], math.Exp(-1))
	}
	if steps := d.Stats().Steps; steps >= 300 {
		t.Errorf("took %d steps, expected stiffness not to limit the step size", steps)
	}
}

func TestRK1Imp_SingleStepAccuracy(t *testing.T) {
	var s rk1imp
	next, errEst, evals := s.step(harmonic{}, 0, Vec{1, 0}, 1e-3)

	if evals == 0 {
		t.Fatal("no derivative evaluations reported")
	}
	if math.Abs(next[0]-math.Cos(1e-3)) > 1e-5 {
		t.Errorf("position after one step: got %g, want %g", next[0], math.Cos(1e-3))
	}
	if math.Abs(errEst[0]) > 1e-5 || math.Abs(errEst[1]) > 1e-5 {
		t.Errorf("error estimate unexpectedly large: %v", errEst)
	}
}

func TestRK1Imp_NewtonFailureRejectsStep(t *testing.T) {
	var s rk1imp
	_, errEst, _ := s.step(nanSystem{}, 0, Vec{1, 0}, 1e-3)

	if !math.IsInf(errEst[0], 1) {
		t.Errorf("expected infinite error estimate on Newton failure, got %v", errEst)
	}
}
