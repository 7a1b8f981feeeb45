package solver

import "math"

const (
	newtonMaxIter = 8
	newtonTol     = 1e-12
)

// rk1imp is implicit (backward) Euler: y1 = y + dt*f(t+dt, y1), solved
// by Newton iteration on the analytic Jacobian. A-stable, so it keeps
// working in stiff {damping, stiffness, mass} regimes where explicit
// schemes would need impractically small steps. The local error is
// estimated by comparing a full step against two half steps.
type rk1imp struct{}

func (rk1imp) order() int { return 1 }

func (s rk1imp) step(sys System, t float64, y Vec, dt float64) (next Vec, errEst Vec, evals int) {
	full, ev1, ok1 := s.solve(sys, t, y, dt)
	half, ev2, ok2 := s.solve(sys, t, y, dt/2)
	evals = ev1 + ev2
	if ok2 {
		var ev3 int
		var ok3 bool
		next, ev3, ok3 = s.solve(sys, t+dt/2, half, dt/2)
		evals += ev3
		ok2 = ok3
	}
	if !ok1 || !ok2 {
		// Newton did not converge; report an infinite error estimate so
		// the driver rejects the step and halves dt.
		return y, Vec{math.Inf(1), math.Inf(1)}, evals
	}
	for i := range y {
		errEst[i] = next[i] - full[i]
	}
	return next, errEst, evals
}

// solve performs one backward Euler solve from (t, y) over dt.
func (rk1imp) solve(sys System, t float64, y Vec, dt float64) (Vec, int, bool) {
	t1 := t + dt

	// Explicit Euler predictor.
	f := sys.Derive(t, y)
	evals := 1
	y1 := Vec{y[0] + dt*f[0], y[1] + dt*f[1]}

	for iter := 0; iter < newtonMaxIter; iter++ {
		f1 := sys.Derive(t1, y1)
		evals++

		// Residual g(y1) = y1 - y - dt*f(t1, y1).
		g0 := y1[0] - y[0] - dt*f1[0]
		g1 := y1[1] - y[1] - dt*f1[1]
		if math.Abs(g0)+math.Abs(g1) < newtonTol {
			return y1, evals, true
		}

		// Newton matrix A = I - dt*J, solved directly for the 2x2 case.
		jac, _ := sys.Jacobian(t1, y1)
		a00 := 1 - dt*jac[0][0]
		a01 := -dt * jac[0][1]
		a10 := -dt * jac[1][0]
		a11 := 1 - dt*jac[1][1]

		det := a00*a11 - a01*a10
		if det == 0 || math.IsNaN(det) {
			return y1, evals, false
		}

		y1[0] -= (g0*a11 - g1*a01) / det
		y1[1] -= (g1*a00 - g0*a10) / det
	}

	// Accept the last iterate only if the residual ended up small.
	f1 := sys.Derive(t1, y1)
	evals++
	g0 := y1[0] - y[0] - dt*f1[0]
	g1 := y1[1] - y[1] - dt*f1[1]
	return y1, evals, math.Abs(g0)+math.Abs(g1) < 1e-8
}
