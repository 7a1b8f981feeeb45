package oscillator

import (
	"math"

	"github.com/kselvik/springsim/internal/solver"
)

// Exact evaluates the closed-form solution at time t for an initial
// state y0 at t=0, valid in the underdamped regime c^2 < 4kM (which
// includes the undamped case). Used as the reference in accuracy tests.
func (o *Oscillator) Exact(t float64, y0 solver.Vec) solver.Vec {
	gamma := o.p.Damping / (2 * o.p.Mass)
	w2 := o.p.Stiffness/o.p.Mass - gamma*gamma
	if w2 <= 0 {
		panic("oscillator: Exact requires the underdamped regime")
	}
	wd := math.Sqrt(w2)

	// Solve for the displacement about the forced equilibrium.
	xeq := o.p.Forcing / o.p.Stiffness
	z0 := y0[0] - xeq
	v0 := y0[1]

	a := z0
	b := (v0 + gamma*z0) / wd

	decay := math.Exp(-gamma * t)
	sin, cos := math.Sincos(wd * t)

	z := decay * (a*cos + b*sin)
	v := decay * (-gamma*(a*cos+b*sin) + wd*(b*cos-a*sin))

	return solver.Vec{z + xeq, v}
}
