// Package oscillator models a damped mass-spring system driven by a
// constant force:
//
//	M x'' + c x' + k x = F
//
// [Oscillator] implements [solver.System], supplying both the state
// derivative and the analytic 2x2 Jacobian required by the implicit
// stepping method. [Oscillator.Exact] evaluates the closed-form
// underdamped solution and is the reference for accuracy tests.
package oscillator
