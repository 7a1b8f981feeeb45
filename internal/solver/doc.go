// Package solver provides an adaptive-step ODE driver for second-order
// systems with two state components (position, velocity).
//
// The package defines the fundamental types for numerical integration:
//
//   - [Vec]: fixed-size state vector (position, velocity)
//   - [System]: interface for the ODE right-hand side and its Jacobian
//   - [Driver]: owns the (t, y) pair and advances it to a target time
//
// State vectors are value types. An integration step performs no heap
// allocation, which keeps the driver suitable for per-frame use inside
// a real-time render loop.
//
// # Example
//
//	osc := oscillator.New(params)
//	drv, _ := solver.NewDriver(osc, solver.DefaultConfig(), 0, solver.Vec{0.5, 0})
//	y, err := drv.Advance(1.0)
//
// # Thread Safety
//
// Driver instances are NOT thread-safe. The intended usage is exclusive
// ownership by a single loop that calls Advance once per frame.
package solver
