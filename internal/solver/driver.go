package solver

import "math"

// Step-size controller constants, shared by both methods.
const (
	safety   = 0.9
	minScale = 0.2
	maxScale = 10.0
)

type stepper interface {
	step(sys System, t float64, y Vec, dt float64) (next Vec, errEst Vec, evals int)
	order() int
}

// Driver owns the current (t, y) pair and advances it to caller-chosen
// target times. Internal step subdivision, rejection and retry are
// invisible to the caller: on success t equals the target exactly.
type Driver struct {
	sys   System
	cfg   Config
	st    stepper
	t     float64
	y     Vec
	dt    float64
	stats Statistics
}

func NewDriver(sys System, cfg Config, t0 float64, y0 Vec) (*Driver, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if !y0.IsValid() {
		return nil, &StepError{Time: t0, Wrapped: ErrInvalidState}
	}

	var st stepper
	switch cfg.Method {
	case MethodRK45:
		st = rk45{}
	case MethodRK1Imp:
		st = rk1imp{}
	}

	return &Driver{
		sys: sys,
		cfg: cfg,
		st:  st,
		t:   t0,
		y:   y0,
		dt:  cfg.InitialStep,
	}, nil
}

func (d *Driver) Time() float64     { return d.t }
func (d *Driver) State() Vec        { return d.y }
func (d *Driver) Stats() Statistics { return d.stats }

// Advance integrates from the current time to target. Calling it again
// with the same target is a no-op returning the unchanged state. Any
// returned error is fatal: the driver holds no safe state to resume from.
func (d *Driver) Advance(target float64) (Vec, error) {
	if target < d.t {
		return d.y, &StepError{Step: d.stats.Steps, Time: d.t, Wrapped: ErrBackwardTime}
	}
	if target == d.t {
		return d.y, nil
	}

	attempts := 0
	for d.t < target {
		if attempts >= d.cfg.MaxSteps {
			return d.y, &StepError{Step: d.stats.Steps, Time: d.t, Wrapped: ErrTooManySteps}
		}
		attempts++

		h := d.dt
		last := false
		if d.t+h >= target {
			h = target - d.t
			last = true
		}

		next, errEst, evals := d.st.step(d.sys, d.t, d.y, h)
		d.stats.Evaluations += evals

		errNorm := d.normError(d.y, next, errEst)
		accepted := errNorm <= 1
		if accepted {
			if !next.IsValid() {
				return d.y, &StepError{Step: d.stats.Steps, Time: d.t, Wrapped: ErrInvalidState}
			}
			if last {
				d.t = target
			} else {
				d.t += h
			}
			d.y = next
			d.stats.Steps++
			d.stats.LastStep = h
		} else {
			d.stats.Rejected++
		}

		scale := maxScale
		if errNorm > 0 {
			scale = safety * math.Pow(errNorm, -1.0/float64(d.st.order()+1))
			scale = math.Max(minScale, math.Min(maxScale, scale))
		}
		if !last || !accepted {
			d.dt = h * scale
			if d.dt < d.cfg.MinStep {
				return d.y, &StepError{Step: d.stats.Steps, Time: d.t, Wrapped: ErrStepTooSmall}
			}
		}
	}

	return d.y, nil
}

// normError scales each error component by the mixed tolerance
// atol + rtol*|y| and returns the worst ratio. A value <= 1 accepts
// the step.
func (d *Driver) normError(y, next, errEst Vec) float64 {
	norm := 0.0
	for i := range errEst {
		if math.IsNaN(errEst[i]) || math.IsNaN(next[i]) {
			return math.Inf(1)
		}
		sc := d.cfg.AbsTol + d.cfg.RelTol*math.Max(math.Abs(y[i]), math.Abs(next[i])) + 1e-300
		norm = math.Max(norm, math.Abs(errEst[i])/sc)
	}
	return norm
}
