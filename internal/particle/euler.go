package particle

import (
	"math"

	"github.com/san-kum/pointmass/internal/vec"
)

// DefaultSubsteps is the fixed substep count a frame duration is divided
// into. Springs and drag read position and velocity, so evaluating them
// over a whole frame at stale state destabilizes low frame rates; smaller
// slices keep the evaluation state fresh.
const DefaultSubsteps = 100

// Integrator advances a particle's kinematic state by one frame duration.
type Integrator interface {
	Integrate(p *Particle, duration float64) error
}

// Euler is a semi-implicit Euler integrator with fixed substepping.
type Euler struct {
	Substeps int
}

func NewEuler() *Euler {
	return &Euler{Substeps: DefaultSubsteps}
}

func (e *Euler) Integrate(p *Particle, duration float64) error {
	if p == nil {
		return ErrInvalidParam
	}
	if duration <= 0 {
		return ErrInvalidDuration
	}

	n := e.Substeps
	if n <= 0 {
		n = DefaultSubsteps
	}
	d := duration / float64(n)
	retain := math.Pow(p.damping, d)

	for i := 0; i < n; i++ {
		p.position = p.position.AddScaled(p.velocity, d)

		sum, err := p.accumulateForces()
		if err != nil {
			p.resultant = vec.Zero
			return &StepError{Step: i, Time: p.clock, Wrapped: err}
		}
		p.resultant = sum

		if p.IsStatic() {
			p.velocity = p.velocity.Scale(retain)
		} else {
			accel := p.baseAccel.AddScaled(p.resultant, p.inverseMass)
			p.velocity = p.velocity.Scale(retain).AddScaled(accel, d)
		}

		p.resultant = vec.Zero
		p.clock += d
	}

	return nil
}
