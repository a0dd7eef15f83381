package particle

import (
	"math"

	"github.com/san-kum/pointmass/internal/vec"
)

// RK4 is a classical fourth-order Runge-Kutta integrator. Each step samples
// force-derived acceleration four times by temporarily perturbing position,
// velocity, and the particle clock, restoring the originals between
// samples. More accurate per step than Euler substepping, at four force
// evaluations per call.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Integrate(p *Particle, duration float64) error {
	if p == nil {
		return ErrInvalidParam
	}
	if duration <= 0 {
		return ErrInvalidDuration
	}

	pos0 := p.position
	vel0 := p.velocity
	t0 := p.clock

	restore := func() {
		p.position = pos0
		p.velocity = vel0
		p.clock = t0
	}

	// Acceleration at the particle's current (possibly perturbed) state.
	sample := func() (vec.Vector3, error) {
		if p.IsStatic() {
			return vec.Zero, nil
		}
		sum, err := p.accumulateForces()
		if err != nil {
			return vec.Zero, err
		}
		return p.baseAccel.AddScaled(sum, p.inverseMass), nil
	}

	// k1 at the start state.
	xk1 := p.velocity.Scale(duration)
	a, err := sample()
	if err != nil {
		restore()
		return &StepError{Time: t0, Wrapped: err}
	}
	vk1 := a.Scale(duration)

	// k2 at the half step with the k1 slope.
	p.clock = t0 + duration*0.5
	p.position = pos0.AddScaled(vel0, duration*0.5)
	p.velocity = vel0.AddScaled(vk1, 0.5)
	xk2 := p.velocity.Scale(duration)
	a, err = sample()
	if err != nil {
		restore()
		return &StepError{Time: t0, Wrapped: err}
	}
	vk2 := a.Scale(duration)

	// k3 re-samples the half step with the k2 slope.
	p.velocity = vel0.AddScaled(vk2, 0.5)
	xk3 := p.velocity.Scale(duration)
	a, err = sample()
	if err != nil {
		restore()
		return &StepError{Time: t0, Wrapped: err}
	}
	vk3 := a.Scale(duration)

	// k4 at the full step.
	p.clock = t0 + duration
	p.position = pos0.AddScaled(vel0, duration)
	p.velocity = vel0.Add(vk3)
	xk4 := p.velocity.Scale(duration)
	a, err = sample()
	if err != nil {
		restore()
		return &StepError{Time: t0, Wrapped: err}
	}
	vk4 := a.Scale(duration)

	const sixth = 1.0 / 6.0

	p.velocity = vel0.
		AddScaled(vk1, sixth).
		AddScaled(vk2, 2*sixth).
		AddScaled(vk3, 2*sixth).
		AddScaled(vk4, sixth).
		Scale(math.Pow(p.damping, duration))

	p.position = pos0.
		AddScaled(xk1, sixth).
		AddScaled(xk2, 2*sixth).
		AddScaled(xk3, 2*sixth).
		AddScaled(xk4, sixth)

	p.clock = t0 + duration
	p.resultant = vec.Zero

	return nil
}
