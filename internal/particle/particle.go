package particle

import (
	"math"
	"sync/atomic"

	"github.com/san-kum/pointmass/internal/vec"
)

const initialRegistryCap = 8

var nextID atomic.Uint64

// Particle is a point mass advanced by an Integrator. Position and velocity
// are owned by the integrator after construction; callers read them through
// accessors and influence them only by registering forces.
type Particle struct {
	position  vec.Vector3
	velocity  vec.Vector3
	baseAccel vec.Vector3
	resultant vec.Vector3

	inverseMass float64
	damping     float64
	clock       float64

	registry []forceEntry

	id uint64
}

// New validates and constructs a particle. The acceleration argument is a
// constant base term (buoyancy, simplified gravity for ballistics presets);
// force-derived acceleration is layered on top of it each step.
func New(position, velocity, acceleration vec.Vector3, mass, damping, startTime float64) (*Particle, error) {
	if mass <= 0 {
		return nil, ErrInvalidMass
	}
	if damping < 0 || damping > 1 {
		return nil, ErrInvalidDamping
	}
	if startTime < 0 {
		return nil, ErrInvalidTime
	}

	return &Particle{
		position:    position,
		velocity:    velocity,
		baseAccel:   acceleration,
		inverseMass: 1.0 / mass,
		damping:     damping,
		clock:       startTime,
		registry:    make([]forceEntry, 0, initialRegistryCap),
		id:          nextID.Add(1),
	}, nil
}

func (p *Particle) Position() vec.Vector3 { return p.position }
func (p *Particle) Velocity() vec.Vector3 { return p.velocity }

// Acceleration reports the constant base term only; force contributions are
// transient and never stored.
func (p *Particle) Acceleration() vec.Vector3 { return p.baseAccel }

// Clock is the particle-local simulation time force windows are matched
// against.
func (p *Particle) Clock() float64 { return p.clock }

func (p *Particle) Damping() float64     { return p.damping }
func (p *Particle) InverseMass() float64 { return p.inverseMass }

// Mass returns +Inf for an immovable particle.
func (p *Particle) Mass() float64 {
	if p.inverseMass == 0 {
		return math.Inf(1)
	}
	return 1.0 / p.inverseMass
}

func (p *Particle) SetMass(mass float64) error {
	if p == nil {
		return ErrInvalidParam
	}
	if mass <= 0 {
		return ErrInvalidMass
	}
	p.inverseMass = 1.0 / mass
	return nil
}

// SetStatic pins the particle in place by zeroing its inverse mass. Forces
// and the base acceleration stop applying; existing velocity still drifts
// under damping.
func (p *Particle) SetStatic() {
	p.inverseMass = 0
}

// IsStatic reports whether the particle has infinite mass.
func (p *Particle) IsStatic() bool {
	return p.inverseMass == 0
}
