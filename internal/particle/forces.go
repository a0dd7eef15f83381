package particle

import "github.com/san-kum/pointmass/internal/vec"

// GravityAccel is the vertical acceleration applied by the gravity force,
// in m/s^2 along -Y.
const GravityAccel = -9.81

// restSpeed is the velocity magnitude below which drag treats the particle
// as at rest, avoiding normalization of a near-zero vector.
const restSpeed = 0.01

// ForceKind identifies a force law. The set is closed; registration rejects
// anything outside it.
type ForceKind int

const (
	Gravity ForceKind = iota + 1
	Drag
	Spring
	AnchoredSpring
	Bungee
	AnchoredBungee
)

func (k ForceKind) String() string {
	switch k {
	case Gravity:
		return "gravity"
	case Drag:
		return "drag"
	case Spring:
		return "spring"
	case AnchoredSpring:
		return "anchored-spring"
	case Bungee:
		return "bungee"
	case AnchoredBungee:
		return "anchored-bungee"
	default:
		return "unknown"
	}
}

// DragParams holds the linear (k1) and quadratic (k2) drag coefficients.
type DragParams struct {
	Linear    float64
	Quadratic float64
}

// SpringParams describes a two-body spring or bungee. The same block is
// shared by both endpoints' registries so each side sees the reaction from
// its own perspective; the block must outlive both registrations.
type SpringParams struct {
	A, B *Particle

	Constant     float64
	DampingCoeff float64
	RestLength   float64
}

// AnchorParams describes a spring or bungee tied to a fixed world-space
// anchor.
type AnchorParams struct {
	Anchor vec.Vector3

	Constant     float64
	DampingCoeff float64
	RestLength   float64
}

// evalForce computes one generator's contribution from the particle's
// current state. It performs no mutation; errors propagate to the
// integrator instead of a shared error slot.
func evalForce(p *Particle, e *forceEntry) (vec.Vector3, error) {
	switch e.kind {
	case Gravity:
		return gravityForce(p), nil
	case Drag:
		return dragForce(p, e.params.(*DragParams)), nil
	case Spring:
		return springForce(p, e.params.(*SpringParams), false)
	case Bungee:
		return springForce(p, e.params.(*SpringParams), true)
	case AnchoredSpring:
		return anchoredForce(p, e.params.(*AnchorParams), false), nil
	case AnchoredBungee:
		return anchoredForce(p, e.params.(*AnchorParams), true), nil
	default:
		return vec.Zero, ErrInvalidForceKind
	}
}

func gravityForce(p *Particle) vec.Vector3 {
	if p.IsStatic() {
		return vec.Zero
	}
	return vec.New(0, GravityAccel*p.Mass(), 0)
}

func dragForce(p *Particle, d *DragParams) vec.Vector3 {
	speed := p.velocity.Magnitude()
	if speed < restSpeed {
		return vec.Zero
	}

	magnitude := d.Linear*speed + d.Quadratic*speed*speed
	return p.velocity.Normalized().Scale(-magnitude)
}

// springForce evaluates the shared two-body law from the perspective of p,
// which must be one of the endpoints. With clampSlack set the force is a
// bungee: zero unless stretched past rest length.
func springForce(p *Particle, sp *SpringParams, clampSlack bool) (vec.Vector3, error) {
	var otherPos, otherVel vec.Vector3
	switch p.id {
	case sp.A.id:
		otherPos, otherVel = sp.B.position, sp.B.velocity
	case sp.B.id:
		otherPos, otherVel = sp.A.position, sp.A.velocity
	default:
		return vec.Zero, ErrNotEndpoint
	}

	disp := p.position.Sub(otherPos)
	length := disp.Magnitude()
	if length == 0 {
		// Coincident endpoints have no direction to push along.
		return vec.Zero, nil
	}

	extension := length - sp.RestLength
	if clampSlack && extension <= 0 {
		return vec.Zero, nil
	}

	relVel := p.velocity.Sub(otherVel)
	magnitude := -sp.Constant*extension - sp.DampingCoeff*(disp.Dot(relVel)/length)

	return disp.Normalized().Scale(magnitude), nil
}

func anchoredForce(p *Particle, ap *AnchorParams, clampSlack bool) vec.Vector3 {
	disp := p.position.Sub(ap.Anchor)
	length := disp.Magnitude()
	if length == 0 {
		return vec.Zero
	}

	extension := length - ap.RestLength
	if clampSlack && extension <= 0 {
		return vec.Zero
	}

	// The anchor contributes no velocity term.
	magnitude := -ap.Constant*extension - ap.DampingCoeff*(disp.Dot(p.velocity)/length)

	return disp.Normalized().Scale(magnitude)
}
