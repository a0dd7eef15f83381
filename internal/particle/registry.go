package particle

import (
	"math"

	"github.com/san-kum/pointmass/internal/vec"
)

// forceEntry is one registered generator: a force kind, its parameter block,
// and the [start, end] window of the particle clock it is active over.
type forceEntry struct {
	kind   ForceKind
	params any
	start  float64
	end    float64
	active bool
}

// AddForce registers a generator against the particle. The kind must be one
// of the closed set, the window must be non-negative and ordered, and the
// parameter block must match the kind. Validation happens here, eagerly;
// integration assumes registered entries are well-formed.
func (p *Particle) AddForce(kind ForceKind, start, end float64, params any) error {
	if p == nil {
		return ErrInvalidParam
	}
	if start < 0 || end < 0 || start > end {
		return ErrInvalidTime
	}
	if err := validateParams(kind, params); err != nil {
		return err
	}

	p.registry = append(p.registry, forceEntry{
		kind:   kind,
		params: params,
		start:  start,
		end:    end,
		active: true,
	})
	return nil
}

func validateParams(kind ForceKind, params any) error {
	switch kind {
	case Gravity:
		if params != nil {
			return ErrInvalidParam
		}
	case Drag:
		d, ok := params.(*DragParams)
		if !ok || d == nil {
			return ErrInvalidParam
		}
		if d.Linear < 0 || d.Quadratic < 0 {
			return ErrInvalidDragCoeffs
		}
	case Spring, Bungee:
		sp, ok := params.(*SpringParams)
		if !ok || sp == nil {
			return ErrInvalidParam
		}
		if sp.A == nil || sp.B == nil {
			return ErrNilEndpoint
		}
		return validateSpringConstants(sp.Constant, sp.DampingCoeff, sp.RestLength)
	case AnchoredSpring, AnchoredBungee:
		ap, ok := params.(*AnchorParams)
		if !ok || ap == nil {
			return ErrInvalidParam
		}
		return validateSpringConstants(ap.Constant, ap.DampingCoeff, ap.RestLength)
	default:
		return ErrInvalidForceKind
	}
	return nil
}

func validateSpringConstants(constant, dampingCoeff, restLength float64) error {
	if constant < 0 {
		return ErrInvalidSpringConstant
	}
	if dampingCoeff < 0 {
		return ErrInvalidDampingCoeff
	}
	if restLength < 0 {
		return ErrInvalidRestLength
	}
	return nil
}

// AddGravity registers gravity over an unbounded window.
func (p *Particle) AddGravity() error {
	return p.AddForce(Gravity, 0, math.Inf(1), nil)
}

// AddDrag registers velocity-opposing drag with linear and quadratic
// coefficients over an unbounded window.
func (p *Particle) AddDrag(linear, quadratic float64) error {
	return p.AddForce(Drag, 0, math.Inf(1), &DragParams{Linear: linear, Quadratic: quadratic})
}

// AddAnchoredSpring ties the particle to a fixed anchor point.
func (p *Particle) AddAnchoredSpring(anchor vec.Vector3, constant, dampingCoeff, restLength, start, end float64) (*AnchorParams, error) {
	ap := &AnchorParams{Anchor: anchor, Constant: constant, DampingCoeff: dampingCoeff, RestLength: restLength}
	if err := p.AddForce(AnchoredSpring, start, end, ap); err != nil {
		return nil, err
	}
	return ap, nil
}

// AddAnchoredBungee ties the particle to a fixed anchor that pulls only
// while stretched.
func (p *Particle) AddAnchoredBungee(anchor vec.Vector3, constant, dampingCoeff, restLength, start, end float64) (*AnchorParams, error) {
	ap := &AnchorParams{Anchor: anchor, Constant: constant, DampingCoeff: dampingCoeff, RestLength: restLength}
	if err := p.AddForce(AnchoredBungee, start, end, ap); err != nil {
		return nil, err
	}
	return ap, nil
}

// AttachSpring registers a spring symmetrically on both particles against
// one shared parameter block, so each body independently experiences the
// reaction. On any failure neither registry is left holding a half of the
// pair.
func AttachSpring(a, b *Particle, constant, dampingCoeff, restLength, start, end float64) (*SpringParams, error) {
	return attachPair(a, b, Spring, constant, dampingCoeff, restLength, start, end)
}

// AttachBungee registers an elastic bungee symmetrically on both particles.
func AttachBungee(a, b *Particle, constant, dampingCoeff, restLength, start, end float64) (*SpringParams, error) {
	return attachPair(a, b, Bungee, constant, dampingCoeff, restLength, start, end)
}

func attachPair(a, b *Particle, kind ForceKind, constant, dampingCoeff, restLength, start, end float64) (*SpringParams, error) {
	if a == nil || b == nil {
		return nil, ErrNilEndpoint
	}

	sp := &SpringParams{A: a, B: b, Constant: constant, DampingCoeff: dampingCoeff, RestLength: restLength}
	if err := a.AddForce(kind, start, end, sp); err != nil {
		return nil, err
	}
	if err := b.AddForce(kind, start, end, sp); err != nil {
		a.registry = a.registry[:len(a.registry)-1]
		return nil, err
	}
	return sp, nil
}

// ClearForces empties the registry and zeroes the transient accumulator.
// Capacity is retained for reuse.
func (p *Particle) ClearForces() {
	if p == nil {
		return
	}
	p.resultant = vec.Zero
	p.registry = p.registry[:0]
}

// RemoveForcesWith drops every two-body entry that references other. The
// world uses this to unhook both sides of a pair when a participant is
// removed, so neither registry dangles.
func (p *Particle) RemoveForcesWith(other *Particle) {
	if p == nil || other == nil {
		return
	}

	kept := p.registry[:0]
	for _, e := range p.registry {
		if sp, ok := e.params.(*SpringParams); ok {
			if sp.A == other || sp.B == other {
				continue
			}
		}
		kept = append(kept, e)
	}
	p.registry = kept
}

// SetForcesActive suspends or resumes every entry of the given kind without
// unregistering it. Suspended entries keep their window and parameters and
// are skipped by accumulation.
func (p *Particle) SetForcesActive(kind ForceKind, active bool) {
	if p == nil {
		return
	}
	for i := range p.registry {
		if p.registry[i].kind == kind {
			p.registry[i].active = active
		}
	}
}

// ActiveForces reports the number of active registry entries.
func (p *Particle) ActiveForces() int {
	n := 0
	for i := range p.registry {
		if p.registry[i].active {
			n++
		}
	}
	return n
}

// accumulateForces sums every active entry whose window contains the
// particle clock. Each entry is evaluated exactly once per pass.
func (p *Particle) accumulateForces() (vec.Vector3, error) {
	total := vec.Zero
	for i := range p.registry {
		e := &p.registry[i]
		if !e.active {
			continue
		}
		if p.clock < e.start || p.clock > e.end {
			continue
		}

		f, err := evalForce(p, e)
		if err != nil {
			return vec.Zero, err
		}
		total = total.Add(f)
	}
	return total, nil
}
