// Package scenario maps scenario and integrator names to world builders.
package scenario

import (
	"fmt"
	"math"

	"github.com/san-kum/pointmass/internal/config"
	"github.com/san-kum/pointmass/internal/metrics"
	"github.com/san-kum/pointmass/internal/particle"
	"github.com/san-kum/pointmass/internal/vec"
	"github.com/san-kum/pointmass/internal/world"
)

type builder func(cfg *config.Config, integ particle.Integrator) (*world.World, error)

type Registry struct {
	scenarios   map[string]builder
	integrators map[string]func(substeps int) particle.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		scenarios:   make(map[string]builder),
		integrators: make(map[string]func(int) particle.Integrator),
	}

	r.scenarios["bullet"] = buildProjectile
	r.scenarios["artillery"] = buildProjectile
	r.scenarios["fireball"] = buildProjectile
	r.scenarios["springpair"] = buildSpringPair
	r.scenarios["bungeepair"] = buildBungeePair
	r.scenarios["anchored"] = buildAnchored

	r.integrators["euler"] = func(substeps int) particle.Integrator {
		if substeps <= 0 {
			substeps = particle.DefaultSubsteps
		}
		return &particle.Euler{Substeps: substeps}
	}
	r.integrators["rk4"] = func(int) particle.Integrator {
		return particle.NewRK4()
	}

	return r
}

func (r *Registry) Build(cfg *config.Config) (*world.World, error) {
	mk, ok := r.scenarios[cfg.Scenario]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", cfg.Scenario)
	}

	integ, err := r.Integrator(cfg.Integrator, cfg.Substeps)
	if err != nil {
		return nil, err
	}

	return mk(cfg, integ)
}

func (r *Registry) Integrator(name string, substeps int) (particle.Integrator, error) {
	mk, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return mk(substeps), nil
}

func (r *Registry) ListScenarios() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	return names
}

func (r *Registry) DefaultMetrics() []world.Metric {
	return []world.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewPeakSpeed(),
		metrics.NewRange(),
	}
}

func newFromInit(st config.InitState) (*particle.Particle, error) {
	return particle.New(
		vec.New(st.X, st.Y, st.Z),
		vec.New(st.VX, st.VY, st.VZ),
		vec.New(st.AX, st.AY, st.AZ),
		st.Mass,
		st.Damping,
		0,
	)
}

func buildProjectile(cfg *config.Config, integ particle.Integrator) (*world.World, error) {
	p, err := newFromInit(cfg.InitState)
	if err != nil {
		return nil, err
	}

	if cfg.Forces.Gravity {
		if err := p.AddGravity(); err != nil {
			return nil, err
		}
	}
	if cfg.Forces.DragLinear > 0 || cfg.Forces.DragQuadratic > 0 {
		if err := p.AddDrag(cfg.Forces.DragLinear, cfg.Forces.DragQuadratic); err != nil {
			return nil, err
		}
	}

	w := world.New(integ)
	w.Add(p)
	w.Track(p)
	return w, nil
}

// buildSpringPair places one body at the configured offset and its partner
// at the origin, joined by a shared damped spring.
func buildSpringPair(cfg *config.Config, integ particle.Integrator) (*world.World, error) {
	return buildPair(cfg, integ, false)
}

func buildBungeePair(cfg *config.Config, integ particle.Integrator) (*world.World, error) {
	return buildPair(cfg, integ, true)
}

func buildPair(cfg *config.Config, integ particle.Integrator, bungee bool) (*world.World, error) {
	a, err := particle.New(vec.Zero, vec.Zero, vec.Zero, cfg.InitState.Mass, cfg.InitState.Damping, 0)
	if err != nil {
		return nil, err
	}
	b, err := newFromInit(cfg.InitState)
	if err != nil {
		return nil, err
	}

	w := world.New(integ)
	w.Add(a)
	w.Add(b)
	w.Track(a)
	w.Track(b)

	f := cfg.Forces
	if bungee {
		err = w.AttachBungee(a, b, f.SpringConstant, f.SpringDamping, f.RestLength, 0, math.Inf(1))
	} else {
		err = w.AttachSpring(a, b, f.SpringConstant, f.SpringDamping, f.RestLength, 0, math.Inf(1))
	}
	if err != nil {
		return nil, err
	}

	return w, nil
}

func buildAnchored(cfg *config.Config, integ particle.Integrator) (*world.World, error) {
	p, err := newFromInit(cfg.InitState)
	if err != nil {
		return nil, err
	}

	f := cfg.Forces
	if _, err := p.AddAnchoredSpring(vec.Zero, f.SpringConstant, f.SpringDamping, f.RestLength, 0, math.Inf(1)); err != nil {
		return nil, err
	}
	if cfg.Forces.Gravity {
		if err := p.AddGravity(); err != nil {
			return nil, err
		}
	}

	w := world.New(integ)
	w.Add(p)
	w.Track(p)
	return w, nil
}
