// Package metrics provides trajectory observers satisfying world.Metric.
package metrics

import (
	"math"

	"github.com/san-kum/pointmass/internal/particle"
	"github.com/san-kum/pointmass/internal/vec"
)

// KineticEnergy reports the mean kinetic energy observed over a run.
// Static particles contribute nothing.
type KineticEnergy struct {
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{}
}

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(p *particle.Particle, t float64) {
	if p.IsStatic() {
		return
	}
	k.total += 0.5 * p.Mass() * p.Velocity().SquareMagnitude()
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.samples = 0
	k.total = 0
}

// PeakSpeed reports the largest velocity magnitude observed.
type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{}
}

func (s *PeakSpeed) Name() string { return "peak_speed" }

func (s *PeakSpeed) Observe(p *particle.Particle, t float64) {
	speed := p.Velocity().Magnitude()
	if speed > s.peak {
		s.peak = speed
	}
}

func (s *PeakSpeed) Value() float64 { return s.peak }
func (s *PeakSpeed) Reset()         { s.peak = 0 }

// Range reports the largest horizontal (XZ-plane) distance from the first
// observed position.
type Range struct {
	origin  vec.Vector3
	primed  bool
	maxDist float64
}

func NewRange() *Range {
	return &Range{}
}

func (r *Range) Name() string { return "range" }

func (r *Range) Observe(p *particle.Particle, t float64) {
	pos := p.Position()
	if !r.primed {
		r.origin = pos
		r.primed = true
		return
	}

	dx := pos.X - r.origin.X
	dz := pos.Z - r.origin.Z
	dist := math.Sqrt(dx*dx + dz*dz)
	if dist > r.maxDist {
		r.maxDist = dist
	}
}

func (r *Range) Value() float64 { return r.maxDist }

func (r *Range) Reset() {
	r.primed = false
	r.maxDist = 0
}
