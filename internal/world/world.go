// Package world owns particles and the parameter blocks shared by two-body
// forces. It decides the parallelization granularity the particle core
// deliberately leaves to callers: particles joined by a spring read each
// other's state during integration, so the world partitions the spring graph
// into connected components and only runs distinct components concurrently.
package world

import (
	"context"
	"sync"

	"github.com/san-kum/pointmass/internal/particle"
)

const defaultWorkers = 4

// Metric observes tracked particle state once per step.
type Metric interface {
	Name() string
	Observe(p *particle.Particle, t float64)
	Value() float64
	Reset()
}

// Config drives a World run.
type Config struct {
	Dt       float64
	Duration float64
	Workers  int
}

// Result holds the recorded trajectory of the tracked particles. Each state
// row concatenates position and velocity (6 columns per tracked particle).
type Result struct {
	Times   []float64
	States  [][]float64
	Metrics map[string]float64
}

type link struct {
	params *particle.SpringParams
}

type World struct {
	integ     particle.Integrator
	particles []*particle.Particle
	links     []link
	tracked   []*particle.Particle
	metrics   []Metric
	time      float64
	workers   int
}

func New(integ particle.Integrator) *World {
	return &World{
		integ:   integ,
		workers: defaultWorkers,
	}
}

func (w *World) Add(p *particle.Particle) { w.particles = append(w.particles, p) }
func (w *World) AddMetric(m Metric)       { w.metrics = append(w.metrics, m) }

func (w *World) SetWorkers(n int) { w.workers = n }
func (w *World) Time() float64    { return w.time }

func (w *World) Particles() []*particle.Particle { return w.particles }
func (w *World) Tracked() []*particle.Particle   { return w.tracked }

// Track marks a particle whose trajectory Run records.
func (w *World) Track(p *particle.Particle) {
	w.tracked = append(w.tracked, p)
}

// AttachSpring joins two owned particles with a shared spring block and
// records the link so Remove can unhook both sides later.
func (w *World) AttachSpring(a, b *particle.Particle, constant, dampingCoeff, restLength, start, end float64) error {
	sp, err := particle.AttachSpring(a, b, constant, dampingCoeff, restLength, start, end)
	if err != nil {
		return err
	}
	w.links = append(w.links, link{params: sp})
	return nil
}

// AttachBungee joins two owned particles with a shared bungee block.
func (w *World) AttachBungee(a, b *particle.Particle, constant, dampingCoeff, restLength, start, end float64) error {
	sp, err := particle.AttachBungee(a, b, constant, dampingCoeff, restLength, start, end)
	if err != nil {
		return err
	}
	w.links = append(w.links, link{params: sp})
	return nil
}

// Remove takes a particle out of the world and drops every two-body entry
// referencing it from its partners, so no registry dangles on a shared
// block.
func (w *World) Remove(p *particle.Particle) {
	kept := w.links[:0]
	for _, l := range w.links {
		if l.params.A == p || l.params.B == p {
			l.params.A.RemoveForcesWith(l.params.B)
			l.params.B.RemoveForcesWith(l.params.A)
			continue
		}
		kept = append(kept, l)
	}
	w.links = kept

	for i, q := range w.particles {
		if q == p {
			w.particles = append(w.particles[:i], w.particles[i+1:]...)
			break
		}
	}
	for i, q := range w.tracked {
		if q == p {
			w.tracked = append(w.tracked[:i], w.tracked[i+1:]...)
			break
		}
	}
	p.ClearForces()
}

// Step advances every particle by dt. Spring-connected components are
// integrated sequentially within themselves and in parallel across each
// other.
func (w *World) Step(dt float64) error {
	if dt <= 0 {
		return particle.ErrInvalidDuration
	}

	comps := w.components()
	errs := make([]error, len(comps))

	parallelFor(len(comps), w.workers, func(start, end int) {
		for ci := start; ci < end; ci++ {
			for _, p := range comps[ci] {
				if err := w.integ.Integrate(p, dt); err != nil {
					errs[ci] = err
					return
				}
			}
		}
	})

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	w.time += dt
	return nil
}

// Run drives steps over cfg.Duration, recording the tracked particles and
// feeding metrics each step.
func (w *World) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 || cfg.Duration <= 0 {
		return nil, particle.ErrInvalidDuration
	}
	if cfg.Workers > 0 {
		w.workers = cfg.Workers
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		States:  make([][]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range w.metrics {
		m.Reset()
	}

	w.record(result)
	w.observe()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := w.Step(cfg.Dt); err != nil {
			return result, err
		}

		w.record(result)
		w.observe()
	}

	for _, m := range w.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (w *World) record(r *Result) {
	row := make([]float64, 0, len(w.tracked)*6)
	for _, p := range w.tracked {
		pos, vel := p.Position(), p.Velocity()
		row = append(row, pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z)
	}
	r.States = append(r.States, row)
	r.Times = append(r.Times, w.time)
}

func (w *World) observe() {
	for _, m := range w.metrics {
		for _, p := range w.tracked {
			m.Observe(p, w.time)
		}
	}
}

// components groups particles into connected components of the spring
// graph via union-find. Unlinked particles form singleton components.
func (w *World) components() [][]*particle.Particle {
	n := len(w.particles)
	idx := make(map[*particle.Particle]int, n)
	for i, p := range w.particles {
		idx[p] = i
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}

	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for _, l := range w.links {
		ia, oka := idx[l.params.A]
		ib, okb := idx[l.params.B]
		if oka && okb {
			union(ia, ib)
		}
	}

	groups := make(map[int][]*particle.Particle)
	order := make([]int, 0, n)
	for i, p := range w.particles {
		root := find(i)
		if _, seen := groups[root]; !seen {
			order = append(order, root)
		}
		groups[root] = append(groups[root], p)
	}

	comps := make([][]*particle.Particle, 0, len(order))
	for _, root := range order {
		comps = append(comps, groups[root])
	}
	return comps
}

// parallelFor executes fn over [0, n) chunked across at most workers
// goroutines.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers <= 1 || n <= 1 {
		fn(0, n)
		return
	}
	if workers > n {
		workers = n
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
