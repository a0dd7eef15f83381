package world

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/pointmass/internal/particle"
	"github.com/san-kum/pointmass/internal/vec"
)

func TestRunRecordsTrajectory(t *testing.T) {
	w := New(particle.NewEuler())

	p, _ := particle.New(vec.New(0, 5, 0), vec.New(35, 0, 0), vec.Zero, 2.0, 0.99, 0)
	p.AddGravity()
	w.Add(p)
	w.Track(p)

	result, err := w.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 recorded states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if len(result.States[0]) != 6 {
		t.Errorf("expected 6 columns per tracked particle, got %d", len(result.States[0]))
	}

	final := result.States[len(result.States)-1]
	if final[0] < 30 {
		t.Errorf("expected horizontal progress, got x = %f", final[0])
	}
	if final[1] >= 5 {
		t.Errorf("expected drop under gravity, got y = %f", final[1])
	}
}

func TestRunInvalidConfig(t *testing.T) {
	w := New(particle.NewEuler())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1}},
		{"negative dt", Config{Dt: -0.1, Duration: 1}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := w.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunHonorsContext(t *testing.T) {
	w := New(particle.NewEuler())
	p, _ := particle.New(vec.Zero, vec.Zero, vec.Zero, 1, 1, 0)
	w.Add(p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := w.Run(ctx, Config{Dt: 0.01, Duration: 10}); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestComponents(t *testing.T) {
	w := New(particle.NewEuler())

	mk := func(x float64) *particle.Particle {
		p, _ := particle.New(vec.New(x, 0, 0), vec.Zero, vec.Zero, 1, 1, 0)
		w.Add(p)
		return p
	}

	a, b, c, d, e := mk(0), mk(1), mk(2), mk(10), mk(11)

	if err := w.AttachSpring(a, b, 10, 0, 1, 0, math.Inf(1)); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if err := w.AttachSpring(b, c, 10, 0, 1, 0, math.Inf(1)); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if err := w.AttachBungee(d, e, 10, 0, 5, 0, math.Inf(1)); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	comps := w.components()
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}

	sizes := map[int]int{}
	for _, comp := range comps {
		sizes[len(comp)]++
	}
	if sizes[3] != 1 || sizes[2] != 1 {
		t.Errorf("expected components of size 3 and 2, got %v", sizes)
	}
}

func TestStepIntegratesAll(t *testing.T) {
	w := New(&particle.Euler{Substeps: 10})

	var ps []*particle.Particle
	for i := 0; i < 8; i++ {
		p, _ := particle.New(vec.New(float64(i), 0, 0), vec.New(1, 0, 0), vec.Zero, 1, 1, 0)
		w.Add(p)
		ps = append(ps, p)
	}

	if err := w.Step(0.5); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	for i, p := range ps {
		want := float64(i) + 0.5
		if math.Abs(p.Position().X-want) > 1e-9 {
			t.Errorf("particle %d: expected x %f, got %f", i, want, p.Position().X)
		}
		if math.Abs(p.Clock()-0.5) > 1e-9 {
			t.Errorf("particle %d: expected clock 0.5, got %f", i, p.Clock())
		}
	}

	if w.Time() != 0.5 {
		t.Errorf("expected world time 0.5, got %f", w.Time())
	}
}

func TestSetWorkers(t *testing.T) {
	w := New(&particle.Euler{Substeps: 10})
	w.SetWorkers(1)

	var ps []*particle.Particle
	for i := 0; i < 5; i++ {
		p, _ := particle.New(vec.New(float64(i), 0, 0), vec.New(1, 0, 0), vec.Zero, 1, 1, 0)
		w.Add(p)
		ps = append(ps, p)
	}

	if w.workers != 1 {
		t.Fatalf("expected 1 worker, got %d", w.workers)
	}

	if err := w.Step(0.5); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	for i, p := range ps {
		want := float64(i) + 0.5
		if math.Abs(p.Position().X-want) > 1e-9 {
			t.Errorf("particle %d: expected x %f, got %f", i, want, p.Position().X)
		}
	}

	// Run only overrides the count when the config asks for it.
	if _, err := w.Run(context.Background(), Config{Dt: 0.1, Duration: 0.2}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if w.workers != 1 {
		t.Errorf("expected worker count to survive Run, got %d", w.workers)
	}
}

func TestParallelFor(t *testing.T) {
	n := 1000
	hits := make([]int, n)

	parallelFor(n, 4, func(start, end int) {
		for i := start; i < end; i++ {
			hits[i]++
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}
