package particle

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pointmass/internal/vec"
)

func TestIntegrateInvalidArgs(t *testing.T) {
	p, _ := New(vec.Zero, vec.Zero, vec.Zero, 1, 1, 0)

	for _, integ := range []Integrator{NewEuler(), NewRK4()} {
		if err := integ.Integrate(nil, 0.01); err != ErrInvalidParam {
			t.Errorf("%T: expected ErrInvalidParam for nil particle, got %v", integ, err)
		}
		if err := integ.Integrate(p, 0); err != ErrInvalidDuration {
			t.Errorf("%T: expected ErrInvalidDuration for zero duration, got %v", integ, err)
		}
		if err := integ.Integrate(p, -0.1); err != ErrInvalidDuration {
			t.Errorf("%T: expected ErrInvalidDuration for negative duration, got %v", integ, err)
		}
	}
}

func TestGravityVelocityConverges(t *testing.T) {
	// Starting at rest with damping 1, vertical velocity must reach g*t and
	// horizontal position must not move.
	p, _ := New(vec.New(1, 0, 0), vec.Zero, vec.Zero, 2.0, 1.0, 0)
	p.AddGravity()

	integ := &Euler{Substeps: 60}
	if err := integ.Integrate(p, 1.0); err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	if math.Abs(p.Velocity().Y-GravityAccel) > 1e-9 {
		t.Errorf("expected vertical velocity %f, got %f", GravityAccel, p.Velocity().Y)
	}
	if p.Position().X != 1 || p.Position().Z != 0 {
		t.Errorf("horizontal position changed: %+v", p.Position())
	}
	if math.Abs(p.Clock()-1.0) > 1e-9 {
		t.Errorf("expected clock 1, got %f", p.Clock())
	}
}

func TestStaticParticleInvariant(t *testing.T) {
	p, _ := New(vec.Zero, vec.New(3, 0, 0), vec.New(0, -5, 0), 1.0, 0.5, 0)
	p.SetStatic()
	p.AddGravity()

	accelBefore := p.Acceleration()

	integ := &Euler{Substeps: 10}
	if err := integ.Integrate(p, 2.0); err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	if p.Acceleration() != accelBefore {
		t.Errorf("acceleration changed on static particle: %+v", p.Acceleration())
	}

	// Velocity changes only via damping^duration.
	want := 3.0 * math.Pow(0.5, 2.0)
	if math.Abs(p.Velocity().X-want) > 1e-9 {
		t.Errorf("expected damped velocity %f, got %f", want, p.Velocity().X)
	}
	if p.Velocity().Y != 0 {
		t.Errorf("static particle gained vertical velocity: %f", p.Velocity().Y)
	}
}

func TestDampingFrameRateIndependence(t *testing.T) {
	// A force-free particle integrated for D once must match integrating
	// D/2 twice: damping is duration-exponentiated, not per-step.
	one, _ := New(vec.Zero, vec.New(10, -4, 2), vec.Zero, 1.0, 0.9, 0)
	two, _ := New(vec.Zero, vec.New(10, -4, 2), vec.Zero, 1.0, 0.9, 0)

	integ := NewEuler()
	if err := integ.Integrate(one, 1.0); err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if err := integ.Integrate(two, 0.5); err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if err := integ.Integrate(two, 0.5); err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	if diff := one.Velocity().Sub(two.Velocity()).Magnitude(); diff > 1e-9 {
		t.Errorf("velocity differs between one and two calls by %e", diff)
	}
}

func TestForceWindow(t *testing.T) {
	// Gravity active only while the clock is inside the window; with
	// damping 1 and an exact substep grid the velocity sum is exact.
	p, _ := New(vec.Zero, vec.Zero, vec.Zero, 1.0, 1.0, 0)
	if err := p.AddForce(Gravity, 0, 0.505, nil); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	integ := &Euler{Substeps: 100}
	if err := integ.Integrate(p, 1.0); err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	// Substeps at clock 0.00..0.50 inclusive see the force: 51 of 100.
	want := GravityAccel * 0.51
	if math.Abs(p.Velocity().Y-want) > 1e-6 {
		t.Errorf("expected windowed velocity %f, got %f", want, p.Velocity().Y)
	}
}

func TestBallisticTrajectory(t *testing.T) {
	// Bullet scenario: 2 kg at (0,5,0) fired at 35 m/s horizontally with
	// damping 0.99 and gravity only.
	p, _ := New(vec.New(0, 5, 0), vec.New(35, 0, 0), vec.Zero, 2.0, 0.99, 0)
	p.AddGravity()

	integ := &Euler{Substeps: 60}
	if err := integ.Integrate(p, 1.0); err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	pos := p.Position()
	if pos.X < 34.0 || pos.X > 35.5 {
		t.Errorf("expected horizontal range near 35 m, got %f", pos.X)
	}
	if pos.Y >= 5.0 {
		t.Errorf("expected drop below launch height, got %f", pos.Y)
	}
	// Constant g over 1 s drops ~4.9 m from a standing start.
	if pos.Y < -0.5 || pos.Y > 1.0 {
		t.Errorf("vertical drop inconsistent with gravity: y = %f", pos.Y)
	}
	if vy := p.Velocity().Y; vy < -9.9 || vy > -9.5 {
		t.Errorf("expected terminal vertical velocity near g*t, got %f", vy)
	}
}

func TestRK4HarmonicOscillator(t *testing.T) {
	// Unit mass on an anchored spring with k=1 and zero rest length is a
	// harmonic oscillator: x(t) = cos(t).
	p, _ := New(vec.New(1, 0, 0), vec.Zero, vec.Zero, 1.0, 1.0, 0)
	if _, err := p.AddAnchoredSpring(vec.Zero, 1.0, 0, 0, 0, math.Inf(1)); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	integ := NewRK4()
	dt := 0.01
	steps := 300

	for i := 0; i < steps; i++ {
		if err := integ.Integrate(p, dt); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}

	want := math.Cos(float64(steps) * dt)
	if math.Abs(p.Position().X-want) > 1e-4 {
		t.Errorf("expected x ~ %f, got %f", want, p.Position().X)
	}
}

func TestRK4MatchesEulerOnGravity(t *testing.T) {
	e, _ := New(vec.New(0, 5, 0), vec.New(35, 0, 0), vec.Zero, 2.0, 1.0, 0)
	r, _ := New(vec.New(0, 5, 0), vec.New(35, 0, 0), vec.Zero, 2.0, 1.0, 0)
	e.AddGravity()
	r.AddGravity()

	euler := &Euler{Substeps: 1000}
	rk4 := NewRK4()

	if err := euler.Integrate(e, 1.0); err != nil {
		t.Fatalf("euler failed: %v", err)
	}
	for i := 0; i < 100; i++ {
		if err := rk4.Integrate(r, 0.01); err != nil {
			t.Fatalf("rk4 failed: %v", err)
		}
	}

	if diff := e.Position().Sub(r.Position()).Magnitude(); diff > 0.02 {
		t.Errorf("integrators diverge on constant force: %e", diff)
	}
	if diff := e.Velocity().Sub(r.Velocity()).Magnitude(); diff > 1e-3 {
		t.Errorf("velocities diverge on constant force: %e", diff)
	}
}

func TestRK4RestoresStateOnError(t *testing.T) {
	a, _ := New(vec.Zero, vec.Zero, vec.Zero, 1, 1, 0)
	b, _ := New(vec.New(2, 0, 0), vec.Zero, vec.Zero, 1, 1, 0)
	c, _ := New(vec.New(5, 0, 0), vec.New(1, 0, 0), vec.Zero, 1, 1, 0)

	// A spring c is not an endpoint of fails during evaluation.
	sp := &SpringParams{A: a, B: b, Constant: 50, RestLength: 1}
	if err := c.AddForce(Spring, 0, math.Inf(1), sp); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	pos0, vel0, t0 := c.Position(), c.Velocity(), c.Clock()

	err := NewRK4().Integrate(c, 0.01)
	if !errors.Is(err, ErrNotEndpoint) {
		t.Fatalf("expected ErrNotEndpoint, got %v", err)
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatal("expected a StepError wrapper")
	}

	if c.Position() != pos0 || c.Velocity() != vel0 || c.Clock() != t0 {
		t.Error("failed step mutated particle state")
	}
}

func TestEulerSpringPairConverges(t *testing.T) {
	// Two bodies joined by a damped spring settle toward rest separation.
	a, _ := New(vec.Zero, vec.Zero, vec.Zero, 1, 0.9, 0)
	b, _ := New(vec.New(3, 0, 0), vec.Zero, vec.Zero, 1, 0.9, 0)

	if _, err := AttachSpring(a, b, 20, 2.0, 1.0, 0, math.Inf(1)); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	integ := NewEuler()
	for i := 0; i < 600; i++ {
		// Integrating each endpoint the same slice keeps the shared state
		// both evaluations read consistent.
		if err := integ.Integrate(a, 1.0/60); err != nil {
			t.Fatalf("step failed: %v", err)
		}
		if err := integ.Integrate(b, 1.0/60); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	sep := b.Position().Sub(a.Position()).Magnitude()
	if math.Abs(sep-1.0) > 0.15 {
		t.Errorf("expected separation near rest length 1, got %f", sep)
	}
}
