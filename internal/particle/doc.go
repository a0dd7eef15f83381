// Package particle implements a point-mass physics core: kinematic state,
// a per-particle force-generator registry, and two interchangeable
// integrators.
//
// The package defines:
//
//   - [Particle]: position, velocity, and inverse-mass state with a
//     registry of time-windowed force generators
//   - [ForceKind]: the closed set of force laws (gravity, drag, springs,
//     bungees) dispatched through a single evaluation switch
//   - [Integrator]: the per-frame stepping contract, implemented by
//     [Euler] (fixed substepping) and [RK4]
//
// # Example
//
//	p, _ := particle.New(pos, vel, vec.Zero, 2.0, 0.99, 0)
//	p.AddGravity()
//	integ := particle.NewEuler()
//	integ.Integrate(p, 1.0/60)
//
// # Conventions
//
// Damping is the proportion of velocity retained per unit simulated time and
// is applied as damping^dt, so drag over a frame does not depend on the
// substep count. An inverse mass of zero marks an immovable particle: forces
// and acceleration never apply to it, and only damping acts on its velocity.
// Force-derived acceleration is transient; it is recomputed from the registry
// every step and never persists on the particle.
//
// # Thread Safety
//
// A Particle is NOT safe for concurrent mutation. Two particles joined by a
// shared spring read each other's state during integration; use the world
// package to partition linked particles before parallelizing.
package particle
