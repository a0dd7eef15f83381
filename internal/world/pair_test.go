package world_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pointmass/internal/particle"
	"github.com/san-kum/pointmass/internal/vec"
	"github.com/san-kum/pointmass/internal/world"
)

var _ = Describe("spring pair ownership", func() {
	var (
		w    *world.World
		a, b *particle.Particle
	)

	BeforeEach(func() {
		w = world.New(particle.NewEuler())

		var err error
		a, err = particle.New(vec.Zero, vec.Zero, vec.Zero, 1, 0.95, 0)
		Expect(err).NotTo(HaveOccurred())
		b, err = particle.New(vec.New(3, 0, 0), vec.Zero, vec.Zero, 1, 0.95, 0)
		Expect(err).NotTo(HaveOccurred())

		w.Add(a)
		w.Add(b)
	})

	It("registers the pair symmetrically", func() {
		Expect(w.AttachSpring(a, b, 20, 1.0, 1.0, 0, math.Inf(1))).To(Succeed())

		Expect(a.ActiveForces()).To(Equal(1))
		Expect(b.ActiveForces()).To(Equal(1))
	})

	It("rejects an invalid pair without touching either registry", func() {
		err := w.AttachSpring(a, b, -5, 1.0, 1.0, 0, math.Inf(1))
		Expect(err).To(MatchError(particle.ErrInvalidSpringConstant))

		Expect(a.ActiveForces()).To(BeZero())
		Expect(b.ActiveForces()).To(BeZero())
	})

	It("unhooks both registries when a participant is removed", func() {
		Expect(w.AttachSpring(a, b, 20, 1.0, 1.0, 0, math.Inf(1))).To(Succeed())

		w.Remove(a)

		Expect(b.ActiveForces()).To(BeZero())
		Expect(w.Particles()).To(ConsistOf(b))
	})

	It("pulls a stretched pair toward rest separation", func() {
		Expect(w.AttachSpring(a, b, 20, 2.0, 1.0, 0, math.Inf(1))).To(Succeed())
		w.Track(a)
		w.Track(b)

		_, err := w.Run(context.Background(), world.Config{Dt: 1.0 / 60, Duration: 10})
		Expect(err).NotTo(HaveOccurred())

		sep := b.Position().Sub(a.Position()).Magnitude()
		Expect(sep).To(BeNumerically("~", 1.0, 0.15))
	})

	It("leaves a slack bungee pair untouched", func() {
		Expect(w.AttachBungee(a, b, 20, 0, 5.0, 0, math.Inf(1))).To(Succeed())

		Expect(w.Step(0.1)).To(Succeed())

		Expect(a.Velocity().Magnitude()).To(BeZero())
		Expect(b.Velocity().Magnitude()).To(BeZero())
	})
})
