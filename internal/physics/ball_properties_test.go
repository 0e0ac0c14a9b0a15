package physics

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/dynamo"
)

func collect(b *Ball, steps int) []dynamo.Sample {
	out := make([]dynamo.Sample, 0, steps)
	for s := range b.Run(steps) {
		out = append(out, s)
	}
	return out
}

var _ = Describe("Ball", func() {
	var cfg BallConfig

	Context("perfectly elastic", func() {
		BeforeEach(func() {
			cfg = BallConfig{Gravity: 9.8, TimeStep: 0.01, Restitution: 1, RestThreshold: 0.5}
		})

		It("falls monotonically from rest until the first contact", func() {
			b, err := NewBall(cfg, 10, 0)
			Expect(err).NotTo(HaveOccurred())

			last := 10.0
			for s := range b.Run(10000) {
				if s.Bounced {
					break
				}
				Expect(s.Position).To(BeNumerically("<=", last))
				last = s.Position
			}
		})

		It("reflects velocity without losing magnitude", func() {
			b, _ := NewBall(cfg, 10, 0)
			prev := b.Current()
			bounces := 0
			for s := range b.Run(5000) {
				if s.Bounced {
					before := prev.Velocity - cfg.Gravity*cfg.TimeStep
					Expect(s.Velocity).To(BeNumerically("~", -before, 1e-12))
					Expect(math.Signbit(s.Velocity)).NotTo(Equal(math.Signbit(before)))
					bounces++
				}
				prev = s
			}
			Expect(bounces).To(BeNumerically(">", 1))
		})

		It("never clamps to rest", func() {
			b, _ := NewBall(cfg, 0.001, 0)
			for s := range b.Run(1000) {
				if s.Bounced {
					Expect(s.Velocity).To(BeNumerically(">", 0))
				}
			}
		})
	})

	Context("damped", func() {
		BeforeEach(func() {
			cfg = BallConfig{Gravity: 0.5, TimeStep: 0.1, Restitution: 0.75, RestThreshold: 0.5}
		})

		It("keeps position on or above the floor", func() {
			b, _ := NewBall(cfg, 20, 0)
			for _, s := range collect(b, 3000) {
				Expect(s.Position).To(BeNumerically(">=", 0))
			}
		})

		It("never gains speed in a bounce", func() {
			b, _ := NewBall(cfg, 20, 0)
			prev := b.Current()
			for s := range b.Run(3000) {
				if s.Bounced {
					before := prev.Velocity - cfg.Gravity*cfg.TimeStep
					Expect(math.Abs(s.Velocity)).To(BeNumerically("<=", math.Abs(before)))
				}
				prev = s
			}
		})

		It("comes to rest once a rebound falls inside the threshold", func() {
			b, _ := NewBall(cfg, 20, 0)
			samples := collect(b, 3000)

			rest := -1
			for i, s := range samples {
				if s.Bounced {
					if s.Velocity == 0 {
						rest = i
						break
					}
					Expect(math.Abs(s.Velocity)).To(BeNumerically(">=", cfg.RestThreshold))
				}
			}
			Expect(rest).To(BeNumerically(">", 0))

			for _, s := range samples[rest:] {
				Expect(s.Position).To(Equal(0.0))
				Expect(s.Velocity).To(Equal(0.0))
			}
		})

		It("disables the clamp with a zero threshold", func() {
			cfg.RestThreshold = 0
			b, _ := NewBall(cfg, 20, 0)
			for s := range b.Run(3000) {
				if s.Bounced {
					Expect(s.Velocity).To(BeNumerically(">", 0))
				}
			}
		})
	})

	Context("fully inelastic", func() {
		It("stops dead on contact", func() {
			cfg = BallConfig{Gravity: 9.8, TimeStep: 0.01, Restitution: 0, RestThreshold: 0}
			b, _ := NewBall(cfg, 1, 0)
			for s := range b.Run(200) {
				if s.Bounced {
					Expect(s.Velocity).To(BeZero())
				}
			}
		})
	})

	It("is deterministic", func() {
		cfg = BallConfig{Gravity: 0.5, TimeStep: 0.1, Restitution: 0.75, RestThreshold: 0.5}
		a, _ := NewBall(cfg, 20, 0)
		b, _ := NewBall(cfg, 20, 0)
		Expect(collect(a, 300)).To(Equal(collect(b, 300)))
	})
})
