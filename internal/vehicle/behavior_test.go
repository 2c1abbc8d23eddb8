package vehicle_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/longsim/internal/vehicle"
)

var _ = Describe("longitudinal model", func() {
	var m *vehicle.Model

	BeforeEach(func() {
		m = vehicle.New()
	})

	It("starts from the canonical initial state", func() {
		Expect(m.X).To(BeZero())
		Expect(m.V).To(Equal(5.0))
		Expect(m.We).To(Equal(100.0))
	})

	It("returns to the initial state after reset", func() {
		for i := 0; i < 50; i++ {
			m.Step(0.4, 0.02)
		}
		m.Reset()
		Expect(*m).To(Equal(*vehicle.New()))
	})

	Describe("steady cruise", func() {
		It("settles below the traction-limited terminal velocity", func() {
			for i := 0; i < 10000; i++ {
				m.Step(0.2, 0.0)
			}
			limit := math.Sqrt(m.Params.FMax / m.Params.Ca)
			Expect(m.V).To(BeNumerically(">", 0))
			Expect(m.V).To(BeNumerically("<", limit))
		})
	})

	Describe("coasting", func() {
		It("stays finite and bounded with zero throttle", func() {
			for i := 0; i < 1000; i++ {
				m.Step(0.0, 0.0)
			}
			Expect(m.IsFinite()).To(BeTrue())
			Expect(m.V).To(BeNumerically(">=", 0))
			Expect(m.V).To(BeNumerically("<", 20))
		})
	})

	Describe("throttle authority", func() {
		It("accelerates harder with more throttle once slip is linear", func() {
			low := vehicle.New()
			high := vehicle.New()
			// Spin down the initial slip transient first.
			for i := 0; i < 2000; i++ {
				low.Step(0.1, 0.0)
				high.Step(0.1, 0.0)
			}
			for i := 0; i < 2000; i++ {
				low.Step(0.1, 0.0)
				high.Step(0.6, 0.0)
			}
			Expect(high.V).To(BeNumerically(">", low.V))
		})
	})
})
