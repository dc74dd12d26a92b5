package lbm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fluidsim/internal/lattice"
)

var _ = Describe("Sim", func() {
	var s *Sim

	Context("a lone interface cell surrounded by empty cells", func() {
		BeforeEach(func() {
			s = newFreeSurface(GinkgoT(), 7, 7)
			setInterface(s, 3, 3, 1)
			s.Simulate(1)
		})

		It("fills the cell", func() {
			Expect(s.CellType(3, 3)).To(Equal(Fluid))
			Expect(s.InterfaceClass(3, 3)).To(Equal(NoInterfaceNeighbor))
			Expect(s.LastTick().Filled).To(Equal(1))
		})

		It("grows a new interface ring", func() {
			for d := 1; d < lattice.Q; d++ {
				x, y := 3+lattice.Offsets[d][0], 3+lattice.Offsets[d][1]
				Expect(s.CellType(x, y)).To(Equal(NewInterface), "cell (%d,%d)", x, y)
			}
			Expect(s.LastTick().Orphans).To(BeZero())
		})
	})

	Context("a closed single-phase box at rest", func() {
		BeforeEach(func() {
			var err error
			s, err = New(16, 16, 0.1, WithLogger(quiet), WithVariant(SinglePhase), WithDensity(1.2))
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps its density for a thousand ticks", func() {
			s.Simulate(1000)
			w, h := s.Size()
			for y := 1; y < h-1; y++ {
				for x := 1; x < w-1; x++ {
					Expect(s.Density(x, y)).To(BeNumerically("~", 1.2, 1e-5))
					Expect(s.Velocity(x, y).Len()).To(BeNumerically("<", 1e-12))
				}
			}
		})
	})

	Context("filling one cell of an empty grid", func() {
		BeforeEach(func() {
			s = newFreeSurface(GinkgoT(), 7, 7)
			s.Fill(3, 3)
		})

		It("surrounds it with new interface seeded from the fill", func() {
			for d := 1; d < lattice.Q; d++ {
				x, y := 3+lattice.Offsets[d][0], 3+lattice.Offsets[d][1]
				Expect(s.CellType(x, y)).To(Equal(NewInterface))
				Expect(s.Density(x, y)).To(Equal(1.0))
			}
		})

		It("promotes the ring after one tick", func() {
			s.Simulate(1)
			Expect(s.CellType(3, 3)).To(Equal(Fluid))
			for d := 1; d < lattice.Q; d++ {
				x, y := 3+lattice.Offsets[d][0], 3+lattice.Offsets[d][1]
				Expect(s.CellType(x, y)).To(Equal(Interface))
			}
		})
	})

	Context("a dam break under gravity", func() {
		BeforeEach(func() {
			s = newFreeSurface(GinkgoT(), 32, 24, WithGravity(lattice.Vec2{Y: -1e-4}), WithMaxVelocity(0.1))
			s.FillBatch(block(1, 1, 10, 18))
		})

		It("never lets fluid touch empty cells", func() {
			for n := 0; n < 300; n++ {
				s.Simulate(1)
				Expect(adjacencyViolations(s)).To(BeZero(), "tick %d", n)
			}
		})

		It("moves liquid toward the open side", func() {
			s.Simulate(400)
			Expect(s.IsFluid(12, 1)).To(BeTrue())
		})
	})

	Context("a block settling at the default gravity and velocity cap", func() {
		BeforeEach(func() {
			s = newFreeSurface(GinkgoT(), 32, 24,
				WithGravity(DefaultGravity), WithMaxVelocity(DefaultMaxVelocity))
			s.FillBatch(block(1, 1, 10, 18))
		})

		It("keeps mass within the dropped amount", func() {
			before := totalMass(s)
			for n := 0; n < 200; n++ {
				s.Simulate(1)
				Expect(adjacencyViolations(s)).To(BeZero(), "tick %d", n)
			}
			s.estimate()
			Expect(totalMass(s)).To(BeNumerically("~", before, 0.02*before+s.DroppedMass()))
		})
	})
})
