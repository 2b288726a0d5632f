package gravity_test

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravlab/internal/gravity"
	"github.com/san-kum/gravlab/internal/vec"
)

func TestGravitySuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Gravity Suite")
}

var _ = Describe("Model", func() {
	var (
		bodies []gravity.Body
		model  *gravity.Model
	)

	BeforeEach(func() {
		// Heavy central body with a light satellite on a circular orbit.
		bodies = []gravity.Body{
			{Name: "primary", Mass: 1.0, Pos: vec.New(0, 0, 0)},
			{Name: "satellite", Mass: 1e-3, Pos: vec.New(1, 0, 0), Vel: vec.New(0, 1, 0)},
		}
		var err error
		model, err = gravity.New(bodies, 1.0)
		Expect(err).NotTo(HaveOccurred())
	})

	It("pulls the satellite toward the primary", func() {
		dx, err := model.Derive(gravity.Flatten(bodies), 0)
		Expect(err).NotTo(HaveOccurred())

		// Satellite acceleration points along -x with magnitude ~G*M/r^2.
		Expect(dx[9]).To(BeNumerically("~", -1.0, 1e-3))
		Expect(dx[10]).To(BeZero())
		Expect(dx[11]).To(BeZero())
	})

	It("reports a bound system energy", func() {
		e := model.Energy(gravity.Flatten(bodies))
		Expect(e).To(BeNumerically("<", 0))
	})

	It("carries the orbital angular momentum in z", func() {
		l := model.AngularMomentum(gravity.Flatten(bodies))
		Expect(l.X).To(BeZero())
		Expect(l.Y).To(BeZero())
		Expect(l.Z).To(BeNumerically("~", 1e-3, 1e-15))
	})

	It("is a pure function of the state", func() {
		x := gravity.Flatten(bodies)
		before := x.Clone()

		_, err := model.Derive(x, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect([]float64(x)).To(Equal([]float64(before)))
	})

	It("scales accelerations with G", func() {
		g4 := 4 * math.Pi * math.Pi
		strong, err := gravity.New(bodies, g4)
		Expect(err).NotTo(HaveOccurred())

		x := gravity.Flatten(bodies)
		weak, err := model.Derive(x, 0)
		Expect(err).NotTo(HaveOccurred())
		scaled, err := strong.Derive(x, 0)
		Expect(err).NotTo(HaveOccurred())

		Expect(scaled[9]).To(BeNumerically("~", g4*weak[9], 1e-12))
	})
})
