package physnum_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/labcalc/internal/decimal"
	"github.com/san-kum/labcalc/internal/physnum"
	"github.com/san-kum/labcalc/internal/units"
)

func dec(s string) decimal.Decimal { return decimal.MustParse(s) }

func within(a, b decimal.Decimal, tol string) bool {
	return a.Sub(b).Abs().Cmp(dec(tol)) <= 0
}

var _ = Describe("Number", func() {
	var (
		a physnum.Number
		b physnum.Number
	)

	BeforeEach(func() {
		a = physnum.Must("2.5", "0.1", units.Metre)
		b = physnum.Must("40", "2", units.Centimetre)
	})

	Describe("addition", func() {
		It("adds absolute uncertainties after converting the right operand", func() {
			sum, err := a.Add(b)
			Expect(err).NotTo(HaveOccurred())
			Expect(sum.Unit()).To(Equal(units.Metre))
			Expect(sum.Value().Equal(dec("2.9"))).To(BeTrue())
			Expect(sum.Uncertainty().Equal(dec("0.12"))).To(BeTrue())
		})

		It("never shrinks the uncertainty", func() {
			sum, _ := a.Add(b)
			diff, _ := a.Sub(b)
			Expect(sum.Uncertainty().Cmp(a.Uncertainty())).To(BeNumerically(">=", 0))
			Expect(diff.Uncertainty().Equal(sum.Uncertainty())).To(BeTrue())
		})
	})

	DescribeTable("commutativity of values within one unit",
		func(x, y physnum.Number) {
			xy, err := x.Mul(y)
			Expect(err).NotTo(HaveOccurred())
			yx, err := y.Mul(x)
			Expect(err).NotTo(HaveOccurred())
			Expect(xy.Value().Equal(yx.Value())).To(BeTrue())
			Expect(xy.Uncertainty().Equal(yx.Uncertainty())).To(BeTrue())

			s1, _ := x.Add(y)
			s2, _ := y.Add(x)
			Expect(s1.Equal(s2)).To(BeTrue())
		},
		Entry("lengths", physnum.Must(3, "0.1", units.Metre), physnum.Must("1.2", "0.05", units.Metre)),
		Entry("negative value", physnum.Must(-4, "0.2", units.Second), physnum.Must(7, "0.7", units.Second)),
		Entry("unitless", physnum.Must("0.5", "0.01", units.Unit{}), physnum.Must(8, 0, units.Unit{})),
	)

	DescribeTable("fractional uncertainties add under multiplication and division",
		func(x, y physnum.Number) {
			want := x.FractionalUncertainty().Abs().Add(y.FractionalUncertainty().Abs())

			p, err := x.Mul(y)
			Expect(err).NotTo(HaveOccurred())
			Expect(within(p.FractionalUncertainty().Abs(), want, "1e-24")).To(BeTrue())

			q, err := x.Div(y)
			Expect(err).NotTo(HaveOccurred())
			Expect(within(q.FractionalUncertainty().Abs(), want, "1e-24")).To(BeTrue())
		},
		Entry("small errors", physnum.Must(12, "0.3", units.Gram), physnum.Must(4, "0.1", units.Gram)),
		Entry("large errors", physnum.Must("0.9", "0.4", units.Metre), physnum.Must("2.2", "1.1", units.Metre)),
		Entry("negative operand", physnum.Must(-6, "0.6", units.Second), physnum.Must(3, "0.3", units.Second)),
	)

	Describe("powers", func() {
		It("matches repeated multiplication", func() {
			n := physnum.Must(3, "0.1", units.Metre)
			sq, err := n.Pow(2)
			Expect(err).NotTo(HaveOccurred())
			nn, _ := n.Mul(n)
			Expect(sq.Equal(nn)).To(BeTrue())

			cube, _ := n.Pow(3)
			nnn, _ := nn.Mul(n)
			Expect(cube.Equal(nnn)).To(BeTrue())
		})

		It("rejects fractional exponents", func() {
			_, err := a.Pow(0.5)
			Expect(err).To(MatchError(physnum.ErrUnsupportedPower))
		})
	})

	Describe("unit conversion", func() {
		DescribeTable("round trips restore the original reading",
			func(n physnum.Number, via units.Unit) {
				there, ok := n.ConvertTo(via)
				Expect(ok).To(BeTrue())
				back, ok := there.ConvertTo(n.Unit())
				Expect(ok).To(BeTrue())
				Expect(back.Equal(n)).To(BeTrue())
			},
			Entry("mm via m", physnum.Must("0.378", "0.0005", units.Millimetre), units.Metre),
			Entry("kg via g", physnum.Must("1.25", "0.01", units.Kilogram), units.Gram),
			Entry("min via s", physnum.Must("2.5", "0.1", units.Minute), units.Second),
			Entry("km via cm", physnum.Must("0.42", "0.005", units.Kilometre), units.Centimetre),
		)
	})

	Describe("errors", func() {
		It("reports a zero divisor", func() {
			_, err := a.Div(physnum.Must(0, "0.1", units.Metre))
			Expect(err).To(MatchError(physnum.ErrDivisionByZero))
		})

		It("reports mixed dimensions", func() {
			_, err := a.Add(physnum.Must(1, 0, units.Second))
			Expect(err).To(MatchError(physnum.ErrDimensionMismatch))
			var opErr *physnum.OpError
			Expect(err).To(BeAssignableToTypeOf(opErr))
		})

		It("reports non-numeric operands", func() {
			_, err := a.Mul([]int{1, 2})
			Expect(err).To(MatchError(physnum.ErrType))
		})
	})

	It("gives a zero value a zero fractional uncertainty", func() {
		z := physnum.Must(0, "0.3", units.Gram)
		Expect(z.FractionalUncertainty().IsZero()).To(BeTrue())
	})

	It("halves the uncertainty when halving the value", func() {
		d := physnum.Must("44.48", "0.03", units.Millimetre)
		r, err := d.Div(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Value().String()).To(Equal("22.24"))
		Expect(within(r.Uncertainty(), dec("0.015"), "1e-25")).To(BeTrue())
	})
})
