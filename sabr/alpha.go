package sabr

import (
	"math"

	"github.com/banachtech/volsurf/util"
)

// FindAlpha returns the alpha for which the Hagan ATM vol at strike = forward
// equals atmVol. It solves
//
//	a0 x^3 + b0 x^2 + c0 x + d0 = 0
//
// and never returns a negative value.
func FindAlpha(beta, rho, nu, maturity, forward, atmVol float64) float64 {
	a0, b0, c0, d0 := atmCubic(beta, rho, nu, maturity, forward, atmVol)
	if math.Abs(a0) < 1e-14 {
		return math.Max(quadraticRoot(b0, c0, d0), 0)
	}
	a, b, c := b0/a0, c0/a0, d0/a0
	q, r := cubicQR(a, b, c)

	var x float64
	if r*r < q*q*q {
		theta := math.Acos(util.Clamp(r/math.Sqrt(q*q*q), -1, 1))
		sq := -2 * math.Sqrt(q)
		x1 := sq*math.Cos(theta/3) - a/3
		x2 := sq*math.Cos((theta+2*math.Pi)/3) - a/3
		x3 := sq*math.Cos((theta-2*math.Pi)/3) - a/3
		x = smallestPositive(x1, x2, x3)
	} else {
		s := -1.0
		if r < 0 {
			s = 1.0
		}
		p := s * math.Pow(math.Abs(r)+math.Sqrt(r*r-q*q*q), 1.0/3)
		var qp float64
		if p != 0 {
			qp = q / p
		}
		x = p + qp - a/3
	}
	return math.Max(x, 0)
}

// atmCubic returns the coefficients of the ATM equation in alpha.
func atmCubic(beta, rho, nu, maturity, forward, atmVol float64) (a0, b0, c0, d0 float64) {
	b1 := 1 - beta
	f1 := math.Pow(forward, b1)
	a0 = b1 * b1 * maturity / (24 * f1 * f1)
	b0 = rho * beta * nu * maturity / (4 * f1)
	c0 = 1 + (2-3*rho*rho)*nu*nu*maturity/24
	d0 = -atmVol * f1
	return a0, b0, c0, d0
}

// cubicQR for the monic cubic x^3 + a x^2 + b x + c. There are three real
// roots iff r^2 < q^3.
func cubicQR(a, b, c float64) (q, r float64) {
	q = (a*a - 3*b) / 9
	r = (2*a*a*a - 9*a*b + 27*c) / 54
	return q, r
}

// smallestPositive starts from the largest root and moves down to the
// smallest positive one; with no positive root the largest is kept.
func smallestPositive(roots ...float64) float64 {
	x := roots[0]
	for _, v := range roots[1:] {
		x = math.Max(x, v)
	}
	for _, v := range roots {
		if v > 0 && v < x {
			x = v
		}
	}
	return x
}

// quadraticRoot handles beta = 1, where the cubic term vanishes.
func quadraticRoot(b0, c0, d0 float64) float64 {
	if math.Abs(b0) < 1e-14 {
		return -d0 / c0
	}
	disc := c0*c0 - 4*b0*d0
	if disc < 0 {
		return 0
	}
	sq := math.Sqrt(disc)
	return smallestPositive((-c0+sq)/(2*b0), (-c0-sq)/(2*b0))
}
