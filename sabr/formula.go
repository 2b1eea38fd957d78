// Package sabr calibrates the SABR smile maturity by maturity and blends the
// calibrated smiles into a volatility surface.
package sabr

import "math"

// tolerance below which log-moneyness, vol-of-vol and 1-beta count as zero
const tiny = 1e-7

// Vol is the SABR implied Black volatility for one maturity: the leading
// term of the matching branch times (1 + I1*T). fineTune swaps the leading
// term for Hagan's (2002) moneyness-series expansion.
func Vol(alpha, beta, rho, nu, forward, strike, maturity float64, fineTune bool) float64 {
	x := math.Log(forward / strike)
	b1 := 1 - beta
	fk := math.Pow(forward*strike, b1/2)

	var i0, i0b float64
	switch {
	case math.Abs(x) < tiny:
		i0 = alpha * math.Pow(strike, beta-1)
		i0b = i0
	case math.Abs(nu) < tiny:
		if math.Abs(b1) < tiny {
			i0 = alpha
		} else {
			i0 = x * alpha * b1 / (math.Pow(forward, b1) - math.Pow(strike, b1))
		}
		i0b = alpha / (fk * moneynessSeries(b1, x))
	case math.Abs(b1) < tiny:
		z := nu * x / alpha
		i0 = nu * x / chi(z, rho)
		i0b = i0
	default:
		z := nu * (math.Pow(forward, b1) - math.Pow(strike, b1)) / (alpha * b1)
		i0 = nu * x / chi(z, rho)
		zh := nu / alpha * fk * x
		i0b = alpha / (fk * moneynessSeries(b1, x)) * zh / chi(zh, rho)
	}

	i1 := b1*b1*alpha*alpha/(24*fk*fk) + rho*nu*alpha*beta/(4*fk) + (2-3*rho*rho)*nu*nu/24
	if fineTune {
		return i0b * (1 + i1*maturity)
	}
	return i0 * (1 + i1*maturity)
}

func chi(z, rho float64) float64 {
	return math.Log((math.Sqrt(1-2*rho*z+z*z) + z - rho) / (1 - rho))
}

func moneynessSeries(b1, x float64) float64 {
	b2 := b1 * b1
	x2 := x * x
	return 1 + b2*x2/24 + b2*b2*x2*x2/1920
}

// Weight blends two calibrated maturities: 1 at y = 1, 0 at y = 0, flat at
// both ends so interpolated vols have no kink at a calibrated maturity.
func Weight(y float64) float64 {
	return 0.5 * (math.Sin(math.Pi*(y-0.5)) + 1)
}
