package sabr

import (
	"math"
	"testing"

	"github.com/banachtech/volsurf/util"
	"github.com/stretchr/testify/require"
)

func threeRoots(beta, rho, nu, T, f, atm float64) bool {
	a0, b0, c0, d0 := atmCubic(beta, rho, nu, T, f, atm)
	q, r := cubicQR(b0/a0, c0/a0, d0/a0)
	return r*r < q*q*q
}

func TestFindAlpha(t *testing.T) {
	testCases := []struct {
		name  string
		beta  float64
		rho   float64
		nu    float64
		three bool
		alpha float64
	}{
		{name: "OneRoot", beta: 0.5, rho: 0, nu: 0.3, three: false, alpha: 2.18255},
		{name: "ThreeRoots", beta: 0.5, rho: -0.9, nu: 2, three: true, alpha: 2.5222},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.three, threeRoots(tc.beta, tc.rho, tc.nu, 1, 100, 0.22))
			alpha := FindAlpha(tc.beta, tc.rho, tc.nu, 1, 100, 0.22)
			require.InDelta(t, tc.alpha, alpha, 1e-4)
			require.InDelta(t, 0.22, Vol(alpha, tc.beta, tc.rho, tc.nu, 100, 100, 1, false), 1e-12)
		})
	}
}

func TestFindAlphaLognormal(t *testing.T) {
	alpha := FindAlpha(1, -0.3, 0.4, 1, 100, 0.2)
	require.InDelta(t, 0.19889, alpha, 1e-5)
	require.InDelta(t, 0.2, Vol(alpha, 1, -0.3, 0.4, 100, 100, 1, false), 1e-12)
}

func TestFindAlphaNonNegative(t *testing.T) {
	require.Equal(t, 0.0, FindAlpha(0.5, 0, 0.3, 1, 100, -0.22))

	for i := 0; i < 500; i++ {
		alpha := FindAlpha(
			util.RandomFloat(0.1, 0.9),
			util.RandomFloat(-0.99, 0.99),
			util.RandomFloat(0.01, 3),
			util.RandomFloat(0.05, 10),
			util.RandomFloat(10, 500),
			util.RandomFloat(0.01, 1),
		)
		require.False(t, math.IsNaN(alpha))
		require.GreaterOrEqual(t, alpha, 0.0)
	}
}
