package bump

import (
	"math"
	"testing"

	"github.com/banachtech/volsurf/util"
	"github.com/stretchr/testify/require"
)

func TestInverseLaw(t *testing.T) {
	absolute, err := NewAbsolute(0.01, 0.02)
	require.NoError(t, err)
	relative, err := NewRelative(1e-4, 3e-4)
	require.NoError(t, err)

	for _, s := range []Strategy{absolute, relative} {
		for i := 0; i < 1000; i++ {
			x0 := util.RandomFloat(1e-3, 1e4)
			require.InDelta(t, x0, s.BumpForwardInverse(s.BumpForward(x0)), 1e-12*x0)
			require.InDelta(t, x0, s.BumpBackwardInverse(s.BumpBackward(x0)), 1e-12*x0)
		}
	}
}

func TestBumpDirections(t *testing.T) {
	s, err := NewRelative(0.1, 0.2)
	require.NoError(t, err)
	require.InDelta(t, 110.0, s.BumpForward(100), 1e-12)
	require.InDelta(t, 80.0, s.BumpBackward(100), 1e-12)
	require.InDelta(t, 10.0, s.MinBump(100), 1e-12)

	a, err := NewAbsolute(0.5, 0.25)
	require.NoError(t, err)
	require.Equal(t, 100.5, a.BumpForward(100))
	require.Equal(t, 99.75, a.BumpBackward(100))
	require.Equal(t, 0.25, a.MinBump(100))
	require.Equal(t, 0.25, a.MinBump(-3))
}

func TestInvalidBump(t *testing.T) {
	for _, c := range [][2]float64{{0, 1}, {1, 0}, {-1, 1}, {math.NaN(), 1}} {
		_, err := NewAbsolute(c[0], c[1])
		require.ErrorIs(t, err, ErrInvalidBump)
		_, err = NewRelative(c[0], c[1])
		require.ErrorIs(t, err, ErrInvalidBump)
	}
}
