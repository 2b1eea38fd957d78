package localvol

import (
	"math"
	"testing"
	"time"

	"github.com/banachtech/volsurf/bump"
	"github.com/banachtech/volsurf/curve"
	"github.com/banachtech/volsurf/daycount"
	"github.com/banachtech/volsurf/sabr"
	"github.com/banachtech/volsurf/surface"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

var (
	valuationDate = date("2025-01-01")
	maturities    = []time.Time{date("2025-07-02"), date("2026-01-01"), date("2027-01-01")}
	strikes       = []float64{90, 100, 110}
	yc            = curve.Flat{Rate: 0.03}
)

func implied(t *testing.T, quotes [][]float64, opts ...surface.Option) *surface.ImpliedVolSurface {
	s, err := surface.NewImpliedVolSurface(valuationDate, maturities, strikes, quotes, daycount.Act365F{}, surface.StrikeVol, opts...)
	require.NoError(t, err)
	return s
}

func flat(v float64) [][]float64 {
	return [][]float64{{v, v, v}, {v, v, v}, {v, v, v}}
}

func newFlat(t *testing.T) *Surface {
	lv, err := New(implied(t, flat(0.2), surface.WithForward(100, yc)))
	require.NoError(t, err)
	return lv
}

func TestFlatSurface(t *testing.T) {
	lv := newFlat(t)
	require.Equal(t, surface.LocalVolatility, lv.Variant())

	v, err := lv.GetValue(date("2026-01-01"), 100)
	require.NoError(t, err)
	require.InDelta(t, 0.2, v, 1e-3)

	for _, k := range []float64{90, 95, 104.5, 110} {
		v, err := lv.ValueAt(1.3, k)
		require.NoError(t, err)
		require.InDelta(t, 0.2, v, 1e-9)
	}
}

func TestUpperTimeBound(t *testing.T) {
	lv := newFlat(t)

	_, err := lv.ValueAt(lv.MaxX()+1e-9, 100)
	require.ErrorIs(t, err, surface.ErrDomain)
	_, err = lv.GetValue(date("2027-06-01"), 100)
	require.ErrorIs(t, err, surface.ErrDomain)
	_, err = lv.ValueAt(math.NaN(), 100)
	require.ErrorIs(t, err, surface.ErrDomain)
	_, err = lv.ValueAt(1, math.NaN())
	require.ErrorIs(t, err, surface.ErrDomain)

	v, err := lv.ValueAt(lv.MaxX(), 100)
	require.NoError(t, err)
	require.InDelta(t, 0.2, v, 1e-9)
}

func TestClampsToBorders(t *testing.T) {
	quotes := [][]float64{
		{0.25, 0.20, 0.22},
		{0.24, 0.21, 0.23},
		{0.23, 0.22, 0.24},
	}
	lv, err := New(implied(t, quotes, surface.WithForward(100, yc)))
	require.NoError(t, err)

	early, err := lv.ValueAt(0.01, 95)
	require.NoError(t, err)
	first, err := lv.ValueAt(lv.MinX(), 95)
	require.NoError(t, err)
	require.Equal(t, first, early)

	low, err := lv.ValueAt(1, 50)
	require.NoError(t, err)
	border, err := lv.ValueAt(1, 90)
	require.NoError(t, err)
	require.Equal(t, border, low)

	high, err := lv.ValueAt(1, 500)
	require.NoError(t, err)
	border, err = lv.ValueAt(1, 110)
	require.NoError(t, err)
	require.Equal(t, border, high)

	for _, k := range []float64{90, 97, 100, 103, 110} {
		v, err := lv.ValueAt(1.2, k)
		require.NoError(t, err)
		require.False(t, math.IsNaN(v))
		require.GreaterOrEqual(t, v, 0.0)
	}
}

func TestTermStructure(t *testing.T) {
	quotes := [][]float64{
		{0.20, 0.20, 0.20},
		{0.25, 0.25, 0.25},
		{0.30, 0.30, 0.30},
	}
	lv, err := New(implied(t, quotes, surface.WithForward(100, yc)))
	require.NoError(t, err)

	// sigma(t) = 0.25 + 0.05 (t - 1) on [1, 2]: local variance is d(sigma^2 t)/dt
	v, err := lv.ValueAt(1.5, 100)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(0.275*0.275+2*0.275*1.5*0.05), v, 1e-9)
}

func TestNegativeVarianceIsZero(t *testing.T) {
	quotes := [][]float64{
		{0.60, 0.60, 0.60},
		{0.10, 0.10, 0.10},
		{0.05, 0.05, 0.05},
	}
	lv, err := New(implied(t, quotes, surface.WithForward(100, yc)))
	require.NoError(t, err)

	v, err := lv.ValueAt(0.75, 100)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
}

func TestSabrBacked(t *testing.T) {
	s, err := sabr.NewSurface(valuationDate, maturities, strikes, flat(0.22), 100, yc)
	require.NoError(t, err)
	lv, err := New(s)
	require.NoError(t, err)

	v, err := lv.ValueAt(1, 100)
	require.NoError(t, err)
	require.InDelta(t, 0.22, v, 5e-3)

	_, err = lv.ValueAt(lv.MaxX(), 110)
	require.NoError(t, err)
	_, err = lv.ValueAt(lv.MaxX()+1e-6, 100)
	require.ErrorIs(t, err, surface.ErrDomain)
}

func TestBumpsRewrap(t *testing.T) {
	lv := newFlat(t)

	bumped, err := lv.BumpVolSurf(0.01)
	require.NoError(t, err)
	require.Equal(t, surface.LocalVolatility, bumped.Variant())
	v, err := bumped.GetValue(date("2026-01-01"), 100)
	require.NoError(t, err)
	require.InDelta(t, 0.21, v, 1e-9)

	v, err = lv.GetValue(date("2026-01-01"), 100)
	require.NoError(t, err)
	require.InDelta(t, 0.2, v, 1e-9)

	_, err = lv.BumpMaturitySlice(1, 0.01)
	require.NoError(t, err)
	_, err = lv.BumpMaturitySlice(5, 0.01)
	require.ErrorIs(t, err, surface.ErrDomain)
	_, err = lv.BumpMaturityStrikePoint(0, 3, 0.01)
	require.ErrorIs(t, err, surface.ErrDomain)
}

func TestNewErrors(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, surface.ErrConstruction)

	_, err = New(implied(t, flat(0.2)), WithTimeBump(bump.Strategy{}))
	require.ErrorIs(t, err, surface.ErrConstruction)

	rel, err := bump.NewRelative(1e-3, 1e-3)
	require.NoError(t, err)
	lv, err := New(implied(t, flat(0.2)), WithPriceBump(rel))
	require.NoError(t, err)

	// no forward attached to the implied surface
	_, err = lv.ValueAt(1, 100)
	require.ErrorIs(t, err, surface.ErrNotSupported)
}

func TestMoneynessSurface(t *testing.T) {
	s, err := surface.NewImpliedVolSurface(valuationDate, maturities, []float64{0.9, 1, 1.1}, flat(0.2),
		daycount.Act365F{}, surface.MoneynessVol, surface.WithForward(100, yc))
	require.NoError(t, err)
	lv, err := New(s)
	require.NoError(t, err)

	v, err := lv.GetValueWithSpot(date("2026-01-01"), 100, 100)
	require.NoError(t, err)
	require.InDelta(t, 0.2, v, 1e-9)
}
