package surface

import (
	"log/slog"
	"math"
	"time"

	"github.com/banachtech/volsurf/curve"
	"github.com/banachtech/volsurf/daycount"
)

// ImpliedVolSurface interpolates a quote grid bilinearly in
// (year fraction, strike or moneyness).
type ImpliedVolSurface struct {
	valuationDate time.Time
	grid          *Grid
	dayCount      daycount.DayCount
	kind          Kind
	times         []float64
	interp        *Bilinear

	spot   float64
	curve  curve.YieldCurve
	logger *slog.Logger
}

type Option func(*ImpliedVolSurface)

// WithForward attaches the spot and the curve used by ForwardPrice.
func WithForward(spot float64, yc curve.YieldCurve) Option {
	return func(s *ImpliedVolSurface) {
		s.spot = spot
		s.curve = yc
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *ImpliedVolSurface) {
		s.logger = l
	}
}

func NewImpliedVolSurface(valuationDate time.Time, maturities []time.Time, strikes []float64, quotes [][]float64, dc daycount.DayCount, kind Kind, opts ...Option) (*ImpliedVolSurface, error) {
	grid, err := NewGrid(maturities, strikes, quotes)
	if err != nil {
		return nil, err
	}
	s := &ImpliedVolSurface{
		valuationDate: valuationDate,
		dayCount:      dc,
		kind:          kind,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s.withGrid(grid)
}

// withGrid returns a copy of s over grid, sharing every other setting.
func (s *ImpliedVolSurface) withGrid(grid *Grid) (*ImpliedVolSurface, error) {
	if s.dayCount == nil {
		return nil, Errorf(ErrConstruction, "NewImpliedVolSurface", "no day count convention")
	}
	times, err := YearFractions(s.valuationDate, grid.maturities, s.dayCount)
	if err != nil {
		return nil, err
	}
	b, err := NewBilinear(times, grid.strikes, grid.quotes)
	if err != nil {
		return nil, err
	}
	out := *s
	out.grid = grid
	out.times = times
	out.interp = b
	return &out, nil
}

// YearFractions maps maturities to strictly increasing positive year fractions.
func YearFractions(valuationDate time.Time, maturities []time.Time, dc daycount.DayCount) ([]float64, error) {
	times := make([]float64, len(maturities))
	for i, m := range maturities {
		times[i] = dc.YearFraction(valuationDate, m)
		if !(times[i] > 0) {
			return nil, Errorf(ErrConstruction, "YearFractions", "maturity %s is not after valuation date %s", m.Format("2006-01-02"), valuationDate.Format("2006-01-02"))
		}
		if i > 0 && !(times[i] > times[i-1]) {
			return nil, Errorf(ErrConstruction, "YearFractions", "maturities %d and %d share year fraction %g under %s", i-1, i, times[i], dc.Name())
		}
	}
	return times, nil
}

func (s *ImpliedVolSurface) GetValue(expiry time.Time, strike float64) (float64, error) {
	return s.ValueAt(s.TimeFraction(expiry), strike)
}

func (s *ImpliedVolSurface) GetValueWithSpot(expiry time.Time, strike, spot float64) (float64, error) {
	switch s.kind {
	case StrikeVol:
		return s.GetValue(expiry, strike)
	case MoneynessVol:
		return s.GetValue(expiry, strike/spot)
	default:
		return 0, Errorf(ErrNotSupported, "GetValueWithSpot", "surface kind %v", s.kind)
	}
}

// ValueAt reads the grid; points off the grid take the nearest border value.
// Only a NaN coordinate is an error.
func (s *ImpliedVolSurface) ValueAt(t, k float64) (float64, error) {
	if math.IsNaN(t) || math.IsNaN(k) {
		return 0, Errorf(ErrDomain, "ValueAt", "(t=%g, k=%g) is not a point", t, k)
	}
	return s.interp.At(t, k), nil
}

func (s *ImpliedVolSurface) TimeFraction(expiry time.Time) float64 {
	return s.dayCount.YearFraction(s.valuationDate, expiry)
}

func (s *ImpliedVolSurface) BumpVolSurf(delta float64) (VolSurface, error) {
	return s.bumped(s.grid.Bump(delta), nil)
}

func (s *ImpliedVolSurface) BumpMaturitySlice(index int, delta float64) (VolSurface, error) {
	return s.bumped(s.grid.BumpRow(index, delta))
}

func (s *ImpliedVolSurface) BumpMaturityStrikePoint(maturityIndex, strikeIndex int, delta float64) (VolSurface, error) {
	return s.bumped(s.grid.BumpPoint(maturityIndex, strikeIndex, delta))
}

func (s *ImpliedVolSurface) bumped(g *Grid, err error) (VolSurface, error) {
	if err != nil {
		return nil, err
	}
	out, err := s.withGrid(g)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("implied vol surface bumped", "rows", g.Rows(), "cols", g.Cols())
	return out, nil
}

func (s *ImpliedVolSurface) MinX() float64 { return s.times[0] }
func (s *ImpliedVolSurface) MaxX() float64 { return s.times[len(s.times)-1] }
func (s *ImpliedVolSurface) MinY() float64 { return s.grid.strikes[0] }
func (s *ImpliedVolSurface) MaxY() float64 { return s.grid.strikes[len(s.grid.strikes)-1] }

// ForwardPrice is in the units of the strike axis: a price for StrikeVol, a
// ratio to spot for MoneynessVol.
func (s *ImpliedVolSurface) ForwardPrice(t float64) (float64, error) {
	if s.curve == nil {
		return 0, Errorf(ErrNotSupported, "ForwardPrice", "surface has no forward curve")
	}
	f := curve.ForwardPrice(s.spot, s.curve, t)
	if s.kind == MoneynessVol {
		return f / s.spot, nil
	}
	return f, nil
}

func (s *ImpliedVolSurface) Kind() Kind                  { return s.kind }
func (s *ImpliedVolSurface) Variant() Variant            { return GridInterpolated }
func (s *ImpliedVolSurface) Grid() *Grid                 { return s.grid }
func (s *ImpliedVolSurface) ValuationDate() time.Time    { return s.valuationDate }
func (s *ImpliedVolSurface) DayCount() daycount.DayCount { return s.dayCount }
func (s *ImpliedVolSurface) Times() []float64            { return append([]float64(nil), s.times...) }
