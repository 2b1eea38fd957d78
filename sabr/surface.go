package sabr

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/banachtech/volsurf/curve"
	"github.com/banachtech/volsurf/daycount"
	"github.com/banachtech/volsurf/surface"
	"golang.org/x/sync/errgroup"
)

// CalibratedSurface is an interpolated surface backed by per-maturity SABR
// parameters.
type CalibratedSurface interface {
	surface.InterpolatedSurface
	Parameters() []ParameterSet
}

// Surface holds one calibrated SABR smile per quoted maturity and blends
// neighbouring smiles in time. It is immutable once built.
type Surface struct {
	valuationDate time.Time
	grid          *surface.Grid
	dayCount      daycount.DayCount
	spot          float64
	curve         curve.YieldCurve
	opts          Options

	parallel bool
	progress func()
	logger   *slog.Logger

	times    []float64
	forwards []float64
	params   []ParameterSet
}

type SurfaceOption func(*Surface)

func WithDayCount(dc daycount.DayCount) SurfaceOption {
	return func(s *Surface) { s.dayCount = dc }
}

func WithOptions(opts Options) SurfaceOption {
	return func(s *Surface) { s.opts = opts }
}

// WithParallel calibrates maturities concurrently.
func WithParallel(parallel bool) SurfaceOption {
	return func(s *Surface) { s.parallel = parallel }
}

// WithProgress is called once per calibrated maturity. With WithParallel it
// must be safe for concurrent use.
func WithProgress(fn func()) SurfaceOption {
	return func(s *Surface) { s.progress = fn }
}

func WithLogger(l *slog.Logger) SurfaceOption {
	return func(s *Surface) { s.logger = l }
}

// NewSurface validates the quote grid and calibrates every maturity. The ATM
// vol of a maturity is its quote row read at spot.
func NewSurface(valuationDate time.Time, maturities []time.Time, strikes []float64, quotes [][]float64, spot float64, yc curve.YieldCurve, opts ...SurfaceOption) (*Surface, error) {
	const op = "sabr.NewSurface"
	grid, err := surface.NewGrid(maturities, strikes, quotes)
	if err != nil {
		return nil, err
	}
	if !(spot > 0) {
		return nil, surface.Errorf(surface.ErrConstruction, op, "spot %v must be positive", spot)
	}
	if yc == nil {
		return nil, surface.Errorf(surface.ErrConstruction, op, "no yield curve")
	}
	s := &Surface{
		valuationDate: valuationDate,
		dayCount:      daycount.Act365F{},
		spot:          spot,
		curve:         yc,
		opts:          DefaultOptions(),
		progress:      func() {},
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dayCount == nil {
		return nil, surface.Errorf(surface.ErrConstruction, op, "no day count convention")
	}
	if s.opts.Logger == nil {
		s.opts.Logger = s.logger
	}
	return s.calibrated(grid)
}

func (s *Surface) calibrated(grid *surface.Grid) (*Surface, error) {
	times, err := surface.YearFractions(s.valuationDate, grid.Maturities(), s.dayCount)
	if err != nil {
		return nil, err
	}
	out := *s
	out.grid = grid
	out.times = times
	if err := out.calibrate(context.Background()); err != nil {
		return nil, err
	}
	return &out, nil
}

// calibrate fits every maturity row independently. In parallel mode the first
// failure cancels the rows not yet started.
func (s *Surface) calibrate(ctx context.Context) error {
	start := time.Now()
	n := s.grid.Rows()
	strikes := s.grid.Strikes()
	s.forwards = make([]float64, n)
	s.params = make([]ParameterSet, n)
	c := NewCalibrator(s.opts)

	fit := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := s.grid.Row(i)
		fwd := curve.ForwardPrice(s.spot, s.curve, s.times[i])
		in := Input{
			Maturity:   s.times[i],
			Forward:    fwd,
			ATMVol:     surface.Linear(strikes, row, s.spot),
			Strikes:    strikes,
			MarketVols: row,
		}
		p, err := c.Calibrate(in)
		if err != nil {
			return fmt.Errorf("maturity %s: %w", s.grid.Maturity(i).Format("2006-01-02"), err)
		}
		s.forwards[i] = fwd
		s.params[i] = p
		s.progress()
		return nil
	}

	if s.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < n; i++ {
			i := i
			g.Go(func() error { return fit(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i := 0; i < n; i++ {
			if err := fit(ctx, i); err != nil {
				return err
			}
		}
	}
	s.logger.Info("sabr surface calibrated",
		"maturities", n, "strikes", len(strikes), "parallel", s.parallel, "elapsed", time.Since(start))
	return nil
}

// ValueAt blends the two calibrated smiles bracketing t. Points outside the
// quoted box are rejected.
func (s *Surface) ValueAt(t, k float64) (float64, error) {
	if !(t >= s.MinX() && t <= s.MaxX()) || !(k >= s.MinY() && k <= s.MaxY()) {
		return 0, surface.Errorf(surface.ErrDomain, "sabr.ValueAt",
			"(t=%g, k=%g) outside [%g, %g] x [%g, %g]", t, k, s.MinX(), s.MaxX(), s.MinY(), s.MaxY())
	}
	i := sort.SearchFloat64s(s.times, t)
	if i == 0 {
		return s.vol(0, k), nil
	}
	y := (s.times[i] - t) / (s.times[i] - s.times[i-1])
	w := Weight(y)
	return w*s.vol(i-1, k) + (1-w)*s.vol(i, k), nil
}

func (s *Surface) vol(i int, k float64) float64 {
	return s.params[i].Vol(s.forwards[i], k, s.opts.FineTune)
}

func (s *Surface) GetValue(expiry time.Time, strike float64) (float64, error) {
	return s.ValueAt(s.TimeFraction(expiry), strike)
}

// GetValueWithSpot ignores spot: the surface is quoted in absolute strikes.
func (s *Surface) GetValueWithSpot(expiry time.Time, strike, _ float64) (float64, error) {
	return s.GetValue(expiry, strike)
}

func (s *Surface) TimeFraction(expiry time.Time) float64 {
	return s.dayCount.YearFraction(s.valuationDate, expiry)
}

func (s *Surface) BumpVolSurf(delta float64) (surface.VolSurface, error) {
	return s.bumped(s.grid.Bump(delta), nil)
}

func (s *Surface) BumpMaturitySlice(index int, delta float64) (surface.VolSurface, error) {
	return s.bumped(s.grid.BumpRow(index, delta))
}

func (s *Surface) BumpMaturityStrikePoint(maturityIndex, strikeIndex int, delta float64) (surface.VolSurface, error) {
	return s.bumped(s.grid.BumpPoint(maturityIndex, strikeIndex, delta))
}

// bumped recalibrates from the bumped quotes.
func (s *Surface) bumped(g *surface.Grid, err error) (surface.VolSurface, error) {
	if err != nil {
		return nil, err
	}
	out, err := s.calibrated(g)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Surface) MinX() float64 { return s.times[0] }
func (s *Surface) MaxX() float64 { return s.times[len(s.times)-1] }
func (s *Surface) MinY() float64 { return s.grid.Strike(0) }
func (s *Surface) MaxY() float64 { return s.grid.Strike(s.grid.Cols() - 1) }

func (s *Surface) ForwardPrice(t float64) (float64, error) {
	return curve.ForwardPrice(s.spot, s.curve, t), nil
}

func (s *Surface) Kind() surface.Kind       { return surface.StrikeVol }
func (s *Surface) Variant() surface.Variant { return surface.SabrCalibrated }
func (s *Surface) Grid() *surface.Grid      { return s.grid }
func (s *Surface) Spot() float64            { return s.spot }
func (s *Surface) ValuationDate() time.Time { return s.valuationDate }
func (s *Surface) Options() Options         { return s.opts }

// Parameters returns a copy of the calibrated sets, one per maturity.
func (s *Surface) Parameters() []ParameterSet {
	return append([]ParameterSet(nil), s.params...)
}

// Forwards returns the forward used to calibrate each maturity.
func (s *Surface) Forwards() []float64 {
	return append([]float64(nil), s.forwards...)
}

var _ CalibratedSurface = (*Surface)(nil)
