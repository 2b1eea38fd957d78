// Package localvol turns an implied volatility surface into a Dupire local
// volatility surface by finite differences.
package localvol

import (
	"log/slog"
	"math"
	"time"

	"github.com/banachtech/volsurf/bump"
	"github.com/banachtech/volsurf/surface"
	"github.com/banachtech/volsurf/util"
)

// one trading day
const defaultTimeBump = 1.0 / 244

// one basis point of the strike
const defaultPriceBump = 1e-4

// Surface differentiates the wrapped implied surface on every query. It
// references the wrapped surface and never mutates it.
type Surface struct {
	implied   surface.InterpolatedSurface
	timeBump  bump.Strategy
	priceBump bump.Strategy
	logger    *slog.Logger
}

type Option func(*Surface)

func WithTimeBump(b bump.Strategy) Option {
	return func(s *Surface) { s.timeBump = b }
}

func WithPriceBump(b bump.Strategy) Option {
	return func(s *Surface) { s.priceBump = b }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) { s.logger = l }
}

func New(implied surface.InterpolatedSurface, opts ...Option) (*Surface, error) {
	if implied == nil {
		return nil, surface.Errorf(surface.ErrConstruction, "localvol.New", "no implied surface")
	}
	s := &Surface{
		implied:   implied,
		timeBump:  bump.Strategy{Forward: defaultTimeBump, Backward: defaultTimeBump},
		priceBump: bump.Strategy{Forward: defaultPriceBump, Backward: defaultPriceBump, Relative: true},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, b := range []bump.Strategy{s.timeBump, s.priceBump} {
		if !(b.Forward > 0) || !(b.Backward > 0) {
			return nil, surface.Errorf(surface.ErrConstruction, "localvol.New", "%v", bump.ErrInvalidBump)
		}
	}
	return s, nil
}

// ValueAt is the Dupire local vol at year fraction t and strike k. Times after
// the last quoted maturity are rejected; earlier times and strikes outside the
// quoted range read the nearest border.
func (s *Surface) ValueAt(t, k float64) (float64, error) {
	if t > s.MaxX() || math.IsNaN(t) {
		return 0, surface.Errorf(surface.ErrDomain, "localvol.ValueAt", "t=%g after last maturity %g", t, s.MaxX())
	}
	if math.IsNaN(k) {
		return 0, surface.Errorf(surface.ErrDomain, "localvol.ValueAt", "strike is NaN")
	}
	t = math.Max(t, s.MinX())
	k = util.Clamp(k, s.MinY(), s.MaxY())

	sigma, err := s.implied.ValueAt(t, k)
	if err != nil {
		return 0, err
	}
	fwd, err := s.implied.ForwardPrice(t)
	if err != nil {
		return 0, err
	}
	dt, err := s.centralDiff(t, s.timeBump, s.MinX(), s.MaxX(), func(x float64) (float64, error) {
		return s.implied.ValueAt(x, k)
	})
	if err != nil {
		return 0, err
	}
	alongK := func(x float64) (float64, error) { return s.implied.ValueAt(t, x) }
	dk, err := s.centralDiff(k, s.priceBump, s.MinY(), s.MaxY(), alongK)
	if err != nil {
		return 0, err
	}
	dkk, err := s.secondDiff(k, alongK)
	if err != nil {
		return 0, err
	}

	v := dupire(sigma, t, fwd, k, dt, dk, dkk)
	if math.IsNaN(v) || v < 0 {
		s.logger.Debug("negative local variance", "t", t, "k", k, "variance", v)
		return 0, nil
	}
	return math.Sqrt(v), nil
}

// dupire returns the local variance.
func dupire(sigma, t, fwd, k, dt, dk, dkk float64) float64 {
	if !(sigma > 0) {
		return math.NaN()
	}
	sqt := math.Sqrt(t)
	d1 := (math.Log(fwd/k) + 0.5*sigma*sigma*t) / (sigma * sqt)
	num := sigma*sigma + 2*sigma*t*dt
	a := 1 + d1*sqt*k*dk
	den := a*a + sigma*t*k*k*(dkk-d1*sqt*dk*dk)
	return num / den
}

// centralDiff keeps both bumped points inside [lo, hi].
func (s *Surface) centralDiff(x float64, b bump.Strategy, lo, hi float64, f func(float64) (float64, error)) (float64, error) {
	up := util.Clamp(b.BumpForward(x), lo, hi)
	down := util.Clamp(b.BumpBackward(x), lo, hi)
	if up == down {
		return 0, nil
	}
	fu, err := f(up)
	if err != nil {
		return 0, err
	}
	fd, err := f(down)
	if err != nil {
		return 0, err
	}
	return (fu - fd) / (up - down), nil
}

// secondDiff uses a symmetric stencil of the smaller price bump. At the strike
// borders the centre moves inward so the stencil stays on the surface.
func (s *Surface) secondDiff(k float64, f func(float64) (float64, error)) (float64, error) {
	lo, hi := s.MinY(), s.MaxY()
	h := s.priceBump.MinBump(k)
	if 2*h > hi-lo {
		h = (hi - lo) / 2
	}
	if !(h > 0) {
		return 0, nil
	}
	c := util.Clamp(k, lo+h, hi-h)
	fu, err := f(c + h)
	if err != nil {
		return 0, err
	}
	fc, err := f(c)
	if err != nil {
		return 0, err
	}
	fd, err := f(c - h)
	if err != nil {
		return 0, err
	}
	return (fu - 2*fc + fd) / (h * h), nil
}

func (s *Surface) GetValue(expiry time.Time, strike float64) (float64, error) {
	return s.ValueAt(s.TimeFraction(expiry), strike)
}

func (s *Surface) GetValueWithSpot(expiry time.Time, strike, spot float64) (float64, error) {
	switch s.Kind() {
	case surface.StrikeVol:
		return s.GetValue(expiry, strike)
	case surface.MoneynessVol:
		return s.GetValue(expiry, strike/spot)
	default:
		return 0, surface.Errorf(surface.ErrNotSupported, "localvol.GetValueWithSpot", "surface kind %v", s.Kind())
	}
}

func (s *Surface) BumpVolSurf(delta float64) (surface.VolSurface, error) {
	return s.rewrap(s.implied.BumpVolSurf(delta))
}

func (s *Surface) BumpMaturitySlice(index int, delta float64) (surface.VolSurface, error) {
	return s.rewrap(s.implied.BumpMaturitySlice(index, delta))
}

func (s *Surface) BumpMaturityStrikePoint(maturityIndex, strikeIndex int, delta float64) (surface.VolSurface, error) {
	return s.rewrap(s.implied.BumpMaturityStrikePoint(maturityIndex, strikeIndex, delta))
}

// rewrap wraps a bumped implied surface with the same bump sizes.
func (s *Surface) rewrap(v surface.VolSurface, err error) (surface.VolSurface, error) {
	if err != nil {
		return nil, err
	}
	implied, ok := v.(surface.InterpolatedSurface)
	if !ok {
		return nil, surface.Errorf(surface.ErrNotSupported, "localvol.Bump", "bumped %v surface is not interpolated", v.Variant())
	}
	out := *s
	out.implied = implied
	return &out, nil
}

func (s *Surface) MinX() float64 { return s.implied.MinX() }
func (s *Surface) MaxX() float64 { return s.implied.MaxX() }
func (s *Surface) MinY() float64 { return s.implied.MinY() }
func (s *Surface) MaxY() float64 { return s.implied.MaxY() }

func (s *Surface) ForwardPrice(t float64) (float64, error) { return s.implied.ForwardPrice(t) }
func (s *Surface) TimeFraction(expiry time.Time) float64   { return s.implied.TimeFraction(expiry) }

func (s *Surface) Kind() surface.Kind                   { return s.implied.Kind() }
func (s *Surface) Variant() surface.Variant             { return surface.LocalVolatility }
func (s *Surface) Implied() surface.InterpolatedSurface { return s.implied }

var _ surface.InterpolatedSurface = (*Surface)(nil)
