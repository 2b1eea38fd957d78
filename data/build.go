package data

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/banachtech/volsurf/curve"
	"github.com/banachtech/volsurf/daycount"
	"github.com/banachtech/volsurf/localvol"
	"github.com/banachtech/volsurf/sabr"
	"github.com/banachtech/volsurf/surface"
	"github.com/banachtech/volsurf/util"
)

const defaultDayCount = "ACT/365F"

// Market is a payload with its dates, conventions and curve resolved.
type Market struct {
	Name          string
	ValuationDate time.Time
	Maturities    []time.Time
	Strikes       []float64
	Quotes        [][]float64
	DayCount      daycount.DayCount
	Kind          surface.Kind
	Spot          float64
	Curve         curve.YieldCurve
}

// Parse resolves p. Malformed fields are validation errors.
func (p SurfacePayload) Parse() (Market, error) {
	const op = "data.Parse"
	valuationDate, err := time.Parse(util.Layout, p.ValuationDate)
	if err != nil {
		return Market{}, surface.Errorf(surface.ErrValidation, op, "valuation date: %v", err)
	}
	maturities := make([]time.Time, len(p.Maturities))
	for i, m := range p.Maturities {
		maturities[i], err = time.Parse(util.Layout, m)
		if err != nil {
			return Market{}, surface.Errorf(surface.ErrValidation, op, "maturity %d: %v", i, err)
		}
	}

	var cal daycount.Calendar
	if len(p.Holidays) > 0 {
		hc, err := util.NewHolidayCalendar(p.Holidays)
		if err != nil {
			return Market{}, surface.Errorf(surface.ErrValidation, op, "holidays: %v", err)
		}
		cal = hc
	} else {
		cal = &util.HolidayCalendar{}
	}
	name := p.DayCount
	if name == "" {
		name = defaultDayCount
	}
	dc, err := daycount.Parse(name, cal)
	if err != nil {
		return Market{}, surface.Errorf(surface.ErrValidation, op, "%v", err)
	}
	kind, err := surface.ParseKind(p.Kind)
	if err != nil {
		return Market{}, err
	}
	if !(p.Spot > 0) {
		return Market{}, surface.Errorf(surface.ErrValidation, op, "spot %v must be positive", p.Spot)
	}

	return Market{
		Name:          p.Name,
		ValuationDate: valuationDate,
		Maturities:    maturities,
		Strikes:       p.Strikes,
		Quotes:        p.Quotes,
		DayCount:      dc,
		Kind:          kind,
		Spot:          p.Spot,
		Curve:         curve.Flat{Rate: p.Rate},
	}, nil
}

func (m Market) Implied(logger *slog.Logger) (*surface.ImpliedVolSurface, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return surface.NewImpliedVolSurface(m.ValuationDate, m.Maturities, m.Strikes, m.Quotes, m.DayCount, m.Kind,
		surface.WithForward(m.Spot, m.Curve),
		surface.WithLogger(logger),
	)
}

// Sabr calibrates a SABR surface. Only strike quoted grids are supported.
func (m Market) Sabr(opts ...sabr.SurfaceOption) (*sabr.Surface, error) {
	if m.Kind != surface.StrikeVol {
		return nil, surface.Errorf(surface.ErrNotSupported, "data.Sabr", "%v grids cannot be calibrated", m.Kind)
	}
	opts = append([]sabr.SurfaceOption{sabr.WithDayCount(m.DayCount)}, opts...)
	return sabr.NewSurface(m.ValuationDate, m.Maturities, m.Strikes, m.Quotes, m.Spot, m.Curve, opts...)
}

// BuildOptions tune the surfaces Build creates. The zero value uses the
// package defaults.
type BuildOptions struct {
	Logger   *slog.Logger
	Sabr     []sabr.SurfaceOption
	LocalVol []localvol.Option
}

// Build turns a payload into the surface named by variant; local vol wraps
// the SABR surface for strike grids and the interpolated grid otherwise.
func Build(p SurfacePayload, variant surface.Variant, bo BuildOptions) (surface.InterpolatedSurface, error) {
	m, err := p.Parse()
	if err != nil {
		return nil, err
	}
	logger := bo.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts := append([]sabr.SurfaceOption{sabr.WithLogger(logger)}, bo.Sabr...)

	switch variant {
	case surface.GridInterpolated:
		s, err := m.Implied(logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case surface.SabrCalibrated:
		s, err := m.Sabr(opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case surface.LocalVolatility:
		var base surface.InterpolatedSurface
		if m.Kind == surface.StrikeVol {
			s, err := m.Sabr(opts...)
			if err != nil {
				return nil, err
			}
			base = s
		} else {
			s, err := m.Implied(logger)
			if err != nil {
				return nil, err
			}
			base = s
		}
		lv, err := localvol.New(base, append([]localvol.Option{localvol.WithLogger(logger)}, bo.LocalVol...)...)
		if err != nil {
			return nil, err
		}
		return lv, nil
	}
	return nil, surface.Errorf(surface.ErrNotSupported, "data.Build", "variant %v", variant)
}

// ParseVariant maps a request string to a surface variant.
func ParseVariant(s string) (surface.Variant, error) {
	switch s {
	case "", "implied", "grid":
		return surface.GridInterpolated, nil
	case "sabr":
		return surface.SabrCalibrated, nil
	case "local", "localvol", "dupire":
		return surface.LocalVolatility, nil
	}
	return 0, surface.Errorf(surface.ErrNotSupported, "data.ParseVariant", "unknown variant %q", s)
}

// NewCalibration collects what gets persisted from a calibrated surface.
func NewCalibration(name string, s *sabr.Surface) Calibration {
	return Calibration{
		Name:          name,
		ValuationDate: s.ValuationDate().Format(util.Layout),
		Spot:          s.Spot(),
		Forwards:      s.Forwards(),
		Parameters:    s.Parameters(),
	}
}

func (c Calibration) String() string {
	return fmt.Sprintf("%s@%s: %d maturities", c.Name, c.ValuationDate, len(c.Parameters))
}
