// Package surface holds the volatility-grid data model, the interfaces
// pricing engines consume and the grid-interpolated implied-vol surface.
package surface

import (
	"fmt"
	"strings"
	"time"
)

// Kind says how the strike axis of a surface is read.
type Kind int

const (
	StrikeVol Kind = iota
	MoneynessVol
)

func (k Kind) String() string {
	switch k {
	case StrikeVol:
		return "StrikeVol"
	case MoneynessVol:
		return "MoneynessVol"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strike", "strikevol":
		return StrikeVol, nil
	case "moneyness", "moneynessvol":
		return MoneynessVol, nil
	default:
		return 0, Errorf(ErrNotSupported, "ParseKind", "unknown surface kind %q", s)
	}
}

// Variant tags the concrete surface family. Each family implements its own
// bumps, so a bump always yields a surface of the same variant.
type Variant int

const (
	GridInterpolated Variant = iota
	SabrCalibrated
	LocalVolatility
)

func (v Variant) String() string {
	switch v {
	case GridInterpolated:
		return "GridInterpolated"
	case SabrCalibrated:
		return "SabrCalibrated"
	case LocalVolatility:
		return "LocalVolatility"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// VolSurface is what pricing engines query and bump.
type VolSurface interface {
	GetValue(expiry time.Time, strike float64) (float64, error)
	GetValueWithSpot(expiry time.Time, strike, spot float64) (float64, error)
	BumpVolSurf(delta float64) (VolSurface, error)
	BumpMaturitySlice(index int, delta float64) (VolSurface, error)
	BumpMaturityStrikePoint(maturityIndex, strikeIndex int, delta float64) (VolSurface, error)
	Variant() Variant
}

// InterpolatedSurface exposes the year-fraction view and the bounds of the
// solidly calibrated region, which differentiation and extrapolation need.
type InterpolatedSurface interface {
	VolSurface
	ValueAt(t, k float64) (float64, error)
	TimeFraction(expiry time.Time) float64
	MinX() float64
	MaxX() float64
	MinY() float64
	MaxY() float64
	ForwardPrice(t float64) (float64, error)
	Kind() Kind
}
