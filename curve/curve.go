package curve

import (
	"fmt"
	"math"

	"github.com/banachtech/volsurf/util"
	"gonum.org/v1/gonum/interp"
)

// YieldCurve supplies continuously compounded zero rates and discount
// factors on a year-fraction axis.
type YieldCurve interface {
	DiscountFactor(t float64) float64
	ZeroRate(t float64) float64
}

// Flat is a constant continuously compounded rate.
type Flat struct {
	Rate float64
}

func (f Flat) DiscountFactor(t float64) float64 { return math.Exp(-f.Rate * t) }
func (f Flat) ZeroRate(float64) float64         { return f.Rate }

// ZeroCurve interpolates zero rates linearly between tenors and holds them
// flat beyond the first and last tenor.
type ZeroCurve struct {
	tenors []float64
	rates  []float64
	pl     interp.PiecewiseLinear
}

func NewZeroCurve(tenors, rates []float64) (*ZeroCurve, error) {
	if len(tenors) != len(rates) || len(tenors) == 0 {
		return nil, fmt.Errorf("zero curve needs matching non-empty tenors and rates, got %d and %d", len(tenors), len(rates))
	}
	if !util.StrictlyIncreasing(tenors) {
		return nil, fmt.Errorf("zero curve tenors must be strictly increasing")
	}
	c := &ZeroCurve{
		tenors: append([]float64(nil), tenors...),
		rates:  append([]float64(nil), rates...),
	}
	if len(tenors) > 1 {
		if err := c.pl.Fit(c.tenors, c.rates); err != nil {
			return nil, fmt.Errorf("zero curve: %w", err)
		}
	}
	return c, nil
}

func (c *ZeroCurve) ZeroRate(t float64) float64 {
	if len(c.tenors) == 1 {
		return c.rates[0]
	}
	return c.pl.Predict(t)
}

func (c *ZeroCurve) DiscountFactor(t float64) float64 {
	return math.Exp(-c.ZeroRate(t) * t)
}

// ForwardPrice is spot carried to t at the curve's rate.
func ForwardPrice(spot float64, yc YieldCurve, t float64) float64 {
	return spot / yc.DiscountFactor(t)
}
