package bump

import (
	"errors"
	"math"
)

var ErrInvalidBump = errors.New("bump sizes must be strictly positive")

// Strategy shifts a value forward and backward, either by a fixed amount or
// by a fraction of the value itself.
type Strategy struct {
	Forward  float64
	Backward float64
	Relative bool
}

// NewAbsolute returns a strategy adding/subtracting fixed amounts.
func NewAbsolute(forward, backward float64) (Strategy, error) {
	return newStrategy(forward, backward, false)
}

// NewRelative returns a strategy scaling by (1 + forward) and (1 - backward).
func NewRelative(forward, backward float64) (Strategy, error) {
	return newStrategy(forward, backward, true)
}

func newStrategy(forward, backward float64, relative bool) (Strategy, error) {
	if !(forward > 0) || !(backward > 0) {
		return Strategy{}, ErrInvalidBump
	}
	return Strategy{Forward: forward, Backward: backward, Relative: relative}, nil
}

func (s Strategy) BumpForward(x0 float64) float64 {
	if s.Relative {
		return x0 * (1 + s.Forward)
	}
	return x0 + s.Forward
}

func (s Strategy) BumpBackward(x0 float64) float64 {
	if s.Relative {
		return x0 * (1 - s.Backward)
	}
	return x0 - s.Backward
}

func (s Strategy) BumpForwardInverse(x float64) float64 {
	if s.Relative {
		return x / (1 + s.Forward)
	}
	return x - s.Forward
}

func (s Strategy) BumpBackwardInverse(x float64) float64 {
	if s.Relative {
		return x / (1 - s.Backward)
	}
	return x + s.Backward
}

// MinBump is the smaller of the two step sizes at x0, used for symmetric
// second-derivative stencils.
func (s Strategy) MinBump(x0 float64) float64 {
	m := math.Min(s.Forward, s.Backward)
	if s.Relative {
		return m * math.Abs(x0)
	}
	return m
}
