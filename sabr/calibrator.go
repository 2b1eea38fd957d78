package sabr

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/banachtech/volsurf/surface"
	"gonum.org/v1/gonum/optimize"
)

// penalty residual for infeasible parameters or non-finite model vols
const penalty = 1e10

// Method selects the optimiser used by the Calibrator.
type Method int

const (
	LevenbergMarquardt Method = iota
	NelderMead
)

func (m Method) String() string {
	switch m {
	case LevenbergMarquardt:
		return "levenberg-marquardt"
	case NelderMead:
		return "nelder-mead"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a config string to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "lm", "levenberg-marquardt":
		return LevenbergMarquardt, nil
	case "nm", "nelder-mead":
		return NelderMead, nil
	}
	return 0, surface.Errorf(surface.ErrNotSupported, "sabr.ParseMethod", "unknown method %q", s)
}

// Options configure a single-maturity calibration. Beta is held fixed; Alpha,
// Rho and Nu are starting values. Alpha is only used when EstimateAlpha is
// set, otherwise it is solved from the ATM vol at every step.
type Options struct {
	EstimateAlpha bool
	FineTune      bool
	Alpha         float64
	Beta          float64
	Rho           float64
	Nu            float64
	Method        Method
	MaxIterations int
	Logger        *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Alpha:         0.2,
		Beta:          0.5,
		Rho:           0,
		Nu:            0.3,
		Method:        LevenbergMarquardt,
		MaxIterations: 500,
	}
}

// Input is one maturity slice of market quotes.
type Input struct {
	Maturity   float64
	Forward    float64
	ATMVol     float64
	Strikes    []float64
	MarketVols []float64
}

// ParameterSet is the calibrated SABR smile of one maturity.
type ParameterSet struct {
	Maturity float64 `json:"maturity" yaml:"maturity"`
	Alpha    float64 `json:"alpha" yaml:"alpha"`
	Beta     float64 `json:"beta" yaml:"beta"`
	Rho      float64 `json:"rho" yaml:"rho"`
	Nu       float64 `json:"nu" yaml:"nu"`
}

// Vol evaluates the smile at strike for the given forward.
func (p ParameterSet) Vol(forward, strike float64, fineTune bool) float64 {
	return Vol(p.Alpha, p.Beta, p.Rho, p.Nu, forward, strike, p.Maturity, fineTune)
}

type Calibrator struct {
	opts   Options
	logger *slog.Logger
}

func NewCalibrator(opts Options) *Calibrator {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultOptions().MaxIterations
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Calibrator{opts: opts, logger: logger}
}

func (c *Calibrator) Options() Options { return c.opts }

// Calibrate fits rho and nu (and alpha when estimated) to in.MarketVols.
func (c *Calibrator) Calibrate(in Input) (ParameterSet, error) {
	const op = "sabr.Calibrate"
	switch {
	case len(in.Strikes) == 0:
		return ParameterSet{}, surface.Errorf(surface.ErrValidation, op, "no strikes")
	case len(in.Strikes) != len(in.MarketVols):
		return ParameterSet{}, surface.Errorf(surface.ErrValidation, op,
			"%d strikes but %d market vols", len(in.Strikes), len(in.MarketVols))
	case !(in.Maturity > 0):
		return ParameterSet{}, surface.Errorf(surface.ErrValidation, op, "maturity %v must be positive", in.Maturity)
	case !(in.Forward > 0):
		return ParameterSet{}, surface.Errorf(surface.ErrValidation, op, "forward %v must be positive", in.Forward)
	}

	p := &problem{in: in, opts: c.opts}
	var (
		best lmResult
		err  error
	)
	switch c.opts.Method {
	case LevenbergMarquardt:
		best = p.fitLM()
	case NelderMead:
		best, err = p.fitNM()
		if err != nil {
			return ParameterSet{}, surface.Errorf(surface.ErrCalibration, op, "maturity %v: %v", in.Maturity, err)
		}
	default:
		return ParameterSet{}, surface.Errorf(surface.ErrNotSupported, op, "method %v", c.opts.Method)
	}

	if !p.feasible(best.X) || math.IsNaN(best.Cost) || best.Cost >= penalty {
		return ParameterSet{}, surface.Errorf(surface.ErrCalibration, op, "maturity %v: no feasible fit", in.Maturity)
	}
	alpha, rho, nu := p.params(best.X)
	if !(alpha > 0) {
		return ParameterSet{}, surface.Errorf(surface.ErrCalibration, op, "maturity %v: alpha %v", in.Maturity, alpha)
	}
	ps := ParameterSet{Maturity: in.Maturity, Alpha: alpha, Beta: c.opts.Beta, Rho: rho, Nu: nu}
	c.logger.Debug("sabr slice calibrated",
		"maturity", in.Maturity, "method", c.opts.Method.String(),
		"alpha", alpha, "rho", rho, "nu", nu,
		"rmse", math.Sqrt(best.Cost/float64(len(in.Strikes))), "iterations", best.Iterations)
	return ps, nil
}

type problem struct {
	in   Input
	opts Options
}

func (p *problem) start(rho float64) []float64 {
	if p.opts.EstimateAlpha {
		return []float64{p.opts.Alpha, rho, p.opts.Nu}
	}
	return []float64{rho, p.opts.Nu}
}

func (p *problem) params(x []float64) (alpha, rho, nu float64) {
	if p.opts.EstimateAlpha {
		return x[0], x[1], x[2]
	}
	rho, nu = x[0], x[1]
	return FindAlpha(p.opts.Beta, rho, nu, p.in.Maturity, p.in.Forward, p.in.ATMVol), rho, nu
}

func (p *problem) feasible(x []float64) bool {
	if p.opts.EstimateAlpha {
		return x[0] > 0 && math.Abs(x[1]) <= 1 && x[2] >= 0
	}
	return math.Abs(x[0]) <= 1 && x[1] >= 0
}

func (p *problem) residuals(x []float64) []float64 {
	out := make([]float64, len(p.in.Strikes))
	if !p.feasible(x) {
		return fill(out, penalty)
	}
	alpha, rho, nu := p.params(x)
	if !(alpha > 0) {
		return fill(out, penalty)
	}
	for i, k := range p.in.Strikes {
		v := Vol(alpha, p.opts.Beta, rho, nu, p.in.Forward, k, p.in.Maturity, p.opts.FineTune)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fill(out, penalty)
		}
		out[i] = v - p.in.MarketVols[i]
	}
	return out
}

// fitLM runs Levenberg-Marquardt from the configured rho and from either side
// of it; a single start can stall against the |rho| = 1 wall on flat smiles.
func (p *problem) fitLM() lmResult {
	seeds := []float64{p.opts.Rho}
	for _, r := range []float64{-0.5, 0.5} {
		if r != p.opts.Rho {
			seeds = append(seeds, r)
		}
	}
	var best lmResult
	for i, rho := range seeds {
		res := levenbergMarquardt(p.residuals, p.feasible, p.start(rho), p.opts.MaxIterations)
		if i == 0 || res.Cost < best.Cost {
			best = res
		}
		if best.Cost <= costTarget {
			break
		}
	}
	return best
}

func (p *problem) fitNM() (lmResult, error) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return sumSquares(p.residuals(x))
		},
	}
	settings := &optimize.Settings{
		MajorIterations: p.opts.MaxIterations,
		Converger:       &optimize.FunctionConverge{Absolute: 1e-16, Iterations: 50},
	}
	// limit statuses still carry the best point found
	res, err := optimize.Minimize(problem, p.start(p.opts.Rho), settings, &optimize.NelderMead{})
	if res == nil {
		return lmResult{}, err
	}
	return lmResult{X: res.X, Cost: res.F, Iterations: res.Stats.MajorIterations}, nil
}

func fill(s []float64, v float64) []float64 {
	for i := range s {
		s[i] = v
	}
	return s
}

// Calibrate is shorthand for NewCalibrator(opts).Calibrate(in).
func Calibrate(in Input, opts Options) (ParameterSet, error) {
	return NewCalibrator(opts).Calibrate(in)
}
