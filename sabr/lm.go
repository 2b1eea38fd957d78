package sabr

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	lambdaStart = 1e-3
	lambdaMin   = 1e-12
	lambdaMax   = 1e12
	costTarget  = 1e-20
)

type residualFunc func(x []float64) []float64

type lmResult struct {
	X          []float64
	Cost       float64
	Iterations int
}

// levenbergMarquardt minimises the sum of squared residuals of f starting from
// x0. The Jacobian is a forward difference, taken backwards when the forward
// point is outside feasible.
func levenbergMarquardt(f residualFunc, feasible func([]float64) bool, x0 []float64, maxIterations int) lmResult {
	n := len(x0)
	x := append([]float64(nil), x0...)
	r := f(x)
	cost := sumSquares(r)
	m := len(r)
	lambda := lambdaStart

	iter := 0
	for ; iter < maxIterations && cost > costTarget; iter++ {
		jac := jacobian(f, feasible, x, r)

		var jtj mat.Dense
		jtj.Mul(jac.T(), jac)
		var g mat.VecDense
		g.MulVec(jac.T(), mat.NewVecDense(m, r))
		g.ScaleVec(-1, &g)

		accepted, done := false, false
		for lambda <= lambdaMax {
			a := mat.DenseCopyOf(&jtj)
			for i := 0; i < n; i++ {
				d := jtj.At(i, i)
				scale := d
				if scale <= 0 {
					scale = 1
				}
				a.Set(i, i, d+lambda*scale)
			}
			var step mat.VecDense
			if err := step.SolveVec(a, &g); err != nil {
				var cond mat.Condition
				if !errors.As(err, &cond) {
					lambda *= 10
					continue
				}
			}
			trial := floats.AddTo(make([]float64, n), x, step.RawVector().Data)
			tr := f(trial)
			if tc := sumSquares(tr); tc < cost {
				done = cost-tc < 1e-15*(1+cost) || mat.Norm(&step, math.Inf(1)) < 1e-12
				x, r, cost = trial, tr, tc
				lambda = math.Max(lambda/10, lambdaMin)
				accepted = true
				break
			}
			lambda *= 10
		}
		if !accepted || done {
			iter++
			break
		}
	}
	return lmResult{X: x, Cost: cost, Iterations: iter}
}

func jacobian(f residualFunc, feasible func([]float64) bool, x, r []float64) *mat.Dense {
	jac := mat.NewDense(len(r), len(x), nil)
	for j := range x {
		h := 1e-7 * math.Max(math.Abs(x[j]), 1)
		xh := append([]float64(nil), x...)
		xh[j] += h
		if !feasible(xh) {
			h = -h
			xh[j] = x[j] + h
		}
		rh := f(xh)
		for i := range r {
			jac.Set(i, j, (rh[i]-r[i])/h)
		}
	}
	return jac
}

func sumSquares(r []float64) float64 { return floats.Dot(r, r) }
