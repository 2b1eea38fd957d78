package surface

import (
	"gonum.org/v1/gonum/interp"

	"github.com/banachtech/volsurf/util"
)

// Bilinear interpolates a row-major matrix on (x, y) node axes: linearly
// along y within each row, then linearly along x across rows. Outside the
// node range values are held flat. An axis with a single node is constant.
type Bilinear struct {
	xs   []float64
	ys   []float64
	z    [][]float64
	rows []interp.PiecewiseLinear
}

func NewBilinear(xs, ys []float64, z [][]float64) (*Bilinear, error) {
	const op = "NewBilinear"
	if len(xs) == 0 || len(ys) == 0 || len(z) != len(xs) {
		return nil, Errorf(ErrConstruction, op, "%d x nodes, %d y nodes, %d rows", len(xs), len(ys), len(z))
	}
	if !util.StrictlyIncreasing(xs) || !util.StrictlyIncreasing(ys) {
		return nil, Errorf(ErrConstruction, op, "node axes must be strictly increasing")
	}
	b := &Bilinear{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
		z:  util.CopyMatrix(z),
	}
	if len(ys) > 1 {
		b.rows = make([]interp.PiecewiseLinear, len(xs))
		for i := range b.z {
			if len(b.z[i]) != len(ys) {
				return nil, Errorf(ErrConstruction, op, "row %d has %d values for %d y nodes", i, len(b.z[i]), len(ys))
			}
			if err := b.rows[i].Fit(b.ys, b.z[i]); err != nil {
				return nil, Errorf(ErrConstruction, op, "row %d: %v", i, err)
			}
		}
	}
	return b, nil
}

func (b *Bilinear) At(x, y float64) float64 {
	col := make([]float64, len(b.xs))
	for i := range b.xs {
		if b.rows == nil {
			col[i] = b.z[i][0]
			continue
		}
		col[i] = b.rows[i].Predict(y)
	}
	return Linear(b.xs, col, x)
}

// Linear interpolates ys over xs at x, flat outside the node range.
func Linear(xs, ys []float64, x float64) float64 {
	if len(xs) == 1 {
		return ys[0]
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		panic(err)
	}
	return pl.Predict(x)
}

// Interpolate2D is the one-shot form of Bilinear.
func Interpolate2D(xs, ys []float64, z [][]float64, x, y float64) (float64, error) {
	b, err := NewBilinear(xs, ys, z)
	if err != nil {
		return 0, err
	}
	return b.At(x, y), nil
}
