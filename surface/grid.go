package surface

import (
	"time"

	"github.com/banachtech/volsurf/util"
)

// Grid is an immutable maturity x strike quote matrix. Every bump returns a
// new grid; pricing code may hold the base grid while bumped copies are in use.
type Grid struct {
	maturities []time.Time
	strikes    []float64
	quotes     [][]float64
}

func NewGrid(maturities []time.Time, strikes []float64, quotes [][]float64) (*Grid, error) {
	const op = "NewGrid"
	if len(maturities) == 0 || len(strikes) == 0 {
		return nil, Errorf(ErrConstruction, op, "empty axis: %d maturities, %d strikes", len(maturities), len(strikes))
	}
	if len(quotes) != len(maturities) {
		return nil, Errorf(ErrConstruction, op, "%d maturities but %d quote rows", len(maturities), len(quotes))
	}
	for i, row := range quotes {
		if len(row) != len(strikes) {
			return nil, Errorf(ErrConstruction, op, "row %d has %d quotes for %d strikes", i, len(row), len(strikes))
		}
	}
	for i := 1; i < len(maturities); i++ {
		if !maturities[i].After(maturities[i-1]) {
			return nil, Errorf(ErrConstruction, op, "maturities not strictly increasing at row %d", i)
		}
	}
	if !util.StrictlyIncreasing(strikes) {
		return nil, Errorf(ErrConstruction, op, "strikes not strictly increasing")
	}
	return &Grid{
		maturities: append([]time.Time(nil), maturities...),
		strikes:    append([]float64(nil), strikes...),
		quotes:     util.CopyMatrix(quotes),
	}, nil
}

func (g *Grid) Rows() int { return len(g.maturities) }
func (g *Grid) Cols() int { return len(g.strikes) }

func (g *Grid) Maturity(i int) time.Time { return g.maturities[i] }
func (g *Grid) Strike(j int) float64     { return g.strikes[j] }
func (g *Grid) Quote(i, j int) float64   { return g.quotes[i][j] }

func (g *Grid) Maturities() []time.Time { return append([]time.Time(nil), g.maturities...) }
func (g *Grid) Strikes() []float64      { return append([]float64(nil), g.strikes...) }
func (g *Grid) Quotes() [][]float64     { return util.CopyMatrix(g.quotes) }

// Row returns a copy of the quotes of maturity i.
func (g *Grid) Row(i int) []float64 { return append([]float64(nil), g.quotes[i]...) }

// Bump shifts every quote by delta.
func (g *Grid) Bump(delta float64) *Grid {
	out := g.clone()
	for i := range out.quotes {
		for j := range out.quotes[i] {
			out.quotes[i][j] += delta
		}
	}
	return out
}

// BumpRow shifts the quotes of maturity i by delta.
func (g *Grid) BumpRow(i int, delta float64) (*Grid, error) {
	if i < 0 || i >= g.Rows() {
		return nil, Errorf(ErrDomain, "BumpRow", "maturity index %d outside [0, %d)", i, g.Rows())
	}
	out := g.clone()
	for j := range out.quotes[i] {
		out.quotes[i][j] += delta
	}
	return out, nil
}

// BumpPoint shifts the single quote (i, j) by delta.
func (g *Grid) BumpPoint(i, j int, delta float64) (*Grid, error) {
	if i < 0 || i >= g.Rows() || j < 0 || j >= g.Cols() {
		return nil, Errorf(ErrDomain, "BumpPoint", "index (%d, %d) outside %dx%d grid", i, j, g.Rows(), g.Cols())
	}
	out := g.clone()
	out.quotes[i][j] += delta
	return out, nil
}

func (g *Grid) clone() *Grid {
	return &Grid{
		maturities: g.Maturities(),
		strikes:    g.Strikes(),
		quotes:     g.Quotes(),
	}
}
