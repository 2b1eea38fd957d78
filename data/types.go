package data

import "github.com/banachtech/volsurf/sabr"

// SurfacePayload is a quote grid as it arrives from a file or a request body.
// Dates use the 2006-01-02 layout.
type SurfacePayload struct {
	Name          string      `json:"name" yaml:"name" binding:"required"`
	ValuationDate string      `json:"valuation_date" yaml:"valuation_date" binding:"required"`
	Maturities    []string    `json:"maturities" yaml:"maturities" binding:"required"`
	Strikes       []float64   `json:"strikes" yaml:"strikes" binding:"required"`
	Quotes        [][]float64 `json:"quotes" yaml:"quotes" binding:"required"`
	DayCount      string      `json:"day_count" yaml:"day_count"`
	Kind          string      `json:"kind" yaml:"kind"`
	Spot          float64     `json:"spot" yaml:"spot" binding:"required,gt=0"`
	Rate          float64     `json:"rate" yaml:"rate"`
	Holidays      []string    `json:"holidays" yaml:"holidays"`
}

// Calibration is what a calibration run produces and what gets persisted.
type Calibration struct {
	Name          string              `json:"name" yaml:"name"`
	ValuationDate string              `json:"valuation_date" yaml:"valuation_date"`
	Spot          float64             `json:"spot" yaml:"spot"`
	Forwards      []float64           `json:"forwards" yaml:"forwards"`
	Parameters    []sabr.ParameterSet `json:"parameters" yaml:"parameters"`
}
