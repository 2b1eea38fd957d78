// Package daycount converts pairs of dates into year fractions.
package daycount

import (
	"fmt"
	"strings"
	"time"
)

// DayCount computes year fraction between two dates.
type DayCount interface {
	YearFraction(start, end time.Time) float64
	Name() string
}

// Calendar decides which dates count as business days for BUS/244.
type Calendar interface {
	BusinessDaysBetween(start, end time.Time) int
}

type Act365F struct{}

func (Act365F) YearFraction(start, end time.Time) float64 { return days(start, end) / 365.0 }
func (Act365F) Name() string                              { return "ACT/365F" }

type Act360 struct{}

func (Act360) YearFraction(start, end time.Time) float64 { return days(start, end) / 360.0 }
func (Act360) Name() string                              { return "ACT/360" }

// Thirty360 is 30E/360, day of month capped at 30 on both ends.
type Thirty360 struct{}

func (Thirty360) YearFraction(start, end time.Time) float64 {
	d1 := start.Day()
	if d1 > 30 {
		d1 = 30
	}
	d2 := end.Day()
	if d2 > 30 {
		d2 = 30
	}
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
}

func (Thirty360) Name() string { return "30/360" }

// Bus244 counts business days under its calendar over a 244-day year.
type Bus244 struct {
	Calendar Calendar
}

func (b Bus244) YearFraction(start, end time.Time) float64 {
	return float64(b.Calendar.BusinessDaysBetween(start, end)) / 244.0
}

func (Bus244) Name() string { return "BUS/244" }

// Parse returns the convention for name. cal is only consulted by BUS/244,
// which requires it.
func Parse(name string, cal Calendar) (DayCount, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ACT/365F", "ACT/365", "ACT365F":
		return Act365F{}, nil
	case "ACT/360", "ACT360":
		return Act360{}, nil
	case "30/360", "30E/360":
		return Thirty360{}, nil
	case "BUS/244", "BUS244":
		if cal == nil {
			return nil, fmt.Errorf("day count %s requires a calendar", name)
		}
		return Bus244{Calendar: cal}, nil
	default:
		return nil, fmt.Errorf("unknown day count convention %q", name)
	}
}

func days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}
