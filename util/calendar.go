package util

import (
	"time"
)

const Layout = "2006-01-02"

// HolidayCalendar is a weekend-plus-holiday-list business calendar.
// The zero value and a nil pointer both treat every weekday as a business day.
type HolidayCalendar struct {
	hols map[string]struct{}
}

// Convert holidays from string to time.Time format
func Hols(s []string) ([]time.Time, error) {
	h := make([]time.Time, len(s))
	for i, v := range s {
		d, err := time.Parse(Layout, v)
		if err != nil {
			return nil, err
		}
		h[i] = d
	}
	return h, nil
}

func NewHolidayCalendar(dates []string) (*HolidayCalendar, error) {
	hols, err := Hols(dates)
	if err != nil {
		return nil, err
	}
	c := &HolidayCalendar{hols: make(map[string]struct{}, len(hols))}
	for _, d := range hols {
		c.hols[d.Format(Layout)] = struct{}{}
	}
	return c, nil
}

func (c *HolidayCalendar) IsHoliday(d time.Time) bool {
	if c == nil || c.hols == nil {
		return false
	}
	_, ok := c.hols[d.Format(Layout)]
	return ok
}

func IsWeekday(d time.Time) bool {
	return d.Weekday() > 0 && d.Weekday() < 6
}

func (c *HolidayCalendar) IsBusinessDay(d time.Time) bool {
	return IsWeekday(d) && !c.IsHoliday(d)
}

// BusinessDaysBetween counts business days in (start, end]. It is negative
// when end is before start.
func (c *HolidayCalendar) BusinessDaysBetween(start, end time.Time) int {
	sign := 1
	if end.Before(start) {
		start, end = end, start
		sign = -1
	}
	n := 0
	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsBusinessDay(d) {
			n++
		}
	}
	return sign * n
}
