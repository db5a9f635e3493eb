package report

import (
	"fmt"
	"strings"
	"time"
)

// Period identifies the calendar span a report covers. A zero Day means
// the whole month; a non-zero Day keys a snapshot taken on that date.
type Period struct {
	Year  int
	Month time.Month
	Day   int
}

// MonthOf returns the month containing t, in t's location.
func MonthOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// DayOf returns a day-keyed period for t, in t's location.
func DayOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Previous returns the month before p.
func (p Period) Previous() Period {
	first := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return Period{Year: first.Year(), Month: first.Month()}
}

// Before reports whether p starts before q.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	if p.Month != q.Month {
		return p.Month < q.Month
	}
	return p.Day < q.Day
}

// DaysInMonth returns the number of days in p's month.
func (p Period) DaysInMonth() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains reports whether t, read in loc, falls in p's month.
func (p Period) Contains(t time.Time, loc *time.Location) bool {
	y, m, _ := t.In(loc).Date()
	return y == p.Year && m == p.Month
}

// Label is the human form used in titles, e.g. "MARCH 2024".
func (p Period) Label() string {
	if p.Day != 0 {
		return fmt.Sprintf("%s %d, %d", strings.ToUpper(p.Month.String()), p.Day, p.Year)
	}
	return fmt.Sprintf("%s %d", strings.ToUpper(p.Month.String()), p.Year)
}

// FileName builds the well-known file name of a report:
// "{kind}_{MONTH}_{year}.{ext}" for months and "{kind}_{yyyy-MM-dd}.{ext}" for days.
func FileName(kind string, p Period, ext string) string {
	if p.Day != 0 {
		return fmt.Sprintf("%s_%04d-%02d-%02d.%s", kind, p.Year, int(p.Month), p.Day, ext)
	}
	return fmt.Sprintf("%s_%s_%d.%s", kind, strings.ToUpper(p.Month.String()), p.Year, ext)
}
