package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	monthlyNameRe = regexp.MustCompile(`^([A-Za-z]+)_([A-Z]+)_(\d{4})\.([a-z]+)$`)
	dailyNameRe   = regexp.MustCompile(`^([A-Za-z]+)_(\d{4}-\d{2}-\d{2})\.([a-z]+)$`)
)

// ReportName holds the structured data encoded in a report file name.
// Day is zero for month-keyed names.
type ReportName struct {
	Kind  string
	Year  int
	Month time.Month
	Day   int
	Ext   string
}

// ParseReportName accepts "{Kind}_{MONTH}_{Year}.{ext}" and "{Kind}_{yyyy-MM-dd}.{ext}".
// Anything else, including names with path separators, is rejected.
func ParseReportName(raw string) (ReportName, error) {
	if m := monthlyNameRe.FindStringSubmatch(raw); m != nil {
		month, ok := monthByName(m[2])
		if !ok {
			return ReportName{}, fmt.Errorf("unknown month %q in report name %q", m[2], raw)
		}
		year, _ := strconv.Atoi(m[3])
		return ReportName{Kind: m[1], Year: year, Month: month, Ext: m[4]}, nil
	}

	if m := dailyNameRe.FindStringSubmatch(raw); m != nil {
		day, err := time.Parse("2006-01-02", m[2])
		if err != nil {
			return ReportName{}, fmt.Errorf("invalid date in report name %q: %w", raw, err)
		}
		return ReportName{Kind: m[1], Year: day.Year(), Month: day.Month(), Day: day.Day(), Ext: m[3]}, nil
	}

	return ReportName{}, fmt.Errorf("unrecognized report name %q", raw)
}

func monthByName(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.ToUpper(m.String()) == name {
			return m, true
		}
	}
	return 0, false
}
