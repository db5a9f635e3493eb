package report

import (
	"fmt"
	"strconv"
	"time"
)

// ChartKind selects how a chart's series are drawn.
type ChartKind int

const (
	BarChart ChartKind = iota
	StackedBarChart
)

// Series is one named row of values, aligned with Chart.Categories.
type Series struct {
	Name   string
	Values []int
}

// Chart is a chart-ready description; the renderer turns it into an image.
type Chart struct {
	Kind       ChartKind
	Title      string
	XLabel     string
	YLabel     string
	Categories []string
	Series     []Series
}

// Section is one titled table plus an optional chart. PageBreak is set on
// every section but the first.
type Section struct {
	Title     string
	Table     Table
	Chart     *Chart
	PageBreak bool
}

// Artifact is an assembled report, ready to be rendered and delivered.
type Artifact struct {
	Kind        string
	Title       string
	Period      Period
	GeneratedAt time.Time
	Sections    []Section
}

// Assemble lays out data as four sections: sessions, reservations, spots and subscribers.
func Assemble(data *Data, kind, title string, generatedAt time.Time) *Artifact {
	label := data.Period.Label()
	a := &Artifact{
		Kind:        kind,
		Title:       title,
		Period:      data.Period,
		GeneratedAt: generatedAt,
	}

	a.addSection("Parking Sessions", buildTable(SessionColumns, data.Sessions), sessionsPerDayChart(data, label))
	a.addSection("Reservations", buildTable(ReservationColumns, data.Reservations), reservationsChart(data, label))
	a.addSection("Parking Spots", buildTable(SpotColumns, data.Spots), sessionsPerSpotChart(data, label))
	a.addSection("Subscribers", buildTable(SubscriberColumns, data.Subscribers), lateExitsChart(data, label))
	return a
}

func (a *Artifact) addSection(title string, table Table, chart *Chart) {
	a.Sections = append(a.Sections, Section{
		Title:     title,
		Table:     table,
		Chart:     chart,
		PageBreak: len(a.Sections) > 0,
	})
}

// FileName is the artifact's well-known file name for the given extension.
func (a *Artifact) FileName(ext string) string {
	return FileName(a.Kind, a.Period, ext)
}

func sessionsPerDayChart(data *Data, label string) *Chart {
	c := &Chart{
		Kind:   BarChart,
		Title:  "Parking Sessions Per Day - " + label,
		XLabel: "Day",
		YLabel: "Sessions",
		Series: []Series{{Name: "Sessions"}},
	}
	for _, d := range data.Days {
		c.Categories = append(c.Categories, strconv.Itoa(d.Day))
		c.Series[0].Values = append(c.Series[0].Values, d.Sessions)
	}
	return c
}

func reservationsChart(data *Data, label string) *Chart {
	c := &Chart{
		Kind:   StackedBarChart,
		Title:  "Reservations Used vs Canceled - " + label,
		XLabel: "Day",
		YLabel: "Reservations",
		Series: []Series{{Name: "Used"}, {Name: "Canceled"}},
	}
	for _, d := range data.Days {
		c.Categories = append(c.Categories, strconv.Itoa(d.Day))
		c.Series[0].Values = append(c.Series[0].Values, d.Used)
		c.Series[1].Values = append(c.Series[1].Values, d.Canceled)
	}
	return c
}

func sessionsPerSpotChart(data *Data, label string) *Chart {
	c := &Chart{
		Kind:   BarChart,
		Title:  "Parking Sessions per Spot - " + label,
		XLabel: "Parking Spot",
		YLabel: "Sessions",
		Series: []Series{{Name: "Sessions"}},
	}
	for _, id := range sortedKeys(data.SessionsPerSpot) {
		c.Categories = append(c.Categories, fmt.Sprintf("Spot %d", id))
		c.Series[0].Values = append(c.Series[0].Values, data.SessionsPerSpot[id])
	}
	return c
}

func lateExitsChart(data *Data, label string) *Chart {
	c := &Chart{
		Kind:   BarChart,
		Title:  "Late Vehicle Exits by Subscribers - " + label,
		XLabel: "Subscriber",
		YLabel: "Late Exits",
		Series: []Series{{Name: "Late Exits"}},
	}
	for _, id := range sortedKeys(data.LateExitsPerSubscriber) {
		c.Categories = append(c.Categories, fmt.Sprintf("ID %d", id))
		c.Series[0].Values = append(c.Series[0].Values, data.LateExitsPerSubscriber[id])
	}
	return c
}

// Total sums every value in the chart.
func (c *Chart) Total() int {
	total := 0
	for _, s := range c.Series {
		for _, v := range s.Values {
			total += v
		}
	}
	return total
}
