package render

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-maintenance-backend/internal/report"
)

func sampleArtifact() *report.Artifact {
	p := report.Period{Year: 2024, Month: time.March}
	days := make([]string, p.DaysInMonth())
	sessions := make([]int, len(days))
	used := make([]int, len(days))
	canceled := make([]int, len(days))
	for i := range days {
		days[i] = time.Date(2024, time.March, i+1, 0, 0, 0, 0, time.UTC).Format("2")
	}
	sessions[4], used[4], canceled[4] = 2, 1, 1

	return &report.Artifact{
		Kind:        "MonthlyReport",
		Title:       "Monthly Parking Report",
		Period:      p,
		GeneratedAt: time.Date(2024, time.April, 1, 0, 5, 0, 0, time.UTC),
		Sections: []report.Section{
			{
				Title: "Parking Sessions",
				Table: report.Table{
					Columns: []string{"sessionId", "spotId"},
					Rows:    [][]string{{"1", "1"}, {"2", "1"}},
				},
				Chart: &report.Chart{
					Kind:       report.BarChart,
					Title:      "Parking Sessions Per Day - MARCH 2024",
					Categories: days,
					Series:     []report.Series{{Name: "Sessions", Values: sessions}},
				},
			},
			{
				Title:     "Reservations",
				PageBreak: true,
				Table:     report.Table{Columns: []string{"id", "startTime"}},
				Chart: &report.Chart{
					Kind:       report.StackedBarChart,
					Title:      "Reservations Used vs Canceled - MARCH 2024",
					Categories: days,
					Series:     []report.Series{{Name: "Used", Values: used}, {Name: "Canceled", Values: canceled}},
				},
			},
			{
				Title:     "Subscribers",
				PageBreak: true,
				Table: report.Table{
					Columns: []string{"id", "name"},
					Rows:    [][]string{{"10", "Zoë with a rather long name that will not fit in its column at all"}},
				},
			},
		},
	}
}

func TestPDFRender(t *testing.T) {
	var buf bytes.Buffer
	err := NewPDF().Render(&buf, sampleArtifact())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, "pdf", NewPDF().Ext())
}

func TestChartPNG(t *testing.T) {
	a := sampleArtifact()

	img, err := chartPNG(a.Sections[0].Chart)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))

	img, err = chartPNG(a.Sections[1].Chart)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))
}

func TestChartPNGNothingToDraw(t *testing.T) {
	img, err := chartPNG(nil)
	require.NoError(t, err)
	assert.Nil(t, img)

	empty := &report.Chart{
		Kind:       report.StackedBarChart,
		Categories: []string{"1", "2"},
		Series:     []report.Series{{Name: "Used", Values: []int{0, 0}}, {Name: "Canceled", Values: []int{0, 0}}},
	}
	img, err = chartPNG(empty)
	require.NoError(t, err)
	assert.Nil(t, img)
}

func TestChartPNGAllZeroBars(t *testing.T) {
	img, err := chartPNG(&report.Chart{
		Kind:       report.BarChart,
		Categories: []string{"Spot 1", "Spot 2"},
		Series:     []report.Series{{Name: "Sessions", Values: []int{0, 0}}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, img)
}

func manyCategories(n int) *report.Chart {
	c := &report.Chart{Title: "Sessions per spot", Categories: make([]string, n)}
	used := make([]int, n)
	canceled := make([]int, n)
	for i := range c.Categories {
		c.Categories[i] = strconv.Itoa(i + 1)
		used[i] = i % 7
		canceled[i] = 1
	}
	c.Series = []report.Series{{Name: "Used", Values: used}, {Name: "Canceled", Values: canceled}}
	return c
}

func TestChartBarsFitCanvas(t *testing.T) {
	for _, n := range []int{1, 31, 225, 300, 1000} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			c := manyCategories(n)

			bar := barChart(c)
			assert.GreaterOrEqual(t, bar.BarWidth, minBarWidth)
			assert.LessOrEqual(t, len(bar.Bars)*(bar.BarWidth+bar.BarSpacing)+chartMargin, bar.Width)

			stacked, ok := stackedBarChart(c)
			require.True(t, ok)
			total := chartMargin
			for _, b := range stacked.Bars {
				total += b.Width + stacked.BarSpacing
			}
			assert.LessOrEqual(t, total, stacked.Width)
		})
	}
}

func TestChartWidthGrowsWithCategories(t *testing.T) {
	assert.Equal(t, chartWidth, barChart(manyCategories(31)).Width)
	assert.Greater(t, barChart(manyCategories(300)).Width, chartWidth)
}

func TestChartPNGManyCategories(t *testing.T) {
	c := manyCategories(300)

	img, err := chartPNG(c)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))

	c.Kind = report.StackedBarChart
	img, err = chartPNG(c)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))
}
