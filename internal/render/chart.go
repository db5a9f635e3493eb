package render

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"parking-maintenance-backend/internal/report"
)

const (
	chartWidth  = 1000
	chartHeight = 500
	// chartMargin is the horizontal room left for padding and the Y axis.
	chartMargin = 100
	minBarWidth = 6
	maxBarWidth = 50
)

// seriesColors are assigned to chart series in order.
var seriesColors = []drawing.Color{
	drawing.ColorFromHex("1e88e5"),
	drawing.ColorFromHex("e53935"),
	drawing.ColorFromHex("43a047"),
}

func seriesColor(i int) drawing.Color {
	return seriesColors[i%len(seriesColors)]
}

// chartPNG draws c as a PNG image. It returns nil when there is nothing to draw.
func chartPNG(c *report.Chart) ([]byte, error) {
	if c == nil || len(c.Categories) == 0 || len(c.Series) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	switch c.Kind {
	case report.StackedBarChart:
		graph, ok := stackedBarChart(c)
		if !ok {
			return nil, nil
		}
		if err := graph.Render(chart.PNG, &buf); err != nil {
			return nil, fmt.Errorf("draw chart %q: %w", c.Title, err)
		}
	default:
		if err := barChart(c).Render(chart.PNG, &buf); err != nil {
			return nil, fmt.Errorf("draw chart %q: %w", c.Title, err)
		}
	}
	return buf.Bytes(), nil
}

func barChart(c *report.Chart) chart.BarChart {
	maxValue := 0
	bars := make([]chart.Value, len(c.Categories))
	for i, label := range c.Categories {
		v := c.Series[0].Values[i]
		if v > maxValue {
			maxValue = v
		}
		bars[i] = chart.Value{
			Label: label,
			Value: float64(v),
			Style: chart.Style{FillColor: seriesColor(0), StrokeColor: seriesColor(0)},
		}
	}

	return chart.BarChart{
		Title:      c.Title,
		Width:      canvasWidth(len(bars)),
		Height:     chartHeight,
		BarWidth:   barWidth(len(bars)),
		BarSpacing: barWidth(len(bars)),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		YAxis: chart.YAxis{
			Name: c.YLabel,
			// A fixed range keeps all-zero months drawable.
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxValue + 1)},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v)
			},
		},
		Bars: bars,
	}
}

// stackedBarChart skips categories whose series all sum to zero, since every
// stacked bar is drawn relative to its own total.
func stackedBarChart(c *report.Chart) (chart.StackedBarChart, bool) {
	var bars []chart.StackedBar
	for i, label := range c.Categories {
		total := 0
		values := make([]chart.Value, 0, len(c.Series))
		for j, s := range c.Series {
			v := s.Values[i]
			total += v
			if v == 0 {
				continue
			}
			values = append(values, chart.Value{
				Label: s.Name,
				Value: float64(v),
				Style: chart.Style{FillColor: seriesColor(j), StrokeColor: seriesColor(j)},
			})
		}
		if total == 0 {
			continue
		}
		bars = append(bars, chart.StackedBar{Name: label, Width: barWidth(len(c.Categories)), Values: values})
	}
	if len(bars) == 0 {
		return chart.StackedBarChart{}, false
	}

	return chart.StackedBarChart{
		Title:      c.Title,
		Width:      canvasWidth(len(c.Categories)),
		Height:     chartHeight,
		BarSpacing: barWidth(len(c.Categories)),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Bars: bars,
	}, true
}

// canvasWidth widens the chart past chartWidth once n bars of minBarWidth,
// each followed by an equal gap, no longer fit.
func canvasWidth(n int) int {
	return max(chartWidth, chartMargin+2*n*minBarWidth)
}

// barWidth is the width of each of n bars. The gap between bars is the same.
func barWidth(n int) int {
	if n <= 0 {
		return maxBarWidth
	}
	return min(maxBarWidth, (canvasWidth(n)-chartMargin)/(2*n))
}
