package render

import (
	"bytes"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

const (
	chartWidth  = 700
	chartHeight = 280
)

// renderChart draws the 24-hour window of one chart group (a series plus the
// series grouped with it) as a PNG. Returns nil bytes when no series in the
// group has any plottable sample.
func renderChart(group []models.SeriesSnapshot, palette Palette) ([]byte, error) {
	var (
		series   []chart.Series
		yMin     = math.Inf(1)
		yMax     = math.Inf(-1)
		clampMin *float64
		clampMax *float64
	)

	for i, snap := range group {
		xs, ys := plottableSamples(snap.Samples)
		if len(xs) == 0 {
			continue
		}
		for _, y := range ys {
			yMin = math.Min(yMin, y)
			yMax = math.Max(yMax, y)
		}
		if snap.Series.DefaultChartMin != nil && clampMin == nil {
			clampMin = snap.Series.DefaultChartMin
		}
		if snap.Series.DefaultChartMax != nil && clampMax == nil {
			clampMax = snap.Series.DefaultChartMax
		}
		series = append(series, chart.TimeSeries{
			Name:    snap.Series.FullName(),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(palette.Color(i)),
				StrokeWidth: 1.5,
			},
		})
	}

	if len(series) == 0 {
		return nil, nil
	}

	graph := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04"),
		},
		YAxis: chart.YAxis{
			Range: yRange(yMin, yMax, clampMin, clampMax),
		},
		Series: series,
	}
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// plottableSamples drops NaN values; series that report nothing but nulls
// would otherwise break axis computation.
func plottableSamples(samples []models.Sample) ([]time.Time, []float64) {
	xs := make([]time.Time, 0, len(samples))
	ys := make([]float64, 0, len(samples))
	for _, s := range samples {
		if math.IsNaN(s.Value) {
			continue
		}
		xs = append(xs, s.Timestamp)
		ys = append(ys, s.Value)
	}
	return xs, ys
}

// yRange applies the configured clamp hints: the axis covers at least
// [clampMin, clampMax] but expands when the data goes beyond them.
func yRange(dataMin, dataMax float64, clampMin, clampMax *float64) chart.Range {
	if clampMin == nil && clampMax == nil {
		return nil
	}
	min := dataMin
	if clampMin != nil && *clampMin < min {
		min = *clampMin
	}
	max := dataMax
	if clampMax != nil && *clampMax > max {
		max = *clampMax
	}
	return &chart.ContinuousRange{Min: min, Max: max}
}
