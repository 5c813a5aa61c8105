package standingsservice

import (
	"bytes"

	standingsdomain "github.com/Black-And-White-Club/prode/app/modules/standings/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartHeight     = 420
	chartBarWidth   = 48
	chartMinWidth   = 480
	chartMaxBars    = 20
	chartNameLength = 14
)

var (
	chartBackground = drawing.ColorFromHex("0b3d2e")
	chartBar        = drawing.ColorFromHex("f2c14e")
	chartText       = drawing.ColorFromHex("f5f5f5")
)

// RenderStandingsChart draws the points of the top of the table as a PNG bar
// chart, in table order.
func RenderStandingsChart(rows []standingsdomain.Row) ([]byte, error) {
	if len(rows) == 0 {
		return renderNoStandingsPlaceholder()
	}
	if len(rows) > chartMaxBars {
		rows = rows[:chartMaxBars]
	}

	maxPoints := 1
	bars := make([]chart.Value, 0, len(rows))
	for _, r := range rows {
		if r.Points > maxPoints {
			maxPoints = r.Points
		}
		bars = append(bars, chart.Value{
			Label: shortName(r.DisplayName),
			Value: float64(r.Points),
			Style: chart.Style{
				FillColor:   chartBar,
				StrokeColor: chartBar,
			},
		})
	}

	width := len(bars) * (chartBarWidth + 24)
	if width < chartMinWidth {
		width = chartMinWidth
	}

	graph := chart.BarChart{
		Title:      "Tabla de posiciones",
		TitleStyle: chart.Style{FontColor: chartText},
		Width:      width,
		Height:     chartHeight,
		BarWidth:   chartBarWidth,
		Background: chart.Style{
			FillColor: chartBackground,
			Padding:   chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: chartBackground},
		XAxis:  chart.Style{FontColor: chartText},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: chartText},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxPoints)},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoStandingsPlaceholder() ([]byte, error) {
	graph := chart.BarChart{
		Title:      "Sin posiciones",
		TitleStyle: chart.Style{FontColor: chartText},
		Width:      chartMinWidth,
		Height:     chartHeight / 2,
		BarWidth:   chartBarWidth,
		Background: chart.Style{FillColor: chartBackground},
		Canvas:     chart.Style{FillColor: chartBackground},
		XAxis:      chart.Style{FontColor: chartText},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: chartText},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: []chart.Value{{Label: "-", Value: 0}},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func shortName(name string) string {
	r := []rune(name)
	if len(r) <= chartNameLength {
		return name
	}
	return string(r[:chartNameLength-1]) + "…"
}
