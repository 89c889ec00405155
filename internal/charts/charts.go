// Package charts renders a sensor's readings as PNG line charts, one per
// water-quality parameter.
package charts

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/thresholds"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughData is returned when fewer than two readings can be plotted or
// all readings share one timestamp, which leaves no time axis to draw.
var ErrNotEnoughData = stderrors.New("not enough readings to draw a chart")

// Domain is the fixed y-axis range of a chart.
type Domain struct {
	Min, Max float64
}

var domains = map[thresholds.Kind]Domain{
	thresholds.PH:        {6.5, 8.5},
	thresholds.ORP:       {100, 700},
	thresholds.Turbidity: {0, 1.5},
}

var strokes = map[thresholds.Kind]string{
	thresholds.PH:        "8884d8",
	thresholds.ORP:       "82ca9d",
	thresholds.Turbidity: "ff7300",
}

var titles = map[thresholds.Kind]string{
	thresholds.PH:        "pH",
	thresholds.ORP:       "ORP (mV)",
	thresholds.Turbidity: "Turbidez (NTU)",
}

// DomainFor returns the y-axis range used for kind.
func DomainFor(kind thresholds.Kind) (Domain, bool) {
	d, ok := domains[kind]
	return d, ok
}

func valueOf(r models.Reading, kind thresholds.Kind) float64 {
	switch kind {
	case thresholds.PH:
		return r.PH
	case thresholds.ORP:
		return r.ORP
	}
	return r.Turbidity
}

// Render writes a PNG line chart of kind over time. Readings are plotted in
// timestamp order; the y-axis keeps its fixed domain even when values fall
// outside it.
func Render(w io.Writer, kind thresholds.Kind, readings []models.Reading, loc *time.Location) error {
	domain, ok := domains[kind]
	if !ok {
		return fmt.Errorf("no chart for kind %q", kind)
	}
	if len(readings) < 2 {
		return ErrNotEnoughData
	}
	if loc == nil {
		loc = time.UTC
	}

	sorted := append([]models.Reading(nil), readings...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })
	if !sorted[len(sorted)-1].Timestamp.After(sorted[0].Timestamp) {
		return ErrNotEnoughData
	}

	xs := make([]time.Time, len(sorted))
	ys := make([]float64, len(sorted))
	for i, r := range sorted {
		xs[i] = r.Timestamp.In(loc)
		ys[i] = valueOf(r, kind)
	}

	graph := chart.Chart{
		Title:  titles[kind],
		Width:  800,
		Height: 300,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04"),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: domain.Min, Max: domain.Max},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    titles[kind],
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex(strokes[kind]),
					StrokeWidth: 2,
				},
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s chart: %w", kind, err)
	}
	return nil
}
