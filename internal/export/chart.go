package export

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"reiter-ca/internal/telemetry"
)

// ErrNotEnoughData is returned when a chart would have fewer than two points.
var ErrNotEnoughData = errors.New("export: not enough telemetry to chart")

// WriteGrowthChart plots the frozen-cell count (left axis) and total mass
// (right axis) against the step number and writes a PNG to path.
func WriteGrowthChart(path string, records []telemetry.StepStats) error {
	if len(records) < 2 {
		return ErrNotEnoughData
	}

	steps := make([]float64, len(records))
	frozen := make([]float64, len(records))
	mass := make([]float64, len(records))
	for i, r := range records {
		steps[i] = float64(r.Step)
		frozen[i] = float64(r.Frozen)
		mass[i] = r.TotalMass
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name:  "step",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "frozen cells",
			Style: chart.Style{FontSize: 10.0},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "total mass",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "frozen",
				XValues: steps,
				YValues: frozen,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 70, G: 140, B: 220, A: 255}, StrokeWidth: 3.0},
			},
			chart.ContinuousSeries{
				Name:    "mass",
				YAxis:   chart.YAxisSecondary,
				XValues: steps,
				YValues: mass,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2.0},
			},
		},
	}
	graph.YAxis.Range = flatRange(frozen)
	graph.YAxisSecondary.Range = flatRange(mass)
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("rendering growth chart: %w", err)
	}
	return f.Close()
}

// flatRange widens a constant series around its value; a zero-height axis
// cannot be projected. Other series keep the automatic range.
func flatRange(values []float64) chart.Range {
	lo, hi := floats.Min(values), floats.Max(values)
	if lo != hi {
		return nil
	}
	pad := math.Max(math.Abs(lo)*0.1, 1)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
