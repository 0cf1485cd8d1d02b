// Package report turns the per-generation history of a run into an HTML page
// of charts and a numeric summary.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/hypergrid/internal/runlog"
)

// Summary describes a run's generations.
type Summary struct {
	Generations   int
	MeanTotal     float64
	StdDevTotal   float64
	MinValue      float64
	MaxValue      float64
	FinalSide     int
	PeakFootprint int64
	ChangedCount  int
}

// Summarize computes a Summary. Values too large for float64 become ±Inf.
func Summarize(stats []runlog.GenerationStat) (Summary, error) {
	s := Summary{Generations: len(stats)}
	if len(stats) == 0 {
		return s, nil
	}
	totals := make([]float64, len(stats))
	s.MinValue = math.Inf(1)
	s.MaxValue = math.Inf(-1)
	for i, g := range stats {
		total, err := parseValue(g.Total)
		if err != nil {
			return Summary{}, fmt.Errorf("generation %d total: %w", g.Generation, err)
		}
		lo, err := parseValue(g.Min)
		if err != nil {
			return Summary{}, fmt.Errorf("generation %d min: %w", g.Generation, err)
		}
		hi, err := parseValue(g.Max)
		if err != nil {
			return Summary{}, fmt.Errorf("generation %d max: %w", g.Generation, err)
		}
		totals[i] = total
		s.MinValue = math.Min(s.MinValue, lo)
		s.MaxValue = math.Max(s.MaxValue, hi)
		if g.FootprintBytes > s.PeakFootprint {
			s.PeakFootprint = g.FootprintBytes
		}
		if g.Changed {
			s.ChangedCount++
		}
	}
	s.FinalSide = stats[len(stats)-1].Side
	if len(totals) > 1 {
		s.MeanTotal, s.StdDevTotal = stat.MeanStdDev(totals, nil)
	} else {
		s.MeanTotal = totals[0]
	}
	return s, nil
}

// parseValue reads a decimal string. ParseFloat reports out-of-range values
// as ±Inf alongside ErrRange, which is acceptable here.
func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return 0, err
	}
	return v, nil
}

// WriteGenerationChart renders an HTML page charting total, min and max per
// generation, plus grid side and memory footprint.
func WriteGenerationChart(w io.Writer, title string, stats []runlog.GenerationStat) error {
	x := make([]int64, len(stats))
	totals := make([]opts.LineData, len(stats))
	mins := make([]opts.LineData, len(stats))
	maxs := make([]opts.LineData, len(stats))
	sides := make([]opts.LineData, len(stats))
	footprints := make([]opts.LineData, len(stats))
	for i, g := range stats {
		x[i] = g.Generation
		total, err := parseValue(g.Total)
		if err != nil {
			return fmt.Errorf("generation %d total: %w", g.Generation, err)
		}
		lo, err := parseValue(g.Min)
		if err != nil {
			return fmt.Errorf("generation %d min: %w", g.Generation, err)
		}
		hi, err := parseValue(g.Max)
		if err != nil {
			return fmt.Errorf("generation %d max: %w", g.Generation, err)
		}
		totals[i] = opts.LineData{Value: total}
		mins[i] = opts.LineData{Value: lo}
		maxs[i] = opts.LineData{Value: hi}
		sides[i] = opts.LineData{Value: g.Side}
		footprints[i] = opts.LineData{Value: g.FootprintBytes}
	}

	values := charts.NewLine()
	values.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("generations=%d", len(stats))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "generation", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	lineOpts := charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})
	values.SetXAxis(x).
		AddSeries("total", totals, lineOpts).
		AddSeries("min", mins, lineOpts).
		AddSeries("max", maxs, lineOpts)

	size := charts.NewLine()
	size.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Grid size"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "generation", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "side"}),
	)
	size.ExtendYAxis(opts.YAxis{Name: "bytes"})
	size.SetXAxis(x).
		AddSeries("side", sides, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false), Step: "end"})).
		AddSeries("footprint", footprints, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false), YAxisIndex: 1}))

	page := components.NewPage()
	page.SetPageTitle(title)
	page.AddCharts(values, size)
	return page.Render(w)
}
