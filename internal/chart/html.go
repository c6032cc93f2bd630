package chart

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/QMSS-G5072-2024/nutrilog/internal/aggregate"
)

const (
	CaloriesTitle  = "Total Calories Consumed Per Day"
	BreakdownTitle = "Nutritional Breakdown Per Day"
)

func xAxis() opts.XAxis {
	return opts.XAxis{
		Name:      "Date",
		Type:      "category",
		AxisLabel: &opts.AxisLabel{Rotate: 45},
	}
}

// NewCaloriesLine builds the calorie line chart: one marked point per date.
func NewCaloriesLine(points []aggregate.DailyTotal) *charts.Line {
	dates := make([]string, len(points))
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		dates[i] = p.Date
		data[i] = opts.LineData{Value: p.Quantity}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: CaloriesTitle, Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: CaloriesTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(xAxis()),
		charts.WithYAxisOpts(opts.YAxis{Name: "Calories"}),
	)
	line.SetXAxis(dates).
		AddSeries("Calories", data).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	return line
}

// NewBreakdownBar builds the stacked nutrient bar chart, one series per nutrient.
func NewBreakdownBar(points []aggregate.BreakdownPoint) *charts.Bar {
	dates := aggregate.Dates(points)
	order, values := aggregate.Series(points)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: BreakdownTitle, Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: BreakdownTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(xAxis()),
		charts.WithYAxisOpts(opts.YAxis{Name: "Quantity"}),
	)
	bar.SetXAxis(dates)
	for _, n := range order {
		data := make([]opts.BarData, len(values[n]))
		for i, v := range values[n] {
			data[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(string(n), data, charts.WithBarChartOpts(opts.BarChart{Stack: "nutrients"}))
	}
	return bar
}

// CaloriesLine writes the calorie line chart as a standalone HTML page.
func CaloriesLine(w io.Writer, points []aggregate.DailyTotal) error {
	return NewCaloriesLine(points).Render(w)
}

// BreakdownBar writes the stacked breakdown chart as a standalone HTML page.
func BreakdownBar(w io.Writer, points []aggregate.BreakdownPoint) error {
	return NewBreakdownBar(points).Render(w)
}
