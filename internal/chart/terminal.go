package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/QMSS-G5072-2024/nutrilog/internal/aggregate"
	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Underline(true)
	styleDate  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleValue = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	styleCal   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	palette = []lipgloss.Color{"39", "42", "220", "135", "196", "51", "213", "250"}
)

const barRune = "█"

// scale maps v onto [0, width] relative to max.
func scale(v, max float64, width int) int {
	if max <= 0 || v <= 0 {
		return 0
	}
	n := int(math.Round(v / max * float64(width)))
	if n == 0 {
		n = 1
	}
	return n
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// Terminal draws the charts as text for a terminal of the given width.
type Terminal struct {
	Width int
}

func (t Terminal) barWidth() int {
	w := t.Width - 30
	if w < 10 {
		w = 10
	}
	return w
}

// Calories renders one horizontal bar per date.
func (t Terminal) Calories(points []aggregate.DailyTotal) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(CaloriesTitle))
	b.WriteString("\n\n")

	var max float64
	for _, p := range points {
		max = math.Max(max, p.Quantity)
	}

	width := t.barWidth()
	for _, p := range points {
		bar := strings.Repeat(barRune, scale(p.Quantity, max, width))
		fmt.Fprintf(&b, "%s %s %s\n",
			styleDate.Render(p.Date),
			styleCal.Render(bar),
			styleValue.Render(formatValue(p.Quantity)+" "+model.CaloriesUnit))
	}
	return b.String()
}

// Breakdown renders one stacked bar per date with a colour per nutrient.
func (t Terminal) Breakdown(points []aggregate.BreakdownPoint) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(BreakdownTitle))
	b.WriteString("\n\n")

	dates := aggregate.Dates(points)
	order, values := aggregate.Series(points)

	styles := make(map[model.Nutrient]lipgloss.Style, len(order))
	for i, n := range order {
		styles[n] = lipgloss.NewStyle().Foreground(palette[i%len(palette)])
	}

	totals := make([]float64, len(dates))
	var max float64
	for i := range dates {
		for _, n := range order {
			totals[i] += values[n][i]
		}
		max = math.Max(max, totals[i])
	}

	width := t.barWidth()
	for i, d := range dates {
		var bar strings.Builder
		for _, n := range order {
			seg := scale(values[n][i], max, width)
			bar.WriteString(styles[n].Render(strings.Repeat(barRune, seg)))
		}
		fmt.Fprintf(&b, "%s %s %s\n", styleDate.Render(d), bar.String(), styleValue.Render(formatValue(totals[i])))
	}

	legend := make([]string, 0, len(order))
	for _, n := range order {
		legend = append(legend, styles[n].Render(barRune)+" "+string(n))
	}
	if len(legend) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(legend, "  "))
		b.WriteString("\n")
	}
	return b.String()
}
