package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
	"github.com/yuta-hayashi/tabiplan/internal/util"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dayStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderItinerary formats the itinerary for terminal display.
func renderItinerary(itin *itinerary.Itinerary) string {
	var b strings.Builder

	title := itin.Title
	if title == "" {
		title = "(無題の旅程)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	var header []string
	if itin.Destination != "" {
		header = append(header, itin.Destination)
	}
	if itin.Duration > 0 {
		header = append(header, fmt.Sprintf("%d日間", itin.Duration))
	}
	header = append(header, itin.Phase.String())
	b.WriteString(dimStyle.Render(strings.Join(header, " / ")))
	b.WriteString("\n")

	for _, day := range itin.Schedule {
		line := fmt.Sprintf("Day %d", day.Day)
		if day.Theme != "" {
			line += ": " + day.Theme
		}
		b.WriteString("\n")
		b.WriteString(dayStyle.Render(line))
		b.WriteString("\n")
		for _, spot := range day.Spots {
			at := spot.ScheduledTime
			if at == "" {
				at = "--:--"
			}
			b.WriteString(fmt.Sprintf("  %s  %s", at, util.TruncateString(spot.Name, 48)))
			if spot.EstimatedCost > 0 {
				b.WriteString(dimStyle.Render(fmt.Sprintf("  %.0f%s", spot.EstimatedCost, currencySuffix(itin.Currency))))
			}
			b.WriteString("\n")
		}
		if day.TotalCost > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  小計 %.0f%s", day.TotalCost, currencySuffix(itin.Currency))))
			b.WriteString("\n")
		}
	}

	if itin.TotalCost > 0 {
		b.WriteString("\n")
		total := fmt.Sprintf("合計 %.0f%s", itin.TotalCost, currencySuffix(itin.Currency))
		if itin.TotalBudget != nil {
			total += fmt.Sprintf(" / 予算 %.0f%s", *itin.TotalBudget, currencySuffix(itin.Currency))
		}
		b.WriteString(dayStyle.Render(total))
		b.WriteString("\n")
	}
	if over := itin.DayOverflow(); over > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("予定日数を%d日超えています。", over)))
		b.WriteString("\n")
	}
	return b.String()
}

func currencySuffix(currency string) string {
	if currency == "" || currency == "JPY" {
		return "円"
	}
	return " " + currency
}
