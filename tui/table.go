package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/pb33f/harlua/motor"
)

func (m *PreviewModel) buildTableRows() {
	rows := make([]table.Row, 0, len(m.units))

	for _, unit := range m.units {
		rows = append(rows, formatUnitRow(unit, m.width))
	}

	m.rows = rows
}

func formatUnitRow(unit motor.Unit, terminalWidth int) table.Row {
	return table.Row{
		unit.Kind.String(),
		formatLabel(unit.Label, terminalWidth),
		formatCalls(unit),
		formatDuration(unitDuration(unit)),
	}
}

// unitDuration is the pause length for sleeps and the captured entry time otherwise.
func unitDuration(unit motor.Unit) time.Duration {
	if unit.Kind == motor.UnitSleep {
		return unit.Sleep
	}
	return time.Duration(unit.Elapsed * float64(time.Millisecond))
}

func formatCalls(unit motor.Unit) string {
	if unit.Kind == motor.UnitSleep {
		return "---"
	}
	return fmt.Sprintf("%d", len(unit.Calls))
}

func formatLabel(label string, terminalWidth int) string {
	if label == "" {
		return "-"
	}

	availableWidth := terminalWidth - kindColumnWidth - callsColumnWidth - durationColumnWidth - borderPadding
	if availableWidth < minLabelColumnWidth {
		availableWidth = minLabelColumnWidth
	}
	if availableWidth > maxLabelColumnWidth {
		availableWidth = maxLabelColumnWidth
	}

	return truncateString(label, availableWidth)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "---"
	}

	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dμs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		seconds := float64(d.Milliseconds()) / 1000.0
		return fmt.Sprintf("%.1fs", seconds)
	default:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) - (minutes * 60)
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// truncateString shortens s to maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}
