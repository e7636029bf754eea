package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/x/ansi"
)

func testUnitTable(rows []table.Row) table.Model {
	columns := []table.Column{
		{Title: "Kind", Width: kindColumnWidth},
		{Title: "Label", Width: 30},
		{Title: "Calls", Width: callsColumnWidth},
		{Title: "Duration", Width: durationColumnWidth},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithWidth(70),
	)
	return ApplyTableStyles(tbl)
}

func TestColorizeWithRealTable(t *testing.T) {
	rows := []table.Row{
		{"page", "Home (HAR pageref 'p1')", "3", "120ms"},
		{"sleep", "pause until next page", "---", "2.5s"},
		{"request", "Request outside page", "1", "40ms"},
	}

	tbl := testUnitTable(rows)
	tbl.SetCursor(1)
	tableView := tbl.View()

	colorized := ColorizeUnitTableOutput(tableView, 1, rows)

	// colorization only ever adds escape sequences
	if ansi.Strip(colorized) != ansi.Strip(tableView) {
		t.Errorf("colorized text differs from table text:\n%s\n---\n%s", ansi.Strip(colorized), ansi.Strip(tableView))
	}

	if !strings.Contains(colorized, renderedRequest) {
		t.Errorf("expected the unselected request row to be colorized")
	}
	if got, want := len(strings.Split(colorized, "\n")), len(strings.Split(tableView, "\n")); got != want {
		t.Errorf("line count changed: got %d, want %d", got, want)
	}
}

func TestColorizeDuplicateLabels(t *testing.T) {
	// every standalone request shares one label
	rows := []table.Row{
		{"request", "Request outside page", "1", "10ms"},
		{"request", "Request outside page", "1", "10ms"},
		{"request", "Request outside page", "1", "10ms"},
	}

	tbl := testUnitTable(rows)
	tbl.SetCursor(0)
	colorized := ColorizeUnitTableOutput(tbl.View(), 0, rows)

	colorizedCount := 0
	for _, line := range strings.Split(colorized, "\n") {
		if strings.Contains(line, renderedRequest) {
			colorizedCount++
		}
	}
	if colorizedCount < 2 {
		t.Errorf("expected at least the two unselected duplicates to be colorized, got %d", colorizedCount)
	}
}

func TestColorizeUnitKinds(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{" page  Home ", " " + renderedPage + "  Home "},
		{" request  Request outside page ", " " + renderedRequest + "  Request outside page "},
		{" sleep  pause ", " " + renderedSleep + "  pause "},
		{" other ", " other "},
	}
	for _, tt := range tests {
		if got := colorizeUnitKinds(tt.line); got != tt.want {
			t.Errorf("colorizeUnitKinds(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestColorizeDurations(t *testing.T) {
	line := " page  Home  3  120ms   "
	got := colorizeDurations(line)
	if ansi.Strip(got) != line {
		t.Errorf("text changed: %q", ansi.Strip(got))
	}
	if !strings.Contains(got, StyleDurationFaint.Render("120ms")) {
		t.Errorf("duration not styled: %q", got)
	}

	if got := colorizeDurations(" sleep  pause  ---  ---"); got != " sleep  pause  ---  ---" {
		t.Errorf("placeholder should be left alone, got %q", got)
	}
}

func TestIsDuration(t *testing.T) {
	valid := []string{"5μs", "150ms", "2.5s", "1m30s", "12s"}
	for _, s := range valid {
		if !isDuration(s) {
			t.Errorf("isDuration(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "ms", "---", "page", "/api/users", "5u7hmsls", "1.2.3s", "1m", "am30s"}
	for _, s := range invalid {
		if isDuration(s) {
			t.Errorf("isDuration(%q) = true, want false", s)
		}
	}
}
