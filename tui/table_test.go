package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/pb33f/harlua/motor"
	"github.com/stretchr/testify/assert"
)

func TestFormatUnitRow(t *testing.T) {
	page := motor.Unit{
		Kind:    motor.UnitPage,
		Label:   "Home (HAR pageref 'p1')",
		Calls:   make([]motor.Call, 3),
		Elapsed: 120.4,
	}
	assert.Equal(t, []string{"page", "Home (HAR pageref 'p1')", "3", "120ms"}, []string(formatUnitRow(page, 120)))

	sleep := motor.Unit{Kind: motor.UnitSleep, Label: "pause until next page", Sleep: 2500 * time.Millisecond}
	assert.Equal(t, []string{"sleep", "pause until next page", "---", "2.5s"}, []string(formatUnitRow(sleep, 120)))

	request := motor.Unit{Kind: motor.UnitRequest, Label: "Request outside page", Calls: make([]motor.Call, 1)}
	assert.Equal(t, []string{"request", "Request outside page", "1", "---"}, []string(formatUnitRow(request, 120)))
}

func TestFormatLabel(t *testing.T) {
	assert.Equal(t, "-", formatLabel("", 80))

	long := strings.Repeat("x", 300)
	got := formatLabel(long, 80)
	assert.Len(t, got, 80-kindColumnWidth-callsColumnWidth-durationColumnWidth-borderPadding)
	assert.True(t, strings.HasSuffix(got, "..."))

	assert.Len(t, formatLabel(long, 10), minLabelColumnWidth)
	assert.Len(t, formatLabel(long, 1000), maxLabelColumnWidth)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "---"},
		{-time.Second, "---"},
		{500 * time.Microsecond, "500μs"},
		{150 * time.Millisecond, "150ms"},
		{2500 * time.Millisecond, "2.5s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d), tt.d.String())
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
	// runes, not bytes
	assert.Equal(t, "Стр...", truncateString("Страница", 6))
}
