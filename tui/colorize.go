package tui

import (
    "strings"

    "github.com/charmbracelet/bubbles/v2/table"
    "github.com/pb33f/harlua/motor"
)

// pre-rendered kind strings to avoid repeated style.Render() calls in hot path
var (
    renderedPage    string
    renderedRequest string
    renderedSleep   string
)

func init() {
    renderedPage = StyleKindPage.Render(motor.UnitPage.String())
    renderedRequest = StyleKindRequest.Render(motor.UnitRequest.String())
    renderedSleep = StyleKindSleep.Render(motor.UnitSleep.String())
}

// ANSI escape sequence for pink background (matches table selected style from styles.go)
const selectedLineMarker = "\x1b[1;38;5;201;48;2;42;26;42m"

// colorizes table output following vacuum pattern - skips selected row to preserve background
func ColorizeUnitTableOutput(tableView string, cursor int, rows []table.Row) string {
    lines := strings.Split(tableView, "\n")

    // the selected row is the only line carrying both the selection marker and its label;
    // labels alone repeat (every standalone request shares one), so they cannot identify it
    var selectedLabel string
    if cursor >= 0 && cursor < len(rows) && len(rows[cursor]) >= 2 {
        selectedLabel = rows[cursor][1]
    }

    var result strings.Builder
    // estimate output size: input + ANSI overhead per line (~40 bytes per colorized line)
    result.Grow(len(tableView) + (len(lines) * 40))

    for i, line := range lines {
        isSelectedLine := strings.Contains(line, selectedLineMarker) &&
            (selectedLabel == "" || strings.Contains(line, selectedLabel))

        // skip header row (i=0) and selected rows (already styled by table)
        if i >= 1 && !isSelectedLine {
            line = colorizeUnitKinds(line)
            line = colorizeDurations(line)
        }

        result.WriteString(line)
        if i < len(lines)-1 {
            result.WriteString("\n")
        }
    }

    return result.String()
}

// colorizes the first unit kind found in the line
func colorizeUnitKinds(line string) string {
    // ordered by frequency: requests dominate most captures
    if strings.Contains(line, " request ") {
        return strings.Replace(line, " request ", " "+renderedRequest+" ", 1)
    }
    if strings.Contains(line, " page ") {
        return strings.Replace(line, " page ", " "+renderedPage+" ", 1)
    }
    if strings.Contains(line, " sleep ") {
        return strings.Replace(line, " sleep ", " "+renderedSleep+" ", 1)
    }
    return line
}

// colorizes duration values in last column with faint style
func colorizeDurations(line string) string {
    trimmed := strings.TrimRight(line, " ")
    lastSpaceIdx := strings.LastIndexByte(trimmed, ' ')
    if lastSpaceIdx == -1 {
        return line
    }

    durationPart := trimmed[lastSpaceIdx+1:]
    if isDuration(durationPart) {
        styledDuration := StyleDurationFaint.Render(durationPart)
        return trimmed[:lastSpaceIdx+1] + styledDuration + line[len(trimmed):]
    }

    return line
}

// isDuration validates if string is a time duration (e.g., "150ms", "2.5s", "1m30s")
// rejects labels and identifiers by requiring digit-only numeric portions
func isDuration(s string) bool {
    if s == "" {
        return false
    }

    if s[0] < '0' || s[0] > '9' {
        return false
    }

    var valueStr string
    switch {
    case strings.HasSuffix(s, "μs"):
        valueStr = strings.TrimSuffix(s, "μs")
    case strings.HasSuffix(s, "ms"):
        valueStr = strings.TrimSuffix(s, "ms")
    case strings.HasSuffix(s, "s"):
        valueStr = strings.TrimSuffix(s, "s")
        // minutes and seconds, as formatDuration writes them
        if m := strings.IndexByte(valueStr, 'm'); m > 0 {
            return isNumber(valueStr[:m], false) && isNumber(valueStr[m+1:], false)
        }
    default:
        return false
    }

    return isNumber(valueStr, true)
}

func isNumber(s string, allowDot bool) bool {
    if len(s) == 0 {
        return false
    }
    dotCount := 0
    for _, c := range s {
        if c == '.' && allowDot {
            dotCount++
            if dotCount > 1 {
                return false
            }
        } else if c < '0' || c > '9' {
            return false
        }
    }
    return true
}
