package tui

import (
    "fmt"
    "strings"
    "time"

    "github.com/charmbracelet/lipgloss/v2"
)

func (m *PreviewModel) render() string {
    switch m.viewMode {
    case ViewModeTableWithFragment:
        return m.renderFragmentView()
    case ViewModeScript:
        return m.renderScriptView()
    default:
        return m.renderTableView()
    }
}

func (m *PreviewModel) renderTableView() string {
    var builder strings.Builder

    builder.WriteString(m.renderTitle())
    builder.WriteString("\n")

    // post-process table view to add colorization (vacuum pattern)
    tableView := m.table.View()
    builder.WriteString(ColorizeUnitTableOutput(tableView, m.table.Cursor(), m.rows))

    builder.WriteString("\n")
    builder.WriteString(m.renderStatusBar())

    return builder.String()
}

func (m *PreviewModel) renderFragmentView() string {
    var builder strings.Builder

    builder.WriteString(m.renderTitle())
    builder.WriteString("\n")

    tableView := m.table.View()
    builder.WriteString(ColorizeUnitTableOutput(tableView, m.table.Cursor(), m.rows))

    builder.WriteString("\n")
    builder.WriteString(m.renderFragmentPanel())
    builder.WriteString("\n")
    builder.WriteString(m.renderStatusBar())

    return builder.String()
}

func (m *PreviewModel) renderScriptView() string {
    var builder strings.Builder

    builder.WriteString(m.renderTitle())
    builder.WriteString("\n")
    builder.WriteString(m.renderFragmentPanel())
    builder.WriteString("\n")
    builder.WriteString(m.renderStatusBar())

    return builder.String()
}

func (m *PreviewModel) renderTitle() string {
    title := fmt.Sprintf("harlua: %s | ", m.fileName)
    titleStyle := lipgloss.NewStyle().
        BorderStyle(lipgloss.NormalBorder()).
        Padding(0, 1).
        Width(m.width).BorderForeground(RGBBlue).BorderTop(false).BorderLeft(false).BorderRight(false).BorderBottom(true)

    titleText := lipgloss.NewStyle().
        Bold(true).
        Render(title)

    summary := "("
    if m.result != nil {
        stats := m.result.Stats
        summary += fmt.Sprintf("%d pages, %d requests, %d pauses, HAR %s",
            stats.PageBatches, stats.Requests, stats.Sleeps, m.result.Version)
    }
    if m.conversionTime > 0 {
        summary += fmt.Sprintf(", converted in %v", m.conversionTime.Round(time.Millisecond))
    }
    summary += ")"

    countStyle := lipgloss.NewStyle().
        Faint(true)

    return titleStyle.Render(titleText + countStyle.Render(summary))
}

func (m *PreviewModel) renderStatusBar() string {
    var parts []string

    switch m.viewMode {
    case ViewModeTable:
        parts = append(parts, "↑/↓: Navigate")
        parts = append(parts, "Enter: View Fragment")
        parts = append(parts, "s: Full Script")
    case ViewModeTableWithFragment:
        parts = append(parts, "↑/↓: Scroll")
        parts = append(parts, "Enter/Esc: Close Fragment")
        parts = append(parts, "s: Full Script")
    case ViewModeScript:
        parts = append(parts, "↑/↓: Scroll")
        parts = append(parts, "s/Esc: Close Script")
    }

    parts = append(parts, "q: Quit")

    if m.viewMode != ViewModeScript && m.selectedIndex < len(m.units) {
        parts = append(parts, fmt.Sprintf("Unit %d/%d", m.selectedIndex+1, len(m.units)))
    }
    if m.source != nil {
        parts = append(parts, "xxh "+m.source.Hash)
    }

    statusStyle := lipgloss.NewStyle().Faint(true)
    return statusStyle.Render(strings.Join(parts, " | "))
}

func (m *PreviewModel) renderFragmentPanel() string {
    if m.viewMode == ViewModeTableWithFragment && m.selectedFragment() == "" {
        return m.renderEmptyPanel()
    }

    title := "Script"
    if m.viewMode == ViewModeTableWithFragment && m.selectedIndex < len(m.units) {
        title = truncateString(m.units[m.selectedIndex].Label, max(m.width-splitPanelPadding*2, minLabelColumnWidth))
    }

    panelStyle := lipgloss.NewStyle().
        Width(m.fragmentViewport.Width()).
        BorderStyle(lipgloss.NormalBorder()).
        BorderForeground(RGBBlue)

    return ViewportTitleStyle.Render(title) + "\n" + panelStyle.Render(m.fragmentViewport.View())
}

func (m *PreviewModel) renderEmptyPanel() string {
    emptyStyle := lipgloss.NewStyle().
        Faint(true).
        Align(lipgloss.Center, lipgloss.Center).
        Width(m.width).
        Height(m.height / 2)

    return emptyStyle.Render("No unit selected")
}
