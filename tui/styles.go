package tui

import (
    "github.com/charmbracelet/bubbles/v2/table"
    "github.com/charmbracelet/lipgloss/v2"
)

// Color constants matching vacuum EXACTLY
var (
    RGBBlue       = lipgloss.Color("45")
    RGBPink       = lipgloss.Color("201")
    RGBRed        = lipgloss.Color("196")
    RGBYellow     = lipgloss.Color("220")
    RGBGreen      = lipgloss.Color("46")
    RGBGrey       = lipgloss.Color("246")
    RGBSubtlePink = lipgloss.Color("#2a1a2a")
)

// General styles
var (
    TitleStyle = lipgloss.NewStyle().
        Bold(true).
        Foreground(RGBPink)

    SubtitleStyle = lipgloss.NewStyle().
        Foreground(RGBGrey)

    HeaderStyle = lipgloss.NewStyle().
        Bold(true).
        Foreground(RGBBlue)

    BorderStyle = lipgloss.NewStyle().
        BorderStyle(lipgloss.NormalBorder()).
        BorderForeground(RGBBlue)

    ViewportTitleStyle = lipgloss.NewStyle().
        Bold(true).
        Foreground(RGBBlue).
        Padding(0, 1)

    HelpStyle = lipgloss.NewStyle().
        Foreground(RGBGrey)

    ErrorStyle = lipgloss.NewStyle().
        Foreground(RGBRed).
        Bold(true)
)

// Table colorization styles for unit kinds
var (
    StyleKindPage    = lipgloss.NewStyle().Foreground(RGBBlue)
    StyleKindRequest = lipgloss.NewStyle().Foreground(RGBGreen)
    StyleKindSleep   = lipgloss.NewStyle().Foreground(RGBYellow)

    // Duration (faint like entry count)
    StyleDurationFaint = lipgloss.NewStyle().Faint(true)
)

// Lua syntax highlighting styles
var (
    SyntaxKeyStyle     = lipgloss.NewStyle().Foreground(RGBBlue).Bold(true) // http.*, client.* calls
    SyntaxDashStyle    = lipgloss.NewStyle().Foreground(RGBPink)            // keywords and table braces
    SyntaxNumberStyle  = lipgloss.NewStyle().Foreground(RGBYellow)          // literals and long brackets
    SyntaxStringStyle  = lipgloss.NewStyle().Foreground(RGBGreen)
    SyntaxCommentStyle = lipgloss.NewStyle().Foreground(RGBGrey).Italic(true)
)

// ApplyTableStyles applies the Vacuum table theme to match exactly
func ApplyTableStyles(t table.Model) table.Model {
    s := table.DefaultStyles()

    s.Header = lipgloss.NewStyle().
        BorderStyle(lipgloss.NormalBorder()).
        BorderForeground(RGBPink).
        BorderBottom(true).
        BorderLeft(false).
        BorderRight(false).
        BorderTop(false).
        Foreground(RGBPink).
        Bold(true).
        Padding(0, 1)

    s.Selected = lipgloss.NewStyle().
        Bold(true).
        Foreground(RGBPink).
        Background(RGBSubtlePink).
        Padding(0, 0)

    s.Cell = lipgloss.NewStyle().
        BorderStyle(lipgloss.NormalBorder()).
        BorderForeground(RGBPink).
        BorderRight(false).
        Padding(0, 1)

    t.SetStyles(s)
    return t
}
