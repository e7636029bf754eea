package cmd

import (
    "image/color"
    "strings"

    "github.com/charmbracelet/lipgloss/v2"
    "github.com/pb33f/harlua/tui"
)

var harluaLines = []string{
    "@@@  @@@   @@@@@@   @@@@@@@   @@@       @@@  @@@   @@@@@@ ",
    "@@@  @@@  @@@@@@@@  @@@@@@@@  @@@       @@@  @@@  @@@@@@@@",
    "@@!  @@@  @@!  @@@  @@!  @@@  @@!       @@!  @@@  @@!  @@@",
    "!@!  @!@  !@!  @!@  !@!  @!@  !@!       !@!  @!@  !@!  @!@",
    "@!@!@!@!  @!@!@!@!  @!@!!@!   @!!       @!@  !@!  @!@!@!@!",
    "!!!@!!!!  !!!@!!!!  !!@!@!    !!!       !@!  !!!  !!!@!!!!",
    "!!:  !!!  !!:  !!!  !!: :!!   !!:       !!:  !!!  !!:  !!!",
    ":!:  !:!  :!:  !:!  :!:  !:!   :!:      :!:  !:!  :!:  !:!",
    "::   :::  ::   :::  ::   :::   :: ::::  ::::: ::  ::   :::",
    " :   : :   :   : :   :   : :  : :: : :   : :  :    :   : :",
}

// RenderBanner returns the styled harlua banner for the version screen
func RenderBanner() string {
    bannerStyle := lipgloss.NewStyle().
        Foreground(tui.RGBPink).
        Bold(true)

    subtitleStyle := lipgloss.NewStyle().
        Foreground(tui.RGBBlue).
        Italic(true)

    containerStyle := lipgloss.NewStyle().
        Align(lipgloss.Left).
        MarginBottom(1)

    banner := bannerStyle.Render(strings.Join(harluaLines, "\n"))
    subtitle := subtitleStyle.Render("HAR captures in, LoadImpact user scenarios out")

    return containerStyle.Render(banner + "\n" + subtitle)
}

// RenderColorfulBanner returns a gradient version for the help screen: pink for the
// top half of the art, blue for the bottom half
func RenderColorfulBanner() string {
    colors := make([]color.Color, len(harluaLines))
    for i := range colors {
        colors[i] = tui.RGBPink
        if i >= len(harluaLines)/2 {
            colors[i] = tui.RGBBlue
        }
    }

    var result string
    for i, line := range harluaLines {
        style := lipgloss.NewStyle().
            Foreground(colors[i]).
            Bold(true)
        result += style.Render(line) + "\n"
    }

    subtitleStyle := lipgloss.NewStyle().
        Foreground(tui.RGBGrey).
        Italic(true)

    subtitle := subtitleStyle.Render("https://pb33f.io/harlua/")

    containerStyle := lipgloss.NewStyle().
        Align(lipgloss.Left).
        MarginBottom(1)

    return containerStyle.Render(result + subtitle)
}
