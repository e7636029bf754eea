package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/harlua/motor"
)

type LoadState int

const (
	LoadStateLoading LoadState = iota
	LoadStateLoaded
	LoadStateError
)

type conversionCompleteMsg struct {
	source   *motor.Source
	result   *motor.Result
	duration time.Duration
}

type conversionErrorMsg struct {
	err error
}

// startConversion reads and converts the HAR file off the UI goroutine.
func (m *PreviewModel) startConversion() tea.Cmd {
	fileName, encoding, opts := m.fileName, m.encoding, m.opts
	return func() tea.Msg {
		start := time.Now()

		source, err := motor.ReadHAR(fileName, encoding)
		if err != nil {
			return conversionErrorMsg{err: err}
		}

		result, err := motor.Convert(source.Text, opts)
		if err != nil {
			return conversionErrorMsg{err: err}
		}

		return conversionCompleteMsg{
			source:   source,
			result:   result,
			duration: time.Since(start),
		}
	}
}

func (m *PreviewModel) renderLoadingView() string {
	spinnerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink)

	fileInfoStyle := lipgloss.NewStyle().
		Foreground(RGBGrey)

	title := titleStyle.Render("Converting HAR File")
	fileInfo := fileInfoStyle.Render(fmt.Sprintf("\n%s", m.fileName))

	spinnerText := fmt.Sprintf("%s %s%s", m.loadingSpinner.View(), title, fileInfo)

	if m.loadingMessage != "" {
		messageStyle := lipgloss.NewStyle().
			Foreground(RGBBlue).
			MarginTop(2)
		spinnerText += "\n\n" + messageStyle.Render(m.loadingMessage)
	}

	return spinnerStyle.Render(spinnerText)
}

func (m *PreviewModel) renderErrorView() string {
	errorStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(RGBRed).
		Bold(true)

	errorMsg := fmt.Sprintf("Error converting HAR file\n\n%v\n\nPress 'q' to quit", m.err)
	return errorStyle.Render(errorMsg)
}

// matching vacuum's Dot spinner
func createLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(RGBPink)
	return s
}
