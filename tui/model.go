package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/bubbles/v2/viewport"
	"github.com/pb33f/harlua/motor"
)

// ViewMode represents the different view states
type ViewMode int

const (
	ViewModeTable ViewMode = iota
	ViewModeTableWithFragment
	ViewModeScript
)

// PreviewModel shows the schedule of a converted HAR file: one table row per unit and the
// Lua fragment of the selected unit, or the whole script.
type PreviewModel struct {
	table   table.Model
	units   []motor.Unit
	rows    []table.Row
	columns []table.Column

	source        *motor.Source
	result        *motor.Result
	selectedIndex int

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	quitting bool

	fragmentViewport viewport.Model

	fileName string
	encoding string
	opts     motor.Options

	loadState      LoadState
	loadingSpinner spinner.Model
	loadingMessage string
	conversionTime time.Duration

	err error
}

// NewPreviewModel creates a preview of fileName decoded from encoding and converted with opts.
func NewPreviewModel(fileName, encoding string, opts motor.Options) (*PreviewModel, error) {
	columns := []table.Column{
		{Title: "Kind", Width: kindColumnWidth},
		{Title: "Label", Width: maxLabelColumnWidth},
		{Title: "Calls", Width: callsColumnWidth},
		{Title: "Duration", Width: durationColumnWidth},
	}

	m := &PreviewModel{
		fileName:       fileName,
		encoding:       encoding,
		opts:           opts,
		columns:        columns,
		viewMode:       ViewModeTable,
		loadState:      LoadStateLoading,
		loadingSpinner: createLoadingSpinner(),
		loadingMessage: "Scheduling pages, requests and pauses...",
	}

	return m, nil
}

func (m *PreviewModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadingSpinner.Tick,
		m.startConversion(),
	)
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if m.loadState == LoadStateLoading {
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case conversionCompleteMsg:
		m.loadState = LoadStateLoaded
		m.source = msg.source
		m.result = msg.result
		m.units = msg.result.Units
		m.conversionTime = msg.duration

		if m.width > 0 && m.height > 0 {
			m.initializeTable()
			m.ready = true
		}
		return m, nil

	case conversionErrorMsg:
		m.loadState = LoadStateError
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyPressMsg:
		if handled, cmd := m.handleKey(msg.String()); handled {
			return m, cmd
		}
	}

	if m.loadState == LoadStateLoaded && m.ready {
		if m.viewMode == ViewModeTable {
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)

			if m.table.Cursor() != m.selectedIndex {
				m.selectedIndex = m.table.Cursor()
			}
		} else {
			m.fragmentViewport, cmd = m.fragmentViewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKey applies the preview's own key bindings. Keys it does not handle fall through to
// the table or the viewport.
func (m *PreviewModel) handleKey(key string) (bool, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return true, tea.Quit

	case "enter", "return":
		if m.loadState == LoadStateLoaded && m.ready {
			m.toggleFragmentView()
		}
		return true, nil

	case "s":
		if m.loadState == LoadStateLoaded && m.ready {
			m.toggleScriptView()
		}
		return true, nil

	case "esc":
		if m.loadState == LoadStateLoaded && m.ready && m.viewMode != ViewModeTable {
			m.viewMode = ViewModeTable
			m.updateTableDimensions()
		}
		return true, nil
	}
	return false, nil
}

func (m *PreviewModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.loadState {
	case LoadStateLoading:
		return m.renderLoadingView()
	case LoadStateError:
		return m.renderErrorView()
	case LoadStateLoaded:
		if !m.ready {
			return "Initializing..."
		}
		return m.render()
	default:
		return "Unknown state"
	}
}

// Script returns the converted script, or "" before the conversion finished.
func (m *PreviewModel) Script() string {
	if m.result == nil {
		return ""
	}
	return m.result.Script
}

// Err returns the conversion error, if any.
func (m *PreviewModel) Err() error {
	return m.err
}

func (m *PreviewModel) resize(width, height int) {
	m.width = width
	m.height = height

	if m.loadState == LoadStateLoaded && !m.ready && m.result != nil {
		m.initializeTable()
		m.ready = true
	} else if m.ready {
		m.updateTableDimensions()
	}

	if m.viewMode != ViewModeTable {
		m.updateViewportDimensions()
	}
}

func (m *PreviewModel) initializeTable() {
	m.buildTableRows()

	m.table = table.New(
		table.WithColumns(m.columns),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithWidth(m.width),
	)

	m.table = ApplyTableStyles(m.table)
	m.adjustColumnWidths()
}

func (m *PreviewModel) tableHeight() int {
	height := m.height - tableVerticalPadding
	if m.viewMode == ViewModeTableWithFragment {
		height = int(float64(height) * (1 - fragmentPanelHeightRatio))
	}
	return max(height, 1)
}

func (m *PreviewModel) updateTableDimensions() {
	m.table.SetHeight(m.tableHeight())
	m.table.SetWidth(m.width)

	m.adjustColumnWidths()
}

func (m *PreviewModel) updateViewportDimensions() {
	height := m.height - tableVerticalPadding - splitPanelPadding
	if m.viewMode == ViewModeTableWithFragment {
		height = int(float64(m.height-tableVerticalPadding)*fragmentPanelHeightRatio) - splitPanelPadding
	}
	height = max(height, 1)
	width := max(m.width-splitPanelPadding, 1)

	if m.fragmentViewport.Width() == 0 {
		m.fragmentViewport = viewport.New(viewport.WithWidth(width), viewport.WithHeight(height))
	} else {
		m.fragmentViewport.SetWidth(width)
		m.fragmentViewport.SetHeight(height)
	}
}

func (m *PreviewModel) toggleFragmentView() {
	if m.viewMode == ViewModeTableWithFragment {
		m.viewMode = ViewModeTable
		m.updateTableDimensions()
		return
	}

	m.viewMode = ViewModeTableWithFragment
	m.updateTableDimensions()
	m.updateViewportDimensions()
	m.updateViewportContent()
}

func (m *PreviewModel) toggleScriptView() {
	if m.viewMode == ViewModeScript {
		m.viewMode = ViewModeTable
		m.updateTableDimensions()
		return
	}

	m.viewMode = ViewModeScript
	m.updateViewportDimensions()
	m.updateViewportContent()
}

func (m *PreviewModel) updateViewportContent() {
	switch m.viewMode {
	case ViewModeScript:
		m.fragmentViewport.SetContent(HighlightLua(m.Script()))
	case ViewModeTableWithFragment:
		m.fragmentViewport.SetContent(HighlightLua(m.selectedFragment()))
	}
	m.fragmentViewport.GotoTop()
}

func (m *PreviewModel) selectedFragment() string {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.units) {
		return ""
	}
	return m.units[m.selectedIndex].Fragment
}

func (m *PreviewModel) adjustColumnWidths() {
	labelWidth := m.width - kindColumnWidth - callsColumnWidth - durationColumnWidth - borderPadding
	if labelWidth < minLabelColumnWidth {
		labelWidth = minLabelColumnWidth
	}

	m.columns[0].Width = kindColumnWidth
	m.columns[1].Width = labelWidth
	m.columns[2].Width = callsColumnWidth
	m.columns[3].Width = durationColumnWidth

	m.table.SetColumns(m.columns)
}
