package tui

const (
	tableVerticalPadding = 4
	splitPanelPadding    = 2
	minLabelColumnWidth  = 20
	maxLabelColumnWidth  = 100
	borderPadding        = 8

	kindColumnWidth     = 9
	callsColumnWidth    = 7
	durationColumnWidth = 10

	// fragment panel takes this share of the vertical space below the table
	fragmentPanelHeightRatio = 0.5
)
