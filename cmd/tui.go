package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/harlua/config"
	"github.com/pb33f/harlua/motor"
	"github.com/pb33f/harlua/tui"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <har-file>",
	Short: "Preview the scenario a HAR file converts to",
	Long: `Launch an interactive terminal user interface listing the pages, standalone
requests and pauses the HAR file converts to. Select a row to read its Lua
fragment, or open the whole script. Nothing is written to disk.`,
	Args: cobra.ExactArgs(1),
	Example: `  harlua preview recording.har
  harlua preview recording.har -e latin1`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	harFile := args[0]

	if err := ValidateHARFile(harFile); err != nil {
		return err
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	GetLogger().Debug("launching preview", "har_file", harFile)
	return LaunchTUI(harFile, cfg)
}

func LaunchTUI(harFile string, cfg *config.Config) error {
	output := motor.DefaultOutputName(harFile, cfg.Output.Extension)
	model, err := tui.NewPreviewModel(harFile, cfg.Input.Encoding, scriptOptions(cfg, harFile, output))
	if err != nil {
		return fmt.Errorf("failed to create TUI model: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	// surface conversion errors once the screen is restored
	if m, ok := finalModel.(*tui.PreviewModel); ok && m.Err() != nil {
		return fmt.Errorf("failed to convert %s: %w", harFile, m.Err())
	}

	return nil
}
