package cmd

import (
	"fmt"
	"runtime"

	"github.com/pb33f/harlua/motor"
	"github.com/spf13/cobra"
)

// These variables are typically set during build time using ldflags
// Example: go build -ldflags "-X github.com/pb33f/harlua/cmd.Version=1.0.0"
var (
	Version   = "dev"     // Version of the application
	GitCommit = "unknown" // Git commit hash
	BuildDate = "unknown" // Build date
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `Display detailed version information about the harlua application.`,
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, RenderBanner())
	fmt.Fprintf(out, "harlua - HAR to LoadImpact Lua converter\n")
	fmt.Fprintf(out, "Version:        %s\n", Version)
	fmt.Fprintf(out, "Script version: %s\n", scriptVersion())
	fmt.Fprintf(out, "Git Commit:     %s\n", GitCommit)
	fmt.Fprintf(out, "Build Date:     %s\n", BuildDate)
	fmt.Fprintf(out, "Go Version:     %s\n", runtime.Version())
	fmt.Fprintf(out, "OS/Arch:        %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// scriptVersion is the converter version stamped into generated scripts.
func scriptVersion() string {
	if Version != "dev" {
		return Version
	}
	return motor.ToolVersion
}
