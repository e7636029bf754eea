package cmd

import (
    "fmt"
    "io"
    "log/slog"
    "os"
    "path/filepath"
    "time"

    "github.com/pb33f/harlua/config"
    "github.com/pb33f/harlua/motor"
    "github.com/spf13/cobra"
)

var (
    verbose    bool
    encoding   string
    configPath string
    minSleepMS int
    Logger     *slog.Logger

    rootCmd = &cobra.Command{
        Use:   "harlua <har-file> [output-file]",
        Short: "Convert HAR captures into LoadImpact Lua user scenarios",
        Long: `harlua converts a HAR (HTTP Archive) capture of a browsing session into a
LoadImpact user scenario script written in Lua. Requests recorded for a page are
replayed as one batch, requests outside any page are replayed on their own, and
the time the user spent between two pages becomes a client sleep.

The output file defaults to the input file name with a .lua extension.`,
        Args: cobra.RangeArgs(1, 2),
        Example: `  harlua recording.har
  harlua recording.har scenario.lua
  harlua recording.har - --encoding windows-1251
  harlua recording.har -c harlua.yaml -v`,
        PersistentPreRun: func(cmd *cobra.Command, args []string) {
            setupLogger()
        },
        SilenceUsage: true,
        RunE:         runConvert,
    }
)

// Execute runs the root command
func Execute() error {
    return rootCmd.Execute()
}

func init() {
    rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
    rootCmd.PersistentFlags().StringVarP(&encoding, "encoding", "e", motor.DefaultEncoding, "Character encoding of the HAR file")
    rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
    rootCmd.PersistentFlags().IntVar(&minSleepMS, "min-sleep", int(motor.DefaultMinSleep/time.Millisecond),
        "Shortest pause between two pages, in milliseconds (0 disables the floor)")

    defaultHelp := rootCmd.HelpFunc()
    rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
        if cmd == rootCmd {
            fmt.Fprintln(cmd.OutOrStdout(), RenderColorfulBanner())
        }
        defaultHelp(cmd, args)
    })

    // will be reconfigured in PersistentPreRun based on flags
    setupLogger()
}

func runConvert(cmd *cobra.Command, args []string) error {
    cfg, err := loadSettings(cmd)
    if err != nil {
        return err
    }

    output := ""
    if len(args) > 1 {
        output = args[1]
    }

    c, err := convertFile(GetLogger(), cfg, args[0], output)
    if err != nil {
        return err
    }

    // keep stdout clean when the script itself goes there
    out := cmd.OutOrStdout()
    if c.Output == motor.Stdout {
        out = cmd.ErrOrStderr()
    }
    printConverted(out, c)
    return nil
}

// setupLogger configures the global slog logger based on the verbose flag
func setupLogger() {
    var opts *slog.HandlerOptions

    if verbose {
        opts = &slog.HandlerOptions{
            Level:     slog.LevelDebug,
            AddSource: true,
        }
    } else {
        opts = &slog.HandlerOptions{
            Level: slog.LevelInfo,
        }
    }

    handler := slog.NewTextHandler(os.Stderr, opts)
    Logger = slog.New(handler)
    slog.SetDefault(Logger)

    if verbose {
        Logger.Debug("verbose logging enabled",
            "level", slog.LevelDebug.String(),
            "pid", os.Getpid())
    }
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
    if Logger == nil {
        setupLogger()
    }
    return Logger
}

// loadSettings reads the configuration file, then applies flags the user set explicitly.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
    cfg, err := config.Load(configPath)
    if err != nil {
        return nil, err
    }

    flags := cmd.Flags()
    if flags.Changed("encoding") {
        cfg.Input.Encoding = encoding
    }
    if flags.Changed("min-sleep") {
        cfg.Conversion.MinSleepMS = minSleepMS
    }

    if err := cfg.Validate(); err != nil {
        return nil, fmt.Errorf("invalid settings: %w", err)
    }
    return cfg, nil
}

// ValidateHARFile checks if the provided HAR file exists and is accessible
// check if the file exists, and it is not a directory.
func ValidateHARFile(harFile string) error {
    if harFile == "" {
        return fmt.Errorf("HAR file path is required")
    }

    info, err := os.Stat(harFile)
    if err != nil {
        if os.IsNotExist(err) {
            return fmt.Errorf("HAR file does not exist: %s", harFile)
        }
        return fmt.Errorf("error accessing HAR file: %w", err)
    }

    if info.IsDir() {
        return fmt.Errorf("provided path is a directory, not a file: %s", harFile)
    }

    return nil
}

// conversion is the outcome of converting one HAR file to a script file.
type conversion struct {
    Input    string
    Output   string
    Source   *motor.Source
    Result   *motor.Result
    Duration time.Duration
}

// convertFile reads input, converts it and writes the script. An empty output derives the
// script name from the input name.
func convertFile(logger *slog.Logger, cfg *config.Config, input, output string) (*conversion, error) {
    start := time.Now()

    if err := ValidateHARFile(input); err != nil {
        return nil, fmt.Errorf("invalid HAR file: %w", err)
    }
    if output == "" {
        output = motor.DefaultOutputName(input, cfg.Output.Extension)
    }

    source, err := motor.ReadHAR(input, cfg.Input.Encoding)
    if err != nil {
        return nil, err
    }
    logger.Debug("HAR file read",
        "path", input,
        "bytes", source.Size,
        "encoding", source.Encoding,
        "xxhash", source.Hash)

    result, err := motor.Convert(source.Text, scriptOptions(cfg, input, output))
    if motor.IsFormatError(err) {
        return nil, fmt.Errorf("%s is not a convertible HAR document: %w", input, err)
    }
    if err != nil {
        return nil, fmt.Errorf("failed to convert %s: %w", input, err)
    }
    logConversion(logger, input, result)

    if err := motor.WriteScript(output, result.Script); err != nil {
        return nil, err
    }

    c := &conversion{
        Input:    input,
        Output:   output,
        Source:   source,
        Result:   result,
        Duration: time.Since(start),
    }
    logger.Debug("script written", "path", output, "bytes", len(result.Script), "duration", c.Duration)
    return c, nil
}

// scriptOptions names the files in the script header by their base names.
func scriptOptions(cfg *config.Config, input, output string) motor.Options {
    outputName := filepath.Base(output)
    if output == motor.Stdout {
        outputName = filepath.Base(motor.DefaultOutputName(input, cfg.Output.Extension))
    }

    opts := cfg.Options(filepath.Base(input), outputName)
    opts.ToolVersion = scriptVersion()
    return opts
}

func logConversion(logger *slog.Logger, input string, result *motor.Result) {
    stats := result.Stats
    logger.Info("HAR converted",
        "path", input,
        "har_version", result.Version,
        "creator", result.Creator,
        "entries", stats.Entries,
        "pages", stats.PageBatches,
        "requests", stats.Requests,
        "sleeps", stats.Sleeps)

    if result.UserAgent.Source == motor.UserAgentNone {
        logger.Warn("no user agent resolved", "path", input, "reason", result.UserAgent.Comment)
    } else {
        logger.Debug("user agent resolved", "source", result.UserAgent.Source, "value", result.UserAgent.Value)
    }
    if stats.UnmatchedRefs > 0 {
        logger.Warn("entries reference undeclared pages; replayed outside any page",
            "path", input, "count", stats.UnmatchedRefs)
    }
    if empty := stats.Pages - stats.PageBatches; empty > 0 {
        logger.Debug("pages without entries skipped", "path", input, "count", empty)
    }
}

func printConverted(w io.Writer, c *conversion) {
    fmt.Fprintf(w, "Converted '%s' -> '%s'.\n", c.Input, c.Output)
}
