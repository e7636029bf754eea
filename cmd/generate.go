package cmd

import (
	"fmt"
	"time"

	"github.com/pb33f/harlua/hargen"
	"github.com/spf13/cobra"
)

var (
	genPages          int
	genEntriesPerPage int
	genOrphans        int
	genDangling       int
	genEmptyPages     int
	genGap            time.Duration
	genOutputFile     string
	genSeed           int64
	genDictPath       string
	genUserAgent      string
	genBrowser        string
	genNoShuffle      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic HAR files for testing conversions",
	Long: `Generate HAR (HTTP Archive) files with pages, requests outside any page,
requests referencing undeclared pages, pages without requests, form and text
bodies and user agents. Entries are shuffled so the document order differs
from the chronological order, as real captures often do.

Examples:
  harlua generate -o session.har
  harlua generate --pages 10 --entries-per-page 20 --orphans 5 --seed 42
  harlua generate --user-agent "" --browser Chrome -o browser-only.har`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	d := hargen.DefaultGenerateOptions
	generateCmd.Flags().IntVar(&genPages, "pages", d.Pages, "Number of pages with entries")
	generateCmd.Flags().IntVarP(&genEntriesPerPage, "entries-per-page", "n", d.EntriesPerPage, "Entries generated for every page")
	generateCmd.Flags().IntVar(&genOrphans, "orphans", d.Orphans, "Entries without a pageref")
	generateCmd.Flags().IntVar(&genDangling, "dangling", d.DanglingRefs, "Entries referencing a page that is not declared")
	generateCmd.Flags().IntVar(&genEmptyPages, "empty-pages", d.EmptyPages, "Declared pages without entries")
	generateCmd.Flags().DurationVar(&genGap, "gap", d.PageGap, "Time between two page starts")
	generateCmd.Flags().StringVarP(&genOutputFile, "output", "o", "", "Output file path (default: a temp file)")
	generateCmd.Flags().Int64VarP(&genSeed, "seed", "s", 0, "Random seed for reproducibility (0 = use current time)")
	generateCmd.Flags().StringVarP(&genDictPath, "dict", "d", "/usr/share/dict/words", "Dictionary file path")
	generateCmd.Flags().StringVar(&genUserAgent, "user-agent", d.UserAgent, "User-Agent request header (empty omits it)")
	generateCmd.Flags().StringVar(&genBrowser, "browser", d.Browser, "Browser name declared in the log (empty omits it)")
	generateCmd.Flags().BoolVar(&genNoShuffle, "no-shuffle", false, "Keep entries in chronological order")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts := hargen.DefaultGenerateOptions
	opts.Pages = genPages
	opts.EntriesPerPage = genEntriesPerPage
	opts.Orphans = genOrphans
	opts.DanglingRefs = genDangling
	opts.EmptyPages = genEmptyPages
	opts.PageGap = genGap
	opts.Seed = genSeed
	opts.DictionaryPath = genDictPath
	opts.UserAgent = genUserAgent
	opts.Browser = genBrowser
	opts.Shuffle = !genNoShuffle

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating HAR file with %d pages of %d entries, %d orphans...\n",
		opts.Pages, opts.EntriesPerPage, opts.Orphans+opts.DanglingRefs)

	var result *hargen.GenerateResult
	var err error
	if genOutputFile != "" {
		result, err = hargen.GenerateToFile(genOutputFile, opts)
	} else {
		result, err = hargen.Generate(opts)
	}
	if err != nil {
		return fmt.Errorf("failed to generate HAR: %w", err)
	}

	fmt.Fprintf(out, "\n✓ Generated HAR file: %s\n", result.HARFilePath)
	fmt.Fprintf(out, "  Total entries: %d\n", result.TotalEntries)
	fmt.Fprintf(out, "  Total pages:   %d (%d without entries)\n", result.TotalPages, len(result.Layout.EmptyPageIDs))
	fmt.Fprintf(out, "  Outside pages: %d\n", len(result.Layout.StandaloneURL))

	return nil
}
