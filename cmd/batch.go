package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/pb33f/harlua/motor"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchJobs int

var batchCmd = &cobra.Command{
	Use:   "batch <har-file>...",
	Short: "Convert several HAR files concurrently",
	Long: `Convert every given HAR file into a script next to it, named after the input
file with the configured extension. Conversions run in parallel, bounded by --jobs.
A failing file does not stop the others; the command fails if any file failed.`,
	Args: cobra.MinimumNArgs(1),
	Example: `  harlua batch captures/*.har
  harlua batch -j 2 one.har two.har`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", 0, "Number of concurrent conversions (default: batch.jobs, or the CPU count)")
}

// batchOutcome is the result of one file of a batch; exactly one field is set.
type batchOutcome struct {
	conversion *conversion
	err        error
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("jobs") {
		if batchJobs < 1 {
			return fmt.Errorf("--jobs must be at least 1, got %d", batchJobs)
		}
		cfg.Batch.Jobs = batchJobs
	}

	jobs := planBatch(args, cfg.Output.Extension)
	logger := GetLogger()
	logger.Debug("batch conversion started", "files", len(jobs), "jobs", cfg.Batch.Jobs)

	outcomes := make([]batchOutcome, len(jobs))

	var g errgroup.Group
	g.SetLimit(cfg.Batch.Jobs)
	for i, job := range jobs {
		if job.err != nil {
			logger.Warn("file skipped", "path", job.input, "error", job.err)
			outcomes[i] = batchOutcome{err: job.err}
			continue
		}
		input := job.input
		g.Go(func() error {
			c, err := convertFile(logger, cfg, input, job.output)
			if err != nil {
				logger.Error("conversion failed", "path", input, "error", err)
			}
			outcomes[i] = batchOutcome{conversion: c, err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	out := cmd.OutOrStdout()
	for i, o := range outcomes {
		if o.err != nil {
			failed++
			fmt.Fprintf(out, "Failed '%s': %v\n", jobs[i].input, o.err)
			continue
		}
		fmt.Fprintf(out, "Converted '%s' -> '%s'. (xxhash %s, %d pages, %d requests)\n",
			o.conversion.Input, o.conversion.Output, o.conversion.Source.Hash,
			o.conversion.Result.Stats.PageBatches, o.conversion.Result.Stats.Requests)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(jobs))
	}
	return nil
}

// batchJob is one input of a batch and the script it writes. A job with err set is not run.
type batchJob struct {
	input  string
	output string
	err    error
}

// planBatch drops repeated inputs (compared after filepath.Clean) and refuses any input whose
// default output is already claimed by an earlier one, so no two workers write the same script.
func planBatch(args []string, ext string) []batchJob {
	seen := make(map[string]bool, len(args))
	owners := make(map[string]string, len(args))
	jobs := make([]batchJob, 0, len(args))
	for _, a := range args {
		input := filepath.Clean(a)
		if seen[input] {
			continue
		}
		seen[input] = true

		output := motor.DefaultOutputName(input, ext)
		job := batchJob{input: a, output: output}
		if owner, ok := owners[output]; ok {
			job.err = fmt.Errorf("output '%s' is already written by '%s'", output, owner)
		} else {
			owners[output] = a
		}
		jobs = append(jobs, job)
	}
	return jobs
}
