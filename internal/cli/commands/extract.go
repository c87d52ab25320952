package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlscout/internal/report"
	"github.com/leapstack-labs/sqlscout/internal/runner"
	"github.com/leapstack-labs/sqlscout/internal/source"
)

// ExtractOptions holds options for the extract command.
type ExtractOptions struct {
	NoExport bool
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <path>",
		Short: "Extract structural facts from SQL files",
		Long: `Statically analyze SQL files and report the tables, join conditions,
and filter conditions each statement references, with aliases resolved to
canonical table names.

Accepts a file or a directory. Directories are walked for .sql, .txt and
.csv inputs; every cell of a CSV file is treated as its own SQL source.
Each statement's record is exported as a timestamped CSV file unless
--no-export is given.`,
		Example: `  # Analyze one file
  sqlscout extract queries.sql

  # Analyze a directory, console report only
  sqlscout extract ./sql --no-export

  # Machine-readable output
  sqlscout extract queries.sql --format json

  # Custom export directory and parallelism
  sqlscout extract ./sql --out-dir results --jobs 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoExport, "no-export", false, "Skip CSV export, console report only")

	return cmd
}

func runExtract(cmd *cobra.Command, path string, opts *ExtractOptions) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)

	start := time.Now()
	runID := uuid.NewString()
	logger.Debug("starting extraction", "run_id", runID, "path", path)

	blobs, err := source.LoadAll(path)
	if err != nil {
		return fmt.Errorf("failed to load inputs: %w", err)
	}

	items, err := runner.New(cfg.Jobs, logger).Run(cmd.Context(), blobs)
	if err != nil {
		return err
	}

	r := report.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), report.Mode(cfg.Format))

	var exporter *report.Exporter
	if cfg.Export && !opts.NoExport {
		exporter = report.NewExporter(cfg.OutDir)
	}

	summary := report.Summary{RunID: runID, Files: countFiles(items)}
	for _, item := range items {
		for _, res := range item.Results {
			summary.Statements++
			r.Statement(res)
			if res.Err != nil {
				summary.Failed++
				if res.Failed() {
					continue
				}
			}
			if exporter == nil {
				continue
			}
			path, err := exporter.Export(item.Blob.File, report.ExportRecord{
				Query:           res.Query,
				Tables:          res.Tables,
				JoinConditions:  res.JoinConditions,
				WhereConditions: res.WhereConditions,
			})
			if err != nil {
				return err
			}
			summary.Exported++
			r.Exported(path)
		}
	}

	summary.Elapsed = time.Since(start).Round(time.Millisecond).String()
	r.Summary(summary)
	return nil
}

func countFiles(items []runner.Item) int {
	seen := make(map[string]struct{})
	for _, item := range items {
		seen[item.Blob.File] = struct{}{}
	}
	return len(seen)
}
