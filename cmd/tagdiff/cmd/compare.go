package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/tagdiff/internal/cmd/output"
	"github.com/agentstation/tagdiff/internal/cmd/table"
	"github.com/agentstation/tagdiff/pkg/diff"
	"github.com/agentstation/tagdiff/pkg/errors"
	"github.com/agentstation/tagdiff/pkg/export"
	"github.com/agentstation/tagdiff/pkg/logging"
	"github.com/agentstation/tagdiff/pkg/tables"
)

var (
	compareOutput     string
	compareNoExport   bool
	compareFilter     string
	compareIgnoreCols []string
	compareArrow      string
	compareR0Sheet    string
	compareR1Sheet    string
)

// compareCmd diffs the baseline dataset R0 against the revised dataset R1.
var compareCmd = &cobra.Command{
	Use:   "compare <r0> <r1>",
	Short: "Compare two Tag-keyed tables",
	Long: `Compare diffs the baseline table R0 against the revised table R1.

Both inputs must contain a column named "Tag" which uniquely identifies
each row; duplicate Tags keep their first occurrence. Every Tag present
in either table is classified as added, removed, modified, or unchanged,
and modified cells render as "old → new".

Unless --no-export is given, a highlighted xlsx report is written next
to the current directory with a timestamped name (override with -o).`,
	Example: `  tagdiff compare r0.xlsx r1.xlsx
  tagdiff compare r0.xlsx r1.xlsx -o report.xlsx --filter modified
  tagdiff compare r0.csv r1.csv --no-export --format json`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "",
		"Path for the exported xlsx report (default: timestamped name)")
	compareCmd.Flags().BoolVar(&compareNoExport, "no-export", false,
		"Skip writing the xlsx report")
	compareCmd.Flags().StringVar(&compareFilter, "filter", "all",
		"Show only rows of one change type: all, added, removed, modified, unchanged")
	compareCmd.Flags().StringSliceVar(&compareIgnoreCols, "ignore-columns", nil,
		"Columns to exclude from comparison")
	compareCmd.Flags().StringVar(&compareArrow, "arrow", "",
		"Marker between old and new values in changed cells (default \"→\")")
	compareCmd.Flags().StringVar(&compareR0Sheet, "sheet", "",
		"Sheet to read from the R0 workbook (default: first sheet)")
	compareCmd.Flags().StringVar(&compareR1Sheet, "r1-sheet", "",
		"Sheet to read from the R1 workbook (default: same as --sheet)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	filter, ok := diff.ParseChangeType(compareFilter)
	if !ok {
		return errors.NewValidationError("filter", compareFilter,
			"must be one of: all, added, removed, modified, unchanged")
	}

	r1Sheet := compareR1Sheet
	if r1Sheet == "" {
		r1Sheet = compareR0Sheet
	}

	r0, err := tables.Load(args[0], tables.WithSheet(compareR0Sheet))
	if err != nil {
		return err
	}
	logging.Info().Str("input", args[0]).Int("rows", r0.Len()).Msg("Loaded R0")

	r1, err := tables.Load(args[1], tables.WithSheet(r1Sheet))
	if err != nil {
		return err
	}
	logging.Info().Str("input", args[1]).Int("rows", r1.Len()).Msg("Loaded R1")

	result := differFromFlags().Compare(r0, r1)

	logging.Info().
		Int("added", result.Summary.Added).
		Int("removed", result.Summary.Removed).
		Int("modified", result.Summary.Modified).
		Int("unchanged", result.Summary.Unchanged).
		Msg(result.String())

	view := result.Filter(filter)

	format := output.Format(globalFlags.Format)
	formatter := output.NewFormatter(format)
	var payload any = view
	if format == output.FormatTable {
		payload = table.ResultToTableData(view)
	}
	if err := formatter.Format(cmd.OutOrStdout(), payload); err != nil {
		return err
	}

	// Table output gets the metrics footer; json/yaml already carry Summary
	if format == output.FormatTable {
		if err := formatter.Format(cmd.OutOrStdout(), table.SummaryToTableData(result.Summary)); err != nil {
			return err
		}
	}

	if compareNoExport {
		return nil
	}

	path := compareOutput
	if path == "" {
		path = export.Filename(time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	if err := export.Write(f, result); err != nil {
		return err
	}

	logging.Info().Str("path", path).Msg("Wrote comparison report")
	return nil
}

// differFromFlags builds the engine from flag and config defaults.
func differFromFlags() diff.Differ {
	ignore := compareIgnoreCols
	arrow := compareArrow
	if config != nil {
		ignore = append(ignore, config.IgnoreColumns...)
		if arrow == "" {
			arrow = config.Arrow
		}
	}

	return diff.New(
		diff.WithIgnoredColumns(ignore...),
		diff.WithArrow(arrow),
	)
}
