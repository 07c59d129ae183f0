package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bindgen/internal/generator"
	"github.com/roach88/bindgen/internal/strutil"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generation runs from the journal",
		Long: `List recorded generation runs, newest first. Each run shows its id,
the API fingerprint prefix, the targets and how many files it wrote.

With --run, list the files of one run instead, with their digests.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runID != "" {
				return runHistoryFiles(rootOpts, runID, cmd)
			}
			return runHistory(rootOpts, limit, cmd)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "show the files written by this run")

	return cmd
}

func runHistory(opts *RootOptions, limit int, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	if limit <= 0 {
		return fail(formatter, fmt.Errorf("--limit must be positive, got %d", limit))
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return fail(formatter, err)
	}
	runs, err := generator.History(cmd.Context(), cfg, limit)
	if err != nil {
		return fail(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}

	rows := [][]string{{"RUN", "API", "TARGETS", "WRITTEN", "UNCHANGED", "LINES"}}
	for _, r := range runs {
		fp := r.Fingerprint
		if len(fp) > 12 {
			fp = fp[:12]
		}
		rows = append(rows, []string{
			r.ID, fp, r.Targets,
			strconv.Itoa(r.FilesWritten), strconv.Itoa(r.FilesUnchanged), strconv.Itoa(r.Lines),
		})
	}
	lines := strutil.Columns(rows, "  ")
	formatter.Heading("%s", lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintln(formatter.Writer, line)
	}
	return nil
}

func runHistoryFiles(opts *RootOptions, runID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := loadConfig(opts)
	if err != nil {
		return fail(formatter, err)
	}
	files, err := generator.RunFiles(cmd.Context(), cfg, runID)
	if err != nil {
		return fail(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(files)
	}
	rows := [][]string{{"PATH", "SHA256", "LINES", "CHANGED"}}
	for _, f := range files {
		rows = append(rows, []string{f.Path, f.SHA256[:12], strconv.Itoa(f.Lines), strconv.FormatBool(f.Changed)})
	}
	lines := strutil.Columns(rows, "  ")
	formatter.Heading("%s", lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintln(formatter.Writer, strings.TrimRight(line, " "))
	}
	return nil
}
