package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/bindgen/internal/generator"
	"github.com/roach88/bindgen/internal/ir"
)

// CheckSummary is the success payload of the check command.
type CheckSummary struct {
	Actions       int    `json:"actions"`
	DaemonActions int    `json:"daemon_actions"`
	Structs       int    `json:"structs"`
	Events        int    `json:"events"`
	Fingerprint   string `json:"fingerprint"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var apiDir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the consistency checks without generating",
		Long: `Load the API (the compiled-in catalog plus any CUE definitions) and run
every consistency rule. The first violation is reported with its E1xx code
and the command exits 1.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, apiDir, cmd)
		},
	}

	cmd.Flags().StringVar(&apiDir, "api-dir", "", "directory of extra CUE definitions (overrides api_dir)")

	return cmd
}

func runCheck(opts *RootOptions, apiDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := loadConfig(opts)
	if err != nil {
		return fail(formatter, err)
	}
	if apiDir != "" {
		cfg.APIDir = apiDir
	}

	api, err := generator.Check(cfg)
	if err != nil {
		return fail(formatter, err)
	}
	fingerprint, err := ir.Fingerprint(api)
	if err != nil {
		return fail(formatter, err)
	}

	summary := CheckSummary{
		Actions:       len(api.Actions),
		DaemonActions: len(api.DaemonActions()),
		Structs:       len(api.Structs),
		Events:        len(api.Events),
		Fingerprint:   fingerprint,
	}
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}

	fmt.Fprintf(formatter.Writer, "%s %d action(s) (%d daemon), %d struct(s), %d event(s)\n",
		okStyle.Render("ok:"), summary.Actions, summary.DaemonActions, summary.Structs, summary.Events)
	formatter.VerboseLog("fingerprint %s", fingerprint)
	return nil
}
