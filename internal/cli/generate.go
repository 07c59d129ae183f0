package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/bindgen/internal/generator"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	OutputDir   string
	Targets     []string
	APIDir      string
	NoBindtests bool
	NoStore     bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate bindings, protocol and bindtests files",
		Long: `Check the API, then write every generated file into the output directory.

Files whose content is unchanged are left untouched, so their modification
times survive and downstream builds do not rebuild them. Nothing is written
if the check or any backend fails.

Example:
  bindgen generate
  bindgen generate -o out --target go --target rust
  bindgen generate --config ci.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "output directory (overrides output_dir)")
	cmd.Flags().StringSliceVarP(&opts.Targets, "target", "t", nil, "target to generate, repeatable (overrides targets)")
	cmd.Flags().StringVar(&opts.APIDir, "api-dir", "", "directory of extra CUE definitions (overrides api_dir)")
	cmd.Flags().BoolVar(&opts.NoBindtests, "no-bindtests", false, "skip the bindtests replay and trace")
	cmd.Flags().BoolVar(&opts.NoStore, "no-store", false, "disable the doc cache and run journal")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return fail(formatter, err)
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if len(opts.Targets) > 0 {
		cfg.Targets = opts.Targets
	}
	if opts.APIDir != "" {
		cfg.APIDir = opts.APIDir
	}
	if opts.NoBindtests {
		cfg.Bindtests = false
	}
	if opts.NoStore {
		cfg.Store = ""
	}
	if err := cfg.Validate(); err != nil {
		return fail(formatter, err)
	}

	formatter.VerboseLog("Generating %v into %s", cfg.Targets, cfg.OutputDir)
	res, err := generator.Run(cmd.Context(), cfg)
	if err != nil {
		return fail(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}

	w := formatter.Writer
	formatter.Heading("Generated %d file(s) in %s", len(res.Files), cfg.OutputDir)
	for _, f := range res.Files {
		switch {
		case f.Changed:
			fmt.Fprintf(w, "  %s %s (%d lines)\n", okStyle.Render("wrote"), f.Path, f.Lines)
		case opts.Verbose:
			fmt.Fprintf(w, "  %s %s\n", dimStyle.Render("same "), f.Path)
		}
	}
	fmt.Fprintf(w, "\n%d written, %d unchanged, %d lines\n",
		res.Stats.FilesWritten, res.Stats.FilesUnchanged, res.Stats.Lines)
	if res.RunID != "" {
		fmt.Fprintf(w, "Run %s (doc cache: %d hits, %d misses)\n", res.RunID, res.DocCacheHits, res.DocCacheMisses)
	}
	return nil
}
