package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bindgen/internal/generator"
	"github.com/roach88/bindgen/internal/ir"
	"github.com/roach88/bindgen/internal/strutil"
)

// ActionRow is one line of "list actions".
type ActionRow struct {
	Name       string `json:"name"`
	Ret        string `json:"ret"`
	Args       int    `json:"args"`
	OptArgs    int    `json:"optargs"`
	ProcNr     int    `json:"proc_nr,omitempty"`
	Visibility string `json:"visibility"`
	Optional   string `json:"optional,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

// StructRow is one line of "list structs".
type StructRow struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// EventRow is one line of "list events".
type EventRow struct {
	Name string `json:"name"`
	Bit  uint   `json:"bit"`
	Mask string `json:"mask"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var daemonOnly bool

	cmd := &cobra.Command{
		Use:   "list [actions|structs|events]",
		Short: "List what the API describes",
		Long: `List the actions (default), structs or events of the API, in the
canonical order every emitter uses.`,
		Args:          cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs:     []string{"actions", "structs", "events"},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			what := "actions"
			if len(args) == 1 {
				what = args[0]
			}
			return runList(rootOpts, what, daemonOnly, cmd)
		},
	}

	cmd.Flags().BoolVar(&daemonOnly, "daemon", false, "only actions with a procedure number")

	return cmd
}

func runList(opts *RootOptions, what string, daemonOnly bool, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := loadConfig(opts)
	if err != nil {
		return fail(formatter, err)
	}
	api, err := generator.LoadAPI(cfg)
	if err != nil {
		return fail(formatter, err)
	}

	var data any
	var table [][]string
	switch what {
	case "actions":
		rows := actionRows(api, daemonOnly)
		data = rows
		for _, r := range rows {
			proc := "-"
			if r.ProcNr > 0 {
				proc = strconv.Itoa(r.ProcNr)
			}
			table = append(table, []string{r.Name, r.Ret, proc, r.Visibility, r.Optional})
		}
	case "structs":
		var rows []StructRow
		for _, s := range api.SortedStructs() {
			row := StructRow{Name: s.Name}
			for _, f := range s.Fields {
				row.Fields = append(row.Fields, f.Name+":"+f.Kind.String())
			}
			rows = append(rows, row)
			table = append(table, []string{s.Name, strings.Join(row.Fields, " ")})
		}
		data = rows
	case "events":
		var rows []EventRow
		for _, e := range api.Events {
			row := EventRow{Name: e.Name, Bit: e.Bit, Mask: fmt.Sprintf("0x%x", e.Mask())}
			rows = append(rows, row)
			table = append(table, []string{row.Name, strconv.FormatUint(uint64(row.Bit), 10), row.Mask})
		}
		data = rows
	}

	if formatter.Format == "json" {
		return formatter.Success(data)
	}
	for _, line := range strutil.Columns(table, "  ") {
		fmt.Fprintln(formatter.Writer, strings.TrimRight(line, " "))
	}
	return nil
}

func actionRows(api *ir.API, daemonOnly bool) []ActionRow {
	var rows []ActionRow
	for _, a := range api.SortedActions() {
		if daemonOnly && !a.IsDaemon() {
			continue
		}
		ret := a.Style.Ret.Kind.String()
		if a.Style.Ret.Struct != "" {
			ret += "(" + a.Style.Ret.Struct + ")"
		}
		rows = append(rows, ActionRow{
			Name:       a.Name,
			Ret:        ret,
			Args:       len(a.Style.Args),
			OptArgs:    len(a.Style.OptArgs),
			ProcNr:     a.ProcNr,
			Visibility: a.Visibility.String(),
			Optional:   a.Optional,
			Deprecated: a.IsDeprecated(),
		})
	}
	return rows
}
