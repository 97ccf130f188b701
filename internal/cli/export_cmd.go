package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/punchcard/internal/cli/formatter"
	"github.com/alexanderramin/punchcard/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// intervalValue is a pflag.Value accepting weekly, monthly or yearly.
type intervalValue struct {
	kind *domain.IntervalKind
}

var _ pflag.Value = intervalValue{}

func (v intervalValue) String() string {
	if v.kind == nil {
		return ""
	}
	return string(*v.kind)
}

func (v intervalValue) Set(s string) error {
	kind, err := domain.ParseIntervalKind(s)
	if err != nil {
		return err
	}
	*v.kind = kind
	return nil
}

func (v intervalValue) Type() string { return "interval" }

func intervalNames() string {
	names := make([]string, len(domain.IntervalKinds))
	for i, k := range domain.IntervalKinds {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}

func newExportCmd(app *App) *cobra.Command {
	kind := domain.IntervalWeekly
	var dir string

	cmd := &cobra.Command{
		Use:   "export [NAME]",
		Short: "Export an item's punches for the current week, month or year",
		Args:  cobra.MaximumNArgs(1),
		RunE: alertOnUserError(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, err := resolveItemName(ctx, app, firstArg(args))
			if err != nil {
				return err
			}

			exporter := app.Export
			if dir != "" {
				if app.ExportTo == nil {
					return fmt.Errorf("--dir is not supported")
				}
				exporter = app.ExportTo(dir)
			}

			exp, err := exporter.ExportRecords(ctx, name, kind)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExportResult(exp))
			return nil
		}),
	}

	cmd.Flags().VarP(intervalValue{kind: &kind}, "interval", "i", "Interval to export: "+intervalNames())
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write the export into")
	_ = cmd.RegisterFlagCompletionFunc("interval", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return strings.Split(intervalNames(), "|"), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
