package cli

import (
	"fmt"

	"github.com/alexanderramin/punchcard/internal/cli/formatter"
	"github.com/alexanderramin/punchcard/internal/domain"
	"github.com/spf13/cobra"
)

func newPunchCmd(app *App) *cobra.Command {
	var itemName, date string

	cmd := &cobra.Command{
		Use:   "punch",
		Short: "Record a punch for the selected item",
		Args:  cobra.NoArgs,
		RunE: alertOnUserError(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := itemName
			if name == "" {
				selected, err := app.Items.Selected(ctx)
				if err != nil {
					return err
				}
				name = selected
			}
			if date == "" {
				date = domain.DateKey(app.now())
			}

			item, err := app.Items.Punch(ctx, name, date)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPunchResult(item, date))
			return nil
		}),
	}

	cmd.Flags().StringVar(&itemName, "item", "", "Item to punch (default: selected item)")
	cmd.Flags().StringVar(&date, "date", "", "Date to punch, YYYY-MM-DD (default: today)")

	return cmd
}

func newCancelCmd(app *App) *cobra.Command {
	var itemName, date string

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Remove the latest punch of a day",
		Args:  cobra.NoArgs,
		RunE: alertOnUserError(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, err := resolveItemName(ctx, app, itemName)
			if err != nil {
				return err
			}
			if date == "" {
				date = domain.DateKey(app.now())
			}

			removed, err := app.Items.CancelPunch(ctx, name, date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !removed {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("No punch to cancel for %s on %s", name, date)))
				return nil
			}
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Cancelled the last punch of %s on %s", name, date)))
			return nil
		}),
	}

	cmd.Flags().StringVar(&itemName, "item", "", "Item to change (default: selected item)")
	cmd.Flags().StringVar(&date, "date", "", "Date to change, YYYY-MM-DD (default: today)")

	return cmd
}
