package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/punchcard/internal/cli/formatter"
	"github.com/alexanderramin/punchcard/internal/domain"
	"github.com/alexanderramin/punchcard/internal/service"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add an item to track",
		Args:  cobra.ExactArgs(1),
		RunE: alertOnUserError(func(cmd *cobra.Command, args []string) error {
			item, err := app.Items.AddItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added %s", item.Name)))
			return nil
		}),
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List items with their punch counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			items, err := app.Items.List(ctx)
			if err != nil {
				return err
			}
			selected, err := app.Items.Selected(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItemList(items, selected, app.now()))
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Delete an item and all of its punches",
		Args:    cobra.ExactArgs(1),
		RunE: alertOnUserError(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]
			if _, err := app.Items.Get(ctx, name); err != nil {
				return err
			}

			confirm := app.Confirm
			switch {
			case yes:
				confirm = service.AlwaysConfirm
			case confirm == nil || !app.interactive():
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warning("Not deleting without confirmation; pass --yes to skip the prompt."))
				return nil
			}

			deleted, err := app.Items.DeleteItem(ctx, name, confirm)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !deleted {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Kept %s", name)))
				return nil
			}
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Deleted %s", name)))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	return cmd
}

func newSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select NAME",
		Short: "Select the item punched by default",
		Args:  cobra.ExactArgs(1),
		RunE: alertOnUserError(func(cmd *cobra.Command, args []string) error {
			if err := app.Items.Select(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Selected %s", args[0])))
			return nil
		}),
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [NAME]",
		Short: "Show every punch of an item",
		Args:  cobra.MaximumNArgs(1),
		RunE: alertOnUserError(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, err := resolveItemName(ctx, app, firstArg(args))
			if err != nil {
				return err
			}
			item, err := app.Items.Get(ctx, name)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItemRecords(item, app.now().Location()))
			return nil
		}),
	}
}

// resolveItemName returns name, or the selected item when name is empty.
func resolveItemName(ctx context.Context, app *App, name string) (string, error) {
	if name != "" {
		return name, nil
	}
	return selectedOrErr(ctx, app)
}

func selectedOrErr(ctx context.Context, app *App) (string, error) {
	selected, err := app.Items.Selected(ctx)
	if err != nil {
		return "", err
	}
	if selected == "" {
		return "", domain.ErrNoSelection
	}
	return selected, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
