package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/punchcard/internal/cli/formatter"
	"github.com/alexanderramin/punchcard/internal/domain"
	"github.com/alexanderramin/punchcard/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and terminal capabilities used by CLI commands.
type App struct {
	Items  service.ItemService
	Export service.ExportService

	// ExportTo returns an exporter writing into dir, for --dir. Nil
	// disables the flag.
	ExportTo func(dir string) service.ExportService

	// Confirm asks before deleting an item. Nil means deletion requires --yes.
	Confirm service.Confirmer

	// Interactive reports whether stdin is a terminal.
	Interactive func() bool

	// Now is the clock for default dates and relative times.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.Interactive != nil && a.Interactive()
}

// NewRootCmd creates the top-level "punchcard" command and registers all
// subcommands against the provided App. Without a subcommand it opens the
// board when attached to a terminal and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "punchcard",
		Short:         "Punch-card habit tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runBoard(cmd.Context(), app)
		},
	}

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newRemoveCmd(app),
		newSelectCmd(app),
		newPunchCmd(app),
		newCancelCmd(app),
		newShowCmd(app),
		newExportCmd(app),
		newBoardCmd(app),
	)

	return root
}

// alertOnUserError turns input validation failures into a warning on
// stderr so they do not fail the command.
func alertOnUserError(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil && domain.IsUserError(err) {
			fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warning(alertText(err)))
			return nil
		}
		return err
	}
}

// alertText is the message shown for a user error.
func alertText(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyName):
		return "Please enter an item name."
	case errors.Is(err, domain.ErrNoSelection):
		return "Please select an item first (punchcard select NAME or --item)."
	default:
		return err.Error()
	}
}
