package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/worship-roster/pkg/core/model"
	"github.com/jakechorley/worship-roster/pkg/core/services"
)

// RosterCmd creates the roster command
func RosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "roster [date]",
		Short: "Show who is available and, once published, who is rostered on a date (defaults to the next date)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := rosterDate(app, args)
			if err != nil {
				return err
			}

			session, err := app.OptionalSession()
			if err != nil {
				return err
			}

			view, err := services.LoadRosterView(app.Ctx, app.Database, app.Logger, session, date)
			if err != nil {
				return err
			}

			renderRoster(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <date> [phone:skill_id...]",
		Short: "Replace the roster for a date with the given assignments (admins only)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			session, err := app.RequireSession()
			if err != nil {
				return err
			}

			if err := services.SaveAssignments(app.Ctx, app.Database, app.Logger, session, args[0], assignments); err != nil {
				return err
			}

			view, err := services.LoadRosterView(app.Ctx, app.Database, app.Logger, session, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Roster saved for %s (%d assignments)\n", formatDate(args[0]), assignedCount(view))
			renderRoster(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

// rosterDate is the date argument if given, otherwise the next upcoming roster date
func rosterDate(app *AppContext, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	dates, err := upcomingDates(app, 1)
	if err != nil {
		return "", err
	}
	return dates[0], nil
}

// assignedCount is the number of member slots filled in the view
func assignedCount(view *model.RosterView) int {
	n := 0
	for _, phones := range view.Assignments {
		n += len(phones)
	}
	return n
}

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return publishStateCmd(app, "publish <date>", "Make the roster for a date visible to everyone (admins only)", true)
}

// UnpublishCmd creates the unpublish command
func UnpublishCmd(app *AppContext) *cobra.Command {
	return publishStateCmd(app, "unpublish <date>", "Hide the roster for a date again (admins only)", false)
}

func publishStateCmd(app *AppContext, use, short string, published bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.RequireSession()
			if err != nil {
				return err
			}

			if err := services.SetPublished(app.Ctx, app.Database, app.Logger, session, args[0], published); err != nil {
				return err
			}

			state := "published"
			if !published {
				state = "unpublished"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Roster for %s %s\n\n", formatDate(args[0]), state)
			return nil
		},
	}
}
