package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/worship-roster/pkg/core/services"
	"github.com/jakechorley/worship-roster/pkg/errs"
)

// AvailabilityCmd creates the availability command
func AvailabilityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "availability [date]",
		Short: "Show your availability for a date (defaults to all upcoming dates)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.RequireSession()
			if err != nil {
				return err
			}
			member, _ := cmd.Flags().GetString("member")
			member = targetMember(session, member)

			skills, err := services.ListSkills(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}
			names := skillNameMap(skills)

			if len(args) == 1 {
				availability, err := services.GetAvailability(app.Ctx, app.Database, app.Logger, session, member, args[0])
				if err != nil {
					return err
				}
				renderAvailability(cmd.OutOrStdout(), availability, names)
				return nil
			}

			dates, err := upcomingDates(app, app.Cfg.UpcomingDates)
			if err != nil {
				return err
			}
			list, err := services.ListAvailability(app.Ctx, app.Database, app.Logger, session, member, dates)
			if err != nil {
				return err
			}

			app.Logger.Debug("availability command", zap.String("member", member), zap.Int("dates", len(list)))

			renderAvailabilityList(cmd.OutOrStdout(), list, names)
			return nil
		},
	}

	cmd.Flags().String("member", "", "Phone number of the member to show (admins only)")

	return cmd
}

// SetAvailableCmd creates the setAvailable command
func SetAvailableCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setAvailable <date> <true|false>",
		Short: "Declare or withdraw your availability for a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			available, err := strconv.ParseBool(args[1])
			if err != nil {
				return errs.Validation("set available", fmt.Sprintf("expected true or false, got %q", args[1]))
			}

			session, err := app.RequireSession()
			if err != nil {
				return err
			}
			member, _ := cmd.Flags().GetString("member")

			availability, err := services.SetAvailable(app.Ctx, app.Database, app.Logger, session, targetMember(session, member), args[0], available)
			if err != nil {
				return err
			}
			skills, err := services.ListSkills(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			renderAvailability(cmd.OutOrStdout(), availability, skillNameMap(skills))
			return nil
		},
	}

	cmd.Flags().String("member", "", "Phone number of the member to update (admins only)")

	return cmd
}

// ToggleSkillCmd creates the toggleSkill command
func ToggleSkillCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggleSkill <date> <skill_id>",
		Short: "Switch one skill on or off for a date you are available",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			skillID, err := strconv.Atoi(args[1])
			if err != nil {
				return errs.Validation("toggle skill", fmt.Sprintf("skill id must be a number, got %q", args[1]))
			}

			session, err := app.RequireSession()
			if err != nil {
				return err
			}
			member, _ := cmd.Flags().GetString("member")

			availability, err := services.ToggleSkillForDate(app.Ctx, app.Database, app.Logger, session, targetMember(session, member), args[0], skillID)
			if err != nil {
				return err
			}
			skills, err := services.ListSkills(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			renderAvailability(cmd.OutOrStdout(), availability, skillNameMap(skills))
			return nil
		},
	}

	cmd.Flags().String("member", "", "Phone number of the member to update (admins only)")

	return cmd
}

// CommentCmd creates the comment command
func CommentCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <date> <text...>",
		Short: "Leave a comment for a date you are available",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.RequireSession()
			if err != nil {
				return err
			}
			member, _ := cmd.Flags().GetString("member")
			text := strings.Join(args[1:], " ")

			availability, err := services.SetComment(app.Ctx, app.Database, app.Logger, session, targetMember(session, member), args[0], text)
			if err != nil {
				return err
			}
			skills, err := services.ListSkills(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			renderAvailability(cmd.OutOrStdout(), availability, skillNameMap(skills))
			return nil
		},
	}

	cmd.Flags().String("member", "", "Phone number of the member to update (admins only)")

	return cmd
}
