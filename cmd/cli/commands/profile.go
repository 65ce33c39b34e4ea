package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jakechorley/worship-roster/pkg/core/model"
	"github.com/jakechorley/worship-roster/pkg/core/services"
	"github.com/jakechorley/worship-roster/pkg/errs"
)

// SkillsCmd creates the skills command
func SkillsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "skills",
		Short: "List the skills members can be rostered to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			skills, err := services.ListSkills(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			renderSkills(cmd.OutOrStdout(), skills)
			return nil
		},
	}
}

// ProfileCmd creates the profile command
func ProfileCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your display name and skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.RequireSession()
			if err != nil {
				return err
			}
			member, _ := cmd.Flags().GetString("member")

			profile, err := services.GetProfile(app.Ctx, app.Database, app.Logger, session, targetMember(session, member))
			if err != nil {
				return err
			}
			skills, err := services.ListSkills(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			renderProfile(cmd.OutOrStdout(), profile, skillNameMap(skills))
			return nil
		},
	}

	cmd.Flags().String("member", "", "Phone number of the member to show (admins only)")

	return cmd
}

// SaveProfileCmd creates the saveProfile command
func SaveProfileCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saveProfile",
		Short: "Set your display name and/or replace your skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.RequireSession()
			if err != nil {
				return err
			}
			member, _ := cmd.Flags().GetString("member")
			member = targetMember(session, member)

			current, err := services.GetProfile(app.Ctx, app.Database, app.Logger, session, member)
			if err != nil {
				return err
			}
			name, skillIDs, err := profileChanges(cmd.Flags(), current)
			if err != nil {
				return err
			}

			profile, err := services.SaveProfile(app.Ctx, app.Database, app.Logger, session, member, name, skillIDs)
			if err != nil {
				return err
			}
			skills, err := services.ListSkills(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "\n✓ Profile saved")
			renderProfile(cmd.OutOrStdout(), profile, skillNameMap(skills))
			return nil
		},
	}

	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("skills", "", "Comma separated skill ids, e.g. 1,3")
	cmd.Flags().String("member", "", "Phone number of the member to update (admins only)")

	return cmd
}

// profileChanges applies the --name and --skills flags that were given on top of the current profile
func profileChanges(flags *pflag.FlagSet, current *model.Profile) (string, []int, error) {
	if !flags.Changed("name") && !flags.Changed("skills") {
		return "", nil, errs.Validation("save profile", "give --name, --skills or both")
	}

	name := current.DisplayName
	if flags.Changed("name") {
		name, _ = flags.GetString("name")
	}

	skillIDs := current.SkillIDs
	if flags.Changed("skills") {
		skillList, _ := flags.GetString("skills")
		ids, err := parseSkillIDs(skillList)
		if err != nil {
			return "", nil, err
		}
		skillIDs = ids
	}
	return name, skillIDs, nil
}
