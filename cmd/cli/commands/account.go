package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/worship-roster/pkg/core/services"
)

// SignUpCmd creates the signUp command
func SignUpCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "signUp <phone> <pin>",
		Short: "Register a new member with a phone number and PIN",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			phone, pin := args[0], args[1]

			if err := services.SignUp(app.Ctx, app.Database, app.Logger, app.Cfg.PhoneNumberLength, phone, pin); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Signed up %s. Log in with --phone %s --pin <pin>\n\n", phone, phone)
			return nil
		},
	}
}
