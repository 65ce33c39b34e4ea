package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/worship-roster/cmd/cli/commands"
	"github.com/jakechorley/worship-roster/internal/config"
	"github.com/jakechorley/worship-roster/pkg/postgres"
	"github.com/jakechorley/worship-roster/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
	pg  *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Worship Roster CLI - Manage volunteer availability and rosters",
		Long:  `A CLI tool for declaring availability for upcoming services, building rosters and publishing them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if pg != nil {
				pg.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().StringVar(&app.Phone, "phone", "", "Phone number to log in with")
	rootCmd.PersistentFlags().StringVar(&app.PIN, "pin", "", "PIN to log in with")

	rootCmd.AddCommand(commands.SignUpCmd(app))
	rootCmd.AddCommand(commands.DatesCmd(app))
	rootCmd.AddCommand(commands.SkillsCmd(app))
	rootCmd.AddCommand(commands.ProfileCmd(app))
	rootCmd.AddCommand(commands.SaveProfileCmd(app))
	rootCmd.AddCommand(commands.AvailabilityCmd(app))
	rootCmd.AddCommand(commands.SetAvailableCmd(app))
	rootCmd.AddCommand(commands.ToggleSkillCmd(app))
	rootCmd.AddCommand(commands.CommentCmd(app))
	rootCmd.AddCommand(commands.RosterCmd(app))
	rootCmd.AddCommand(commands.AssignCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.UnpublishCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		if app.Logger != nil {
			app.Logger.Warn("Command failed", zap.Error(err))
			_ = app.Logger.Sync()
		}
		fmt.Fprintf(os.Stderr, "✗ %s\n", commands.DisplayError(err))
		os.Exit(1)
	}
}

// initApp sets up config, logger and database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// Config comes first so the logger knows where to write
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(env, app.Cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application",
		zap.String("environment", env),
		zap.String("roster_weekday", app.Cfg.RosterWeekday),
		zap.Duration("query_timeout", app.Cfg.QueryTimeout))

	app.Logger.Debug("Connecting to database")
	pg, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL, app.Cfg.QueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	applied, err := pg.RunMigrations(app.Ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if len(applied) > 0 {
		app.Logger.Info("Applied migrations", zap.Strings("migrations", applied))
	}

	app.Database = pg
	app.Logger.Debug("Database initialized successfully")

	return nil
}
