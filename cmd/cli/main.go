package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mwhitfield/safari-backoffice/cmd/cli/commands"
	"github.com/mwhitfield/safari-backoffice/internal/config"
	"github.com/mwhitfield/safari-backoffice/pkg/clients/apiclient"
	"github.com/mwhitfield/safari-backoffice/pkg/session"
	"github.com/mwhitfield/safari-backoffice/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Safari back-office CLI - manage accommodation logs and reference data",
		Long:  `A CLI tool for the travel back office: accommodation log entries, reference data, referral matching and trip reports.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment suffix for the config file (e.g. test)")

	// Add all commands
	rootCmd.AddCommand(commands.LoginCmd(appRef()))
	rootCmd.AddCommand(commands.LogoutCmd(appRef()))
	rootCmd.AddCommand(commands.WhoamiCmd(appRef()))
	rootCmd.AddCommand(commands.ListLogsCmd(appRef()))
	rootCmd.AddCommand(commands.AddLogCmd(appRef()))
	rootCmd.AddCommand(commands.EditLogCmd(appRef()))
	rootCmd.AddCommand(commands.DeleteLogCmd(appRef()))
	rootCmd.AddCommand(commands.BulkDuplicateCmd(appRef()))
	rootCmd.AddCommand(commands.BulkDeleteCmd(appRef()))
	rootCmd.AddCommand(commands.BookingChannelsCmd(appRef()))
	rootCmd.AddCommand(commands.CountriesCmd(appRef()))
	rootCmd.AddCommand(commands.PropertyDetailsCmd(appRef()))
	rootCmd.AddCommand(commands.ReferralsCmd(appRef()))
	rootCmd.AddCommand(commands.ActionItemsCmd(appRef()))
	rootCmd.AddCommand(commands.TripReportCmd(appRef()))
	rootCmd.AddCommand(commands.InteractiveCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext; it is allocated once so command
// constructors can close over it before initApp fills it in.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, API client, and session store
func initApp() error {
	var err error
	appRef()
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application", zap.String("environment", env))

	// Load configuration
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded", zap.String("api_base_url", app.Cfg.APIBaseURL))

	// Initialize the unauthenticated API client (token endpoint only)
	app.API = apiclient.NewClient(app.Cfg.APIBaseURL, app.Cfg.RequestTimeout())

	// Initialize the session store
	sessionPath := app.Cfg.SessionFile
	if sessionPath == "" {
		sessionPath, err = session.DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to resolve session path: %w", err)
		}
	}
	app.Session, err = session.NewStore(sessionPath, app.API, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	return nil
}
