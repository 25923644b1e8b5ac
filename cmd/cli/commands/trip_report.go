package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/safari-backoffice/pkg/clients/apiclient"
	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
	"github.com/mwhitfield/safari-backoffice/pkg/core/services"
)

// TripReportCmd creates the tripReport command group
func TripReportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tripReport",
		Short: "Preview and submit staff trip reports",
		Long: `Trip reports are authored as yaml documents: travelers, property segments
with per-theme ratings (0-10 or n/a), and reviewed activities. Submitting
shows the rendered summary first and asks for confirmation.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "preview <file>",
		Short: "Render a report document without saving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}

			report, err := services.LoadTripReport(args[0])
			if err != nil {
				return err
			}
			catalog, err := propertyCatalog(app, api)
			if err != nil {
				return app.HandleAPIError(err)
			}

			if errs := services.ValidateTripReport(report); !errs.OK() {
				printValidationErrors(errs)
			}
			fmt.Println()
			fmt.Print(services.RenderTripReportSummary(report, catalog))
			return nil
		},
	})

	submitCmd := &cobra.Command{
		Use:   "submit <file>",
		Short: "Save a report as a draft, or publish with --publish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}
			publish, _ := cmd.Flags().GetBool("publish")
			skipConfirm, _ := cmd.Flags().GetBool("yes")

			report, err := services.LoadTripReport(args[0])
			if err != nil {
				return err
			}
			catalog, err := propertyCatalog(app, api)
			if err != nil {
				return app.HandleAPIError(err)
			}

			if errs := services.ValidateTripReport(report); !errs.OK() {
				printValidationErrors(errs)
				return fmt.Errorf("report not saved")
			}

			fmt.Println()
			fmt.Print(services.RenderTripReportSummary(report, catalog))

			if !skipConfirm {
				action := "save this report as a draft"
				if publish {
					action = "publish this report"
				}
				fmt.Printf("\n%s? [y/N] ", strings.ToUpper(action[:1])+action[1:])
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			summary, errs, err := services.SaveTripReport(app.Ctx, api, app.Logger, report, publish)
			if err != nil {
				return app.HandleAPIError(err)
			}
			if !errs.OK() {
				printValidationErrors(errs)
				return fmt.Errorf("report not saved")
			}

			if publish {
				fmt.Println("\n✓ Published")
			} else {
				fmt.Println("\n✓ Draft saved")
			}
			for _, line := range summary {
				fmt.Printf("  %s\n", line)
			}
			return nil
		},
	}
	submitCmd.Flags().Bool("publish", false, "Publish as final instead of saving a draft")
	submitCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	cmd.AddCommand(submitCmd)

	travelersCmd := &cobra.Command{
		Use:   "travelers [query]",
		Short: "Suggest staff travelers for a report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			added, _ := cmd.Flags().GetStringSlice("added")

			users, err := api.ListUsers(app.Ctx)
			if err != nil {
				return app.HandleAPIError(err)
			}

			suggestions := services.SuggestTravelers(users, query, added)
			fmt.Printf("\n%d suggestions:\n", len(suggestions))
			for _, u := range suggestions {
				fmt.Printf("- %s\n", u.Email)
			}
			return nil
		},
	}
	travelersCmd.Flags().StringSlice("added", nil, "Emails already on the report")
	cmd.AddCommand(travelersCmd)

	return cmd
}

func propertyCatalog(app *AppContext, api *apiclient.Client) (map[string]model.Property, error) {
	properties, err := api.ListProperties(app.Ctx)
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]model.Property, len(properties))
	for _, p := range properties {
		catalog[p.ID] = p
	}
	return catalog, nil
}
