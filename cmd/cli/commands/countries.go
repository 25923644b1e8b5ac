package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/safari-backoffice/pkg/core/services"
)

// CountriesCmd creates the countries command group
func CountriesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List and maintain countries",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}
			countries, err := api.ListCountries(app.Ctx)
			if err != nil {
				return app.HandleAPIError(err)
			}
			fmt.Printf("\nFound %d countries:\n\n", len(countries))
			for _, c := range countries {
				fmt.Printf("- %s  %s\n", c.ID, c.Name)
			}
			return nil
		},
	})

	saveCmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Create a country, or rename one with --id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}
			id, _ := cmd.Flags().GetString("id")
			coreDestination, _ := cmd.Flags().GetString("core-destination")

			summary, err := services.SaveCountry(app.Ctx, api, app.Logger, id, args[0], coreDestination)
			if err != nil {
				return app.HandleAPIError(err)
			}
			fmt.Println("\n✓ Saved")
			for _, line := range summary {
				fmt.Printf("  %s\n", line)
			}
			return nil
		},
	}
	saveCmd.Flags().String("id", "", "Existing country id (omit to create)")
	saveCmd.Flags().String("core-destination", "", "Core destination id")
	cmd.AddCommand(saveCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a country (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, identity, err := app.Authed()
			if err != nil {
				return err
			}

			err = services.DeleteCountry(app.Ctx, api, app.Logger, args[0], identity)
			if err != nil {
				if printDeleteBlocked(err) {
					return fmt.Errorf("country not deleted")
				}
				return app.HandleAPIError(err)
			}
			fmt.Printf("✓ Deleted country %s\n", args[0])
			return nil
		},
	})

	return cmd
}
