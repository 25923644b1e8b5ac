package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/safari-backoffice/pkg/core/services"
)

// BookingChannelsCmd creates the bookingChannels command group
func BookingChannelsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookingChannels",
		Short: "List and maintain booking channels",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List booking channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}
			channels, err := api.ListBookingChannels(app.Ctx)
			if err != nil {
				return app.HandleAPIError(err)
			}
			fmt.Printf("\nFound %d booking channels:\n\n", len(channels))
			for _, c := range channels {
				fmt.Printf("- %s  %s\n", c.ID, c.Name)
			}
			return nil
		},
	})

	saveCmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Create a booking channel, or rename one with --id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}
			id, _ := cmd.Flags().GetString("id")

			summary, err := services.SaveBookingChannel(app.Ctx, api, app.Logger, id, args[0])
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
	saveCmd.Flags().String("id", "", "Existing channel id (omit to create)")
	cmd.AddCommand(saveCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a booking channel (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, identity, err := app.Authed()
			if err != nil {
				return err
			}

			err = services.DeleteBookingChannel(app.Ctx, api, app.Logger, args[0], identity)
			if err != nil {
				if printDeleteBlocked(err) {
					return fmt.Errorf("channel not deleted")
				}
				return app.HandleAPIError(err)
			}
			fmt.Printf("✓ Deleted booking channel %s\n", args[0])
			return nil
		},
	})

	return cmd
}

// printDeleteBlocked renders a dependency-blocked delete and reports whether
// the error was one.
func printDeleteBlocked(err error) bool {
	var blocked *services.DeleteBlockedError
	if !errors.As(err, &blocked) {
		return false
	}

	fmt.Printf("\n❌ Delete blocked: %d entries still reference this record\n", len(blocked.Shown)+blocked.Overflow)
	for _, entry := range blocked.Shown {
		fmt.Printf("  - %s\n", entry)
	}
	if blocked.Overflow > 0 {
		fmt.Printf("  ... and %d more\n", blocked.Overflow)
	}
	return true
}
