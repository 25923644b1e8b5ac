package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/safari-backoffice/pkg/core/services"
)

// ReferralsCmd creates the referrals command group
func ReferralsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "referrals",
		Short: "Match client referrals to log entries",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clients",
		Short: "List client records awaiting a referral match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}
			clients, err := api.ListClients(app.Ctx)
			if err != nil {
				return app.HandleAPIError(err)
			}

			unmatched := 0
			fmt.Println()
			for _, c := range clients {
				if c.MatchedLogID != "" {
					continue
				}
				unmatched++
				referral := c.ReferralType
				if c.ReferredByName != "" {
					referral += " via " + c.ReferredByName
				}
				fmt.Printf("- %s  %s %s (%s)\n", c.ID, c.FirstName, c.LastName, referral)
			}
			fmt.Printf("\n%d of %d clients unmatched\n", unmatched, len(clients))
			return nil
		},
	})

	relatedCmd := &cobra.Command{
		Use:   "related <identifier>",
		Short: "Look up log entries related to a traveler or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}
			identifierType, _ := cmd.Flags().GetString("type")
			page, _ := cmd.Flags().GetInt("page")

			result, err := services.FindRelatedEntries(app.Ctx, api, app.Logger, args[0], identifierType, page)
			if err != nil {
				return app.HandleAPIError(err)
			}

			fmt.Printf("\n%d related entries (page %d/%d):\n\n", result.Total, result.Page, result.Pages)
			for _, e := range result.Entries {
				fmt.Printf("- %s  %-25s %s → %s  %s (%s)\n",
					e.ID, e.PrimaryTraveler, e.DateIn, e.DateOut, e.PropertyName, e.ConsultantName)
			}
			return nil
		},
	}
	relatedCmd.Flags().String("type", "traveler", "Identifier type (traveler, email)")
	relatedCmd.Flags().Int("page", 1, "Result page")
	cmd.AddCommand(relatedCmd)

	matchCmd := &cobra.Command{
		Use:   "match <client_id>",
		Short: "Record a referral match for a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}
			logID, _ := cmd.Flags().GetString("log")
			referredBy, _ := cmd.Flags().GetString("referred-by")

			summary, err := services.MatchReferral(app.Ctx, api, app.Logger, args[0], logID, referredBy)
			if err != nil {
				return app.HandleAPIError(err)
			}
			fmt.Println("\n✓ Matched")
			for _, line := range summary {
				fmt.Printf("  %s\n", line)
			}
			return nil
		},
	}
	matchCmd.Flags().String("log", "", "Matched accommodation log id")
	matchCmd.Flags().String("referred-by", "", "Referring client id")
	cmd.AddCommand(matchCmd)

	return cmd
}
