package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
	"github.com/mwhitfield/safari-backoffice/pkg/core/services"
)

// BulkDuplicateCmd creates the bulkDuplicate command
func BulkDuplicateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulkDuplicate <entry_id>...",
		Short: "Duplicate entries under a new traveler",
		Long: `Copy the selected entries for a different traveler. The selection must
share a traveler, consultant and agency; the copies keep every field except
the traveler and pax count.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}

			traveler, _ := cmd.Flags().GetString("traveler")
			pax, _ := cmd.Flags().GetString("pax")

			entries, err := api.ListAccommodationLogs(app.Ctx)
			if err != nil {
				return app.HandleAPIError(err)
			}
			selection, err := selectEntries(entries, args)
			if err != nil {
				return err
			}

			result, errs, err := services.DuplicateEntries(app.Ctx, api, app.Logger, selection, traveler, pax)
			if err != nil {
				return app.HandleAPIError(err)
			}
			if !errs.OK() {
				printValidationErrors(errs)
				return fmt.Errorf("entries not duplicated")
			}

			fmt.Printf("\n✓ Duplicated %d entries for %s\n", len(selection), traveler)
			for _, line := range services.SummarizeUpsert(result) {
				fmt.Printf("  %s\n", line)
			}
			return nil
		},
	}

	cmd.Flags().String("traveler", "", "Traveler for the copies, as \"Last/First\"")
	cmd.Flags().String("pax", "", "Pax count for the copies (1-50)")

	return cmd
}

// BulkDeleteCmd creates the bulkDelete command
func BulkDeleteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bulkDelete <entry_id>...",
		Short: "Delete several entries (admin only)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, identity, err := app.Authed()
			if err != nil {
				return err
			}

			result, err := services.BulkDeleteEntries(app.Ctx, api, app.Logger, args, identity)
			if err != nil {
				return app.HandleAPIError(err)
			}

			fmt.Printf("\n✓ Deleted %d of %d entries\n", len(result.Deleted), len(args))
			for id, failure := range result.Failed {
				fmt.Printf("  ✗ %s: %v\n", id, app.HandleAPIError(failure))
			}
			return nil
		},
	}
}

func selectEntries(entries []model.AccommodationLogEntry, ids []string) ([]model.AccommodationLogEntry, error) {
	byID := make(map[string]model.AccommodationLogEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	selection := make([]model.AccommodationLogEntry, 0, len(ids))
	for _, id := range ids {
		entry, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("entry %s not found", id)
		}
		selection = append(selection, entry)
	}
	return selection, nil
}
