package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
	"github.com/mwhitfield/safari-backoffice/pkg/core/services"
)

// EditLogCmd creates the editLog command
func EditLogCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editLog <entry_id>",
		Short: "Edit an existing accommodation log entry",
		Long: `Edit one entry. Fields default to the entry's current values; pass flags
to change them. The property and channel take the same specs as addLog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID := args[0]

			api, identity, err := app.Authed()
			if err != nil {
				return err
			}

			entries, err := api.ListAccommodationLogs(app.Ctx)
			if err != nil {
				return app.HandleAPIError(err)
			}
			var entry *model.AccommodationLogEntry
			for i := range entries {
				if entries[i].ID == entryID {
					entry = &entries[i]
					break
				}
			}
			if entry == nil {
				return fmt.Errorf("entry %s not found", entryID)
			}

			form := services.NewLogForm()
			form.PrimaryTraveler = entry.PrimaryTraveler
			form.NumPaxRaw = fmt.Sprintf("%d", entry.NumPax)
			form.ConsultantID = entry.ConsultantID
			form.AgencyID = entry.AgencyID
			form.Rows[0] = services.LogFormRow{
				Key:      form.Rows[0].Key,
				EntryID:  entry.ID,
				Property: model.PropertyRef{Existing: &model.ExistingPropertyRef{ID: entry.PropertyID}},
				Channel:  model.ChannelRef{ID: entry.BookingChannelID},
				DateIn:   entry.DateIn,
				DateOut:  entry.DateOut,
			}

			if v, _ := cmd.Flags().GetString("traveler"); v != "" {
				form.PrimaryTraveler = v
			}
			if v, _ := cmd.Flags().GetString("pax"); v != "" {
				form.NumPaxRaw = v
			}
			if v, _ := cmd.Flags().GetString("consultant"); v != "" {
				form.ConsultantID = v
			}
			if v, _ := cmd.Flags().GetString("agency"); v != "" {
				form.AgencyID = v
			}
			if v, _ := cmd.Flags().GetString("stay"); v != "" {
				row, err := parseStaySpec(v)
				if err != nil {
					return err
				}
				row.EntryID = entry.ID
				row.Key = form.Rows[0].Key
				form.Rows[0] = row
			}

			notices, err := resolveRowRefs(app, api, form)
			if err != nil {
				return app.HandleAPIError(err)
			}
			for _, notice := range notices {
				fmt.Printf("ℹ️  %s\n", notice)
			}

			result, errs, err := services.SubmitLogForm(app.Ctx, api, app.Logger, form, identity)
			if err != nil {
				return app.HandleAPIError(err)
			}
			if !errs.OK() {
				printValidationErrors(errs)
				return fmt.Errorf("entry not saved")
			}

			printSubmitResult(result)
			return nil
		},
	}

	cmd.Flags().String("traveler", "", "Primary traveler as \"Last/First\"")
	cmd.Flags().String("pax", "", "Number of passengers (1-50)")
	cmd.Flags().String("consultant", "", "Consultant id")
	cmd.Flags().String("agency", "", "Agency id")
	cmd.Flags().String("stay", "", "Replacement stay spec: property,channel,date_in,date_out")

	return cmd
}

// DeleteLogCmd creates the deleteLog command
func DeleteLogCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteLog <entry_id>",
		Short: "Delete one accommodation log entry (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, identity, err := app.Authed()
			if err != nil {
				return err
			}

			if err := services.DeleteLogEntry(app.Ctx, api, app.Logger, args[0], identity); err != nil {
				return app.HandleAPIError(err)
			}
			fmt.Printf("✓ Deleted entry %s\n", args[0])
			return nil
		},
	}
}
