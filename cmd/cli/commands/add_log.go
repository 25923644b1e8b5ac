package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/safari-backoffice/pkg/clients/apiclient"
	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
	"github.com/mwhitfield/safari-backoffice/pkg/core/services"
	"github.com/mwhitfield/safari-backoffice/pkg/core/validation"
)

// AddLogCmd creates the addLog command
func AddLogCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addLog",
		Short: "Add accommodation log entries for one traveler",
		Long: `Add one or more accommodation log entries sharing a traveler, pax count,
consultant and agency. Each --stay is one property visit:

  --stay "<property>,<channel>,<date_in>,<date_out>"

<property> is a catalog id, or an inline draft "new:Name:portfolioID:countryID:coreDestinationID".
<channel> is a catalog id, or "new:Name" for a channel created with the entry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, identity, err := app.Authed()
			if err != nil {
				return err
			}

			form := services.NewLogForm()
			form.PrimaryTraveler, _ = cmd.Flags().GetString("traveler")
			form.NumPaxRaw, _ = cmd.Flags().GetString("pax")
			form.ConsultantID, _ = cmd.Flags().GetString("consultant")
			form.AgencyID, _ = cmd.Flags().GetString("agency")

			stays, _ := cmd.Flags().GetStringArray("stay")
			if len(stays) == 0 {
				return fmt.Errorf("at least one --stay is required")
			}
			form.Rows = form.Rows[:0]
			for _, spec := range stays {
				row, err := parseStaySpec(spec)
				if err != nil {
					return err
				}
				form.Rows = append(form.Rows, row)
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
	cmd.Flags().String("agency", "", "Agency id (optional)")
	cmd.Flags().StringArray("stay", nil, "Property stay spec (repeatable)")

	return cmd
}

// parseStaySpec parses "<property>,<channel>,<date_in>,<date_out>".
func parseStaySpec(spec string) (services.LogFormRow, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return services.LogFormRow{}, fmt.Errorf("stay %q must be property,channel,date_in,date_out", spec)
	}
	row := services.LogFormRow{
		DateIn:  strings.TrimSpace(parts[2]),
		DateOut: strings.TrimSpace(parts[3]),
	}

	property := strings.TrimSpace(parts[0])
	if strings.HasPrefix(property, "new:") {
		fields := strings.Split(strings.TrimPrefix(property, "new:"), ":")
		draft := &model.NewPropertyDraft{Name: fields[0]}
		if len(fields) > 1 {
			draft.PortfolioID = fields[1]
		}
		if len(fields) > 2 {
			draft.CountryID = fields[2]
		}
		if len(fields) > 3 {
			draft.CoreDestinationID = fields[3]
		}
		row.Property = model.PropertyRef{Draft: draft}
	} else if property != "" {
		row.Property = model.PropertyRef{Existing: &model.ExistingPropertyRef{ID: property}}
	}

	channel := strings.TrimSpace(parts[1])
	if strings.HasPrefix(channel, "new:") {
		row.Channel = model.ChannelRef{NewName: strings.TrimPrefix(channel, "new:")}
	} else {
		row.Channel = model.ChannelRef{ID: channel}
	}

	return row, nil
}

// resolveRowRefs fills in catalog-derived fields the form needs before
// submission: core destination names on new-property drafts (the country
// requirement is waived for non-geographic groupings) and the booking
// channel auto-correction with its user-facing notice.
func resolveRowRefs(app *AppContext, api *apiclient.Client, form *services.LogForm) ([]string, error) {
	properties, err := api.ListProperties(app.Ctx)
	if err != nil {
		return nil, err
	}
	channels, err := api.ListBookingChannels(app.Ctx)
	if err != nil {
		return nil, err
	}

	propertyByID := make(map[string]model.Property, len(properties))
	for _, p := range properties {
		propertyByID[p.ID] = p
	}
	channelByID := make(map[string]model.BookingChannel, len(channels))
	for _, c := range channels {
		channelByID[c.ID] = c
	}

	var coreDestinations []model.CoreDestination
	var notices []string

	for i := range form.Rows {
		row := &form.Rows[i]

		if row.Property.Draft != nil && row.Property.Draft.CoreDestinationID != "" {
			if coreDestinations == nil {
				coreDestinations, err = api.ListCoreDestinations(app.Ctx)
				if err != nil {
					return nil, err
				}
			}
			for _, d := range coreDestinations {
				if d.ID == row.Property.Draft.CoreDestinationID {
					row.Property.Draft.CoreDestinationName = d.Name
				}
			}
		}

		if row.Property.Existing == nil || row.Channel.ID == "" {
			continue
		}
		property, ok := propertyByID[row.Property.Existing.ID]
		if !ok {
			continue
		}
		channel, ok := channelByID[row.Channel.ID]
		if !ok {
			continue
		}

		selection := services.ChannelSelection{
			PortfolioName: property.PortfolioName,
			PropertyName:  property.Name,
			ChannelName:   channel.Name,
		}
		if corrected, rule, fired := services.CorrectChannel(selection, channels, app.Logger); fired && corrected != nil {
			row.Channel = model.ChannelRef{ID: corrected.ID}
			notices = append(notices, fmt.Sprintf(
				"Booking channel for %s changed from %q to %q (%s)",
				property.Name, channel.Name, corrected.Name, rule))
		}
	}

	return notices, nil
}

func printValidationErrors(errs validation.Errors) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	fmt.Println("\n❌ Validation failed:")
	for _, field := range fields {
		fmt.Printf("  %s: %s\n", field, errs[field])
	}
}

func printSubmitResult(result *services.LogSubmitResult) {
	fmt.Println("\n✓ Saved")
	for _, line := range result.Summary {
		fmt.Printf("  %s\n", line)
	}
	for _, warning := range result.Warnings {
		fmt.Printf("\n⚠️  %s\n", warning)
	}
}
