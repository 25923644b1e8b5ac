package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/safari-backoffice/pkg/core/filter"
	"github.com/mwhitfield/safari-backoffice/pkg/core/services"
)

// PropertyDetailsCmd creates the propertyDetails command group
func PropertyDetailsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propertyDetails",
		Short: "List and maintain property attribute details",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List property details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}

			filters := filter.PropertyFilters{}
			filters.Country, _ = cmd.Flags().GetString("country")
			filters.PropertyType, _ = cmd.Flags().GetString("type")

			details, err := api.ListPropertyDetails(app.Ctx)
			if err != nil {
				return app.HandleAPIError(err)
			}
			matched := filters.Apply(details)

			fmt.Printf("\n%d of %d properties match:\n\n", len(matched), len(details))
			for _, d := range matched {
				propertyType := d.PropertyType
				if propertyType == "" {
					propertyType = filter.SentinelUnknown
				}
				country := d.CountryName
				if country == "" {
					country = filter.SentinelNoCountry
				}
				fmt.Printf("- %s  %s (%s, %s)\n", d.PropertyID, d.PropertyName, country, propertyType)

				var amenities []string
				if d.HasWifi {
					amenities = append(amenities, "wifi")
				}
				if d.HasPool {
					amenities = append(amenities, "pool")
				}
				if d.HasHeatedPool {
					amenities = append(amenities, "heated pool")
				}
				if d.HasTrackers {
					amenities = append(amenities, "trackers")
				}
				if d.HasHairdryers {
					amenities = append(amenities, "hairdryers")
				}
				if d.HasCreditCardTipping {
					amenities = append(amenities, "card tipping")
				}
				if d.IsChildFriendly {
					amenities = append(amenities, "child friendly")
				}
				if d.IsHandicapAccessible {
					amenities = append(amenities, "accessible")
				}
				if len(amenities) > 0 {
					fmt.Printf("    %s\n", strings.Join(amenities, ", "))
				}
			}
			return nil
		},
	}
	listCmd.Flags().String("country", "", fmt.Sprintf("Filter by country (%q selects properties without one)", filter.SentinelNoCountry))
	listCmd.Flags().String("type", "", fmt.Sprintf("Filter by property type (%q selects untyped properties)", filter.SentinelUnknown))
	cmd.AddCommand(listCmd)

	saveCmd := &cobra.Command{
		Use:   "save <property_id>",
		Short: "Save attribute flags for a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}

			// Start from the stored detail so unset flags keep their values.
			detail, err := api.GetPropertyDetail(app.Ctx, args[0])
			if err != nil {
				return app.HandleAPIError(err)
			}
			detail.PropertyID = args[0]

			if cmd.Flags().Changed("price-range") {
				detail.PriceRange, _ = cmd.Flags().GetString("price-range")
			}
			if cmd.Flags().Changed("tents") {
				detail.NumTents, _ = cmd.Flags().GetInt("tents")
			}
			setFlag := func(name string, target *bool) {
				if cmd.Flags().Changed(name) {
					*target, _ = cmd.Flags().GetBool(name)
				}
			}
			setFlag("wifi", &detail.HasWifi)
			setFlag("pool", &detail.HasPool)
			setFlag("heated-pool", &detail.HasHeatedPool)
			setFlag("trackers", &detail.HasTrackers)
			setFlag("hairdryers", &detail.HasHairdryers)
			setFlag("card-tipping", &detail.HasCreditCardTipping)
			setFlag("child-friendly", &detail.IsChildFriendly)
			setFlag("accessible", &detail.IsHandicapAccessible)

			summary, err := services.SavePropertyDetail(app.Ctx, api, app.Logger, *detail)
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
	saveCmd.Flags().String("price-range", "", "Price range label")
	saveCmd.Flags().Int("tents", 0, "Number of tents/rooms")
	saveCmd.Flags().Bool("wifi", false, "Has wifi")
	saveCmd.Flags().Bool("pool", false, "Has a pool")
	saveCmd.Flags().Bool("heated-pool", false, "Has a heated pool")
	saveCmd.Flags().Bool("trackers", false, "Has trackers")
	saveCmd.Flags().Bool("hairdryers", false, "Has hairdryers")
	saveCmd.Flags().Bool("card-tipping", false, "Supports credit-card tipping")
	saveCmd.Flags().Bool("child-friendly", false, "Is child friendly")
	saveCmd.Flags().Bool("accessible", false, "Is handicap accessible")
	cmd.AddCommand(saveCmd)

	return cmd
}
