package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mwhitfield/safari-backoffice/pkg/core/filter"
)

// ListLogsCmd creates the listLogs command
func ListLogsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listLogs",
		Short: "List accommodation log entries with filters and search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}

			filters := filter.LogFilters{}
			filters.Consultant, _ = cmd.Flags().GetString("consultant")
			filters.Agency, _ = cmd.Flags().GetString("agency")
			filters.Channel, _ = cmd.Flags().GetString("channel")
			filters.Portfolio, _ = cmd.Flags().GetString("portfolio")
			filters.Country, _ = cmd.Flags().GetString("country")
			filters.Property, _ = cmd.Flags().GetString("property")
			filters.StartDate, _ = cmd.Flags().GetString("start")
			filters.EndDate, _ = cmd.Flags().GetString("end")
			query, _ := cmd.Flags().GetString("search")
			page, _ := cmd.Flags().GetInt("page")
			showFacets, _ := cmd.Flags().GetBool("facets")

			entries, err := api.ListAccommodationLogs(app.Ctx)
			if err != nil {
				return app.HandleAPIError(err)
			}

			app.Logger.Debug("Fetched accommodation logs", zap.Int("count", len(entries)))

			matched := filter.SearchLogs(filters.Apply(entries), query)

			p := filter.NewPaginator(len(matched), filter.DefaultPageSize)
			start, end := p.Bounds(page)
			if page < 1 {
				page = 1
			}
			if page > p.Pages() {
				page = p.Pages()
			}

			fmt.Printf("\n%d of %d entries match (page %d/%d)\n\n", len(matched), len(entries), page, p.Pages())
			for _, e := range matched[start:end] {
				agency := e.AgencyName
				if agency == "" {
					agency = filter.SentinelNoAgency
				}
				fmt.Printf("%s  %-25s %2d pax  %s → %s  %3d bed nights\n",
					e.ID, e.PrimaryTraveler, e.NumPax, e.DateIn, e.DateOut, e.BedNights)
				fmt.Printf("          %s (%s) via %s - %s / %s\n",
					e.PropertyName, e.CountryName, e.BookingChannelName, e.ConsultantName, agency)
			}

			if showFacets {
				printFacets(filter.Facets(matched))
			}

			return nil
		},
	}

	cmd.Flags().String("consultant", "", "Filter by consultant display name")
	cmd.Flags().String("agency", "", fmt.Sprintf("Filter by agency name (%q selects entries without one)", filter.SentinelNoAgency))
	cmd.Flags().String("channel", "", "Filter by booking channel name")
	cmd.Flags().String("portfolio", "", "Filter by portfolio name")
	cmd.Flags().String("country", "", fmt.Sprintf("Filter by country name (%q selects entries without one)", filter.SentinelNoCountry))
	cmd.Flags().String("property", "", "Filter by property name")
	cmd.Flags().String("start", "", "Keep entries whose stay overlaps on/after this date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Keep entries whose stay overlaps on/before this date (YYYY-MM-DD)")
	cmd.Flags().String("search", "", "Free-text search across traveler, property, consultant and more")
	cmd.Flags().Int("page", 1, "Result page")
	cmd.Flags().Bool("facets", false, "Show the distinct filter options for the matched set")

	return cmd
}

func printFacets(facets filter.LogFacets) {
	fmt.Println("\nFilter options for this result set:")
	printFacet("Consultants", facets.Consultants)
	printFacet("Agencies", facets.Agencies)
	printFacet("Channels", facets.Channels)
	printFacet("Portfolios", facets.Portfolios)
	printFacet("Countries", facets.Countries)
	printFacet("Properties", facets.Properties)
}

func printFacet(label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Printf("  %-12s %s\n", label+":", strings.Join(values, ", "))
}
