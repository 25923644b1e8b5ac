package filter

import (
	"sort"
	"time"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// Sentinel option values for filtering on missing data. These appear in
// dropdowns alongside real values and select records whose field is unset.
const (
	SentinelNoAgency  = "No agency"
	SentinelNoCountry = "No country"
	SentinelUnknown   = "Unknown"
)

const dateLayout = "2006-01-02"

// LogFilters is the filter set for the accommodation-log list. Filters are
// applied as a sequential AND of independent predicates; empty values are
// inactive.
type LogFilters struct {
	Consultant string
	Agency     string
	Channel    string
	Portfolio  string
	Country    string
	Property   string
	// StartDate/EndDate select entries whose stay overlaps the range
	// (inclusive on both ends).
	StartDate string
	EndDate   string
}

// Apply returns the entries passing every active predicate.
func (f LogFilters) Apply(entries []model.AccommodationLogEntry) []model.AccommodationLogEntry {
	out := make([]model.AccommodationLogEntry, 0, len(entries))
	for _, e := range entries {
		if !f.matches(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (f LogFilters) matches(e model.AccommodationLogEntry) bool {
	if f.Consultant != "" && e.ConsultantName != f.Consultant {
		return false
	}
	if f.Agency != "" {
		if f.Agency == SentinelNoAgency {
			if e.AgencyName != "" {
				return false
			}
		} else if e.AgencyName != f.Agency {
			return false
		}
	}
	if f.Channel != "" && e.BookingChannelName != f.Channel {
		return false
	}
	if f.Portfolio != "" && e.PortfolioName != f.Portfolio {
		return false
	}
	if f.Country != "" {
		if f.Country == SentinelNoCountry {
			if e.CountryName != "" {
				return false
			}
		} else if e.CountryName != f.Country {
			return false
		}
	}
	if f.Property != "" && e.PropertyName != f.Property {
		return false
	}
	if f.StartDate != "" || f.EndDate != "" {
		if !stayOverlapsRange(e, f.StartDate, f.EndDate) {
			return false
		}
	}
	return true
}

// stayOverlapsRange tests the entry's [date_in, date_out] span against the
// filter range, inclusive at both ends. Open filter ends are unbounded.
func stayOverlapsRange(e model.AccommodationLogEntry, start, end string) bool {
	in, errIn := time.Parse(dateLayout, e.DateIn)
	out, errOut := time.Parse(dateLayout, e.DateOut)
	if errIn != nil || errOut != nil {
		return false
	}
	if start != "" {
		s, err := time.Parse(dateLayout, start)
		if err != nil || out.Before(s) {
			return false
		}
	}
	if end != "" {
		x, err := time.Parse(dateLayout, end)
		if err != nil || in.After(x) {
			return false
		}
	}
	return true
}

// SearchLogs keeps entries whose enumerated searchable fields contain the
// query after normalization.
func SearchLogs(entries []model.AccommodationLogEntry, query string) []model.AccommodationLogEntry {
	if query == "" {
		return entries
	}
	out := make([]model.AccommodationLogEntry, 0, len(entries))
	for _, e := range entries {
		if MatchesSearch(query,
			e.PrimaryTraveler,
			e.PropertyName,
			e.PortfolioName,
			e.ConsultantName,
			e.AgencyName,
			e.BookingChannelName,
			e.CountryName,
			e.CoreDestinationName,
			e.PropertyLocation,
		) {
			out = append(out, e)
		}
	}
	return out
}

// LogFacets are the distinct option lists offered in the list view's
// dropdowns, recomputed from the currently filtered result set so facets
// narrow as filters stack.
type LogFacets struct {
	Consultants []string
	Agencies    []string
	Channels    []string
	Portfolios  []string
	Countries   []string
	Properties  []string
}

// Facets derives the distinct, sorted option lists from the given entries.
// Missing agency/country values surface as their sentinel options.
func Facets(entries []model.AccommodationLogEntry) LogFacets {
	consultants := map[string]bool{}
	agencies := map[string]bool{}
	channels := map[string]bool{}
	portfolios := map[string]bool{}
	countries := map[string]bool{}
	properties := map[string]bool{}

	for _, e := range entries {
		addNonEmpty(consultants, e.ConsultantName)
		addNonEmpty(channels, e.BookingChannelName)
		addNonEmpty(portfolios, e.PortfolioName)
		addNonEmpty(properties, e.PropertyName)
		if e.AgencyName == "" {
			agencies[SentinelNoAgency] = true
		} else {
			agencies[e.AgencyName] = true
		}
		if e.CountryName == "" {
			countries[SentinelNoCountry] = true
		} else {
			countries[e.CountryName] = true
		}
	}

	return LogFacets{
		Consultants: sortedKeys(consultants),
		Agencies:    sortedKeys(agencies),
		Channels:    sortedKeys(channels),
		Portfolios:  sortedKeys(portfolios),
		Countries:   sortedKeys(countries),
		Properties:  sortedKeys(properties),
	}
}

// PropertyFilters is the filter set for the property-details list.
type PropertyFilters struct {
	Country      string
	PropertyType string
}

// Apply returns the details passing every active predicate. The sentinels
// select records with a missing country or a null property type.
func (f PropertyFilters) Apply(details []model.PropertyDetail) []model.PropertyDetail {
	out := make([]model.PropertyDetail, 0, len(details))
	for _, d := range details {
		if f.Country != "" {
			if f.Country == SentinelNoCountry {
				if d.CountryName != "" {
					continue
				}
			} else if d.CountryName != f.Country {
				continue
			}
		}
		if f.PropertyType != "" {
			if f.PropertyType == SentinelUnknown {
				if d.PropertyType != "" {
					continue
				}
			} else if d.PropertyType != f.PropertyType {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

func addNonEmpty(set map[string]bool, v string) {
	if v != "" {
		set[v] = true
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
