package model

import "strings"

// PropertyRef is the property side of a log entry form: either a pick from
// the catalog or an inline draft for a property that doesn't exist yet.
// Exactly one side is set; Resolve flattens it into the wire payload so the
// server never sees both an id and draft fields.
type PropertyRef struct {
	Existing *ExistingPropertyRef
	Draft    *NewPropertyDraft
}

// ExistingPropertyRef points at a catalog property.
type ExistingPropertyRef struct {
	ID string
}

// NewPropertyDraft holds the inline fields for a property created as part of
// the entry. A country is required unless the core destination is one of the
// non-geographic groupings.
type NewPropertyDraft struct {
	Name                string
	PortfolioID         string
	CountryID           string
	CoreDestinationID   string
	CoreDestinationName string
}

// NonGeographicDestinations are the core destinations that exempt a new
// property from requiring a country.
var NonGeographicDestinations = []string{"Ship", "Rail"}

// IsNonGeographic reports whether the named core destination is exempt from
// the country requirement.
func IsNonGeographic(coreDestinationName string) bool {
	for _, d := range NonGeographicDestinations {
		if strings.EqualFold(strings.TrimSpace(coreDestinationName), d) {
			return true
		}
	}
	return false
}

// IsSet reports whether either side of the reference is populated.
func (r PropertyRef) IsSet() bool {
	return r.Existing != nil || r.Draft != nil
}

// Complete reports whether the reference is submittable: an existing id, or
// a draft with a name plus a country or a non-geographic core destination.
func (r PropertyRef) Complete() bool {
	if r.Existing != nil {
		return r.Existing.ID != ""
	}
	if r.Draft == nil {
		return false
	}
	if strings.TrimSpace(r.Draft.Name) == "" {
		return false
	}
	return r.Draft.CountryID != "" || IsNonGeographic(r.Draft.CoreDestinationName)
}

// ChannelRef is the booking-channel side of the form: an existing channel or
// a new free-text name.
type ChannelRef struct {
	ID      string
	NewName string
}

// Complete reports whether the channel reference is submittable.
func (r ChannelRef) Complete() bool {
	return r.ID != "" || strings.TrimSpace(r.NewName) != ""
}

// LogUpsert is one element of the batch upsert payload for accommodation
// logs. Pointer fields marshal to explicit nulls; whenever the draft side of
// a reference is populated the existing-id field is nulled so the server
// never receives conflicting references.
type LogUpsert struct {
	ID                *string `json:"id"`
	PrimaryTraveler   string  `json:"primary_traveler"`
	NumPax            int     `json:"num_pax"`
	DateIn            string  `json:"date_in"`
	DateOut           string  `json:"date_out"`
	BedNights         int     `json:"bed_nights"`
	PropertyID        *string `json:"property_id"`
	NewPropertyName   *string `json:"new_property_name"`
	PortfolioID       *string `json:"new_property_portfolio_id"`
	CountryID         *string `json:"new_property_country_id"`
	CoreDestinationID *string `json:"new_property_core_destination_id"`
	BookingChannelID  *string `json:"booking_channel_id"`
	NewChannelName    *string `json:"new_booking_channel_name"`
	AgencyID          *string `json:"agency_id"`
	ConsultantID      string  `json:"consultant_id"`
	UpdatedBy         string  `json:"updated_by"`
}

// ApplyPropertyRef writes the resolved property reference onto the payload.
func (u *LogUpsert) ApplyPropertyRef(r PropertyRef) {
	if r.Draft != nil {
		u.PropertyID = nil
		u.NewPropertyName = optional(r.Draft.Name)
		u.PortfolioID = optional(r.Draft.PortfolioID)
		u.CountryID = optional(r.Draft.CountryID)
		u.CoreDestinationID = optional(r.Draft.CoreDestinationID)
		return
	}
	if r.Existing != nil {
		u.PropertyID = optional(r.Existing.ID)
		u.NewPropertyName = nil
		u.PortfolioID = nil
		u.CountryID = nil
		u.CoreDestinationID = nil
	}
}

// ApplyChannelRef writes the resolved booking-channel reference onto the
// payload. A new name wins over an id.
func (u *LogUpsert) ApplyChannelRef(r ChannelRef) {
	if strings.TrimSpace(r.NewName) != "" {
		u.BookingChannelID = nil
		u.NewChannelName = optional(strings.TrimSpace(r.NewName))
		return
	}
	u.BookingChannelID = optional(r.ID)
	u.NewChannelName = nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
