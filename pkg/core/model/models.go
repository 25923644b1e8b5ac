package model

// Role values returned by the token endpoint.
const (
	RoleAdmin        = "admin"
	RoleUser         = "user"
	RoleSalesSupport = "sales_support"
	RoleViewer       = "viewer"
)

// Identity is the authenticated session: an opaque bearer token plus the
// role and email the server resolved for it.
type Identity struct {
	Token string `yaml:"token" json:"access_token"`
	Role  string `yaml:"role" json:"role"`
	Email string `yaml:"email" json:"email"`
}

// AccommodationLogEntry is one service-provider entry as returned by the API.
// Dates are "2006-01-02" strings, matching the wire format.
type AccommodationLogEntry struct {
	ID                  string `json:"id"`
	PrimaryTraveler     string `json:"primary_traveler"`
	NumPax              int    `json:"num_pax"`
	DateIn              string `json:"date_in"`
	DateOut             string `json:"date_out"`
	BedNights           int    `json:"bed_nights"`
	PropertyID          string `json:"property_id"`
	PropertyName        string `json:"property_name"`
	PropertyLocation    string `json:"property_location"`
	PortfolioID         string `json:"property_portfolio_id"`
	PortfolioName       string `json:"property_portfolio"`
	CountryName         string `json:"country_name"`
	CoreDestinationName string `json:"core_destination_name"`
	BookingChannelID    string `json:"booking_channel_id"`
	BookingChannelName  string `json:"booking_channel_name"`
	AgencyID            string `json:"agency_id"`
	AgencyName          string `json:"agency_name"`
	ConsultantID        string `json:"consultant_id"`
	ConsultantName      string `json:"consultant_display_name"`
}

// Property is a catalog property. CoreDestinationName may be a non-geographic
// grouping ("Ship", "Rail"), in which case the property carries no country.
type Property struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	PortfolioID         string  `json:"portfolio_id"`
	PortfolioName       string  `json:"portfolio_name"`
	CountryID           string  `json:"country_id"`
	CountryName         string  `json:"country_name"`
	CoreDestinationID   string  `json:"core_destination_id"`
	CoreDestinationName string  `json:"core_destination_name"`
	PropertyType        string  `json:"property_type"`
	Location            string  `json:"location"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
}

// BookingChannel is the route a reservation came through.
type BookingChannel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Agency is a referring travel agency.
type Agency struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Country is a reference country record.
type Country struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	CoreDestinationID string `json:"core_destination_id"`
}

// Consultant is a travel consultant; inactive consultants stay attached to
// historical entries but are excluded from new-entry dropdowns.
type Consultant struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name"`
	IsActive    bool   `json:"is_active"`
}

// Portfolio is a branded collection of properties.
type Portfolio struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CoreDestination is the grouping above country (Africa, Ship, Rail, ...).
type CoreDestination struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client is a referral/client record used by referral matching.
type Client struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ReferralType   string `json:"referral_type"`
	ReferredByID   string `json:"referred_by_id"`
	ReferredByName string `json:"referred_by_name"`
	MatchedLogID   string `json:"matched_log_id"`
	ShouldContact  bool   `json:"should_contact"`
}

// RelatedEntry is one row from the related-entries lookup used while
// matching referrals.
type RelatedEntry struct {
	ID              string `json:"id"`
	PrimaryTraveler string `json:"primary_traveler"`
	PropertyName    string `json:"property_name"`
	DateIn          string `json:"date_in"`
	DateOut         string `json:"date_out"`
	ConsultantName  string `json:"consultant_display_name"`
	AgencyName      string `json:"agency_name"`
}

// User is a staff account, used for the trip-report travelers picker.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AdminComment is an action item raised against an entry.
type AdminComment struct {
	ID        string `json:"id"`
	EntryID   string `json:"accommodation_log_id"`
	Comment   string `json:"comment"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// PropertyDetail carries the editable attribute flags for a property.
type PropertyDetail struct {
	ID                   string `json:"id"`
	PropertyID           string `json:"property_id"`
	PropertyName         string `json:"property_name"`
	PropertyType         string `json:"property_type"`
	CountryName          string `json:"country_name"`
	PriceRange           string `json:"price_range"`
	NumTents             int    `json:"num_tents"`
	HasWifi              bool   `json:"has_wifi"`
	HasPool              bool   `json:"has_pool"`
	HasHeatedPool        bool   `json:"has_heated_pool"`
	HasTrackers          bool   `json:"has_trackers"`
	HasHairdryers        bool   `json:"has_hairdryers"`
	HasCreditCardTipping bool   `json:"has_credit_card_tipping"`
	IsChildFriendly      bool   `json:"is_child_friendly"`
	IsHandicapAccessible bool   `json:"is_handicap_accessible"`
}

// AuditCount is the per-category insert/update tally a batch upsert returns.
type AuditCount struct {
	Insert int `json:"insert"`
	Update int `json:"update"`
}

// UpsertResult is the response envelope for batch upserts. It is only ever
// summarized for display, never stored.
type UpsertResult struct {
	SummarizedAuditLogs map[string]AuditCount `json:"summarized_audit_logs"`
	Messages            []string              `json:"messages"`
}
