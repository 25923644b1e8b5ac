package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mwhitfield/safari-backoffice/pkg/core/filter"
	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
	"github.com/mwhitfield/safari-backoffice/pkg/core/validation"
)

// Trip report statuses.
const (
	ReportStatusDraft = "draft"
	ReportStatusFinal = "final"
)

// travelerDenylist holds system and demo accounts that never appear in the
// travelers picker.
var travelerDenylist = []string{
	"admin@safari-backoffice.test",
	"demo@safari-backoffice.test",
	"noreply@safari-backoffice.test",
}

// TripReportStore is the slice of the API client the editor needs.
type TripReportStore interface {
	SaveTripReport(ctx context.Context, report json.RawMessage) (*model.UpsertResult, error)
}

// Rating is a 0-10 score or explicitly not-applicable. In yaml it is either
// an integer or the literal "n/a".
type Rating struct {
	Value int
	NA    bool
}

// UnmarshalYAML accepts an int or "n/a".
func (r *Rating) UnmarshalYAML(value *yaml.Node) error {
	if strings.EqualFold(strings.TrimSpace(value.Value), "n/a") {
		*r = Rating{NA: true}
		return nil
	}
	var n int
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("rating must be 0-10 or n/a: %w", err)
	}
	*r = Rating{Value: n}
	return nil
}

// MarshalJSON sends n/a as null, otherwise the score.
func (r Rating) MarshalJSON() ([]byte, error) {
	if r.NA {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// Valid reports whether the rating is n/a or within 0-10.
func (r Rating) Valid() bool {
	return r.NA || (r.Value >= 0 && r.Value <= 10)
}

func (r Rating) String() string {
	if r.NA {
		return "n/a"
	}
	return fmt.Sprintf("%d/10", r.Value)
}

// SegmentRatings are the per-theme scores for one property stay.
type SegmentRatings struct {
	Accommodation Rating `yaml:"accommodation" json:"accommodation"`
	Service       Rating `yaml:"service" json:"service"`
	Food          Rating `yaml:"food" json:"food"`
	Guide         Rating `yaml:"guide" json:"guide"`
	Overall       Rating `yaml:"overall" json:"overall"`
}

// SegmentComments are the per-theme free-text notes for one property stay.
type SegmentComments struct {
	Accommodation string `yaml:"accommodation" json:"accommodation"`
	Service       string `yaml:"service" json:"service"`
	Food          string `yaml:"food" json:"food"`
	Wildlife      string `yaml:"wildlife" json:"wildlife"`
	General       string `yaml:"general" json:"general"`
}

// NewSegmentProperty is the inline draft for a property not yet in the
// catalog.
type NewSegmentProperty struct {
	Name                string `yaml:"name" json:"name"`
	PortfolioID         string `yaml:"portfolio_id" json:"portfolio_id"`
	CountryID           string `yaml:"country_id" json:"country_id"`
	CoreDestinationID   string `yaml:"core_destination_id" json:"core_destination_id"`
	CoreDestinationName string `yaml:"core_destination" json:"-"`
}

// PropertySegment is one reviewed stay (or site inspection) in the report.
type PropertySegment struct {
	Key                string              `yaml:"-" json:"key"`
	PropertyID         string              `yaml:"property_id" json:"property_id"`
	NewProperty        *NewSegmentProperty `yaml:"new_property" json:"new_property"`
	SiteInspectionOnly bool                `yaml:"site_inspection_only" json:"site_inspection_only"`
	// VisitDate applies only to site inspections; stays use the date pair.
	VisitDate string          `yaml:"visit_date" json:"visit_date"`
	DateIn    string          `yaml:"date_in" json:"date_in"`
	DateOut   string          `yaml:"date_out" json:"date_out"`
	Ratings   SegmentRatings  `yaml:"ratings" json:"ratings"`
	Comments  SegmentComments `yaml:"comments" json:"comments"`
}

// Activity segment types.
const (
	ActivityTypeRestaurant = "restaurant"
	ActivityTypeActivity   = "activity"
)

// ActivitySegment is one reviewed activity or restaurant.
type ActivitySegment struct {
	Key      string `yaml:"-" json:"key"`
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Location string `yaml:"location" json:"location"`
	Rating   Rating `yaml:"rating" json:"rating"`
	Comment  string `yaml:"comment" json:"comment"`
}

// TripReport is the whole editable report.
type TripReport struct {
	Travelers       []string          `yaml:"travelers" json:"travelers"`
	DocumentUpdates string            `yaml:"document_updates" json:"document_updates"`
	Properties      []PropertySegment `yaml:"properties" json:"properties"`
	Activities      []ActivitySegment `yaml:"activities" json:"activities"`
	Status          string            `yaml:"-" json:"status"`
}

// LoadTripReport reads a report document from a yaml file and assigns
// client keys to its segments.
func LoadTripReport(path string) (*TripReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var report TripReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report file: %w", err)
	}

	for i := range report.Properties {
		report.Properties[i].Key = uuid.New().String()
	}
	for i := range report.Activities {
		report.Activities[i].Key = uuid.New().String()
	}
	return &report, nil
}

// HasAnimals gates the guide/animal-viewing rating and comment fields.
// New-property drafts always show them; catalog properties only when they
// are African standard or luxury accommodation.
func HasAnimals(segment PropertySegment, catalog map[string]model.Property) bool {
	if segment.NewProperty != nil {
		return true
	}
	property, ok := catalog[segment.PropertyID]
	if !ok {
		return false
	}
	if !strings.EqualFold(property.CoreDestinationName, "Africa") {
		return false
	}
	switch strings.ToLower(property.PropertyType) {
	case "standard accommodation", "luxury accommodation":
		return true
	default:
		return false
	}
}

// ValidateTripReport checks the report ahead of the save preview.
func ValidateTripReport(report *TripReport) validation.Errors {
	errs := validation.Errors{}

	if len(report.Travelers) == 0 {
		errs["travelers"] = "At least one traveler is required"
	}
	if len(report.Properties) == 0 {
		errs["properties"] = "At least one property is required"
	}

	for i, segment := range report.Properties {
		prefix := fmt.Sprintf("properties[%d]", i)
		if segment.PropertyID == "" && segment.NewProperty == nil {
			errs[prefix+".property"] = "Each segment needs an existing or new property"
		}
		if segment.NewProperty != nil && strings.TrimSpace(segment.NewProperty.Name) == "" {
			errs[prefix+".property"] = "New property name is required"
		}
		if segment.SiteInspectionOnly {
			if segment.VisitDate == "" {
				errs[prefix+".visit_date"] = "Site inspections need a visit date"
			}
		} else {
			if msg := datePairParses(segment.DateIn, segment.DateOut); msg != "" {
				errs[prefix+".dates"] = msg
			}
		}
		for name, rating := range map[string]Rating{
			"accommodation": segment.Ratings.Accommodation,
			"service":       segment.Ratings.Service,
			"food":          segment.Ratings.Food,
			"guide":         segment.Ratings.Guide,
			"overall":       segment.Ratings.Overall,
		} {
			if !rating.Valid() {
				errs[prefix+".ratings."+name] = "Ratings must be 0-10 or n/a"
			}
		}
	}

	for i, activity := range report.Activities {
		prefix := fmt.Sprintf("activities[%d]", i)
		if strings.TrimSpace(activity.Name) == "" {
			errs[prefix+".name"] = "Activity name is required"
		}
		if activity.Type != ActivityTypeRestaurant && activity.Type != ActivityTypeActivity {
			errs[prefix+".type"] = "Type must be restaurant or activity"
		}
		if !activity.Rating.Valid() {
			errs[prefix+".rating"] = "Ratings must be 0-10 or n/a"
		}
	}

	return errs
}

func datePairParses(dateIn, dateOut string) string {
	if dateIn == "" || dateOut == "" {
		return "Stays need both a check-in and a check-out date"
	}
	in, errIn := time.Parse("2006-01-02", dateIn)
	out, errOut := time.Parse("2006-01-02", dateOut)
	if errIn != nil || errOut != nil {
		return "Dates must be YYYY-MM-DD"
	}
	if !in.Before(out) {
		return "Check-in date must be before check-out date"
	}
	return ""
}

// SuggestTravelers filters user emails for the travelers picker: substring
// match, excluding denylisted system accounts and already-added travelers.
func SuggestTravelers(users []model.User, query string, added []string) []model.User {
	addedSet := make(map[string]bool, len(added))
	for _, email := range added {
		addedSet[strings.ToLower(email)] = true
	}
	denySet := make(map[string]bool, len(travelerDenylist))
	for _, email := range travelerDenylist {
		denySet[email] = true
	}

	var suggestions []model.User
	for _, user := range users {
		email := strings.ToLower(user.Email)
		if denySet[email] || addedSet[email] {
			continue
		}
		if !filter.MatchesSearch(query, user.Email) {
			continue
		}
		suggestions = append(suggestions, user)
	}
	return suggestions
}

// RenderTripReportSummary renders the read-only report summary. The same
// renderer backs the pre-save preview and the published view.
func RenderTripReportSummary(report *TripReport, catalog map[string]model.Property) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Travelers: %s\n", strings.Join(report.Travelers, ", "))
	if report.DocumentUpdates != "" {
		fmt.Fprintf(&b, "Document updates (internal): %s\n", report.DocumentUpdates)
	}

	for i, segment := range report.Properties {
		name := segment.PropertyID
		if property, ok := catalog[segment.PropertyID]; ok {
			name = property.Name
		}
		if segment.NewProperty != nil {
			name = segment.NewProperty.Name + " (new)"
		}
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, name)
		if segment.SiteInspectionOnly {
			fmt.Fprintf(&b, "   Site inspection on %s\n", segment.VisitDate)
		} else {
			fmt.Fprintf(&b, "   Stay %s to %s\n", segment.DateIn, segment.DateOut)
		}
		fmt.Fprintf(&b, "   Accommodation %s, service %s, food %s, overall %s\n",
			segment.Ratings.Accommodation, segment.Ratings.Service,
			segment.Ratings.Food, segment.Ratings.Overall)
		if HasAnimals(segment, catalog) {
			fmt.Fprintf(&b, "   Guiding/animal viewing %s\n", segment.Ratings.Guide)
			if segment.Comments.Wildlife != "" {
				fmt.Fprintf(&b, "   Wildlife: %s\n", segment.Comments.Wildlife)
			}
		}
		if segment.Comments.General != "" {
			fmt.Fprintf(&b, "   Notes: %s\n", segment.Comments.General)
		}
	}

	if len(report.Activities) > 0 {
		b.WriteString("\nActivities & restaurants:\n")
		for _, activity := range report.Activities {
			fmt.Fprintf(&b, "- %s (%s, %s): %s", activity.Name, activity.Type, activity.Location, activity.Rating)
			if activity.Comment != "" {
				fmt.Fprintf(&b, " - %s", activity.Comment)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// SaveTripReport validates and submits the report as a draft or final
// publication. The two-stage confirmation (summary first, then save) lives
// in the command layer; this is the terminal submit. Publish carries no
// role check, matching the server's authorization model.
func SaveTripReport(ctx context.Context, store TripReportStore, logger *zap.Logger, report *TripReport, publish bool) ([]string, validation.Errors, error) {
	errs := ValidateTripReport(report)
	if !errs.OK() {
		return nil, errs, nil
	}

	if publish {
		report.Status = ReportStatusFinal
	} else {
		report.Status = ReportStatusDraft
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode report: %w", err)
	}

	logger.Info("Saving trip report",
		zap.String("status", report.Status),
		zap.Int("properties", len(report.Properties)),
		zap.Int("activities", len(report.Activities)))

	result, err := store.SaveTripReport(ctx, payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save trip report: %w", err)
	}
	return SummarizeUpsert(result), nil, nil
}

// AutosaveInterval is how often the editor acknowledges unsaved changes.
const AutosaveInterval = 2 * time.Second

// Autosaver debounces change notifications. It only produces a notice and
// does not call the API. TODO: wire this to a real draft save once the API
// grows a partial-save endpoint.
type Autosaver struct {
	last time.Time
}

// Note reports whether enough time has passed since the last notice.
func (a *Autosaver) Note(now time.Time) (string, bool) {
	if !a.last.IsZero() && now.Sub(a.last) < AutosaveInterval {
		return "", false
	}
	a.last = now
	return "Changes noted (drafts are not saved until you confirm)", true
}
