package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
	"github.com/mwhitfield/safari-backoffice/pkg/core/validation"
)

// LogStore is the slice of the API client the log form needs.
type LogStore interface {
	UpsertAccommodationLogs(ctx context.Context, rows []model.LogUpsert) (*model.UpsertResult, error)
	DeleteAccommodationLog(ctx context.Context, id string) error
}

// NonAdminSaveWarning is raised when a role without write access passes
// validation; the request is still sent and the server is the real gate.
const NonAdminSaveWarning = "Your role cannot save entries; this change will not be persisted"

// LogFormRow is one property stay within a submission: its own property,
// channel and date range. Traveler, pax, consultant and agency are shared
// across rows.
type LogFormRow struct {
	Key      string // client-generated, addresses the row before the server assigns an id
	EntryID  string // set when editing an existing entry
	Property model.PropertyRef
	Channel  model.ChannelRef
	DateIn   string
	DateOut  string
}

// LogForm is the full editing state for an add/edit submission.
type LogForm struct {
	PrimaryTraveler string
	NumPaxRaw       string
	ConsultantID    string
	AgencyID        string
	Rows            []LogFormRow

	Touch *validation.TouchTracker
}

// NewLogForm returns an empty form with one blank row.
func NewLogForm() *LogForm {
	f := &LogForm{Touch: validation.NewTouchTracker()}
	f.AddRow()
	return f
}

// AddRow appends a blank row and returns its key.
func (f *LogForm) AddRow() string {
	row := LogFormRow{Key: uuid.New().String()}
	f.Rows = append(f.Rows, row)
	return row.Key
}

// RemoveRow drops the row with the given key; the last remaining row cannot
// be removed.
func (f *LogForm) RemoveRow(key string) bool {
	if len(f.Rows) <= 1 {
		return false
	}
	for i, row := range f.Rows {
		if row.Key == key {
			f.Rows = append(f.Rows[:i], f.Rows[i+1:]...)
			return true
		}
	}
	return false
}

// FieldError returns the live validation message for one field, honoring the
// touch state machine: untouched fields never flag.
func (f *LogForm) FieldError(field string) string {
	if !f.Touch.ShouldValidate(field) {
		return ""
	}
	return f.Validate()[field]
}

// Validate runs the full form-level validation regardless of touch state and
// returns errors keyed by field name.
func (f *LogForm) Validate() validation.Errors {
	errs := validation.Errors{}

	if msg := validation.PrimaryTraveler(f.PrimaryTraveler); msg != "" {
		errs["primary_traveler"] = msg
	}
	if _, msg := validation.ParsePax(f.NumPaxRaw); msg != "" {
		errs["num_pax"] = msg
	}
	if f.ConsultantID == "" {
		errs["consultant_id"] = "Missing consultant"
	}

	ranges := make([]validation.StayRange, len(f.Rows))
	for i, row := range f.Rows {
		prefix := fmt.Sprintf("rows[%d]", i)
		if msg := validation.PropertyRef(row.Property); msg != "" {
			errs[prefix+".property"] = msg
		}
		if msg := validation.ChannelRef(row.Channel); msg != "" {
			errs[prefix+".booking_channel"] = msg
		}
		if msg := validation.StayDates(row.DateIn, row.DateOut); msg != "" {
			errs[prefix+".dates"] = msg
		}
		ranges[i] = validation.StayRange{DateIn: row.DateIn, DateOut: row.DateOut}
	}

	if len(f.Rows) > 1 {
		if overlaps := validation.DateOverlaps(ranges); len(overlaps) > 0 {
			errs["rows"] = strings.Join(overlaps, "; ")
		}
	}

	return errs
}

// BuildPayload flattens the form into the batch-upsert rows. References are
// resolved once here: whenever a draft side is populated the corresponding
// existing-id field is nulled, and bed nights are derived per row.
func (f *LogForm) BuildPayload(updatedBy string) ([]model.LogUpsert, error) {
	pax, msg := validation.ParsePax(f.NumPaxRaw)
	if msg != "" {
		return nil, fmt.Errorf("invalid passenger count: %s", msg)
	}

	rows := make([]model.LogUpsert, len(f.Rows))
	for i, row := range f.Rows {
		u := model.LogUpsert{
			PrimaryTraveler: strings.TrimSpace(f.PrimaryTraveler),
			NumPax:          pax,
			DateIn:          row.DateIn,
			DateOut:         row.DateOut,
			BedNights:       validation.BedNights(row.DateIn, row.DateOut, pax),
			ConsultantID:    f.ConsultantID,
			UpdatedBy:       updatedBy,
		}
		if row.EntryID != "" {
			id := row.EntryID
			u.ID = &id
		}
		if f.AgencyID != "" {
			agencyID := f.AgencyID
			u.AgencyID = &agencyID
		}
		u.ApplyPropertyRef(row.Property)
		u.ApplyChannelRef(row.Channel)
		rows[i] = u
	}
	return rows, nil
}

// LogSubmitResult carries what the command layer shows after a save.
type LogSubmitResult struct {
	Summary  []string
	Warnings []string
}

// SubmitLogForm validates, builds the payload and posts it. Validation
// failure returns the field errors and makes no network call. A role
// without write access still submits but gets an advisory warning;
// enforcement is the server's job.
func SubmitLogForm(ctx context.Context, store LogStore, logger *zap.Logger, form *LogForm, identity *model.Identity) (*LogSubmitResult, validation.Errors, error) {
	errs := form.Validate()
	if !errs.OK() {
		logger.Debug("Log form failed validation", zap.Int("error_count", len(errs)))
		return nil, errs, nil
	}

	email := ""
	role := ""
	if identity != nil {
		email = identity.Email
		role = identity.Role
	}

	rows, err := form.BuildPayload(email)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Submitting accommodation log form",
		zap.Int("rows", len(rows)),
		zap.String("traveler", form.PrimaryTraveler))

	result, err := store.UpsertAccommodationLogs(ctx, rows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save entries: %w", err)
	}

	submitResult := &LogSubmitResult{Summary: SummarizeUpsert(result)}
	if !canWrite(role) {
		submitResult.Warnings = append(submitResult.Warnings, NonAdminSaveWarning)
	}
	return submitResult, nil, nil
}

// DeleteLogEntry deletes one entry. Delete is the one hard client-side gate:
// only admins may trigger it at all.
func DeleteLogEntry(ctx context.Context, store LogStore, logger *zap.Logger, id string, identity *model.Identity) error {
	if identity == nil || identity.Role != model.RoleAdmin {
		return fmt.Errorf("only admins can delete entries")
	}
	logger.Info("Deleting accommodation log", zap.String("id", id))
	if err := store.DeleteAccommodationLog(ctx, id); err != nil {
		return err
	}
	return nil
}

func canWrite(role string) bool {
	switch role {
	case model.RoleAdmin, model.RoleUser, model.RoleSalesSupport:
		return true
	default:
		return false
	}
}
