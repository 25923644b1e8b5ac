package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// mockLogStore implements LogStore for testing
type mockLogStore struct {
	upserted   [][]model.LogUpsert
	deletedIDs []string
	upsertErr  error
	deleteErr  error
	result     *model.UpsertResult
}

func (m *mockLogStore) UpsertAccommodationLogs(ctx context.Context, rows []model.LogUpsert) (*model.UpsertResult, error) {
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	m.upserted = append(m.upserted, rows)
	if m.result != nil {
		return m.result, nil
	}
	return &model.UpsertResult{}, nil
}

func (m *mockLogStore) DeleteAccommodationLog(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func adminIdentity() *model.Identity {
	return &model.Identity{Token: "tok", Role: model.RoleAdmin, Email: "amy@example.com"}
}

func validForm() *LogForm {
	form := NewLogForm()
	form.PrimaryTraveler = "Smith/Jane"
	form.NumPaxRaw = "2"
	form.ConsultantID = "cons-1"
	form.Rows[0].Property = model.PropertyRef{Existing: &model.ExistingPropertyRef{ID: "prop-1"}}
	form.Rows[0].Channel = model.ChannelRef{ID: "ch-1"}
	form.Rows[0].DateIn = "2024-01-01"
	form.Rows[0].DateOut = "2024-01-05"
	return form
}

func TestSubmitLogForm_ValidSubmission(t *testing.T) {
	store := &mockLogStore{result: &model.UpsertResult{
		SummarizedAuditLogs: map[string]model.AuditCount{
			"accommodation_logs": {Insert: 1},
		},
	}}

	result, errs, err := SubmitLogForm(context.Background(), store, zap.NewNop(), validForm(), adminIdentity())
	require.NoError(t, err)
	require.True(t, errs.OK())
	require.NotNil(t, result)

	require.Len(t, store.upserted, 1)
	rows := store.upserted[0]
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Nil(t, row.ID, "new entry must not carry an id")
	assert.Equal(t, "Smith/Jane", row.PrimaryTraveler)
	assert.Equal(t, 2, row.NumPax)
	assert.Equal(t, 8, row.BedNights, "4 nights x 2 pax")
	require.NotNil(t, row.PropertyID)
	assert.Equal(t, "prop-1", *row.PropertyID)
	assert.Nil(t, row.NewPropertyName)
	assert.Equal(t, "amy@example.com", row.UpdatedBy)

	assert.Equal(t, []string{"accommodation logs: 1 added, 0 updated"}, result.Summary)
	assert.Empty(t, result.Warnings)
}

func TestSubmitLogForm_MissingConsultantMakesNoNetworkCall(t *testing.T) {
	form := validForm()
	form.ConsultantID = ""
	store := &mockLogStore{}

	result, errs, err := SubmitLogForm(context.Background(), store, zap.NewNop(), form, adminIdentity())
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "Missing consultant", errs["consultant_id"])
	assert.Empty(t, store.upserted, "validation failure must not hit the API")
}

func TestSubmitLogForm_NewPropertyDraftNullsExistingID(t *testing.T) {
	form := validForm()
	form.Rows[0].Property = model.PropertyRef{Draft: &model.NewPropertyDraft{
		Name:        "Acacia Camp",
		PortfolioID: "pf-1",
		CountryID:   "ke",
	}}
	form.Rows[0].Channel = model.ChannelRef{NewName: "New Channel Co"}
	store := &mockLogStore{}

	_, errs, err := SubmitLogForm(context.Background(), store, zap.NewNop(), form, adminIdentity())
	require.NoError(t, err)
	require.True(t, errs.OK())

	row := store.upserted[0][0]
	assert.Nil(t, row.PropertyID)
	require.NotNil(t, row.NewPropertyName)
	assert.Equal(t, "Acacia Camp", *row.NewPropertyName)
	assert.Nil(t, row.BookingChannelID)
	require.NotNil(t, row.NewChannelName)
	assert.Equal(t, "New Channel Co", *row.NewChannelName)
}

func TestSubmitLogForm_MultiRowOverlapBlocked(t *testing.T) {
	form := validForm()
	key := form.AddRow()
	for i := range form.Rows {
		if form.Rows[i].Key == key {
			form.Rows[i].Property = model.PropertyRef{Existing: &model.ExistingPropertyRef{ID: "prop-2"}}
			form.Rows[i].Channel = model.ChannelRef{ID: "ch-1"}
			form.Rows[i].DateIn = "2024-01-03"
			form.Rows[i].DateOut = "2024-01-08"
		}
	}
	store := &mockLogStore{}

	_, errs, err := SubmitLogForm(context.Background(), store, zap.NewNop(), form, adminIdentity())
	require.NoError(t, err)
	assert.Contains(t, errs["rows"], "Entries 1 and 2")
	assert.Empty(t, store.upserted)
}

func TestSubmitLogForm_ViewerGetsAdvisoryWarning(t *testing.T) {
	store := &mockLogStore{}
	viewer := &model.Identity{Token: "tok", Role: model.RoleViewer, Email: "v@example.com"}

	result, errs, err := SubmitLogForm(context.Background(), store, zap.NewNop(), validForm(), viewer)
	require.NoError(t, err)
	require.True(t, errs.OK())

	// The request is still sent; the warning is advisory only.
	assert.Len(t, store.upserted, 1)
	assert.Contains(t, result.Warnings, NonAdminSaveWarning)
}

func TestSubmitLogForm_APIErrorPropagates(t *testing.T) {
	store := &mockLogStore{upsertErr: errors.New("boom")}

	result, errs, err := SubmitLogForm(context.Background(), store, zap.NewNop(), validForm(), adminIdentity())
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Nil(t, errs)
}

func TestSubmitLogForm_EditCarriesEntryID(t *testing.T) {
	form := validForm()
	form.Rows[0].EntryID = "entry-9"
	store := &mockLogStore{}

	_, _, err := SubmitLogForm(context.Background(), store, zap.NewNop(), form, adminIdentity())
	require.NoError(t, err)
	row := store.upserted[0][0]
	require.NotNil(t, row.ID)
	assert.Equal(t, "entry-9", *row.ID)
}

func TestDeleteLogEntry_AdminOnly(t *testing.T) {
	store := &mockLogStore{}

	err := DeleteLogEntry(context.Background(), store, zap.NewNop(), "entry-1", adminIdentity())
	require.NoError(t, err)
	assert.Equal(t, []string{"entry-1"}, store.deletedIDs)

	viewer := &model.Identity{Role: model.RoleViewer}
	err = DeleteLogEntry(context.Background(), store, zap.NewNop(), "entry-2", viewer)
	assert.Error(t, err)
	assert.NotContains(t, store.deletedIDs, "entry-2")
}

func TestLogForm_RowManagement(t *testing.T) {
	form := NewLogForm()
	require.Len(t, form.Rows, 1)

	key := form.AddRow()
	assert.Len(t, form.Rows, 2)

	assert.True(t, form.RemoveRow(key))
	assert.Len(t, form.Rows, 1)

	// The last row can't be removed
	assert.False(t, form.RemoveRow(form.Rows[0].Key))
	assert.Len(t, form.Rows, 1)
}

func TestLogForm_FieldErrorHonorsTouchState(t *testing.T) {
	form := NewLogForm()
	form.PrimaryTraveler = "Smith" // invalid, but untouched

	assert.Empty(t, form.FieldError("primary_traveler"))

	form.Touch.Blur("primary_traveler")
	assert.NotEmpty(t, form.FieldError("primary_traveler"))

	// Full-form validation flags it regardless of touch state
	assert.NotEmpty(t, form.Validate()["primary_traveler"])
}
