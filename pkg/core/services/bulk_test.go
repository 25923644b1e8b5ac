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

func bulkSelection() []model.AccommodationLogEntry {
	return []model.AccommodationLogEntry{
		{
			ID: "e1", PrimaryTraveler: "Smith/Jane", ConsultantID: "cons-1", AgencyID: "ag-1",
			PropertyID: "prop-1", BookingChannelID: "ch-1",
			DateIn: "2024-01-01", DateOut: "2024-01-05",
		},
		{
			ID: "e2", PrimaryTraveler: "Smith/Jane", ConsultantID: "cons-1", AgencyID: "ag-1",
			PropertyID: "prop-2", BookingChannelID: "ch-1",
			DateIn: "2024-01-05", DateOut: "2024-01-10",
		},
	}
}

func TestCheckDuplicatePrecondition(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]model.AccommodationLogEntry)
		wantErr string
	}{
		{"matching selection", func(s []model.AccommodationLogEntry) {}, ""},
		{
			"different traveler",
			func(s []model.AccommodationLogEntry) { s[1].PrimaryTraveler = "Jones/Bob" },
			"primary traveler",
		},
		{
			"different consultant",
			func(s []model.AccommodationLogEntry) { s[1].ConsultantID = "cons-2" },
			"consultant",
		},
		{
			"different agency",
			func(s []model.AccommodationLogEntry) { s[1].AgencyID = "ag-2" },
			"agency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selection := bulkSelection()
			tt.mutate(selection)
			err := CheckDuplicatePrecondition(selection)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}

	t.Run("empty selection", func(t *testing.T) {
		assert.Error(t, CheckDuplicatePrecondition(nil))
	})
}

func TestDuplicateEntries_StripsIDsAndAppliesNewTraveler(t *testing.T) {
	store := &mockLogStore{}

	_, errs, err := DuplicateEntries(context.Background(), store, zap.NewNop(), bulkSelection(), "Doe/John", "3")
	require.NoError(t, err)
	require.True(t, errs.OK())

	require.Len(t, store.upserted, 1)
	rows := store.upserted[0]
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Nil(t, row.ID, "duplicates must not carry the original id")
		assert.Equal(t, "Doe/John", row.PrimaryTraveler)
		assert.Equal(t, 3, row.NumPax)
	}
	assert.Equal(t, 12, rows[0].BedNights, "4 nights x 3 pax")
	require.NotNil(t, rows[0].PropertyID)
	assert.Equal(t, "prop-1", *rows[0].PropertyID)
}

func TestDuplicateEntries_InvalidTravelerBlocked(t *testing.T) {
	store := &mockLogStore{}

	_, errs, err := DuplicateEntries(context.Background(), store, zap.NewNop(), bulkSelection(), "NoSlashHere", "3")
	require.NoError(t, err)
	assert.NotEmpty(t, errs["primary_traveler"])
	assert.Empty(t, store.upserted)
}

func TestDuplicateEntries_OverlappingSelectionBlocked(t *testing.T) {
	selection := bulkSelection()
	selection[1].DateIn = "2024-01-03" // overlaps the first stay
	store := &mockLogStore{}

	_, errs, err := DuplicateEntries(context.Background(), store, zap.NewNop(), selection, "Doe/John", "2")
	require.NoError(t, err)
	assert.NotEmpty(t, errs["dates"])
	assert.Empty(t, store.upserted)
}

func TestDuplicateEntries_PreconditionViolationRefuses(t *testing.T) {
	selection := bulkSelection()
	selection[1].ConsultantID = "cons-2"
	store := &mockLogStore{}

	_, _, err := DuplicateEntries(context.Background(), store, zap.NewNop(), selection, "Doe/John", "2")
	assert.Error(t, err)
	assert.Empty(t, store.upserted)
}

func TestBulkDeleteEntries_PartialFailure(t *testing.T) {
	store := &mockLogStore{}
	failing := &failingDeleteStore{mockLogStore: store, failID: "e2"}

	result, err := BulkDeleteEntries(context.Background(), failing, zap.NewNop(), []string{"e1", "e2", "e3"}, adminIdentity())
	require.NoError(t, err)

	assert.Equal(t, []string{"e1", "e3"}, result.Deleted)
	require.Len(t, result.Failed, 1)
	assert.Error(t, result.Failed["e2"])
}

func TestBulkDeleteEntries_NonAdminRefused(t *testing.T) {
	store := &mockLogStore{}
	viewer := &model.Identity{Role: model.RoleViewer}

	_, err := BulkDeleteEntries(context.Background(), store, zap.NewNop(), []string{"e1"}, viewer)
	assert.Error(t, err)
	assert.Empty(t, store.deletedIDs)
}

// failingDeleteStore fails deletes for one specific id
type failingDeleteStore struct {
	*mockLogStore
	failID string
}

func (f *failingDeleteStore) DeleteAccommodationLog(ctx context.Context, id string) error {
	if id == f.failID {
		return errors.New("delete rejected")
	}
	return f.mockLogStore.DeleteAccommodationLog(ctx, id)
}
