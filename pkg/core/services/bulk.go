package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
	"github.com/mwhitfield/safari-backoffice/pkg/core/validation"
)

// CheckDuplicatePrecondition verifies that every selected entry shares the
// same primary traveler, consultant and agency. It runs when the action is
// chosen, before any duplicate form opens.
func CheckDuplicatePrecondition(selection []model.AccommodationLogEntry) error {
	if len(selection) == 0 {
		return fmt.Errorf("no entries selected")
	}
	first := selection[0]
	for _, e := range selection[1:] {
		if e.PrimaryTraveler != first.PrimaryTraveler {
			return fmt.Errorf("selected entries must share the same primary traveler")
		}
		if e.ConsultantID != first.ConsultantID {
			return fmt.Errorf("selected entries must share the same consultant")
		}
		if e.AgencyID != first.AgencyID {
			return fmt.Errorf("selected entries must share the same agency")
		}
	}
	return nil
}

// DuplicateEntries copies the selection under a new traveler name and pax
// count. The copies are submitted without ids so the server inserts new
// rows; everything else carries over from the originals.
func DuplicateEntries(ctx context.Context, store LogStore, logger *zap.Logger, selection []model.AccommodationLogEntry, newTraveler string, paxRaw string) (*model.UpsertResult, validation.Errors, error) {
	if err := CheckDuplicatePrecondition(selection); err != nil {
		return nil, nil, err
	}

	errs := validation.Errors{}
	if msg := validation.PrimaryTraveler(newTraveler); msg != "" {
		errs["primary_traveler"] = msg
	}
	pax, msg := validation.ParsePax(paxRaw)
	if msg != "" {
		errs["num_pax"] = msg
	}

	ranges := make([]validation.StayRange, len(selection))
	for i, e := range selection {
		ranges[i] = validation.StayRange{DateIn: e.DateIn, DateOut: e.DateOut}
	}
	if overlaps := validation.DateOverlaps(ranges); len(overlaps) > 0 {
		errs["dates"] = overlaps[0]
	}

	if !errs.OK() {
		return nil, errs, nil
	}

	rows := make([]model.LogUpsert, len(selection))
	for i, e := range selection {
		u := model.LogUpsert{
			// id stays nil: absent ids force insert-as-copy on the server
			PrimaryTraveler: newTraveler,
			NumPax:          pax,
			DateIn:          e.DateIn,
			DateOut:         e.DateOut,
			BedNights:       validation.BedNights(e.DateIn, e.DateOut, pax),
			ConsultantID:    e.ConsultantID,
		}
		u.ApplyPropertyRef(model.PropertyRef{Existing: &model.ExistingPropertyRef{ID: e.PropertyID}})
		u.ApplyChannelRef(model.ChannelRef{ID: e.BookingChannelID})
		if e.AgencyID != "" {
			agencyID := e.AgencyID
			u.AgencyID = &agencyID
		}
		rows[i] = u
	}

	logger.Info("Duplicating entries",
		zap.Int("count", len(rows)),
		zap.String("new_traveler", newTraveler))

	result, err := store.UpsertAccommodationLogs(ctx, rows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to duplicate entries: %w", err)
	}
	return result, nil, nil
}

// BulkDeleteResult reports per-entry outcomes; deletes are independent and
// partial failure is expected rather than rolled back.
type BulkDeleteResult struct {
	Deleted []string
	Failed  map[string]error
}

// BulkDeleteEntries issues one delete per id. Only admins may delete.
func BulkDeleteEntries(ctx context.Context, store LogStore, logger *zap.Logger, ids []string, identity *model.Identity) (*BulkDeleteResult, error) {
	if identity == nil || identity.Role != model.RoleAdmin {
		return nil, fmt.Errorf("only admins can delete entries")
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no entries selected")
	}

	result := &BulkDeleteResult{Failed: make(map[string]error)}
	for _, id := range ids {
		if err := store.DeleteAccommodationLog(ctx, id); err != nil {
			logger.Warn("Delete failed", zap.String("id", id), zap.Error(err))
			result.Failed[id] = err
			continue
		}
		result.Deleted = append(result.Deleted, id)
	}

	logger.Info("Bulk delete finished",
		zap.Int("deleted", len(result.Deleted)),
		zap.Int("failed", len(result.Failed)))
	return result, nil
}
