package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mwhitfield/safari-backoffice/pkg/clients/apiclient"
	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// MaxAffectedLogsShown caps how many dependent records a blocked delete
// lists before collapsing into an overflow count.
const MaxAffectedLogsShown = 10

// ReferenceStore is the slice of the API client the reference-data forms
// need.
type ReferenceStore interface {
	UpsertBookingChannel(ctx context.Context, id, name string) (*model.UpsertResult, error)
	DeleteBookingChannel(ctx context.Context, id string) error
	UpsertCountry(ctx context.Context, id, name, coreDestinationID string) (*model.UpsertResult, error)
	DeleteCountry(ctx context.Context, id string) error
	UpsertPropertyDetail(ctx context.Context, detail model.PropertyDetail) (*model.UpsertResult, error)
}

// SaveBookingChannel creates (empty id) or renames a booking channel.
func SaveBookingChannel(ctx context.Context, store ReferenceStore, logger *zap.Logger, id, name string) ([]string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	logger.Info("Saving booking channel", zap.String("id", id), zap.String("name", name))
	result, err := store.UpsertBookingChannel(ctx, id, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return SummarizeUpsert(result), nil
}

// SaveCountry creates (empty id) or renames a country.
func SaveCountry(ctx context.Context, store ReferenceStore, logger *zap.Logger, id, name, coreDestinationID string) ([]string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	logger.Info("Saving country", zap.String("id", id), zap.String("name", name))
	result, err := store.UpsertCountry(ctx, id, strings.TrimSpace(name), coreDestinationID)
	if err != nil {
		return nil, err
	}
	return SummarizeUpsert(result), nil
}

// SavePropertyDetail saves attribute flags for a property.
func SavePropertyDetail(ctx context.Context, store ReferenceStore, logger *zap.Logger, detail model.PropertyDetail) ([]string, error) {
	if detail.PropertyID == "" {
		return nil, fmt.Errorf("a property is required")
	}
	logger.Info("Saving property detail", zap.String("property_id", detail.PropertyID))
	result, err := store.UpsertPropertyDetail(ctx, detail)
	if err != nil {
		return nil, err
	}
	return SummarizeUpsert(result), nil
}

// DeleteBlockedError is the user-facing form of a dependency conflict: the
// dependent records to show, already capped, plus the overflow count.
type DeleteBlockedError struct {
	Shown    []string
	Overflow int
}

func (e *DeleteBlockedError) Error() string {
	msg := fmt.Sprintf("delete blocked by %d dependent entries", len(e.Shown)+e.Overflow)
	return msg
}

// DeleteBookingChannel deletes a channel, mapping a dependency conflict to
// a capped DeleteBlockedError.
func DeleteBookingChannel(ctx context.Context, store ReferenceStore, logger *zap.Logger, id string, identity *model.Identity) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	logger.Info("Deleting booking channel", zap.String("id", id))
	return mapConflict(store.DeleteBookingChannel(ctx, id))
}

// DeleteCountry deletes a country, mapping a dependency conflict to a
// capped DeleteBlockedError.
func DeleteCountry(ctx context.Context, store ReferenceStore, logger *zap.Logger, id string, identity *model.Identity) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	logger.Info("Deleting country", zap.String("id", id))
	return mapConflict(store.DeleteCountry(ctx, id))
}

func requireAdmin(identity *model.Identity) error {
	if identity == nil || identity.Role != model.RoleAdmin {
		return fmt.Errorf("only admins can delete reference data")
	}
	return nil
}

func mapConflict(err error) error {
	if err == nil {
		return nil
	}
	var conflict *apiclient.ConflictError
	if errors.As(err, &conflict) {
		return capAffectedLogs(conflict.AffectedLogs)
	}
	return err
}

func capAffectedLogs(logs []string) *DeleteBlockedError {
	blocked := &DeleteBlockedError{}
	if len(logs) > MaxAffectedLogsShown {
		blocked.Shown = logs[:MaxAffectedLogsShown]
		blocked.Overflow = len(logs) - MaxAffectedLogsShown
	} else {
		blocked.Shown = logs
	}
	return blocked
}
