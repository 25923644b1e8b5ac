package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mwhitfield/safari-backoffice/pkg/core/filter"
	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// ReferralStore is the slice of the API client referral matching needs.
type ReferralStore interface {
	ListClients(ctx context.Context) ([]model.Client, error)
	ListRelatedEntries(ctx context.Context, identifier, identifierType string) ([]model.RelatedEntry, error)
	MatchClient(ctx context.Context, clientID, logID, referredByID string) (*model.UpsertResult, error)
}

// RelatedEntriesPage is one client-side page of the related-entries lookup.
type RelatedEntriesPage struct {
	Entries []model.RelatedEntry
	Page    int
	Pages   int
	Total   int
}

// FindRelatedEntries looks up entries for an identifier and slices one page
// of results; the API returns the full set, pagination is client-side.
func FindRelatedEntries(ctx context.Context, store ReferralStore, logger *zap.Logger, identifier, identifierType string, page int) (*RelatedEntriesPage, error) {
	if identifier == "" {
		return nil, fmt.Errorf("an identifier is required")
	}
	if identifierType == "" {
		identifierType = "traveler"
	}

	logger.Debug("Fetching related entries",
		zap.String("identifier", identifier),
		zap.String("identifier_type", identifierType))

	entries, err := store.ListRelatedEntries(ctx, identifier, identifierType)
	if err != nil {
		return nil, err
	}

	p := filter.NewPaginator(len(entries), filter.DefaultPageSize)
	start, end := p.Bounds(page)
	if page < 1 {
		page = 1
	}
	if page > p.Pages() {
		page = p.Pages()
	}

	return &RelatedEntriesPage{
		Entries: entries[start:end],
		Page:    page,
		Pages:   p.Pages(),
		Total:   len(entries),
	}, nil
}

// MatchReferral links a client record to the log entry it was referred
// from, optionally recording the referring client.
func MatchReferral(ctx context.Context, store ReferralStore, logger *zap.Logger, clientID, logID, referredByID string) ([]string, error) {
	if clientID == "" {
		return nil, fmt.Errorf("a client is required")
	}
	if logID == "" && referredByID == "" {
		return nil, fmt.Errorf("a matched entry or referring client is required")
	}

	logger.Info("Matching referral",
		zap.String("client_id", clientID),
		zap.String("log_id", logID))

	result, err := store.MatchClient(ctx, clientID, logID, referredByID)
	if err != nil {
		return nil, fmt.Errorf("failed to match referral: %w", err)
	}
	return SummarizeUpsert(result), nil
}
