package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// ListClients fetches the referral/client records awaiting matching.
func (c *Client) ListClients(ctx context.Context) ([]model.Client, error) {
	var out []model.Client
	if err := c.getList(ctx, "/v1/clients", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return out, nil
}

// ListRelatedEntries looks up log entries related to an identifier
// (e.g. a traveler name or email) for referral matching.
func (c *Client) ListRelatedEntries(ctx context.Context, identifier, identifierType string) ([]model.RelatedEntry, error) {
	query := url.Values{}
	query.Set("identifier", identifier)
	query.Set("identifier_type", identifierType)

	var out []model.RelatedEntry
	if err := c.getList(ctx, "/v1/related_entries", query, &out); err != nil {
		return nil, fmt.Errorf("failed to list related entries: %w", err)
	}
	return out, nil
}

type clientMatch struct {
	ID           string  `json:"id"`
	MatchedLogID *string `json:"matched_log_id"`
	ReferredByID *string `json:"referred_by_id"`
}

// MatchClient records a referral match on a client: the log entry it came
// from and, optionally, the referring client.
func (c *Client) MatchClient(ctx context.Context, clientID, logID, referredByID string) (*model.UpsertResult, error) {
	payload := clientMatch{
		ID:           clientID,
		MatchedLogID: optionalID(logID),
		ReferredByID: optionalID(referredByID),
	}

	var result model.UpsertResult
	if err := c.patch(ctx, "/v1/clients", payload, &result); err != nil {
		return nil, fmt.Errorf("failed to match client: %w", err)
	}
	return &result, nil
}
