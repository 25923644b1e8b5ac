package apiclient

import (
	"context"
	"fmt"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// ListAccommodationLogs fetches the full collection; the API does not
// paginate this endpoint.
func (c *Client) ListAccommodationLogs(ctx context.Context) ([]model.AccommodationLogEntry, error) {
	var logs []model.AccommodationLogEntry
	if err := c.getList(ctx, "/v1/accommodation_logs", nil, &logs); err != nil {
		return nil, fmt.Errorf("failed to list accommodation logs: %w", err)
	}
	return logs, nil
}

// UpsertAccommodationLogs posts a batch of row payloads. Rows with a nil id
// insert; rows with an id update. The response envelope is only used to
// compose the saved summary.
func (c *Client) UpsertAccommodationLogs(ctx context.Context, rows []model.LogUpsert) (*model.UpsertResult, error) {
	var result model.UpsertResult
	if err := c.patch(ctx, "/v1/accommodation_logs", rows, &result); err != nil {
		return nil, fmt.Errorf("failed to upsert accommodation logs: %w", err)
	}
	return &result, nil
}

// DeleteAccommodationLog deletes one entry by id.
func (c *Client) DeleteAccommodationLog(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/v1/accommodation_logs/"+id); err != nil {
		return fmt.Errorf("failed to delete accommodation log %s: %w", id, err)
	}
	return nil
}
