package apiclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// SaveTripReport submits a trip report. The report document is built by the
// trip-report service; status is "draft" or "final".
func (c *Client) SaveTripReport(ctx context.Context, report json.RawMessage) (*model.UpsertResult, error) {
	var result model.UpsertResult
	if err := c.patch(ctx, "/v1/trip_reports", report, &result); err != nil {
		return nil, fmt.Errorf("failed to save trip report: %w", err)
	}
	return &result, nil
}
