package apiclient

import (
	"context"
	"fmt"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// ListPropertyDetails fetches every property-detail record.
func (c *Client) ListPropertyDetails(ctx context.Context) ([]model.PropertyDetail, error) {
	var out []model.PropertyDetail
	if err := c.getList(ctx, "/v1/property_details", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list property details: %w", err)
	}
	return out, nil
}

// GetPropertyDetail fetches a single record by id.
func (c *Client) GetPropertyDetail(ctx context.Context, id string) (*model.PropertyDetail, error) {
	var out model.PropertyDetail
	if err := c.get(ctx, "/v1/property_details/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get property detail %s: %w", id, err)
	}
	return &out, nil
}

// UpsertPropertyDetail saves attribute flags; an empty detail id inserts.
func (c *Client) UpsertPropertyDetail(ctx context.Context, detail model.PropertyDetail) (*model.UpsertResult, error) {
	payload := struct {
		ID *string `json:"id"`
		model.PropertyDetail
	}{ID: optionalID(detail.ID), PropertyDetail: detail}

	var result model.UpsertResult
	if err := c.patch(ctx, "/v1/property_details", payload, &result); err != nil {
		return nil, fmt.Errorf("failed to save property detail: %w", err)
	}
	return &result, nil
}
