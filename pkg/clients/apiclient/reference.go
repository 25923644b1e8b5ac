package apiclient

import (
	"context"
	"fmt"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// Reference-data reads. Each returns the full collection.

func (c *Client) ListProperties(ctx context.Context) ([]model.Property, error) {
	var out []model.Property
	if err := c.getList(ctx, "/v1/properties", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return out, nil
}

func (c *Client) ListPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	var out []model.Portfolio
	if err := c.getList(ctx, "/v1/portfolios", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	return out, nil
}

func (c *Client) ListCountries(ctx context.Context) ([]model.Country, error) {
	var out []model.Country
	if err := c.getList(ctx, "/v1/countries", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return out, nil
}

func (c *Client) ListCoreDestinations(ctx context.Context) ([]model.CoreDestination, error) {
	var out []model.CoreDestination
	if err := c.getList(ctx, "/v1/core_destinations", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list core destinations: %w", err)
	}
	return out, nil
}

func (c *Client) ListConsultants(ctx context.Context) ([]model.Consultant, error) {
	var out []model.Consultant
	if err := c.getList(ctx, "/v1/consultants", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list consultants: %w", err)
	}
	return out, nil
}

func (c *Client) ListBookingChannels(ctx context.Context) ([]model.BookingChannel, error) {
	var out []model.BookingChannel
	if err := c.getList(ctx, "/v1/booking_channels", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list booking channels: %w", err)
	}
	return out, nil
}

func (c *Client) ListAgencies(ctx context.Context) ([]model.Agency, error) {
	var out []model.Agency
	if err := c.getList(ctx, "/v1/agencies", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list agencies: %w", err)
	}
	return out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.getList(ctx, "/v1/users", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return out, nil
}

func (c *Client) ListAdminComments(ctx context.Context) ([]model.AdminComment, error) {
	var out []model.AdminComment
	if err := c.getList(ctx, "/v1/admin_comments", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list admin comments: %w", err)
	}
	return out, nil
}

// Single-entity upserts use the id-or-null convention: a nil id inserts,
// a set id updates.

type referenceUpsert struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// UpsertBookingChannel creates or renames a booking channel.
func (c *Client) UpsertBookingChannel(ctx context.Context, id, name string) (*model.UpsertResult, error) {
	var result model.UpsertResult
	payload := referenceUpsert{ID: optionalID(id), Name: name}
	if err := c.patch(ctx, "/v1/booking_channels", payload, &result); err != nil {
		return nil, fmt.Errorf("failed to save booking channel: %w", err)
	}
	return &result, nil
}

// DeleteBookingChannel removes a channel; returns *ConflictError when
// dependent logs exist.
func (c *Client) DeleteBookingChannel(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/v1/booking_channels/"+id); err != nil {
		return fmt.Errorf("failed to delete booking channel: %w", err)
	}
	return nil
}

type countryUpsert struct {
	ID                *string `json:"id"`
	Name              string  `json:"name"`
	CoreDestinationID string  `json:"core_destination_id"`
}

// UpsertCountry creates or renames a country.
func (c *Client) UpsertCountry(ctx context.Context, id, name, coreDestinationID string) (*model.UpsertResult, error) {
	var result model.UpsertResult
	payload := countryUpsert{ID: optionalID(id), Name: name, CoreDestinationID: coreDestinationID}
	if err := c.patch(ctx, "/v1/countries", payload, &result); err != nil {
		return nil, fmt.Errorf("failed to save country: %w", err)
	}
	return &result, nil
}

// DeleteCountry removes a country; returns *ConflictError when dependent
// logs exist.
func (c *Client) DeleteCountry(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/v1/countries/"+id); err != nil {
		return fmt.Errorf("failed to delete country: %w", err)
	}
	return nil
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
