package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("property not found")

// ActivityEntry is one line of the audit trail kept alongside each property.
type ActivityEntry struct {
	PropertyID string `json:"propertyId"`
	Action     string `json:"action"` // create|update
	Actor      string `json:"actor"`
	Detail     string `json:"detail"`
}

type PropertyRepository interface {
	// Write paths
	UpsertProperty(ctx context.Context, p Property) error
	AppendActivity(ctx context.Context, e ActivityEntry) error

	// Read paths
	GetProperty(ctx context.Context, id string) (Property, error)
	GetPropertyBySlug(ctx context.Context, slug string) (Property, error)
	ListProperties(ctx context.Context, q PropertiesQuery) (PropertiesPage, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// IDGenerator supplies identifiers for properties, media categories and media
// items that arrive without one. Injected so tests can use a deterministic
// sequence.
type IDGenerator interface {
	NewID() string
}

// Read models & queries

type PropertySummary struct {
	ID           string       `json:"id"`
	Slug         string       `json:"slug"`
	Name         string       `json:"name"`
	Type         PropertyType `json:"type"`
	City         string       `json:"city"`
	PostalCode   string       `json:"postalCode"`
	MaxGuests    int          `json:"maxGuests"`
	ProfilePhoto string       `json:"profilePhoto"`
}

type PropertiesQuery struct {
	City  *string
	Type  *PropertyType
	Limit int
}

type PropertiesPage struct {
	Items      []PropertySummary `json:"items"`
	NextCursor *string           `json:"nextCursor"`
}
