package domain

import (
	"context"
	"errors"

	"grocery/internal/models"
)

var (
	// ErrItemNotFound is returned when the referenced item id does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrConstraintViolation is returned when the store rejects a write.
	ErrConstraintViolation = errors.New("constraint violation")
)

type ItemRepository interface {
	CreateItem(ctx context.Context, in models.ItemCreate) (*models.Item, error)
	ListItems(ctx context.Context, purchased *bool) ([]models.Item, error)
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) (*models.Item, error)
	ToggleItem(ctx context.Context, id int64) (*models.Item, error)
	DeleteItem(ctx context.Context, id int64) (bool, error)
}

// RateLimiter decides whether one more request for key fits the budget.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
