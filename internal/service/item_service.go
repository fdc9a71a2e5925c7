package service

import (
	"context"
	"fmt"
	"io"

	"grocery/internal/domain"
	"grocery/internal/events"
	"grocery/internal/export"
	"grocery/internal/models"

	"github.com/rs/zerolog"
)

// ItemService validates payloads before they reach the repository and
// announces every successful write.
type ItemService struct {
	repo   domain.ItemRepository
	events domain.EventPublisher
	logger zerolog.Logger
}

func NewItemService(repo domain.ItemRepository, publisher domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("component", "item-service").Logger()
	}
	return &ItemService{
		repo:   repo,
		events: publisher,
		logger: l,
	}
}

func (s *ItemService) Create(ctx context.Context, in models.ItemCreate) (*models.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	item, err := s.repo.CreateItem(ctx, in)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventItemCreated, item)
	return item, nil
}

// List returns every item, or only those matching purchased when it is set.
func (s *ItemService) List(ctx context.Context, purchased *bool) ([]models.Item, error) {
	return s.repo.ListItems(ctx, purchased)
}

func (s *ItemService) Get(ctx context.Context, id int64) (*models.Item, error) {
	return s.repo.GetItem(ctx, id)
}

// Update rejects an empty or invalid patch before touching the store.
func (s *ItemService) Update(ctx context.Context, id int64, patch models.ItemPatch) (*models.Item, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	item, err := s.repo.UpdateItem(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventItemUpdated, item)
	return item, nil
}

func (s *ItemService) Toggle(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.repo.ToggleItem(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventItemToggled, item)
	return item, nil
}

// Delete returns domain.ErrItemNotFound when nothing was removed.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	removed, err := s.repo.DeleteItem(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrItemNotFound
	}
	s.publish(events.EventItemDeleted, &models.Item{ID: id})
	return nil
}

// Export writes the full list as a spreadsheet.
func (s *ItemService) Export(ctx context.Context, w io.Writer) error {
	items, err := s.repo.ListItems(ctx, nil)
	if err != nil {
		return err
	}
	if err := export.WriteItems(w, items); err != nil {
		return fmt.Errorf("export items: %w", err)
	}
	return nil
}

func (s *ItemService) publish(eventType string, item *models.Item) {
	if s.events == nil {
		return
	}
	payload := events.ItemEventPayload{
		ItemID:    item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Category:  item.Category,
		Purchased: item.Purchased,
	}
	if err := s.events.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Int64("item_id", item.ID).Msg("publish event")
	}
}
