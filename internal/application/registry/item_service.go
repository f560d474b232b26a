package registry

import (
	"context"

	"github.com/google/uuid"

	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
)

// ItemService handles a member's registry item operations
type ItemService struct {
	itemRepo       registry.ItemRepository
	eventPublisher shared.EventPublisher
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo registry.ItemRepository, eventPublisher shared.EventPublisher) *ItemService {
	return &ItemService{
		itemRepo:       itemRepo,
		eventPublisher: eventPublisher,
	}
}

// List retrieves a member's items with filtering and pagination
func (s *ItemService) List(ctx context.Context, ownerID uuid.UUID, filter ListItemsFilter) ([]ItemResponse, int64, error) {
	domainFilter := registry.ItemFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	if filter.Category != "" {
		category := registry.Category(filter.Category)
		if !category.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_CATEGORY", "Unknown category filter")
		}
		domainFilter.Category = &category
	}
	if filter.Source != "" {
		source, ok := registry.ParseSource(filter.Source)
		if !ok {
			return nil, 0, shared.NewDomainError("INVALID_SOURCE", "Unknown source filter")
		}
		domainFilter.Source = &source
	}

	items, err := s.itemRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses, total, nil
}

// GetByID retrieves one of the member's items. An item owned by another
// member is reported as not found, never as forbidden.
func (s *ItemService) GetByID(ctx context.Context, ownerID, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForOwner(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// AddManual creates a member-entered item. All validation happens before
// anything is persisted.
func (s *ItemService) AddManual(ctx context.Context, ownerID uuid.UUID, req AddManualItemRequest) (*ItemResponse, error) {
	item, err := registry.NewManualItem(ownerID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Brand != "" {
		item.SetBrand(req.Brand)
	}
	if req.Price != nil {
		if err := item.SetPrice(req.Price); err != nil {
			return nil, err
		}
	}
	if req.URL != "" {
		item.SetLink(req.URL)
	}
	if req.ImageURL != "" {
		item.SetImage(req.ImageURL)
	}
	if req.Category != "" {
		// Member input is free text; it resolves through the same alias
		// table feed labels do.
		if err := item.SetCategory(registry.ResolveCategory(req.Category)); err != nil {
			return nil, err
		}
	}
	if req.Description != "" {
		item.SetDescription(req.Description)
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, item)

	response := ToItemResponse(item)
	return &response, nil
}

// Update applies the non-nil fields of the request to a member's item
func (s *ItemService) Update(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForOwner(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := item.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Brand != nil {
		item.SetBrand(*req.Brand)
	}
	if req.Price != nil {
		if err := item.SetPrice(req.Price); err != nil {
			return nil, err
		}
	}
	if req.URL != nil {
		item.SetLink(*req.URL)
	}
	if req.ImageURL != nil {
		item.SetImage(*req.ImageURL)
	}
	if req.Category != nil {
		if err := item.SetCategory(registry.ResolveCategory(*req.Category)); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		item.SetDescription(*req.Description)
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, item)

	response := ToItemResponse(item)
	return &response, nil
}

// Delete removes a member's item. This is the only path that ever removes
// an item; syncs never delete.
func (s *ItemService) Delete(ctx context.Context, ownerID, itemID uuid.UUID) error {
	item, err := s.itemRepo.FindByIDForOwner(ctx, ownerID, itemID)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, registry.NewItemDeletedEvent(ownerID, item.ID))
	}
	return nil
}

// publishDomainEvents publishes pending events from the item aggregate.
// Event bus errors are logged by the bus, not propagated.
func (s *ItemService) publishDomainEvents(ctx context.Context, item *registry.RegistryItem) {
	if s.eventPublisher == nil {
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	item.ClearDomainEvents()
}
