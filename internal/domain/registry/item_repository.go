package registry

import (
	"context"

	"github.com/google/uuid"

	"github.com/nestline/backend/internal/domain/shared"
)

// ItemFilter narrows item listings beyond the common pagination filter
type ItemFilter struct {
	shared.Filter
	Category *Category
	Source   *Source
}

// ItemRepository defines the persistence contract for registry items
type ItemRepository interface {
	// FindByID finds an item by its ID regardless of owner
	FindByID(ctx context.Context, id uuid.UUID) (*RegistryItem, error)
	// FindByIDForOwner finds an item by ID scoped to a member
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*RegistryItem, error)
	// FindAllForOwner lists a member's items, optionally filtered by
	// category and source
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter ItemFilter) ([]RegistryItem, error)
	// FindBySourceForOwner lists every persisted item for one
	// (owner, source) pair; this is the reconciliation working set
	FindBySourceForOwner(ctx context.Context, ownerID uuid.UUID, source Source) ([]RegistryItem, error)
	// Save inserts or updates a single item
	Save(ctx context.Context, item *RegistryItem) error
	// SaveAll persists a batch of items in one transaction
	SaveAll(ctx context.Context, items []*RegistryItem) error
	// Delete removes an item by ID
	Delete(ctx context.Context, id uuid.UUID) error
	// CountForOwner counts a member's items matching the filter
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter ItemFilter) (int64, error)
}
