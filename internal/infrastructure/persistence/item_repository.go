package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID regardless of owner
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.RegistryItem, error) {
	var item registry.RegistryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForOwner finds an item by ID scoped to a member
func (r *GormItemRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*registry.RegistryItem, error) {
	var item registry.RegistryItem
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAllForOwner lists a member's items matching the filter
func (r *GormItemRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter registry.ItemFilter) ([]registry.RegistryItem, error) {
	var items []registry.RegistryItem
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&registry.RegistryItem{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindBySourceForOwner loads every persisted item for one (owner, source)
// pair. No pagination: reconciliation needs the full working set.
func (r *GormItemRepository) FindBySourceForOwner(ctx context.Context, ownerID uuid.UUID, source registry.Source) ([]registry.RegistryItem, error) {
	var items []registry.RegistryItem
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND source = ?", ownerID, source).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *registry.RegistryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveAll persists a batch of items in one transaction
func (r *GormItemRepository) SaveAll(ctx context.Context, items []*registry.RegistryItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := tx.Save(item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes an item by ID
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&registry.RegistryItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts a member's items matching the filter
func (r *GormItemRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter registry.ItemFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&registry.RegistryItem{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormItemRepository) applyFilter(query *gorm.DB, filter registry.ItemFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter registry.ItemFilter) *gorm.DB {
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Source != nil {
		query = query.Where("source = ?", *filter.Source)
	}
	return query
}

// Ensure GormItemRepository implements ItemRepository
var _ registry.ItemRepository = (*GormItemRepository)(nil)
