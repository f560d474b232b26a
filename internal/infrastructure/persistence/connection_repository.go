package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
)

// GormConnectionRepository implements ConnectionRepository using GORM
type GormConnectionRepository struct {
	db *gorm.DB
}

// NewGormConnectionRepository creates a new GormConnectionRepository
func NewGormConnectionRepository(db *gorm.DB) *GormConnectionRepository {
	return &GormConnectionRepository{db: db}
}

// FindByOwnerAndService finds a member's connection for a service
func (r *GormConnectionRepository) FindByOwnerAndService(ctx context.Context, ownerID uuid.UUID, service registry.Source) (*registry.LinkedAccountConnection, error) {
	var conn registry.LinkedAccountConnection
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND service = ?", ownerID, service).
		First(&conn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &conn, nil
}

// FindAllForOwner lists every connection a member holds
func (r *GormConnectionRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]registry.LinkedAccountConnection, error) {
	var conns []registry.LinkedAccountConnection
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("connected_at ASC").
		Find(&conns).Error; err != nil {
		return nil, err
	}
	return conns, nil
}

// Save creates or updates a connection
func (r *GormConnectionRepository) Save(ctx context.Context, conn *registry.LinkedAccountConnection) error {
	return r.db.WithContext(ctx).Save(conn).Error
}

// DeleteByOwnerAndService removes a member's connection for a service
func (r *GormConnectionRepository) DeleteByOwnerAndService(ctx context.Context, ownerID uuid.UUID, service registry.Source) error {
	result := r.db.WithContext(ctx).
		Delete(&registry.LinkedAccountConnection{}, "owner_id = ? AND service = ?", ownerID, service)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormConnectionRepository implements ConnectionRepository
var _ registry.ConnectionRepository = (*GormConnectionRepository)(nil)
