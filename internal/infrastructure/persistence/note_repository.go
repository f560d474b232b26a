package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
)

// GormNoteRepository implements NoteRepository using GORM
type GormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GormNoteRepository
func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

// FindByOwnerAndItem finds the note for an (owner, item) pair
func (r *GormNoteRepository) FindByOwnerAndItem(ctx context.Context, ownerID, itemID uuid.UUID) (*registry.RegistryNote, error) {
	var note registry.RegistryNote
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND item_id = ?", ownerID, itemID).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindAllForOwner lists all notes a member has written
func (r *GormNoteRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]registry.RegistryNote, error) {
	var notes []registry.RegistryNote
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Save creates or updates a note
func (r *GormNoteRepository) Save(ctx context.Context, note *registry.RegistryNote) error {
	return r.db.WithContext(ctx).Save(note).Error
}

// DeleteByOwnerAndItem removes the note for an (owner, item) pair
func (r *GormNoteRepository) DeleteByOwnerAndItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&registry.RegistryNote{}, "owner_id = ? AND item_id = ?", ownerID, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormNoteRepository implements NoteRepository
var _ registry.NoteRepository = (*GormNoteRepository)(nil)
