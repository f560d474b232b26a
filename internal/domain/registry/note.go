package registry

import (
	"time"

	"github.com/google/uuid"

	"github.com/nestline/backend/internal/domain/shared"
)

// RegistryNote is a free-text annotation a member attaches to an item.
// Exactly one note exists per (owner, item) pair; writing again overwrites
// in place. Notes have their own lifecycle: an item disappearing from a
// feed does not remove its note.
type RegistryNote struct {
	shared.BaseEntity
	OwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notes_owner_item,priority:1"`
	ItemID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notes_owner_item,priority:2"`
	Note    string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (RegistryNote) TableName() string {
	return "registry_notes"
}

// NewRegistryNote creates a note for an (owner, item) pair. An empty text
// is valid: it represents an explicitly cleared note, distinct from no note
// existing at all.
func NewRegistryNote(ownerID, itemID uuid.UUID, text string) (*RegistryNote, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Note owner cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Note item cannot be empty")
	}
	if len(text) > 2000 {
		return nil, shared.NewDomainError("INVALID_NOTE", "Note cannot exceed 2000 characters")
	}

	return &RegistryNote{
		BaseEntity: shared.NewBaseEntity(),
		OwnerID:    ownerID,
		ItemID:     itemID,
		Note:       text,
	}, nil
}

// SetText overwrites the note text and bumps the update timestamp
func (n *RegistryNote) SetText(text string) error {
	if len(text) > 2000 {
		return shared.NewDomainError("INVALID_NOTE", "Note cannot exceed 2000 characters")
	}
	n.Note = text
	n.UpdatedAt = time.Now()
	return nil
}
