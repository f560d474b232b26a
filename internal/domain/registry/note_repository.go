package registry

import (
	"context"

	"github.com/google/uuid"
)

// NoteRepository defines the persistence contract for registry notes
type NoteRepository interface {
	// FindByOwnerAndItem finds the note for an (owner, item) pair
	FindByOwnerAndItem(ctx context.Context, ownerID, itemID uuid.UUID) (*RegistryNote, error)
	// FindAllForOwner lists all notes a member has written
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]RegistryNote, error)
	// Save inserts or updates a note
	Save(ctx context.Context, note *RegistryNote) error
	// DeleteByOwnerAndItem removes the note for an (owner, item) pair
	DeleteByOwnerAndItem(ctx context.Context, ownerID, itemID uuid.UUID) error
}
