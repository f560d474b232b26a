package registry

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
)

// NoteService handles a member's item notes. A note lives independently of
// feed syncs: refreshing or re-ingesting an item never touches its note.
type NoteService struct {
	noteRepo registry.NoteRepository
	itemRepo registry.ItemRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo registry.NoteRepository, itemRepo registry.ItemRepository) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		itemRepo: itemRepo,
	}
}

// Get retrieves the note for one of the member's items
func (s *NoteService) Get(ctx context.Context, ownerID, itemID uuid.UUID) (*NoteResponse, error) {
	note, err := s.noteRepo.FindByOwnerAndItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}
	response := ToNoteResponse(note)
	return &response, nil
}

// List retrieves all notes a member has written
func (s *NoteService) List(ctx context.Context, ownerID uuid.UUID) ([]NoteResponse, error) {
	notes, err := s.noteRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]NoteResponse, len(notes))
	for i := range notes {
		responses[i] = ToNoteResponse(&notes[i])
	}
	return responses, nil
}

// Upsert writes the note for one of the member's items, overwriting any
// existing text. Writing an empty string keeps the note row with cleared
// text, which is distinct from deleting the note.
func (s *NoteService) Upsert(ctx context.Context, ownerID, itemID uuid.UUID, req UpsertNoteRequest) (*NoteResponse, error) {
	// The item must exist and belong to the member.
	if _, err := s.itemRepo.FindByIDForOwner(ctx, ownerID, itemID); err != nil {
		return nil, err
	}

	note, err := s.noteRepo.FindByOwnerAndItem(ctx, ownerID, itemID)
	switch {
	case err == nil:
		if err := note.SetText(req.Note); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		note, err = registry.NewRegistryNote(ownerID, itemID, req.Note)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	response := ToNoteResponse(note)
	return &response, nil
}

// Delete removes the note for one of the member's items entirely
func (s *NoteService) Delete(ctx context.Context, ownerID, itemID uuid.UUID) error {
	return s.noteRepo.DeleteByOwnerAndItem(ctx, ownerID, itemID)
}
