package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	registryapp "github.com/nestline/backend/internal/application/registry"
	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
)

func setupNoteHandler(noteRepo *MockNoteRepository, itemRepo *MockItemRepository) *NoteHandler {
	return NewNoteHandler(registryapp.NewNoteService(noteRepo, itemRepo))
}

func TestNoteHandler_Upsert_Create(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	itemRepo := new(MockItemRepository)
	handler := setupNoteHandler(noteRepo, itemRepo)

	memberID := uuid.New()
	item := createTestItem(t, memberID, "Rocking Chair")

	itemRepo.On("FindByIDForOwner", mock.Anything, memberID, item.ID).Return(item, nil)
	noteRepo.On("FindByOwnerAndItem", mock.Anything, memberID, item.ID).Return(nil, shared.ErrNotFound)
	noteRepo.On("Save", mock.Anything, mock.AnythingOfType("*registry.RegistryNote")).Return(nil)

	router := setupTestRouter(memberID)
	router.PUT("/registry/items/:id/note", handler.Upsert)

	req := httptest.NewRequest(http.MethodPut, "/registry/items/"+item.ID.String()+"/note",
		bytes.NewBufferString(`{"note":"Grandma wants to buy this one"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Grandma wants to buy this one")
	noteRepo.AssertExpectations(t)
}

func TestNoteHandler_Upsert_ItemNotOwned(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	itemRepo := new(MockItemRepository)
	handler := setupNoteHandler(noteRepo, itemRepo)

	memberID := uuid.New()
	itemID := uuid.New()
	itemRepo.On("FindByIDForOwner", mock.Anything, memberID, itemID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter(memberID)
	router.PUT("/registry/items/:id/note", handler.Upsert)

	req := httptest.NewRequest(http.MethodPut, "/registry/items/"+itemID.String()+"/note",
		bytes.NewBufferString(`{"note":"text"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	noteRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestNoteHandler_Get_Success(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	handler := setupNoteHandler(noteRepo, new(MockItemRepository))

	memberID := uuid.New()
	itemID := uuid.New()
	note, err := registry.NewRegistryNote(memberID, itemID, "Check stroller compatibility")
	require.NoError(t, err)

	noteRepo.On("FindByOwnerAndItem", mock.Anything, memberID, itemID).Return(note, nil)

	router := setupTestRouter(memberID)
	router.GET("/registry/items/:id/note", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/registry/items/"+itemID.String()+"/note", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Check stroller compatibility")
}

func TestNoteHandler_Get_Missing(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	handler := setupNoteHandler(noteRepo, new(MockItemRepository))

	memberID := uuid.New()
	itemID := uuid.New()
	noteRepo.On("FindByOwnerAndItem", mock.Anything, memberID, itemID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter(memberID)
	router.GET("/registry/items/:id/note", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/registry/items/"+itemID.String()+"/note", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoteHandler_List(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	handler := setupNoteHandler(noteRepo, new(MockItemRepository))

	memberID := uuid.New()
	note, err := registry.NewRegistryNote(memberID, uuid.New(), "Prefer the gray colorway")
	require.NoError(t, err)

	noteRepo.On("FindAllForOwner", mock.Anything, memberID).
		Return([]registry.RegistryNote{*note}, nil)

	router := setupTestRouter(memberID)
	router.GET("/registry/notes", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/registry/notes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Prefer the gray colorway")
}

func TestNoteHandler_Delete_Success(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	handler := setupNoteHandler(noteRepo, new(MockItemRepository))

	memberID := uuid.New()
	itemID := uuid.New()
	noteRepo.On("DeleteByOwnerAndItem", mock.Anything, memberID, itemID).Return(nil)

	router := setupTestRouter(memberID)
	router.DELETE("/registry/items/:id/note", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/registry/items/"+itemID.String()+"/note", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	noteRepo.AssertExpectations(t)
}
