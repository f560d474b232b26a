package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
	"github.com/nestline/backend/internal/interfaces/http/middleware"
)

// MockItemRepository implements registry.ItemRepository for testing
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.RegistryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.RegistryItem), args.Error(1)
}

func (m *MockItemRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*registry.RegistryItem, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.RegistryItem), args.Error(1)
}

func (m *MockItemRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter registry.ItemFilter) ([]registry.RegistryItem, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registry.RegistryItem), args.Error(1)
}

func (m *MockItemRepository) FindBySourceForOwner(ctx context.Context, ownerID uuid.UUID, source registry.Source) ([]registry.RegistryItem, error) {
	args := m.Called(ctx, ownerID, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registry.RegistryItem), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *registry.RegistryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) SaveAll(ctx context.Context, items []*registry.RegistryItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter registry.ItemFilter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockConnectionRepository implements registry.ConnectionRepository for testing
type MockConnectionRepository struct {
	mock.Mock
}

func (m *MockConnectionRepository) FindByOwnerAndService(ctx context.Context, ownerID uuid.UUID, service registry.Source) (*registry.LinkedAccountConnection, error) {
	args := m.Called(ctx, ownerID, service)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.LinkedAccountConnection), args.Error(1)
}

func (m *MockConnectionRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]registry.LinkedAccountConnection, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registry.LinkedAccountConnection), args.Error(1)
}

func (m *MockConnectionRepository) Save(ctx context.Context, conn *registry.LinkedAccountConnection) error {
	args := m.Called(ctx, conn)
	return args.Error(0)
}

func (m *MockConnectionRepository) DeleteByOwnerAndService(ctx context.Context, ownerID uuid.UUID, service registry.Source) error {
	args := m.Called(ctx, ownerID, service)
	return args.Error(0)
}

// MockNoteRepository implements registry.NoteRepository for testing
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) FindByOwnerAndItem(ctx context.Context, ownerID, itemID uuid.UUID) (*registry.RegistryNote, error) {
	args := m.Called(ctx, ownerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.RegistryNote), args.Error(1)
}

func (m *MockNoteRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]registry.RegistryNote, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registry.RegistryNote), args.Error(1)
}

func (m *MockNoteRepository) Save(ctx context.Context, note *registry.RegistryNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) DeleteByOwnerAndItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	args := m.Called(ctx, ownerID, itemID)
	return args.Error(0)
}

// MockEventPublisher implements shared.EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// fakeAdapter serves canned items as a feed.Adapter
type fakeAdapter struct {
	source registry.Source
	items  []*registry.RegistryItem
	err    error
}

func (a *fakeAdapter) Source() registry.Source {
	return a.source
}

func (a *fakeAdapter) FetchItems(_ context.Context, _ uuid.UUID) ([]*registry.RegistryItem, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.items, nil
}

// fakeLocker always grants the sync lock unless denied is set
type fakeLocker struct {
	denied bool
}

func (l *fakeLocker) Acquire(_ context.Context, _ uuid.UUID, _ registry.Source) (bool, error) {
	return !l.denied, nil
}

func (l *fakeLocker) Release(_ context.Context, _ uuid.UUID, _ registry.Source) error {
	return nil
}

// setupTestRouter returns a router whose middleware authenticates every
// request as the given member
func setupTestRouter(memberID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTMemberIDKey, memberID.String())
		c.Next()
	})
	return router
}
