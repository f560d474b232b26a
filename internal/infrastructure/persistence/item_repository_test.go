package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
)

func setupItemTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&registry.RegistryItem{})
	require.NoError(t, err)

	return db
}

func newFeedItem(t *testing.T, ownerID uuid.UUID, source registry.Source, externalID, name string) *registry.RegistryItem {
	t.Helper()
	return registry.BuildCanonicalItem(ownerID, source, registry.RawProduct{
		ExternalID: externalID,
		Name:       name,
	})
}

func TestGormItemRepository_SaveAndFind(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	t.Run("saves and finds by ID", func(t *testing.T) {
		ownerID := uuid.New()
		item := newFeedItem(t, ownerID, registry.SourceTarget, "tgt-100", "Crib Sheet Set")
		price := decimal.NewFromFloat(24.99)
		require.NoError(t, item.SetPrice(&price))

		require.NoError(t, repo.Save(ctx, item))

		found, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, found.ID)
		assert.Equal(t, ownerID, found.OwnerID)
		assert.Equal(t, "Crib Sheet Set", found.Name)
		require.NotNil(t, found.Price)
		assert.True(t, found.Price.Equal(price))
	})

	t.Run("returns ErrNotFound for missing item", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindByIDForOwner rejects other members", func(t *testing.T) {
		ownerID := uuid.New()
		item := newFeedItem(t, ownerID, registry.SourceTarget, "tgt-101", "Bottle Warmer")
		require.NoError(t, repo.Save(ctx, item))

		found, err := repo.FindByIDForOwner(ctx, ownerID, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, found.ID)

		_, err = repo.FindByIDForOwner(ctx, uuid.New(), item.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormItemRepository_SaveAll(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("persists a batch", func(t *testing.T) {
		items := []*registry.RegistryItem{
			newFeedItem(t, ownerID, registry.SourceAmazon, "amz-1", "Stroller"),
			newFeedItem(t, ownerID, registry.SourceAmazon, "amz-2", "Car Seat"),
		}
		require.NoError(t, repo.SaveAll(ctx, items))

		persisted, err := repo.FindBySourceForOwner(ctx, ownerID, registry.SourceAmazon)
		require.NoError(t, err)
		assert.Len(t, persisted, 2)
	})

	t.Run("re-saving the same external record overwrites in place", func(t *testing.T) {
		first := newFeedItem(t, ownerID, registry.SourceAmazon, "amz-3", "Swaddle")
		require.NoError(t, repo.SaveAll(ctx, []*registry.RegistryItem{first}))

		second := newFeedItem(t, ownerID, registry.SourceAmazon, "amz-3", "Swaddle Blanket 3-Pack")
		require.NoError(t, repo.SaveAll(ctx, []*registry.RegistryItem{second}))

		found, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Swaddle Blanket 3-Pack", found.Name)

		var count int64
		require.NoError(t, db.Model(&registry.RegistryItem{}).
			Where("owner_id = ? AND external_id = ?", ownerID, "amz-3").
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.SaveAll(ctx, nil))
	})
}

func TestGormItemRepository_ManualItemsCoexist(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	first, err := registry.NewManualItem(ownerID, "handmade blanket from grandma")
	require.NoError(t, err)
	second, err := registry.NewManualItem(ownerID, "handmade blanket from grandma")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	items, err := repo.FindBySourceForOwner(ctx, ownerID, registry.SourceManual)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func TestGormItemRepository_FindAllForOwner(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()
	otherOwner := uuid.New()

	crib := newFeedItem(t, ownerID, registry.SourceTarget, "tgt-1", "Convertible Crib")
	require.NoError(t, crib.SetCategory(registry.CategoryNursery))
	bottles := newFeedItem(t, ownerID, registry.SourceAmazon, "amz-1", "Bottle Set")
	require.NoError(t, bottles.SetCategory(registry.CategoryFeeding))
	foreign := newFeedItem(t, otherOwner, registry.SourceTarget, "tgt-1", "Convertible Crib")
	require.NoError(t, repo.SaveAll(ctx, []*registry.RegistryItem{crib, bottles, foreign}))

	t.Run("scopes to the owner", func(t *testing.T) {
		items, err := repo.FindAllForOwner(ctx, ownerID, registry.ItemFilter{Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("filters by category", func(t *testing.T) {
		category := registry.CategoryNursery
		items, err := repo.FindAllForOwner(ctx, ownerID, registry.ItemFilter{
			Filter:   shared.DefaultFilter(),
			Category: &category,
		})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Convertible Crib", items[0].Name)
	})

	t.Run("filters by source", func(t *testing.T) {
		source := registry.SourceAmazon
		items, err := repo.FindAllForOwner(ctx, ownerID, registry.ItemFilter{
			Filter: shared.DefaultFilter(),
			Source: &source,
		})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Bottle Set", items[0].Name)
	})

	t.Run("count honors filters but not pagination", func(t *testing.T) {
		filter := registry.ItemFilter{Filter: shared.Filter{Page: 1, PageSize: 1}}
		items, err := repo.FindAllForOwner(ctx, ownerID, filter)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		count, err := repo.CountForOwner(ctx, ownerID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGormItemRepository_Delete(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	t.Run("deletes an existing item", func(t *testing.T) {
		item := newFeedItem(t, uuid.New(), registry.SourceTarget, "tgt-9", "Night Light")
		require.NoError(t, repo.Save(ctx, item))

		require.NoError(t, repo.Delete(ctx, item.ID))

		_, err := repo.FindByID(ctx, item.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns ErrNotFound for missing item", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
