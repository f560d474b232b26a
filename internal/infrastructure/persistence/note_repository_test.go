package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
)

func setupNoteTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&registry.RegistryNote{})
	require.NoError(t, err)

	return db
}

func TestGormNoteRepository(t *testing.T) {
	db := setupNoteTestDB(t)
	repo := NewGormNoteRepository(db)
	ctx := context.Background()

	t.Run("saves and finds by owner and item", func(t *testing.T) {
		ownerID := uuid.New()
		itemID := uuid.New()

		note, err := registry.NewRegistryNote(ownerID, itemID, "aunt already bought this")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, note))

		found, err := repo.FindByOwnerAndItem(ctx, ownerID, itemID)
		require.NoError(t, err)
		assert.Equal(t, "aunt already bought this", found.Note)
	})

	t.Run("returns ErrNotFound when no note exists", func(t *testing.T) {
		_, err := repo.FindByOwnerAndItem(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("updating keeps a single row per item", func(t *testing.T) {
		ownerID := uuid.New()
		itemID := uuid.New()

		note, err := registry.NewRegistryNote(ownerID, itemID, "first draft")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, note))

		require.NoError(t, note.SetText("second draft"))
		require.NoError(t, repo.Save(ctx, note))

		found, err := repo.FindByOwnerAndItem(ctx, ownerID, itemID)
		require.NoError(t, err)
		assert.Equal(t, "second draft", found.Note)

		var count int64
		require.NoError(t, db.Model(&registry.RegistryNote{}).
			Where("owner_id = ? AND item_id = ?", ownerID, itemID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("empty note text is persisted", func(t *testing.T) {
		ownerID := uuid.New()
		itemID := uuid.New()

		note, err := registry.NewRegistryNote(ownerID, itemID, "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, note))

		found, err := repo.FindByOwnerAndItem(ctx, ownerID, itemID)
		require.NoError(t, err)
		assert.Equal(t, "", found.Note)
	})

	t.Run("lists only the owner's notes", func(t *testing.T) {
		ownerID := uuid.New()

		for _, text := range []string{"one", "two"} {
			note, err := registry.NewRegistryNote(ownerID, uuid.New(), text)
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, note))
		}
		other, err := registry.NewRegistryNote(uuid.New(), uuid.New(), "not mine")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		notes, err := repo.FindAllForOwner(ctx, ownerID)
		require.NoError(t, err)
		assert.Len(t, notes, 2)
	})

	t.Run("deletes by owner and item", func(t *testing.T) {
		ownerID := uuid.New()
		itemID := uuid.New()

		note, err := registry.NewRegistryNote(ownerID, itemID, "to be removed")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, note))

		require.NoError(t, repo.DeleteByOwnerAndItem(ctx, ownerID, itemID))

		_, err = repo.FindByOwnerAndItem(ctx, ownerID, itemID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete of a missing note returns ErrNotFound", func(t *testing.T) {
		err := repo.DeleteByOwnerAndItem(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
