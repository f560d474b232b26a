package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
)

// newMockItemRepository creates a GormItemRepository over a mocked SQL
// connection, for exercising the postgres query shapes and error paths
// the sqlite tests cannot
func newMockItemRepository(t *testing.T) (*GormItemRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormItemRepository(gormDB), mock, mockDB
}

func TestGormItemRepository_FindByID_Postgres(t *testing.T) {
	t.Run("finds existing item", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		ownerID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version", "owner_id", "source", "external_id", "name", "retailer", "category"}).
			AddRow(itemID, now, now, 1, ownerID, "target", "tgt-55", "Convertible Crib", "Target", "Nursery")

		mock.ExpectQuery(`SELECT \* FROM "registry_items" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(itemID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByID(context.Background(), itemID)

		require.NoError(t, err)
		assert.Equal(t, itemID, item.ID)
		assert.Equal(t, ownerID, item.OwnerID)
		assert.Equal(t, registry.SourceTarget, item.Source)
		assert.Equal(t, "Convertible Crib", item.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps record-not-found to domain error", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "registry_items" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), itemID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_Delete_Postgres(t *testing.T) {
	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectExec(`DELETE FROM "registry_items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), itemID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_CountForOwner_Postgres(t *testing.T) {
	t.Run("propagates driver errors", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()
		driverErr := errors.New("connection reset")

		mock.ExpectQuery(`SELECT count\(\*\) FROM "registry_items" WHERE owner_id = \$1`).
			WithArgs(ownerID).
			WillReturnError(driverErr)

		_, err := repo.CountForOwner(context.Background(), ownerID, registry.ItemFilter{})

		assert.ErrorIs(t, err, driverErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
