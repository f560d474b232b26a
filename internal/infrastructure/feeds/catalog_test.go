package feeds

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestline/backend/internal/domain/registry"
)

func TestStaticCatalogAdapter(t *testing.T) {
	adapter, err := NewStaticCatalogAdapter()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("reports the curated catalog source", func(t *testing.T) {
		assert.Equal(t, registry.SourceCuratedCatalog, adapter.Source())
	})

	t.Run("serves the full dataset without IO", func(t *testing.T) {
		items, err := adapter.FetchItems(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotEmpty(t, items)
		assert.Len(t, items, len(adapter.Products()))
	})

	t.Run("normalizes price and category at build time", func(t *testing.T) {
		items, err := adapter.FetchItems(ctx, uuid.New())
		require.NoError(t, err)

		var mobile *registry.RegistryItem
		for _, item := range items {
			if item.Name == "Woodland Nursery Mobile" {
				mobile = item
				break
			}
		}
		require.NotNil(t, mobile)

		require.NotNil(t, mobile.Price)
		assert.True(t, mobile.Price.Equal(decimal.NewFromFloat(49.99)))
		assert.Equal(t, registry.CategoryNursery, mobile.Category)
		// No affiliate policy applies to the curated catalog.
		assert.Equal(t, "https://shop.nestline.com/products/woodland-nursery-mobile", mobile.AffiliateURL)
		assert.Equal(t, "Nestline Picks", mobile.Retailer)
	})

	t.Run("item IDs are stable per member", func(t *testing.T) {
		ownerID := uuid.New()

		first, err := adapter.FetchItems(ctx, ownerID)
		require.NoError(t, err)
		second, err := adapter.FetchItems(ctx, ownerID)
		require.NoError(t, err)

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].ID, second[i].ID)
		}
	})

	t.Run("different members get different item IDs", func(t *testing.T) {
		a, err := adapter.FetchItems(ctx, uuid.New())
		require.NoError(t, err)
		b, err := adapter.FetchItems(ctx, uuid.New())
		require.NoError(t, err)

		assert.NotEqual(t, a[0].ID, b[0].ID)
	})

	t.Run("every item resolves to a taxonomy category", func(t *testing.T) {
		items, err := adapter.FetchItems(ctx, uuid.New())
		require.NoError(t, err)
		for _, item := range items {
			assert.True(t, item.Category.IsValid(), "item %s has category %s", item.Name, item.Category)
		}
	})
}
