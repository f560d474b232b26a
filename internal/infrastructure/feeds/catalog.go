// Package feeds contains the concrete adapters behind the feed.Adapter
// contract: the bundled curated catalog, live retailer product feeds and
// member-linked external registry accounts.
package feeds

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/nestline/backend/internal/domain/feed"
	"github.com/nestline/backend/internal/domain/registry"
)

//go:embed catalog.json
var catalogFS embed.FS

// StaticCatalogAdapter serves the curated catalog that ships inside the
// binary. It performs no I/O, cannot fail at fetch time, and doubles as the
// fallback dataset for every live feed.
type StaticCatalogAdapter struct {
	products []registry.RawProduct
}

// NewStaticCatalogAdapter loads and validates the embedded catalog dataset
func NewStaticCatalogAdapter() (*StaticCatalogAdapter, error) {
	data, err := catalogFS.ReadFile("catalog.json")
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read embedded dataset: %w", err)
	}

	var products []registry.RawProduct
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse embedded dataset: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog: embedded dataset is empty")
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].ExternalID < products[j].ExternalID
	})

	return &StaticCatalogAdapter{products: products}, nil
}

// Source returns the origin type this adapter produces items for
func (a *StaticCatalogAdapter) Source() registry.Source {
	return registry.SourceCuratedCatalog
}

// FetchItems builds the canonical item set from the embedded dataset. The
// result is deterministic per member: the same member always receives the
// same item IDs.
func (a *StaticCatalogAdapter) FetchItems(ctx context.Context, ownerID uuid.UUID) ([]*registry.RegistryItem, error) {
	items := make([]*registry.RegistryItem, 0, len(a.products))
	for _, raw := range a.products {
		items = append(items, registry.BuildCanonicalItem(ownerID, registry.SourceCuratedCatalog, raw))
	}
	return items, nil
}

// Products returns the raw catalog dataset. Live feeds use it as their
// fallback payload when the upstream is unreachable.
func (a *StaticCatalogAdapter) Products() []registry.RawProduct {
	out := make([]registry.RawProduct, len(a.products))
	copy(out, a.products)
	return out
}

// Ensure StaticCatalogAdapter implements the feed contract
var _ feed.Adapter = (*StaticCatalogAdapter)(nil)
