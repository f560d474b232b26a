package registry

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/nestline/backend/internal/domain/feed"
	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
)

// CatalogService serves read-only browsing of feed sources without touching
// the member's persisted registry. Live feeds fall back to the curated
// catalog internally, so browsing is never empty.
type CatalogService struct {
	adapters map[registry.Source]feed.Adapter
}

// NewCatalogService creates a new CatalogService over the given adapters
func NewCatalogService(adapters []feed.Adapter) *CatalogService {
	bySource := make(map[registry.Source]feed.Adapter, len(adapters))
	for _, adapter := range adapters {
		bySource[adapter.Source()] = adapter
	}
	return &CatalogService{adapters: bySource}
}

// Browse fetches the current item set of one source for display. An empty
// source browses the curated catalog.
func (s *CatalogService) Browse(ctx context.Context, ownerID uuid.UUID, rawSource string) ([]ItemResponse, error) {
	source := registry.SourceCuratedCatalog
	if rawSource != "" {
		parsed, ok := registry.ParseSource(rawSource)
		if !ok || parsed.IsManual() {
			return nil, shared.NewDomainError("INVALID_SOURCE", "Source cannot be browsed")
		}
		source = parsed
	}

	adapter, ok := s.adapters[source]
	if !ok {
		return nil, shared.NewDomainError("INVALID_SOURCE", "No feed adapter is registered for this source")
	}

	items, err := adapter.FetchItems(ctx, ownerID)
	if err != nil {
		if errors.Is(err, feed.ErrNotConnected) {
			return nil, shared.ErrNotConnected
		}
		return nil, err
	}

	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToItemResponse(item)
	}
	return responses, nil
}
