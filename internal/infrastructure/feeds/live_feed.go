package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nestline/backend/internal/domain/feed"
	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/infrastructure/cache"
	"github.com/nestline/backend/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed feed response size (10MB)
const maxResponseSize = 10 * 1024 * 1024

const (
	defaultFeedTimeout  = 5 * time.Second
	defaultFeedCacheTTL = 10 * time.Minute
)

// LiveFeedAdapter pulls a retailer's product feed over HTTP. Payloads are
// cached per source for the configured TTL so repeated syncs inside the
// window do not hit the upstream again. Any upstream failure degrades to the
// curated catalog dataset instead of failing the sync.
type LiveFeedAdapter struct {
	source     registry.Source
	endpoint   string
	httpClient *http.Client
	cache      *cache.FeedCache[[]registry.RawProduct]
	fallback   *StaticCatalogAdapter
	logger     *zap.Logger
}

// NewLiveFeedAdapter creates an adapter for one live retailer feed
func NewLiveFeedAdapter(source registry.Source, cfg config.LiveFeedConfig, fallback *StaticCatalogAdapter, logger *zap.Logger) (*LiveFeedAdapter, error) {
	if !source.IsLiveFeed() {
		return nil, fmt.Errorf("feeds: %s is not a live feed source", source)
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("feeds: %s feed endpoint is required", source)
	}
	if fallback == nil {
		return nil, fmt.Errorf("feeds: %s feed requires a fallback catalog", source)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFeedTimeout
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultFeedCacheTTL
	}

	return &LiveFeedAdapter{
		source:     source,
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache.NewFeedCache[[]registry.RawProduct](ttl),
		fallback:   fallback,
		logger:     logger.Named("feeds." + source.String()),
	}, nil
}

// Source returns the origin type this adapter produces items for
func (a *LiveFeedAdapter) Source() registry.Source {
	return a.source
}

// FetchItems returns the feed's current canonical item set for a member.
// It never returns an upstream error: an unreachable or malformed feed is
// answered with the curated catalog dataset under this adapter's source.
func (a *LiveFeedAdapter) FetchItems(ctx context.Context, ownerID uuid.UUID) ([]*registry.RegistryItem, error) {
	products, ok := a.cache.Get(string(a.source))
	if !ok {
		fetched, err := a.fetchUpstream(ctx)
		if err != nil {
			a.logger.Warn("upstream feed unavailable, serving curated fallback",
				zap.String("endpoint", a.endpoint),
				zap.Error(err))
			fetched = a.fallback.Products()
		} else {
			a.cache.Set(string(a.source), fetched)
		}
		products = fetched
	}

	items := make([]*registry.RegistryItem, 0, len(products))
	for _, raw := range products {
		items = append(items, registry.BuildCanonicalItem(ownerID, a.source, raw))
	}
	return items, nil
}

// Invalidate drops the cached payload so the next fetch revalidates upstream
func (a *LiveFeedAdapter) Invalidate() {
	a.cache.Invalidate(string(a.source))
}

// Close stops the cache janitor
func (a *LiveFeedAdapter) Close() {
	a.cache.Stop()
}

func (a *LiveFeedAdapter) fetchUpstream(ctx context.Context) ([]registry.RawProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("feeds: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", feed.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", feed.ErrFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", feed.ErrFeedUnavailable, err)
	}

	return decodeProducts(body)
}

// decodeProducts accepts the two payload shapes feeds deliver: a bare JSON
// array of products or an envelope with an "items" field.
func decodeProducts(body []byte) ([]registry.RawProduct, error) {
	var envelope struct {
		Items []registry.RawProduct `json:"items"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Items != nil {
		return envelope.Items, nil
	}

	var products []registry.RawProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", feed.ErrInvalidResponse, err)
	}
	return products, nil
}

// Ensure LiveFeedAdapter implements the feed contract
var _ feed.Adapter = (*LiveFeedAdapter)(nil)
