package feeds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nestline/backend/internal/domain/feed"
	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
	"github.com/nestline/backend/internal/infrastructure/config"
)

// LinkedAccountAdapter pulls a member's registry from an external service
// (Babylist, MyRegistry) using the credential stored at link time. Without a
// stored connection the fetch fails with feed.ErrNotConnected; unlike live
// feeds there is no catalog fallback, because the data is member-specific.
type LinkedAccountAdapter struct {
	service     registry.Source
	endpoint    string
	httpClient  *http.Client
	connections registry.ConnectionRepository
	logger      *zap.Logger
}

// NewLinkedAccountAdapter creates an adapter for one external registry service
func NewLinkedAccountAdapter(service registry.Source, cfg config.LinkedServiceConfig, connections registry.ConnectionRepository, logger *zap.Logger) (*LinkedAccountAdapter, error) {
	if !service.IsLinkedAccount() {
		return nil, fmt.Errorf("feeds: %s is not a linked-account service", service)
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("feeds: %s service endpoint is required", service)
	}
	if connections == nil {
		return nil, fmt.Errorf("feeds: %s service requires a connection repository", service)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFeedTimeout
	}

	return &LinkedAccountAdapter{
		service:     service,
		endpoint:    cfg.Endpoint,
		httpClient:  &http.Client{Timeout: timeout},
		connections: connections,
		logger:      logger.Named("feeds." + service.String()),
	}, nil
}

// Source returns the origin type this adapter produces items for
func (a *LinkedAccountAdapter) Source() registry.Source {
	return a.service
}

// FetchItems pulls the member's external registry and normalizes it into
// canonical items
func (a *LinkedAccountAdapter) FetchItems(ctx context.Context, ownerID uuid.UUID) ([]*registry.RegistryItem, error) {
	conn, err := a.connections.FindByOwnerAndService(ctx, ownerID, a.service)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, feed.ErrNotConnected
		}
		return nil, err
	}

	products, err := a.fetchRegistry(ctx, conn)
	if err != nil {
		a.logger.Warn("linked account fetch failed",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, err
	}

	items := make([]*registry.RegistryItem, 0, len(products))
	for _, raw := range products {
		items = append(items, registry.BuildCanonicalItem(ownerID, a.service, raw))
	}
	return items, nil
}

func (a *LinkedAccountAdapter) fetchRegistry(ctx context.Context, conn *registry.LinkedAccountConnection) ([]registry.RawProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("feeds: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+conn.AccessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", feed.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: service rejected stored credential", feed.ErrNotConnected)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", feed.ErrFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", feed.ErrFeedUnavailable, err)
	}

	return decodeProducts(body)
}

// Ensure LinkedAccountAdapter implements the feed contract
var _ feed.Adapter = (*LinkedAccountAdapter)(nil)
