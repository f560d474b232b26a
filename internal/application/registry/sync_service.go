package registry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nestline/backend/internal/domain/feed"
	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/domain/shared"
)

// SyncLocker provides per-(member, source) mutual exclusion for
// reconciliation passes. This decouples SyncService from the concrete
// Redis or in-memory implementation.
type SyncLocker interface {
	Acquire(ctx context.Context, ownerID uuid.UUID, source registry.Source) (bool, error)
	Release(ctx context.Context, ownerID uuid.UUID, source registry.Source) error
}

// SyncService handles linked-account connections and feed reconciliation
type SyncService struct {
	itemRepo       registry.ItemRepository
	connRepo       registry.ConnectionRepository
	adapters       map[registry.Source]feed.Adapter
	locker         SyncLocker
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(
	itemRepo registry.ItemRepository,
	connRepo registry.ConnectionRepository,
	adapters []feed.Adapter,
	locker SyncLocker,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *SyncService {
	bySource := make(map[registry.Source]feed.Adapter, len(adapters))
	for _, adapter := range adapters {
		bySource[adapter.Source()] = adapter
	}
	return &SyncService{
		itemRepo:       itemRepo,
		connRepo:       connRepo,
		adapters:       bySource,
		locker:         locker,
		eventPublisher: eventPublisher,
		logger:         logger.Named("sync"),
	}
}

// ConnectAccount links an external registry service for a member. Linking a
// service that is already connected replaces the stored credential; it never
// creates a second connection row.
func (s *SyncService) ConnectAccount(ctx context.Context, ownerID uuid.UUID, req ConnectAccountRequest) (*ConnectionResponse, error) {
	service, ok := registry.ParseSource(req.Service)
	if !ok || !service.IsLinkedAccount() {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service does not support account linking")
	}

	conn, err := s.connRepo.FindByOwnerAndService(ctx, ownerID, service)
	switch {
	case err == nil:
		if err := conn.Relink(req.AccessToken, req.Username); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		conn, err = registry.NewLinkedAccountConnection(ownerID, service, req.AccessToken, req.Username)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.connRepo.Save(ctx, conn); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, registry.NewAccountLinkedEvent(conn))
	}

	response := ToConnectionResponse(conn)
	return &response, nil
}

// ConnectionStatuses reports the link state of every external service for
// one member
func (s *SyncService) ConnectionStatuses(ctx context.Context, ownerID uuid.UUID) ([]ConnectionStatusResponse, error) {
	conns, err := s.connRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	bySvc := make(map[registry.Source]*registry.LinkedAccountConnection, len(conns))
	for i := range conns {
		bySvc[conns[i].Service] = &conns[i]
	}

	statuses := make([]ConnectionStatusResponse, 0, len(registry.LinkedAccountSources()))
	for _, service := range registry.LinkedAccountSources() {
		status := ConnectionStatusResponse{Service: service.String()}
		if conn, ok := bySvc[service]; ok {
			status.Connected = true
			status.Username = conn.Username
			connectedAt := conn.ConnectedAt
			status.ConnectedAt = &connectedAt
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Disconnect removes a member's connection for a service. Items already
// synced from that service are left in place.
func (s *SyncService) Disconnect(ctx context.Context, ownerID uuid.UUID, rawService string) error {
	service, ok := registry.ParseSource(rawService)
	if !ok || !service.IsLinkedAccount() {
		return shared.NewDomainError("INVALID_SERVICE", "Service does not support account linking")
	}

	if err := s.connRepo.DeleteByOwnerAndService(ctx, ownerID, service); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotConnected
		}
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, registry.NewAccountUnlinkedEvent(ownerID, service))
	}
	return nil
}

// Sync runs one reconciliation pass for a (member, source) pair: fetch the
// source's current item set, upsert by dedupe key, and report counts. Items
// absent from the fetch are never deleted.
func (s *SyncService) Sync(ctx context.Context, ownerID uuid.UUID, rawSource string) (*SyncResponse, error) {
	source, ok := registry.ParseSource(rawSource)
	if !ok || source.IsManual() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Source cannot be synced")
	}

	adapter, ok := s.adapters[source]
	if !ok {
		return nil, shared.NewDomainError("INVALID_SOURCE", "No feed adapter is registered for this source")
	}

	acquired, err := s.locker.Acquire(ctx, ownerID, source)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, shared.ErrSyncInProgress
	}
	defer func() {
		if err := s.locker.Release(ctx, ownerID, source); err != nil {
			s.logger.Warn("failed to release sync lock",
				zap.String("owner_id", ownerID.String()),
				zap.String("source", source.String()),
				zap.Error(err))
		}
	}()

	incoming, err := adapter.FetchItems(ctx, ownerID)
	if err != nil {
		if errors.Is(err, feed.ErrNotConnected) {
			return nil, shared.ErrNotConnected
		}
		return nil, err
	}

	result, err := s.reconcile(ctx, ownerID, source, incoming)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, registry.NewRegistrySyncedEvent(
			ownerID, source, len(result.Items), result.NewCount, result.UpdatedCount))
	}

	s.logger.Info("registry synced",
		zap.String("owner_id", ownerID.String()),
		zap.String("source", source.String()),
		zap.Int("items", len(result.Items)),
		zap.Int("new", result.NewCount),
		zap.Int("updated", result.UpdatedCount))

	return ToSyncResponse(result), nil
}

// reconcile merges the fetched item set into the persisted one. Matching is
// by dedupe key within the (member, source) scope; matched rows keep their
// persisted identity and creation timestamp, unmatched rows are inserted,
// and persisted rows absent from the fetch are untouched. The result carries
// the full post-merge item set for the (member, source) pair.
func (s *SyncService) reconcile(ctx context.Context, ownerID uuid.UUID, source registry.Source, incoming []*registry.RegistryItem) (*feed.SyncResult, error) {
	existing, err := s.itemRepo.FindBySourceForOwner(ctx, ownerID, source)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*registry.RegistryItem, len(existing))
	for i := range existing {
		if key := existing[i].DedupeKey(); key != "" {
			byKey[key] = &existing[i]
		}
	}

	result := &feed.SyncResult{
		Source:   source,
		SyncedAt: time.Now(),
	}

	// A feed may repeat a product within one fetch. Records sharing a dedupe
	// key derive the same item identity, so repeats collapse onto the row
	// already queued instead of producing a second row and a double count.
	seen := make(map[string]*registry.RegistryItem, len(incoming))
	toSave := make([]*registry.RegistryItem, 0, len(incoming))
	for _, item := range incoming {
		key := item.DedupeKey()
		if key != "" {
			if queued, ok := seen[key]; ok {
				queued.RefreshFrom(item)
				continue
			}
			if persisted, ok := byKey[key]; ok {
				persisted.RefreshFrom(item)
				seen[key] = persisted
				toSave = append(toSave, persisted)
				result.UpdatedCount++
				continue
			}
			seen[key] = item
		}
		toSave = append(toSave, item)
		result.NewCount++
	}

	if err := s.itemRepo.SaveAll(ctx, toSave); err != nil {
		return nil, err
	}

	result.Items = make([]registry.RegistryItem, 0, len(toSave)+len(existing))
	for _, item := range toSave {
		result.Items = append(result.Items, *item)
	}
	for i := range existing {
		key := existing[i].DedupeKey()
		if _, matched := seen[key]; key == "" || !matched {
			result.Items = append(result.Items, existing[i])
		}
	}
	return result, nil
}
