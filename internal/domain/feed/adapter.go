// Package feed defines the uniform contract every external item source
// implements, mirroring how each origin type (bundled catalog, live HTTP
// feed, linked external account) delivers canonical registry items.
package feed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nestline/backend/internal/domain/registry"
)

var (
	// ErrNotConnected indicates a linked-account adapter was asked to sync
	// for a member with no stored connection. Callers must surface this as
	// a user-actionable condition, distinct from "sync returned zero items".
	ErrNotConnected = errors.New("feed: linked account not connected")
	// ErrFeedUnavailable indicates the upstream feed could not be reached
	// or answered with a non-success status
	ErrFeedUnavailable = errors.New("feed: upstream feed unavailable")
	// ErrInvalidResponse indicates the upstream answered but the payload
	// could not be decoded
	ErrInvalidResponse = errors.New("feed: invalid feed response")
)

// Adapter is the uniform contract all feed sources expose. Implementations
// are side-effect-free: fetching never writes to the persistence layer and
// concurrent fetches for different members share no mutable state.
type Adapter interface {
	// Source returns the origin type this adapter produces items for
	Source() registry.Source
	// FetchItems returns the source's current canonical item set for a
	// member. Live-feed implementations recover from upstream failure by
	// falling back to the curated catalog; linked-account implementations
	// return ErrNotConnected when no credential is stored.
	FetchItems(ctx context.Context, ownerID uuid.UUID) ([]*registry.RegistryItem, error)
}

// SyncResult is the ephemeral outcome of one reconciliation pass: the full
// post-merge item set for the (member, source) pair plus the pass counters.
// It is returned to the caller and never persisted as its own entity.
type SyncResult struct {
	Source       registry.Source
	SyncedAt     time.Time
	Items        []registry.RegistryItem
	NewCount     int
	UpdatedCount int
}
