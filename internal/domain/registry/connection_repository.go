package registry

import (
	"context"

	"github.com/google/uuid"
)

// ConnectionRepository defines the persistence contract for linked-account
// connections
type ConnectionRepository interface {
	// FindByOwnerAndService finds a member's connection for a service
	FindByOwnerAndService(ctx context.Context, ownerID uuid.UUID, service Source) (*LinkedAccountConnection, error)
	// FindAllForOwner lists every connection a member holds
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]LinkedAccountConnection, error)
	// Save inserts or replaces a connection
	Save(ctx context.Context, conn *LinkedAccountConnection) error
	// DeleteByOwnerAndService removes a member's connection for a service
	DeleteByOwnerAndService(ctx context.Context, ownerID uuid.UUID, service Source) error
}
