package registry

import (
	"github.com/google/uuid"

	"github.com/nestline/backend/internal/domain/shared"
)

// Event types for the registry domain
const (
	EventTypeItemCreated     = "registry.item.created"
	EventTypeItemUpdated     = "registry.item.updated"
	EventTypeItemDeleted     = "registry.item.deleted"
	EventTypeAccountLinked   = "registry.account.linked"
	EventTypeAccountUnlinked = "registry.account.unlinked"
	EventTypeRegistrySynced  = "registry.synced"
)

// ItemCreatedEvent is published when a registry item is created
type ItemCreatedEvent struct {
	shared.BaseDomainEvent
	Source Source `json:"source"`
	Name   string `json:"name"`
}

// NewItemCreatedEvent creates a new ItemCreatedEvent
func NewItemCreatedEvent(item *RegistryItem) *ItemCreatedEvent {
	return &ItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemCreated, "RegistryItem", item.ID, item.OwnerID),
		Source:          item.Source,
		Name:            item.Name,
	}
}

// ItemUpdatedEvent is published when a registry item's fields change
type ItemUpdatedEvent struct {
	shared.BaseDomainEvent
	Source Source `json:"source"`
}

// NewItemUpdatedEvent creates a new ItemUpdatedEvent
func NewItemUpdatedEvent(item *RegistryItem) *ItemUpdatedEvent {
	return &ItemUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemUpdated, "RegistryItem", item.ID, item.OwnerID),
		Source:          item.Source,
	}
}

// ItemDeletedEvent is published when a member explicitly removes an item
type ItemDeletedEvent struct {
	shared.BaseDomainEvent
}

// NewItemDeletedEvent creates a new ItemDeletedEvent
func NewItemDeletedEvent(ownerID, itemID uuid.UUID) *ItemDeletedEvent {
	return &ItemDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemDeleted, "RegistryItem", itemID, ownerID),
	}
}

// AccountLinkedEvent is published when a member connects an external
// registry service
type AccountLinkedEvent struct {
	shared.BaseDomainEvent
	Service Source `json:"service"`
}

// NewAccountLinkedEvent creates a new AccountLinkedEvent
func NewAccountLinkedEvent(conn *LinkedAccountConnection) *AccountLinkedEvent {
	return &AccountLinkedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountLinked, "LinkedAccountConnection", conn.ID, conn.OwnerID),
		Service:         conn.Service,
	}
}

// AccountUnlinkedEvent is published when a member disconnects an external
// registry service
type AccountUnlinkedEvent struct {
	shared.BaseDomainEvent
	Service Source `json:"service"`
}

// NewAccountUnlinkedEvent creates a new AccountUnlinkedEvent
func NewAccountUnlinkedEvent(ownerID uuid.UUID, service Source) *AccountUnlinkedEvent {
	return &AccountUnlinkedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountUnlinked, "LinkedAccountConnection", uuid.New(), ownerID),
		Service:         service,
	}
}

// RegistrySyncedEvent is published after a reconciliation pass completes
type RegistrySyncedEvent struct {
	shared.BaseDomainEvent
	Source       Source `json:"source"`
	ItemCount    int    `json:"item_count"`
	NewCount     int    `json:"new_count"`
	UpdatedCount int    `json:"updated_count"`
}

// NewRegistrySyncedEvent creates a new RegistrySyncedEvent
func NewRegistrySyncedEvent(ownerID uuid.UUID, source Source, itemCount, newCount, updatedCount int) *RegistrySyncedEvent {
	return &RegistrySyncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRegistrySynced, "RegistryItem", uuid.New(), ownerID),
		Source:          source,
		ItemCount:       itemCount,
		NewCount:        newCount,
		UpdatedCount:    updatedCount,
	}
}
