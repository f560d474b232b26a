package registry

import (
	"time"

	"github.com/google/uuid"

	"github.com/nestline/backend/internal/domain/shared"
)

// LinkedAccountConnection holds a member's credential for one external
// registry service. Exactly one connection exists per (owner, service);
// re-linking replaces the stored credential rather than appending. A
// connection must exist before that service's adapter can sync.
type LinkedAccountConnection struct {
	shared.BaseEntity
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connections_owner_service,priority:1"`
	Service     Source    `gorm:"type:varchar(30);not null;uniqueIndex:idx_connections_owner_service,priority:2"`
	AccessToken string    `gorm:"type:text;not null"`
	Username    string    `gorm:"type:varchar(200)"`
	ConnectedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LinkedAccountConnection) TableName() string {
	return "linked_account_connections"
}

// NewLinkedAccountConnection creates a connection record for a member
func NewLinkedAccountConnection(ownerID uuid.UUID, service Source, accessToken, username string) (*LinkedAccountConnection, error) {
	conn := &LinkedAccountConnection{
		BaseEntity:  shared.NewBaseEntity(),
		OwnerID:     ownerID,
		Service:     service,
		AccessToken: accessToken,
		Username:    username,
		ConnectedAt: time.Now(),
	}
	if err := conn.Validate(); err != nil {
		return nil, err
	}
	return conn, nil
}

// Validate validates the connection record
func (c *LinkedAccountConnection) Validate() error {
	if c.OwnerID == uuid.Nil {
		return shared.NewDomainError("INVALID_OWNER", "Connection owner cannot be empty")
	}
	if !c.Service.IsLinkedAccount() {
		return shared.NewDomainError("INVALID_SERVICE", "Service does not support account linking")
	}
	if c.AccessToken == "" {
		return shared.NewDomainError("INVALID_TOKEN", "Access token cannot be empty")
	}
	return nil
}

// Relink replaces the stored credential and connection timestamp
func (c *LinkedAccountConnection) Relink(accessToken, username string) error {
	if accessToken == "" {
		return shared.NewDomainError("INVALID_TOKEN", "Access token cannot be empty")
	}
	c.AccessToken = accessToken
	c.Username = username
	c.ConnectedAt = time.Now()
	c.UpdatedAt = time.Now()
	return nil
}
