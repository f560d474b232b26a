package registry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nestline/backend/internal/domain/feed"
	"github.com/nestline/backend/internal/domain/registry"
)

// AddManualItemRequest represents a request to add a member-entered item
type AddManualItemRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Brand       string           `json:"brand" binding:"max=100"`
	Price       *decimal.Decimal `json:"price"`
	URL         string           `json:"url" binding:"max=2000"`
	ImageURL    string           `json:"image_url" binding:"max=2000"`
	Category    string           `json:"category" binding:"max=100"`
	Description string           `json:"description" binding:"max=2000"`
}

// UpdateItemRequest represents a request to update an item's fields.
// Nil fields are left untouched.
type UpdateItemRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Brand       *string          `json:"brand" binding:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price"`
	URL         *string          `json:"url" binding:"omitempty,max=2000"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,max=2000"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
}

// ListItemsFilter carries the query options for listing a member's items
type ListItemsFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Category string `form:"category"`
	Source   string `form:"source"`
}

// ItemResponse represents a registry item in API responses
type ItemResponse struct {
	ID           uuid.UUID        `json:"id"`
	Source       string           `json:"source"`
	ExternalID   *string          `json:"external_id,omitempty"`
	Name         string           `json:"name"`
	Brand        string           `json:"brand"`
	Price        *decimal.Decimal `json:"price"`
	ImageURL     string           `json:"image_url"`
	AffiliateURL string           `json:"affiliate_url"`
	Category     string           `json:"category"`
	Retailer     string           `json:"retailer"`
	Description  string           `json:"description"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ToItemResponse converts a domain item to its API representation
func ToItemResponse(item *registry.RegistryItem) ItemResponse {
	return ItemResponse{
		ID:           item.ID,
		Source:       item.Source.String(),
		ExternalID:   item.ExternalID,
		Name:         item.Name,
		Brand:        item.Brand,
		Price:        item.Price,
		ImageURL:     item.ImageURL,
		AffiliateURL: item.AffiliateURL,
		Category:     item.Category.String(),
		Retailer:     item.Retailer,
		Description:  item.Description,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// ConnectAccountRequest represents a request to link an external registry
// account
type ConnectAccountRequest struct {
	Service     string `json:"service" binding:"required"`
	AccessToken string `json:"access_token" binding:"required"`
	Username    string `json:"username" binding:"max=200"`
}

// ConnectionResponse represents a linked-account connection in API responses.
// The stored credential is never echoed back.
type ConnectionResponse struct {
	Service     string    `json:"service"`
	Username    string    `json:"username,omitempty"`
	ConnectedAt time.Time `json:"connected_at"`
}

// ToConnectionResponse converts a domain connection to its API representation
func ToConnectionResponse(conn *registry.LinkedAccountConnection) ConnectionResponse {
	return ConnectionResponse{
		Service:     conn.Service.String(),
		Username:    conn.Username,
		ConnectedAt: conn.ConnectedAt,
	}
}

// ConnectionStatusResponse reports whether a member has linked one service
type ConnectionStatusResponse struct {
	Service     string     `json:"service"`
	Connected   bool       `json:"connected"`
	Username    string     `json:"username,omitempty"`
	ConnectedAt *time.Time `json:"connected_at,omitempty"`
}

// SyncResponse is the outcome of one reconciliation pass. Items is the full
// post-merge item set for the synced source, not just the rows the pass
// touched.
type SyncResponse struct {
	Source       string         `json:"source"`
	SyncedAt     time.Time      `json:"synced_at"`
	Items        []ItemResponse `json:"items"`
	ItemCount    int            `json:"item_count"`
	NewCount     int            `json:"new_count"`
	UpdatedCount int            `json:"updated_count"`
}

// ToSyncResponse converts a reconciliation outcome to its API representation
func ToSyncResponse(result *feed.SyncResult) *SyncResponse {
	items := make([]ItemResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToItemResponse(&result.Items[i]))
	}
	return &SyncResponse{
		Source:       result.Source.String(),
		SyncedAt:     result.SyncedAt,
		Items:        items,
		ItemCount:    len(items),
		NewCount:     result.NewCount,
		UpdatedCount: result.UpdatedCount,
	}
}

// UpsertNoteRequest represents a request to write a note on an item.
// An empty note is valid: it clears the text while keeping the note.
type UpsertNoteRequest struct {
	Note string `json:"note" binding:"max=2000"`
}

// NoteResponse represents a registry note in API responses
type NoteResponse struct {
	ItemID    uuid.UUID `json:"item_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToNoteResponse converts a domain note to its API representation
func ToNoteResponse(note *registry.RegistryNote) NoteResponse {
	return NoteResponse{
		ItemID:    note.ItemID,
		Note:      note.Note,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
