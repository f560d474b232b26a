package registry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nestline/backend/internal/domain/shared"
)

// itemNamespace seeds deterministic item IDs. Feed-sourced items derive
// their ID from (source, externalID) so that re-ingesting the same external
// record always lands on the same row.
var itemNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// RegistryItem is the canonical representation of one registry product for
// one member, regardless of which source produced it. It is the aggregate
// root for all registry operations.
type RegistryItem struct {
	shared.OwnedAggregateRoot
	Source       Source           `gorm:"type:varchar(30);not null;index:idx_items_source_ext,priority:1"`
	ExternalID   *string          `gorm:"type:varchar(200);index:idx_items_source_ext,priority:2"`
	Name         string           `gorm:"type:varchar(200);not null"`
	Brand        string           `gorm:"type:varchar(100)"`
	Price        *decimal.Decimal `gorm:"type:decimal(18,2)"`
	ImageURL     string           `gorm:"type:text"`
	AffiliateURL string           `gorm:"type:text"`
	Category     Category         `gorm:"type:varchar(30);not null;default:'Uncategorized'"`
	Retailer     string           `gorm:"type:varchar(100);not null"`
	Description  string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RegistryItem) TableName() string {
	return "registry_items"
}

// DeriveItemID computes the deterministic ID for a feed-sourced item.
// The same (source, externalID) pair always yields the same UUID, which is
// what makes re-ingestion an overwrite instead of a duplicate.
func DeriveItemID(ownerID uuid.UUID, source Source, externalID string) uuid.UUID {
	seed := ownerID.String() + ":" + string(source) + ":" + externalID
	return uuid.NewSHA1(itemNamespace, []byte(seed))
}

// DedupeKey returns the reconciliation key for this item. Items without an
// external ID (manual adds) have no dedupe key and are never merged.
func (i *RegistryItem) DedupeKey() string {
	if i.ExternalID == nil || *i.ExternalID == "" {
		return ""
	}
	return string(i.Source) + ":" + *i.ExternalID
}

// NewManualItem creates a member-entered item. Manual items always get a
// fresh random ID and no external ID, so two identical adds coexist.
func NewManualItem(ownerID uuid.UUID, name string) (*RegistryItem, error) {
	if err := validateItemName(name); err != nil {
		return nil, err
	}

	item := &RegistryItem{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Source:             SourceManual,
		Name:               name,
		Category:           CategoryUncategorized,
		Retailer:           SourceManual.RetailerName(),
	}

	item.AddDomainEvent(NewItemCreatedEvent(item))

	return item, nil
}

// SetBrand sets the brand display label
func (i *RegistryItem) SetBrand(brand string) {
	i.Brand = brand
	i.touch()
}

// SetPrice sets the price; nil means the price is unknown
func (i *RegistryItem) SetPrice(price *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	i.Price = price
	i.touch()
	return nil
}

// SetCategory assigns a taxonomy value; out-of-taxonomy input is rejected
func (i *RegistryItem) SetCategory(category Category) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is not part of the taxonomy")
	}
	i.Category = category
	i.touch()
	return nil
}

// SetLink stores the outbound link after affiliate normalization for the
// item's source
func (i *RegistryItem) SetLink(rawURL string) {
	i.AffiliateURL = NormalizeAffiliateLink(rawURL, i.Source)
	i.touch()
}

// SetImage sets the product image URL
func (i *RegistryItem) SetImage(imageURL string) {
	i.ImageURL = imageURL
	i.touch()
}

// SetRetailer overrides the retailer display label
func (i *RegistryItem) SetRetailer(retailer string) {
	if retailer == "" {
		retailer = i.Source.RetailerName()
	}
	i.Retailer = retailer
	i.touch()
}

// SetDescription sets the free-text description
func (i *RegistryItem) SetDescription(description string) {
	i.Description = description
	i.touch()
}

// Rename changes the item name
func (i *RegistryItem) Rename(name string) error {
	if err := validateItemName(name); err != nil {
		return err
	}
	i.Name = name
	i.touch()
	i.AddDomainEvent(NewItemUpdatedEvent(i))
	return nil
}

// RefreshFrom overwrites this item's descriptive fields with those of a
// freshly built canonical item for the same (source, externalID). The
// persisted row's identity, ownership and creation timestamp are preserved.
func (i *RegistryItem) RefreshFrom(incoming *RegistryItem) {
	i.Name = incoming.Name
	i.Brand = incoming.Brand
	i.Price = incoming.Price
	i.ImageURL = incoming.ImageURL
	i.AffiliateURL = incoming.AffiliateURL
	i.Category = incoming.Category
	i.Retailer = incoming.Retailer
	i.Description = incoming.Description
	i.touch()
	i.AddDomainEvent(NewItemUpdatedEvent(i))
}

// BelongsTo reports whether the item is owned by the given member
func (i *RegistryItem) BelongsTo(ownerID uuid.UUID) bool {
	return i.OwnerID == ownerID
}

func (i *RegistryItem) touch() {
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// validateItemName validates the item name
func validateItemName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 200 characters")
	}
	return nil
}
