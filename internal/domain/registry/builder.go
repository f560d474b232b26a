package registry

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nestline/backend/internal/domain/shared"
)

// fallbackItemName is used when a feed record carries no usable name at all.
// A malformed record degrades field by field; it never aborts an ingestion.
const fallbackItemName = "Unnamed item"

// RawProduct is the loosely-typed shape of one product record as delivered
// by an external source. Field names and presence vary per feed; every field
// is optional. This type exists only at the normalization boundary; nothing
// downstream of BuildCanonicalItem ever sees it.
type RawProduct struct {
	ExternalID  string      `json:"external_id"`
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Brand       string      `json:"brand"`
	Price       interface{} `json:"price"`
	URL         string      `json:"url"`
	ImageURL    string      `json:"image"`
	Category    string      `json:"category"`
	Retailer    string      `json:"retailer"`
	Description string      `json:"description"`
}

// BuildCanonicalItem absorbs all per-source variance of a raw product record
// and produces a fully-populated RegistryItem. It never fails: malformed
// fields degrade to their defaults so one bad upstream record cannot abort a
// feed ingestion.
func BuildCanonicalItem(ownerID uuid.UUID, source Source, raw RawProduct) *RegistryItem {
	name := firstNonEmpty(raw.Name, raw.Title)
	if name == "" {
		name = fallbackItemName
	}
	if utf8.RuneCountInString(name) > 200 {
		name = string([]rune(name)[:200])
	}

	// The dedupe key prefers the origin system's own identifier and walks
	// down to the name so even poorly-formed feeds produce a stable key.
	externalID := firstNonEmpty(raw.ExternalID, raw.ID, raw.URL, name)

	retailer := raw.Retailer
	if retailer == "" {
		retailer = source.RetailerName()
	}
	brand := raw.Brand
	if brand == "" {
		brand = source.RetailerName()
	}

	item := &RegistryItem{
		OwnedAggregateRoot: shared.NewOwnedAggregateRootWithID(ownerID, DeriveItemID(ownerID, source, externalID)),
		Source:             source,
		ExternalID:         &externalID,
		Name:               name,
		Brand:              brand,
		Price:              ParsePrice(raw.Price),
		ImageURL:           raw.ImageURL,
		AffiliateURL:       NormalizeAffiliateLink(raw.URL, source),
		Category:           ResolveCategory(raw.Category),
		Retailer:           retailer,
		Description:        raw.Description,
	}

	return item
}

// ParsePrice converts the heterogeneous raw price representations feeds
// send (numbers, currency-formatted strings, JSON numbers) into a decimal.
// Unparseable or negative input yields nil, meaning "price unknown".
func ParsePrice(raw interface{}) *decimal.Decimal {
	var parsed decimal.Decimal
	var err error

	switch v := raw.(type) {
	case nil:
		return nil
	case float64:
		parsed = decimal.NewFromFloat(v)
	case float32:
		parsed = decimal.NewFromFloat32(v)
	case int:
		parsed = decimal.NewFromInt(int64(v))
	case int64:
		parsed = decimal.NewFromInt(v)
	case json.Number:
		parsed, err = decimal.NewFromString(v.String())
	case string:
		parsed, err = decimal.NewFromString(stripCurrency(v))
	case decimal.Decimal:
		parsed = v
	default:
		return nil
	}

	if err != nil || parsed.IsNegative() {
		return nil
	}
	rounded := parsed.Round(2)
	return &rounded
}

// stripCurrency removes currency symbols, thousands separators and
// surrounding noise from a price string ("$1,049.99" -> "1049.99").
func stripCurrency(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
