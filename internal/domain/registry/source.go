package registry

// Source identifies where a registry item originated. The set is closed:
// every persisted item carries exactly one of these values and reconciliation
// is always scoped to a single source.
type Source string

const (
	// SourceCuratedCatalog is the bundled, versioned product catalog that
	// ships with the application. It never performs I/O and backs every
	// live-feed fallback.
	SourceCuratedCatalog Source = "curated-catalog"
	// SourceTarget is the Target product feed (live HTTP feed)
	SourceTarget Source = "target"
	// SourceAmazon is the Amazon product feed (live HTTP feed)
	SourceAmazon Source = "amazon"
	// SourceBabylist is a member-linked Babylist registry account
	SourceBabylist Source = "babylist"
	// SourceMyRegistry is a member-linked MyRegistry account
	SourceMyRegistry Source = "myregistry"
	// SourceManual marks items a member added by hand
	SourceManual Source = "manual"
)

// IsValid returns true if the source is one of the known origin types
func (s Source) IsValid() bool {
	switch s {
	case SourceCuratedCatalog, SourceTarget, SourceAmazon,
		SourceBabylist, SourceMyRegistry, SourceManual:
		return true
	default:
		return false
	}
}

// String returns the string representation of the source
func (s Source) String() string {
	return string(s)
}

// RetailerName returns the canonical display label for the source's retailer
func (s Source) RetailerName() string {
	switch s {
	case SourceCuratedCatalog:
		return "Nestline Picks"
	case SourceTarget:
		return "Target"
	case SourceAmazon:
		return "Amazon"
	case SourceBabylist:
		return "Babylist"
	case SourceMyRegistry:
		return "MyRegistry"
	case SourceManual:
		return "Custom"
	default:
		return string(s)
	}
}

// IsLinkedAccount returns true for sources that require a stored per-member
// connection before their adapter can sync
func (s Source) IsLinkedAccount() bool {
	return s == SourceBabylist || s == SourceMyRegistry
}

// IsLiveFeed returns true for sources fetched from a third-party HTTP feed
func (s Source) IsLiveFeed() bool {
	return s == SourceTarget || s == SourceAmazon
}

// IsManual returns true for member-entered items. Manual items are never
// deduplicated against each other.
func (s Source) IsManual() bool {
	return s == SourceManual
}

// LinkedAccountSources returns the sources that support the link/sync flow
func LinkedAccountSources() []Source {
	return []Source{SourceBabylist, SourceMyRegistry}
}

// ParseSource converts a raw string into a Source, reporting validity
func ParseSource(raw string) (Source, bool) {
	s := Source(raw)
	return s, s.IsValid()
}
