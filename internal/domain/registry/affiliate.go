package registry

import (
	"net/url"
	"strings"
)

// AffiliatePolicy describes how outbound links for a source are tagged for
// affiliate tracking: one query parameter set to one fixed value. Adding a
// retailer contract is a table entry, not new branching.
type AffiliatePolicy struct {
	Param string
	Value string
}

// affiliatePolicies is the per-source tracking contract table. Sources
// without an entry (curated catalog, manual items) pass URLs through
// unchanged.
var affiliatePolicies = map[Source]AffiliatePolicy{
	SourceTarget:     {Param: "afid", Value: "nestline"},
	SourceAmazon:     {Param: "tag", Value: "nestline-20"},
	SourceBabylist:   {Param: "clickref", Value: "nl-registry"},
	SourceMyRegistry: {Param: "partner", Value: "nestline"},
}

// PolicyForSource returns the affiliate policy for a source, if one exists
func PolicyForSource(source Source) (AffiliatePolicy, bool) {
	policy, ok := affiliatePolicies[source]
	return policy, ok
}

// NormalizeAffiliateLink rewrites a raw product URL according to the
// source's affiliate-tracking contract. Empty input returns an empty string,
// which callers treat as "no outbound link". Existing query parameters and
// path segments are preserved; the tracking parameter is set or overwritten,
// so the function is idempotent for a given source.
//
// A URL that does not parse as an absolute URL degrades to naive
// string concatenation of the tracking parameter; a mistagged link is
// better than a broken one.
func NormalizeAffiliateLink(rawURL string, source Source) string {
	if strings.TrimSpace(rawURL) == "" {
		return ""
	}

	policy, ok := affiliatePolicies[source]
	if !ok {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return concatTrackingParam(rawURL, policy)
	}

	query := parsed.Query()
	query.Set(policy.Param, policy.Value)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// concatTrackingParam appends the tracking parameter without parsing.
// Re-applying is still idempotent: an already-present parameter is left
// alone.
func concatTrackingParam(rawURL string, policy AffiliatePolicy) string {
	if strings.Contains(rawURL, policy.Param+"=") {
		return rawURL
	}
	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}
	return rawURL + separator + policy.Param + "=" + url.QueryEscape(policy.Value)
}
