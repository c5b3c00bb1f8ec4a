// Package urlnorm strips tracking query parameters from product URLs before
// any network access.
package urlnorm

import (
	"net/url"
	"strings"
)

// trackingPrefixes lists query-parameter key prefixes that carry marketing or
// affiliate tracking state and never affect which product a URL resolves to.
var trackingPrefixes = []string{
	"utm_",
	"ref",
	"affiliate",
	"source",
	"fbclid",
	"gclid",
	"mc_",
	"msclkid",
	"_ga",
	"clickid",
}

// Clean removes tracking parameters from rawURL. Host, path, fragment, the
// surviving parameters and their order are left untouched. On parse failure
// the input is returned unchanged. Idempotent.
func Clean(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil {
		return rawURL
	}
	if u.RawQuery == "" {
		return trimmed
	}

	// Rebuild the query by hand instead of round-tripping through url.Values,
	// which would re-sort and re-encode the surviving parameters.
	kept := make([]string, 0, 4)
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key = pair[:i]
		}
		if isTracking(key) {
			continue
		}
		kept = append(kept, pair)
	}

	u.RawQuery = strings.Join(kept, "&")
	return u.String()
}

func isTracking(key string) bool {
	decoded, err := url.QueryUnescape(key)
	if err != nil {
		decoded = key
	}
	lower := strings.ToLower(decoded)
	for _, prefix := range trackingPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
