package tier

import (
	"net/url"
	"strings"
)

// premiumDomains lists retailers whose anti-bot vendors block both the
// direct fetch and the preview API even before a challenge is rendered.
// For these, the orchestrator goes straight to the rendering proxy.
var premiumDomains = []string{
	"zara.com",
	"adidas.co.il",
	"adidas.com",
	"hm.com",
	"shein.com",
	"shein.co.il",
	"asos.com",
	"nike.com",
}

// waitSelectors maps retailer hostnames to the CSS selector of their
// product-detail container. The rendering proxy waits for the selector so
// client-side price hydration finishes before the snapshot.
var waitSelectors = []struct {
	domain   string
	selector string
}{
	{"zara.com", ".product-detail-view__main-info"},
	{"adidas", ".product-description"},
	{"shein.com", ".product-intro"},
	{"shein.co.il", ".product-intro"},
	{"hm.com", `[data-testid="productName"]`},
	{"asos.com", "#product-details"},
}

// PremiumRequired reports whether the URL's host is known to require the
// premium rendering tier unconditionally.
func PremiumRequired(rawURL string) bool {
	host := hostname(rawURL)
	if host == "" {
		return false
	}
	for _, domain := range premiumDomains {
		if strings.Contains(host, domain) {
			return true
		}
	}
	return false
}

// WaitSelector returns the per-retailer render-wait selector for the URL's
// host, or "" when no constraint applies.
func WaitSelector(rawURL string) string {
	host := hostname(rawURL)
	if host == "" {
		return ""
	}
	for _, entry := range waitSelectors {
		if strings.Contains(host, entry.domain) {
			return entry.selector
		}
	}
	return ""
}

func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
