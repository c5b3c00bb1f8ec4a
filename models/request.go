package models

// ScrapeRequest is the payload for POST /scrape.
//
// The web client sends a plain {"url": ...} body; older callable-style
// clients wrap it as {"data": {"url": ...}}. Both are accepted.
type ScrapeRequest struct {
	URL string `json:"url"`

	Data *struct {
		URL string `json:"url"`
	} `json:"data,omitempty"`
}

// TargetURL resolves the requested URL from either envelope style.
func (r *ScrapeRequest) TargetURL() string {
	if r.Data != nil && r.Data.URL != "" {
		return r.Data.URL
	}
	return r.URL
}
