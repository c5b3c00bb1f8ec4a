package models

// Provenance of an extracted price, used for confidence ranking and debugging.
const (
	PriceSourceMeta   = "meta"
	PriceSourceJSONLD = "jsonld"
	PriceSourceHTML   = "html"
	PriceSourceRegex  = "regex"
	PriceSourceAPI    = "api"
	PriceSourceNone   = "none"
)

// Result is the unit produced by each acquisition tier and by the pipeline as
// a whole. It doubles as the response body for POST /scrape: graceful
// failures are expressed through Error/ErrorCode with HTTP 200, never as a
// non-2xx status, so the caller can always render the payload.
type Result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`

	// Price is the normalized display string (e.g. "99.90 ₪"), empty when no
	// price was found.
	Price       string `json:"price"`
	Currency    string `json:"currency,omitempty"`
	PriceSource string `json:"priceSource"`

	// TierUsed is the acquisition tier that produced this result (1, 2 or 3).
	// Zero on the canonical failure shape.
	TierUsed int `json:"tierUsed,omitempty"`

	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// Useful reports whether the result carries enough data to be worth
// returning: a non-empty title or a non-empty image. Usefulness gates tier
// fallthrough in the pipeline.
func (r *Result) Useful() bool {
	return r != nil && (r.Title != "" || r.Image != "")
}

// HasPrice reports whether a price was extracted.
func (r *Result) HasPrice() bool {
	return r != nil && r.Price != ""
}

// Failure returns the canonical all-empty failure shape.
func Failure(message, code string) *Result {
	return &Result{
		PriceSource: PriceSourceNone,
		Error:       message,
		ErrorCode:   code,
	}
}
