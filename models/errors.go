package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	// ErrCodeScrapeFailed is the terminal code when every tier was exhausted
	// without producing a useful result.
	ErrCodeScrapeFailed = "SCRAPE_FAILED"

	// ErrCodeManualRequired signals that a bot-challenge page was detected and
	// the caller should prompt the user for manual entry instead of retrying.
	ErrCodeManualRequired = "SCRAPE_FAILED_MANUAL_REQUIRED"

	ErrCodeBlocked      = "BLOCK_PAGE_DETECTED"
	ErrCodeNotUseful    = "NO_USEFUL_DATA"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
)

// ScrapeError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}
