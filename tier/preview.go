package tier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wishu/scraper/models"
)

// Preview is Tier 2: a free link-preview API (microlink-style). It never
// yields a price, so it serves only as a title/description/image fallback
// when the direct fetch produced nothing useful. Subject to a daily quota
// managed by the provider.
type Preview struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// previewResponse is the minimal slice of the provider's schema we consume.
type previewResponse struct {
	Status string `json:"status"`
	Data   struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Image       struct {
			URL string `json:"url"`
		} `json:"image"`
	} `json:"data"`
}

// NewPreview creates the link-preview tier against baseURL
// (e.g. "https://api.microlink.io").
func NewPreview(baseURL string, timeout time.Duration) *Preview {
	return &Preview{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
	}
}

func (p *Preview) Name() string { return "preview" }

func (p *Preview) Fetch(ctx context.Context, targetURL string) (*models.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("url", targetURL)
	params.Set("palette", "false")
	params.Set("audio", "false")
	params.Set("video", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("preview: build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("preview: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("preview: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("preview: read body: %w", err)
	}

	var pr previewResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("preview: parse response: %w", err)
	}

	result := &models.Result{
		Title:       pr.Data.Title,
		Description: pr.Data.Description,
		Image:       pr.Data.Image.URL,
		PriceSource: models.PriceSourceNone,
		TierUsed:    2,
	}
	if !result.Useful() {
		return nil, models.NewScrapeError(models.ErrCodeNotUseful, "no title or image in preview response", nil)
	}
	return result, nil
}
