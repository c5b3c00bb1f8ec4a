package tier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wishu/scraper/models"
)

// Render is Tier 3: a paid headless-browser-as-a-service endpoint
// (ScrapingBee-style). It renders JavaScript through premium stealth proxies
// and is the tier of last resort, or the only tier for domains known to
// block non-browser clients outright. Every call consumes account credits.
type Render struct {
	baseURL string
	apiKey  string
	country string
	wait    time.Duration
	client  *http.Client
	timeout time.Duration
}

// NewRender creates the rendering-proxy tier. wait is the post-render settle
// time handed to the provider's network-idle heuristic.
func NewRender(baseURL, apiKey, country string, wait, timeout time.Duration) *Render {
	return &Render{
		baseURL: baseURL,
		apiKey:  apiKey,
		country: country,
		wait:    wait,
		client:  &http.Client{},
		timeout: timeout,
	}
}

func (r *Render) Name() string { return "render" }

func (r *Render) Fetch(ctx context.Context, targetURL string) (*models.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("api_key", r.apiKey)
	params.Set("url", targetURL)
	params.Set("render_js", "true")
	params.Set("premium_proxy", "true")
	params.Set("stealth_proxy", "true")
	params.Set("country_code", r.country)
	params.Set("wait", strconv.FormatInt(r.wait.Milliseconds(), 10))
	params.Set("wait_browser", "networkidle0")
	params.Set("window_width", "1920")
	params.Set("window_height", "1080")
	params.Set("device", "desktop")
	if selector := WaitSelector(targetURL); selector != "" {
		params.Set("wait_for", selector)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("render: build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("render: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("render: read body: %w", err)
	}

	return resultFromHTML(string(body), targetURL, 3)
}
