package pipeline

import (
	"context"
	"testing"

	"github.com/wishu/scraper/models"
	"github.com/wishu/scraper/tier"
)

// stubTier is a scripted tier for state-machine tests.
type stubTier struct {
	name   string
	result *models.Result
	err    error
	calls  int
}

func (s *stubTier) Name() string { return s.name }

func (s *stubTier) Fetch(ctx context.Context, url string) (*models.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func failing(name string) *stubTier {
	return &stubTier{name: name, err: models.NewScrapeError(models.ErrCodeNotUseful, "nothing", nil)}
}

func TestScrape_Tier1CompleteResultReturnsImmediately(t *testing.T) {
	direct := &stubTier{name: "direct", result: &models.Result{
		Title: "Shirt", Image: "http://x/1.jpg",
		Price: "99.90 ₪", Currency: "ILS", PriceSource: models.PriceSourceMeta, TierUsed: 1,
	}}
	preview := failing("preview")
	render := failing("render")

	p := NewWithTiers(direct, preview, render)
	res := p.Scrape(context.Background(), "https://shop.example/p/1")

	if res.Title != "Shirt" || res.Price != "99.90 ₪" {
		t.Errorf("unexpected result: %+v", res)
	}
	if preview.calls != 0 || render.calls != 0 {
		t.Errorf("cheapest path must not touch later tiers (preview=%d render=%d)", preview.calls, render.calls)
	}
}

func TestScrape_PriceBackfillFromRenderTier(t *testing.T) {
	direct := &stubTier{name: "direct", result: &models.Result{
		Title: "Shirt", Image: "http://x/1.jpg", PriceSource: models.PriceSourceNone, TierUsed: 1,
	}}
	render := &stubTier{name: "render", result: &models.Result{
		Title: "Render Shirt", Image: "http://y/other.jpg",
		Price: "49.99 ₪", Currency: "ILS", PriceSource: models.PriceSourceJSONLD, TierUsed: 3,
	}}

	p := NewWithTiers(direct, failing("preview"), render)
	res := p.Scrape(context.Background(), "https://shop.example/p/1")

	if res.Title != "Shirt" || res.Image != "http://x/1.jpg" {
		t.Errorf("free-tier title/image must be preserved: %+v", res)
	}
	if res.Price != "49.99 ₪" || res.Currency != "ILS" || res.PriceSource != models.PriceSourceJSONLD {
		t.Errorf("price fields must come from render tier: %+v", res)
	}
	if res.TierUsed != 1 {
		t.Errorf("TierUsed = %d, want 1 (free tier produced the result)", res.TierUsed)
	}
}

func TestScrape_BackfillFailureKeepsFreeResult(t *testing.T) {
	direct := &stubTier{name: "direct", result: &models.Result{
		Title: "Shirt", PriceSource: models.PriceSourceNone, TierUsed: 1,
	}}
	render := failing("render")

	p := NewWithTiers(direct, failing("preview"), render)
	res := p.Scrape(context.Background(), "https://shop.example/p/1")

	if res.Title != "Shirt" || res.Price != "" {
		t.Errorf("free-tier result must survive a failed backfill: %+v", res)
	}
	if render.calls != 1 {
		t.Errorf("render calls = %d, want 1", render.calls)
	}
}

func TestScrape_Tier2FallbackWithBackfill(t *testing.T) {
	preview := &stubTier{name: "preview", result: &models.Result{
		Title: "Preview Shirt", PriceSource: models.PriceSourceNone, TierUsed: 2,
	}}
	render := &stubTier{name: "render", result: &models.Result{
		Title: "Render Shirt", Price: "20.00 ₪", Currency: "ILS",
		PriceSource: models.PriceSourceRegex, TierUsed: 3,
	}}

	p := NewWithTiers(failing("direct"), preview, render)
	res := p.Scrape(context.Background(), "https://shop.example/p/1")

	if res.Title != "Preview Shirt" {
		t.Errorf("title must come from preview tier: %+v", res)
	}
	if res.Price != "20.00 ₪" || res.PriceSource != models.PriceSourceRegex {
		t.Errorf("price must be backfilled: %+v", res)
	}
}

func TestScrape_RenderFullFallback(t *testing.T) {
	render := &stubTier{name: "render", result: &models.Result{
		Title: "Render Shirt", Image: "http://z/1.jpg", Price: "10.00 ₪",
		Currency: "ILS", PriceSource: models.PriceSourceMeta, TierUsed: 3,
	}}

	p := NewWithTiers(failing("direct"), failing("preview"), render)
	res := p.Scrape(context.Background(), "https://shop.example/p/1")

	if res.Title != "Render Shirt" || res.TierUsed != 3 {
		t.Errorf("expected full render fallback result, got %+v", res)
	}
}

func TestScrape_AllTiersFail(t *testing.T) {
	p := NewWithTiers(failing("direct"), failing("preview"), failing("render"))
	res := p.Scrape(context.Background(), "https://shop.example/p/1")

	if res.Title != "" || res.Description != "" || res.Image != "" || res.Price != "" {
		t.Errorf("failure shape must be all-empty: %+v", res)
	}
	if res.ErrorCode != models.ErrCodeScrapeFailed {
		t.Errorf("errorCode = %q, want %q", res.ErrorCode, models.ErrCodeScrapeFailed)
	}
	if res.Error == "" {
		t.Error("failure shape must carry a human-readable error")
	}
}

func TestScrape_BlockDetectionYieldsManualRequired(t *testing.T) {
	blocked := &stubTier{name: "direct", err: models.NewScrapeError(models.ErrCodeBlocked, "block page detected", nil)}
	p := NewWithTiers(blocked, failing("preview"), failing("render"))
	res := p.Scrape(context.Background(), "https://shop.example/p/1")

	if res.ErrorCode != models.ErrCodeManualRequired {
		t.Errorf("errorCode = %q, want %q", res.ErrorCode, models.ErrCodeManualRequired)
	}
}

func TestScrape_PremiumDomainSkipsFreeTiers(t *testing.T) {
	direct := failing("direct")
	preview := failing("preview")
	render := &stubTier{name: "render", result: &models.Result{
		Title: "Zara Jacket", Image: "http://z/1.jpg", PriceSource: models.PriceSourceNone, TierUsed: 3,
	}}

	p := NewWithTiers(direct, preview, render)
	res := p.Scrape(context.Background(), "https://www.zara.com/il/en/jacket.html")

	if direct.calls != 0 || preview.calls != 0 {
		t.Errorf("free tiers must be skipped for premium domains (direct=%d preview=%d)", direct.calls, preview.calls)
	}
	if res.Title != "Zara Jacket" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestScrape_PremiumDomainRenderUnavailable(t *testing.T) {
	p := NewWithTiers(failing("direct"), failing("preview"), nil)
	res := p.Scrape(context.Background(), "https://www.zara.com/il/en/jacket.html")

	if res.ErrorCode != models.ErrCodeScrapeFailed {
		t.Errorf("errorCode = %q, want %q", res.ErrorCode, models.ErrCodeScrapeFailed)
	}
}

func TestScrape_NoRenderTierStillServesFreeTiers(t *testing.T) {
	direct := &stubTier{name: "direct", result: &models.Result{
		Title: "Shirt", PriceSource: models.PriceSourceNone, TierUsed: 1,
	}}
	p := NewWithTiers(direct, failing("preview"), nil)
	res := p.Scrape(context.Background(), "https://shop.example/p/1")

	if res.Title != "Shirt" {
		t.Errorf("free-tier result must be returned without a render tier: %+v", res)
	}
}

func TestScrape_URLNormalizedBeforeTiers(t *testing.T) {
	var seen string
	direct := &stubTier{name: "direct"}
	direct.err = models.NewScrapeError(models.ErrCodeNotUseful, "nothing", nil)

	capture := &captureTier{inner: direct, seen: &seen}
	p := NewWithTiers(capture, failing("preview"), nil)
	p.Scrape(context.Background(), "https://shop.example/p/1?utm_source=fb&color=red")

	if seen != "https://shop.example/p/1?color=red" {
		t.Errorf("tier saw %q, want tracking params stripped", seen)
	}
}

type captureTier struct {
	inner tier.Tier
	seen  *string
}

func (c *captureTier) Name() string { return c.inner.Name() }

func (c *captureTier) Fetch(ctx context.Context, url string) (*models.Result, error) {
	*c.seen = url
	return c.inner.Fetch(ctx, url)
}
