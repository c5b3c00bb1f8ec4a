// Package pipeline orchestrates the acquisition tiers for one scrape
// request: which tiers run, in what order, how partial results merge, and
// when to give up.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wishu/scraper/config"
	"github.com/wishu/scraper/models"
	"github.com/wishu/scraper/tier"
	"github.com/wishu/scraper/urlnorm"
)

// Pipeline is the scrape controller. Stateless across requests; safe for
// concurrent use. Tiers are always run sequentially within one request —
// the render tier is billed per call, so racing is never worth it.
type Pipeline struct {
	direct  tier.Tier
	preview tier.Tier
	render  tier.Tier // nil when no API credential is configured
}

// New wires the three tiers from configuration. A missing render credential
// degrades that tier to "unavailable" rather than failing construction.
func New(cfg *config.Config) *Pipeline {
	p := &Pipeline{
		direct:  tier.NewDirect(cfg.Tiers.DirectTimeout),
		preview: tier.NewPreview(cfg.Tiers.PreviewBaseURL, cfg.Tiers.PreviewTimeout),
	}
	if cfg.Tiers.RenderAPIKey != "" {
		p.render = tier.NewRender(
			cfg.Tiers.RenderBaseURL,
			cfg.Tiers.RenderAPIKey,
			cfg.Tiers.CountryCode,
			cfg.Tiers.RenderWait,
			cfg.Tiers.RenderTimeout,
		)
	} else {
		slog.Warn("render tier unavailable: no API key configured")
	}
	return p
}

// NewWithTiers wires an already-constructed tier set. render may be nil.
func NewWithTiers(direct, preview, render tier.Tier) *Pipeline {
	return &Pipeline{direct: direct, preview: preview, render: render}
}

// PremiumConfigured reports whether the render tier has a credential.
func (p *Pipeline) PremiumConfigured() bool {
	return p.render != nil
}

// Scrape runs the tier state machine for one URL and always returns a
// well-typed result; no failure mode crosses this boundary as an error.
//
//	Start → NormalizeURL → CheckPremiumRequired →
//	  {TryTier1 → TryTier2 → ConditionalTier3} | {Tier3Only} → MergeAndReturn
func (p *Pipeline) Scrape(ctx context.Context, rawURL string) *models.Result {
	cleaned := urlnorm.Clean(rawURL)
	blockedSeen := false

	run := func(t tier.Tier) *models.Result {
		if t == nil {
			return nil
		}
		res, err := t.Fetch(ctx, cleaned)
		if err != nil {
			var se *models.ScrapeError
			if errors.As(err, &se) && se.Code == models.ErrCodeBlocked {
				blockedSeen = true
			}
			slog.Info("tier produced nothing", "tier", t.Name(), "url", cleaned, "error", err)
			return nil
		}
		slog.Info("tier succeeded", "tier", t.Name(), "url", cleaned, "hasPrice", res.HasPrice())
		return res
	}

	// Hosts behind heavy anti-bot vendors skip straight to the render tier;
	// the free tiers are known to waste the attempt.
	if tier.PremiumRequired(cleaned) {
		if res := run(p.render); res.Useful() {
			return res
		}
		return p.failure(blockedSeen)
	}

	res := run(p.direct)
	if !res.Useful() {
		res = run(p.preview)
	}

	if res.Useful() {
		if res.HasPrice() {
			return res
		}
		// Free tier found the product but not the price: invoke the render
		// tier narrowly for price backfill. Title/image from the free tier
		// are kept — they are already trusted, and the paid re-fetch exists
		// only to read the hydrated price.
		if premium := run(p.render); premium.HasPrice() {
			res.Price = premium.Price
			res.Currency = premium.Currency
			res.PriceSource = premium.PriceSource
			slog.Info("price backfilled from render tier", "url", cleaned, "price", res.Price)
		}
		return res
	}

	// Neither free tier was useful and the render tier has not run yet:
	// full fallback.
	if res := run(p.render); res.Useful() {
		return res
	}
	return p.failure(blockedSeen)
}

func (p *Pipeline) failure(blocked bool) *models.Result {
	if blocked {
		return models.Failure(
			"This site blocks automated access. Please enter details manually.",
			models.ErrCodeManualRequired,
		)
	}
	return models.Failure(
		"Scraping failed - all tiers exhausted",
		models.ErrCodeScrapeFailed,
	)
}
