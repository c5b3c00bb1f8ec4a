// Package tier implements the three acquisition strategies for obtaining
// product page content, ordered by monetary cost: direct HTTP fetch, a
// link-preview API, and a premium rendering proxy.
package tier

import (
	"context"

	"github.com/wishu/scraper/extract"
	"github.com/wishu/scraper/models"
)

// Tier is one independently-triable acquisition strategy. Fetch returns a
// useful result or an error; the orchestrator treats every error as "this
// tier produced nothing" and falls through.
type Tier interface {
	Name() string
	Fetch(ctx context.Context, url string) (*models.Result, error)
}

// resultFromHTML runs the shared chain over a tier's raw payload: size gate,
// block-page detection, field extraction, price normalization, usefulness
// gate.
func resultFromHTML(rawHTML, url string, tierNum int) (*models.Result, error) {
	if len(rawHTML) < extract.MinHTMLSize {
		return nil, models.NewScrapeError(models.ErrCodeNotUseful, "payload too short to be a product page", nil)
	}
	if extract.IsBlocked(rawHTML) {
		return nil, models.NewScrapeError(models.ErrCodeBlocked, "block page detected", nil)
	}

	f := extract.FromHTML(rawHTML, url)
	result := &models.Result{
		Title:       f.Title,
		Description: f.Description,
		Image:       f.Image,
		Price:       extract.NormalizePrice(f.Price.Raw, f.Price.Currency),
		Currency:    f.Price.Currency,
		PriceSource: f.Price.Source,
		TierUsed:    tierNum,
	}
	if !result.Useful() {
		return nil, models.NewScrapeError(models.ErrCodeNotUseful, "no title or image extracted", nil)
	}
	return result, nil
}
