// Package extract pulls product fields (title, description, image, price)
// out of raw HTML. All extractors are pure: no network access, no state.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/wishu/scraper/models"
)

// MinHTMLSize is the smallest payload worth extracting from. Anything below
// this is certainly not a real product page (error stub, empty shell).
const MinHTMLSize = 500

// Fields holds every product field extracted from one page.
type Fields struct {
	Title       string
	Description string
	Image       string
	Price       Price
}

// FromHTML runs all field extractors over one HTML document. sourceURL is
// used only for the readability description fallback. Inputs under
// MinHTMLSize yield empty fields.
func FromHTML(rawHTML, sourceURL string) Fields {
	none := Fields{Price: Price{Source: models.PriceSourceNone}}
	if len(rawHTML) < MinHTMLSize {
		return none
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return none
	}

	f := Fields{
		Title:       title(doc, rawHTML),
		Description: description(doc),
		Image:       image(doc),
		Price:       price(doc, rawHTML),
	}
	if f.Description == "" {
		f.Description = readabilityExcerpt(rawHTML, sourceURL)
	}
	return f
}

// title tries og:title, then twitter:title, then the <title> element. The
// <title> fallback is truncated at the first "|" or "-" because sites
// routinely suffix their brand name there.
func title(doc *goquery.Document, rawHTML string) string {
	if t := metaContent(doc, `meta[property="og:title"]`); t != "" {
		return t
	}
	if t := metaContent(doc, `meta[name="twitter:title"]`); t != "" {
		return t
	}
	t := titleElement(rawHTML)
	if i := strings.IndexAny(t, "|-"); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

func description(doc *goquery.Document) string {
	if d := metaContent(doc, `meta[property="og:description"]`); d != "" {
		return d
	}
	return metaContent(doc, `meta[name="description"]`)
}

// image accepts only absolute URLs; relative candidates are discarded rather
// than resolved, since a wrong base would poison the stored gift record.
func image(doc *goquery.Document) string {
	for _, sel := range []string{
		`meta[property="og:image"]`,
		`meta[name="twitter:image"]`,
		`meta[property="product:image"]`,
	} {
		if img := metaContent(doc, sel); strings.HasPrefix(img, "http") {
			return img
		}
	}
	return ""
}

// metaContent returns the trimmed content attribute of the first element
// matching sel, or "".
func metaContent(doc *goquery.Document, sel string) string {
	content, _ := doc.Find(sel).First().Attr("content")
	return strings.TrimSpace(content)
}

// titleElement finds the first <title> text with the HTML tokenizer.
func titleElement(rawHTML string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(rawHTML))
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			if string(tn) == "title" {
				if tokenizer.Next() == html.TextToken {
					return strings.TrimSpace(string(tokenizer.Text()))
				}
				return ""
			}
		}
	}
}

// readabilityExcerpt is the description of last resort: the article excerpt
// readability computes from the page body. Skipped when the source URL does
// not parse, since readability needs a base URL to resolve links.
func readabilityExcerpt(rawHTML, sourceURL string) string {
	base, err := url.Parse(sourceURL)
	if err != nil || base.Host == "" {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.Excerpt)
}
