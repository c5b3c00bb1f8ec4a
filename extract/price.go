package extract

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/ysmood/gson"

	"github.com/wishu/scraper/models"
)

// Price is a raw, pre-normalization price with its provenance.
type Price struct {
	Raw      string
	Currency string
	Source   string
}

// jsonldMaxDepth bounds the candidate walk on deeply nested or malicious
// structured-data payloads.
const jsonldMaxDepth = 15

// Confidence ranking for structured-data price candidates, highest first.
const (
	confOfferPrice   = 4 // price inside an Offer/AggregateOffer
	confProductPrice = 3 // price inside a Product
	confLowPrice     = 2 // lowPrice anywhere
	confUnqualified  = 1 // highPrice or untyped price
)

// priceCandidate is one price discovered during the JSON-LD scan. A single
// document may yield several (multiple ld+json blocks, nested offers).
type priceCandidate struct {
	price      string
	currency   string
	confidence int
}

// price runs the four extraction steps in order and returns on the first hit:
// price meta tags, JSON-LD structured data, CSS class heuristics, and a
// bare-text currency regex over the whole document.
func price(doc *goquery.Document, rawHTML string) Price {
	if p, ok := metaPrice(doc); ok {
		return p
	}
	if p, ok := jsonldPrice(doc); ok {
		return p
	}
	if p, ok := cssPrice(doc); ok {
		return p
	}
	if p, ok := regexPrice(rawHTML); ok {
		return p
	}
	return Price{Source: models.PriceSourceNone}
}

func metaPrice(doc *goquery.Document) (Price, bool) {
	amount := metaContent(doc, `meta[property="product:price:amount"]`)
	if amount == "" {
		amount = metaContent(doc, `meta[property="og:price:amount"]`)
	}
	if !containsDigit(amount) {
		return Price{}, false
	}
	currency := metaContent(doc, `meta[property="product:price:currency"]`)
	if currency == "" {
		currency = metaContent(doc, `meta[property="og:price:currency"]`)
	}
	return Price{Raw: amount, Currency: currency, Source: models.PriceSourceMeta}, true
}

// jsonldPrice scans every application/ld+json block, collects all price
// candidates and returns the highest-confidence one. Blocks that fail to
// parse are skipped, never aborting the scan of later blocks.
func jsonldPrice(doc *goquery.Document) (Price, bool) {
	var candidates []priceCandidate

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		block := strings.TrimSpace(s.Text())
		if block == "" || !json.Valid([]byte(block)) {
			return // skip malformed candidate
		}
		collectCandidates(gson.NewFrom(block).Val(), "", "", 0, &candidates)
	})

	if len(candidates) == 0 {
		return Price{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].confidence > candidates[j].confidence
	})
	top := candidates[0]
	return Price{Raw: top.price, Currency: top.currency, Source: models.PriceSourceJSONLD}, true
}

// collectCandidates walks the parsed JSON-LD value tree. ancestorType is the
// nearest enclosing @type; currency the nearest priceCurrency. Both are
// overridden whenever the current object declares its own.
func collectCandidates(v any, ancestorType, currency string, depth int, out *[]priceCandidate) {
	if depth > jsonldMaxDepth {
		return
	}

	switch node := v.(type) {
	case []any:
		for _, item := range node {
			collectCandidates(item, ancestorType, currency, depth+1, out)
		}
	case map[string]any:
		if t := typeOf(node["@type"]); t != "" {
			ancestorType = t
		}
		if c, ok := node["priceCurrency"].(string); ok && c != "" {
			currency = c
		}

		for _, field := range []string{"price", "lowPrice", "highPrice"} {
			raw := priceString(node[field])
			if raw == "" {
				continue
			}
			*out = append(*out, priceCandidate{
				price:      raw,
				currency:   currency,
				confidence: fieldConfidence(field, ancestorType),
			})
		}

		for _, child := range node {
			collectCandidates(child, ancestorType, currency, depth+1, out)
		}
	}
}

func fieldConfidence(field, ancestorType string) int {
	switch field {
	case "price":
		switch ancestorType {
		case "Offer", "AggregateOffer":
			return confOfferPrice
		case "Product":
			return confProductPrice
		}
		return confUnqualified
	case "lowPrice":
		return confLowPrice
	default: // highPrice
		return confUnqualified
	}
}

// typeOf reads a JSON-LD @type value, which may be a string or an array of
// strings.
func typeOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// priceString converts a JSON price value (string or number) into a raw
// price string, or "" when the value is absent or carries no digits.
func priceString(v any) string {
	switch p := v.(type) {
	case string:
		if containsDigit(p) {
			return strings.TrimSpace(p)
		}
	case float64:
		if p > 0 {
			return strconv.FormatFloat(p, 'f', -1, 64)
		}
	case int:
		if p > 0 {
			return strconv.Itoa(p)
		}
	}
	return ""
}

// priceClassMatcher targets the CSS class and data-testid conventions retail
// sites use for price display. Compiled once; applied via FindMatcher.
var priceClassMatcher = cascadia.MustCompile(
	`[class*="price"], [class*="gl-price"], [class*="sale-price"], [class*="product-price"], [data-testid*="price"]`)

var numericRe = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]{1,2})?`)

// cssPrice extracts the first numeric-looking substring from elements whose
// class or data-testid marks them as price display.
func cssPrice(doc *goquery.Document) (Price, bool) {
	found := Price{}
	doc.FindMatcher(priceClassMatcher).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		num := numericRe.FindString(text)
		if num == "" {
			return true
		}
		found = Price{
			Raw:      num,
			Currency: currencyIn(text),
			Source:   models.PriceSourceHTML,
		}
		return false
	})
	if found.Raw == "" {
		return Price{}, false
	}
	return found, true
}

// currencyRe matches a recognized currency symbol or code adjacent to a
// number with optional thousands separators and up to two decimals.
var currencyRe = regexp.MustCompile(
	`(?i)(₪|ILS|NIS|\$|USD|€|EUR|£|GBP)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)|([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*(₪|ILS|NIS|\$|USD|€|EUR|£|GBP)`)

// regexPrice is the last-resort scan over the full HTML. A match is accepted
// only when the numeric value lands strictly inside (0, 100000), which
// filters out phone numbers, product codes and similar look-alikes.
func regexPrice(rawHTML string) (Price, bool) {
	for _, m := range currencyRe.FindAllStringSubmatch(rawHTML, 20) {
		symbol, num := m[1], m[2]
		if num == "" {
			symbol, num = m[4], m[3]
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
		if err != nil || value <= 0 || value >= 100000 {
			continue
		}
		return Price{
			Raw:      num,
			Currency: currencyCode(symbol),
			Source:   models.PriceSourceRegex,
		}, true
	}
	return Price{}, false
}

// currencyIn detects a currency marker inside free text, if any.
func currencyIn(text string) string {
	if m := currencyRe.FindStringSubmatch(text); m != nil {
		if m[1] != "" {
			return currencyCode(m[1])
		}
		return currencyCode(m[4])
	}
	return ""
}

func currencyCode(symbol string) string {
	switch strings.ToUpper(symbol) {
	case "₪", "ILS", "NIS":
		return "ILS"
	case "$", "USD":
		return "USD"
	case "€", "EUR":
		return "EUR"
	case "£", "GBP":
		return "GBP"
	}
	return ""
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
