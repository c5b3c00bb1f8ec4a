package extract

import "strings"

// blockSignatures are textual markers of anti-bot challenge pages. Vendor
// names cover the WAF/CDN products most often seen in front of retail sites;
// the rest are the generic challenge phrases those products render. The scan
// is deliberately conservative: a false positive only costs a tier
// fallthrough, a false negative just yields empty fields downstream.
var blockSignatures = []string{
	"cloudflare",
	"akamai",
	"ray id",
	"are you a robot",
	"verify you are a human",
	"enable javascript",
	"access denied",
	"403 forbidden",
	"captcha",
	"security check",
}

// IsBlocked classifies HTML as a bot-challenge/block page. The match is
// case-insensitive and short-circuits on the first signature found.
func IsBlocked(html string) bool {
	lower := strings.ToLower(html)
	for _, sig := range blockSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}
