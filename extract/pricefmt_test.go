package extract

import (
	"strings"
	"testing"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		currency string
		want     string
	}{
		{"shekel suffixed", "150", "ILS", "150.00 ₪"},
		{"nis alias", "99.9", "NIS", "99.90 ₪"},
		{"unknown currency defaults to shekel", "80", "XYZ", "80.00 ₪"},
		{"empty currency defaults to shekel", "80", "", "80.00 ₪"},
		{"dollar prefixed", "49.99", "USD", "$49.99"},
		{"euro prefixed", "30", "EUR", "€30.00"},
		{"pound prefixed", "25.5", "GBP", "£25.50"},
		{"thousands separator stripped", "1,299", "ILS", "1299.00 ₪"},
		{"symbol already present passes through", " 99.90 ₪ ", "ILS", "99.90 ₪"},
		{"dollar symbol passthrough", "$12.00", "USD", "$12.00"},
		{"unparseable returned unchanged", "abc", "", "abc"},
		{"empty input", "", "ILS", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePrice(tt.raw, tt.currency); got != tt.want {
				t.Errorf("NormalizePrice(%q, %q) = %q, want %q", tt.raw, tt.currency, got, tt.want)
			}
		})
	}
}

func TestNormalizePrice_ShekelSuffixPlacement(t *testing.T) {
	got := NormalizePrice("150", "ILS")
	if !strings.Contains(got, "150") || !strings.HasSuffix(got, "₪") {
		t.Errorf("shekel must be suffixed: got %q", got)
	}
	if strings.HasPrefix(got, "₪") {
		t.Errorf("shekel must not be prefixed: got %q", got)
	}
}
