package extract

import (
	"strings"
	"testing"

	"github.com/wishu/scraper/models"
)

// page pads head content into a document comfortably over MinHTMLSize.
func page(head string) string {
	return "<html><head>" + head + "</head><body><div>" +
		strings.Repeat("product detail filler text ", 30) +
		"</div></body></html>"
}

func TestFromHTML_Title(t *testing.T) {
	tests := []struct {
		name string
		head string
		want string
	}{
		{
			"og title wins",
			`<meta property="og:title" content="Blue Shirt"><meta name="twitter:title" content="Other"><title>Page Title</title>`,
			"Blue Shirt",
		},
		{
			"twitter title second",
			`<meta name="twitter:title" content="Blue Shirt"><title>Page Title</title>`,
			"Blue Shirt",
		},
		{
			"title element truncated at pipe",
			`<title>Blue Shirt | MegaShop</title>`,
			"Blue Shirt",
		},
		{
			"title element truncated at dash",
			`<title>Blue Shirt - MegaShop</title>`,
			"Blue Shirt",
		},
		{
			"no title at all",
			`<meta name="description" content="x">`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromHTML(page(tt.head), "https://shop.example/p/1")
			if got.Title != tt.want {
				t.Errorf("Title = %q, want %q", got.Title, tt.want)
			}
		})
	}
}

func TestFromHTML_Description(t *testing.T) {
	got := FromHTML(page(`<meta property="og:description" content="Soft cotton."><meta name="description" content="fallback">`), "https://shop.example/p/1")
	if got.Description != "Soft cotton." {
		t.Errorf("Description = %q, want %q", got.Description, "Soft cotton.")
	}

	got = FromHTML(page(`<meta name="description" content="Standard meta.">`), "https://shop.example/p/1")
	if got.Description != "Standard meta." {
		t.Errorf("Description = %q, want %q", got.Description, "Standard meta.")
	}
}

func TestFromHTML_Image(t *testing.T) {
	tests := []struct {
		name string
		head string
		want string
	}{
		{
			"og image",
			`<meta property="og:image" content="https://cdn.example/1.jpg">`,
			"https://cdn.example/1.jpg",
		},
		{
			"relative og image discarded, twitter wins",
			`<meta property="og:image" content="/img/1.jpg"><meta name="twitter:image" content="https://cdn.example/2.jpg">`,
			"https://cdn.example/2.jpg",
		},
		{
			"product image meta",
			`<meta property="product:image" content="http://cdn.example/3.jpg">`,
			"http://cdn.example/3.jpg",
		},
		{
			"relative only yields empty",
			`<meta property="og:image" content="/img/1.jpg">`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromHTML(page(tt.head), "https://shop.example/p/1")
			if got.Image != tt.want {
				t.Errorf("Image = %q, want %q", got.Image, tt.want)
			}
		})
	}
}

func TestFromHTML_ShortInput(t *testing.T) {
	short := `<html><head><meta property="og:title" content="Shirt"></head></html>`
	if len(short) >= MinHTMLSize {
		t.Fatalf("test input unexpectedly long: %d", len(short))
	}
	got := FromHTML(short, "https://shop.example/p/1")
	if got.Title != "" || got.Description != "" || got.Image != "" {
		t.Errorf("short input should yield empty fields, got %+v", got)
	}
	if got.Price.Source != models.PriceSourceNone {
		t.Errorf("short input price source = %q, want %q", got.Price.Source, models.PriceSourceNone)
	}
}
