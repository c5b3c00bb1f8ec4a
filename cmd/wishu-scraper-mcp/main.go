package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// scrapeRequest mirrors the wishu-scraper API request model.
type scrapeRequest struct {
	URL string `json:"url"`
}

// scrapeResponse mirrors the wishu-scraper API response model.
type scrapeResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	PriceSource string `json:"priceSource"`
	TierUsed    int    `json:"tierUsed"`
	Error       string `json:"error"`
	ErrorCode   string `json:"errorCode"`
}

func main() {
	apiURL := os.Getenv("WISHU_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("WISHU_API_KEY")

	s := server.NewMCPServer(
		"wishu-scraper",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	scrapeTool := mcp.NewTool("scrape_product",
		mcp.WithDescription("Extract product metadata (title, description, image, price) from a retailer product page URL. Falls back through a link-preview API and a rendering proxy for bot-protected stores."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The product page URL to scrape"),
		),
	)

	s.AddTool(scrapeTool, handleScrapeProduct(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleScrapeProduct(apiURL, apiKey string) server.ToolHandlerFunc {
	// Budget covers all three tiers, including the slow rendering proxy.
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		body, err := json.Marshal(scrapeRequest{URL: url})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/scrape", bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var scrapeResp scrapeResponse
		if err := json.Unmarshal(respBody, &scrapeResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if scrapeResp.ErrorCode != "" || (resp.StatusCode != http.StatusOK) {
			errMsg := scrapeResp.Error
			if errMsg == "" {
				errMsg = "scrape failed"
			}
			if scrapeResp.ErrorCode != "" {
				errMsg = fmt.Sprintf("[%s] %s", scrapeResp.ErrorCode, errMsg)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		result := fmt.Sprintf("Title: %s\nDescription: %s\nImage: %s\nPrice: %s\nSource: %s (tier %d)",
			scrapeResp.Title,
			scrapeResp.Description,
			scrapeResp.Image,
			scrapeResp.Price,
			scrapeResp.PriceSource,
			scrapeResp.TierUsed,
		)

		return mcp.NewToolResultText(result), nil
	}
}
