package wh

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PageFetcher retrieves pages and raw bytes from willhaben. It is
// implemented by *fetch.Fetcher and stubbed in tests.
type PageFetcher interface {
	Document(ctx context.Context, url string) ([]byte, error)
	Bytes(ctx context.Context, url string) ([]byte, error)
}

// Client turns fetched willhaben pages into typed results.
type Client struct {
	fetcher PageFetcher
}

// NewClient builds a Client.
func NewClient(fetcher PageFetcher) *Client {
	return &Client{fetcher: fetcher}
}

// Search runs a marketplace keyword search. categoryID refines by
// ATTRIBUTE_TREE facet when non-empty; page is 1-based; locationID
// narrows to one Bundesland area when non-zero.
func (c *Client) Search(ctx context.Context, query, categoryID string, page, locationID int) (SearchResult, error) {
	values := url.Values{}
	values.Set("keyword", query)
	if categoryID != "" {
		values.Set("ATTRIBUTE_TREE", categoryID)
	}
	if page > 1 {
		values.Set("page", strconv.Itoa(page))
	}
	if locationID > 0 {
		values.Set("areaId", strconv.Itoa(locationID))
	}

	doc, err := c.fetcher.Document(ctx, BaseURL+"/iad/kaufen-und-verkaufen/marktplatz?"+values.Encode())
	if err != nil {
		return SearchResult{}, fmt.Errorf("search %q: %w", query, err)
	}
	return ParseSearchDocument(doc)
}

// FetchDetail loads a single listing's page.
func (c *Client) FetchDetail(ctx context.Context, adID string) (ListingDetail, error) {
	doc, err := c.fetcher.Document(ctx, BaseURL+"/iad/object?adId="+url.QueryEscape(adID))
	if err != nil {
		return ListingDetail{}, fmt.Errorf("fetch listing %s: %w", adID, err)
	}
	return ParseDetailDocument(doc)
}

// FetchProfile scrapes the logged-in user's profile off the homepage.
// A nil profile with nil error means the session is anonymous.
func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	doc, err := c.fetcher.Document(ctx, BaseURL+"/")
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return ParseProfileDocument(doc)
}

// FetchImage downloads a listing image.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	data, err := c.fetcher.Bytes(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	return data, nil
}
