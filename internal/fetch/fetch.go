// Package fetch retrieves willhaben pages and extracts the embedded
// __NEXT_DATA__ JSON document, with an optional headless-browser
// fallback for responses that withhold it.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// ErrNoDocument reports that a fetched page carried no __NEXT_DATA__
// script tag, typically a bot-challenge interstitial.
var ErrNoDocument = errors.New("page carries no __NEXT_DATA__ document")

const (
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	requestTimeout = 15 * time.Second
	browserTimeout = 30 * time.Second
)

// Options configures a Fetcher.
type Options struct {
	CookieHeader string // pre-obtained session cookies, may be empty
	UseBrowser   bool   // allow the chromedp fallback
}

// Fetcher downloads pages over plain HTTP first and only falls back to
// a headless browser when the page withholds its data payload.
type Fetcher struct {
	http    *http.Client
	cookies string
	browser bool
}

// New builds a Fetcher.
func New(opts Options) *Fetcher {
	return &Fetcher{
		http:    &http.Client{Timeout: requestTimeout},
		cookies: strings.TrimSpace(opts.CookieHeader),
		browser: opts.UseBrowser,
	}
}

// Document fetches url and returns the raw __NEXT_DATA__ JSON bytes.
func (f *Fetcher) Document(ctx context.Context, url string) ([]byte, error) {
	html, err := f.page(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := extractNextData(html)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ErrNoDocument) || !f.browser {
		return nil, err
	}

	// The plain response was likely a challenge page; render it for real.
	html, err = f.renderedPage(ctx, url)
	if err != nil {
		return nil, err
	}
	return extractNextData(html)
}

// Bytes fetches url and returns the raw response body, used for image
// downloads.
func (f *Fetcher) Bytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (f *Fetcher) page(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "de-AT,de;q=0.9,en;q=0.8")
	if f.cookies != "" {
		req.Header.Set("Cookie", f.cookies)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(body), nil
}

// renderedPage loads the url in headless Chrome and returns the final
// DOM, letting any JS challenge resolve itself first.
func (f *Fetcher) renderedPage(ctx context.Context, url string) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.UserAgent(userAgent),
		)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timed, cancelTimed := context.WithTimeout(browserCtx, browserTimeout)
	defer cancelTimed()

	var html string
	err := chromedp.Run(timed,
		chromedp.Navigate(url),
		chromedp.WaitReady("#__NEXT_DATA__", chromedp.ByID),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return html, nil
}

func extractNextData(html string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	text := doc.Find("script#__NEXT_DATA__").Text()
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoDocument
	}
	return []byte(text), nil
}
