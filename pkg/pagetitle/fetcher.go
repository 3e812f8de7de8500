package pagetitle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoTitle is returned when a page has neither an og:title nor a <title>
var ErrNoTitle = errors.New("page has no title")

const maxBodyBytes = 512 * 1024

// Fetcher downloads pages and pulls out their display title
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: "Mozilla/5.0 (compatible; DigraphBot/1.0)",
	}
}

// NormalizeURL adds a scheme to bare host urls
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

// Fetch GETs the url and returns the page title
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, NormalizeURL(url), nil)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: HTTP %d", url, resp.StatusCode)
	}

	return Extract(io.LimitReader(resp.Body, maxBodyBytes))
}

// Extract reads an HTML document and returns og:title, falling back to the
// <title> element. Whitespace is collapsed.
func Extract(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if title := collapse(og); title != "" {
			return title, nil
		}
	}

	if title := collapse(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}

	return "", ErrNoTitle
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
