package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"satchel/internal/ports"
)

const (
	userAgent = "satchel/0.1"

	// Pages larger than this are truncated before conversion.
	maxBodyBytes = 1 << 20
)

// Fetcher implements ports.PageFetcher over HTTP. The client carries no
// timeout; cancellation is whatever the caller's context provides.
type Fetcher struct {
	client *http.Client
}

var _ ports.PageFetcher = (*Fetcher)(nil)

// NewFetcher creates an HTTP page fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{}}
}

// Fetch retrieves url and converts the HTML body to plain text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", "", err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", "", fmt.Errorf("parsing HTML: %w", err)
	}

	title := extractTitle(doc)
	if title == "" {
		title = url
	}

	return title, htmlToText(doc), nil
}
