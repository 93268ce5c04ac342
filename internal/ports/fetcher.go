package ports

import "context"

// PageFetcher retrieves a URL and converts the body to plain text.
// There is no timeout beyond what ctx carries.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (title, text string, err error)
}
