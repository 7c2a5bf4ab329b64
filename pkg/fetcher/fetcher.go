// Package fetcher retrieves remote documents for cleaning.
package fetcher

import (
	"context"
	"errors"
	"mime"
	"time"
)

// Fetcher abstracts document retrieval.
type Fetcher interface {
	// Fetch retrieves the document at url.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources.
	Close() error

	// Type returns a string identifying the fetcher type.
	Type() string
}

// Options controls a single fetch. Zero values fall back to the fetcher's config.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// Content represents a fetched document.
type Content struct {
	URL         string
	Body        string
	Title       string // From <title> for HTML documents
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// IsHTML reports whether the server declared the document as HTML.
func (c Content) IsHTML() bool {
	mediaType, _, err := mime.ParseMediaType(c.ContentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// ErrStatus indicates the server answered with a non-success status code.
// Check with errors.Is(err, fetcher.ErrStatus).
var ErrStatus = errors.New("unexpected status")
