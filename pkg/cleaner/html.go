package cleaner

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"
)

// HTMLConfig configures the HTML cleaner.
type HTMLConfig struct {
	// BaseURL resolves relative link and image targets. Empty leaves them as is.
	BaseURL string

	// RemoveSelectors lists CSS selectors whose elements are dropped before conversion.
	RemoveSelectors []string

	// KeepHidden keeps elements marked hidden, aria-hidden or display:none.
	KeepHidden bool
}

// HTMLOption configures the HTML cleaner.
type HTMLOption func(*HTMLConfig)

// WithBaseURL sets the URL relative targets are resolved against.
func WithBaseURL(baseURL string) HTMLOption {
	return func(c *HTMLConfig) {
		c.BaseURL = baseURL
	}
}

// WithRemoveSelectors replaces the selectors removed before conversion.
func WithRemoveSelectors(selectors ...string) HTMLOption {
	return func(c *HTMLConfig) {
		c.RemoveSelectors = selectors
	}
}

// WithKeepHidden keeps hidden elements in the output.
func WithKeepHidden(keep bool) HTMLOption {
	return func(c *HTMLConfig) {
		c.KeepHidden = keep
	}
}

// DefaultHTMLConfig returns the configuration used by NewHTML.
func DefaultHTMLConfig() *HTMLConfig {
	return &HTMLConfig{
		RemoveSelectors: []string{"script", "style", "noscript", "template", "iframe", "svg", "canvas"},
	}
}

// HTMLCleaner converts HTML, such as pasted rich text or a fetched page, into
// Markdown. Non-content and hidden elements are pruned first.
type HTMLCleaner struct {
	config *HTMLConfig
}

// NewHTML creates a new HTML cleaner.
func NewHTML(opts ...HTMLOption) *HTMLCleaner {
	config := DefaultHTMLConfig()
	for _, opt := range opts {
		opt(config)
	}
	return &HTMLCleaner{config: config}
}

// Clean converts HTML to Markdown.
func (c *HTMLCleaner) Clean(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	c.prune(doc)

	pruned, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}

	var opts []converter.ConvertOptionFunc
	if c.config.BaseURL != "" {
		opts = append(opts, converter.WithDomain(c.config.BaseURL))
	}
	markdown, err := htmltomarkdown.ConvertString(pruned, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to convert to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

// Name returns the cleaner type.
func (c *HTMLCleaner) Name() string {
	return "html"
}

func (c *HTMLCleaner) prune(doc *goquery.Document) {
	for _, selector := range c.config.RemoveSelectors {
		doc.Find(selector).Remove()
	}
	if c.config.KeepHidden {
		return
	}

	doc.Find("[hidden], [aria-hidden='true']").Remove()
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style := strings.ToLower(strings.ReplaceAll(s.AttrOr("style", ""), " ", ""))
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			s.Remove()
		}
	})
}
