package cleaner

import (
	"errors"
	"fmt"
	"mime"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Format is the markup an input is written in.
type Format string

const (
	// FormatAuto asks DetectFormat to decide.
	FormatAuto Format = "auto"
	// FormatMarkdown is Markdown or plain text.
	FormatMarkdown Format = "markdown"
	// FormatHTML is an HTML document or fragment.
	FormatHTML Format = "html"
)

// ErrUnknownFormat is returned by ParseFormat for an unrecognised name.
var ErrUnknownFormat = errors.New("unknown input format")

// ParseFormat converts a user supplied name into a Format. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "markdown", "md", "text", "txt":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q (want auto, markdown or html)", ErrUnknownFormat, s)
	}
}

// sniffTokens bounds how far into the body DetectFormat looks.
const sniffTokens = 32

// markdownSyntax finds Markdown block syntax or paired delimiters that an
// HTML document would not contain as text.
var markdownSyntax = regexp.MustCompile(`(?m)^[ \t]{0,3}(?:#{1,6}[ \t]+\S|` + "```" + `|~~~|>[ \t]|[-*+][ \t]+\S|\d+\.[ \t]+\S)` +
	`|\*\*\S[^*\n]*\*\*|\[[^\]\n]+\]\([^)\s]+\)`)

// DetectFormat decides whether body is HTML or Markdown. A declared content
// type wins when it names either; otherwise the body is sniffed. A doctype or
// an html, head or body element means HTML. Any other known element first
// means HTML unless Markdown syntax follows, as in a README that opens with
// a centred logo block. Markdown may embed inline HTML, so tags after
// leading prose do not count.
func DetectFormat(contentType, body string) Format {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "text/html", "application/xhtml+xml":
			return FormatHTML
		case "text/markdown", "text/x-markdown", "text/plain":
			return FormatMarkdown
		}
	}

	trimmed := strings.TrimLeft(body, " \t\r\n\ufeff")
	if !strings.HasPrefix(trimmed, "<") {
		return FormatMarkdown
	}

	z := html.NewTokenizer(strings.NewReader(trimmed))
	for range sniffTokens {
		switch z.Next() {
		case html.ErrorToken:
			return FormatMarkdown
		case html.DoctypeToken:
			return FormatHTML
		case html.CommentToken:
			continue
		case html.TextToken:
			if strings.TrimSpace(string(z.Text())) != "" {
				return FormatMarkdown
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case 0:
				return FormatMarkdown
			case atom.Html, atom.Head, atom.Body:
				return FormatHTML
			}
			if markdownSyntax.MatchString(trimmed) {
				return FormatMarkdown
			}
			return FormatHTML
		default:
			return FormatMarkdown
		}
	}
	return FormatMarkdown
}
