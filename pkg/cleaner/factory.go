package cleaner

import (
	"fmt"
	"slices"

	"github.com/jmylchreest/mdclean/pkg/cleaner/plaintext"
)

// PipelineOptions configures the cleaner returned by ForFormat.
type PipelineOptions struct {
	// Article extracts the main content of an HTML page before conversion.
	Article bool

	// BaseURL resolves relative targets in HTML input.
	BaseURL string

	// Plaintext configures the final stage. Nil uses plaintext.DefaultConfig.
	Plaintext *plaintext.Config
}

// Pipeline turns input of one format into plain text: zero or more
// converters produce Markdown, then the plain-text cleaner runs.
type Pipeline struct {
	converters []Cleaner
	final      *plaintext.Cleaner
}

// NewPipeline builds the pipeline for format. FormatAuto must be resolved
// with DetectFormat first.
func NewPipeline(format Format, opts PipelineOptions) (*Pipeline, error) {
	cfg := opts.Plaintext
	if cfg == nil {
		cfg = plaintext.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{final: plaintext.New(cfg)}
	switch format {
	case FormatMarkdown:
	case FormatHTML:
		if opts.Article {
			p.converters = append(p.converters, NewReadability(&ReadabilityConfig{BaseURL: opts.BaseURL}))
		}
		p.converters = append(p.converters, NewHTML(WithBaseURL(opts.BaseURL)))
	case FormatAuto:
		return nil, fmt.Errorf("%w: auto must be resolved with DetectFormat first", ErrUnknownFormat)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return p, nil
}

// ForFormat returns the pipeline for format as a single Cleaner. Markdown
// goes straight to the plain-text cleaner; HTML is converted to Markdown
// first, optionally after article extraction.
func ForFormat(format Format, opts PipelineOptions) (Cleaner, error) {
	p, err := NewPipeline(format, opts)
	if err != nil {
		return nil, err
	}
	if len(p.converters) == 0 {
		return p.final, nil
	}
	return NewChain(p.stages()...), nil
}

// Clean runs the whole pipeline.
func (p *Pipeline) Clean(content string) (string, error) {
	markdown, err := p.convert(content)
	if err != nil {
		return "", err
	}
	return p.final.Clean(markdown)
}

// CleanWithStats runs the whole pipeline and returns the metrics of the
// plain-text stage. The stats describe the Markdown the converters produced.
func (p *Pipeline) CleanWithStats(content string) (*plaintext.Result, error) {
	markdown, err := p.convert(content)
	if err != nil {
		return nil, err
	}
	return p.final.CleanWithStats(markdown), nil
}

// Name returns the names of all stages, like ChainCleaner.
func (p *Pipeline) Name() string {
	if len(p.converters) == 0 {
		return p.final.Name()
	}
	return NewChain(p.stages()...).Name()
}

func (p *Pipeline) stages() []Cleaner {
	return append(slices.Clone(p.converters), Cleaner(p.final))
}

func (p *Pipeline) convert(content string) (string, error) {
	if len(p.converters) == 0 {
		return content, nil
	}
	return NewChain(p.converters...).Clean(content)
}
