// Package plaintext strips Markdown syntax from text and returns plain,
// human-readable prose.
//
// The work is done by a fixed, ordered sequence of stages. Each stage is a pure
// string transform that may assume every construct handled by an earlier stage
// is already gone. The order is part of the contract: code blocks go first so
// that no later pattern fires inside a code sample, and escape handling
// finishes last so that escaped delimiters are never mistaken for syntax.
package plaintext

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// LinkPolicy decides what happens to the target of a Markdown link.
type LinkPolicy string

const (
	// LinkDrop keeps only the link text. Bare URLs and autolinks are deleted.
	LinkDrop LinkPolicy = "drop"

	// LinkAppend keeps the link text followed by the target in parentheses.
	// Bare URLs and autolinks are kept as plain URLs.
	LinkAppend LinkPolicy = "append"
)

// ErrInvalidConfig is returned by Validate for a configuration that cannot be used.
var ErrInvalidConfig = errors.New("invalid plaintext config")

// Config defines the options of the plain-text cleaner.
type Config struct {
	// LinkURLs selects the link policy. Empty and unrecognised values mean
	// LinkDrop; New logs a warning for an unrecognised one.
	LinkURLs LinkPolicy `json:"link_urls" yaml:"link_urls" mapstructure:"link_urls" validate:"omitempty,oneof=drop append"`

	// Debug logs the byte delta of every stage that changed the text.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// DefaultConfig returns the canonical configuration: link text only, no debug logging.
func DefaultConfig() *Config {
	return &Config{
		LinkURLs: LinkDrop,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports whether the configuration can be used.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s=%q must be one of [%s]", ErrInvalidConfig, fe.Field(), fe.Value(), fe.Param())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// linkPolicy returns the effective policy.
func (c *Config) linkPolicy() LinkPolicy {
	if c.LinkURLs == LinkAppend {
		return LinkAppend
	}
	return LinkDrop
}

// ParseLinkPolicy converts a user supplied string into a LinkPolicy.
func ParseLinkPolicy(s string) (LinkPolicy, error) {
	switch LinkPolicy(s) {
	case "", LinkDrop:
		return LinkDrop, nil
	case LinkAppend:
		return LinkAppend, nil
	default:
		return "", fmt.Errorf("%w: unknown link policy %q (want drop or append)", ErrInvalidConfig, s)
	}
}
