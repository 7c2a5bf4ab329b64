package plaintext

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmylchreest/mdclean/internal/logger"
)

// Cleaner strips Markdown from text. It implements the cleaner.Cleaner
// interface and is safe for concurrent use.
type Cleaner struct {
	config *Config
	stages []stage
}

// New creates a new Cleaner with the given configuration.
// If config is nil, DefaultConfig() is used. The config is copied.
// An invalid config is logged and its link policy falls back to LinkDrop;
// call Config.Validate first to reject it instead.
func New(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		logger.Warn("using default link policy", "error", err)
	}
	cfg := *config
	return &Cleaner{
		config: &cfg,
		stages: buildStages(&cfg),
	}
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "plaintext"
}

// Clean returns the plain-text form of text. The error is always nil; it
// exists to satisfy cleaner.Cleaner.
func (c *Cleaner) Clean(text string) (string, error) {
	return c.run(text, nil), nil
}

// CleanWithStats performs cleaning and returns per-stage metrics.
func (c *Cleaner) CleanWithStats(text string) *Result {
	startTime := time.Now()
	result := &Result{
		Stats: NewStats(),
	}
	result.Stats.recordInput(text)

	result.Content = c.run(text, result.Stats)

	result.Stats.recordOutput(result.Content)
	result.Stats.TotalDuration = time.Since(startTime)

	if result.Content == "" && strings.TrimSpace(text) != "" {
		result.AddWarning("output", "every line was markup, nothing left", "")
	}
	return result
}

// Stages returns the stage names in the order they run.
func (c *Cleaner) Stages() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.name
	}
	return names
}

func (c *Cleaner) run(text string, stats *Stats) string {
	text = prepare(text)
	if text == "" {
		return ""
	}

	for _, s := range c.stages {
		var began time.Time
		if stats != nil {
			began = time.Now()
		}

		next := s.apply(text)

		if stats != nil {
			stats.recordStage(s, text, next, time.Since(began))
		}
		if c.config.Debug && next != text {
			logger.Debug("stage rewrote text",
				"stage", s.name,
				"phase", s.phase.String(),
				"bytes_before", len(text),
				"bytes_after", len(next))
		}
		text = next
	}

	return strings.TrimSpace(text)
}

// prepare validates the input and readies it for the first stage: invalid
// UTF-8 and the private-use code points the pipeline reserves are dropped,
// line endings become \n and escapes are shielded. Blank input yields "".
func prepare(text string) string {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	if strings.TrimSpace(text) == "" {
		return ""
	}
	text = strings.Map(func(r rune) rune {
		if isShield(r) || isPlaceholder(r) {
			return -1
		}
		return r
	}, text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return shieldEscapes(text)
}

var defaultCleaner = New(nil)

// Clean strips Markdown from text using the default configuration.
// Empty, blank and invalid input returns "".
func Clean(text string) string {
	out, _ := defaultCleaner.Clean(text)
	return out
}

// CleanBytes is Clean for raw bytes. A nil or empty slice returns "".
func CleanBytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return Clean(string(b))
}
