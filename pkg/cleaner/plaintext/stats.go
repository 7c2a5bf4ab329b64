package plaintext

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// StageStat describes what one stage did during a run.
type StageStat struct {
	Name        string        `json:"name" yaml:"name"`
	Phase       string        `json:"phase" yaml:"phase"`
	Changed     bool          `json:"changed" yaml:"changed"`
	BytesBefore int           `json:"bytes_before" yaml:"bytes_before"`
	BytesAfter  int           `json:"bytes_after" yaml:"bytes_after"`
	Duration    time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// Stats captures metrics about a cleaning run.
type Stats struct {
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// Character counts are in code points, matching what an editor shows.
	InputChars  int `json:"input_chars" yaml:"input_chars"`
	OutputChars int `json:"output_chars" yaml:"output_chars"`

	InputLines  int `json:"input_lines" yaml:"input_lines"`
	OutputLines int `json:"output_lines" yaml:"output_lines"`

	Stages []StageStat `json:"stages" yaml:"stages"`

	TotalDuration time.Duration `json:"total_duration_ns" yaml:"total_duration_ns"`
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{
		Stages: make([]StageStat, 0, 17),
	}
}

func (s *Stats) recordInput(text string) {
	s.InputBytes = len(text)
	s.InputChars = utf8.RuneCountInString(text)
	s.InputLines = countLines(text)
}

func (s *Stats) recordOutput(text string) {
	s.OutputBytes = len(text)
	s.OutputChars = utf8.RuneCountInString(text)
	s.OutputLines = countLines(text)
}

func (s *Stats) recordStage(st stage, before, after string, d time.Duration) {
	s.Stages = append(s.Stages, StageStat{
		Name:        st.name,
		Phase:       st.phase.String(),
		Changed:     before != after,
		BytesBefore: len(before),
		BytesAfter:  len(after),
		Duration:    d,
	})
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// ChangedStages returns the names of the stages that altered the text, in order.
func (s *Stats) ChangedStages() []string {
	var names []string
	for _, st := range s.Stages {
		if st.Changed {
			names = append(names, st.Name)
		}
	}
	return names
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Size: %s -> %s (%.1f%% reduction)\n",
		humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes)), s.ReductionPercent())
	fmt.Fprintf(&sb, "Characters: %s -> %s\n",
		humanize.Comma(int64(s.InputChars)), humanize.Comma(int64(s.OutputChars)))
	fmt.Fprintf(&sb, "Lines: %s -> %s\n",
		humanize.Comma(int64(s.InputLines)), humanize.Comma(int64(s.OutputLines)))

	if changed := s.ChangedStages(); len(changed) > 0 {
		fmt.Fprintf(&sb, "Stages applied: %s\n", strings.Join(changed, ", "))
	}

	fmt.Fprintf(&sb, "Timing: total=%v\n", s.TotalDuration.Round(time.Microsecond))
	return sb.String()
}

// Warning represents a non-fatal observation about a run.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`
	Message string `json:"message" yaml:"message"`
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a cleaning run.
type Result struct {
	Content  string    `json:"content" yaml:"content"`
	Stats    *Stats    `json:"stats" yaml:"stats"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
