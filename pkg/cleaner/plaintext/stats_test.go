package plaintext

import (
	"strings"
	"testing"
)

func TestStats_ReductionPercent(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{"empty input", Stats{}, 0},
		{"halved", Stats{InputBytes: 200, OutputBytes: 100}, 50},
		{"unchanged", Stats{InputBytes: 10, OutputBytes: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.ReductionPercent(); got != tt.want {
				t.Errorf("ReductionPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStats_String(t *testing.T) {
	result := New(nil).CleanWithStats("## Heading\n\nSome **bold** text.")
	out := result.Stats.String()

	contains := []string{"Size:", "reduction", "Characters:", "Lines:", "Stages applied:", "headers", "emphasis", "Timing:"}
	for _, s := range contains {
		if !strings.Contains(out, s) {
			t.Errorf("String() missing %q:\n%s", s, out)
		}
	}
}

func TestStats_CountsCodePoints(t *testing.T) {
	s := NewStats()
	s.recordInput("héllo\nwörld")

	if s.InputBytes != 13 {
		t.Errorf("InputBytes = %d, want 13", s.InputBytes)
	}
	if s.InputChars != 11 {
		t.Errorf("InputChars = %d, want 11", s.InputChars)
	}
	if s.InputLines != 2 {
		t.Errorf("InputLines = %d, want 2", s.InputLines)
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Phase: "output", Message: "empty"}
	if got := w.String(); got != "[output] empty" {
		t.Errorf("String() = %q", got)
	}
	w.Context = "stdin"
	if got := w.String(); got != "[output] empty (context: stdin)" {
		t.Errorf("String() = %q", got)
	}
}
