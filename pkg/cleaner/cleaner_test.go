package cleaner

import (
	"errors"
	"strings"
	"testing"

	"github.com/jmylchreest/mdclean/pkg/cleaner/plaintext"
)

// upperCleaner is a test cleaner that uppercases its input
type upperCleaner struct{}

func (c *upperCleaner) Clean(content string) (string, error) {
	return strings.ToUpper(content), nil
}

func (c *upperCleaner) Name() string {
	return "upper"
}

// suffixCleaner appends a fixed suffix so ordering is observable
type suffixCleaner struct{ suffix string }

func (c *suffixCleaner) Clean(content string) (string, error) {
	return content + c.suffix, nil
}

func (c *suffixCleaner) Name() string {
	return "suffix"
}

var errTest = errors.New("test error")

// errorCleaner is a test cleaner that always returns an error
type errorCleaner struct{}

func (c *errorCleaner) Clean(content string) (string, error) {
	return "", errTest
}

func (c *errorCleaner) Name() string {
	return "error"
}

// --- ChainCleaner Tests ---

func TestChainCleaner_Empty(t *testing.T) {
	c := NewChain()

	input := "unchanged content"
	got, err := c.Clean(input)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if got != input {
		t.Errorf("Clean() = %q, want %q", got, input)
	}
}

func TestChainCleaner_Order(t *testing.T) {
	c := NewChain(&suffixCleaner{suffix: "-a"}, &upperCleaner{}, &suffixCleaner{suffix: "-b"})

	got, err := c.Clean("x")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != "X-A-b" {
		t.Errorf("Clean() = %q, want %q", got, "X-A-b")
	}
}

func TestChainCleaner_ErrorPropagation(t *testing.T) {
	c := NewChain(&upperCleaner{}, &errorCleaner{}, &suffixCleaner{suffix: "!"})

	got, err := c.Clean("test")
	if err == nil {
		t.Fatal("expected error to propagate")
	}
	if !errors.Is(err, errTest) {
		t.Errorf("expected wrapped errTest, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "error: ") {
		t.Errorf("expected error prefixed with cleaner name, got %v", err)
	}
	if got != "" {
		t.Errorf("Clean() = %q on error, want empty", got)
	}
}

func TestChainCleaner_Name(t *testing.T) {
	tests := []struct {
		name     string
		cleaners []Cleaner
		want     string
	}{
		{"empty", []Cleaner{}, "chain()"},
		{"single", []Cleaner{&upperCleaner{}}, "chain(upper)"},
		{"double", []Cleaner{NewHTML(), plaintext.New(nil)}, "chain(html->plaintext)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChain(tt.cleaners...)
			if got := c.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}
