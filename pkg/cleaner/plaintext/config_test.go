package plaintext

import (
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero value", &Config{}, false},
		{"append", &Config{LinkURLs: LinkAppend}, false},
		{"unknown policy", &Config{LinkURLs: "inline"}, true},
		{"nil", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseLinkPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    LinkPolicy
		wantErr bool
	}{
		{"", LinkDrop, false},
		{"drop", LinkDrop, false},
		{"append", LinkAppend, false},
		{"APPEND", "", true},
		{"footnote", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLinkPolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLinkPolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLinkPolicy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
