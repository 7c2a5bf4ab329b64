package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// run executes the root command with args and returns what it wrote to stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// stubClipboard replaces the clipboard for one test.
func stubClipboard(t *testing.T, fn func(context.Context, string) bool) {
	t.Helper()
	orig := copyToClipboard
	copyToClipboard = fn
	t.Cleanup(func() { copyToClipboard = orig })
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCleanCommand(t *testing.T) {
	path := writeFile(t, "notes.md", "# Notes\n\nSome **bold** text.\n")

	got, err := run(t, "", "clean", path)
	if err != nil {
		t.Fatalf("clean error = %v", err)
	}
	if got != "Notes\n\nSome bold text.\n" {
		t.Errorf("clean output = %q", got)
	}
}

func TestCleanCommand_StdinAndOutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")

	got, err := run(t, "- [x] shipped", "clean", "-", "-o", outPath)
	if err != nil {
		t.Fatalf("clean error = %v", err)
	}
	if got != "" {
		t.Errorf("stdout should be empty with -o, got %q", got)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "- shipped\n" {
		t.Errorf("output file = %q", string(data))
	}
}

func TestCleanCommand_Copy(t *testing.T) {
	var copied string
	stubClipboard(t, func(_ context.Context, text string) bool {
		copied = text
		return true
	})

	path := writeFile(t, "c.md", "_copied_")
	if _, err := run(t, "", "clean", "--copy", path); err != nil {
		t.Fatalf("clean --copy error = %v", err)
	}
	if copied != "copied" {
		t.Errorf("copied %q, want %q", copied, "copied")
	}
}

func TestCopyCommand_Failure(t *testing.T) {
	stubClipboard(t, func(context.Context, string) bool { return false })

	path := writeFile(t, "c.md", "text")
	if _, err := run(t, "", "copy", path); err == nil {
		t.Fatal("expected an error when the copy fails")
	}
}

func TestStatsCommand_JSON(t *testing.T) {
	path := writeFile(t, "s.md", "## Heading\n\n*soft*")

	got, err := run(t, "", "stats", "--format", "json", path)
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}

	var r report
	if err := json.Unmarshal([]byte(got), &r); err != nil {
		t.Fatalf("stats output is not a JSON report: %v\n%s", err, got)
	}
	if r.Source != path || r.Format != "markdown" {
		t.Errorf("report = %+v", r)
	}
	if r.InputChars != 18 || r.OutputChars != 13 {
		t.Errorf("chars = %d -> %d, want 18 -> 13", r.InputChars, r.OutputChars)
	}
	if strings.Join(r.ChangedStages, ",") != "headers,emphasis" {
		t.Errorf("changed stages = %v", r.ChangedStages)
	}
}

func TestVersionCommand(t *testing.T) {
	got, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(got, "mdclean ") {
		t.Errorf("version output = %q", got)
	}
}
