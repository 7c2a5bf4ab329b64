package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/mdclean/internal/logger"
	"github.com/jmylchreest/mdclean/pkg/clipboard"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.Copy

var cleanCmd = &cobra.Command{
	Use:   "clean [file|-|url]...",
	Short: "Strip Markdown from files, stdin or URLs",
	Long: `Clean reads each input, strips its markup and writes the plain text.

Multiple inputs are separated by a blank line in the output. With no
arguments, standard input is read.

Examples:
  mdclean clean notes.md
  mdclean clean - < notes.md
  mdclean clean --from html page.html -o page.txt
  mdclean clean --url https://example.com/post --article --copy`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	flags.StringSliceP("url", "u", nil, "URL(s) to fetch and clean (can be repeated)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("copy", false, "also copy the result to the clipboard")
	flags.Bool("stats", false, "print a size and character summary to stderr")
}

func runClean(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, err := loadSettings()
	if err != nil {
		return err
	}

	urls, _ := cmd.Flags().GetStringSlice("url")
	sources, err := readSources(ctx, args, urls, cmd.InOrStdin(), s, newFetcher(s))
	if err != nil {
		return err
	}

	showStats, _ := cmd.Flags().GetBool("stats")
	parts := make([]string, 0, len(sources))
	for _, src := range sources {
		p, format, err := s.pipeline(src)
		if err != nil {
			return err
		}
		result, err := p.CleanWithStats(src.Body)
		if err != nil {
			return fmt.Errorf("%s: %w", src.Name, err)
		}
		for _, w := range result.Warnings {
			logger.Warn(w.Message, "source", src.Name, "phase", w.Phase)
		}
		if showStats {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s)\n%s", displayName(src), format, result.Stats)
		}
		if result.Content != "" {
			parts = append(parts, result.Content)
		}
	}
	text := strings.Join(parts, "\n\n")

	if err := writeText(cmd, text); err != nil {
		return err
	}

	if copyFlag, _ := cmd.Flags().GetBool("copy"); copyFlag {
		if !copyToClipboard(ctx, text) {
			return errors.New("copy to clipboard failed")
		}
		logInfo("Copied %s characters to the clipboard", humanize.Comma(int64(utf8.RuneCountInString(text))))
	}
	return nil
}

// writeText writes text, newline terminated, to --output or stdout.
func writeText(cmd *cobra.Command, text string) error {
	var out io.Writer = cmd.OutOrStdout()
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if text == "" {
		return nil
	}
	if _, err := io.WriteString(out, text+"\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func displayName(src source) string {
	if src.Name == stdinName {
		return "stdin"
	}
	return src.Name
}
