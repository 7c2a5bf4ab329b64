package commands

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy [file|-|url]",
	Short: "Clean one input and copy the result to the clipboard",
	Long: `Copy cleans a single input and places the plain text on the clipboard.

The system clipboard is used when available. Otherwise the text is sent to
the terminal as an OSC 52 sequence. The command fails when nothing could be
copied.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCopy,
}

func init() {
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, err := loadSettings()
	if err != nil {
		return err
	}
	sources, err := readSources(ctx, args, nil, cmd.InOrStdin(), s, newFetcher(s))
	if err != nil {
		return err
	}

	src := sources[0]
	p, _, err := s.pipeline(src)
	if err != nil {
		return err
	}
	text, err := p.Clean(src.Body)
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("nothing to copy: input has no text after cleaning")
	}

	if !copyToClipboard(ctx, text) {
		return errors.New("copy to clipboard failed")
	}
	logInfo("Copied %s characters to the clipboard", humanize.Comma(int64(utf8.RuneCountInString(text))))
	return nil
}
