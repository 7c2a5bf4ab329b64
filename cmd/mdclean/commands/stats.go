package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/mdclean/internal/output"
	"github.com/jmylchreest/mdclean/pkg/cleaner/plaintext"
)

// report describes one cleaned input.
type report struct {
	Source           string                `json:"source" yaml:"source"`
	Format           string                `json:"format" yaml:"format"`
	Pipeline         string                `json:"pipeline" yaml:"pipeline"`
	InputBytes       int                   `json:"input_bytes" yaml:"input_bytes"`
	InputChars       int                   `json:"input_chars" yaml:"input_chars"`
	OutputBytes      int                   `json:"output_bytes" yaml:"output_bytes"`
	OutputChars      int                   `json:"output_chars" yaml:"output_chars"`
	OutputLines      int                   `json:"output_lines" yaml:"output_lines"`
	ReductionPercent float64               `json:"reduction_percent" yaml:"reduction_percent"`
	ChangedStages    []string              `json:"changed_stages" yaml:"changed_stages"`
	DurationMs       float64               `json:"duration_ms" yaml:"duration_ms"`
	Stages           []plaintext.StageStat `json:"stages,omitempty" yaml:"stages,omitempty"`
	Warnings         []plaintext.Warning   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

var statsCmd = &cobra.Command{
	Use:   "stats [file|-|url]...",
	Short: "Report what cleaning removes from each input",
	Long: `Stats cleans each input and writes a report instead of the text: sizes and
character counts before and after, which stages changed the text and how
long it took.

Examples:
  mdclean stats notes.md
  mdclean stats --format jsonl *.md
  mdclean stats --url https://example.com/post --stages --format yaml`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	flags := statsCmd.Flags()
	flags.StringSliceP("url", "u", nil, "URL(s) to fetch (can be repeated)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml")
	flags.Bool("stages", false, "include per-stage byte counts and timings")
}

func runStats(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, err := loadSettings()
	if err != nil {
		return err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	urls, _ := cmd.Flags().GetStringSlice("url")
	sources, err := readSources(ctx, args, urls, cmd.InOrStdin(), s, newFetcher(s))
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	w, err := output.NewWriter(out, format)
	if err != nil {
		return err
	}

	withStages, _ := cmd.Flags().GetBool("stages")
	for _, src := range sources {
		r, err := buildReport(s, src, withStages)
		if err != nil {
			return err
		}
		if err := w.Write(r); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return w.Close()
}

func buildReport(s settings, src source, withStages bool) (report, error) {
	p, format, err := s.pipeline(src)
	if err != nil {
		return report{}, err
	}
	result, err := p.CleanWithStats(src.Body)
	if err != nil {
		return report{}, fmt.Errorf("%s: %w", src.Name, err)
	}

	st := result.Stats
	r := report{
		Source:        displayName(src),
		Format:        string(format),
		Pipeline:      p.Name(),
		InputBytes:    len(src.Body),
		InputChars:    utf8.RuneCountInString(src.Body),
		OutputBytes:   st.OutputBytes,
		OutputChars:   st.OutputChars,
		OutputLines:   st.OutputLines,
		ChangedStages: st.ChangedStages(),
		DurationMs:    float64(st.TotalDuration.Microseconds()) / 1000,
		Warnings:      result.Warnings,
	}
	if r.InputBytes > 0 {
		r.ReductionPercent = float64(r.InputBytes-r.OutputBytes) / float64(r.InputBytes) * 100
	}
	if r.ChangedStages == nil {
		r.ChangedStages = []string{}
	}
	if withStages {
		r.Stages = st.Stages
	}
	return r, nil
}
