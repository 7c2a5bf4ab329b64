package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/jmylchreest/mdclean/internal/logger"
	"github.com/jmylchreest/mdclean/pkg/cleaner"
	"github.com/jmylchreest/mdclean/pkg/cleaner/plaintext"
	"github.com/jmylchreest/mdclean/pkg/fetcher"
)

// stdinName names standard input as a source.
const stdinName = "-"

// source is one input document.
type source struct {
	Name        string
	Body        string
	ContentType string
	URL         string
}

// settings are the pipeline options shared by every cleaning command.
type settings struct {
	format    cleaner.Format
	article   bool
	links     plaintext.LinkPolicy
	maxSize   int64
	timeout   time.Duration
	userAgent string
	debug     bool
}

func loadSettings() (settings, error) {
	format, err := cleaner.ParseFormat(viper.GetString("from"))
	if err != nil {
		return settings{}, err
	}
	links, err := plaintext.ParseLinkPolicy(viper.GetString("link_urls"))
	if err != nil {
		return settings{}, err
	}
	maxSize, err := parseMaxSize(viper.GetString("max_size"))
	if err != nil {
		return settings{}, err
	}
	return settings{
		format:    format,
		article:   viper.GetBool("article"),
		links:     links,
		maxSize:   maxSize,
		timeout:   viper.GetDuration("timeout"),
		userAgent: viper.GetString("user_agent"),
		debug:     viper.GetBool("debug"),
	}, nil
}

// parseMaxSize reads a human byte size. Empty and "0" mean unlimited.
func parseMaxSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid max-size %q: %w", s, err)
	}
	return int64(n), nil
}

// pipeline resolves the format of src and builds its pipeline.
func (s settings) pipeline(src source) (*cleaner.Pipeline, cleaner.Format, error) {
	format := s.format
	if format == cleaner.FormatAuto {
		format = cleaner.DetectFormat(src.ContentType, src.Body)
	}
	p, err := cleaner.NewPipeline(format, cleaner.PipelineOptions{
		Article: s.article,
		BaseURL: src.URL,
		Plaintext: &plaintext.Config{
			LinkURLs: s.links,
			Debug:    s.debug,
		},
	})
	if err != nil {
		return nil, "", err
	}
	logger.Debug("pipeline built", "source", src.Name, "format", format, "pipeline", p.Name())
	return p, format, nil
}

// isURL reports whether arg should be fetched rather than opened.
func isURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// readSources loads every input in order: positional arguments (files, "-"
// for stdin, or URLs) and then --url values. With neither, stdin is read.
func readSources(ctx context.Context, args, urls []string, stdin io.Reader, s settings, f fetcher.Fetcher) ([]source, error) {
	if len(args) == 0 && len(urls) == 0 {
		args = []string{stdinName}
	}

	var sources []source
	for _, arg := range args {
		var (
			src source
			err error
		)
		if isURL(arg) {
			src, err = fetchSource(ctx, f, arg, s)
		} else {
			src, err = readLocal(arg, stdin, s.maxSize)
		}
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	for _, u := range urls {
		src, err := fetchSource(ctx, f, u, s)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func readLocal(name string, stdin io.Reader, maxSize int64) (source, error) {
	var r io.Reader = stdin
	if name != stdinName {
		file, err := os.Open(name)
		if err != nil {
			return source{}, fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		r = file
	}

	body, err := readLimited(r, maxSize)
	if err != nil {
		return source{}, fmt.Errorf("%s: %w", name, err)
	}
	logger.Debug("read input", "source", name, "bytes", len(body))
	return source{Name: name, Body: body}, nil
}

func fetchSource(ctx context.Context, f fetcher.Fetcher, u string, s settings) (source, error) {
	content, err := f.Fetch(ctx, u, fetcher.Options{
		UserAgent: s.userAgent,
		Timeout:   s.timeout,
	})
	if err != nil {
		return source{}, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	if s.maxSize > 0 && int64(len(content.Body)) > s.maxSize {
		return source{}, fmt.Errorf("%s: input is %s, larger than max-size %s",
			u, humanize.Bytes(uint64(len(content.Body))), humanize.Bytes(uint64(s.maxSize)))
	}
	if content.Title != "" {
		logger.Info("fetched", "url", u, "title", content.Title, "bytes", len(content.Body))
	}
	return source{
		Name:        u,
		Body:        content.Body,
		ContentType: content.ContentType,
		URL:         u,
	}, nil
}

// readLimited reads r fully, failing once more than maxSize bytes arrive.
// A maxSize of zero means unlimited.
func readLimited(r io.Reader, maxSize int64) (string, error) {
	if maxSize <= 0 {
		b, err := io.ReadAll(r)
		return string(b), err
	}
	b, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return "", err
	}
	if int64(len(b)) > maxSize {
		return "", fmt.Errorf("input larger than max-size %s", humanize.Bytes(uint64(maxSize)))
	}
	return string(b), nil
}

// newFetcher returns the fetcher used for URL inputs.
// Bodies are capped one byte past max-size so oversized documents are
// reported rather than silently truncated.
func newFetcher(s settings) fetcher.Fetcher {
	cfg := fetcher.StaticConfig{
		UserAgent: s.userAgent,
		Timeout:   s.timeout,
	}
	if s.maxSize > 0 {
		cfg.MaxBodySize = int(s.maxSize) + 1
	}
	return fetcher.NewStatic(cfg)
}
