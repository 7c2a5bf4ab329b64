// Package clipboard copies text to the user's clipboard.
//
// The system clipboard is tried first. When the platform has no clipboard
// utility, the text is sent to the controlling terminal as an OSC 52
// set-clipboard sequence, which most terminal emulators honour, including
// over SSH.
package clipboard

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/jmylchreest/mdclean/internal/logger"
)

// Backend is a clipboard that can be written directly.
type Backend interface {
	// Available reports whether the backend can be used on this system.
	Available() bool
	// Write replaces the clipboard contents.
	Write(text string) error
}

// SurfaceOpener opens the off-screen surface used by the fallback path.
// The caller closes it.
type SurfaceOpener func() (io.WriteCloser, error)

type systemBackend struct{}

func (systemBackend) Available() bool {
	return !clipboard.Unsupported
}

func (systemBackend) Write(text string) error {
	return clipboard.WriteAll(text)
}

// SystemBackend returns the platform clipboard (pbcopy, xclip, xsel,
// wl-copy or the Windows clipboard API).
func SystemBackend() Backend {
	return systemBackend{}
}

// OpenTTY opens the controlling terminal for writing.
func OpenTTY() (io.WriteCloser, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}

// Clipboard copies text using a primary backend and a terminal fallback.
type Clipboard struct {
	backend Backend
	surface SurfaceOpener
	getenv  func(string) string
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithBackend replaces the primary backend. Nil disables the primary path.
func WithBackend(b Backend) Option {
	return func(c *Clipboard) {
		c.backend = b
	}
}

// WithSurface replaces the fallback surface.
func WithSurface(open SurfaceOpener) Option {
	return func(c *Clipboard) {
		c.surface = open
	}
}

// WithEnv replaces the environment lookup used to detect tmux and screen.
func WithEnv(getenv func(string) string) Option {
	return func(c *Clipboard) {
		c.getenv = getenv
	}
}

// New creates a Clipboard backed by the system clipboard with the
// controlling terminal as fallback.
func New(opts ...Option) *Clipboard {
	c := &Clipboard{
		backend: SystemBackend(),
		surface: OpenTTY,
		getenv:  os.Getenv,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Copy writes text to the clipboard and reports whether it succeeded.
// Empty text is never copied. A single attempt is made; Copy returns false
// as soon as ctx is done, without waiting for the attempt to finish.
func (c *Clipboard) Copy(ctx context.Context, text string) bool {
	if text == "" {
		return false
	}
	if err := ctx.Err(); err != nil {
		logger.Debug("clipboard copy skipped", "error", err)
		return false
	}

	done := make(chan bool, 1)
	go func() {
		done <- c.attempt(text)
	}()

	select {
	case ok := <-done:
		return ok
	case <-ctx.Done():
		logger.Warn("clipboard copy abandoned", "error", ctx.Err())
		return false
	}
}

func (c *Clipboard) attempt(text string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("clipboard copy panicked", "panic", r)
			ok = false
		}
	}()

	if c.backend != nil && c.backend.Available() {
		if err := c.backend.Write(text); err != nil {
			logger.Warn("clipboard write rejected", "error", err)
			return false
		}
		logger.Debug("copied to system clipboard", "bytes", len(text))
		return true
	}
	return c.fallback(text)
}

// fallback emits an OSC 52 sequence on the surface. The surface is closed
// on every path, including a panic while writing.
func (c *Clipboard) fallback(text string) bool {
	if c.surface == nil {
		logger.Warn("no clipboard available")
		return false
	}
	w, err := c.surface()
	if err != nil {
		logger.Warn("clipboard fallback unavailable", "error", err)
		return false
	}
	defer func() {
		if err := w.Close(); err != nil {
			logger.Debug("closing clipboard surface", "error", err)
		}
	}()

	seq := osc52.New(text)
	switch {
	case c.getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(c.getenv("TERM"), "screen"):
		seq = seq.Screen()
	}

	if _, err := seq.WriteTo(w); err != nil {
		logger.Warn("clipboard fallback write failed", "error", err)
		return false
	}
	logger.Debug("copied via terminal escape sequence", "bytes", len(text))
	return true
}

var defaultClipboard = New()

// Copy writes text to the clipboard using the default Clipboard.
func Copy(ctx context.Context, text string) bool {
	return defaultClipboard.Copy(ctx, text)
}
