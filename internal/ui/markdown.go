package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultWidth is the wrap width used when the terminal size is unknown.
const DefaultWidth = 100

// IsStdoutTTY returns true when stdout is connected to a terminal.
func IsStdoutTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// TermWidth returns the width of stdout, or DefaultWidth when it is not a
// terminal.
func TermWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return DefaultWidth
}

// MarkdownWriter buffers a markdown document and renders it as styled
// terminal output (via glamour) when Flush is called.
//
// In raw mode or non-TTY contexts, writes pass through immediately to the
// underlying writer without buffering.
type MarkdownWriter struct {
	out   io.Writer
	buf   bytes.Buffer
	raw   bool // --raw flag: force plain output regardless of TTY
	isTTY bool
	width int
}

// NewMarkdownWriter creates a MarkdownWriter targeting out.
//
//   - raw=true  → plain pass-through
//   - out is a non-TTY *os.File → plain pass-through
//   - out is a TTY *os.File     → buffer, render on Flush at the terminal width
func NewMarkdownWriter(out io.Writer, raw bool) *MarkdownWriter {
	tty := false
	width := DefaultWidth
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return &MarkdownWriter{
		out:   out,
		raw:   raw,
		isTTY: tty,
		width: width,
	}
}

// Write satisfies io.Writer.
func (m *MarkdownWriter) Write(p []byte) (int, error) {
	if m.raw || !m.isTTY {
		return m.out.Write(p)
	}
	return m.buf.Write(p)
}

// Flush renders the buffered content and writes it to the underlying
// writer. In raw or non-TTY mode this is a no-op.
//
// If rendering fails, Flush falls back to the raw buffered content and
// prints a note to stderr.
func (m *MarkdownWriter) Flush() error {
	if m.raw || !m.isTTY || m.buf.Len() == 0 {
		return nil
	}

	rendered, err := renderMarkdown(m.buf.String(), m.width)
	if err != nil {
		fmt.Fprintln(os.Stderr, Muted.Render("  (markdown rendering failed, showing raw output)"))
		_, werr := m.out.Write(m.buf.Bytes())
		return werr
	}

	_, err = fmt.Fprint(m.out, rendered)
	return err
}

// RenderMarkdown renders a complete markdown string at the given wrap
// width. It returns md unchanged on any error.
func RenderMarkdown(md string, width int) string {
	out, err := renderMarkdown(md, width)
	if err != nil {
		return md
	}
	return out
}

func renderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	}
	if !colorEnabled {
		opts[0] = glamour.WithStandardStyle("notty")
		opts = append(opts, glamour.WithColorProfile(termenv.Ascii))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
