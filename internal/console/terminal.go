// Package console talks to the learner through a terminal: it asks for
// answers and renders quiz progress.
package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-isatty"
)

// ErrInterrupted is returned when the learner pressed Ctrl+C inside an
// interactive prompt.
var ErrInterrupted = errors.New("interrupted")

// Terminal reads learner input and writes quiz output. Line mode reads
// newline-terminated input and suits pipes and tests. Interactive mode
// runs a small bubbletea program per prompt.
type Terminal struct {
	in  io.Reader
	out io.Writer

	interactive bool
	color       bool
	interrupt   func()

	readerOnce sync.Once
	lines      chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithLineMode forces line mode even on a TTY.
func WithLineMode() Option {
	return func(t *Terminal) { t.interactive = false }
}

// WithInterrupt sets the function called when Ctrl+C is pressed inside
// an interactive prompt, typically the run's context cancel func. The
// terminal is in raw mode then, so no SIGINT is delivered.
func WithInterrupt(fn func()) Option {
	return func(t *Terminal) { t.interrupt = fn }
}

// New creates a Terminal. Interactive mode and color are enabled when
// in and out are both terminals.
func New(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	tty := isTerminal(in) && isTerminal(out)
	t := &Terminal{
		in:          in,
		out:         out,
		interactive: tty,
		color:       isTerminal(out),
		lines:       make(chan lineResult),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Interactive reports whether prompts run as bubbletea programs.
func (t *Terminal) Interactive() bool { return t.interactive }

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// readInput shows label and returns one line of input, or ctx.Err()
// once ctx is done.
func (t *Terminal) readInput(ctx context.Context, label, placeholder string, numeric bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if t.interactive {
		return t.runPrompt(ctx, label, placeholder, numeric)
	}

	t.print(t.render(label, styleLabel))
	t.readerOnce.Do(func() { go t.readLines() })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}
		return r.text, r.err
	}
}

// readLines feeds t.lines until the input ends. It is started once and
// owns the bufio.Reader.
func (t *Terminal) readLines() {
	defer close(t.lines)
	r := bufio.NewReader(t.in)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			t.lines <- lineResult{text: strings.TrimRight(line, "\r\n")}
		}
		if err != nil {
			t.lines <- lineResult{err: err}
			return
		}
	}
}

func (t *Terminal) print(s string) {
	_, _ = io.WriteString(t.out, s)
}

func (t *Terminal) println(s string) {
	_, _ = io.WriteString(t.out, s+"\n")
}

// render applies style only when color output is on.
func (t *Terminal) render(s string, style lipgloss.Style) string {
	if !t.color {
		return s
	}
	return style.Render(s)
}
