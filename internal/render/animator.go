package render

import (
	"bufio"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/ballsim/internal/dynamo"
)

const (
	StartMarker = "--- SIMULATION START ---"
	EndMarker   = "--- SIMULATION END ---"
)

type Option func(*Animator)

// WithStride renders every n-th step. Values below 1 are treated as 1.
func WithStride(n int) Option {
	return func(a *Animator) {
		if n < 1 {
			n = 1
		}
		a.stride = n
	}
}

func WithGlyph(g rune) Option {
	return func(a *Animator) { a.glyph = g }
}

// WithStyle renders the glyph through a lipgloss style.
func WithStyle(s lipgloss.Style) Option {
	return func(a *Animator) {
		a.style = s
		a.styled = true
	}
}

// Animator writes one row per stride of samples.
type Animator struct {
	w      *bufio.Writer
	stride int
	glyph  rune
	style  lipgloss.Style
	styled bool
}

func NewAnimator(w io.Writer, opts ...Option) *Animator {
	a := &Animator{
		w:      bufio.NewWriter(w),
		stride: DefaultStride,
		glyph:  DefaultGlyph,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Animate consumes samples and writes the framed animation. It returns the
// number of rows written.
func (a *Animator) Animate(samples iter.Seq[dynamo.Sample]) (int, error) {
	if _, err := a.w.WriteString(StartMarker + "\n"); err != nil {
		return 0, err
	}

	rows := 0
	for s := range samples {
		if s.Step%a.stride != 0 {
			continue
		}
		if err := a.writeRow(Row{Indent: Indent(s.Position), Glyph: a.glyph}); err != nil {
			return rows, err
		}
		rows++
	}

	if _, err := a.w.WriteString(EndMarker + "\n"); err != nil {
		return rows, err
	}
	return rows, a.w.Flush()
}

func (a *Animator) writeRow(r Row) error {
	if !a.styled {
		_, err := a.w.WriteString(r.String())
		return err
	}
	line := strings.Repeat(" ", r.Indent) + a.style.Render(string(r.Glyph)) + "\n"
	_, err := a.w.WriteString(line)
	return err
}
