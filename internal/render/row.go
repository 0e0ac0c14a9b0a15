// Package render turns ball heights into rows of text.
//
// [RowFor] is a pure mapping from a position to a [Row]; [Animator] writes
// those rows to a stream on a fixed stride, framed by start and end
// markers.
package render

import (
	"math"
	"strings"
)

const (
	DefaultGlyph  = 'O'
	DefaultStride = 5

	// MaxIndent caps rows for very high positions.
	MaxIndent = 1 << 12
)

// Row is one line of the animation: Indent spaces followed by Glyph.
type Row struct {
	Indent int
	Glyph  rune
}

func RowFor(position float64) Row {
	return Row{Indent: Indent(position), Glyph: DefaultGlyph}
}

// Indent counts the whole units of height strictly above 1.0, so any
// position at or below 1 sits on the left margin.
func Indent(position float64) int {
	if math.IsNaN(position) || position <= 1 {
		return 0
	}
	if position >= MaxIndent+1 {
		return MaxIndent
	}
	return int(math.Ceil(position)) - 1
}

func (r Row) String() string {
	var sb strings.Builder
	sb.Grow(r.Indent + 2)
	sb.WriteString(strings.Repeat(" ", r.Indent))
	sb.WriteRune(r.Glyph)
	sb.WriteByte('\n')
	return sb.String()
}
