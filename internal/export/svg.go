package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/ballsim/internal/dynamo"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 300
	DefaultStroke = "#00ff88"

	floorColor  = "#666688"
	bounceColor = "#ff00ff"
	padding     = 10.0
)

// TraceSVG draws height against time as a polyline, with the floor at the
// bottom edge and a dot on every recorded contact.
func TraceSVG(w io.Writer, samples []dynamo.Sample, width, height int, stroke string) error {
	if len(samples) < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", dynamo.ErrNoData, len(samples))
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if stroke == "" {
		stroke = DefaultStroke
	}

	minT, maxT := samples[0].Time, samples[len(samples)-1].Time
	maxY := 0.0
	for _, s := range samples {
		if s.Position > maxY {
			maxY = s.Position
		}
	}
	rangeT := maxT - minT
	if rangeT <= 0 {
		rangeT = 1
	}
	if maxY <= 0 {
		maxY = 1
	}

	plotW := float64(width) - 2*padding
	plotH := float64(height) - 2*padding
	px := func(s dynamo.Sample) (float64, float64) {
		x := padding + (s.Time-minT)/rangeT*plotW
		y := padding + plotH - s.Position/maxY*plotH
		return x, y
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	floor := padding + plotH
	fmt.Fprintf(bw, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>
`, padding, floor, padding+plotW, floor, floorColor)

	fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)
	for i, s := range samples {
		x, y := px(s)
		if i == 0 {
			fmt.Fprintf(bw, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(bw, " L%.1f,%.1f", x, y)
		}
	}
	bw.WriteString("\"/>\n")

	fmt.Fprintf(bw, "<g fill=\"%s\">\n", bounceColor)
	for _, s := range samples {
		if !s.Bounced {
			continue
		}
		x, y := px(s)
		fmt.Fprintf(bw, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"2.5\"/>\n", x, y)
	}
	bw.WriteString("</g>\n</svg>\n")

	return bw.Flush()
}
