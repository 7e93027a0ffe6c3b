// Package visualization renders positioned architecture diagrams as SVG.
//
// It consumes the render model produced by the layout package; all layout
// decisions happen there. Rendering is pure string assembly and is
// deterministic for a fixed AST.
package visualization

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/riolet/sadl/layout"
)

const (
	arrowheadSize = 8.0
	minDistance   = 1.0 // prevents division by zero on coincident boxes
	boxRadius     = 4.0
	labelBand     = 24.0 // vertical space for the entity name, above connector labels
)

// SVGOptions controls diagram rendering.
type SVGOptions struct {
	Grid     *layout.Options
	Padding  float64
	FontSize float64
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() *SVGOptions {
	return &SVGOptions{
		Grid:     layout.DefaultOptions(),
		Padding:  40,
		FontSize: 12,
	}
}

func writeHeader(buf *bytes.Buffer, placed []layout.Placed, opts *SVGOptions) {
	minX, minY := 0.0, 0.0
	maxX, maxY := 100.0, 100.0
	for _, p := range placed {
		if p.X+p.Width > maxX {
			maxX = p.X + p.Width
		}
		if p.Y+p.Height > maxY {
			maxY = p.Y + p.Height
		}
	}
	minX -= opts.Padding
	minY -= opts.Padding
	maxX += opts.Padding
	maxY += opts.Padding

	width := maxX - minX
	height := maxY - minY

	buf.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`,
		minX, minY, width, height, width, height))
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#f8f9fa" rx="8"/>`,
		minX, minY, width, height))
	buf.WriteString("\n")

	buf.WriteString(`<defs>`)
	buf.WriteString(`<style>`)
	buf.WriteString(`.entity { fill: #fff; stroke: #333; stroke-width: 2; }`)
	buf.WriteString(`.nat { fill: #fff3e0; stroke: #f57c00; stroke-width: 2; }`)
	buf.WriteString(fmt.Sprintf(`.name { font-family: system-ui, Arial; font-size: %.0fpx; fill: #333; text-anchor: middle; }`, opts.FontSize))
	buf.WriteString(fmt.Sprintf(`.detail { font-family: system-ui, Arial; font-size: %.0fpx; fill: #666; text-anchor: middle; }`, opts.FontSize-2))
	buf.WriteString(fmt.Sprintf(`.connector-server { font-family: system-ui, Arial; font-size: %.0fpx; fill: #1976d2; text-anchor: start; }`, opts.FontSize-2))
	buf.WriteString(fmt.Sprintf(`.connector-client { font-family: system-ui, Arial; font-size: %.0fpx; fill: #388e3c; text-anchor: end; }`, opts.FontSize-2))
	buf.WriteString(`.edge { stroke: #cfcfcf; stroke-width: 1; fill: none; }`)
	buf.WriteString(`.arrowhead { fill: #cfcfcf; }`)
	buf.WriteString(`</style>`)
	buf.WriteString(`</defs>`)
	buf.WriteString("\n")
}

// drawEdge draws a straight line from the right edge of the source box to
// the left edge of the target box, with an arrowhead at the target.
func drawEdge(buf *bytes.Buffer, from, to layout.Placed) {
	ex := from.X + from.Width
	ey := from.Y + from.Height/2
	fx := to.X
	fy := to.Y + to.Height/2

	dx := fx - ex
	dy := fy - ey
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		dist = minDistance
	}
	ux := dx / dist
	uy := dy / dist

	tipX := fx - ux*arrowheadSize
	tipY := fy - uy*arrowheadSize

	buf.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="edge"/>`,
		ex, ey, tipX, tipY))
	buf.WriteString("\n")

	ahx := fx + (-ux*arrowheadSize - uy*arrowheadSize*0.45)
	ahy := fy + (-uy*arrowheadSize + ux*arrowheadSize*0.45)
	bhx := fx + (-ux*arrowheadSize + uy*arrowheadSize*0.45)
	bhy := fy + (-uy*arrowheadSize - ux*arrowheadSize*0.45)
	buf.WriteString(fmt.Sprintf(`<path d="M %.1f %.1f L %.1f %.1f L %.1f %.1f Z" class="arrowhead"/>`,
		fx, fy, ahx, ahy, bhx, bhy))
	buf.WriteString("\n")
}

// escapeXML escapes special XML characters in text.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
