package visualization

import (
	"bytes"
	"fmt"

	"github.com/riolet/sadl/dsl"
	"github.com/riolet/sadl/layout"
)

// RenderSchemaSVG renders the schema view: node classes as boxes with
// their connector labels, link classes as arrows between them.
func RenderSchemaSVG(ast *dsl.AST, opts *SVGOptions) string {
	nodes, edges := layout.SchemaView(ast)
	return renderDiagram(nodes, edges, opts)
}

// RenderInstancesSVG renders the instances view: instance entries as
// boxes, NAT records as hexagons, connections as arrows.
func RenderInstancesSVG(ast *dsl.AST, opts *SVGOptions) string {
	nodes, edges := layout.InstancesView(ast)
	return renderDiagram(nodes, edges, opts)
}

func renderDiagram(nodes []layout.Node, edges []layout.Edge, opts *SVGOptions) string {
	if opts == nil {
		opts = DefaultSVGOptions()
	}
	if opts.Grid == nil {
		o := *opts
		o.Grid = layout.DefaultOptions()
		opts = &o
	}
	placed := layout.Layout(nodes, edges, opts.Grid)

	// Duplicate names resolve to their last placement, the same box the
	// layout's row bookkeeping tracks for barycenter ordering.
	byName := make(map[string]layout.Placed, len(placed))
	for _, p := range placed {
		byName[p.Name] = p
	}

	var buf bytes.Buffer
	writeHeader(&buf, placed, opts)

	// Edges go underneath the boxes.
	for _, e := range edges {
		from, okFrom := byName[e.From]
		to, okTo := byName[e.To]
		if !okFrom || !okTo {
			continue
		}
		drawEdge(&buf, from, to)
	}

	for _, p := range placed {
		drawEntity(&buf, p, opts)
	}

	buf.WriteString("</svg>\n")
	return buf.String()
}

func drawEntity(buf *bytes.Buffer, p layout.Placed, opts *SVGOptions) {
	if p.Kind == layout.KindNAT {
		drawHexagon(buf, p)
	} else {
		buf.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" class="entity"/>`,
			p.X, p.Y, p.Width, p.Height, boxRadius))
		buf.WriteString("\n")
	}

	cx := p.X + p.Width/2
	buf.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="name">%s</text>`,
		cx, p.Y+opts.FontSize+2, escapeXML(p.Name)))
	buf.WriteString("\n")
	if p.Detail != "" {
		buf.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="detail">%s</text>`,
			cx, p.Y+p.Height-4, escapeXML(p.Detail)))
		buf.WriteString("\n")
	}

	pitch := opts.Grid.ConnectorPitch
	for i, name := range p.ServerConnectors {
		y := p.Y + labelBand + float64(i)*pitch
		buf.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="connector-server">%s</text>`,
			p.X+4, y, escapeXML(name)))
		buf.WriteString("\n")
	}
	for i, name := range p.ClientConnectors {
		y := p.Y + labelBand + float64(i)*pitch
		buf.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="connector-client">%s</text>`,
			p.X+p.Width-4, y, escapeXML(name)))
		buf.WriteString("\n")
	}
}

// drawHexagon draws the NAT shape: a box with pointed left and right ends.
func drawHexagon(buf *bytes.Buffer, p layout.Placed) {
	inset := p.Height / 2
	if inset > p.Width/4 {
		inset = p.Width / 4
	}
	buf.WriteString(fmt.Sprintf(`<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" class="nat"/>`,
		p.X+inset, p.Y,
		p.X+p.Width-inset, p.Y,
		p.X+p.Width, p.Y+p.Height/2,
		p.X+p.Width-inset, p.Y+p.Height,
		p.X+inset, p.Y+p.Height,
		p.X, p.Y+p.Height/2))
	buf.WriteString("\n")
}
