// Package layout converts architecture connectivity into a deterministic,
// crossing-minimized layered grid: entities are assigned a layer by
// longest-path distance from a source, ordered within each layer by the
// barycenter heuristic, and finally mapped to pixel positions.
package layout

import "sort"

// Kind identifies what a layout node represents.
type Kind int

const (
	// KindNodeClass is a schema-view node backed by a node class.
	KindNodeClass Kind = iota
	// KindInstance is an instances-view node backed by an instance entry.
	KindInstance
	// KindNAT is an instances-view node backed by a NAT record, rendered
	// as a hexagon downstream.
	KindNAT
)

// Node is one entity to place. Connector name lists size the box and
// label its edges; Detail is a free-form annotation (an IP, a NAT
// mapping) carried through to rendering.
type Node struct {
	Name             string
	Kind             Kind
	ServerConnectors []string
	ClientConnectors []string
	Detail           string
}

// Edge is a directed edge between two entities by name.
type Edge struct {
	From string
	To   string
}

// Options holds the grid geometry.
type Options struct {
	BoxWidth       float64 // fixed box width
	BoxHeight      float64 // minimum box height, also the row pitch
	ConnectorPitch float64 // vertical space per connector label
	Padding        float64
}

// DefaultOptions returns the standard grid geometry.
func DefaultOptions() *Options {
	return &Options{
		BoxWidth:       150,
		BoxHeight:      60,
		ConnectorPitch: 18,
		Padding:        30,
	}
}

// labelBand reserves vertical space for the entity name above the
// connector labels.
const labelBand = 24.0

// Placed is a positioned entity in the render model.
type Placed struct {
	Node
	Layer  int
	Row    int
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// three-state mark for the cycle-tolerant layering recursion
const (
	markUnvisited = iota
	markInProgress
	markDone
)

// Layout assigns a layer, row and pixel position to every node. It is a
// pure function of its inputs: calling it twice with the same nodes and
// edges yields identical results, cyclic or not. Edges naming entities
// outside the node set are ignored.
func Layout(nodes []Node, edges []Edge, opts *Options) []Placed {
	if opts == nil {
		opts = DefaultOptions()
	}

	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.Name] = true
	}

	// Predecessor lists keep edge input order so the recursion below is
	// reproducible.
	incoming := make(map[string][]string)
	for _, e := range edges {
		if present[e.From] && present[e.To] {
			incoming[e.To] = append(incoming[e.To], e.From)
		}
	}

	// Longest-path layering with a visited-in-progress guard: a back
	// edge into a node still being computed contributes layer 0 instead
	// of recursing, so cycles are broken rather than rejected.
	marks := make(map[string]int, len(nodes))
	layers := make(map[string]int, len(nodes))
	var layerOf func(name string) int
	layerOf = func(name string) int {
		switch marks[name] {
		case markDone:
			return layers[name]
		case markInProgress:
			return 0
		}
		marks[name] = markInProgress
		layer := 0
		if preds := incoming[name]; len(preds) > 0 {
			maxPred := 0
			for _, pred := range preds {
				if l := layerOf(pred); l > maxPred {
					maxPred = l
				}
			}
			layer = maxPred + 1
		}
		marks[name] = markDone
		layers[name] = layer
		return layer
	}
	for _, n := range nodes {
		layerOf(n.Name)
	}

	// Group node indices by layer, preserving input order within each.
	byLayer := make(map[int][]int)
	maxLayer := 0
	for i, n := range nodes {
		layer := layers[n.Name]
		byLayer[layer] = append(byLayer[layer], i)
		if layer > maxLayer {
			maxLayer = layer
		}
	}

	placed := make([]Placed, 0, len(nodes))
	rows := make(map[string]int, len(nodes))
	for layer := 0; layer <= maxLayer; layer++ {
		idxs := byLayer[layer]
		if layer == 0 {
			// Deterministic baseline ordering for sources.
			sort.SliceStable(idxs, func(a, b int) bool {
				return nodes[idxs[a]].Name < nodes[idxs[b]].Name
			})
		} else {
			// Barycenter heuristic: order by the mean row of the
			// already-placed predecessors, ties broken by input order.
			bary := make(map[int]float64, len(idxs))
			for _, idx := range idxs {
				bary[idx] = barycenter(incoming[nodes[idx].Name], rows)
			}
			sort.SliceStable(idxs, func(a, b int) bool {
				return bary[idxs[a]] < bary[idxs[b]]
			})
		}

		for row, idx := range idxs {
			n := nodes[idx]
			rows[n.Name] = row
			placed = append(placed, Placed{
				Node:   n,
				Layer:  layer,
				Row:    row,
				X:      float64(layer) * (opts.BoxWidth + 3*opts.Padding),
				Y:      float64(row) * (opts.BoxHeight + 2*opts.Padding),
				Width:  opts.BoxWidth,
				Height: boxHeight(n, opts),
			})
		}
	}
	return placed
}

// barycenter is the mean row of the predecessors that already have a row
// assigned. Predecessors still unplaced (back edges from deeper layers)
// are ignored; no placed predecessor at all yields 0.
func barycenter(preds []string, rows map[string]int) float64 {
	sum := 0.0
	count := 0
	for _, pred := range preds {
		if row, ok := rows[pred]; ok {
			sum += float64(row)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// boxHeight grows the box to fit the longer of the two connector columns,
// bounded below by the minimum box height.
func boxHeight(n Node, opts *Options) float64 {
	count := len(n.ServerConnectors)
	if len(n.ClientConnectors) > count {
		count = len(n.ClientConnectors)
	}
	h := labelBand + float64(count)*opts.ConnectorPitch
	if h < opts.BoxHeight {
		h = opts.BoxHeight
	}
	return h
}
