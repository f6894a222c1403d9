package ingest

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// MergeWays concatenates the points of records sharing a name.
// The first record seen for a name decides its class and form; output is in first-seen order.
func MergeWays(ways []Way) []Way {
	index := make(map[string]int, len(ways))
	merged := make([]Way, 0, len(ways))
	for _, w := range ways {
		if i, ok := index[w.Name]; ok {
			merged[i].Points = append(merged[i].Points, w.Points...)
			continue
		}
		index[w.Name] = len(merged)
		pts := make([]RawPoint, len(w.Points))
		copy(pts, w.Points)
		w.Points = pts
		merged = append(merged, w)
	}
	return merged
}

// nodeKey identifies a graph node by quantized coordinate
type nodeKey struct {
	x, y uint64
}

// segmentGraph is an undirected multigraph over way points
type segmentGraph struct {
	precision float64
	index     map[nodeKey]int
	coords    []orb.Point // first coordinate seen for each node
	adj       [][]int
}

func newSegmentGraph(precision float64, sizeHint int) *segmentGraph {
	return &segmentGraph{
		precision: precision,
		index:     make(map[nodeKey]int, sizeHint),
		coords:    make([]orb.Point, 0, sizeHint),
		adj:       make([][]int, 0, sizeHint),
	}
}

func (g *segmentGraph) key(x, y float64) nodeKey {
	if g.precision > 0 {
		return nodeKey{
			x: uint64(int64(math.Round(x / g.precision))),
			y: uint64(int64(math.Round(y / g.precision))),
		}
	}
	// +0 and -0 are the same node
	if x == 0 {
		x = 0
	}
	if y == 0 {
		y = 0
	}
	return nodeKey{x: math.Float64bits(x), y: math.Float64bits(y)}
}

func (g *segmentGraph) node(p RawPoint) int {
	k := g.key(p.X, p.Y)
	if id, ok := g.index[k]; ok {
		return id
	}
	id := len(g.coords)
	g.index[k] = id
	g.coords = append(g.coords, orb.Point{p.X, p.Y})
	g.adj = append(g.adj, nil)
	return id
}

func (g *segmentGraph) addEdge(a, b int) {
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
}

// buildSegmentGraph adds one node per distinct coordinate and an edge between
// consecutive points, except where the destination point is a break.
func buildSegmentGraph(points []RawPoint, precision float64) (*segmentGraph, error) {
	g := newSegmentGraph(precision, len(points))
	prev := -1
	for i, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			return nil, &ErrMalformedInput{Reason: fmt.Sprintf("point %d is not finite (%v, %v)", i, p.X, p.Y)}
		}
		id := g.node(p)
		if prev >= 0 && !p.IsBreak && prev != id {
			g.addEdge(prev, id)
		}
		prev = id
	}
	return g, nil
}

type dfsFrame struct {
	node, parent int
}

// paths walks every component depth first, starting components in first-seen order.
// A path grows while each visited node is adjacent to its tail; on backtrack a new
// path starts at the node's discovering parent, so every emitted pair is a graph edge.
func (g *segmentGraph) paths() []orb.LineString {
	visited := make([]bool, len(g.coords))
	var out []orb.LineString
	var cur []int

	flush := func() {
		if len(cur) >= 2 {
			ls := make(orb.LineString, len(cur))
			for i, id := range cur {
				ls[i] = g.coords[id]
			}
			out = append(out, ls)
		}
		cur = cur[:0]
	}

	stack := make([]dfsFrame, 0, 16)
	for start := range g.coords {
		if visited[start] {
			continue
		}
		stack = append(stack[:0], dfsFrame{node: start, parent: -1})
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[f.node] {
				continue
			}
			visited[f.node] = true

			if len(cur) > 0 && cur[len(cur)-1] == f.parent {
				cur = append(cur, f.node)
			} else {
				flush()
				if f.parent >= 0 {
					cur = append(cur, f.parent)
				}
				cur = append(cur, f.node)
			}

			// reverse so the first neighbour is explored first
			nbrs := g.adj[f.node]
			for i := len(nbrs) - 1; i >= 0; i-- {
				if !visited[nbrs[i]] {
					stack = append(stack, dfsFrame{node: nbrs[i], parent: f.node})
				}
			}
		}
		flush()
	}
	return out
}

// ReconstructPaths rebuilds maximal simple paths from a way's fragmented point list.
// Coordinates are quantized to precision before being used as node keys; a precision
// of 0 keys on exact values. Paths with fewer than 2 points are dropped.
func ReconstructPaths(points []RawPoint, precision float64) ([]orb.LineString, error) {
	if len(points) == 0 {
		return nil, nil
	}
	g, err := buildSegmentGraph(points, precision)
	if err != nil {
		return nil, err
	}
	return g.paths(), nil
}

// PathsToPoints flattens paths back to way points, marking the first point of each path as a break.
func PathsToPoints(paths []orb.LineString) []RawPoint {
	n := 0
	for _, p := range paths {
		n += len(p)
	}
	out := make([]RawPoint, 0, n)
	for _, p := range paths {
		for i, pt := range p {
			out = append(out, RawPoint{IsBreak: i == 0, X: pt[0], Y: pt[1]})
		}
	}
	return out
}
