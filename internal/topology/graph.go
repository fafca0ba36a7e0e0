// Package topology implements S5 (spec.md §4.5 "Topology & Junctions"):
// building a planar multigraph from road (and optionally ferry) line
// geometry, classifying its nodes by degree, and emitting junction points
// reclassified against an administrative boundary.
package topology

import (
	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// JunctionType is a junction's classification.
type JunctionType string

const (
	JunctionIntersection JunctionType = "Intersection"
	JunctionDeadEnd      JunctionType = "Dead End"
	JunctionFerry        JunctionType = "Ferry"
	JunctionNatProvTer   JunctionType = "NatProvTer"
)

// graph is the planar multigraph built from a line table's edges: each row
// contributes one edge between its first and last (already 7-decimal
// rounded) coordinates (spec.md §4.5 step 1, "Edge cases": "Coordinates
// are compared by exact tuple equality after the 7-decimal rounding
// applied at S1").
type graph struct {
	degree   map[geomutil.Coord]int
	incident map[geomutil.Coord][]int // row indices of t incident to this node
	table    *store.Table
}

// buildGraph constructs a graph from every spatial row of t. Non-line
// geometries (points) are ignored; MultiLineString inputs don't exist in
// this pipeline's Geometry representation, so no flattening step is
// needed beyond what S1 already produced.
func buildGraph(t *store.Table) *graph {
	g := &graph{
		degree:   make(map[geomutil.Coord]int),
		incident: make(map[geomutil.Coord][]int),
		table:    t,
	}
	if t == nil {
		return g
	}
	for i, geom := range t.Geoms {
		if geom.Type != geomutil.GeometryTypeLineString {
			continue
		}
		first, err := geom.First()
		if err != nil {
			continue
		}
		last, err := geom.Last()
		if err != nil {
			continue
		}

		g.degree[first]++
		g.degree[last]++ // self-loops count degree 2, per spec.md §4.5 "Edge cases"
		g.incident[first] = append(g.incident[first], i)
		if last != first {
			g.incident[last] = append(g.incident[last], i)
		}
	}
	return g
}

// attributeFromNode retrieves the first non-null, non-"None" value of col
// among the rows incident to node, iterating both in- and out-edges
// (spec.md §4.5 "Attribute-from-node retrieval"). def is returned if no
// incident row has a usable value.
func (g *graph) attributeFromNode(node geomutil.Coord, col string, def store.Value) store.Value {
	for _, row := range g.incident[node] {
		v, ok := g.table.Get(col, row)
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && (s == "" || s == "None") {
			continue
		}
		return v
	}
	return def
}

// nodes returns every node with a nonzero degree.
func (g *graph) nodes() []geomutil.Coord {
	out := make([]geomutil.Coord, 0, len(g.degree))
	for n := range g.degree {
		out = append(out, n)
	}
	return out
}
