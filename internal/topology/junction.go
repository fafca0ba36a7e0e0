package topology

import (
	"time"

	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// BuildJunctions runs S5 end to end: classify roadseg/ferryseg nodes by
// degree, emit one junction row per classified node, reclassify any
// junction outside boundary as NatProvTer, and stamp the computed-feature
// metadata block (spec.md §4.5 steps 1-7).
func BuildJunctions(st *store.Store, boundary *geomutil.Geometry, log *zap.Logger) {
	roadGraph := buildGraph(st.Tables[string(schema.TableRoadseg)])
	classification := make(map[geomutil.Coord]JunctionType)

	for _, n := range roadGraph.nodes() {
		switch deg := roadGraph.degree[n]; {
		case deg >= 3:
			classification[n] = JunctionIntersection
		case deg == 1:
			classification[n] = JunctionDeadEnd
		}
		// degree == 2 stays unclassified and is omitted (spec.md §4.5 step 3).
	}

	ferryGraph := buildGraph(st.Tables[string(schema.TableFerryseg)])
	for _, n := range ferryGraph.nodes() {
		classification[n] = JunctionFerry
	}

	out := store.NewTable(string(schema.TableJunction), nil, true)
	today := time.Now().Format("20060102")

	reclassified := 0
	for node, jtype := range classification {
		if boundary != nil && !geomutil.WithinPolygon(node, *boundary) {
			jtype = JunctionNatProvTer
			reclassified++
		}

		exitnbr := nodeAttribute(roadGraph, ferryGraph, node, "exitnbr", "None")
		accuracy := nodeAttribute(roadGraph, ferryGraph, node, "accuracy", int64(-1))

		values := map[string]store.Value{
			"junctype":  string(jtype),
			"exitnbr":   exitnbr,
			"accuracy":  accuracy,
			"acqtech":   "Computed",
			"metacover": "Complete",
			"specvers":  schema.SpecVersion,
			"credate":   today,
			"revdate":   "0",
			"provider":  "Federal",
		}
		out.AddRow(freshUUID(), values, geomutil.Geometry{Type: geomutil.GeometryTypePoint, Points: []geomutil.Coord{node}})
	}

	st.Set(string(schema.TableJunction), out)

	log.Info("topology: built junctions",
		zap.Int("count", out.RowCount()),
		zap.Int("reclassified_nat_prov_ter", reclassified),
	)
}

// nodeAttribute consults the road graph first, then the ferry graph, so a
// node present in both contributes whichever graph has a usable value.
func nodeAttribute(road, ferry *graph, node geomutil.Coord, col string, def store.Value) store.Value {
	if v := road.attributeFromNode(node, col, nil); v != nil {
		return v
	}
	if v := ferry.attributeFromNode(node, col, nil); v != nil {
		return v
	}
	return def
}
