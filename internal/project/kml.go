package project

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/store"
)

// DefaultKMLCap is the practical per-file feature cap (spec.md §4.7 "KML
// partitioning": "default 250 per file").
const DefaultKMLCap = 250

// KMLPartition is one output KML file: every roadseg row matching the
// placename (or placename chunk), and the sanitized filename to write it
// under.
type KMLPartition struct {
	Placename string
	Filename  string
	Table     *store.Table
}

var nonWordChars = regexp.MustCompile(`\W+`)

// SanitizeKMLName applies spec.md §4.7 step 5: non-word characters become
// underscores, and embedded single quotes are doubled (SQL-style literal
// escaping, for placenames later used as embedded filter expressions).
func SanitizeKMLName(name string) string {
	escaped := strings.ReplaceAll(name, "'", "''")
	return nonWordChars.ReplaceAllString(escaped, "_")
}

// PartitionRoadsegByPlacename implements spec.md §4.7's KML partitioning
// (roadseg only): every unique placename across l_placenam/r_placenam is
// enumerated, partitioned into small (<=cap matching rows) and large
// (>cap) groups, and large groups are split into cap-sized chunks ordered
// by row id.
func PartitionRoadsegByPlacename(roadseg *store.Table, cap int, log *zap.Logger) []KMLPartition {
	if cap <= 0 {
		cap = DefaultKMLCap
	}

	rowsByPlacename := make(map[string][]int)
	for i := 0; i < roadseg.RowCount(); i++ {
		seen := make(map[string]bool, 2)
		for _, col := range []string{"l_placenam", "r_placenam"} {
			v, ok := roadseg.Get(col, i)
			if !ok {
				continue
			}
			name, _ := v.(string)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			rowsByPlacename[name] = append(rowsByPlacename[name], i)
		}
	}

	names := make([]string, 0, len(rowsByPlacename))
	for n := range rowsByPlacename {
		names = append(names, n)
	}
	sort.Strings(names)

	var partitions []KMLPartition
	for _, name := range names {
		rows := rowsByPlacename[name]
		sort.Ints(rows)
		sanitized := SanitizeKMLName(name)

		if len(rows) <= cap {
			partitions = append(partitions, KMLPartition{
				Placename: name,
				Filename:  sanitized + ".kml",
				Table:     subsetRows(roadseg, rows),
			})
			continue
		}

		log.Warn("project: placename exceeds KML cap, chunking",
			zap.String("placename", name), zap.Int("rows", len(rows)), zap.Int("cap", cap))

		chunk := 1
		for start := 0; start < len(rows); start += cap {
			end := start + cap
			if end > len(rows) {
				end = len(rows)
			}
			partitions = append(partitions, KMLPartition{
				Placename: name,
				Filename:  sanitized + "_" + itoa(chunk) + ".kml",
				Table:     subsetRows(roadseg, rows[start:end]),
			})
			chunk++
		}
	}

	return partitions
}

// subsetRows builds a keep-mask from an explicit, possibly non-contiguous
// row index list and delegates to Table.KeepRows.
func subsetRows(t *store.Table, rows []int) *store.Table {
	keep := make([]bool, t.RowCount())
	for _, r := range rows {
		keep[r] = true
	}
	return t.KeepRows(keep)
}
