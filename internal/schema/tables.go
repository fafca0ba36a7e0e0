// Package schema is the NRN canonical schema registry: table/field
// declarations, controlled-vocabulary domains, and per-field defaults
// (spec.md §3 "Schema registry", §4.2 "Domain & Default Layer"). Domain
// tables are intentionally data, not code: each is a short Go literal table
// so that the mapping/clean/project stages can all share one source of
// truth, mirroring the teacher's internal/parser/objectclass.go pattern of
// a small code-to-name registry consulted by multiple stages.
package schema

// TableName identifies one of the eight canonical NRN layers.
type TableName string

const (
	TableRoadseg     TableName = "roadseg"
	TableFerryseg    TableName = "ferryseg"
	TableJunction    TableName = "junction"
	TableBlkpassage  TableName = "blkpassage"
	TableTollpoint   TableName = "tollpoint"
	TableAddrange    TableName = "addrange"
	TableAltnamlink  TableName = "altnamlink"
	TableStrplaname  TableName = "strplaname"
)

// SpatialTables lists the layers carrying a geometry column.
var SpatialTables = map[TableName]bool{
	TableRoadseg:    true,
	TableFerryseg:   true,
	TableJunction:   true,
	TableBlkpassage: true,
	TableTollpoint:  true,
}

// AttributeTables lists the layers with no geometry of their own.
var AttributeTables = map[TableName]bool{
	TableAddrange:   true,
	TableAltnamlink: true,
	TableStrplaname: true,
}

// AllTables lists every canonical layer, spatial and attribute-only.
var AllTables = []TableName{
	TableRoadseg, TableFerryseg, TableJunction, TableBlkpassage, TableTollpoint,
	TableAddrange, TableAltnamlink, TableStrplaname,
}

// CommonFields are present on every table (spec.md §3 "Common attributes").
var CommonFields = []string{"nid", "credate", "revdate", "datasetnam", "acqtech", "specvers"}

// SpecVersion is the current NRN specification version, stamped onto
// computed rows (spec.md §4.5 step 7: "specvers=<current spec version>").
const SpecVersion = 2.1

// NIDWidth is the fixed character width of every `nid` value (spec.md
// GLOSSARY: "32-character opaque identifier").
const NIDWidth = 32

// DefaultSentinelNID is the value a `*nid` foreign-key column holds when it
// references nothing (spec.md invariant 2).
const DefaultSentinelNID = ""
