// Package surveygrid converts between geographic coordinates and the land
// survey grid references used across western Canada: Dominion Land Survey
// (DLS) references, British Columbia NTS references, and federal permit
// references, plus the unique well identifiers built from them.
//
// DLS conversion is anchored on a bundled dataset of surveyed township
// boundary monuments, so it works offline with no external services.
// Townships or sections missing from the dataset fall back to the nominal
// grid geometry.
//
// The common round trip:
//
//	ref, err := surveygrid.ParseDls("04-11-082-04 W6")
//	if err != nil { ... }
//	pos, err := ref.ToLatLong()
//	if err != nil { ... }
//	back, err := surveygrid.FromLatLong(pos)
//
// Package-level conversions share a lazily loaded default marker store; a
// GridConverter with options gives control over the store, the inverse
// search bound and spatial snapping.
package surveygrid
