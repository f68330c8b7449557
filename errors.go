package surveygrid

import "errors"

// Sentinel errors for the conversion pipeline. Callers test with errors.Is;
// all wrapped errors carry context about the offending reference or stream
// position.
//
// Absence of survey data is never an error: lookups report it with a boolean
// so a missing township can be handled as a normal case.
var (
	// ErrValueOutOfRange reports a grid reference field outside its legal
	// domain (meridian 1-8, range 1-34, township 1-127, section 1-36,
	// legal subdivision 1-16).
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrDatasetIntegrity reports a corrupt or truncated marker dataset.
	// This is fatal: the bundled data is static, so retrying cannot help.
	ErrDatasetIntegrity = errors.New("marker dataset integrity")

	// ErrGeometryInconsistency reports a section corner combination that
	// cannot be reconstructed. A well-formed dataset never triggers it.
	ErrGeometryInconsistency = errors.New("section geometry inconsistency")

	// ErrOutOfRegion reports a coordinate outside the surveyed region
	// (east of the first meridian, west of the coverage limit, or outside
	// the 49°N-60°N band).
	ErrOutOfRegion = errors.New("coordinate out of surveyed region")

	// ErrNoConvergence reports that the inverse search exhausted its step
	// bound. The best reference found so far is still returned.
	ErrNoConvergence = errors.New("inverse search did not converge")
)
