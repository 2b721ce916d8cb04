package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Clients and infrastructure layers
// return these (optionally wrapped) so services can translate them into
// degraded verdicts or domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity or resource does not exist
// - ErrUnavailable: collaborator unreachable or reports not-ready
// - ErrMalformed: collaborator responded with an unparseable payload
// - ErrCircuitOpen: circuit breaker is rejecting calls to a collaborator
//
// For validation defects (bad record fields), use the screening Defect taxonomy.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrMalformed   = errors.New("malformed response")
	ErrCircuitOpen = errors.New("circuit open")
)
