package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Ports and stores return these
// (optionally wrapped) so the evaluator can translate them into domain
// outcomes.
//
// These represent factual states about external resources, not validation
// failures:
// - ErrNotFound: attribute, record, or profile match does not exist
// - ErrUnavailable: the directory or a dependent service cannot be reached
//
// Validation failures (password does not satisfy policy, form value rejected)
// are expected outcomes and carry their own types near the validators.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
