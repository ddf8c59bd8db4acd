package ports

import (
	"context"
	"time"

	"credstate/internal/domain"
)

// Directory is the synchronous read port to the remote directory service.
// Implementations signal an absent attribute or timestamp with
// sentinel.ErrNotFound and an unreachable backend with sentinel.ErrUnavailable;
// the evaluator maps the former to empty values and treats the latter as fatal.
type Directory interface {
	// ReadAttribute reads a single named attribute.
	ReadAttribute(ctx context.Context, identity domain.Identity, attribute string) (string, error)

	// ReadAttributes reads several attributes in one batched call. Attributes
	// absent on the entry are simply missing from the result map.
	ReadAttributes(ctx context.Context, identity domain.Identity, attributes []string) (map[string]string, error)

	// ReadTimestamp reads one of the directory-held timestamps.
	ReadTimestamp(ctx context.Context, identity domain.Identity, kind domain.TimestampKind) (time.Time, error)

	// PasswordExpired reports the directory's own expired flag for the entry.
	PasswordExpired(ctx context.Context, identity domain.Identity) (bool, error)
}
