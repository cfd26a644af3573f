package ingest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes that have no extra payload.
var (
	// ErrInvalidReference marks a channel reference that does not contain a
	// parseable handle.
	ErrInvalidReference = errors.New("invalid channel reference")

	// ErrNotFound means the upstream API reported zero matching entities.
	ErrNotFound = errors.New("not found upstream")

	// ErrStorageUnavailable means the persistence layer is unreachable. It is
	// fatal for the whole request.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrQuotaExhausted means the daily request budget is spent. It is
	// resumable, not a true failure.
	ErrQuotaExhausted = errors.New("daily request quota exhausted")
)

// UpstreamError reports a non-success HTTP status or a malformed payload from
// the remote metadata API.
type UpstreamError struct {
	Status   int
	Endpoint string
	Detail   string
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("upstream %s returned %d: %s", e.Endpoint, e.Status, e.Detail)
	}
	return fmt.Sprintf("upstream %s returned %d", e.Endpoint, e.Status)
}

// Retryable reports whether the failure is transient. Client errors are
// surfaced immediately; only server-side failures are worth another attempt.
func (e *UpstreamError) Retryable() bool {
	return e.Status >= 500 || e.Status == 0
}

// ConstraintViolation reports a foreign-key violation reaching the writer.
// The orchestrator sequences writes so a referenced row always exists first;
// seeing one of these means that invariant broke.
type ConstraintViolation struct {
	Constraint string
	Detail     string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint %s violated: %s", e.Constraint, e.Detail)
}
