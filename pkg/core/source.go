package core

import "context"

// SnapshotSource is the transport collaborator a session pulls its state
// from. Implementations own retries, timeouts and credentials; the core only
// sees the raw snapshot bytes for one session.
type SnapshotSource interface {
	FetchSession(ctx context.Context, sessionID string) ([]byte, error)
}
