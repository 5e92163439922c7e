// Package netsync is the client-side state-synchronization core: it predicts
// the locally controlled entity's movement from unacknowledged input,
// reconciles it against authoritative server snapshots, visually corrects the
// rendered position toward the reconciled state, and interpolates every
// remote entity between its two most recent snapshots.
//
// The package is pure logic with no transport or rendering dependencies; the
// systems layer feeds it queued network messages at the start of each frame
// and reads positions back out. Nothing here runs concurrently.
package netsync

import "errors"

var (
	// ErrStaleSnapshot marks an authoritative update older than state already
	// processed. Dropped silently by callers; never surfaced to the player.
	ErrStaleSnapshot = errors.New("netsync: stale snapshot")

	// ErrSyncTimeout means a clock probe got no response in time. The clock
	// keeps serving the last known offset.
	ErrSyncTimeout = errors.New("netsync: clock probe timed out")

	// ErrNotSynchronized means no clock probe has ever completed; commands
	// must not be timestamped yet.
	ErrNotSynchronized = errors.New("netsync: clock never synchronized")
)
