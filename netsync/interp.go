package netsync

import (
	"github.com/stormfell/vantage-mp/shared/gamemath"
)

// remoteEntry holds the two most recent snapshots for one remote entity plus
// the local receipt time of each.
type remoteEntry struct {
	prev, latest         Snapshot
	prevRecv, latestRecv float64 // local ms
	hasPrev              bool
}

// RemoteInterpolator renders every non-local entity a fixed delay in the
// past, interpolating between its two most recent snapshots. The delay buys
// guaranteed smoothness against ordinary jitter at the cost of a little
// added visual latency. On sustained loss it holds at the latest snapshot:
// freezing is preferred over guessing.
type RemoteInterpolator struct {
	delayMs   float64
	timeoutMs float64
	entries   map[uint64]*remoteEntry
}

// NewRemoteInterpolator builds an interpolator from tuning config.
func NewRemoteInterpolator(cfg Config) *RemoteInterpolator {
	return &RemoteInterpolator{
		delayMs:   cfg.InterpolationDelayMs,
		timeoutMs: cfg.RemoteTimeoutMs,
		entries:   make(map[uint64]*remoteEntry),
	}
}

// OnSnapshot shifts latest to previous and stores the new snapshot,
// recording the local receipt time.
func (ri *RemoteInterpolator) OnSnapshot(id uint64, snap Snapshot, localNowMs float64) {
	e, ok := ri.entries[id]
	if !ok {
		ri.entries[id] = &remoteEntry{latest: snap, latestRecv: localNowMs}
		return
	}
	e.prev = e.latest
	e.prevRecv = e.latestRecv
	e.latest = snap
	e.latestRecv = localNowMs
	e.hasPrev = true
}

// Render returns the interpolated position and facing for an entity at the
// given local time, or false if the entity is unknown. With only one
// snapshot seen, or past the latest receipt time, it holds at latest.
func (ri *RemoteInterpolator) Render(id uint64, localNowMs float64) (x, y, facing float64, ok bool) {
	e, found := ri.entries[id]
	if !found {
		return 0, 0, 0, false
	}
	if !e.hasPrev {
		return e.latest.X, e.latest.Y, e.latest.Facing, true
	}

	renderTime := localNowMs - ri.delayMs
	span := e.latestRecv - e.prevRecv
	if span <= 0 {
		return e.latest.X, e.latest.Y, e.latest.Facing, true
	}

	t := (renderTime - e.prevRecv) / span
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	x = gamemath.Lerp(e.prev.X, e.latest.X, t)
	y = gamemath.Lerp(e.prev.Y, e.latest.Y, t)
	facing = gamemath.AngleLerp(e.prev.Facing, e.latest.Facing, t)
	return x, y, facing, true
}

// Evict removes entities with no snapshot inside the timeout window and
// returns their ids so the caller can despawn them.
func (ri *RemoteInterpolator) Evict(localNowMs float64) []uint64 {
	var gone []uint64
	for id, e := range ri.entries {
		if localNowMs-e.latestRecv > ri.timeoutMs {
			gone = append(gone, id)
			delete(ri.entries, id)
		}
	}
	return gone
}

// Forget drops a single entity (explicit despawn from the server).
func (ri *RemoteInterpolator) Forget(id uint64) {
	delete(ri.entries, id)
}

// Tracked returns the number of remote entities currently buffered.
func (ri *RemoteInterpolator) Tracked() int { return len(ri.entries) }
