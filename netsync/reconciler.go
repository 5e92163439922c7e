package netsync

import "log"

// Snapshot is one authoritative state update for a single entity, as
// extracted from the transport's world snapshot. Read-only here.
type Snapshot struct {
	EntityID     uint64
	X, Y         float64
	VelX, VelY   float64
	Facing       float64
	LastSequence uint64 // Highest input sequence the server has applied
	ServerTick   uint64
}

// Reconciler merges authoritative snapshots for the controlled entity with
// the not-yet-acknowledged command log: reset the shadow state to the
// server's value, then replay every pending command on top. Discontinuities
// (teleport, respawn, forced repositioning) need no special case: the reset
// half absorbs them and the replay half re-derives the local intent.
type Reconciler struct {
	highestAcked uint64
	latestTick   uint64
}

// NewReconciler returns a reconciler that accepts any first snapshot.
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Reconcile processes one authoritative snapshot. It returns the rederived
// predicted state, or ErrStaleSnapshot when the snapshot acknowledges less
// than one already processed (transport reordering; reconciliation must
// never regress). The predictor's shadow state is reset to the result.
func (r *Reconciler) Reconcile(snap Snapshot, buffer *InputBuffer, predictor *Predictor) (PredictedState, error) {
	if snap.LastSequence < r.highestAcked {
		log.Printf("[netsync] dropping stale snapshot: acks %d, already at %d", snap.LastSequence, r.highestAcked)
		return PredictedState{}, ErrStaleSnapshot
	}

	authoritative := PredictedState{
		X:      snap.X,
		Y:      snap.Y,
		VelX:   snap.VelX,
		VelY:   snap.VelY,
		Facing: snap.Facing,
	}

	if snap.LastSequence > buffer.LastIssued() {
		// The server is ahead of anything we ever issued: a sequence-counter
		// reset (reconnect) or a server fault. Hard reset: accept the
		// snapshot verbatim and start over.
		if buffer.LastIssued() != 0 {
			log.Printf("[netsync] snapshot acks %d beyond issued %d, hard reset", snap.LastSequence, buffer.LastIssued())
		}
		buffer.Clear()
		r.highestAcked = snap.LastSequence
		r.latestTick = snap.ServerTick
		predictor.Reset(authoritative)
		return authoritative, nil
	}

	buffer.Acknowledge(snap.LastSequence)
	r.highestAcked = snap.LastSequence
	r.latestTick = snap.ServerTick

	// Reset, then replay. An empty pending buffer means zero divergence:
	// the result is the authoritative state exactly.
	working := authoritative
	for _, cmd := range buffer.Pending() {
		working = predictor.Apply(working, cmd, predictor.dt)
	}

	predictor.Reset(working)
	return working, nil
}

// AckedSequence returns the highest input sequence the server has confirmed.
// Gameplay systems use it to tell confirmed events from locally predicted
// ones.
func (r *Reconciler) AckedSequence() uint64 { return r.highestAcked }

// ServerTick returns the tick of the latest processed snapshot.
func (r *Reconciler) ServerTick() uint64 { return r.latestTick }
