package netsync

import (
	"testing"

	"github.com/stormfell/vantage-mp/shared/gamemath"
	"github.com/stormfell/vantage-mp/shared/netconfig"
)

// unitStepPredictor returns a predictor whose fixed step moves exactly one
// pixel per full-tilt walk command, so scenario positions are round numbers.
func unitStepPredictor() *Predictor {
	cfg := DefaultConfig()
	cfg.CommandDt = 1.0 / netconfig.WalkSpeed
	return NewPredictor(cfg, gamemath.Bounds{MinX: -1000, MinY: -1000, MaxX: 1000, MaxY: 1000})
}

func TestReconcileReplaysUnacknowledgedCommands(t *testing.T) {
	pred := unitStepPredictor()
	buf := NewInputBuffer()
	rec := NewReconciler()

	// Commands 1..5, each moving +1 on X.
	for seq := uint64(1); seq <= 5; seq++ {
		c := moveCmd(seq, 1, 0)
		buf.Push(c)
		pred.PredictFrame(c)
	}

	// Server has applied up to 3 and reports X=3.
	st, err := rec.Reconcile(Snapshot{X: 3, LastSequence: 3}, buf, pred)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if st.X != 5 {
		t.Fatalf("reconciled X = %v, want 5 (3 authoritative + 2 replayed)", st.X)
	}
	if buf.Len() != 2 {
		t.Fatalf("pending after ack = %d, want 2", buf.Len())
	}
	if pred.State() != st {
		t.Fatalf("predictor state not reset to reconciled result")
	}
}

func TestReconcileEmptyPendingEqualsSnapshot(t *testing.T) {
	pred := unitStepPredictor()
	buf := NewInputBuffer()
	rec := NewReconciler()

	for seq := uint64(1); seq <= 4; seq++ {
		c := moveCmd(seq, 0, 1)
		buf.Push(c)
		pred.PredictFrame(c)
	}

	snap := Snapshot{X: 17, Y: 4, VelX: 0, VelY: netconfig.WalkSpeed, Facing: 0.5, LastSequence: 4}
	st, err := rec.Reconcile(snap, buf, pred)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	want := PredictedState{X: 17, Y: 4, VelY: netconfig.WalkSpeed, Facing: 0.5}
	if st != want {
		t.Fatalf("fully caught up reconcile = %+v, want snapshot state %+v", st, want)
	}
}

func TestReconcileAheadOfIssuanceHardResets(t *testing.T) {
	pred := unitStepPredictor()
	buf := NewInputBuffer()
	rec := NewReconciler()

	for seq := uint64(1); seq <= 3; seq++ {
		c := moveCmd(seq, 1, 0)
		buf.Push(c)
		pred.PredictFrame(c)
	}

	// Reconnect: the server acknowledges a sequence we never issued.
	st, err := rec.Reconcile(Snapshot{X: 250, Y: 40, LastSequence: 5}, buf, pred)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if buf.Len() != 0 || buf.LastIssued() != 0 {
		t.Fatalf("buffer not fully cleared: len=%d lastIssued=%d", buf.Len(), buf.LastIssued())
	}
	if st.X != 250 || st.Y != 40 {
		t.Fatalf("state not accepted verbatim: %+v", st)
	}
	if rec.AckedSequence() != 5 {
		t.Fatalf("acked sequence = %d, want 5", rec.AckedSequence())
	}
}

func TestReconcileRejectsStaleSnapshot(t *testing.T) {
	pred := unitStepPredictor()
	buf := NewInputBuffer()
	rec := NewReconciler()

	for seq := uint64(1); seq <= 6; seq++ {
		c := moveCmd(seq, 1, 0)
		buf.Push(c)
		pred.PredictFrame(c)
	}

	if _, err := rec.Reconcile(Snapshot{X: 4, LastSequence: 4}, buf, pred); err != nil {
		t.Fatalf("first reconcile failed: %v", err)
	}
	stateBefore := pred.State()
	pendingBefore := buf.Len()

	// Reordered transport delivers an older acknowledgment.
	if _, err := rec.Reconcile(Snapshot{X: 2, LastSequence: 2}, buf, pred); err != ErrStaleSnapshot {
		t.Fatalf("expected ErrStaleSnapshot, got %v", err)
	}
	if pred.State() != stateBefore {
		t.Fatalf("stale snapshot mutated predicted state")
	}
	if buf.Len() != pendingBefore {
		t.Fatalf("stale snapshot mutated buffer: %d -> %d", pendingBefore, buf.Len())
	}
}

func TestReconcileHandlesTeleportLikeAnySnapshot(t *testing.T) {
	pred := unitStepPredictor()
	buf := NewInputBuffer()
	rec := NewReconciler()

	for seq := uint64(1); seq <= 4; seq++ {
		c := moveCmd(seq, 1, 0)
		buf.Push(c)
		pred.PredictFrame(c)
	}

	// Respawn across the map, two commands still unacknowledged.
	st, err := rec.Reconcile(Snapshot{X: 500, Y: 500, LastSequence: 2}, buf, pred)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if st.X != 502 || st.Y != 500 {
		t.Fatalf("teleport replay = (%v, %v), want (502, 500)", st.X, st.Y)
	}
}

func TestReconcileSameAckTwiceIsStable(t *testing.T) {
	pred := unitStepPredictor()
	buf := NewInputBuffer()
	rec := NewReconciler()

	for seq := uint64(1); seq <= 5; seq++ {
		c := moveCmd(seq, 1, 0)
		buf.Push(c)
		pred.PredictFrame(c)
	}

	first, err := rec.Reconcile(Snapshot{X: 3, LastSequence: 3}, buf, pred)
	if err != nil {
		t.Fatalf("first reconcile failed: %v", err)
	}
	second, err := rec.Reconcile(Snapshot{X: 3, LastSequence: 3}, buf, pred)
	if err != nil {
		t.Fatalf("repeat reconcile failed: %v", err)
	}
	if first != second {
		t.Fatalf("same snapshot produced different states: %+v vs %+v", first, second)
	}
}
