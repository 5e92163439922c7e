package netsync

import (
	"testing"
	"time"

	"github.com/stormfell/vantage-mp/shared/gamemath"
	"github.com/stormfell/vantage-mp/shared/messages"
	"github.com/stormfell/vantage-mp/shared/netconfig"
)

func syncedContext(t *testing.T, now *time.Time) *Context {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CommandDt = 1.0 / netconfig.WalkSpeed // one pixel per walk command
	ctx := NewContext(cfg, gamemath.Bounds{MinX: -1000, MinY: -1000, MaxX: 1000, MaxY: 1000})
	ctx.clock.now = fakeNow(now)

	req, err := ctx.Clock().Update()
	if err != nil || req == nil {
		t.Fatalf("no initial probe: req=%v err=%v", req, err)
	}
	*now = now.Add(20 * time.Millisecond)
	ctx.Clock().HandleResponse(messages.TimeSyncResponse{
		ClientTime: req.ClientTime,
		ServerTime: req.ClientTime + 10,
	})
	return ctx
}

func TestIssueCommandRequiresClockSync(t *testing.T) {
	ctx := NewContext(DefaultConfig(), gamemath.Bounds{MaxX: 100, MaxY: 100})
	if _, err := ctx.IssueCommand(1, 0, netconfig.SpeedWalk, 0, 0); err != ErrNotSynchronized {
		t.Fatalf("expected ErrNotSynchronized, got %v", err)
	}
}

func TestCommandFlowThroughReconciliation(t *testing.T) {
	now := time.UnixMilli(5_000_000)
	ctx := syncedContext(t, &now)

	for i := 0; i < 5; i++ {
		if _, err := ctx.IssueCommand(1, 0, netconfig.SpeedWalk, 0, 0); err != nil {
			t.Fatalf("issue %d: %v", i, err)
		}
	}
	if ctx.IssuedSequence() != 5 || ctx.PendingCommands() != 5 {
		t.Fatalf("issued=%d pending=%d, want 5/5", ctx.IssuedSequence(), ctx.PendingCommands())
	}

	ctx.HandleLocalSnapshot(Snapshot{X: 3, LastSequence: 3})
	if ctx.Predicted().X != 5 {
		t.Fatalf("predicted X = %v, want 5", ctx.Predicted().X)
	}
	if ctx.AckedSequence() != 3 || ctx.PendingCommands() != 2 {
		t.Fatalf("acked=%d pending=%d, want 3/2", ctx.AckedSequence(), ctx.PendingCommands())
	}
}

func TestHardResetRealignsSequenceCounter(t *testing.T) {
	now := time.UnixMilli(5_000_000)
	ctx := syncedContext(t, &now)

	for i := 0; i < 3; i++ {
		ctx.IssueCommand(1, 0, netconfig.SpeedWalk, 0, 0)
	}

	// Server acks beyond anything issued (reconnect).
	ctx.HandleLocalSnapshot(Snapshot{X: 77, Y: 88, LastSequence: 9})
	if ctx.PendingCommands() != 0 {
		t.Fatalf("pending = %d after hard reset, want 0", ctx.PendingCommands())
	}
	st := ctx.Predicted()
	if st.X != 77 || st.Y != 88 {
		t.Fatalf("state not accepted verbatim: %+v", st)
	}

	// The next command must continue from the acknowledged sequence, not
	// regress below it.
	cmd, err := ctx.IssueCommand(1, 0, netconfig.SpeedWalk, 0, 0)
	if err != nil {
		t.Fatalf("issue after reset: %v", err)
	}
	if cmd.Sequence != 10 {
		t.Fatalf("sequence after hard reset = %d, want 10", cmd.Sequence)
	}
}

func TestRenderLocalConvergesOnPrediction(t *testing.T) {
	now := time.UnixMilli(5_000_000)
	ctx := syncedContext(t, &now)

	// First snapshot seeds the rendered position.
	ctx.HandleLocalSnapshot(Snapshot{X: 10, Y: 10, LastSequence: 0})

	for i := 0; i < 8; i++ {
		ctx.IssueCommand(1, 0, netconfig.SpeedWalk, 0, 0)
	}

	var x, y float64
	for i := 0; i < 300; i++ {
		x, y, _ = ctx.RenderLocal(1.0 / 60)
	}
	st := ctx.Predicted()
	if dx := st.X - x; dx > 1 || dx < -1 {
		t.Fatalf("rendered x %v did not converge on predicted %v", x, st.X)
	}
	if dy := st.Y - y; dy > 1 || dy < -1 {
		t.Fatalf("rendered y %v did not converge on predicted %v", y, st.Y)
	}
}

func TestMaintainEvictsSilentRemotes(t *testing.T) {
	now := time.UnixMilli(5_000_000)
	ctx := syncedContext(t, &now)

	ctx.HandleRemoteSnapshot(Snapshot{EntityID: 2, X: 1}, 1000)
	ctx.HandleRemoteSnapshot(Snapshot{EntityID: 3, X: 2}, 4500)

	gone := ctx.Maintain(5000)
	if len(gone) != 1 || gone[0] != 2 {
		t.Fatalf("evicted %v, want [2]", gone)
	}
	if _, _, _, ok := ctx.RenderRemote(3, 5000); !ok {
		t.Fatal("live remote entity lost")
	}
}

func TestCommandTimestampUsesServerClock(t *testing.T) {
	now := time.UnixMilli(5_000_000)
	ctx := syncedContext(t, &now)

	cmd, err := ctx.IssueCommand(0, 1, netconfig.SpeedSneak, netconfig.FlagAiming, 0.3)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	want := ctx.Clock().NowServer()
	if diff := cmd.ServerTimestamp - want; diff > 1 || diff < -1 {
		t.Fatalf("command timestamp %v not server-adjusted (%v)", cmd.ServerTimestamp, want)
	}
}
