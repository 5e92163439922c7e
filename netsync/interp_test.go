package netsync

import (
	"math"
	"testing"
)

func testInterp() *RemoteInterpolator {
	cfg := DefaultConfig()
	cfg.InterpolationDelayMs = 100
	cfg.RemoteTimeoutMs = 1000
	return NewRemoteInterpolator(cfg)
}

func TestRenderBoundaryConditions(t *testing.T) {
	ri := testInterp()
	ri.OnSnapshot(7, Snapshot{X: 10, Y: 20, Facing: 0}, 1000)
	ri.OnSnapshot(7, Snapshot{X: 30, Y: 40, Facing: 1}, 1050)

	// Render time == previous receipt (local 1100 - 100 delay = 1000).
	x, y, _, ok := ri.Render(7, 1100)
	if !ok {
		t.Fatal("entity unknown")
	}
	if x != 10 || y != 20 {
		t.Fatalf("at prev receipt: (%v, %v), want (10, 20)", x, y)
	}

	// Render time == latest receipt.
	x, y, facing, _ := ri.Render(7, 1150)
	if x != 30 || y != 40 || facing != 1 {
		t.Fatalf("at latest receipt: (%v, %v, %v), want (30, 40, 1)", x, y, facing)
	}

	// Midpoint.
	x, y, _, _ = ri.Render(7, 1125)
	if x != 20 || y != 30 {
		t.Fatalf("at midpoint: (%v, %v), want (20, 30)", x, y)
	}
}

func TestRenderHoldsAtLatestOnLoss(t *testing.T) {
	ri := testInterp()
	ri.OnSnapshot(3, Snapshot{X: 1, Y: 1}, 1000)
	ri.OnSnapshot(3, Snapshot{X: 5, Y: 5}, 1050)

	// Long after the last snapshot: no extrapolation, just the latest value.
	x, y, _, _ := ri.Render(3, 1950)
	if x != 5 || y != 5 {
		t.Fatalf("expected hold at (5, 5), got (%v, %v)", x, y)
	}
}

func TestRenderSingleSnapshotHolds(t *testing.T) {
	ri := testInterp()
	ri.OnSnapshot(9, Snapshot{X: 42, Y: 7, Facing: 2}, 500)

	x, y, facing, ok := ri.Render(9, 510)
	if !ok || x != 42 || y != 7 || facing != 2 {
		t.Fatalf("single snapshot render = (%v, %v, %v, %v)", x, y, facing, ok)
	}
}

func TestRenderUnknownEntity(t *testing.T) {
	ri := testInterp()
	if _, _, _, ok := ri.Render(99, 0); ok {
		t.Fatal("unknown entity reported ok")
	}
}

func TestFacingInterpolatesShortestPath(t *testing.T) {
	ri := testInterp()
	ri.OnSnapshot(1, Snapshot{Facing: math.Pi - 0.1}, 1000)
	ri.OnSnapshot(1, Snapshot{Facing: -math.Pi + 0.1}, 1100)

	_, _, facing, _ := ri.Render(1, 1150) // midpoint
	diff := math.Abs(math.Mod(facing, 2*math.Pi)) - math.Pi
	if math.Abs(diff) > 1e-9 {
		t.Fatalf("facing crossed the seam the long way: %v", facing)
	}
}

func TestEvictRemovesTimedOutEntities(t *testing.T) {
	ri := testInterp()
	ri.OnSnapshot(1, Snapshot{}, 1000)
	ri.OnSnapshot(2, Snapshot{}, 2500)

	gone := ri.Evict(2600)
	if len(gone) != 1 || gone[0] != 1 {
		t.Fatalf("evicted %v, want [1]", gone)
	}
	if ri.Tracked() != 1 {
		t.Fatalf("tracked = %d, want 1", ri.Tracked())
	}
	if _, _, _, ok := ri.Render(1, 2600); ok {
		t.Fatal("evicted entity still renders")
	}
}

func TestOnSnapshotShiftsBuffer(t *testing.T) {
	ri := testInterp()
	ri.OnSnapshot(4, Snapshot{X: 1}, 100)
	ri.OnSnapshot(4, Snapshot{X: 2}, 150)
	ri.OnSnapshot(4, Snapshot{X: 3}, 200)

	// prev must now be the X=2 snapshot: render at its receipt time.
	x, _, _, _ := ri.Render(4, 250) // 250 - 100 delay = 150
	if x != 2 {
		t.Fatalf("prev snapshot not shifted: x = %v, want 2", x)
	}
}
