package netsync

import (
	"testing"

	"github.com/stormfell/vantage-mp/shared/gamemath"
	"github.com/stormfell/vantage-mp/shared/messages"
	"github.com/stormfell/vantage-mp/shared/netconfig"
)

func testBounds() gamemath.Bounds {
	return gamemath.Bounds{MinX: 0, MinY: 0, MaxX: 800, MaxY: 600}
}

func moveCmd(seq uint64, x, y float64) messages.MoveCommand {
	return messages.MoveCommand{Sequence: seq, MoveX: x, MoveY: y, Speed: netconfig.SpeedWalk}
}

func TestApplyFoldIsReproducible(t *testing.T) {
	cmds := []messages.MoveCommand{
		moveCmd(1, 1, 0),
		moveCmd(2, 1, 1),
		moveCmd(3, 0, -1),
		{Sequence: 4, MoveX: -0.4, MoveY: 0.2, Speed: netconfig.SpeedSprint, Flags: netconfig.FlagAiming, AimAngle: 2.1},
	}

	run := func() PredictedState {
		p := NewPredictor(DefaultConfig(), testBounds())
		p.InitCollision([]Wall{{X: 200, Y: 0, W: 16, H: 600}}, 800, 600)
		st := PredictedState{X: 100, Y: 100}
		for _, c := range cmds {
			st = p.Apply(st, c, netconfig.CommandDt)
		}
		return st
	}

	first := run()
	for i := 0; i < 10; i++ {
		if got := run(); got != first {
			t.Fatalf("run %d diverged: %+v vs %+v", i, got, first)
		}
	}
}

func TestApplyStopsAtWall(t *testing.T) {
	p := NewPredictor(DefaultConfig(), testBounds())
	p.InitCollision([]Wall{{X: 160, Y: 0, W: 16, H: 600}}, 800, 600)

	st := PredictedState{X: 100, Y: 100}
	for i := 0; i < 600; i++ {
		st = p.Apply(st, messages.MoveCommand{MoveX: 1, Speed: netconfig.SpeedSprint}, netconfig.CommandDt)
	}

	maxX := 160 - netconfig.PlayerCollisionSize
	if st.X > maxX+1e-6 {
		t.Fatalf("walked through wall: x = %v, wall face at %v", st.X, maxX)
	}
	if st.X < maxX-2 {
		t.Fatalf("stopped short of wall: x = %v, want near %v", st.X, maxX)
	}
}

func TestApplyClampsToPlayableArea(t *testing.T) {
	p := NewPredictor(DefaultConfig(), testBounds())
	st := PredictedState{X: 5, Y: 5}
	for i := 0; i < 300; i++ {
		st = p.Apply(st, messages.MoveCommand{MoveX: -1, MoveY: -1, Speed: netconfig.SpeedSprint}, netconfig.CommandDt)
	}
	if st.X != 0 || st.Y != 0 {
		t.Fatalf("expected clamp at origin, got (%v, %v)", st.X, st.Y)
	}
}

func TestPredictFrameAccumulates(t *testing.T) {
	p := NewPredictor(DefaultConfig(), testBounds())
	p.Reset(PredictedState{X: 10, Y: 10})

	first := p.PredictFrame(moveCmd(1, 1, 0))
	second := p.PredictFrame(moveCmd(2, 1, 0))

	if second.X <= first.X {
		t.Fatalf("second frame did not advance: %v then %v", first.X, second.X)
	}
	if p.State() != second {
		t.Fatalf("State() = %+v, want %+v", p.State(), second)
	}
}

func TestApplySetsFacingFromAim(t *testing.T) {
	p := NewPredictor(DefaultConfig(), testBounds())
	st := p.Apply(PredictedState{}, messages.MoveCommand{AimAngle: 1.5}, netconfig.CommandDt)
	if st.Facing != 1.5 {
		t.Fatalf("facing = %v, want 1.5", st.Facing)
	}
}
