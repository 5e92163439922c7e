package gamemath

import (
	"math"
	"testing"

	"github.com/stormfell/vantage-mp/shared/netconfig"
)

func TestStepIsDeterministic(t *testing.T) {
	bounds := Bounds{MinX: 0, MinY: 0, MaxX: 1000, MaxY: 1000}
	base := MoveState{X: 100, Y: 200}

	run := func() MoveState {
		st := base
		for i := 0; i < 500; i++ {
			st = Step(st, 0.7, -0.3, netconfig.SpeedSprint, netconfig.FlagAiming, 1.25, netconfig.CommandDt, bounds)
		}
		return st
	}

	first := run()
	second := run()
	if first != second {
		t.Fatalf("step not reproducible: first %+v, second %+v", first, second)
	}
}

func TestStepClampsToBounds(t *testing.T) {
	bounds := Bounds{MinX: 0, MinY: 0, MaxX: 50, MaxY: 50}
	st := MoveState{X: 49, Y: 1}
	for i := 0; i < 120; i++ {
		st = Step(st, 1, -1, netconfig.SpeedSprint, 0, 0, netconfig.CommandDt, bounds)
	}
	if st.X != 50 || st.Y != 0 {
		t.Fatalf("expected clamp to corner (50, 0), got (%v, %v)", st.X, st.Y)
	}
}

func TestStepAimingCapsSpeed(t *testing.T) {
	bounds := Bounds{MaxX: 10000, MaxY: 10000}
	st := Step(MoveState{}, 1, 0, netconfig.SpeedSprint, netconfig.FlagAiming, 0, 1, bounds)
	if st.VelX != netconfig.AimingMaxSpeed {
		t.Fatalf("expected aiming-capped velocity %v, got %v", netconfig.AimingMaxSpeed, st.VelX)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		inX, inY     float64
		wantMag      float64
	}{
		{"diagonal full tilt", 1, 1, 1},
		{"half tilt preserved", 0.5, 0, 0.5},
		{"zero stays zero", 0, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := Normalize(tc.inX, tc.inY)
			mag := math.Hypot(x, y)
			if math.Abs(mag-tc.wantMag) > 1e-9 {
				t.Fatalf("magnitude %v, want %v", mag, tc.wantMag)
			}
		})
	}
}

func TestAngleLerpShortestPath(t *testing.T) {
	// Crossing the pi/-pi seam must go the short way.
	from := math.Pi - 0.1
	to := -math.Pi + 0.1
	got := AngleLerp(from, to, 0.5)
	want := math.Pi
	if math.Abs(math.Mod(got-want, 2*math.Pi)) > 1e-9 {
		t.Fatalf("expected midpoint at seam %v, got %v", want, got)
	}

	if got := AngleLerp(0, 1, 0); got != 0 {
		t.Fatalf("t=0 should return from, got %v", got)
	}
	if got := AngleLerp(0, 1, 1); got != 1 {
		t.Fatalf("t=1 should return to, got %v", got)
	}
}
