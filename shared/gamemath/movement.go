// Package gamemath holds the deterministic movement math shared by the
// authoritative server and client-side prediction. Nothing here may read the
// wall clock or any global state: reconciliation replays depend on Step being
// reproducible bit for bit given the same inputs.
package gamemath

import (
	"math"

	"github.com/stormfell/vantage-mp/shared/netconfig"
)

// MoveState is the kinematic state advanced by Step.
type MoveState struct {
	X, Y       float64
	VelX, VelY float64
	Facing     float64 // Radians
}

// Bounds is the playable area rectangle. Step clamps positions into it.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Clamp returns (x, y) limited to the bounds rectangle.
func (b Bounds) Clamp(x, y float64) (float64, float64) {
	if x < b.MinX {
		x = b.MinX
	} else if x > b.MaxX {
		x = b.MaxX
	}
	if y < b.MinY {
		y = b.MinY
	} else if y > b.MaxY {
		y = b.MaxY
	}
	return x, y
}

// SpeedFor returns the movement speed in px/s for a speed mode, applying the
// aiming cap.
func SpeedFor(mode netconfig.SpeedMode, flags netconfig.AuxFlags) float64 {
	var speed float64
	switch mode {
	case netconfig.SpeedSneak:
		speed = netconfig.SneakSpeed
	case netconfig.SpeedSprint:
		speed = netconfig.SprintSpeed
	default:
		speed = netconfig.WalkSpeed
	}
	if flags.Has(netconfig.FlagAiming) && speed > netconfig.AimingMaxSpeed {
		speed = netconfig.AimingMaxSpeed
	}
	return speed
}

// Normalize scales (x, y) to unit length. Zero vectors stay zero, and inputs
// already at or below unit length are only shortened, never stretched, so a
// half-tilted analog stick keeps its magnitude.
func Normalize(x, y float64) (float64, float64) {
	mag := math.Hypot(x, y)
	if mag <= 1.0 {
		return x, y
	}
	return x / mag, y / mag
}

// Step advances a movement state by one fixed command step. It is the single
// integration rule for player movement; the server runs it per processed
// command and the client runs it for prediction and replay.
func Step(st MoveState, moveX, moveY float64, mode netconfig.SpeedMode, flags netconfig.AuxFlags, aim float64, dt float64, bounds Bounds) MoveState {
	moveX, moveY = Normalize(moveX, moveY)
	speed := SpeedFor(mode, flags)

	st.VelX = moveX * speed
	st.VelY = moveY * speed
	st.X += st.VelX * dt
	st.Y += st.VelY * dt
	st.X, st.Y = bounds.Clamp(st.X, st.Y)
	st.Facing = aim
	return st
}

// AngleLerp interpolates between two angles along the shortest arc,
// wrap-aware. t is clamped to [0, 1].
func AngleLerp(from, to, t float64) float64 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	diff := math.Mod(to-from, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return from + diff*t
}

// Lerp linearly interpolates between a and b. t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a + (b-a)*t
}
