// Package netconfig defines lightweight types and constants shared between
// client and server for network serialization. It must have zero dependencies
// on ebiten or any graphics library so the dedicated server binary stays
// headless.
package netconfig

// SpeedMode selects the movement speed tier for a command.
type SpeedMode int

const (
	SpeedSneak SpeedMode = iota
	SpeedWalk
	SpeedSprint
)

func (m SpeedMode) String() string {
	switch m {
	case SpeedSneak:
		return "sneak"
	case SpeedWalk:
		return "walk"
	case SpeedSprint:
		return "sprint"
	}
	return "unknown"
}

// AuxFlags is a bitset of secondary input state carried alongside movement.
type AuxFlags uint8

const (
	FlagAiming AuxFlags = 1 << iota
	FlagFiring
	FlagInteracting
)

// Has reports whether all bits in flag are set.
func (f AuxFlags) Has(flag AuxFlags) bool { return f&flag == flag }

// Movement speeds in pixels per second, by SpeedMode. These must match the
// server simulation exactly; client prediction replays depend on it.
const (
	SneakSpeed  = 60.0
	WalkSpeed   = 140.0
	SprintSpeed = 220.0

	// Aiming caps effective speed at walk pace regardless of mode.
	AimingMaxSpeed = WalkSpeed
)

// PlayerCollisionSize is the square collision box edge for player entities,
// in pixels. Shared so prediction and the server resolve identically.
const PlayerCollisionSize = 24.0

// Tick and sampling rates.
const (
	// ServerTickRate is the authoritative simulation rate in Hz.
	ServerTickRate = 20

	// InputRateHz is the client input sampling rate. Commands are issued at
	// this fixed cadence, so every command covers the same time slice.
	InputRateHz = 60

	// CommandDt is the fixed integration step for one command, in seconds.
	CommandDt = 1.0 / InputRateHz
)
