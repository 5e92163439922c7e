package messages

import "github.com/stormfell/vantage-mp/shared/netconfig"

// MoveCommand is sent from client to server at the input sampling rate with
// the player's movement intent. The same struct is retained client-side in
// the input buffer until the server acknowledges it, so it is also the unit
// of prediction replay. Immutable once created.
type MoveCommand struct {
	Sequence        uint64             // Incrementing ID for reconciliation
	ServerTimestamp float64            // Server-adjusted issue time (Unix ms)
	MoveX, MoveY    float64            // Normalized intent, components in [-1, 1]
	Speed           netconfig.SpeedMode
	Flags           netconfig.AuxFlags
	AimAngle        float64            // Pointer direction in radians
}

// Moving reports whether the command carries any movement intent.
func (c MoveCommand) Moving() bool {
	return c.MoveX != 0 || c.MoveY != 0
}
