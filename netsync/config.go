package netsync

import "time"

// Config carries the tuning constants for the sync core. The right values
// depend on game feel and the target latency profile, so they are
// configuration rather than hard-coded (config.Net provides the defaults and
// persisted overrides).
type Config struct {
	// CommandDt is the fixed integration step covered by one command, seconds.
	CommandDt float64

	// SnapThreshold is the rendered-vs-predicted distance in pixels beyond
	// which the corrector snaps instead of blending.
	SnapThreshold float64

	// CorrectionRate controls how fast sub-threshold error is closed, in
	// fraction-of-error per second.
	CorrectionRate float64

	// Deadband is the error magnitude in pixels below which the corrector
	// does nothing, so float noise never causes perpetual micro-jitter.
	Deadband float64

	// InterpolationDelayMs renders remote entities this far in the past so a
	// slightly late snapshot still has a pair to interpolate between.
	InterpolationDelayMs float64

	// RemoteTimeoutMs evicts a remote entity not seen for this long.
	RemoteTimeoutMs float64

	// RetentionMs bounds the input buffer under sustained disconnection:
	// commands older than this are dropped unacknowledged.
	RetentionMs float64

	// SyncInterval is how often the clock re-probes the server.
	SyncInterval time.Duration

	// ProbeTimeout is how long a clock probe may remain unanswered.
	ProbeTimeout time.Duration
}

// DefaultConfig returns tuning suitable for a ~20 Hz server tick and
// residential latency.
func DefaultConfig() Config {
	return Config{
		CommandDt:            1.0 / 60.0,
		SnapThreshold:        48,
		CorrectionRate:       12,
		Deadband:             0.25,
		InterpolationDelayMs: 75, // a bit over one 50ms server tick
		RemoteTimeoutMs:      3000,
		RetentionMs:          4000,
		SyncInterval:         30 * time.Second,
		ProbeTimeout:         2 * time.Second,
	}
}
