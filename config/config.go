package config

import (
	"image/color"
	"time"

	"github.com/stormfell/vantage-mp/netsync"
	"github.com/yohamta/donburi/ecs"
)

// Default is the render layer everything draws on.
const Default ecs.LayerID = 0

// Version is sent in the join handshake; the server rejects mismatches.
const Version = "0.4.1"

// GameConfig contains window and presentation configuration
type GameConfig struct {
	Width  int
	Height int
	Title  string
}

// NetCodeConfig contains the sync-core tuning constants. They are game-feel
// values, not derivable from first principles, so they live in config and
// can be overridden from saved settings.
type NetCodeConfig struct {
	SnapThreshold        float64 // px; beyond this the corrector snaps
	CorrectionRate       float64 // fraction of error closed per second
	Deadband             float64 // px; error below this is ignored
	InterpolationDelayMs float64 // remote entities render this far in the past
	RemoteTimeoutMs      float64 // evict remotes silent for this long
	RetentionMs          float64 // pending-command retention horizon
	SyncIntervalSec      float64 // clock re-probe cadence
	ResendIntervalMs     float64 // unchanged input resend cadence
	MaxCommandRate       float64 // hard cap on outgoing commands per second
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	FollowSmoothing float64
}

// HUDConfig contains network HUD presentation
type HUDConfig struct {
	BannerFadeSec float64
}

var (
	C      = GameConfig{Width: 800, Height: 600, Title: "Vantage"}
	Camera = CameraConfig{FollowSmoothing: 0.12}
	HUD    = HUDConfig{BannerFadeSec: 1.5}

	Net = NetCodeConfig{
		SnapThreshold:        48,
		CorrectionRate:       12,
		Deadband:             0.25,
		InterpolationDelayMs: 75,
		RemoteTimeoutMs:      3000,
		RetentionMs:          4000,
		SyncIntervalSec:      30,
		ResendIntervalMs:     50,
		MaxCommandRate:       120,
	}
)

// SyncConfig converts the tuning block into the netsync package's config.
func (n NetCodeConfig) SyncConfig() netsync.Config {
	cfg := netsync.DefaultConfig()
	cfg.SnapThreshold = n.SnapThreshold
	cfg.CorrectionRate = n.CorrectionRate
	cfg.Deadband = n.Deadband
	cfg.InterpolationDelayMs = n.InterpolationDelayMs
	cfg.RemoteTimeoutMs = n.RemoteTimeoutMs
	cfg.RetentionMs = n.RetentionMs
	cfg.SyncInterval = time.Duration(n.SyncIntervalSec * float64(time.Second))
	return cfg
}

// Colors
var (
	White       = color.RGBA{255, 255, 255, 255}
	Black       = color.RGBA{0, 0, 0, 255}
	LightGreen  = color.RGBA{144, 238, 144, 255}
	BrightGreen = color.RGBA{0, 255, 128, 255}
	WallGray    = color.RGBA{70, 74, 86, 255}
	FloorGray   = color.RGBA{32, 34, 40, 255}
	AimLine     = color.RGBA{255, 255, 255, 90}
	StatusAmber = color.RGBA{255, 200, 100, 255}
)

// PlayerColors are assigned to remote players round-robin.
var PlayerColors = []color.RGBA{
	{235, 94, 94, 255},
	{94, 157, 235, 255},
	{235, 201, 94, 255},
	{178, 94, 235, 255},
	{94, 235, 217, 255},
}
