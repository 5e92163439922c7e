package config

// Settings holds the player-editable values persisted between runs.
type Settings struct {
	PlayerName    string
	ServerAddress string

	// Netcode overrides; zero means "use the defaults in Net".
	SnapThreshold        float64
	CorrectionRate       float64
	InterpolationDelayMs float64
}

// CurrentSettings is the live settings instance; systems/persistence loads
// and saves it.
var CurrentSettings = Settings{
	PlayerName:    "player",
	ServerAddress: "localhost:7373",
}

// ApplySettings copies saved values into the live config.
func ApplySettings(s Settings) {
	CurrentSettings = s
	if s.SnapThreshold > 0 {
		Net.SnapThreshold = s.SnapThreshold
	}
	if s.CorrectionRate > 0 {
		Net.CorrectionRate = s.CorrectionRate
	}
	if s.InterpolationDelayMs > 0 {
		Net.InterpolationDelayMs = s.InterpolationDelayMs
	}
}
