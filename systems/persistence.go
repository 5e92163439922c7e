package systems

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
	"github.com/stormfell/vantage-mp/config"
)

// SavedSettings is the settings payload stored on disk.
type SavedSettings struct {
	PlayerName           string  `json:"playerName"`
	ServerAddress        string  `json:"serverAddress"`
	SnapThreshold        float64 `json:"snapThreshold"`
	CorrectionRate       float64 `json:"correctionRate"`
	InterpolationDelayMs float64 `json:"interpolationDelayMs"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage.
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "vantage",
	})
	if err != nil {
		log.Printf("[persistence] could not initialize storage: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads the saved settings from disk. It returns nil when no
// settings have been saved yet.
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("[persistence] could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("[persistence] could not parse saved settings: %v", err)
		return nil, err
	}
	return &settings, nil
}

// SaveSettings writes the settings payload to disk.
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("[persistence] could not serialize settings: %v", err)
		return err
	}
	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("[persistence] could not save settings: %v", err)
		return err
	}
	return nil
}

// SaveCurrentSettings snapshots the live config settings to disk.
func SaveCurrentSettings() {
	s := config.CurrentSettings
	_ = SaveSettings(&SavedSettings{
		PlayerName:           s.PlayerName,
		ServerAddress:        s.ServerAddress,
		SnapThreshold:        s.SnapThreshold,
		CorrectionRate:       s.CorrectionRate,
		InterpolationDelayMs: s.InterpolationDelayMs,
	})
}

// ApplySavedSettings copies loaded settings into the live config. Called
// during startup before any scene is created.
func ApplySavedSettings(saved *SavedSettings) {
	if saved == nil {
		return
	}
	s := config.Settings{
		PlayerName:           saved.PlayerName,
		ServerAddress:        saved.ServerAddress,
		SnapThreshold:        saved.SnapThreshold,
		CorrectionRate:       saved.CorrectionRate,
		InterpolationDelayMs: saved.InterpolationDelayMs,
	}
	if s.PlayerName == "" {
		s.PlayerName = config.CurrentSettings.PlayerName
	}
	if s.ServerAddress == "" {
		s.ServerAddress = config.CurrentSettings.ServerAddress
	}
	config.ApplySettings(s)
}
