// Package settings persists player-facing toggles between sessions.
package settings

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

const settingsKey = "settings"

// Saved represents the settings data stored on disk
type Saved struct {
	PredictionEnabled     bool   `json:"predictionEnabled"`
	ReconciliationEnabled bool   `json:"reconciliationEnabled"`
	ShowServerGhost       bool   `json:"showServerGhost"`
	Fullscreen            bool   `json:"fullscreen"`
	PlayerName            string `json:"playerName"`
	ServerAddress         string `json:"serverAddress"`
}

// Defaults returns the settings used when nothing has been saved yet.
func Defaults() Saved {
	return Saved{
		PredictionEnabled:     true,
		ReconciliationEnabled: true,
		ShowServerGhost:       true,
	}
}

// Store is the subset of *gdata.Manager used for persistence.
type Store interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Open initializes the gdata manager for settings storage
func Open(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}
	return m, nil
}

// Load reads settings from store. A nil store or missing item yields
// Defaults with no error.
func Load(store Store) (Saved, error) {
	s := Defaults()
	if store == nil {
		return s, nil
	}

	data, err := store.LoadItem(settingsKey)
	if err != nil {
		return s, fmt.Errorf("load settings: %w", err)
	}
	if data == nil {
		return s, nil
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// Save writes settings to store. A nil store is a no-op.
func Save(store Store, s Saved) error {
	if store == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := store.SaveItem(settingsKey, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
