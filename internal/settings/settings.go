// Package settings persists the user-adjustable speech and display
// preferences in the key-value store.
package settings

import (
	"encoding/json"
	"errors"
	"log"

	"verblearn/internal/models"
	"verblearn/internal/storage"
)

// Service loads and saves settings. Saved values are merged over the
// defaults so older records missing newer fields stay usable.
type Service struct {
	kv storage.Store
}

func NewService(kv storage.Store) *Service {
	return &Service{kv: kv}
}

// Load returns the saved settings merged over the defaults. A missing or
// corrupt record yields the defaults.
func (s *Service) Load() models.Settings {
	defaults := models.DefaultSettings()

	raw, err := s.kv.Get(storage.KeySettings)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Failed to load settings: %v", err)
		}
		return defaults
	}

	merged := defaults
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		log.Printf("Ignoring corrupt settings record: %v", err)
		return defaults
	}
	return merged
}

// Save persists the settings.
func (s *Service) Save(settings models.Settings) error {
	blob, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.kv.Set(storage.KeySettings, string(blob))
}

// Reset drops the saved record, restoring the defaults on next load.
func (s *Service) Reset() error {
	return s.kv.Remove(storage.KeySettings)
}
