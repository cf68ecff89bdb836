package config

import (
	"encoding/json"
	"fmt"
	"json-modal/log"
	"os"
	"path/filepath"
)

const StateFileName = "state.json"

// AppState is the interface for persisting small bits of UI state.
type AppState interface {
	// GetHelpScreensSeen returns the bitmask of help screens the user has dismissed.
	GetHelpScreensSeen() uint32
	// SetHelpScreensSeen stores the bitmask of seen help screens.
	SetHelpScreensSeen(seen uint32) error
}

// State represents the application state persisted across runs
type State struct {
	// HelpScreensSeen is a bitmask tracking which help screens have been shown
	HelpScreensSeen uint32 `json:"help_screens_seen"`
}

// DefaultState returns the default state
func DefaultState() *State {
	return &State{}
}

// LoadState loads the state from disk. If it cannot be done, we return the default state.
func LoadState() *State {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultState()
	}

	data, err := os.ReadFile(filepath.Join(configDir, StateFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			log.WarningLog.Printf("failed to get state file: %v", err)
		}
		return DefaultState()
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		log.ErrorLog.Printf("failed to parse state file: %v", err)
		return DefaultState()
	}
	return &state
}

// SaveState saves the state to disk
func SaveState(state *State) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	return os.WriteFile(filepath.Join(configDir, StateFileName), data, 0644)
}

func (s *State) GetHelpScreensSeen() uint32 {
	return s.HelpScreensSeen
}

func (s *State) SetHelpScreensSeen(seen uint32) error {
	s.HelpScreensSeen = seen
	return SaveState(s)
}
