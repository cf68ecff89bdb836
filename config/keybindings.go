package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const KeyBindingsFileName = "keybindings.json"

// KeyBinding represents a custom keybinding configuration
type KeyBinding struct {
	Command string   `json:"command"` // The command name (e.g., "copy", "close")
	Keys    []string `json:"keys"`    // The key combinations (e.g., ["c", "y"])
	Help    string   `json:"help"`    // Help text to display
}

// KeyBindingsConfig stores all custom keybindings
type KeyBindingsConfig struct {
	Version  string       `json:"version"`  // Config version for future migrations
	Bindings []KeyBinding `json:"bindings"` // List of custom keybindings
}

// DefaultKeyBindings returns the default keybindings configuration
func DefaultKeyBindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{
		Version: "1.0",
		Bindings: []KeyBinding{
			// Navigation
			{Command: "up", Keys: []string{"up", "k"}, Help: "↑/k"},
			{Command: "down", Keys: []string{"down", "j"}, Help: "↓/j"},
			{Command: "page_up", Keys: []string{"pgup"}, Help: "pgup"},
			{Command: "page_down", Keys: []string{"pgdown"}, Help: "pgdn"},
			{Command: "home", Keys: []string{"home", "g", "ctrl+home"}, Help: "home/g"},
			{Command: "end", Keys: []string{"end", "G", "ctrl+end"}, Help: "end/G"},

			// Modal
			{Command: "open", Keys: []string{"enter", "o"}, Help: "↵/o"},
			{Command: "copy", Keys: []string{"c", "y"}, Help: "c/y"},
			{Command: "close", Keys: []string{"esc", "x"}, Help: "esc/x"},
			{Command: "reload", Keys: []string{"r"}, Help: "r"},

			// Other
			{Command: "help", Keys: []string{"?"}, Help: "?"},
			{Command: "log", Keys: []string{"l"}, Help: "l"},
			{Command: "quit", Keys: []string{"q", "ctrl+c"}, Help: "q"},
		},
	}
}

func keyBindingsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, KeyBindingsFileName), nil
}

// LoadKeyBindings loads keybindings from the config file
func LoadKeyBindings() (*KeyBindingsConfig, error) {
	configPath, err := keyBindingsPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultKeyBindings(), nil
		}
		return nil, fmt.Errorf("failed to read keybindings: %w", err)
	}

	var config KeyBindingsConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse keybindings: %w", err)
	}

	// If no bindings are defined, use defaults
	if len(config.Bindings) == 0 {
		return DefaultKeyBindings(), nil
	}

	return &config, nil
}

// Save saves keybindings to the config file
func (k *KeyBindingsConfig) Save() error {
	configPath, err := keyBindingsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(k, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ValidateBindings checks for conflicts in keybindings
func (k *KeyBindingsConfig) ValidateBindings() map[string][]string {
	conflicts := make(map[string][]string)
	keyToCommands := make(map[string][]string)

	for _, binding := range k.Bindings {
		for _, key := range binding.Keys {
			keyToCommands[key] = append(keyToCommands[key], binding.Command)
		}
	}

	for key, commands := range keyToCommands {
		if len(commands) > 1 {
			conflicts[key] = commands
		}
	}

	return conflicts
}

// Reset overwrites the config and keybindings files with their defaults.
func Reset() error {
	if err := SaveConfig(DefaultConfig()); err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}
	if err := DefaultKeyBindings().Save(); err != nil {
		return fmt.Errorf("failed to reset keybindings: %w", err)
	}
	return nil
}
