package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := LoadConfig()
	assert.Equal(t, DefaultConfig(), cfg)

	_, err := os.Stat(filepath.Join(home, ".json-modal", ConfigFileName))
	assert.NoError(t, err)
}

func TestLoadConfigMergesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".json-modal")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"highlight_timeout_ms": -5, "sample_file": "x.json"}`), 0644))

	cfg := LoadConfig()
	assert.Equal(t, "github-dark", cfg.Theme)
	assert.Equal(t, "terminal", cfg.DefaultFormat)
	assert.Equal(t, 0, cfg.HighlightTimeoutMs)
	assert.Equal(t, "x.json", cfg.SampleFile)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".json-modal")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{`), 0644))

	assert.Equal(t, DefaultConfig(), LoadConfig())
}

func TestStateRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	state := LoadState()
	assert.Equal(t, uint32(0), state.GetHelpScreensSeen())
	require.NoError(t, state.SetHelpScreensSeen(1))

	assert.Equal(t, uint32(1), LoadState().GetHelpScreensSeen())
}

func TestKeyBindings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	kb, err := LoadKeyBindings()
	require.NoError(t, err)
	assert.Equal(t, DefaultKeyBindings(), kb)
	assert.Empty(t, kb.ValidateBindings())

	for i := range kb.Bindings {
		if kb.Bindings[i].Command == "copy" {
			kb.Bindings[i].Keys = []string{"p", "o"}
		}
	}
	require.NoError(t, kb.Save())

	loaded, err := LoadKeyBindings()
	require.NoError(t, err)
	assert.Equal(t, kb, loaded)
	assert.Equal(t, map[string][]string{"o": {"open", "copy"}}, loaded.ValidateBindings())
}

func TestReset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := LoadConfig()
	cfg.Theme = "monokai"
	require.NoError(t, SaveConfig(cfg))
	custom := &KeyBindingsConfig{Version: "1.0", Bindings: []KeyBinding{{Command: "copy", Keys: []string{"p"}, Help: "p"}}}
	require.NoError(t, custom.Save())

	require.NoError(t, Reset())

	assert.Equal(t, DefaultConfig(), LoadConfig())
	kb, err := LoadKeyBindings()
	require.NoError(t, err)
	assert.Equal(t, DefaultKeyBindings(), kb)
}
