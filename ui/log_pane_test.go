package ui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestLogPane(t *testing.T) {
	p := NewLogPane()
	p.SetSize(80, 10)
	assert.Contains(t, ansi.Strip(p.String()), "No events yet")

	p.AddLog("render", "render 1: highlighted 12 bytes")
	p.AddLog("clipboard", "copied 12 bytes")
	assert.Equal(t, 2, p.Len())

	out := ansi.Strip(p.String())
	assert.Contains(t, out, "[render] render 1: highlighted 12 bytes")
	assert.Contains(t, out, "[clipboard] copied 12 bytes")

	p.Clear()
	assert.Equal(t, 0, p.Len())
}

func TestLogPaneDistinct(t *testing.T) {
	p := NewLogPane()
	p.SetSize(80, 10)
	p.ToggleDistinct()

	p.AddLog("verify", "reapply")
	p.AddLog("verify", "reapply")
	p.AddLog("verify", "noop")
	assert.Equal(t, 2, p.Len())

	assert.Contains(t, ansi.Strip(p.String()), "Distinct Mode")
}

func TestLogPaneBounded(t *testing.T) {
	p := NewLogPane()
	for i := 0; i < maxEvents+10; i++ {
		p.AddLog("render", "x")
	}
	assert.Equal(t, maxEvents, p.Len())
}
