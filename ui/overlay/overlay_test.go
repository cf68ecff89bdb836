package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPlaceOverlayCentered(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)
	fg := "ab\ncd"

	out := PlaceOverlay(0, 0, fg, bg, false, true)
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 5)
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "....ab....", lines[1])
	assert.Equal(t, "....cd....", lines[2])
	assert.Equal(t, "..........", lines[3])
	for _, l := range lines {
		assert.Equal(t, 10, ansi.PrintableRuneWidth(l))
	}
}

func TestPlaceOverlayPosition(t *testing.T) {
	bg := "1234567890\n1234567890"
	out := PlaceOverlay(2, 1, "XY", bg, false, false)
	assert.Equal(t, "1234567890\n12XY567890", out)
}

func TestPlaceOverlayClamped(t *testing.T) {
	bg := "1234\n1234"
	out := PlaceOverlay(10, 10, "X", bg, false, false)
	assert.Equal(t, "1234\n123X", out)
}

func TestPlaceOverlayLargerThanBackground(t *testing.T) {
	assert.Equal(t, "big\nbig", PlaceOverlay(0, 0, "big\nbig", "s", false, true))
}

func TestPlaceOverlayShadow(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat("..........\n", 6), "\n")
	out := PlaceOverlay(0, 0, "ab\ncd", bg, true, false)
	lines := strings.Split(out, "\n")

	assert.Equal(t, 6, len(lines))
	for _, l := range lines {
		assert.Equal(t, 10, ansi.PrintableRuneWidth(l))
	}
	assert.Contains(t, lines[1], shadeChar)
	assert.Contains(t, lines[2], shadeChar)
}

func TestCutLeft(t *testing.T) {
	assert.Equal(t, "cdef", cutLeft("abcdef", 2))
	assert.Equal(t, "\x1b[31mcd\x1b[0m", cutLeft("\x1b[31mabcd\x1b[0m", 2))
	assert.Equal(t, "", cutLeft("ab", 5))
}

func TestTextOverlay(t *testing.T) {
	dismissed := false
	o := NewTextOverlay("line 1\nline 2")
	o.OnDismiss = func() { dismissed = true }
	o.SetSize(40, 20)

	assert.Contains(t, o.Render(), "line 2")
	assert.True(t, o.HandleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}))
	assert.True(t, o.Dismissed)
	assert.True(t, dismissed)
}

func TestTextOverlayScrolls(t *testing.T) {
	o := NewTextOverlay(strings.Repeat("line\n", 50))
	o.SetSize(40, 10)

	assert.False(t, o.HandleKeyPress(tea.KeyMsg{Type: tea.KeyDown}))
	assert.False(t, o.Dismissed)
	assert.True(t, o.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEsc}))
}
