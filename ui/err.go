package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#FF0000",
	Dark:  "#FF0000",
})

var infoStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#1a1a1a",
	Dark:  "#dddddd",
})

// ErrBox is a one-line status area under the page.
type ErrBox struct {
	height, width int
	err           error
	info          string
}

func NewErrBox() *ErrBox {
	return &ErrBox{}
}

func (e *ErrBox) SetError(err error) {
	e.err = err
	e.info = ""
}

// SetInfo shows a non-error status message.
func (e *ErrBox) SetInfo(msg string) {
	e.info = msg
	e.err = nil
}

func (e *ErrBox) Clear() {
	e.err = nil
	e.info = ""
}

func (e *ErrBox) SetSize(width, height int) {
	e.width = width
	e.height = height
}

func (e *ErrBox) String() string {
	var text string
	style := infoStyle
	if e.err != nil {
		text = e.err.Error()
		style = errStyle
	} else {
		text = e.info
	}

	// Keep it on one line.
	text = strings.ReplaceAll(text, "\n", " ")
	if e.width > 3 && lipgloss.Width(text) > e.width {
		runes := []rune(text)
		if len(runes) > e.width-3 {
			text = string(runes[:e.width-3]) + "..."
		}
	}
	return lipgloss.Place(e.width, e.height, lipgloss.Center, lipgloss.Center, style.Render(text))
}
