package overlay

import (
	"json-modal/keys"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextOverlay shows read-only text, such as help, and closes on any key that does not scroll.
type TextOverlay struct {
	// Whether the overlay has been dismissed
	Dismissed bool
	// Callback function to be called when the overlay is dismissed
	OnDismiss func()

	content  string
	viewport viewport.Model
	width    int
	height   int
	// Whether the content is taller than the overlay
	needsScrolling bool
}

// NewTextOverlay creates a new text overlay with the given content
func NewTextOverlay(content string) *TextOverlay {
	t := &TextOverlay{
		content:  content,
		viewport: viewport.New(0, 0),
	}
	t.viewport.SetContent(content)
	return t
}

// SetContent replaces the text, keeping the scroll position where possible.
func (t *TextOverlay) SetContent(content string) {
	t.content = content
	t.viewport.SetContent(content)
	t.updateViewport()
}

// HandleKeyPress processes a key press and updates the state
// Returns true if the overlay should be closed
func (t *TextOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	if t.needsScrolling {
		if name, ok := keys.GetKeyName(msg.String()); ok {
			switch name {
			case keys.KeyUp:
				t.viewport.LineUp(1)
				return false
			case keys.KeyDown:
				t.viewport.LineDown(1)
				return false
			case keys.KeyPageUp:
				t.viewport.HalfViewUp()
				return false
			case keys.KeyPageDown:
				t.viewport.HalfViewDown()
				return false
			case keys.KeyHome:
				t.viewport.GotoTop()
				return false
			case keys.KeyEnd:
				t.viewport.GotoBottom()
				return false
			}
		}
	}

	t.Dismissed = true
	if t.OnDismiss != nil {
		t.OnDismiss()
	}
	return true
}

// Render renders the text overlay
func (t *TextOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	content := t.content
	if t.needsScrolling {
		content = t.viewport.View()
		scrollInfo := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("↑/↓ to scroll • Press any other key to close")
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", scrollInfo)
	}

	if t.width > 0 {
		style = style.Width(t.width)
	}
	return style.Render(content)
}

// SetSize updates the dimensions of the overlay
func (t *TextOverlay) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.updateViewport()
}

// updateViewport sizes the viewport and decides whether scrolling is needed
func (t *TextOverlay) updateViewport() {
	if t.height == 0 || t.width == 0 {
		return
	}

	// Vertical overhead: 2 (border) + 2 (padding) + 2 (scroll info)
	viewportHeight := max(t.height-6, 1)
	viewportWidth := max(t.width-6, 1)

	t.viewport.Width = viewportWidth
	t.viewport.Height = viewportHeight
	t.needsScrolling = lipgloss.Height(t.content) > viewportHeight
}
