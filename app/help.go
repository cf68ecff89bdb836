package app

import (
	"json-modal/keys"
	"json-modal/log"
	"json-modal/ui/overlay"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type helpText interface {
	// toContent returns the help UI content.
	toContent() string
	// mask returns the bit mask for this help text. These are used to track which help screens
	// have been seen in the app state.
	mask() uint32
}

type helpTypeGeneral struct{}

// helpTypeModal is shown the first time the JSON modal is opened.
type helpTypeModal struct{}

// helpLine renders one key and its description, using the key's current binding.
func helpLine(name keys.KeyName) string {
	h := keys.GlobalkeyBindings[name].Help()
	return keyStyle.Width(12).Render(h.Key) + descStyle.Render("- "+h.Desc)
}

func (h helpTypeGeneral) toContent() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("JSON Modal"),
		"",
		"Shows a JSON document with syntax highlighting in a modal.",
		"",
		headerStyle.Render("Page:"),
		helpLine(keys.KeyOpen),
		helpLine(keys.KeyReload),
		"",
		headerStyle.Render("Modal:"),
		helpLine(keys.KeyCopy),
		helpLine(keys.KeyClose),
		helpLine(keys.KeyUp),
		helpLine(keys.KeyDown),
		helpLine(keys.KeyPageUp),
		helpLine(keys.KeyPageDown),
		"",
		headerStyle.Render("Other:"),
		helpLine(keys.KeyHelp),
		helpLine(keys.KeyLog),
		helpLine(keys.KeyQuit),
	)
}

func (h helpTypeModal) toContent() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("JSON Viewer"),
		"",
		descStyle.Render("The document is formatted with two-space indentation."),
		"",
		helpLine(keys.KeyCopy),
		helpLine(keys.KeyClose),
		"",
		dimStyle.Render("Copy puts the formatted JSON on the clipboard, not the colours."),
	)
}

func (h helpTypeGeneral) mask() uint32 {
	return 1
}

func (h helpTypeModal) mask() uint32 {
	return 1 << 1
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#7D56F4"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#36CFC9"))
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00"))
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// showHelpScreen displays the help screen overlay if it hasn't been shown before.
// onDismiss runs when the overlay closes, or right away if it is skipped.
func (m *home) showHelpScreen(helpType helpText, onDismiss func() tea.Cmd) tea.Cmd {
	_, alwaysShow := helpType.(helpTypeGeneral)
	flag := helpType.mask()

	if alwaysShow || (m.appState.GetHelpScreensSeen()&flag) == 0 {
		if err := m.appState.SetHelpScreensSeen(m.appState.GetHelpScreensSeen() | flag); err != nil {
			log.WarningLog.Printf("Failed to save help screen state: %v", err)
		}

		m.textOverlay = overlay.NewTextOverlay(helpType.toContent())
		m.textOverlay.SetSize(m.overlaySize())
		m.afterHelp = onDismiss
		m.state = stateHelp
		return nil
	}

	if onDismiss != nil {
		return onDismiss()
	}
	return nil
}

// handleHelpState handles key events when in help state
func (m *home) handleHelpState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.textOverlay.HandleKeyPress(msg) {
		return m, nil
	}

	m.state = stateDefault
	m.textOverlay = nil
	after := m.afterHelp
	m.afterHelp = nil
	if after != nil {
		return m, after()
	}
	return m, nil
}
