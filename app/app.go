package app

import (
	"context"
	"fmt"

	"json-modal/config"
	"json-modal/highlight"
	"json-modal/keys"
	"json-modal/log"
	"json-modal/ui"
	"json-modal/ui/overlay"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config, src Source) error {
	p := tea.NewProgram(
		newHome(ctx, cfg, config.LoadState(), src, overlay.SystemClipboard),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse scroll
	)
	_, err := p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// stateModal is the state when the JSON modal is open.
	stateModal
	// stateHelp is the state when a help screen is displayed.
	stateHelp
	// stateLog is the state when the event log is displayed.
	stateLog
)

// loadedMsg carries the result of loading the source.
type loadedMsg struct {
	input any
	err   error
}

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	appConfig *config.Config
	// appState stores persistent application state like seen help screens
	appState config.AppState
	// source supplies the JSON shown in the modal
	source Source

	// -- State --

	state state
	// afterHelp runs when the current help overlay is dismissed
	afterHelp func() tea.Cmd

	windowWidth  int
	windowHeight int

	// -- UI Components --

	modal       *overlay.JSONModal
	textOverlay *overlay.TextOverlay
	logPane     *ui.LogPane
	errBox      *ui.ErrBox
}

func newHome(ctx context.Context, cfg *config.Config, appState config.AppState, src Source, cb overlay.Clipboard) *home {
	if err := keys.InitializeCustomKeyBindings(); err != nil {
		// Log error but continue with defaults
		log.ErrorLog.Printf("Failed to load custom keybindings: %v", err)
	}

	logPane := ui.NewLogPane()
	log.SetEventLogger(NewEventLoggerAdapter(logPane))

	orchestrator := NewOrchestrator(cfg, highlight.FormatTerminal)
	return &home{
		ctx:       ctx,
		appConfig: cfg,
		appState:  appState,
		source:    src,
		state:     stateDefault,
		modal:     overlay.NewJSONModal(ctx, orchestrator, overlay.WithClipboard(cb), overlay.WithTitle(src.Name())),
		logPane:   logPane,
		errBox:    ui.NewErrBox(),
	}
}

// overlaySize returns the size used for overlays: 80% of the window.
func (m *home) overlaySize() (int, int) {
	return int(float32(m.windowWidth) * 0.8), int(float32(m.windowHeight) * 0.8)
}

// updateHandleWindowSizeEvent sets the sizes of the components.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.windowWidth = msg.Width
	m.windowHeight = msg.Height

	width, height := m.overlaySize()
	m.modal.SetSize(width, height)
	if m.textOverlay != nil {
		m.textOverlay.SetSize(width, height)
	}
	m.logPane.SetSize(max(width-4, 1), max(height-4, 1))
	m.errBox.SetSize(int(float32(msg.Width)*0.9), 1)
}

func (m *home) Init() tea.Cmd {
	if m.appState.GetHelpScreensSeen()&(helpTypeGeneral{}).mask() == 0 {
		return tea.Batch(m.load(), m.showHelpScreen(helpTypeGeneral{}, nil))
	}
	return m.load()
}

// openModal switches to the modal state and shows the modal.
func (m *home) openModal() tea.Cmd {
	m.state = stateModal
	return m.modal.Open()
}

// load reads the source off the program loop.
func (m *home) load() tea.Cmd {
	src := m.source
	return func() tea.Msg {
		input, err := src.Load()
		return loadedMsg{input: input, err: err}
	}
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
	case tea.KeyMsg:
		model, cmd := m.handleKeyPress(msg)
		cmds = append(cmds, cmd)
		m = model.(*home)
	case loadedMsg:
		if msg.err != nil {
			log.ErrorLog.Printf("%v", msg.err)
			m.errBox.SetError(msg.err)
			break
		}
		m.errBox.SetInfo(fmt.Sprintf("loaded %s", m.source.Name()))
		cmds = append(cmds, m.modal.SetInput(msg.input))
	case overlay.ModalClosedMsg:
		if m.state == stateModal {
			m.state = stateDefault
		}
	}

	// The modal sees every message so it can verify its display region after each update.
	cmds = append(cmds, m.modal.Update(msg))
	return m, tea.Batch(cmds...)
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateHelp:
		return m.handleHelpState(msg)
	case stateLog:
		return m.handleLogState(msg)
	case stateModal:
		return m.handleModalState(msg)
	}

	name, ok := keys.GetKeyName(msg.String())
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyQuit:
		return m, tea.Quit
	case keys.KeyOpen:
		return m, m.showHelpScreen(helpTypeModal{}, m.openModal)
	case keys.KeyReload:
		return m, m.load()
	case keys.KeyHelp:
		return m, m.showHelpScreen(helpTypeGeneral{}, nil)
	case keys.KeyLog:
		m.state = stateLog
		return m, nil
	}
	return m, nil
}

func (m *home) handleModalState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, ok := keys.GetKeyName(msg.String())
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyQuit:
		return m, tea.Quit
	case keys.KeyClose:
		return m, m.modal.Close()
	case keys.KeyCopy:
		return m, m.modal.Copy()
	case keys.KeyReload:
		return m, m.load()
	case keys.KeyUp:
		m.modal.ScrollUp()
	case keys.KeyDown:
		m.modal.ScrollDown()
	case keys.KeyPageUp:
		m.modal.PageUp()
	case keys.KeyPageDown:
		m.modal.PageDown()
	case keys.KeyHome:
		m.modal.GotoTop()
	case keys.KeyEnd:
		m.modal.GotoBottom()
	}
	return m, nil
}

// handleLogState scrolls the event log; 'u' and 's' toggle its modes and any other key closes it.
func (m *home) handleLogState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "u":
		m.logPane.ToggleDistinct()
		return m, nil
	case "s":
		m.logPane.ToggleSort()
		return m, nil
	}

	if name, ok := keys.GetKeyName(msg.String()); ok {
		switch name {
		case keys.KeyUp:
			m.logPane.ScrollUp()
			return m, nil
		case keys.KeyDown:
			m.logPane.ScrollDown()
			return m, nil
		}
	}

	m.state = stateDefault
	return m, nil
}

var (
	pageTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginBottom(1)
	buttonStyle    = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 3)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	logFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1)
)

// pageView renders the page behind the overlays.
func (m *home) pageView() string {
	open := keys.GlobalkeyBindings[keys.KeyOpen].Help().Key
	help := keys.GlobalkeyBindings[keys.KeyHelp].Help().Key
	quit := keys.GlobalkeyBindings[keys.KeyQuit].Help().Key

	page := lipgloss.JoinVertical(
		lipgloss.Center,
		pageTitleStyle.Render("JSON Modal"),
		hintStyle.Render("Source: "+m.source.Name()),
		"",
		buttonStyle.Render("Show JSON"),
		"",
		hintStyle.Render(fmt.Sprintf("%s show • %s help • %s quit", open, help, quit)),
	)

	height := max(m.windowHeight-1, lipgloss.Height(page))
	width := max(m.windowWidth, lipgloss.Width(page))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, page),
		m.errBox.String(),
	)
}

func (m *home) View() string {
	mainView := m.pageView()

	switch m.state {
	case stateModal:
		return overlay.PlaceOverlay(0, 0, m.modal.Render(), mainView, true, true)
	case stateHelp:
		if m.textOverlay == nil {
			log.ErrorLog.Printf("text overlay is nil")
			m.state = stateDefault
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.textOverlay.Render(), mainView, true, true)
	case stateLog:
		width, _ := m.overlaySize()
		frame := logFrameStyle.Width(max(width-2, 1)).Render(m.logPane.String())
		return overlay.PlaceOverlay(0, 0, frame, mainView, true, true)
	}

	return mainView
}
