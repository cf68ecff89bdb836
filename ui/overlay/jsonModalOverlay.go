package overlay

import (
	"context"
	"fmt"
	"time"

	"json-modal/log"
	"json-modal/render"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CopiedDuration is how long the copied indicator stays on after a successful copy.
const CopiedDuration = 2000 * time.Millisecond

// Clipboard receives the serialized JSON on copy.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// SystemClipboard writes to the OS clipboard.
var SystemClipboard Clipboard = systemClipboard{}

// Ticker schedules fn to produce a message after d. tea.Tick satisfies it.
type Ticker func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// ModalClosedMsg is emitted when the modal closes.
type ModalClosedMsg struct{}

type renderedMsg struct {
	result render.Result
}

// writeMarkupMsg carries a deferred write of markup into the display region.
type writeMarkupMsg struct {
	seq     uint64
	markup  string
	reapply bool
}

type rehighlightMsg struct{}

type copiedMsg struct {
	err error
}

type copiedResetMsg struct {
	id int
}

// JSONModal is a modal showing JSON rendered by an Orchestrator, with a copy action.
//
// Every change to the display region happens in Update: render results and corrective
// writes arrive as messages, so they land on a later turn of the program loop than the
// call that scheduled them.
type JSONModal struct {
	ctx          context.Context
	orchestrator *render.Orchestrator
	clipboard    Clipboard
	tick         Ticker

	title string
	input any

	visible bool
	// region is the markup currently written into the display region.
	region string
	// pendingWrites counts scheduled writes that have not landed yet.
	pendingWrites int
	// rehighlightPending is set while a verifier-requested render is scheduled.
	rehighlightPending bool

	copied bool
	copyID int

	viewport viewport.Model
	width    int
	height   int
}

// ModalOption configures a JSONModal.
type ModalOption func(*JSONModal)

// WithClipboard replaces the system clipboard.
func WithClipboard(c Clipboard) ModalOption {
	return func(m *JSONModal) {
		m.clipboard = c
	}
}

// WithTicker replaces tea.Tick for the copied indicator timer.
func WithTicker(t Ticker) ModalOption {
	return func(m *JSONModal) {
		m.tick = t
	}
}

// WithTitle sets the modal title.
func WithTitle(title string) ModalOption {
	return func(m *JSONModal) {
		m.title = title
	}
}

// NewJSONModal creates a closed modal with no input.
func NewJSONModal(ctx context.Context, orchestrator *render.Orchestrator, opts ...ModalOption) *JSONModal {
	m := &JSONModal{
		ctx:          ctx,
		orchestrator: orchestrator,
		clipboard:    SystemClipboard,
		tick:         tea.Tick,
		title:        "JSON",
		viewport:     viewport.New(0, 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetInput replaces the input wholesale and renders it.
func (m *JSONModal) SetInput(input any) tea.Cmd {
	m.input = input
	return m.render()
}

// Input returns the current input value.
func (m *JSONModal) Input() any {
	return m.input
}

// Open shows the modal and renders the input.
func (m *JSONModal) Open() tea.Cmd {
	m.visible = true
	m.viewport.GotoTop()
	return tea.Batch(m.render(), m.verify())
}

// Close hides the modal. The input and cached markup are kept; the display region is
// torn down.
func (m *JSONModal) Close() tea.Cmd {
	if !m.visible {
		return nil
	}
	m.visible = false
	m.region = ""
	m.viewport.SetContent("")
	return func() tea.Msg { return ModalClosedMsg{} }
}

// IsOpen reports whether the modal is visible.
func (m *JSONModal) IsOpen() bool {
	return m.visible
}

// IsCopied reports whether the copied indicator is on.
func (m *JSONModal) IsCopied() bool {
	return m.copied
}

// Region returns the markup currently in the display region.
func (m *JSONModal) Region() string {
	return m.region
}

// State returns the orchestrator's render state.
func (m *JSONModal) State() render.State {
	return m.orchestrator.State()
}

// Copy writes the two-space indented serialization of the input to the clipboard.
func (m *JSONModal) Copy() tea.Cmd {
	if render.IsMissing(m.input) {
		log.ErrorLog.Printf("cannot copy: %v", render.ErrMissingInput)
		log.LogEvent("clipboard", "nothing to copy")
		return nil
	}

	text, err := render.Serialize(m.input)
	if err != nil {
		log.ErrorLog.Printf("cannot copy: %v", err)
		log.LogEvent("clipboard", err.Error())
		return nil
	}

	cb := m.clipboard
	return func() tea.Msg {
		if err := cb.WriteAll(text); err != nil {
			return copiedMsg{err: fmt.Errorf("%w: %v", render.ErrClipboard, err)}
		}
		return copiedMsg{}
	}
}

// ScrollUp, ScrollDown and friends move the display region.
func (m *JSONModal) ScrollUp()   { m.viewport.LineUp(1) }
func (m *JSONModal) ScrollDown() { m.viewport.LineDown(1) }
func (m *JSONModal) PageUp()     { m.viewport.HalfViewUp() }
func (m *JSONModal) PageDown()   { m.viewport.HalfViewDown() }
func (m *JSONModal) GotoTop()    { m.viewport.GotoTop() }
func (m *JSONModal) GotoBottom() { m.viewport.GotoBottom() }

// Update handles the modal's own messages, then verifies the display region.
func (m *JSONModal) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case renderedMsg:
		if m.orchestrator.Commit(msg.result) {
			log.LogEvent("render", fmt.Sprintf("render %d: %s", msg.result.Seq, msg.result.State))
			cmds = append(cmds, m.write(msg.result.Seq, msg.result.Markup, false))
		}
	case writeMarkupMsg:
		m.applyWrite(msg)
	case rehighlightMsg:
		m.rehighlightPending = false
		cmds = append(cmds, m.render())
	case copiedMsg:
		if msg.err != nil {
			log.ErrorLog.Printf("could not copy text: %v", msg.err)
			log.LogEvent("clipboard", msg.err.Error())
			break
		}
		m.copied = true
		m.copyID++
		id := m.copyID
		log.LogEvent("clipboard", "copied JSON to clipboard")
		cmds = append(cmds, m.tick(CopiedDuration, func(time.Time) tea.Msg {
			return copiedResetMsg{id: id}
		}))
	case copiedResetMsg:
		// Only the timer of the latest copy turns the indicator off.
		if msg.id == m.copyID {
			m.copied = false
		}
	case tea.MouseMsg:
		if m.visible {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.verify())
	return tea.Batch(cmds...)
}

// render begins a job and runs it off the program loop.
func (m *JSONModal) render() tea.Cmd {
	job := m.orchestrator.Begin(m.input)
	ctx := m.ctx
	return func() tea.Msg {
		return renderedMsg{result: job.Run(ctx)}
	}
}

// write schedules markup to be written into the display region on a later turn.
func (m *JSONModal) write(seq uint64, markup string, reapply bool) tea.Cmd {
	m.pendingWrites++
	return func() tea.Msg {
		return writeMarkupMsg{seq: seq, markup: markup, reapply: reapply}
	}
}

func (m *JSONModal) applyWrite(msg writeMarkupMsg) {
	if m.pendingWrites > 0 {
		m.pendingWrites--
	}
	// A newer render has begun; its own write will follow.
	if msg.seq != m.orchestrator.Seq() {
		return
	}
	if !m.visible {
		return
	}
	m.region = msg.markup
	m.viewport.SetContent(msg.markup)
	if msg.reapply {
		m.orchestrator.Settle()
		log.LogEvent("verify", "reapplied cached markup")
	}
}

// verify checks the display region after an update and schedules a correction. It
// stays quiet while a write or render it would wait for is still in flight.
func (m *JSONModal) verify() tea.Cmd {
	if m.pendingWrites > 0 || m.rehighlightPending {
		return nil
	}

	action := render.Verify(m.orchestrator.Dialect(), m.visible, m.region, m.orchestrator.Markup(), m.input)
	switch action.Kind {
	case render.Reapply:
		m.orchestrator.MarkEmpty()
		log.LogEvent("verify", "display region empty; reapplying cached markup")
		return m.write(m.orchestrator.Seq(), action.Markup, true)
	case render.Rehighlight:
		// The pending render will fill the region.
		if m.orchestrator.State() == render.StateRendering {
			return nil
		}
		m.rehighlightPending = true
		m.orchestrator.MarkEmpty()
		log.LogEvent("verify", "display region empty; rendering again")
		return func() tea.Msg { return rehighlightMsg{} }
	}
	return nil
}

// SetSize updates the dimensions of the overlay
func (m *JSONModal) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Border: 2, padding: 2, title: 2, footer: 2
	viewportHeight := height - 8
	viewportWidth := width - 6

	if viewportHeight < 1 {
		viewportHeight = 1
	}
	if viewportWidth < 1 {
		viewportWidth = 1
	}

	m.viewport.Width = viewportWidth
	m.viewport.Height = viewportHeight
}

// Render renders the modal
func (m *JSONModal) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62")).
		MarginBottom(1)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginTop(1)

	copiedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Bold(true)

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)
	if m.width > 2 && m.height > 2 {
		containerStyle = containerStyle.Width(m.width - 2).Height(m.height - 2)
	}

	copyLabel := "c copy"
	if m.copied {
		copyLabel = copiedStyle.Render("✓ copied")
	}
	help := helpStyle.Render(fmt.Sprintf("%s • ↑/↓ scroll • esc close", copyLabel))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(m.title),
		m.viewport.View(),
		help,
	)

	return containerStyle.Render(content)
}
