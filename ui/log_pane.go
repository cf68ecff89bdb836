package ui

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// EventLog is one render, verify or clipboard event
type EventLog struct {
	Timestamp time.Time
	Source    string
	Message   string
}

// maxEvents bounds the number of events kept in memory
const maxEvents = 500

// LogPane displays event logs
type LogPane struct {
	logs         []EventLog
	viewport     viewport.Model
	width        int
	height       int
	mu           sync.RWMutex
	isScrolling  bool // Track if user is manually scrolling
	showDistinct bool // Collapse repeated events
	sortBySource bool // Sort by source instead of date
}

// NewLogPane creates a new log pane
func NewLogPane() *LogPane {
	return &LogPane{
		logs:     make([]EventLog, 0),
		viewport: viewport.New(0, 0),
	}
}

// AddLog adds a new event log entry
func (p *LogPane) AddLog(source string, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.showDistinct {
		key := eventKey(EventLog{Source: source, Message: message})
		for i, existing := range p.logs {
			if eventKey(existing) == key {
				p.logs[i].Timestamp = time.Now()
				if !p.isScrolling {
					p.updateViewport()
				}
				return
			}
		}
	}

	p.logs = append(p.logs, EventLog{
		Timestamp: time.Now(),
		Source:    source,
		Message:   message,
	})
	if len(p.logs) > maxEvents {
		p.logs = p.logs[len(p.logs)-maxEvents:]
	}

	if !p.isScrolling {
		p.updateViewport()
	}
}

// Len returns the number of stored events
func (p *LogPane) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.logs)
}

// SetSize updates the size of the log pane
func (p *LogPane) SetSize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.width = width
	p.height = height
	p.viewport.Width = width
	p.viewport.Height = height
	p.updateViewport()
}

// ScrollUp scrolls the viewport up
func (p *LogPane) ScrollUp() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.isScrolling = true
	p.updateViewportNoScroll()
	p.viewport.LineUp(3)
}

// ScrollDown scrolls the viewport down
func (p *LogPane) ScrollDown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.isScrolling = true
	p.updateViewportNoScroll()
	p.viewport.LineDown(3)

	if p.viewport.AtBottom() {
		p.isScrolling = false
	}
}

func (p *LogPane) updateViewport() {
	p.viewport.SetContent(p.renderLogs())
	p.viewport.GotoBottom()
}

func (p *LogPane) updateViewportNoScroll() {
	yOffset := p.viewport.YOffset
	p.viewport.SetContent(p.renderLogs())
	p.viewport.YOffset = yOffset
}

// renderLogs renders all logs as a string
func (p *LogPane) renderLogs() string {
	if len(p.logs) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Render("No events yet")
	}

	var builder strings.Builder
	timestampStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sourceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("magenta"))
	messageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("white"))
	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("green"))

	modes := []string{}
	if p.showDistinct {
		modes = append(modes, "Distinct")
	}
	if p.sortBySource {
		modes = append(modes, "Sorted")
	}
	if len(modes) > 0 {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("yellow")).
			Bold(true).
			Render(fmt.Sprintf("[%s Mode - 'u': toggle distinct, 's': toggle sort]", strings.Join(modes, ", "))))
		builder.WriteString("\n\n")
	}

	logsToRender := make([]EventLog, len(p.logs))
	copy(logsToRender, p.logs)

	if p.sortBySource {
		sort.SliceStable(logsToRender, func(i, j int) bool {
			if logsToRender[i].Source != logsToRender[j].Source {
				return logsToRender[i].Source < logsToRender[j].Source
			}
			return logsToRender[i].Timestamp.After(logsToRender[j].Timestamp)
		})
	} else {
		// Default: newest first
		sort.SliceStable(logsToRender, func(i, j int) bool {
			return logsToRender[i].Timestamp.After(logsToRender[j].Timestamp)
		})
	}

	for i, log := range logsToRender {
		entry := fmt.Sprintf("%s [%s] %s",
			timestampStyle.Render(log.Timestamp.Format("15:04:05")),
			sourceStyle.Render(log.Source),
			messageStyle.Render(log.Message),
		)
		if p.showDistinct {
			if count := p.eventCount(log); count > 1 {
				entry += " " + countStyle.Render(fmt.Sprintf("(×%d)", count))
			}
		}

		builder.WriteString(entry)
		if i < len(logsToRender)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// Clear clears all logs
func (p *LogPane) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logs = make([]EventLog, 0)
	p.updateViewport()
}

// String returns the string representation of the log pane
func (p *LogPane) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isScrolling {
		p.updateViewportNoScroll()
	} else {
		p.updateViewport()
	}

	return p.viewport.View()
}

// ToggleDistinct toggles collapsing repeated events
func (p *LogPane) ToggleDistinct() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.showDistinct = !p.showDistinct
	p.updateViewport()
}

// ToggleSort toggles sorting by source
func (p *LogPane) ToggleSort() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sortBySource = !p.sortBySource
	p.updateViewport()
}

func eventKey(log EventLog) string {
	return log.Source + "|" + log.Message
}

func (p *LogPane) eventCount(target EventLog) int {
	key := eventKey(target)
	count := 0
	for _, log := range p.logs {
		if eventKey(log) == key {
			count++
		}
	}
	return count
}
