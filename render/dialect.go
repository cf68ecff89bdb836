package render

import (
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"
)

const (
	// NoDataMessage is the text of the sentinel shown when there is no input.
	NoDataMessage = "No JSON data available"
	// FormatErrorMessage is the text of the sentinel shown when nothing else could be rendered.
	FormatErrorMessage = "Error formatting JSON data"
)

const (
	blockBackground = "#0d1117"
	blockForeground = "#e6edf3"
)

// Dialect is the markup language a render produces.
type Dialect interface {
	// Name identifies the dialect in logs.
	Name() string
	// Block wraps an already escaped body in the fixed styled block used for
	// fallback and sentinel markup.
	Block(body string) string
	// Escape makes plain text safe to embed in markup.
	Escape(text string) string
	// Text returns the visible text content of markup.
	Text(markup string) string
}

// NoDataMarkup returns the "no data" sentinel block for d.
func NoDataMarkup(d Dialect) string {
	return d.Block(d.Escape(NoDataMessage))
}

// FormatErrorMarkup returns the final fallback sentinel block for d.
func FormatErrorMarkup(d Dialect) string {
	return d.Block(d.Escape(FormatErrorMessage))
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// HTMLDialect renders HTML fragments.
type HTMLDialect struct {
	policy *bluemonday.Policy
}

func NewHTMLDialect() *HTMLDialect {
	return &HTMLDialect{policy: bluemonday.StrictPolicy()}
}

func (d *HTMLDialect) Name() string { return "html" }

func (d *HTMLDialect) Block(body string) string {
	return `<pre style="background-color: ` + blockBackground + `; color: ` + blockForeground +
		`; padding: 16px; border-radius: 4px;"><code>` + body + `</code></pre>`
}

// Escape replaces &, < and > with their entities. Quotes are left alone.
func (d *HTMLDialect) Escape(text string) string {
	return htmlEscaper.Replace(text)
}

// Text strips every tag and unescapes entities.
func (d *HTMLDialect) Text(markup string) string {
	return html.UnescapeString(d.policy.Sanitize(markup))
}

// TerminalDialect renders ANSI styled text.
type TerminalDialect struct {
	block lipgloss.Style
}

// NewTerminalDialect returns a terminal dialect whose block uses background, or the
// default block background when it is empty.
func NewTerminalDialect(background string) *TerminalDialect {
	if background == "" {
		background = blockBackground
	}
	return &TerminalDialect{
		block: lipgloss.NewStyle().
			Background(lipgloss.Color(background)).
			Foreground(lipgloss.Color(blockForeground)),
	}
}

func (d *TerminalDialect) Name() string { return "terminal" }

func (d *TerminalDialect) Block(body string) string {
	return d.block.Render(body)
}

// Escape drops escape sequences so input text cannot restyle the terminal.
func (d *TerminalDialect) Escape(text string) string {
	return ansi.Strip(text)
}

func (d *TerminalDialect) Text(markup string) string {
	return ansi.Strip(markup)
}
