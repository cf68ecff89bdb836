package highlight

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

const (
	// Language is the only grammar the highlighter loads.
	Language = "json"
	// DefaultTheme is used when no theme is configured.
	DefaultTheme = "github-dark"
)

var (
	ErrUnknownLanguage = errors.New("unknown language")
	ErrUnknownTheme    = errors.New("unknown theme")
)

// Format selects the markup dialect produced by the highlighter.
type Format int

const (
	// FormatHTML produces an HTML fragment with inline styles.
	FormatHTML Format = iota
	// FormatTerminal produces ANSI styled text for the terminal.
	FormatTerminal
)

func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a config or flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html":
		return FormatHTML, nil
	case "terminal", "ansi", "":
		return FormatTerminal, nil
	default:
		return 0, fmt.Errorf("unknown format %q", s)
	}
}

// Highlighter turns JSON text into highlighted markup. A Highlighter is created once
// and reused across renders; it is safe for concurrent use.
type Highlighter struct {
	lexer  chroma.Lexer
	style  *chroma.Style
	format Format

	html *html.Formatter

	styleCache map[chroma.TokenType]lipgloss.Style
	cacheMutex sync.RWMutex
}

// New loads the json grammar and the named theme.
func New(theme string, format Format) (*Highlighter, error) {
	lexer := lexers.Get(Language)
	if lexer == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, Language)
	}

	if theme == "" {
		theme = DefaultTheme
	}
	style, ok := styles.Registry[theme]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, theme)
	}

	return &Highlighter{
		lexer:      chroma.Coalesce(lexer),
		style:      style,
		format:     format,
		html:       html.New(html.WithClasses(false), html.TabWidth(2)),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}, nil
}

// Theme returns the name of the loaded theme.
func (h *Highlighter) Theme() string {
	return h.style.Name
}

// Highlight returns code rendered as markup in the highlighter's format.
func (h *Highlighter) Highlight(ctx context.Context, code string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	iterator, err := h.lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise: %w", err)
	}

	var out string
	switch h.format {
	case FormatHTML:
		var buf bytes.Buffer
		if err := h.html.Format(&buf, h.style, iterator); err != nil {
			return "", fmt.Errorf("format html: %w", err)
		}
		out = buf.String()
	case FormatTerminal:
		out = h.renderTerminal(iterator.Tokens())
	default:
		return "", fmt.Errorf("unsupported format %s", h.format)
	}

	// A superseding input may have arrived while we were working.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return out, nil
}

// renderTerminal styles each token with lipgloss. Tokens are split on newlines so that
// styles never span lines.
func (h *Highlighter) renderTerminal(tokens []chroma.Token) string {
	var sb strings.Builder
	for _, token := range tokens {
		style := h.styleForToken(token.Type)
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				sb.WriteByte('\n')
			}
			if part == "" {
				continue
			}
			sb.WriteString(style.Render(part))
		}
	}
	return sb.String()
}

// styleForToken converts a chroma token type to a lipgloss style.
func (h *Highlighter) styleForToken(tokenType chroma.TokenType) lipgloss.Style {
	h.cacheMutex.RLock()
	style, ok := h.styleCache[tokenType]
	h.cacheMutex.RUnlock()
	if ok {
		return style
	}

	entry := h.style.Get(tokenType)
	style = lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	h.cacheMutex.Lock()
	h.styleCache[tokenType] = style
	h.cacheMutex.Unlock()
	return style
}

// Background returns the theme's background colour as a hex string, or "" if unset.
func (h *Highlighter) Background() string {
	entry := h.style.Get(chroma.Background)
	if !entry.Background.IsSet() {
		return ""
	}
	return entry.Background.String()
}
