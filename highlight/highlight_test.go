package highlight

import (
	"context"
	"html"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		theme   string
		wantErr error
	}{
		{name: "default theme", theme: ""},
		{name: "named theme", theme: "github-dark"},
		{name: "unknown theme", theme: "does-not-exist", wantErr: ErrUnknownTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := New(tt.theme, FormatHTML)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultTheme, h.Theme())
		})
	}
}

func TestBackground(t *testing.T) {
	h, err := New(DefaultTheme, FormatTerminal)
	require.NoError(t, err)
	assert.Equal(t, "#0d1117", h.Background())
}

func TestHighlightHTML(t *testing.T) {
	h, err := New(DefaultTheme, FormatHTML)
	require.NoError(t, err)

	code := "{\n  \"a\": \"<b>&\"\n}"
	out, err := h.Highlight(context.Background(), code)
	require.NoError(t, err)

	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "style=")
	assert.NotContains(t, out, "<b>")
	text := html.UnescapeString(tagRe.ReplaceAllString(out, ""))
	assert.Equal(t, code, strings.TrimRight(text, "\n"))
}

func TestHighlightTerminal(t *testing.T) {
	h, err := New(DefaultTheme, FormatTerminal)
	require.NoError(t, err)

	code := "{\n  \"a\": 1,\n  \"b\": [true, null]\n}"
	out, err := h.Highlight(context.Background(), code)
	require.NoError(t, err)
	assert.Equal(t, code, strings.TrimRight(ansi.Strip(out), "\n"))
}

func TestHighlightCancelled(t *testing.T) {
	h, err := New(DefaultTheme, FormatTerminal)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = h.Highlight(ctx, "{}")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"html": FormatHTML, "HTML": FormatHTML, "terminal": FormatTerminal, "ansi": FormatTerminal, "": FormatTerminal} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}
