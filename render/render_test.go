package render

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"math"
	"strings"
	"testing"

	"json-modal/highlight"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = log.New(io.Discard, "", 0)

type failingHighlighter struct{ err error }

func (f failingHighlighter) Highlight(context.Context, string) (string, error) {
	return "", f.err
}

type panickingHighlighter struct{}

func (panickingHighlighter) Highlight(context.Context, string) (string, error) {
	panic("boom")
}

type blankHighlighter struct{}

func (blankHighlighter) Highlight(context.Context, string) (string, error) {
	return "  \n", nil
}

// gatedHighlighter blocks until released, so tests can interleave renders.
type gatedHighlighter struct {
	release chan struct{}
}

func (g gatedHighlighter) Highlight(_ context.Context, code string) (string, error) {
	<-g.release
	return "<span>" + code + "</span>", nil
}

func newHTML(t *testing.T, h Highlighter) *Orchestrator {
	t.Helper()
	return New(h, NewHTMLDialect(), WithLogger(discard))
}

func chromaHTML(t *testing.T) Highlighter {
	t.Helper()
	h, err := highlight.New(highlight.DefaultTheme, highlight.FormatHTML)
	require.NoError(t, err)
	return h
}

func TestRenderMissingInput(t *testing.T) {
	o := newHTML(t, chromaHTML(t))
	want := `<pre style="background-color: #0d1117; color: #e6edf3; padding: 16px; border-radius: 4px;"><code>No JSON data available</code></pre>`

	var nilMap map[string]any
	var nilPtr *struct{ A int }
	for _, input := range []any{nil, nilMap, nilPtr} {
		got := o.Render(context.Background(), input)
		assert.Equal(t, want, got)
		assert.Equal(t, StateIdle, o.State())
	}
}

func TestRenderHighlighted(t *testing.T) {
	d := NewHTMLDialect()
	o := New(chromaHTML(t), d, WithLogger(discard))

	got := o.Render(context.Background(), map[string]any{"a": 1})
	assert.Equal(t, StateRendered, o.State())
	assert.Equal(t, got, o.Markup())
	assert.Equal(t, "{\n  \"a\": 1\n}", strings.TrimRight(d.Text(got), "\n"))
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "json string", input: `{"b":2,"a":[1,2]}`, want: "{\n  \"b\": 2,\n  \"a\": [\n    1,\n    2\n  ]\n}"},
		{name: "json bytes", input: []byte(`{"a":1}`), want: "{\n  \"a\": 1\n}"},
		{name: "raw message", input: json.RawMessage(`[true,null]`), want: "[\n  true,\n  null\n]"},
		{name: "invalid json", input: "not <json> & co", want: `"not <json> & co"`},
		{name: "empty text", input: "", want: `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewHTMLDialect()
			o := New(chromaHTML(t), d, WithLogger(discard))

			got := o.Render(context.Background(), tt.input)
			require.NotEmpty(t, got)
			assert.Equal(t, tt.want, strings.TrimRight(d.Text(got), "\n"))
		})
	}
}

func TestRenderDecodeFailureIsAbsorbed(t *testing.T) {
	o := newHTML(t, chromaHTML(t))
	r := o.Begin("{broken").Run(context.Background())

	assert.Equal(t, StateRendered, r.State)
	assert.ErrorIs(t, r.Err, ErrDecode)
	assert.Contains(t, r.Markup, "broken")
}

func TestRenderHighlightFailureFallsBack(t *testing.T) {
	type person struct {
		Name string `json:"name"`
		Tag  string `json:"tag"`
	}
	input := person{Name: "Tom & Jerry", Tag: "<b>"}

	highlighters := map[string]Highlighter{
		"error": failingHighlighter{err: errors.New("theme not loaded")},
		"panic": panickingHighlighter{},
		"blank": blankHighlighter{},
		"nil":   nil,
	}

	for name, h := range highlighters {
		t.Run(name, func(t *testing.T) {
			d := NewHTMLDialect()
			o := New(h, d, WithLogger(discard))

			r := o.Begin(input).Run(context.Background())
			require.True(t, o.Commit(r))

			assert.Equal(t, StateRenderedFallback, o.State())
			assert.ErrorIs(t, r.Err, ErrHighlight)
			assert.True(t, strings.HasPrefix(r.Markup, `<pre style="background-color: #0d1117;`))
			assert.Contains(t, r.Markup, "Tom &amp; Jerry")
			assert.Contains(t, r.Markup, "&lt;b&gt;")

			want, err := Serialize(input)
			require.NoError(t, err)
			assert.Equal(t, want, d.Text(r.Markup))
		})
	}
}

func TestRenderSerializationFailure(t *testing.T) {
	d := NewHTMLDialect()
	o := New(chromaHTML(t), d, WithLogger(discard))

	for name, input := range map[string]any{
		"channel": map[string]any{"c": make(chan int)},
		"nan":     math.NaN(),
		"func":    func() {},
	} {
		t.Run(name, func(t *testing.T) {
			r := o.Begin(input).Run(context.Background())
			assert.Equal(t, FormatErrorMarkup(d), r.Markup)
			assert.Equal(t, StateRenderedFallback, r.State)
			assert.ErrorIs(t, r.Err, ErrSerialize)
		})
	}
}

func TestRenderLastInputWins(t *testing.T) {
	g := gatedHighlighter{release: make(chan struct{})}
	o := newHTML(t, g)

	first := o.Begin(`{"v":1}`)
	second := o.Begin(`{"v":2}`)
	assert.Equal(t, StateRendering, o.State())

	results := make(chan Result, 2)
	go func() { results <- first.Run(context.Background()) }()
	go func() { results <- second.Run(context.Background()) }()
	close(g.release)

	a, b := <-results, <-results
	applied := 0
	for _, r := range []Result{a, b} {
		if o.Commit(r) {
			applied++
		}
	}

	assert.Equal(t, 1, applied)
	assert.Contains(t, o.Markup(), `"v": 2`)
	assert.Equal(t, StateRendered, o.State())

	// A stale result arriving late never overwrites newer state.
	assert.False(t, o.Commit(Result{Seq: first.Seq, Markup: "stale"}))
	assert.Contains(t, o.Markup(), `"v": 2`)
}

func TestMarkEmptyAndSettle(t *testing.T) {
	o := newHTML(t, chromaHTML(t))
	o.Render(context.Background(), map[string]any{"a": 1})

	o.MarkEmpty()
	assert.Equal(t, StateEmpty, o.State())
	o.Settle()
	assert.Equal(t, StateRendered, o.State())

	o.Begin(nil)
	o.MarkEmpty()
	assert.Equal(t, StateRendering, o.State())
	assert.Equal(t, uint64(2), o.Seq())
}

func TestRenderTerminalDialect(t *testing.T) {
	h, err := highlight.New(highlight.DefaultTheme, highlight.FormatTerminal)
	require.NoError(t, err)
	d := NewTerminalDialect(h.Background())
	o := New(h, d, WithLogger(discard))

	got := o.Render(context.Background(), map[string]any{"a": 1})
	assert.Equal(t, "{\n  \"a\": 1\n}", strings.TrimRight(d.Text(got), "\n"))

	fallback := New(nil, d, WithLogger(discard)).Render(context.Background(), "\x1b[31mred")
	assert.NotContains(t, d.Text(fallback), "\x1b")
	assert.Contains(t, d.Text(fallback), "red")
}
