package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	for _, d := range []Dialect{NewHTMLDialect(), NewTerminalDialect("")} {
		t.Run(d.Name(), func(t *testing.T) {
			cached := d.Block(d.Escape("cached"))
			input := map[string]any{"a": 1}
			sentinel := NoDataMarkup(d)
			mentions := d.Block(d.Escape(`{"status": "No JSON data available"}`))

			tests := []struct {
				name    string
				visible bool
				region  string
				cached  string
				input   any
				want    Action
			}{
				{name: "hidden", visible: false, region: "", cached: cached, input: input, want: Action{Kind: NoOp}},
				{name: "empty region with cache", visible: true, region: "", cached: cached, input: input, want: Action{Kind: Reapply, Markup: cached}},
				{name: "whitespace region with cache", visible: true, region: " \n\t", cached: cached, input: input, want: Action{Kind: Reapply, Markup: cached}},
				{name: "sentinel region with cache", visible: true, region: sentinel, cached: cached, input: input, want: Action{Kind: Reapply, Markup: cached}},
				{name: "empty region without cache", visible: true, region: "", cached: "", input: input, want: Action{Kind: Rehighlight}},
				{name: "empty region with stale sentinel cache", visible: true, region: "", cached: sentinel, input: input, want: Action{Kind: Rehighlight}},
				{name: "empty region without input", visible: true, region: "", cached: "", input: nil, want: Action{Kind: NoOp}},
				{name: "sentinel region without input", visible: true, region: sentinel, cached: sentinel, input: nil, want: Action{Kind: NoOp}},
				{name: "populated region", visible: true, region: cached, cached: cached, input: input, want: Action{Kind: NoOp}},
				{name: "ansi only region", visible: true, region: "\x1b[0m\x1b[0m", cached: cached, input: input, want: Action{Kind: Reapply, Markup: cached}},
				{name: "document mentioning sentinel", visible: true, region: mentions, cached: mentions, input: input, want: Action{Kind: NoOp}},
				{name: "empty region with cache mentioning sentinel", visible: true, region: "", cached: mentions, input: input, want: Action{Kind: Reapply, Markup: mentions}},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got := Verify(d, tt.visible, tt.region, tt.cached, tt.input)
					assert.Equal(t, tt.want, got)

					// Idempotent: the same observation gives the same answer.
					assert.Equal(t, got, Verify(d, tt.visible, tt.region, tt.cached, tt.input))
				})
			}
		})
	}
}

func TestRegionLooksEmpty(t *testing.T) {
	d := NewHTMLDialect()

	assert.True(t, RegionLooksEmpty(d, ""))
	assert.True(t, RegionLooksEmpty(d, NoDataMarkup(d)))
	assert.False(t, RegionLooksEmpty(d, d.Block(d.Escape(`"No JSON data available"`))))
	assert.False(t, RegionLooksEmpty(d, d.Block(d.Escape("No JSON data available yet"))))
}
