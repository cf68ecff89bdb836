package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ActionKind is the correction the verifier asks for.
type ActionKind int

const (
	// NoOp leaves the display region alone.
	NoOp ActionKind = iota
	// Reapply writes the cached markup into the display region again.
	Reapply
	// Rehighlight renders the input again.
	Rehighlight
)

func (k ActionKind) String() string {
	switch k {
	case NoOp:
		return "noop"
	case Reapply:
		return "reapply"
	case Rehighlight:
		return "rehighlight"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is the verifier's decision. Markup is set for Reapply.
type Action struct {
	Kind   ActionKind
	Markup string
}

// Verify inspects the display region after an update. It is pure: the caller performs
// the returned action on a later turn of its loop. d is the dialect of both the region
// and the cached markup.
func Verify(d Dialect, visible bool, regionContent, cachedMarkup string, input any) Action {
	if !visible || IsMissing(input) {
		return Action{Kind: NoOp}
	}
	if !RegionLooksEmpty(d, regionContent) {
		return Action{Kind: NoOp}
	}
	// A cached sentinel is left over from before the input arrived.
	if cached := visibleText(d, cachedMarkup); cached != "" && cached != NoDataMessage {
		return Action{Kind: Reapply, Markup: cachedMarkup}
	}
	return Action{Kind: Rehighlight}
}

// RegionLooksEmpty reports whether region content is blank or shows nothing but the
// "no data" sentinel. Documents that merely mention the sentinel text are not empty.
func RegionLooksEmpty(d Dialect, regionContent string) bool {
	text := visibleText(d, regionContent)
	return text == "" || text == NoDataMessage
}

func visibleText(d Dialect, markup string) string {
	return strings.TrimSpace(ansi.Strip(d.Text(markup)))
}
