package app

import (
	"context"
	"fmt"
	"time"

	"json-modal/config"
	"json-modal/highlight"
	"json-modal/log"
	"json-modal/render"
	"json-modal/ui/overlay"
)

// NewOrchestrator builds an orchestrator for the configured theme in the given format.
// A theme that cannot be loaded is logged and every render then falls back to plain text.
func NewOrchestrator(cfg *config.Config, format highlight.Format) *render.Orchestrator {
	var hl render.Highlighter
	var background string
	h, err := highlight.New(cfg.Theme, format)
	if err != nil {
		log.ErrorLog.Printf("failed to load highlighter: %v", err)
	} else {
		hl = h
		background = h.Background()
	}

	var dialect render.Dialect
	switch format {
	case highlight.FormatHTML:
		dialect = render.NewHTMLDialect()
	default:
		// Fallback blocks share the theme's background with highlighted output.
		dialect = render.NewTerminalDialect(background)
	}

	return render.New(hl, dialect,
		render.WithLogger(log.InfoLog),
		render.WithTimeout(time.Duration(cfg.HighlightTimeoutMs)*time.Millisecond),
	)
}

// RenderMarkup renders the source once and returns the markup.
func RenderMarkup(ctx context.Context, cfg *config.Config, src Source, format highlight.Format) (string, error) {
	input, err := src.Load()
	if err != nil {
		return "", err
	}
	return NewOrchestrator(cfg, format).Render(ctx, input), nil
}

// CopyToClipboard writes the two-space indented serialization of the source to cb.
func CopyToClipboard(src Source, cb overlay.Clipboard) (string, error) {
	input, err := src.Load()
	if err != nil {
		return "", err
	}
	if render.IsMissing(input) {
		return "", render.ErrMissingInput
	}
	text, err := render.Serialize(input)
	if err != nil {
		return "", err
	}
	if err := cb.WriteAll(text); err != nil {
		return "", fmt.Errorf("%w: %v", render.ErrClipboard, err)
	}
	return text, nil
}
