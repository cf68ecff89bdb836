package render

import "errors"

// Failure kinds. None of them escapes Render; they are reported on Result.Err and logged.
var (
	// ErrMissingInput means there was no data to render.
	ErrMissingInput = errors.New("missing input")
	// ErrDecode means text input was not valid JSON and was rendered as a plain string.
	ErrDecode = errors.New("decode failure")
	// ErrHighlight means the highlighter could not produce markup.
	ErrHighlight = errors.New("highlight failure")
	// ErrSerialize means the input could not be serialized to JSON.
	ErrSerialize = errors.New("serialization failure")
	// ErrClipboard means the serialized input could not be copied.
	ErrClipboard = errors.New("clipboard failure")
)
