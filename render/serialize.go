package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

const indent = "  "

// IsMissing reports whether input carries no data: a nil interface or a nil
// pointer, map, slice or interface value.
func IsMissing(input any) bool {
	if input == nil {
		return true
	}
	v := reflect.ValueOf(input)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Serialize returns input as two-space indented JSON. Text input that is valid JSON is
// re-indented with its key order untouched; text that is not valid JSON is serialized
// as a JSON string.
func Serialize(input any) (string, error) {
	out, _, err := serialize(input)
	return out, err
}

// serialize is Serialize that also reports the absorbed decode failure for text input.
func serialize(input any) (out string, decodeErr error, err error) {
	switch v := input.(type) {
	case json.RawMessage:
		return serializeText([]byte(v))
	case []byte:
		return serializeText(v)
	case string:
		return serializeText([]byte(v))
	default:
		out, err = encode(input)
		return out, nil, err
	}
}

func serializeText(text []byte) (string, error, error) {
	trimmed := bytes.TrimSpace(text)
	if json.Valid(trimmed) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, trimmed, "", indent); err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrSerialize, err)
		}
		return buf.String(), nil, nil
	}

	decodeErr := fmt.Errorf("%w: %v", ErrDecode, json.Unmarshal(trimmed, new(any)))
	out, err := encode(string(text))
	return out, decodeErr, err
}

func encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
