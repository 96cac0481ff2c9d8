// Package jsonutil provides shared helpers for reading and writing JSON
// documents with errors that say what was being decoded.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// UnmarshalStrict is UnmarshalWithContext that also rejects unknown fields
// and trailing data after the first document.
func UnmarshalStrict(data []byte, v any, context string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%s: empty document", context)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	if dec.More() {
		return fmt.Errorf("%s: unexpected data after document", context)
	}
	return nil
}

// MarshalIndentWithContext renders v as two-space indented JSON with a
// trailing newline, wrapping any error with context.
func MarshalIndentWithContext(v any, context string) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	return append(data, '\n'), nil
}
