package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Payload is a decoded JSON object body. Keeping it untyped lets the
// validators tell a missing key apart from null, "" or false.
type Payload map[string]any

// DecodePayload reads a JSON object from r. Numbers are kept as json.Number
// so their text survives when a numeric value lands in a string field. An
// empty body decodes to an empty payload.
func DecodePayload(r io.Reader) (Payload, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return Payload{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding JSON object: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("decoding JSON object: unexpected data after the object")
	}
	if p == nil {
		// the body was a literal null
		p = Payload{}
	}
	return p, nil
}

// IsText reports whether the value at key can be stored as text. Objects
// and arrays cannot; strings, numbers, booleans, null and a missing key can.
func (p Payload) IsText(key string) bool {
	switch p[key].(type) {
	case map[string]any, []any:
		return false
	}
	return true
}

// String returns the value at key rendered as text, or "" when it is
// missing or null.
func (p Payload) String(key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// OptionalString distinguishes the three states an optional field can be
// in: absent (present=false), explicit null (nil, true) and a value.
func (p Payload) OptionalString(key string) (value *string, present bool) {
	raw, ok := p[key]
	if !ok {
		return nil, false
	}
	if raw == nil {
		return nil, true
	}
	s := p.String(key)
	return &s, true
}
