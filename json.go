package content

import (
	"encoding/json"
	"fmt"
)

// MarshalFunc serializes a value to JSON text.
type MarshalFunc func(v any) ([]byte, error)

// NewJSONContent encodes value as an application/json body. An optional
// marshal function replaces the default encoding/json serializer. A failing
// serializer is reported as ErrSerialization.
func NewJSONContent(value any, marshal ...MarshalFunc) (*Content, error) {
	m := MarshalFunc(json.Marshal)
	if len(marshal) > 0 && marshal[0] != nil {
		m = marshal[0]
	}

	body, err := m(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	return NewContent(TypeJSON, body), nil
}
