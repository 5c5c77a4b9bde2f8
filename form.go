package content

import (
	"fmt"
	"net/url"
	"unicode/utf8"
)

// NewFormContent encodes form fields as an application/x-www-form-urlencoded
// body. Keys are sorted, values keep their order. Field names and values
// must be valid UTF-8; anything else is reported as ErrEncoding.
func NewFormContent(data url.Values) (*Content, error) {
	for name, values := range data {
		if !utf8.ValidString(name) {
			return nil, fmt.Errorf("%w: form field name %q is not valid utf-8", ErrEncoding, name)
		}
		for _, value := range values {
			if !utf8.ValidString(value) {
				return nil, fmt.Errorf("%w: value of form field %q is not valid utf-8", ErrEncoding, name)
			}
		}
	}

	return NewContent(TypeURLEncodedForm, []byte(data.Encode())), nil
}

// ParseWWWForm decodes URL-encoded form text into a map of field name to
// values. Duplicate keys keep their input order, "+" decodes to a space, and
// a key without "=" maps to an empty value. Malformed percent escapes fail
// with ErrDecode rather than passing through literally.
func ParseWWWForm(raw string) (url.Values, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return values, nil
}
