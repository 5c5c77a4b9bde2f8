package content

import "errors"

// Error kinds reported by the content model. Failures are wrapped with
// detail; match with errors.Is.
var (
	// ErrSerialization reports a failing JSON serializer.
	ErrSerialization = errors.New("content: serialization failed")

	// ErrEncoding reports text that cannot be encoded, e.g. a form field
	// name that is not valid UTF-8 while no charset is declared.
	ErrEncoding = errors.New("content: encoding failed")

	// ErrDecode reports malformed input to a decoder, e.g. a bad percent
	// escape in URL-encoded form data.
	ErrDecode = errors.New("content: decode failed")

	// ErrDisposed reports an operation on a disposed body.
	ErrDisposed = errors.New("content: disposed")
)
