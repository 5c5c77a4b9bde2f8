// Package content models HTTP message bodies: fixed in-memory payloads,
// lazily streamed payloads, transport-fed payloads, and the common typed
// encoders (text, HTML, JSON, URL-encoded and multipart forms).
package content

import (
	"bytes"
	"context"
	"io"
)

// Media types produced by the convenience constructors.
const (
	TypePlainText      = "text/plain; charset=utf-8"
	TypeHTML           = "text/html; charset=utf-8"
	TypeJSON           = "application/json"
	TypeURLEncodedForm = "application/x-www-form-urlencoded"
	TypeOctetStream    = "application/octet-stream"
)

// Source is the capability surface shared by every body representation.
//
// Length returns the size of the body in bytes, or -1 when it is unknown
// because the body has not been materialized yet. Read returns the full
// body; for streamed variants it drains the remaining data and buffers it
// in memory. Reader exposes the body as an io.Reader for transports.
type Source interface {
	MediaType() string
	Length() int64
	Read(ctx context.Context) ([]byte, error)
	Reader(ctx context.Context) io.Reader
}

// Content is a fixed in-memory body with a declared media type.
type Content struct {
	mediaType string
	body      []byte
}

// NewContent wraps body bytes with a media type.
func NewContent(mediaType string, body []byte) *Content {
	return &Content{mediaType: mediaType, body: body}
}

// NewTextContent encodes text as a text/plain UTF-8 body.
func NewTextContent(text string) *Content {
	return NewContent(TypePlainText, []byte(text))
}

// NewHTMLContent encodes markup as a text/html UTF-8 body.
func NewHTMLContent(markup string) *Content {
	return NewContent(TypeHTML, []byte(markup))
}

func (c *Content) MediaType() string { return c.mediaType }

func (c *Content) Length() int64 { return int64(len(c.body)) }

// Read returns the stored body. It is deterministic: repeated calls return
// the same bytes.
func (c *Content) Read(ctx context.Context) ([]byte, error) {
	return c.body, nil
}

func (c *Content) Reader(ctx context.Context) io.Reader {
	return bytes.NewReader(c.body)
}
