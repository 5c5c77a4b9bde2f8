package httprequest

import (
	"context"
	"io"
)

// BodySource is the body surface the builders accept. The content package's
// types satisfy it.
type BodySource interface {
	MediaType() string
	Length() int64
	Reader(ctx context.Context) io.Reader
}

type cancelCloser struct {
	io.ReadCloser
	cancelFunc context.CancelFunc
}

func (c *cancelCloser) Close() error {
	err := c.ReadCloser.Close()
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	return err
}

const (
	contentTypeHeader = "Content-Type"
	jsonContentType   = "application/json"
)
