package content

import (
	"bytes"
	"context"
	"io"
)

// Message is one delivery from a transport-level receive callable. MoreBody
// reports whether further messages follow; the message that carries
// MoreBody == false still contributes its Body.
type Message struct {
	Body     []byte
	MoreBody bool
}

// ReceiveFunc pulls the next body message from a transport. It suspends on
// the context while waiting for data.
type ReceiveFunc func(ctx context.Context) (Message, error)

// ReceiverContent is a body fed by an external message-receive callable,
// e.g. a server protocol adapter delivering request body chunks as they
// arrive on the wire.
//
// NextChunk, Read and Reader consume the same single-pass cursor; a body
// must not be read concurrently from two callers. Close releases the
// transport reference, after which every operation fails with ErrDisposed.
type ReceiverContent struct {
	mediaType string
	receive   ReceiveFunc
	finished  bool
	disposed  bool
}

// NewReceiverContent wraps a transport receive callable with a media type.
func NewReceiverContent(mediaType string, receive ReceiveFunc) *ReceiverContent {
	return &ReceiverContent{mediaType: mediaType, receive: receive}
}

func (c *ReceiverContent) MediaType() string { return c.mediaType }

// Length is -1: the body size is unknown until the transport reports the
// last message.
func (c *ReceiverContent) Length() int64 { return -1 }

// NextChunk returns the bytes delivered by the next transport message.
// io.EOF signals that the transport reported no more data.
func (c *ReceiverContent) NextChunk(ctx context.Context) ([]byte, error) {
	if c.disposed {
		return nil, ErrDisposed
	}
	if c.finished {
		return nil, io.EOF
	}
	msg, err := c.receive(ctx)
	if err != nil {
		return nil, err
	}
	if !msg.MoreBody {
		c.finished = true
	}
	return msg.Body, nil
}

// Read drains the remaining messages end-to-end and returns the
// concatenation of their bodies.
func (c *ReceiverContent) Read(ctx context.Context) ([]byte, error) {
	if c.disposed {
		return nil, ErrDisposed
	}
	var buf bytes.Buffer
	for {
		chunk, err := c.NextChunk(ctx)
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
		buf.Write(chunk)
	}
}

// Reader adapts the message stream to an io.Reader.
func (c *ReceiverContent) Reader(ctx context.Context) io.Reader {
	return &chunkReader{ctx: ctx, next: c.NextChunk}
}

// Close drops the transport reference. It is safe to call more than once.
func (c *ReceiverContent) Close() error {
	c.receive = nil
	c.disposed = true
	return nil
}
