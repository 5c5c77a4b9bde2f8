package content

import (
	"bytes"
	"context"
	"io"
)

// ChunkProvider supplies body chunks one at a time and returns io.EOF when
// the stream is exhausted. Providers are single-pass: after io.EOF they must
// keep returning io.EOF.
type ChunkProvider func(ctx context.Context) ([]byte, error)

// StreamedContent is a body produced lazily by a chunk provider. Its length
// is unknown and the chunk sequence is not restartable: once exhausted,
// NextPart keeps returning io.EOF unless a fresh provider is supplied at
// construction.
type StreamedContent struct {
	mediaType string
	next      ChunkProvider
	exhausted bool
}

// NewStreamedContent wraps a chunk provider with a media type.
func NewStreamedContent(mediaType string, provider ChunkProvider) *StreamedContent {
	return &StreamedContent{mediaType: mediaType, next: provider}
}

func (c *StreamedContent) MediaType() string { return c.mediaType }

// Length is -1: the body size is unknown until the stream is drained.
func (c *StreamedContent) Length() int64 { return -1 }

// NextPart pulls the next chunk from the provider. io.EOF signals the end of
// the stream.
func (c *StreamedContent) NextPart(ctx context.Context) ([]byte, error) {
	if c.exhausted {
		return nil, io.EOF
	}
	chunk, err := c.next(ctx)
	if err != nil {
		if err == io.EOF {
			c.exhausted = true
		}
		return nil, err
	}
	return chunk, nil
}

// Read drains the remaining chunks and returns their concatenation. The
// whole stream is buffered in memory.
func (c *StreamedContent) Read(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	for {
		chunk, err := c.NextPart(ctx)
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
		buf.Write(chunk)
	}
}

// Reader adapts the chunk sequence to an io.Reader. It consumes the same
// cursor as NextPart and Read.
func (c *StreamedContent) Reader(ctx context.Context) io.Reader {
	return &chunkReader{ctx: ctx, next: c.NextPart}
}

// chunkReader turns a chunk-pulling function into an io.Reader.
type chunkReader struct {
	ctx  context.Context
	next func(context.Context) ([]byte, error)
	buf  []byte
	err  error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		chunk, err := r.next(r.ctx)
		if err != nil {
			r.err = err
			return 0, err
		}
		r.buf = chunk
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}
