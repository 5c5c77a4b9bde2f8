package content_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nativebpm/connectors/content"
)

func chunkProvider(chunks ...string) content.ChunkProvider {
	i := 0
	return func(ctx context.Context) ([]byte, error) {
		if i >= len(chunks) {
			return nil, io.EOF
		}
		chunk := chunks[i]
		i++
		return []byte(chunk), nil
	}
}

func TestStreamedContent_NextPart(t *testing.T) {
	c := content.NewStreamedContent(content.TypeOctetStream, chunkProvider("ab", "cd", "e"))

	assert.Equal(t, content.TypeOctetStream, c.MediaType())
	assert.Equal(t, int64(-1), c.Length())

	ctx := context.Background()
	for _, want := range []string{"ab", "cd", "e"} {
		chunk, err := c.NextPart(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, string(chunk))
	}

	_, err := c.NextPart(ctx)
	assert.Equal(t, io.EOF, err)

	// exhausted for good
	_, err = c.NextPart(ctx)
	assert.Equal(t, io.EOF, err)
}

func TestStreamedContent_ReadDrains(t *testing.T) {
	c := content.NewStreamedContent(content.TypeOctetStream, chunkProvider("ab", "cd", "e"))

	got, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abcde", string(got))

	// a second read finds nothing: a single consumption exhausts the stream
	got, err = c.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStreamedContent_ReadAfterPartialStream(t *testing.T) {
	c := content.NewStreamedContent(content.TypeOctetStream, chunkProvider("ab", "cd", "e"))

	ctx := context.Background()
	chunk, err := c.NextPart(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(chunk))

	got, err := c.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cde", string(got))
}

func TestStreamedContent_Reader(t *testing.T) {
	c := content.NewStreamedContent(content.TypeOctetStream, chunkProvider("ab", "cd", "e"))

	got, err := io.ReadAll(c.Reader(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, "abcde", string(got))
}

func TestStreamedContent_ProviderFailure(t *testing.T) {
	boom := errors.New("upstream gone")
	c := content.NewStreamedContent(content.TypeOctetStream, func(ctx context.Context) ([]byte, error) {
		return nil, boom
	})

	_, err := c.Read(context.Background())
	assert.ErrorIs(t, err, boom)
}
