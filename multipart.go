package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const boundaryPrefix = "------"

// FormPart is one named field of a multipart form. ContentType, FileName and
// Charset are optional. Parts compare by reference, not by value.
type FormPart struct {
	Name        string
	Data        []byte
	ContentType string
	FileName    string
	Charset     string
}

// MultiPartFormData is a multipart/form-data body. The boundary is generated
// at construction time and is unique per instance; the serialized body is
// produced on demand, not eagerly.
type MultiPartFormData struct {
	parts    []*FormPart
	boundary string
}

// NewMultiPartFormData wraps an ordered list of form parts.
func NewMultiPartFormData(parts []*FormPart) *MultiPartFormData {
	return &MultiPartFormData{
		parts:    parts,
		boundary: boundaryPrefix + strings.ReplaceAll(uuid.New().String(), "-", ""),
	}
}

// Boundary returns the generated part delimiter.
func (m *MultiPartFormData) Boundary() string { return m.boundary }

// Parts returns the parts in serialization order.
func (m *MultiPartFormData) Parts() []*FormPart { return m.parts }

func (m *MultiPartFormData) MediaType() string {
	return "multipart/form-data; boundary=" + m.boundary
}

// Length is -1: the body size is unknown until serialized.
func (m *MultiPartFormData) Length() int64 { return -1 }

// Read serializes all parts into memory.
func (m *MultiPartFormData) Read(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Reader serializes the parts through a pipe so large bodies never sit in
// memory as a whole.
func (m *MultiPartFormData) Reader(ctx context.Context) io.Reader {
	pr, pw := io.Pipe()
	go func() {
		_, err := m.WriteTo(pw)
		pw.CloseWithError(err)
	}()
	return pr
}

// WriteTo serializes the parts as boundary-delimited MIME sections followed
// by the closing boundary marker.
func (m *MultiPartFormData) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	mw := multipart.NewWriter(cw)
	if err := mw.SetBoundary(m.boundary); err != nil {
		return cw.n, err
	}

	for _, part := range m.parts {
		header, err := part.mimeHeader()
		if err != nil {
			return cw.n, err
		}
		pw, err := mw.CreatePart(header)
		if err != nil {
			return cw.n, err
		}
		if _, err := pw.Write(part.Data); err != nil {
			return cw.n, err
		}
	}

	return cw.n, mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, `\"`)

func (p *FormPart) mimeHeader() (textproto.MIMEHeader, error) {
	if p.Charset == "" {
		if !utf8.ValidString(p.Name) {
			return nil, fmt.Errorf("%w: part name %q is not valid utf-8", ErrEncoding, p.Name)
		}
		if !utf8.ValidString(p.FileName) {
			return nil, fmt.Errorf("%w: file name of part %q is not valid utf-8", ErrEncoding, p.Name)
		}
	}

	disposition := `form-data; name="` + quoteEscaper.Replace(p.Name) + `"`
	if p.FileName != "" {
		disposition += `; filename="` + quoteEscaper.Replace(p.FileName) + `"`
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", disposition)
	if p.ContentType != "" {
		contentType := p.ContentType
		if p.Charset != "" {
			contentType += "; charset=" + p.Charset
		}
		header.Set("Content-Type", contentType)
	}
	return header, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
