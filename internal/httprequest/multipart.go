package httprequest

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// multipartField represents one part of a multipart form.
type multipartField struct {
	name        string
	filename    string
	contentType string
	value       string
	reader      io.Reader
}

// Multipart provides a streaming multipart/form-data builder for HTTP
// requests. Parts are serialized through a pipe while the request is in
// flight, so file payloads never need to fit in memory.
type Multipart struct {
	client     http.Client
	request    *http.Request
	fields     []multipartField
	cancelFunc context.CancelFunc
}

// NewMultipart creates a new streaming multipart/form-data request builder.
func NewMultipart(ctx context.Context, client http.Client, method, url string) *Multipart {
	request, _ := http.NewRequestWithContext(ctx, method, url, nil)
	return &Multipart{
		client:  client,
		request: request,
		fields:  make([]multipartField, 0, 16),
	}
}

// Use wraps the client transport with a middleware.
func (r *Multipart) Use(middleware func(http.RoundTripper) http.RoundTripper) *Multipart {
	if r.client.Transport == nil {
		r.client.Transport = http.DefaultTransport
	}
	r.client.Transport = middleware(r.client.Transport)
	return r
}

// Timeout sets a timeout for the request.
func (r *Multipart) Timeout(duration time.Duration) *Multipart {
	ctx, cancel := context.WithTimeout(r.request.Context(), duration)
	r.cancelFunc = cancel
	r.request = r.request.WithContext(ctx)
	return r
}

// Header sets an HTTP header on the request.
func (r *Multipart) Header(key, value string) *Multipart {
	r.request.Header.Set(key, value)
	return r
}

// PathParam replaces a path variable placeholder in the URL.
func (r *Multipart) PathParam(key, value string) *Multipart {
	placeholder := "{" + key + "}"
	r.request.URL.Path = strings.ReplaceAll(r.request.URL.Path, placeholder, value)
	return r
}

// Cookie adds a cookie to the multipart request.
func (r *Multipart) Cookie(name, value string) *Multipart {
	r.request.AddCookie(&http.Cookie{Name: name, Value: value})
	return r
}

// Param adds a text field to the multipart form.
func (r *Multipart) Param(key, value string) *Multipart {
	r.fields = append(r.fields, multipartField{name: key, value: value})
	return r
}

// File adds a file field to the multipart form, streamed from content.
func (r *Multipart) File(key, filename string, content io.Reader) *Multipart {
	r.fields = append(r.fields, multipartField{name: key, filename: filename, reader: content})
	return r
}

// Part adds a file field with an explicit part content type.
func (r *Multipart) Part(key, filename, contentType string, content io.Reader) *Multipart {
	r.fields = append(r.fields, multipartField{
		name:        key,
		filename:    filename,
		contentType: contentType,
		reader:      content,
	})
	return r
}

// Send executes the HTTP request and returns the response.
func (r *Multipart) Send() (*http.Response, error) {
	ctx := r.request.Context()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	r.request.Body = pr

	r.request.Header.Set(contentTypeHeader, mw.FormDataContentType())

	go func() {
		defer pw.Close()
		defer mw.Close()

		for _, field := range r.fields {
			select {
			case <-ctx.Done():
				pw.CloseWithError(ctx.Err())
				return
			default:
			}
			if err := writeField(mw, field); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
	}()

	return r.sendRequest()
}

func writeField(mw *multipart.Writer, field multipartField) error {
	if field.reader == nil {
		return mw.WriteField(field.name, field.value)
	}

	var part io.Writer
	var err error
	if field.contentType == "" {
		part, err = mw.CreateFormFile(field.name, field.filename)
	} else {
		part, err = mw.CreatePart(partHeader(field))
	}
	if err != nil {
		return err
	}
	_, err = io.Copy(part, field.reader)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, `\"`)

func partHeader(field multipartField) textproto.MIMEHeader {
	disposition := `form-data; name="` + quoteEscaper.Replace(field.name) + `"`
	if field.filename != "" {
		disposition += `; filename="` + quoteEscaper.Replace(field.filename) + `"`
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", disposition)
	h.Set(contentTypeHeader, field.contentType)
	return h
}

func (r *Multipart) sendRequest() (*http.Response, error) {
	resp, err := r.client.Do(r.request)
	if err != nil {
		if r.cancelFunc != nil {
			r.cancelFunc()
		}
		return nil, err
	}
	if r.cancelFunc != nil {
		resp.Body = &cancelCloser{resp.Body, r.cancelFunc}
		r.cancelFunc = nil
	}
	return resp, nil
}
