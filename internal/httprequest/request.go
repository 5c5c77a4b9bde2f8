package httprequest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// Request provides a builder for HTTP requests whose body comes from a
// content source, a raw reader, or a JSON-encoded value.
type Request struct {
	*http.Request
	client     http.Client
	source     BodySource
	jsonValue  any
	hasJSON    bool
	cancelFunc context.CancelFunc
}

// NewRequest creates a new HTTP request builder.
func NewRequest(ctx context.Context, client http.Client, method string, url string) *Request {
	request, _ := http.NewRequestWithContext(ctx, method, url, nil)
	return &Request{
		Request: request,
		client:  client,
	}
}

// Use wraps the client transport with a middleware.
func (r *Request) Use(middleware func(http.RoundTripper) http.RoundTripper) *Request {
	if r.client.Transport == nil {
		r.client.Transport = http.DefaultTransport
	}
	r.client.Transport = middleware(r.client.Transport)
	return r
}

// Timeout sets a timeout for the request.
func (r *Request) Timeout(duration time.Duration) *Request {
	ctx, cancel := context.WithTimeout(r.Context(), duration)
	r.cancelFunc = cancel
	r.Request = r.WithContext(ctx)
	return r
}

// Header sets an HTTP header on the request.
func (r *Request) Header(key, value string) *Request {
	r.Request.Header.Set(key, value)
	return r
}

// Param adds a query parameter to the request.
func (r *Request) Param(key, value string) *Request {
	q := r.Request.URL.Query()
	q.Set(key, value)
	r.Request.URL.RawQuery = q.Encode()
	return r
}

// PathParam replaces a path variable placeholder in the URL.
// Replaces {key} with the provided value.
// Example: "/users/{id}" with PathParam("id", "123") becomes "/users/123"
func (r *Request) PathParam(key, value string) *Request {
	placeholder := "{" + key + "}"
	r.Request.URL.Path = strings.ReplaceAll(r.Request.URL.Path, placeholder, value)
	return r
}

// Cookie adds a cookie to the request.
// Subsequent calls append additional cookies.
func (r *Request) Cookie(name, value string) *Request {
	r.Request.AddCookie(&http.Cookie{Name: name, Value: value})
	return r
}

// Body sets a raw request body and Content-Type header.
func (r *Request) Body(body io.ReadCloser, contentType string) *Request {
	r.Request.Header.Set(contentTypeHeader, contentType)
	r.Request.Body = body
	return r
}

// Content sets the request body from a content source. The Content-Type
// header follows the source's media type; Content-Length is set when the
// source knows its size.
func (r *Request) Content(src BodySource) *Request {
	r.source = src
	return r
}

// JSON sets the request body as JSON, encoded while the request streams.
func (r *Request) JSON(value any) *Request {
	r.Request.Header.Set(contentTypeHeader, jsonContentType)
	r.jsonValue = value
	r.hasJSON = true
	return r
}

// Send executes the HTTP request and returns the response.
func (r *Request) Send() (*http.Response, error) {
	ctx := r.Context()

	switch {
	case r.source != nil:
		r.Request.Header.Set(contentTypeHeader, r.source.MediaType())
		if n := r.source.Length(); n >= 0 {
			r.Request.ContentLength = n
		}
		r.Request.Body = io.NopCloser(r.source.Reader(ctx))

	case r.hasJSON:
		pr, pw := io.Pipe()
		r.Request.Body = pr

		go func() {
			defer pw.Close()

			select {
			case <-ctx.Done():
				pw.CloseWithError(ctx.Err())
				return
			default:
			}

			encoder := json.NewEncoder(pw)
			if err := encoder.Encode(r.jsonValue); err != nil {
				pw.CloseWithError(err)
				return
			}
		}()
	}

	return r.sendRequest()
}

func (r *Request) sendRequest() (*http.Response, error) {
	resp, err := r.client.Do(r.Request)
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
