package httprequest_test

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nativebpm/connectors/content/internal/httprequest"
)

type receivedPart struct {
	formName    string
	fileName    string
	contentType string
	data        string
}

func multipartEchoServer(t *testing.T, parts *[]receivedPart) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			t.Errorf("parse media type: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if mediaType != "multipart/form-data" {
			t.Errorf("media type = %q, want multipart/form-data", mediaType)
			http.Error(w, "invalid content type", http.StatusBadRequest)
			return
		}

		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Errorf("read part: %v", err)
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			data, err := io.ReadAll(p)
			if err != nil {
				t.Errorf("read part data: %v", err)
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			*parts = append(*parts, receivedPart{
				formName:    p.FormName(),
				fileName:    p.FileName(),
				contentType: p.Header.Get("Content-Type"),
				data:        string(data),
			})
			p.Close()
		}

		w.WriteHeader(http.StatusOK)
	}))
}

func TestMultipart_Param(t *testing.T) {
	var parts []receivedPart
	server := multipartEchoServer(t, &parts)
	defer server.Close()

	resp, err := httprequest.NewMultipart(context.Background(), http.Client{}, http.MethodPost, server.URL).
		Param("name", "John Doe").
		Param("email", "john@example.com").
		Send()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if len(parts) != 2 {
		t.Fatalf("received %d parts, want 2", len(parts))
	}
	if parts[0].formName != "name" || parts[0].data != "John Doe" {
		t.Errorf("first part = %+v", parts[0])
	}
	if parts[1].formName != "email" || parts[1].data != "john@example.com" {
		t.Errorf("second part = %+v", parts[1])
	}
}

func TestMultipart_File(t *testing.T) {
	var parts []receivedPart
	server := multipartEchoServer(t, &parts)
	defer server.Close()

	resp, err := httprequest.NewMultipart(context.Background(), http.Client{}, http.MethodPost, server.URL).
		File("doc", "report.bin", strings.NewReader("binary payload")).
		Send()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if len(parts) != 1 {
		t.Fatalf("received %d parts, want 1", len(parts))
	}
	if parts[0].formName != "doc" || parts[0].fileName != "report.bin" {
		t.Errorf("part = %+v", parts[0])
	}
	if parts[0].contentType != "application/octet-stream" {
		t.Errorf("content type = %q, want application/octet-stream", parts[0].contentType)
	}
	if parts[0].data != "binary payload" {
		t.Errorf("data = %q", parts[0].data)
	}
}

func TestMultipart_PartWithContentType(t *testing.T) {
	var parts []receivedPart
	server := multipartEchoServer(t, &parts)
	defer server.Close()

	resp, err := httprequest.NewMultipart(context.Background(), http.Client{}, http.MethodPost, server.URL).
		Part("page", "index.html", "text/html", strings.NewReader("<html></html>")).
		Send()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if len(parts) != 1 {
		t.Fatalf("received %d parts, want 1", len(parts))
	}
	if parts[0].contentType != "text/html" {
		t.Errorf("content type = %q, want text/html", parts[0].contentType)
	}
	if parts[0].fileName != "index.html" {
		t.Errorf("file name = %q, want index.html", parts[0].fileName)
	}
}

func TestMultipart_MixedFields(t *testing.T) {
	var parts []receivedPart
	server := multipartEchoServer(t, &parts)
	defer server.Close()

	resp, err := httprequest.NewMultipart(context.Background(), http.Client{}, http.MethodPost, server.URL).
		Param("title", "quarterly").
		File("attachment", "q3.csv", strings.NewReader("a,b\n1,2\n")).
		Send()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if len(parts) != 2 {
		t.Fatalf("received %d parts, want 2", len(parts))
	}
	if parts[0].formName != "title" {
		t.Errorf("fields out of order: %+v", parts)
	}
	if parts[1].data != "a,b\n1,2\n" {
		t.Errorf("file data = %q", parts[1].data)
	}
}
