package canvas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListFiles_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses/101/files" {
			t.Errorf("expected path /api/v1/courses/101/files, got %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]*File{
			{ID: 55, DisplayName: "syllabus.pdf", Filename: "syllabus.pdf", ContentType: "application/pdf", Size: 123456},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	files, _, err := client.ListFiles(context.Background(), 101, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].DisplayName != "syllabus.pdf" {
		t.Errorf("expected display name 'syllabus.pdf', got %q", files[0].DisplayName)
	}
	if files[0].Size != 123456 {
		t.Errorf("expected size 123456, got %d", files[0].Size)
	}
}

func TestListFiles_WithOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("search_term") != "lecture" {
			t.Errorf("expected search_term=lecture, got %s", q.Get("search_term"))
		}
		if q.Get("sort") != "size" || q.Get("order") != "desc" {
			t.Errorf("expected sort=size order=desc, got sort=%s order=%s", q.Get("sort"), q.Get("order"))
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]*File{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	opts := &ListFilesOptions{SearchTerm: "lecture", Sort: "size", Order: "desc"}
	_, _, err := client.ListFiles(context.Background(), 101, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetFile_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/files/55" {
			t.Errorf("expected path /api/v1/files/55, got %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(File{ID: 55, DisplayName: "syllabus.pdf", URL: "https://files.canvas.test/55/download"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	file, err := client.GetFile(context.Background(), 55)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if file.URL == "" {
		t.Error("expected download URL to be set")
	}
}

func TestDownloadFile_Success(t *testing.T) {
	const content = "file body bytes"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download/55" {
			t.Errorf("expected path /download/55, got %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(content))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	var buf strings.Builder
	n, err := client.DownloadFile(context.Background(), server.URL+"/download/55", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n != int64(len(content)) {
		t.Errorf("expected %d bytes, got %d", len(content), n)
	}
	if buf.String() != content {
		t.Errorf("expected body %q, got %q", content, buf.String())
	}
}

func TestDownloadFile_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	var buf strings.Builder
	_, err := client.DownloadFile(context.Background(), server.URL+"/download/55", &buf)
	if err == nil {
		t.Fatal("expected error for 403 download response")
	}
}

func TestDownloadFile_EmptyURL(t *testing.T) {
	client := NewClient("https://canvas.test", "test-token")

	var buf strings.Builder
	_, err := client.DownloadFile(context.Background(), "", &buf)
	if err == nil {
		t.Fatal("expected error for empty download URL")
	}
}
