package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch(t *testing.T) {
	var gotAgent, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.UserAgent()
		gotHeader = r.Header.Get("X-Test")
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("hello"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 100)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("ok", func(t *testing.T) {
		data, err := Fetch(context.Background(), srv.URL+"/ok", FetchOptions{Headers: map[string]string{"X-Test": "1"}})
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if string(data) != "hello" {
			t.Errorf("Fetch() = %q, want hello", data)
		}
		if !strings.HasPrefix(gotAgent, UserAgentName+"/") {
			t.Errorf("User-Agent = %q", gotAgent)
		}
		if gotHeader != "1" {
			t.Errorf("X-Test = %q, want 1", gotHeader)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := Fetch(context.Background(), srv.URL+"/missing", FetchOptions{}); err == nil {
			t.Error("Fetch() expected error for 404")
		}
	})

	t.Run("too large", func(t *testing.T) {
		if _, err := Fetch(context.Background(), srv.URL+"/big", FetchOptions{MaxBytes: 10}); err == nil {
			t.Error("Fetch() expected error for oversized body")
		}
	})

	t.Run("exact limit", func(t *testing.T) {
		if _, err := Fetch(context.Background(), srv.URL+"/big", FetchOptions{MaxBytes: 100}); err != nil {
			t.Errorf("Fetch() error = %v", err)
		}
	})
}
