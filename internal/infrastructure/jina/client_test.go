package jina

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	domainsearch "github.com/MartinSchlott/SimpleMCPSearchServer/internal/domain/search"
	"github.com/MartinSchlott/SimpleMCPSearchServer/utils/platformerrors"
)

func TestSearchRequestShapeAndMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "golang generics" {
			t.Errorf("expected query %q, got %q", "golang generics", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected Accept application/json, got %q", got)
		}
		if got := r.Header.Get("X-Respond-With"); got != "no-content" {
			t.Errorf("expected X-Respond-With no-content, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		if got := r.Header.Get("X-Site"); got != "go.dev" {
			t.Errorf("expected X-Site go.dev, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"code":   200,
			"status": 20000,
			"data": []map[string]any{
				{
					"title":       "The Go Programming Language",
					"url":         "https://go.dev",
					"description": "Build simple, secure, scalable systems",
					"date":        "2024-05-01",
					"usage":       map[string]int{"tokens": 1000},
				},
				{
					"title":       "Go Blog",
					"url":         "https://go.dev/blog",
					"description": "The Go blog",
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIKey: "test-key", SearchEndpoint: server.URL})
	results, err := client.Search(context.Background(), domainsearch.SearchRequest{
		Query: "golang generics",
		Site:  "go.dev",
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	want := domainsearch.SearchResult{
		Title:       "The Go Programming Language",
		URL:         "https://go.dev",
		Description: "Build simple, secure, scalable systems",
		Date:        "2024-05-01",
	}
	if results[0] != want {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].Date != "" {
		t.Errorf("expected empty date when provider omits it, got %q", results[1].Date)
	}
}

func TestSearchOmitsOptionalHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Error("unexpected Authorization header without API key")
		}
		if _, ok := r.Header["X-Site"]; ok {
			t.Error("unexpected X-Site header without site filter")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"code": 200, "data": []any{}})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{SearchEndpoint: server.URL})
	results, err := client.Search(context.Background(), domainsearch.SearchRequest{Query: "anything"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSearchUpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{SearchEndpoint: server.URL})
	_, err := client.Search(context.Background(), domainsearch.SearchRequest{Query: "anything"})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUpstream) {
		t.Errorf("expected UPSTREAM error, got: %v", err)
	}
}

func TestReadPageEncodesTargetURL(t *testing.T) {
	target := "https://example.com/docs/page one"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if want := "/" + url.PathEscape(target); r.URL.EscapedPath() != want {
			t.Errorf("expected path %q, got %q", want, r.URL.EscapedPath())
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected Accept application/json, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"data": map[string]any{
				"title":       "Docs",
				"description": "A docs page",
				"url":         target,
				"content":     "# Heading\n\nBody text.",
			},
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{ReaderEndpoint: server.URL + "/"})
	page, err := client.ReadPage(context.Background(), target)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if page.Title != "Docs" {
		t.Errorf("unexpected title %q", page.Title)
	}
	if page.URL != target {
		t.Errorf("unexpected url %q", page.URL)
	}
	if page.Content != "# Heading\n\nBody text." {
		t.Errorf("unexpected content %q", page.Content)
	}
}

func TestReadPageUpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{ReaderEndpoint: server.URL + "/"})
	_, err := client.ReadPage(context.Background(), "https://example.com/missing")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUpstream) {
		t.Errorf("expected UPSTREAM error, got: %v", err)
	}
}
