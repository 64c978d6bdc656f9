package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/evidence"
)

func testConfig(endpoint string) config.EvidenceConfig {
	return config.EvidenceConfig{
		APIKey:         "test-key",
		Endpoint:       endpoint,
		MaxResults:     7,
		SearchDepth:    "advanced",
		IncludeDomains: []string{"cdc.gov", "who.int"},
		Timeout:        5 * time.Second,
	}
}

func TestSearch_BuildsClinicalQuery(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"answer":  "summary",
			"results": []map[string]any{{"title": "t", "url": "https://cdc.gov/x", "content": "c"}},
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())
	if _, err := c.Search(context.Background(), "persistent cough fatigue"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	query, _ := captured["query"].(string)
	want := "latest clinical guidelines for persistent cough fatigue, differential diagnosis, treatment options"
	if query != want {
		t.Fatalf("expected query %q, got %q", want, query)
	}
	if captured["api_key"] != "test-key" {
		t.Fatal("api key not sent")
	}
	if captured["max_results"] != float64(7) {
		t.Fatalf("expected max_results 7, got %v", captured["max_results"])
	}
	if captured["include_answer"] != true {
		t.Fatal("expected include_answer true")
	}
	domains, _ := captured["include_domains"].([]any)
	if len(domains) != 2 {
		t.Fatalf("expected configured domain allow-list, got %v", captured["include_domains"])
	}
}

func TestSearch_PreservesResultOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"answer": "summary",
			"results": []map[string]any{
				{"title": "first", "url": "https://who.int/1", "content": "a", "score": 0.2},
				{"title": "second", "url": "https://cdc.gov/2", "content": "b", "score": 0.9},
				{"title": "third", "url": "https://who.int/3", "content": "c", "score": 0.5},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())
	got, err := c.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Upstream order is kept even when scores would rank differently.
	urls := got.SourceURLs()
	want := []string{"https://who.int/1", "https://cdc.gov/2", "https://who.int/3"}
	for i := range want {
		if urls[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, urls)
		}
	}
}

func TestSearch_ZeroResultsIsInsufficientEvidence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"answer": "nothing found", "results": []any{}})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())
	if _, err := c.Search(context.Background(), "q"); !errors.Is(err, evidence.ErrInsufficientEvidence) {
		t.Fatalf("expected ErrInsufficientEvidence, got %v", err)
	}
}

func TestSearch_RateLimitStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"rate limit"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())
	_, err := c.Search(context.Background(), "q")

	var se *evidence.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected StatusError 429, got %v", err)
	}
	if strings.Contains(err.Error(), "rate limit") {
		t.Fatal("upstream body must not leak into the error")
	}
}

func TestSearch_MissingAPIKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""
	c := NewClient(cfg, zap.NewNop())

	if _, err := c.Search(context.Background(), "q"); !errors.Is(err, evidence.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if calls != 0 {
		t.Fatal("configuration check must fail before any network call")
	}
}
