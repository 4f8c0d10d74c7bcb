package wikipedia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/wikiseek/internal/search"
)

func TestClient_Search(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name       string
		body       string
		statusCode int
		wantErr    error
	}{
		{
			name:       "results",
			body:       `{"query":{"searchinfo":{"totalhits":500},"search":[{"title":"Cat","snippet":"A cat is...","wordcount":1200}]}}`,
			statusCode: http.StatusOK,
		},
		{
			name:       "zero hits with suggestion",
			body:       `{"query":{"searchinfo":{"totalhits":0,"suggestion":"asdf"},"search":[]}}`,
			statusCode: http.StatusOK,
		},
		{
			name:       "zero hits no suggestion",
			body:       `{"query":{"searchinfo":{"totalhits":0},"search":[]}}`,
			statusCode: http.StatusOK,
		},
		{
			name:       "server error",
			body:       `{"error":"internal"}`,
			statusCode: http.StatusInternalServerError,
			wantErr:    search.ErrBadStatus,
		},
		{
			name:       "not json",
			body:       `<html>maintenance</html>`,
			statusCode: http.StatusOK,
			wantErr:    search.ErrMalformedResponse,
		},
		{
			name:       "missing query",
			body:       `{"batchcomplete":""}`,
			statusCode: http.StatusOK,
			wantErr:    search.ErrMalformedResponse,
		},
		{
			name:       "missing searchinfo",
			body:       `{"query":{"search":[]}}`,
			statusCode: http.StatusOK,
			wantErr:    search.ErrMalformedResponse,
		},
		{
			name:       "missing search list",
			body:       `{"query":{"searchinfo":{"totalhits":0}}}`,
			statusCode: http.StatusOK,
			wantErr:    search.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := New(Config{BaseURL: server.URL, Timeout: 5 * time.Second}, logger)

			resp, err := client.Search(context.Background(), "cat")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Search() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Search() unexpected error = %v", err)
			}
			if resp == nil {
				t.Fatal("Search() returned nil response")
			}
		})
	}
}

func TestClient_Search_RequestParams(t *testing.T) {
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"query":{"searchinfo":{"totalhits":0},"search":[]}}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Limit: 10}, zap.NewNop())

	if _, err := client.Search(context.Background(), "domestic cat"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := map[string]string{
		"action":   "query",
		"origin":   "*",
		"list":     "search",
		"format":   "json",
		"srsearch": "domestic cat",
		"srlimit":  "10",
	}
	for key, val := range want {
		if len(gotQuery[key]) != 1 || gotQuery[key][0] != val {
			t.Errorf("query param %s = %v, want %q", key, gotQuery[key], val)
		}
	}
}

func TestClient_Search_ParsesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query":{"searchinfo":{"totalhits":500,"suggestion":""},"search":[` +
			`{"title":"Cat","snippet":"A <span class=\"searchmatch\">cat</span> is...","wordcount":1200},` +
			`{"title":"Felidae","snippet":"The cat family","wordcount":3400}]}}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL}, zap.NewNop())

	resp, err := client.Search(context.Background(), "cat")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if resp.TotalHits != 500 {
		t.Errorf("TotalHits = %d, want 500", resp.TotalHits)
	}
	if len(resp.Articles) != 2 {
		t.Fatalf("len(Articles) = %d, want 2", len(resp.Articles))
	}
	if resp.Articles[0].Title != "Cat" || resp.Articles[1].Title != "Felidae" {
		t.Errorf("article order not preserved: %+v", resp.Articles)
	}
	if resp.Articles[0].WordCount != 1200 {
		t.Errorf("WordCount = %d, want 1200", resp.Articles[0].WordCount)
	}
	if resp.Articles[0].Snippet != `A <span class="searchmatch">cat</span> is...` {
		t.Errorf("Snippet altered: %q", resp.Articles[0].Snippet)
	}
}

func TestClient_Search_SingleRequestPerCall(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL}, zap.NewNop())

	if _, err := client.Search(context.Background(), "cat"); err == nil {
		t.Fatal("Search() expected error on 502")
	}
	if calls != 1 {
		t.Errorf("server saw %d requests, want exactly 1 (no retry)", calls)
	}
}

func TestClient_Search_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := New(Config{BaseURL: server.URL}, zap.NewNop())

	_, err := client.Search(context.Background(), "cat")
	if !errors.Is(err, search.ErrRequestFailed) {
		t.Errorf("Search() error = %v, want ErrRequestFailed", err)
	}
}
