package zenn

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/articles" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("username") != "writer" || q.Get("order") != "latest" || q.Get("count") != "20" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"articles":[
			{"title":"Hot take","slug":"hot","emoji":"🔥","article_type":"tech","liked_count":12,"published_at":"2025-01-03T00:00:00Z","path":"/writer/articles/hot","topics":["go"]},
			{"title":"Quiet one","slug":"quiet","article_type":"idea","liked_count":0,"published_at":"2025-01-01T00:00:00Z","path":"/writer/articles/quiet"}
		]}`))
	}))
	defer srv.Close()

	c := New(nil, testLogger())
	c.baseURL = srv.URL

	data, err := c.FetchArticles(context.Background(), "writer")
	if err != nil {
		t.Fatalf("FetchArticles: %v", err)
	}
	if len(data.Articles) != 2 {
		t.Fatalf("articles = %d, want 2", len(data.Articles))
	}
	a := data.Articles[0]
	if a.Title != "Hot take" || a.LikedCount != 12 || a.ArticleType != "tech" {
		t.Errorf("first article = %+v", a)
	}
	if len(a.Topics) != 1 || a.Topics[0] != "go" {
		t.Errorf("topics = %v", a.Topics)
	}
}

func TestFetchArticlesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(nil, testLogger())
	c.baseURL = srv.URL

	if _, err := c.FetchArticles(context.Background(), "ghost"); err == nil {
		t.Error("expected error for non-2xx response")
	}
}

func TestFetchArticlesRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"articles":[]}`))
	}))
	defer srv.Close()

	c := New(nil, testLogger())
	c.baseURL = srv.URL

	data, err := c.FetchArticles(context.Background(), "writer")
	if err != nil {
		t.Fatalf("FetchArticles: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2 (one retry)", attempts)
	}
	if len(data.Articles) != 0 {
		t.Errorf("articles = %d, want 0", len(data.Articles))
	}
}
