package sheet

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mind-engage/quizsheet/internal/catalog"
	"github.com/mind-engage/quizsheet/internal/storage"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetcherSheetFilterAndCacheBust(t *testing.T) {
	var mu sync.Mutex
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotQuery = r.URL.RawQuery
		mu.Unlock()
		io.WriteString(w, sheetCSV(
			"Q1,a,b,,,a,,,,,,,,1",
			"Q2,a,b,,,b,,,,,,,,2",
		))
	}))
	defer srv.Close()

	f := &Fetcher{
		HTTP: srv.Client(),
		Log:  quietLogger(),
		Now:  func() time.Time { return time.UnixMilli(1700000000000) },
	}
	two := 2
	qs := f.Questions(context.Background(), catalog.Topic{ID: "verbs", SheetURL: srv.URL + "/sheet?output=csv", WorksheetNumber: &two})
	if len(qs) != 1 || qs[0].Text != "Q2" {
		t.Fatalf("questions = %+v", qs)
	}
	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(gotQuery, "t=1700000000000") {
		t.Fatalf("query %q missing cache-bust", gotQuery)
	}
}

func TestFetcherFallsBackToSamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	f := &Fetcher{HTTP: srv.Client(), Log: quietLogger()}
	qs := f.Questions(context.Background(), catalog.Topic{ID: "space", SheetURL: srv.URL})
	if len(qs) != len(SampleQuestions("space")) {
		t.Fatalf("expected space samples on HTTP error, got %d", len(qs))
	}

	qs = f.Questions(context.Background(), catalog.Topic{ID: "math", SheetURL: "PLACEHOLDER_URL"})
	if len(qs) != len(SampleQuestions("math")) {
		t.Fatalf("expected math samples for placeholder url, got %d", len(qs))
	}
}

func TestFetcherEmptySheetFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, header+"\n")
	}))
	defer srv.Close()

	f := &Fetcher{HTTP: srv.Client(), Log: quietLogger()}
	qs := f.Questions(context.Background(), catalog.Topic{ID: "geography", SheetURL: srv.URL})
	if len(qs) != 1 || qs[0].ID != "geography-q1" {
		t.Fatalf("expected geography samples, got %+v", qs)
	}
}

func TestFetcherLocalModeIgnoresFilter(t *testing.T) {
	blobs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	csv := sheetCSV("Q1,a,b,,,a,,,,,,,,1", "Q2,a,b,,,b,,,,,,,,2")
	if _, err := blobs.Put("ws/grammar/questions.csv", strings.NewReader(csv)); err != nil {
		t.Fatalf("put: %v", err)
	}
	f := &Fetcher{Blobs: blobs, Local: true, Log: quietLogger()}
	one := 1
	qs := f.Questions(context.Background(), catalog.Topic{ID: "grammar", LocalPath: "ws/grammar", WorksheetNumber: &one})
	if len(qs) != 2 {
		t.Fatalf("local mode should not filter, got %d", len(qs))
	}
}

func TestFetcherMasterConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, masterCSV)
	}))
	defer srv.Close()

	f := &Fetcher{HTTP: srv.Client(), MasterConfigURL: srv.URL + "/pub?output=csv", Log: quietLogger()}
	if got := len(f.TopicConfigs(context.Background())); got != 3 {
		t.Fatalf("topic configs = %d", got)
	}
	if got := len(f.Leaderboard(context.Background())); got != 2 {
		t.Fatalf("leaderboard = %d", got)
	}

	unset := &Fetcher{Log: quietLogger()}
	if unset.Leaderboard(context.Background()) != nil {
		t.Fatalf("unset master url should yield nil")
	}
}

func TestCacheBust(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_123)
	if got := CacheBust("https://x/pub?output=csv", now); got != "https://x/pub?output=csv&t=1700000000123" {
		t.Fatalf("with query: %s", got)
	}
	if got := CacheBust("https://x/export", now); got != "https://x/export?t=1700000000123" {
		t.Fatalf("without query: %s", got)
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/big":
			io.WriteString(w, strings.Repeat("x", maxSheetBytes+10))
		case "/gone":
			w.WriteHeader(http.StatusGone)
		default:
			io.WriteString(w, "a,b")
		}
	}))
	defer srv.Close()
	ctx := context.Background()

	if got, err := Download(ctx, srv.Client(), srv.URL+"/ok"); err != nil || got != "a,b" {
		t.Fatalf("ok: %q %v", got, err)
	}
	if got, err := Download(ctx, nil, srv.URL+"/big"); err != nil || len(got) != maxSheetBytes {
		t.Fatalf("big: %d %v", len(got), err)
	}
	if _, err := Download(ctx, srv.Client(), srv.URL+"/gone"); err == nil || !strings.Contains(err.Error(), "HTTP 410") {
		t.Fatalf("gone: %v", err)
	}
}
