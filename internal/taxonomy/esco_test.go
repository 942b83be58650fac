package taxonomy

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *ESCOClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewESCOClient(Options{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
		Logger:  log.New(&bytes.Buffer{}, "", 0),
	})
}

func TestSearch_ReturnsFirstResult(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"text":          q.Get("text"),
			"type":          q.Get("type"),
			"language":      q.Get("language"),
			"skillGroupIds": q.Get("skillGroupIds"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_embedded":{"results":[
			{"uri":"http://data.europa.eu/esco/skill/abc","preferredLabel":{"en-us":"use Docker","en":"Docker"}},
			{"uri":"http://data.europa.eu/esco/skill/def","preferredLabel":{"en":"other"}}
		]}}`))
	})

	res, ok := c.Search(context.Background(), " docker ")
	if !ok {
		t.Fatalf("expected match")
	}
	if res.Label != "use Docker" || res.URI != "http://data.europa.eu/esco/skill/abc" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if gotQuery["text"] != "docker" || gotQuery["type"] != "skill" || gotQuery["language"] != "en" {
		t.Fatalf("unexpected query: %+v", gotQuery)
	}
	if gotQuery["skillGroupIds"] != strings.Join(ICTSkillGroups, ",") {
		t.Fatalf("unexpected skill groups: %s", gotQuery["skillGroupIds"])
	}
}

func TestSearch_FallsBackToEnLabel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"_embedded":{"results":[{"uri":"u1","preferredLabel":{"en":"SQL"}}]}}`))
	})
	res, ok := c.Search(context.Background(), "sql")
	if !ok || res.Label != "SQL" || res.URI != "u1" {
		t.Fatalf("unexpected result: %+v ok=%v", res, ok)
	}
}

func TestSearch_NoMatchCases(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "not found", status: http.StatusNotFound, body: ``},
		{name: "empty results", status: http.StatusOK, body: `{"_embedded":{"results":[]}}`},
		{name: "missing embedded", status: http.StatusOK, body: `{"total":0}`},
		{name: "no english label", status: http.StatusOK, body: `{"_embedded":{"results":[{"uri":"u","preferredLabel":{"de":"x"}}]}}`},
		{name: "malformed body", status: http.StatusOK, body: `{"_embedded":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			if res, ok := c.Search(context.Background(), "anything"); ok {
				t.Fatalf("expected no match, got %+v", res)
			}
		})
	}
}

func TestSearch_TransportFailureIsNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewESCOClient(Options{BaseURL: url, Timeout: time.Second, Logger: log.New(&bytes.Buffer{}, "", 0)})
	if _, ok := c.Search(context.Background(), "go"); ok {
		t.Fatalf("expected no match on transport failure")
	}
}

func TestSearch_BlankTextSkipsRequest(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	if _, ok := c.Search(context.Background(), "   "); ok {
		t.Fatalf("expected no match")
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("expected no request")
	}
}

func TestSearch_CancelledContextIsNoMatch(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"_embedded":{"results":[{"uri":"u","preferredLabel":{"en":"x"}}]}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewESCOClient(Options{BaseURL: srv.URL, RPS: 0.001, Logger: log.New(&bytes.Buffer{}, "", 0)})
	if _, ok := c.Search(context.Background(), "first"); !ok {
		t.Fatalf("expected first call to pass the limiter")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, ok := c.Search(ctx, "second"); ok {
		t.Fatalf("expected limiter wait to fail as no match")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
}
