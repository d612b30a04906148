// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package census

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/dataset-census/internal/httputil"
	"github.com/pdiddy/dataset-census/pkg/types"
)

// fastPolicy keeps test sleeps tiny.
func fastPolicy(maxAttempts int) httputil.RetryPolicy {
	return httputil.RetryPolicy{MaxAttempts: maxAttempts, Delay: 1 * time.Millisecond}
}

// withSearchBase points the client at a mock server for the duration of
// a test.
func withSearchBase(t *testing.T, url string) {
	t.Helper()
	old := searchBase
	searchBase = url
	t.Cleanup(func() { searchBase = old })
}

func TestCount_Success(t *testing.T) {
	var gotQuery, gotAuth, gotAccept, gotVersion string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotVersion = r.Header.Get("X-GitHub-Api-Version")
		fmt.Fprint(w, `{"total_count": 120, "incomplete_results": false}`)
	}))
	defer ts.Close()
	withSearchBase(t, ts.URL)

	client := NewClient("test-token", types.HTTPConfig{Timeout: 5 * time.Second})
	count, err := client.Count(context.Background(), "sklearn.datasets load_iris extension:py", fastPolicy(1))
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 120 {
		t.Errorf("Count() = %d, want 120", count)
	}
	if gotQuery != "sklearn.datasets load_iris extension:py" {
		t.Errorf("query param = %q, want the raw query round-tripped through URL encoding", gotQuery)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want Bearer test-token", gotAuth)
	}
	if gotAccept != "application/vnd.github+json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotVersion != "2022-11-28" {
		t.Errorf("X-GitHub-Api-Version = %q", gotVersion)
	}
}

func TestCount_MissingTotalCountIsZero(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"incomplete_results": false, "items": []}`)
	}))
	defer ts.Close()
	withSearchBase(t, ts.URL)

	client := NewClient("t", types.HTTPConfig{})
	count, err := client.Count(context.Background(), "data(iris) extension:r", fastPolicy(1))
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0 for a response without total_count", count)
	}
}

func TestCount_NonSuccessStatusSingleRequest(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer ts.Close()
	withSearchBase(t, ts.URL)

	client := NewClient("t", types.HTTPConfig{})
	_, err := client.Count(context.Background(), "data(iris) extension:r", fastPolicy(10))
	if err == nil {
		t.Fatal("Count() expected error for HTTP 422")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error %q should name the status code", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("requests = %d, want 1 (non-rate-limit failures are not retried)", n)
	}
}

func TestCount_RateLimitedThenSuccess(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= 3 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{"total_count": 7}`)
	}))
	defer ts.Close()
	withSearchBase(t, ts.URL)

	client := NewClient("t", types.HTTPConfig{})
	count, err := client.Count(context.Background(), "data(iris) extension:r", fastPolicy(10))
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 7 {
		t.Errorf("Count() = %d, want 7", count)
	}
	if n := atomic.LoadInt32(&calls); n != 4 {
		t.Errorf("requests = %d, want 4 (three rate limits then success)", n)
	}
}

func TestCount_RateLimitExhausted(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()
	withSearchBase(t, ts.URL)

	client := NewClient("t", types.HTTPConfig{})
	_, err := client.Count(context.Background(), "data(iris) extension:r", fastPolicy(10))
	if err == nil {
		t.Fatal("Count() expected error after exhausting the retry budget")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error %q should report rate limiting", err)
	}
	if n := atomic.LoadInt32(&calls); n != 10 {
		t.Errorf("requests = %d, want exactly 10", n)
	}
}

func TestCount_MalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"total_count": `)
	}))
	defer ts.Close()
	withSearchBase(t, ts.URL)

	client := NewClient("t", types.HTTPConfig{})
	_, err := client.Count(context.Background(), "data(iris) extension:r", fastPolicy(1))
	if err == nil {
		t.Fatal("Count() expected parse error for truncated JSON")
	}
	if !strings.Contains(err.Error(), "parsing") {
		t.Errorf("error %q should mention parsing", err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("tok", types.HTTPConfig{})
	if c.UserAgent != defaultUserAgent {
		t.Errorf("UserAgent = %q, want %q", c.UserAgent, defaultUserAgent)
	}
	if c.Token != "tok" {
		t.Errorf("Token = %q, want tok", c.Token)
	}
}
