package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// fakeSleeps swaps real backoff sleeps for a recorder.
func fakeSleeps(rec *[]time.Duration) *RetryPolicy {
	p := DefaultRetryPolicy()
	p.Sleep = func(ctx context.Context, d time.Duration) error {
		*rec = append(*rec, d)
		return nil
	}
	return &p
}

func completionJSON(text string) map[string]any {
	return map[string]any{
		"id":     "cmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": text}},
		},
	}
}

func writeRateLimited(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"message": "rate limited", "type": "requests"},
	})
}

func newTestClient(t *testing.T, handler http.HandlerFunc, policy *RetryPolicy) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	c := New(Config{APIKey: "test", Model: "test-model", BaseURL: srv.URL + "/v1", Policy: policy})
	return c, srv.Close
}

func TestGenerateRetriesRateLimit(t *testing.T) {
	var calls int32
	var sleeps []time.Duration
	c, closeSrv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			writeRateLimited(w)
			return
		}
		_ = json.NewEncoder(w).Encode(completionJSON("생성된 인사이트"))
	}, fakeSleeps(&sleeps))
	defer closeSrv()

	out, err := c.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if out != "생성된 인사이트" {
		t.Errorf("unexpected text: %q", out)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", got)
	}
	// Induced delay schedule is 1s then 2s, total 3s.
	if len(sleeps) != 2 || sleeps[0] != time.Second || sleeps[1] != 2*time.Second {
		t.Errorf("backoff schedule wrong: %v", sleeps)
	}
}

func TestGenerateExhaustsRetries(t *testing.T) {
	var calls int32
	var sleeps []time.Duration
	c, closeSrv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeRateLimited(w)
	}, fakeSleeps(&sleeps))
	defer closeSrv()

	_, err := c.Generate(context.Background(), "prompt")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected 3 attempts before exhaustion, got %d", got)
	}
	if len(sleeps) != 2 {
		t.Errorf("expected 2 backoff sleeps, got %v", sleeps)
	}
}

func TestGenerateFailsFastOnOtherStatus(t *testing.T) {
	var calls int32
	var sleeps []time.Duration
	c, closeSrv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "quota misconfigured", http.StatusBadRequest)
	}, fakeSleeps(&sleeps))
	defer closeSrv()

	_, err := c.Generate(context.Background(), "prompt")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("non-429 status must not retry, got %d attempts", got)
	}
	if len(sleeps) != 0 {
		t.Errorf("no backoff expected, got %v", sleeps)
	}
}

func TestGenerateRetriesEmptyPayload(t *testing.T) {
	var calls int32
	var sleeps []time.Duration
	c, closeSrv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// Success status, but the nested payload is missing: falls
			// through the generic loop.
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "cmpl-test", "choices": []any{}})
			return
		}
		_ = json.NewEncoder(w).Encode(completionJSON("ok"))
	}, fakeSleeps(&sleeps))
	defer closeSrv()

	out, err := c.Generate(context.Background(), "prompt")
	if err != nil || out != "ok" {
		t.Fatalf("expected retried success, got %q err=%v", out, err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}
