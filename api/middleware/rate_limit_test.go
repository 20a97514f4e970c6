package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beggy/beggy-backend/pkg/config"
)

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	cfg := config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2}
	handler := rateLimit(cfg, nil, clock)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		if user != "" {
			req = req.WithContext(WithUserID(req.Context(), user))
		}
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp.Code
	}

	for i := 0; i < 2; i++ {
		if code := send("u1"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200 got %d", i, code)
		}
	}
	if code := send("u1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst got %d", code)
	}
	if code := send("u2"); code != http.StatusOK {
		t.Fatalf("other user should have own bucket, got %d", code)
	}
	if code := send(""); code != http.StatusOK {
		t.Fatalf("anonymous caller keyed by ip, got %d", code)
	}

	now = now.Add(time.Second)
	if code := send("u1"); code != http.StatusOK {
		t.Fatalf("expected token refill after a second, got %d", code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	handler := RateLimit(config.RateLimitConfig{Enabled: false, RPS: 1, Burst: 1}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := 0; i < 5; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("expected pass-through got %d", resp.Code)
		}
	}
}

func TestLimiterSetEvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	set := newLimiterSet(config.RateLimitConfig{RPS: 1, Burst: 1}, func() time.Time { return now })
	set.allow("a")
	now = now.Add(limiterIdleTTL + time.Minute)
	set.allow("b")
	if _, ok := set.clients["a"]; ok {
		t.Fatal("expected idle client to be evicted")
	}
	if _, ok := set.clients["b"]; !ok {
		t.Fatal("expected active client to remain")
	}
}
