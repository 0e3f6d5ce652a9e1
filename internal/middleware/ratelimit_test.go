// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
)

// unreachableRedis forces every limiter call onto the local fallback.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRateLimiter_FallsBackToLocal(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rl := NewRateLimiter(unreachableRedis(t), RateLimitConfig{
		Limit:   PerMinute(2, 2),
		KeyFunc: KeyByScope("test"),
	})
	h := rl.Handler(ok)

	for range 2 {
		apitest.Handler(h).Get("/").
			Expect(t).
			Status(http.StatusOK).
			HeaderPresent("X-RateLimit-Remaining").
			End()
	}

	apitest.Handler(h).Get("/").
		Expect(t).
		Status(http.StatusTooManyRequests).
		HeaderPresent("Retry-After").
		End()
}

func TestRateLimiter_Bypass(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rl := NewRateLimiter(unreachableRedis(t), RateLimitConfig{
		Limit:      PerMinute(1, 1),
		KeyFunc:    KeyByScope("bypass"),
		BypassFunc: func(r *http.Request) bool { return r.URL.Path == "/healthz" },
	})
	h := rl.Handler(ok)

	for range 3 {
		apitest.Handler(h).Get("/healthz").Expect(t).Status(http.StatusOK).End()
	}
}

func TestClientKeys(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "ratelimit:ip:10.0.0.1", KeyByIP(r))
	assert.Equal(t, "ratelimit:login:10.0.0.1", KeyByScope("login")(r))

	r.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	assert.Equal(t, "ratelimit:ip:10.0.0.1", KeyByIP(r))
}

func TestClientIP(t *testing.T) {
	proxies := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name    string
		trusted []netip.Prefix
		remote  string
		xff     string
		xri     string
		want    string
	}{
		{"no proxies ignores headers", nil, "203.0.113.9:4000", "1.1.1.1", "2.2.2.2", "203.0.113.9"},
		{"untrusted peer ignores headers", proxies, "203.0.113.9:4000", "1.1.1.1", "", "203.0.113.9"},
		{"trusted peer uses forwarded", proxies, "10.1.2.3:4000", "198.51.100.4", "", "198.51.100.4"},
		{"skips trusted hops", proxies, "10.1.2.3:4000", "198.51.100.4, 10.9.9.9", "", "198.51.100.4"},
		{"spoofed left hop ignored", proxies, "10.1.2.3:4000", "6.6.6.6, 198.51.100.4", "", "198.51.100.4"},
		{"trusted peer uses real ip", proxies, "10.1.2.3:4000", "", "198.51.100.7", "198.51.100.7"},
		{"trusted peer without headers", proxies, "10.1.2.3:4000", "", "", "10.1.2.3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			h := ClientIP(tc.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = KeyByScope("login")(r)
			}))

			r := httptest.NewRequest(http.MethodPost, "/login", nil)
			r.RemoteAddr = tc.remote
			if tc.xff != "" {
				r.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xri != "" {
				r.Header.Set("X-Real-IP", tc.xri)
			}
			h.ServeHTTP(httptest.NewRecorder(), r)

			assert.Equal(t, "ratelimit:login:"+tc.want, got)
		})
	}
}

func TestRateLimiter_RotatingForwardedForShareBucket(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rl := NewRateLimiter(unreachableRedis(t), RateLimitConfig{
		Limit:   PerMinute(1, 1),
		KeyFunc: KeyByScope("rotate"),
	})
	h := ClientIP(nil)(rl.Handler(ok))

	apitest.Handler(h).Post("/login").
		Header("X-Forwarded-For", "1.1.1.1").
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.Handler(h).Post("/login").
		Header("X-Forwarded-For", "2.2.2.2").
		Expect(t).
		Status(http.StatusTooManyRequests).
		End()
}
