package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func TestProperty_RateLimitingBlocksExcessiveRequests(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("excessive requests are blocked with 429", prop.ForAll(
		func(requestsPerWindow int, excessRequests int) bool {
			mr, err := miniredis.Run()
			if err != nil {
				t.Fatalf("Failed to start miniredis: %v", err)
				return false
			}
			defer mr.Close()

			redisClient := redis.NewClient(&redis.Options{
				Addr: mr.Addr(),
			})
			defer redisClient.Close()

			logger, _ := zap.NewDevelopment()

			config := RateLimitConfig{
				RequestsPerWindow: requestsPerWindow,
				Window:            1 * time.Second,
				KeyPrefix:         "test_rate_limit",
			}

			middleware := RateLimitMiddleware(redisClient, config, logger)

			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			clientIP := "192.168.1.100"
			successCount := 0
			blockedCount := 0

			totalRequests := requestsPerWindow + excessRequests
			for i := 0; i < totalRequests; i++ {
				req := httptest.NewRequest("GET", "/test", nil)
				req.RemoteAddr = clientIP
				w := httptest.NewRecorder()

				handler.ServeHTTP(w, req)

				if w.Code == http.StatusOK {
					successCount++
				} else if w.Code == http.StatusTooManyRequests {
					blockedCount++
				}
			}

			return successCount == requestsPerWindow && blockedCount == excessRequests
		},
		gen.IntRange(5, 20),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_RateLimitHeadersAreSet(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("rate limit headers are present in responses", prop.ForAll(
		func(requestsPerWindow int) bool {
			mr, err := miniredis.Run()
			if err != nil {
				t.Fatalf("Failed to start miniredis: %v", err)
				return false
			}
			defer mr.Close()

			redisClient := redis.NewClient(&redis.Options{
				Addr: mr.Addr(),
			})
			defer redisClient.Close()

			logger, _ := zap.NewDevelopment()

			config := RateLimitConfig{
				RequestsPerWindow: requestsPerWindow,
				Window:            1 * time.Second,
				KeyPrefix:         "test_rate_limit_headers",
			}

			middleware := RateLimitMiddleware(redisClient, config, logger)

			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/test", nil)
			req.RemoteAddr = "192.168.1.101"
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Header().Get("X-RateLimit-Limit") != "" &&
				w.Header().Get("X-RateLimit-Remaining") != ""
		},
		gen.IntRange(5, 50),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// The limiter must not lock users out when Redis is down.
func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	redisClient := redis.NewClient(&redis.Options{
		Addr: "127.0.0.1:1", // nothing listens here
	})
	defer redisClient.Close()

	logger, _ := zap.NewDevelopment()

	middleware := RateLimitMiddleware(redisClient, RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Second,
		KeyPrefix:         "test_fail_open",
	}, logger)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "192.168.1.102"
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected fail-open 200, got %d", i, w.Code)
		}
	}
}
