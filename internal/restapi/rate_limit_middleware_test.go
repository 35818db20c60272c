package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"unitconv.dev/internal/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	middleware := NewRateLimitMiddleware(5, time.Second)
	defer middleware.Stop()

	limitedHandler := middleware.Handler(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/api/categories.json?key=test-api-key", nil)
		w := httptest.NewRecorder()

		limitedHandler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "Request %d should be allowed", i+1)
	}
}

func TestRateLimitMiddleware_BlocksRequestsOverLimit(t *testing.T) {
	middleware := NewRateLimitMiddleware(3, time.Second)
	defer middleware.Stop()

	limitedHandler := middleware.Handler(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/categories.json?key=test-api-key", nil)
		w := httptest.NewRecorder()
		limitedHandler.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "Request %d should be allowed", i+1)
	}

	req := httptest.NewRequest("GET", "/api/categories.json?key=test-api-key", nil)
	w := httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code, "Request over limit should be blocked")
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response models.ResponseModel
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, http.StatusTooManyRequests, response.Code)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", response.Text)
}

func TestRateLimitMiddleware_PerAPIKeyLimiting(t *testing.T) {
	middleware := NewRateLimitMiddleware(2, time.Second)
	defer middleware.Stop()

	limitedHandler := middleware.Handler(okHandler())

	send := func(key string) int {
		target := "/api/categories.json"
		if key != "" {
			target += "?key=" + key
		}
		w := httptest.NewRecorder()
		limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("key-1"))
	assert.Equal(t, http.StatusOK, send("key-1"))
	assert.Equal(t, http.StatusTooManyRequests, send("key-1"))

	// other keys, and requests without a key, have their own buckets
	assert.Equal(t, http.StatusOK, send("key-2"))
	assert.Equal(t, http.StatusOK, send(""))
	assert.Equal(t, http.StatusOK, send(""))
	assert.Equal(t, http.StatusTooManyRequests, send(""))
}

func TestRateLimitMiddleware_RefillsOverTime(t *testing.T) {
	middleware := NewRateLimitMiddleware(10, 100*time.Millisecond)
	defer middleware.Stop()

	limitedHandler := middleware.Handler(okHandler())
	send := func() int {
		w := httptest.NewRecorder()
		limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/?key=refill", nil))
		return w.Code
	}

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusOK, send())
	}
	require.Equal(t, http.StatusTooManyRequests, send())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, http.StatusOK, send(), "tokens should refill after waiting")
}

func TestRateLimitMiddleware_DisabledWhenNotPositive(t *testing.T) {
	middleware := NewRateLimitMiddleware(0, time.Second)
	defer middleware.Stop()

	limitedHandler := middleware.Handler(okHandler())
	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/?key=any", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_StopIsIdempotent(t *testing.T) {
	middleware := NewRateLimitMiddleware(1, time.Second)
	middleware.Stop()
	assert.NotPanics(t, middleware.Stop)
}

func TestRateLimitThroughRestAPI(t *testing.T) {
	application := createTestApi(t, newTestProvider()).Application
	application.Config.RateLimit = 2

	api := NewRestAPI(application)
	defer api.Shutdown()

	for i := 0; i < 2; i++ {
		resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/categories.json?key=TEST")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/categories.json?key=TEST")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, model.Code)
}
