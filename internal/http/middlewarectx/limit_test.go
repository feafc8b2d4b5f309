package middlewarectx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/community-kitchen/internal/http/middlewarectx"
)

func TestRateLimitMiddleware(t *testing.T) {
	limiter := middlewarectx.NewRateLimiter(rate.Every(time.Hour), 2)
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := middlewarectx.RateLimitMiddleware(limiter, newNoopLogger())(ok)

	do := func(remote string, uid string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = remote
		if uid != "" {
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, uid))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000", ""))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001", ""))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1002", ""))

	// другой клиент имеет свой лимит
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000", ""))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1003", "uid-1"))
}
