package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newLimitedEcho(t *testing.T) func(method, target, ip string) int {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	e := echo.New()
	e.IPExtractor = echo.ExtractIPDirect()
	e.Use(NewRateLimiter(ctx).RateLimit())
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.POST("/lessons/:id/view", ok)
	e.POST("/lessons/:id/like", ok)
	e.POST("/lessons/:id/comments/:commentId/like", ok)
	e.GET("/lessons", ok)

	return func(method, target, ip string) int {
		req := httptest.NewRequest(method, target, nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}
}

func TestRateLimiter_CountersAcrossLessonsAreNotLimited(t *testing.T) {
	send := newLimitedEcho(t)

	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		assert.Equal(t, http.StatusOK, send(http.MethodPost, "/lessons/"+id+"/view", "10.0.0.1"), id)
	}

	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/lessons", "10.0.0.1"))
}

func TestRateLimiter_SameLessonFloodIsRefusedWithoutLockout(t *testing.T) {
	send := newLimitedEcho(t)

	// burst of five per lesson, then the sixth is refused
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, send(http.MethodPost, "/lessons/abc/like", "10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, "/lessons/abc/like", "10.0.0.1"))

	// the address keeps access to everything else
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/lessons/xyz/like", "10.0.0.1"))
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/lessons/abc/view", "10.0.0.1"))
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/lessons", "10.0.0.1"))

	// other addresses have their own buckets
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/lessons/abc/like", "10.0.0.2"))
}

func TestRateLimiter_CommentLikesKeyedByComment(t *testing.T) {
	send := newLimitedEcho(t)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, send(http.MethodPost, "/lessons/abc/comments/c1/like", "10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, "/lessons/abc/comments/c1/like", "10.0.0.1"))
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/lessons/abc/comments/c2/like", "10.0.0.1"))
}

func TestRateLimiter_BlocksGeneralFlood(t *testing.T) {
	send := newLimitedEcho(t)

	// default burst is twenty
	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, send(http.MethodGet, "/lessons", "10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodGet, "/lessons", "10.0.0.1"))

	// a blocked address is refused everywhere until the block expires
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, "/lessons/abc/view", "10.0.0.1"))
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/lessons", "10.0.0.2"))
}
