package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sofianedj/boardhub/internal/domain/user"
	"github.com/sofianedj/boardhub/internal/http/middlewares"
)

func limitedRouter(rl *middlewares.RateLimiter, keyFn func(*gin.Context) string) *gin.Engine {
	r := gin.New()
	r.GET("/ping", rl.Middleware(keyFn), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	rl := middlewares.NewRateLimiter(2, time.Minute)
	r := limitedRouter(rl, middlewares.KeyByIP)

	for i := 0; i < 2; i++ {
		if w := hit(r, "10.0.0.1:1234"); w.Code != http.StatusOK {
			t.Fatalf("request %d blocked early: %d", i+1, w.Code)
		}
	}

	w := hit(r, "10.0.0.1:1234")

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("got status %d, want 429", w.Code)
	}

	if w.Header().Get("Retry-After") == "" {
		t.Fatal("429 response missing Retry-After header")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := middlewares.NewRateLimiter(1, time.Minute)
	r := limitedRouter(rl, middlewares.KeyByIP)

	if w := hit(r, "10.0.0.1:1234"); w.Code != http.StatusOK {
		t.Fatalf("first client blocked: %d", w.Code)
	}

	if w := hit(r, "10.0.0.1:1234"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("first client not limited: %d", w.Code)
	}

	// a different address still has a fresh budget
	if w := hit(r, "10.0.0.2:1234"); w.Code != http.StatusOK {
		t.Fatalf("second client hit the first client's limit: %d", w.Code)
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	rl := middlewares.NewRateLimiter(1, 10*time.Millisecond)
	r := limitedRouter(rl, middlewares.KeyByIP)

	if w := hit(r, "10.0.0.1:1234"); w.Code != http.StatusOK {
		t.Fatalf("first request blocked: %d", w.Code)
	}

	if w := hit(r, "10.0.0.1:1234"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("limit not enforced: %d", w.Code)
	}

	time.Sleep(20 * time.Millisecond)

	if w := hit(r, "10.0.0.1:1234"); w.Code != http.StatusOK {
		t.Fatalf("window did not reset: %d", w.Code)
	}
}

func TestKeyByUserOrIPPrefersIdentity(t *testing.T) {
	rl := middlewares.NewRateLimiter(1, time.Minute)

	withIdentity := func(id string) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(middlewares.CtxIdentity, user.Identity{ID: id})
			c.Next()
		}
	}

	r := gin.New()
	r.GET("/ping", withIdentity("user-1"), rl.Middleware(middlewares.KeyByUserOrIP), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/other", withIdentity("user-2"), rl.Middleware(middlewares.KeyByUserOrIP), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// both users share one source address but keep separate budgets
	if w := hit(r, "10.0.0.1:1234"); w.Code != http.StatusOK {
		t.Fatalf("user-1 blocked: %d", w.Code)
	}

	if w := hit(r, "10.0.0.1:1234"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("user-1 not limited: %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/other", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("user-2 caught user-1's limit: %d", w.Code)
	}
}
