package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"go-butterflies-checkout/internal/middleware"
)

func setupRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SessionMiddleware())
	router.GET("/probe", handler)
	return router
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates_an_id", func(t *testing.T) {
		var seen string
		router := setupRouter(func(c *gin.Context) {
			seen = c.GetString("X-Request-ID")
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})

	t.Run("honors_an_incoming_id", func(t *testing.T) {
		router := setupRouter(func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("X-Request-ID", "upstream-id")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "upstream-id", rec.Header().Get("X-Request-ID"))
	})
}

func TestSessionMiddleware(t *testing.T) {
	t.Run("mints_a_session_for_new_visitors", func(t *testing.T) {
		var seen string
		router := setupRouter(func(c *gin.Context) {
			seen = c.GetString("session_id")
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get("X-Session-ID"))
	})

	t.Run("honors_the_session_header", func(t *testing.T) {
		var seen string
		router := setupRouter(func(c *gin.Context) {
			seen = c.GetString("session_id")
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("X-Session-ID", "existing-session")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "existing-session", seen)
	})
}

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequireSession())
	reached := false
	router.GET("/guarded", func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}
