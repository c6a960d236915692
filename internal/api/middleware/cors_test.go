package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(origins))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestCORS_AllowAll(t *testing.T) {
	router := corsRouter([]string{"*"})

	req, err := http.NewRequest("GET", "/ping", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://editor.example")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AllowListedOrigin(t *testing.T) {
	router := corsRouter([]string{"http://editor.example"})

	t.Run("listed", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/ping", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://editor.example")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "http://editor.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/ping", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://other.example")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		// The request itself still goes through
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCORS_Preflight(t *testing.T) {
	router := corsRouter([]string{"*"})

	req, err := http.NewRequest("OPTIONS", "/ping", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://editor.example")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}
