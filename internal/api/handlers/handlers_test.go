package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/patternmusic/pattern-api/internal/catalog"
	"github.com/patternmusic/pattern-api/internal/metrics"
	"github.com/patternmusic/pattern-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRouter wires every handler against an in-memory store, without
// the production middleware stack.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cat, err := catalog.Load()
	require.NoError(t, err)

	store := storage.NewMemoryStore()

	cloudwatch, err := metrics.NewClient(context.Background(), "test")
	require.NoError(t, err)

	router := gin.New()
	router.Use(gin.Recovery())

	healthHandler := NewHealthHandler(store)
	router.GET("/health", healthHandler.HealthCheck)

	parseHandler := NewParseHandler(cloudwatch)
	instrumentsHandler := NewInstrumentsHandler(cat)
	patternsHandler := NewPatternsHandler(store, cat)
	renderHandler := NewRenderHandler(store, cloudwatch)

	api := router.Group("/api")
	{
		api.POST("/parse", parseHandler.Parse)
		api.GET("/instruments", instrumentsHandler.GetInstruments)
		api.GET("/grammar", GetGrammar)

		api.POST("/patterns", patternsHandler.SavePattern)
		api.GET("/patterns", patternsHandler.ListPatterns)
		api.GET("/patterns/:id", patternsHandler.LoadPattern)
		api.POST("/patterns/check", patternsHandler.CheckPattern)
		api.GET("/patterns/:id/midi", renderHandler.RenderSaved)

		api.POST("/render", renderHandler.Render)
	}

	return router
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(t)

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "healthy", response["status"])

	storageInfo, ok := response["storage"].(map[string]interface{})
	require.True(t, ok, "Response should have 'storage' object")
	assert.Equal(t, "memory", storageInfo["backend"])
}

func TestGetInstruments(t *testing.T) {
	router := setupTestRouter(t)

	req, err := http.NewRequest("GET", "/api/instruments", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// The instruments endpoint returns the bare map, no envelope
	var instruments map[string][]string
	err = json.Unmarshal(w.Body.Bytes(), &instruments)
	require.NoError(t, err)

	assert.Contains(t, instruments, "piano")
	assert.Contains(t, instruments, "synth")
	assert.Contains(t, instruments, "guitar")
	assert.Contains(t, instruments["piano"], "C4")
	assert.Contains(t, instruments["synth"], "Kick")
}

func TestGetGrammar(t *testing.T) {
	router := setupTestRouter(t)

	req, err := http.NewRequest("GET", "/api/grammar", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	grammar, ok := response["grammar"].(string)
	require.True(t, ok, "Response should have 'grammar' text")
	assert.Contains(t, grammar, "pattern_block")
	assert.Contains(t, grammar, "import_statement")

	blockTypes, ok := response["block_types"].([]interface{})
	require.True(t, ok, "Response should have 'block_types' array")
	assert.Len(t, blockTypes, 4)

	defaults, ok := response["defaults"].(map[string]interface{})
	require.True(t, ok, "Response should have 'defaults' object")
	assert.Equal(t, 1.0, defaults["velocity"])
	assert.Equal(t, 0.5, defaults["duration"])
}
