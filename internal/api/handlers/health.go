package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patternmusic/pattern-api/internal/storage"
)

type HealthHandler struct {
	store storage.PatternStore
}

func NewHealthHandler(store storage.PatternStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"storage": gin.H{
			"backend": h.store.Backend(),
		},
	})
}
