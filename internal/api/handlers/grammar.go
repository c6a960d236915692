package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patternmusic/pattern-api/internal/dsl"
	"github.com/patternmusic/pattern-api/internal/models"
)

// GetGrammar handles GET /api/grammar. It publishes the DSL reference so
// editors can show syntax help without hardcoding it.
func GetGrammar(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"grammar":     dsl.Grammar(),
		"block_types": dsl.BlockTypes(),
		"defaults": gin.H{
			"velocity": models.DefaultVelocity,
			"duration": models.DefaultDuration,
		},
	})
}
