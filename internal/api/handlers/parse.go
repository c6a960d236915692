package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patternmusic/pattern-api/internal/dsl"
	"github.com/patternmusic/pattern-api/internal/logger"
	"github.com/patternmusic/pattern-api/internal/metrics"
	"github.com/patternmusic/pattern-api/internal/models"
)

// ParseHandler turns pattern DSL source into structured pattern data.
type ParseHandler struct {
	parser     *dsl.Parser
	cloudwatch *metrics.Client
	metrics    *metrics.SentryMetrics
}

func NewParseHandler(cloudwatch *metrics.Client) *ParseHandler {
	return &ParseHandler{
		parser:     dsl.NewParser(),
		cloudwatch: cloudwatch,
		metrics:    metrics.NewSentryMetrics(),
	}
}

// Parse handles POST /api/parse. Parse failures are part of the contract,
// so they come back as 200 with success=false and a positional error
// message rather than an HTTP error.
func (h *ParseHandler) Parse(c *gin.Context) {
	var req models.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	start := time.Now()
	pattern, err := h.parser.Parse(req.PatternCode)
	duration := time.Since(start)

	h.cloudwatch.RecordParse(err == nil, duration)
	h.metrics.RecordParse(c.Request.Context(), duration, err == nil)

	if err != nil {
		logger.Debug("Pattern rejected", logger.Fields{
			"request_id": c.GetString("request_id"),
			"error":      err.Error(),
		})
		c.JSON(http.StatusOK, models.ParseResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ParseResponse{
		Success: true,
		Pattern: pattern,
	})
}
