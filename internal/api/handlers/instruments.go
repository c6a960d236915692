package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patternmusic/pattern-api/internal/catalog"
)

// InstrumentsHandler serves the instrument catalog.
type InstrumentsHandler struct {
	catalog *catalog.Catalog
}

func NewInstrumentsHandler(cat *catalog.Catalog) *InstrumentsHandler {
	return &InstrumentsHandler{catalog: cat}
}

// GetInstruments handles GET /api/instruments. The response is the bare
// instrument-to-notes map, not the usual success envelope, matching what
// pattern editors already consume.
func (h *InstrumentsHandler) GetInstruments(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Instruments())
}
