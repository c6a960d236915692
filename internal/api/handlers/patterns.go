package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patternmusic/pattern-api/internal/catalog"
	"github.com/patternmusic/pattern-api/internal/models"
	"github.com/patternmusic/pattern-api/internal/storage"
)

// PatternsHandler manages saved patterns.
type PatternsHandler struct {
	store   storage.PatternStore
	catalog *catalog.Catalog
}

func NewPatternsHandler(store storage.PatternStore, cat *catalog.Catalog) *PatternsHandler {
	return &PatternsHandler{
		store:   store,
		catalog: cat,
	}
}

// SavePattern handles POST /api/patterns. The name may come from the body
// or from a ?name= query parameter; the query parameter wins when both are
// set.
func (h *PatternsHandler) SavePattern(c *gin.Context) {
	var req models.SavePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	name := req.Name
	if queryName := c.Query("name"); queryName != "" {
		name = queryName
	}
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   "name is required",
		})
		return
	}

	stored, err := h.store.Save(name, req.Pattern)
	if err != nil {
		log.Printf("❌ Failed to save pattern %q: %v", name, err)
		c.JSON(http.StatusInternalServerError, models.PatternResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PatternResponse{
		Success:   true,
		PatternID: stored.ID,
	})
}

// LoadPattern handles GET /api/patterns/:id.
func (h *PatternsHandler) LoadPattern(c *gin.Context) {
	id := c.Param("id")

	stored, err := h.store.Load(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error:   "Pattern not found",
			})
			return
		}
		log.Printf("❌ Failed to load pattern %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.LoadPatternResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.LoadPatternResponse{
		Success: true,
		Pattern: stored.Pattern,
	})
}

// ListPatterns handles GET /api/patterns. Items come back in creation
// order.
func (h *PatternsHandler) ListPatterns(c *gin.Context) {
	items, err := h.store.List()
	if err != nil {
		log.Printf("❌ Failed to list patterns: %v", err)
		c.JSON(http.StatusInternalServerError, models.PatternListResponse{
			Success:  false,
			Patterns: []models.PatternListItem{},
			Error:    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PatternListResponse{
		Success:  true,
		Patterns: items,
	})
}

// CheckPattern handles POST /api/patterns/check. It reports catalog
// warnings for a parsed pattern without rejecting it; unknown instruments
// and unplayable notes are warnings, not errors.
func (h *PatternsHandler) CheckPattern(c *gin.Context) {
	var req models.CheckPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	warnings := h.catalog.Check(req.Pattern)

	c.JSON(http.StatusOK, models.CheckPatternResponse{
		Success:  true,
		Valid:    len(warnings) == 0,
		Warnings: warnings,
	})
}
