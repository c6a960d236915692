package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patternmusic/pattern-api/internal/metrics"
	"github.com/patternmusic/pattern-api/internal/models"
	"github.com/patternmusic/pattern-api/internal/render"
	"github.com/patternmusic/pattern-api/internal/storage"
)

const midiContentType = "audio/midi"

// RenderHandler renders parsed patterns to Standard MIDI Files.
type RenderHandler struct {
	store      storage.PatternStore
	cloudwatch *metrics.Client
	metrics    *metrics.SentryMetrics
}

func NewRenderHandler(store storage.PatternStore, cloudwatch *metrics.Client) *RenderHandler {
	return &RenderHandler{
		store:      store,
		cloudwatch: cloudwatch,
		metrics:    metrics.NewSentryMetrics(),
	}
}

// Render handles POST /api/render. The response body is the SMF byte
// stream itself, served as a download.
func (h *RenderHandler) Render(c *gin.Context) {
	var req models.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	opts := render.Options{
		Tempo:        req.Tempo,
		TicksPerBeat: req.TicksPerBeat,
	}

	start := time.Now()
	data, err := render.MIDI(req.Pattern, opts)
	duration := time.Since(start)

	h.cloudwatch.RecordRender(err == nil, duration, len(data))
	h.metrics.RecordRender(c.Request.Context(), duration, err == nil, len(data))

	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	serveMIDI(c, "pattern", data)
}

// RenderSaved handles GET /api/patterns/:id/midi. Tempo and resolution
// can be overridden with ?tempo= and ?ticks_per_beat= query parameters.
func (h *RenderHandler) RenderSaved(c *gin.Context) {
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
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	opts, err := renderOptionsFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	start := time.Now()
	data, err := render.MIDI(stored.Pattern, opts)
	duration := time.Since(start)

	h.cloudwatch.RecordRender(err == nil, duration, len(data))
	h.metrics.RecordRender(c.Request.Context(), duration, err == nil, len(data))

	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	serveMIDI(c, stored.Name, data)
}

func renderOptionsFromQuery(c *gin.Context) (render.Options, error) {
	var opts render.Options

	if raw := c.Query("tempo"); raw != "" {
		tempo, err := strconv.ParseFloat(raw, 64)
		if err != nil || tempo <= 0 {
			return opts, fmt.Errorf("invalid tempo %q", raw)
		}
		opts.Tempo = tempo
	}

	if raw := c.Query("ticks_per_beat"); raw != "" {
		ticks, err := strconv.ParseUint(raw, 10, 16)
		if err != nil || ticks == 0 {
			return opts, fmt.Errorf("invalid ticks_per_beat %q", raw)
		}
		opts.TicksPerBeat = uint16(ticks)
	}

	return opts, nil
}

func serveMIDI(c *gin.Context, name string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", midiFilename(name)))
	c.Data(http.StatusOK, midiContentType, data)
}

// midiFilename turns a stored pattern name into a safe download filename.
func midiFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "pattern.mid"
	}
	return b.String() + ".mid"
}
