package models

import "time"

// ParseRequest is the body for POST /api/parse.
type ParseRequest struct {
	PatternCode string `json:"pattern_code" binding:"required"`
}

// ParseResponse wraps a parse attempt. Parse failures are reported inside
// the envelope with Success=false rather than as an HTTP error.
type ParseResponse struct {
	Success bool     `json:"success"`
	Pattern *Pattern `json:"pattern,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// SavePatternRequest is the body for POST /api/patterns.
type SavePatternRequest struct {
	Name    string   `json:"name"`
	Pattern *Pattern `json:"pattern" binding:"required"`
}

// PatternResponse reports the outcome of a save.
type PatternResponse struct {
	Success   bool   `json:"success"`
	PatternID string `json:"pattern_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// LoadPatternResponse wraps a single stored pattern.
type LoadPatternResponse struct {
	Success bool     `json:"success"`
	Pattern *Pattern `json:"pattern,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// PatternListItem is one row in the stored-pattern listing.
type PatternListItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PatternListResponse wraps GET /api/patterns.
type PatternListResponse struct {
	Success  bool              `json:"success"`
	Patterns []PatternListItem `json:"patterns"`
	Error    string            `json:"error,omitempty"`
}

// CheckPatternRequest is the body for POST /api/patterns/check.
type CheckPatternRequest struct {
	Pattern *Pattern `json:"pattern" binding:"required"`
}

// CheckPatternResponse lists catalog warnings for a pattern. The parser
// accepts any well-formed note label; checking labels against the
// instrument catalog is a separate, optional step.
type CheckPatternResponse struct {
	Success  bool     `json:"success"`
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
}

// RenderRequest is the body for POST /api/render.
type RenderRequest struct {
	Pattern      *Pattern `json:"pattern" binding:"required"`
	Tempo        float64  `json:"tempo,omitempty"`          // BPM, default 120
	TicksPerBeat uint16   `json:"ticks_per_beat,omitempty"` // default 480
}

// ErrorResponse is the generic failure envelope for non-parse endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
