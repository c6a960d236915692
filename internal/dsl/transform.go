package dsl

import (
	"strconv"

	"github.com/patternmusic/pattern-api/internal/models"
)

// transform lowers a parse tree into the Pattern domain model. Every node
// kind the parser can produce is handled here, so a tree that parsed always
// transforms unless a numeric literal fails to convert.
func transform(prog *Program) (*models.Pattern, error) {
	pattern := &models.Pattern{
		Imports:  make([]models.ImportStatement, 0, len(prog.Imports)),
		Patterns: make(map[string][]models.NoteEvent, len(prog.Blocks)),
	}

	for _, imp := range prog.Imports {
		pattern.Imports = append(pattern.Imports, models.ImportStatement{
			Instrument: imp.Instrument.Text,
			Module:     unquote(imp.Module.Text),
		})
	}

	for _, blk := range prog.Blocks {
		events := make([]models.NoteEvent, 0, len(blk.Statements))
		for _, stmt := range blk.Statements {
			t, err := strconv.ParseFloat(stmt.Time.Text, 64)
			if err != nil {
				return nil, &CoerceError{
					Line:  stmt.Time.Line,
					Col:   stmt.Time.Col,
					Value: stmt.Time.Text,
					Err:   err,
				}
			}
			events = append(events, models.NoteEvent{
				Instrument: stmt.Instrument.Text,
				Note:       stmt.Note.Text,
				Time:       t,
				Velocity:   models.DefaultVelocity,
				Duration:   models.DefaultDuration,
			})
		}
		// a repeated block type replaces the earlier one
		pattern.Patterns[blk.Type.Text] = events
	}
	return pattern, nil
}

// unquote strips the delimiting quotes from a module name token. The lexer
// guarantees both quotes are present.
func unquote(s string) string {
	return s[1 : len(s)-1]
}
