// Package catalog holds the static instrument reference table: which note
// labels each known instrument can play. The DSL parser never consults it;
// checking a parsed pattern against the catalog is a separate, optional
// step.
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/patternmusic/pattern-api/internal/dsl"
	"github.com/patternmusic/pattern-api/internal/models"
	"github.com/patternmusic/pattern-api/pkg/embedded"
)

// Catalog maps instrument names to their playable note labels.
type Catalog struct {
	instruments map[string][]string
	notes       map[string]map[string]bool
}

// Load builds the catalog from the embedded instrument table.
func Load() (*Catalog, error) {
	var instruments map[string][]string
	if err := json.Unmarshal(embedded.InstrumentsJSON, &instruments); err != nil {
		return nil, fmt.Errorf("failed to parse instrument catalog: %w", err)
	}

	notes := make(map[string]map[string]bool, len(instruments))
	for name, labels := range instruments {
		set := make(map[string]bool, len(labels))
		for _, label := range labels {
			set[label] = true
		}
		notes[name] = set
	}
	return &Catalog{instruments: instruments, notes: notes}, nil
}

// Instruments returns the full reference table.
func (c *Catalog) Instruments() map[string][]string {
	return c.instruments
}

// Notes returns the playable labels for one instrument.
func (c *Catalog) Notes(instrument string) ([]string, bool) {
	labels, ok := c.instruments[instrument]
	return labels, ok
}

// Check returns one warning per instrument, note, or block type the catalog
// does not know. Warnings are ordered by block name then statement order so
// the same pattern always checks the same way. An empty result means the
// pattern only uses cataloged sounds.
func (c *Catalog) Check(pattern *models.Pattern) []string {
	warnings := []string{}
	if pattern == nil {
		return warnings
	}
	seen := map[string]bool{}
	warn := func(msg string) {
		if !seen[msg] {
			seen[msg] = true
			warnings = append(warnings, msg)
		}
	}

	// Patterns arriving over HTTP bypass the parser, so block names are
	// revalidated against the grammar's closed set.
	known := map[string]bool{}
	for _, bt := range dsl.BlockTypes() {
		known[bt] = true
	}

	blocks := make([]string, 0, len(pattern.Patterns))
	for name := range pattern.Patterns {
		blocks = append(blocks, name)
	}
	sort.Strings(blocks)

	for _, block := range blocks {
		if !known[block] {
			warn(fmt.Sprintf("unknown block type %q", block))
		}
		for _, ev := range pattern.Patterns[block] {
			set, ok := c.notes[ev.Instrument]
			if !ok {
				warn(fmt.Sprintf("unknown instrument %q in %s block", ev.Instrument, block))
				continue
			}
			if !set[ev.Note] {
				warn(fmt.Sprintf("instrument %q cannot play %q", ev.Instrument, ev.Note))
			}
		}
	}
	return warnings
}
