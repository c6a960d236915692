package dsl

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/patternmusic/pattern-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimplePattern(t *testing.T) {
	code := `
import piano from "instruments";

melody {
    piano C4 0;
    piano E4 1;
    piano G4 2;
}
`
	pattern, err := Parse(code)
	require.NoError(t, err)

	require.Len(t, pattern.Imports, 1)
	assert.Equal(t, models.ImportStatement{Instrument: "piano", Module: "instruments"}, pattern.Imports[0])

	require.Contains(t, pattern.Patterns, "melody")
	events := pattern.Patterns["melody"]
	require.Len(t, events, 3)

	assert.Equal(t, models.NoteEvent{
		Instrument: "piano",
		Note:       "C4",
		Time:       0,
		Velocity:   1.0,
		Duration:   0.5,
	}, events[0])
	assert.Equal(t, "E4", events[1].Note)
	assert.Equal(t, 1.0, events[1].Time)
	assert.Equal(t, "G4", events[2].Note)
	assert.Equal(t, 2.0, events[2].Time)
}

func TestParse_MultipleBlocks(t *testing.T) {
	code := `
import piano from "instruments";
import synth from "instruments";

melody {
    piano C4 0;
    piano E4 0.5;
}

rhythm {
    synth Kick 0;
    synth Snare 1;
    synth HiHat 1.5;
}
`
	pattern, err := Parse(code)
	require.NoError(t, err)

	require.Len(t, pattern.Imports, 2)
	assert.Equal(t, "piano", pattern.Imports[0].Instrument)
	assert.Equal(t, "synth", pattern.Imports[1].Instrument)

	require.Len(t, pattern.Patterns, 2)
	assert.Len(t, pattern.Patterns["melody"], 2)
	assert.Len(t, pattern.Patterns["rhythm"], 3)

	kick := pattern.Patterns["rhythm"][0]
	assert.Equal(t, "synth", kick.Instrument)
	assert.Equal(t, "Kick", kick.Note)
	assert.Equal(t, 0.0, kick.Time)
}

func TestParse_SharpAndFlatNotes(t *testing.T) {
	pattern, err := Parse(`melody {
    piano C#4 0;
    piano Eb3 0.5;
}`)
	require.NoError(t, err)

	events := pattern.Patterns["melody"]
	require.Len(t, events, 2)
	assert.Equal(t, "C#4", events[0].Note)
	assert.Equal(t, "Eb3", events[1].Note)
}

func TestParse_EmptyBlock(t *testing.T) {
	pattern, err := Parse("harmony { }")
	require.NoError(t, err)

	events, ok := pattern.Patterns["harmony"]
	require.True(t, ok)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestParse_NoImports(t *testing.T) {
	pattern, err := Parse("melody { piano A4 0; }")
	require.NoError(t, err)

	assert.NotNil(t, pattern.Imports)
	assert.Empty(t, pattern.Imports)
	assert.Len(t, pattern.Patterns["melody"], 1)
}

func TestParse_DuplicateBlockLastWins(t *testing.T) {
	pattern, err := Parse(`
melody {
    piano C4 0;
    piano E4 1;
}

melody {
    piano G4 0;
}
`)
	require.NoError(t, err)

	events := pattern.Patterns["melody"]
	require.Len(t, events, 1)
	assert.Equal(t, "G4", events[0].Note)
}

func TestParse_EventOrderFollowsSource(t *testing.T) {
	pattern, err := Parse(`rhythm {
    synth Kick 2;
    synth Kick 0;
    synth Kick 1;
}`)
	require.NoError(t, err)

	times := []float64{}
	for _, ev := range pattern.Patterns["rhythm"] {
		times = append(times, ev.Time)
	}
	// statement order, not time order
	assert.Equal(t, []float64{2, 0, 1}, times)
}

func TestParse_Deterministic(t *testing.T) {
	code := `
import piano from "instruments";
import guitar from "strings";

melody { piano C4 0; piano C#4 0.25; }
rhythm { guitar E2 0; }
contrast { }
`
	first, err := Parse(code)
	require.NoError(t, err)
	second, err := Parse(code)
	require.NoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two parses of the same source differ:\n%#v\n%#v", first, second)
	}
}

func TestParse_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind string
	}{
		{name: "unmatched character", src: "melody { piano C4 $ }", kind: "lex"},
		{name: "unterminated module", src: `import piano from "instr`, kind: "lex"},
		{name: "missing semicolon", src: "melody { piano C4 0 }", kind: "syntax"},
		{name: "no blocks", src: `import piano from "instruments";`, kind: "syntax"},
		{name: "stray close brace", src: "melody { } }", kind: "syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, err := Parse(tt.src)
			require.Error(t, err)
			assert.Nil(t, pattern)

			var lexErr *LexError
			var synErr *SyntaxError
			switch tt.kind {
			case "lex":
				assert.True(t, errors.As(err, &lexErr), "got %T: %v", err, err)
			case "syntax":
				assert.True(t, errors.As(err, &synErr), "got %T: %v", err, err)
			}
		})
	}
}

func TestParse_FirstErrorWins(t *testing.T) {
	// The missing semicolon is hit before the unknown block type; only the
	// first failure is reported.
	_, err := Parse("melody {\n  piano C4 0\n}\nbassline { }")

	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 3, synErr.Line)
	assert.Equal(t, 0, synErr.Col)
}

func TestParse_SharedParserConcurrency(t *testing.T) {
	parser := NewParser()
	code := `
import piano from "instruments";
melody { piano C4 0; piano E4 1; }
rhythm { piano G4 0.5; }
`
	want, err := parser.Parse(code)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := parser.Parse(code)
			if err != nil {
				errs <- err
				return
			}
			if !reflect.DeepEqual(got, want) {
				errs <- errors.New("concurrent parse produced a different pattern")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestGrammar_MentionsEveryBlockType(t *testing.T) {
	text := Grammar()
	for _, bt := range BlockTypes() {
		assert.Contains(t, text, bt)
	}
}
