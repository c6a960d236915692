package render

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/patternmusic/pattern-api/internal/dsl"
	"github.com/patternmusic/pattern-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderedPattern(t *testing.T) *models.Pattern {
	t.Helper()
	pattern, err := dsl.Parse(`
import piano from "instruments";
import synth from "instruments";

melody {
    piano C4 0;
    piano E4 1;
    piano G4 2;
}

rhythm {
    synth Kick 0;
    synth Snare 1;
    synth HiHat 1.5;
}
`)
	require.NoError(t, err)
	return pattern
}

func TestMIDI_WritesStandardMidiFile(t *testing.T) {
	data, err := MIDI(renderedPattern(t), Options{})
	require.NoError(t, err)

	require.Greater(t, len(data), 14)
	assert.Equal(t, []byte("MThd"), data[:4])
	assert.Contains(t, string(data), "MTrk")
}

func TestMIDI_Deterministic(t *testing.T) {
	pattern := renderedPattern(t)

	first, err := MIDI(pattern, Options{Tempo: 96})
	require.NoError(t, err)
	second, err := MIDI(pattern, Options{Tempo: 96})
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
}

func TestMIDI_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern *models.Pattern
	}{
		{name: "nil pattern", pattern: nil},
		{name: "no blocks", pattern: &models.Pattern{Patterns: map[string][]models.NoteEvent{}}},
		{
			name: "unknown drum label",
			pattern: &models.Pattern{Patterns: map[string][]models.NoteEvent{
				"rhythm": {{Instrument: "synth", Note: "Ride", Time: 0, Velocity: 1, Duration: 0.5}},
			}},
		},
		{
			name: "pitch above midi range",
			pattern: &models.Pattern{Patterns: map[string][]models.NoteEvent{
				"melody": {{Instrument: "piano", Note: "B9", Time: 0, Velocity: 1, Duration: 0.5}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MIDI(tt.pattern, Options{})
			assert.Error(t, err)
		})
	}
}

func TestMIDI_EmptyBlockStillRenders(t *testing.T) {
	pattern, err := dsl.Parse("harmony { }")
	require.NoError(t, err)

	data, renderErr := MIDI(pattern, Options{})
	require.NoError(t, renderErr)
	assert.Equal(t, []byte("MThd"), data[:4])
}

func TestNoteNumber(t *testing.T) {
	tests := []struct {
		note       string
		want       uint8
		percussion bool
		wantErr    bool
	}{
		{note: "C4", want: 60},
		{note: "C#4", want: 61},
		{note: "Eb3", want: 51},
		{note: "A0", want: 21},
		{note: "E2", want: 40},
		{note: "G9", want: 127},
		{note: "Kick", want: 36, percussion: true},
		{note: "Snare", want: 38, percussion: true},
		{note: "HiHat", want: 42, percussion: true},
		{note: "Crash", want: 49, percussion: true},
		{note: "Tom", want: 45, percussion: true},
		{note: "B9", wantErr: true},
		{note: "Ride", wantErr: true},
		{note: "Cb4", wantErr: true},
		{note: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.note, func(t *testing.T) {
			got, percussion, err := noteNumber(tt.note)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.percussion, percussion)
		})
	}
}

func TestVelocityByte(t *testing.T) {
	assert.Equal(t, uint8(100), velocityByte(1.0))
	assert.Equal(t, uint8(50), velocityByte(0.5))
	assert.Equal(t, uint8(1), velocityByte(0))
	assert.Equal(t, uint8(127), velocityByte(2.0))
}

func TestBeatsToTicks(t *testing.T) {
	assert.Equal(t, uint32(0), beatsToTicks(0, 480))
	assert.Equal(t, uint32(480), beatsToTicks(1, 480))
	assert.Equal(t, uint32(240), beatsToTicks(0.5, 480))
	assert.Equal(t, uint32(120), beatsToTicks(0.25, 480))
	assert.Equal(t, uint32(0), beatsToTicks(-1, 480))
}

func TestAssignChannels(t *testing.T) {
	pattern := &models.Pattern{Patterns: map[string][]models.NoteEvent{
		"melody": {
			{Instrument: "piano", Note: "C4"},
			{Instrument: "guitar", Note: "E2"},
			{Instrument: "piano", Note: "E4"},
		},
		"rhythm": {
			{Instrument: "drums", Note: "Kick"},
		},
	}}

	channels, err := assignChannels(pattern)
	require.NoError(t, err)

	assert.Equal(t, uint8(0), channels["piano"])
	assert.Equal(t, uint8(1), channels["guitar"])
	// percussion-only instruments never claim a melodic channel
	_, ok := channels["drums"]
	assert.False(t, ok)
}

func TestAssignChannels_SkipsPercussionChannel(t *testing.T) {
	events := []models.NoteEvent{}
	for i := 0; i < 11; i++ {
		events = append(events, models.NoteEvent{Instrument: fmt.Sprintf("inst%02d", i), Note: "C4"})
	}
	pattern := &models.Pattern{Patterns: map[string][]models.NoteEvent{"melody": events}}

	channels, err := assignChannels(pattern)
	require.NoError(t, err)

	assert.Equal(t, uint8(8), channels["inst08"])
	// channel 9 is reserved for percussion
	assert.Equal(t, uint8(10), channels["inst09"])
	assert.Equal(t, uint8(11), channels["inst10"])
}

func TestAssignChannels_TooManyInstruments(t *testing.T) {
	events := []models.NoteEvent{}
	for i := 0; i < 16; i++ {
		events = append(events, models.NoteEvent{Instrument: fmt.Sprintf("inst%02d", i), Note: "C4"})
	}
	pattern := &models.Pattern{Patterns: map[string][]models.NoteEvent{"melody": events}}

	_, err := assignChannels(pattern)
	assert.Error(t, err)
}

func TestOrderedBlocks(t *testing.T) {
	pattern := &models.Pattern{Patterns: map[string][]models.NoteEvent{
		"rhythm":   {},
		"zeta":     {},
		"melody":   {},
		"alpha":    {},
		"contrast": {},
	}}

	assert.Equal(t, []string{"melody", "rhythm", "contrast", "alpha", "zeta"}, orderedBlocks(pattern))
}
