// Package render turns parsed patterns into Standard MIDI Files. Each
// pattern block becomes its own track; named drum sounds land on the
// percussion channel and every other instrument gets a melodic channel in
// order of first appearance.
package render

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/patternmusic/pattern-api/internal/dsl"
	"github.com/patternmusic/pattern-api/internal/models"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// DefaultTempo is used when the request does not set one.
	DefaultTempo = 120.0
	// DefaultTicksPerBeat is the SMF resolution when unset.
	DefaultTicksPerBeat uint16 = 480

	percussionChannel = 9
	maxChannel        = 15
)

// Options control tempo and resolution of the rendered file. Zero values
// select the defaults.
type Options struct {
	Tempo        float64
	TicksPerBeat uint16
}

// MIDI renders the pattern into a complete SMF byte stream. Rendering is
// deterministic: the same pattern and options always produce the same
// bytes.
func MIDI(pattern *models.Pattern, opts Options) ([]byte, error) {
	if pattern == nil || len(pattern.Patterns) == 0 {
		return nil, fmt.Errorf("pattern has no blocks to render")
	}

	tempo := opts.Tempo
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	ticks := opts.TicksPerBeat
	if ticks == 0 {
		ticks = DefaultTicksPerBeat
	}

	channels, err := assignChannels(pattern)
	if err != nil {
		return nil, err
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticks)

	var conductor smf.Track
	conductor.Add(0, smf.MetaMeter(4, 4))
	conductor.Add(0, smf.MetaTempo(tempo))
	conductor.Close(0)
	s.Add(conductor)

	for _, block := range orderedBlocks(pattern) {
		track, err := blockTrack(block, pattern.Patterns[block], channels, ticks)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", block, err)
		}
		s.Add(track)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI file: %w", err)
	}
	return buf.Bytes(), nil
}

// orderedBlocks lists the pattern's blocks in grammar order, with any
// block names outside the grammar sorted after them.
func orderedBlocks(pattern *models.Pattern) []string {
	var blocks []string
	for _, bt := range dsl.BlockTypes() {
		if _, ok := pattern.Patterns[bt]; ok {
			blocks = append(blocks, bt)
		}
	}
	known := map[string]bool{}
	for _, bt := range dsl.BlockTypes() {
		known[bt] = true
	}
	var extra []string
	for name := range pattern.Patterns {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(blocks, extra...)
}

// assignChannels gives every melodic instrument a channel in order of first
// appearance, skipping the percussion channel. Events that resolve to drum
// sounds are routed to the percussion channel regardless of instrument.
func assignChannels(pattern *models.Pattern) (map[string]uint8, error) {
	channels := map[string]uint8{}
	next := uint8(0)
	for _, block := range orderedBlocks(pattern) {
		for _, ev := range pattern.Patterns[block] {
			if _, ok := drumNotes[ev.Note]; ok {
				continue
			}
			if _, ok := channels[ev.Instrument]; ok {
				continue
			}
			if next == percussionChannel {
				next++
			}
			if next > maxChannel {
				return nil, fmt.Errorf("too many instruments for one MIDI file")
			}
			channels[ev.Instrument] = next
			next++
		}
	}
	return channels, nil
}

// trackEvent is one note boundary at an absolute tick, before conversion
// to delta times.
type trackEvent struct {
	tick    uint32
	noteOff bool
	msg     midi.Message
}

func blockTrack(block string, events []models.NoteEvent, channels map[string]uint8, ticks uint16) (smf.Track, error) {
	var track smf.Track
	track.Add(0, smf.MetaInstrument(block))

	programs := map[uint8]bool{}
	var timeline []trackEvent
	for _, ev := range events {
		key, percussion, err := noteNumber(ev.Note)
		if err != nil {
			return nil, err
		}

		channel := uint8(percussionChannel)
		if !percussion {
			channel = channels[ev.Instrument]
			if !programs[channel] {
				programs[channel] = true
				timeline = append(timeline, trackEvent{
					tick: 0,
					msg:  midi.ProgramChange(channel, gmPrograms[ev.Instrument]),
				})
			}
		}

		on := beatsToTicks(ev.Time, ticks)
		off := beatsToTicks(ev.Time+ev.Duration, ticks)
		if off <= on {
			off = on + 1
		}
		timeline = append(timeline, trackEvent{
			tick: on,
			msg:  midi.NoteOn(channel, key, velocityByte(ev.Velocity)),
		})
		timeline = append(timeline, trackEvent{
			tick:    off,
			noteOff: true,
			msg:     midi.NoteOff(channel, key),
		})
	}

	// Note-offs sort before note-ons at the same tick so back-to-back
	// notes release before they retrigger.
	sort.SliceStable(timeline, func(i, j int) bool {
		if timeline[i].tick != timeline[j].tick {
			return timeline[i].tick < timeline[j].tick
		}
		return timeline[i].noteOff && !timeline[j].noteOff
	})

	var cursor uint32
	for _, ev := range timeline {
		track.Add(ev.tick-cursor, ev.msg)
		cursor = ev.tick
	}
	track.Close(0)
	return track, nil
}

func beatsToTicks(beats float64, ticks uint16) uint32 {
	if beats < 0 {
		return 0
	}
	return uint32(math.Round(beats * float64(ticks)))
}

// velocityByte scales the 0.0-1.0 DSL velocity onto MIDI's 1-127. The
// default velocity 1.0 plays at 100.
func velocityByte(v float64) uint8 {
	scaled := int(math.Round(v * 100))
	if scaled < 1 {
		scaled = 1
	}
	if scaled > 127 {
		scaled = 127
	}
	return uint8(scaled)
}
