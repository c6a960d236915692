package render

import "fmt"

// General MIDI percussion numbers for the named drum sounds the catalog
// uses. Named sounds always play on the percussion channel.
var drumNotes = map[string]uint8{
	"Kick":  36, // bass drum 1
	"Snare": 38, // acoustic snare
	"HiHat": 42, // closed hi-hat
	"Crash": 49, // crash cymbal 1
	"Tom":   45, // low tom
}

// Semitone offsets from C for pitch roots, sharps and flats included.
var semitones = map[string]int{
	"C":  0,
	"C#": 1, "Db": 1,
	"D":  2,
	"D#": 3, "Eb": 3,
	"E":  4,
	"F":  5,
	"F#": 6, "Gb": 6,
	"G":  7,
	"G#": 8, "Ab": 8,
	"A":  9,
	"A#": 10, "Bb": 10,
	"B": 11,
}

// General MIDI program numbers for cataloged instruments. Instruments not
// listed here play the default program 0.
var gmPrograms = map[string]uint8{
	"piano":  0,  // acoustic grand piano
	"guitar": 24, // nylon guitar
	"synth":  80, // square lead
}

// noteNumber resolves a DSL note label to a MIDI note number and reports
// whether it belongs on the percussion channel. Pitches use the convention
// C4 = 60.
func noteNumber(note string) (uint8, bool, error) {
	if key, ok := drumNotes[note]; ok {
		return key, true, nil
	}

	if len(note) >= 2 && len(note) <= 3 {
		root := note[:len(note)-1]
		octave := note[len(note)-1]
		if offset, ok := semitones[root]; ok && octave >= '0' && octave <= '9' {
			key := (int(octave-'0')+1)*12 + offset
			if key > 127 {
				return 0, false, fmt.Errorf("note %q is above the MIDI range", note)
			}
			return uint8(key), false, nil
		}
	}
	return 0, false, fmt.Errorf("cannot map note %q to MIDI", note)
}
