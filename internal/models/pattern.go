package models

// Default performance values attached to every parsed note. The DSL has no
// syntax for these, so the transformer fills them in.
const (
	DefaultVelocity = 1.0
	DefaultDuration = 0.5
)

// ImportStatement declares which module an instrument is pulled from,
// e.g. `import piano from "instruments";`
type ImportStatement struct {
	Instrument string `json:"instrument"`
	Module     string `json:"module"`
}

// NoteEvent is a single scheduled note inside a pattern block.
type NoteEvent struct {
	Instrument string  `json:"instrument"`
	Note       string  `json:"note"`     // pitch ("C#4") or named sound ("Kick")
	Time       float64 `json:"time"`     // offset in beats from block start
	Velocity   float64 `json:"velocity"` // 0.0-1.0
	Duration   float64 `json:"duration"` // length in beats
}

// Pattern is the fully parsed form of a DSL program: the import list in
// source order plus one ordered event list per block type. When a program
// repeats a block type, the later block replaces the earlier one.
type Pattern struct {
	Imports  []ImportStatement      `json:"imports"`
	Patterns map[string][]NoteEvent `json:"patterns"`
}
