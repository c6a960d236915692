package dsl

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// Special
	KindEOF TokenKind = iota

	// Punctuation
	KindSemi   // ";"
	KindLBrace // "{"
	KindRBrace // "}"

	// Literals & identifiers
	KindIdent     // [a-zA-Z_][a-zA-Z0-9_]*
	KindNote      // pitch form containing '#', e.g. "C#4"
	KindTimestamp // [0-9]+(\.[0-9]+)?
	KindModule    // quoted identifier, e.g. "\"instruments\""

	// Keywords
	KindImport
	KindFrom
	KindBlockType // melody | rhythm | harmony | contrast
)

var kindNames = map[TokenKind]string{
	KindEOF:       "end of input",
	KindSemi:      "';'",
	KindLBrace:    "'{'",
	KindRBrace:    "'}'",
	KindIdent:     "identifier",
	KindNote:      "note",
	KindTimestamp: "timestamp",
	KindModule:    "module name",
	KindImport:    "'import'",
	KindFrom:      "'from'",
	KindBlockType: "block type",
}

func (k TokenKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown token"
}

// keywords are matched before the generic identifier pattern, so none of
// these words can ever be used as an instrument name.
var keywords = map[string]TokenKind{
	"import":   KindImport,
	"from":     KindFrom,
	"melody":   KindBlockType,
	"rhythm":   KindBlockType,
	"harmony":  KindBlockType,
	"contrast": KindBlockType,
}

// BlockTypes returns the closed set of pattern block types in grammar order.
func BlockTypes() []string {
	return []string{"melody", "rhythm", "harmony", "contrast"}
}

// Grammar returns the reference grammar for the pattern DSL.
// A program is zero or more imports followed by at least one block; each
// statement schedules one note and is terminated by a semicolon.
func Grammar() string {
	return `
// Pattern DSL Grammar - imports plus timed note statements
// Example: melody { piano C4 0; piano E4 1; }

// ---------- Start rule ----------
start: import_statement* pattern_block+

// ---------- Imports ----------
import_statement: "import" INSTRUMENT "from" MODULE_NAME ";"

// ---------- Pattern blocks ----------
pattern_block: BLOCK_TYPE "{" statement* "}"
statement: INSTRUMENT NOTE TIMESTAMP ";"

// ---------- Terminals ----------
INSTRUMENT: /[a-zA-Z_][a-zA-Z0-9_]*/
NOTE: /[A-G][#b]?[0-9]|[A-Za-z]+/
TIMESTAMP: /[0-9]+(\.[0-9]+)?/
BLOCK_TYPE: "melody" | "rhythm" | "harmony" | "contrast"
MODULE_NAME: /"[a-zA-Z_][a-zA-Z0-9_]*"/
`
}
