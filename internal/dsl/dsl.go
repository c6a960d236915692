// Package dsl parses the pattern music DSL: import statements followed by
// pattern blocks of timed note statements. The pipeline is lexer, parse
// tree, transform; Parse is the entry point and returns the first error it
// hits.
package dsl

import "github.com/patternmusic/pattern-api/internal/models"

// Parser turns DSL source into the Pattern domain model. The zero value is
// ready to use, and a single Parser is safe for concurrent use: all
// per-call state lives in the lexer and parser values created inside Parse.
type Parser struct{}

// NewParser creates a new pattern parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse runs the full pipeline on the given source. Errors are *LexError
// for unmatched input, *SyntaxError for grammar violations, and
// *CoerceError when a literal fails to convert.
func (p *Parser) Parse(code string) (*models.Pattern, error) {
	tokens, err := NewLexer(code).Scan()
	if err != nil {
		return nil, err
	}
	prog, err := parseProgram(tokens)
	if err != nil {
		return nil, err
	}
	return transform(prog)
}

// Parse parses source with a throwaway Parser.
func Parse(code string) (*models.Pattern, error) {
	return NewParser().Parse(code)
}
