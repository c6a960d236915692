package dsl

import "fmt"

// LexError reports input the tokenizer could not match, with the 1-based
// line and 0-based column of the offending character.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// SyntaxError reports a token stream that does not fit the grammar. Parsing
// stops at the first such failure.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// CoerceError reports a numeric literal the transformer could not convert,
// such as a timestamp with more digits than a float64 can hold.
type CoerceError struct {
	Line  int
	Col   int
	Value string
	Err   error
}

func (e *CoerceError) Error() string {
	return fmt.Sprintf("value error at %d:%d: cannot coerce %q: %v", e.Line, e.Col, e.Value, e.Err)
}

func (e *CoerceError) Unwrap() error { return e.Err }
