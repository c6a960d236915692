package dsl

import "fmt"

// Token is a lexical token with its 1-based line and 0-based column.
type Token struct {
	Kind TokenKind
	Text string // raw source slice; module names keep their quotes
	Line int
	Col  int
}

// Lexer scans a pattern DSL source string into tokens. Matching is ordered:
// keywords win over the identifier pattern, and '#' is only consumable
// inside a pitch such as "C#4".
type Lexer struct {
	src   string
	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // 0-based column within line

	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() byte {
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.src[l.cur] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) token(kind TokenKind) Token {
	return Token{
		Kind: kind,
		Text: l.src[l.start:l.cur],
		Line: l.tokStartLine,
		Col:  l.tokStartCol,
	}
}

// errHere reports at the next unconsumed character.
func (l *Lexer) errHere(msg string) error {
	return &LexError{Line: l.line, Col: l.col, Msg: msg}
}

// errTok reports at the start of the current token.
func (l *Lexer) errTok(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}
func isPitchLetter(b byte) bool { return b >= 'A' && b <= 'G' }

// scanWord consumes an identifier run and classifies it. One extension over
// the plain identifier pattern: a single pitch letter may take a '#' when a
// digit follows, so "C#4" lexes as one note token while "C#x" stops at the
// letter and leaves the '#' to fail as unmatched input.
func (l *Lexer) scanWord() Token {
	sharp := false
	for !l.isAtEnd() {
		b := l.src[l.cur]
		if isAlphaNum(b) {
			l.advance()
			continue
		}
		if b == '#' && !sharp && l.cur-l.start == 1 && isPitchLetter(l.src[l.start]) {
			if d, ok := l.peekN(1); ok && isDigit(d) {
				l.advance()
				sharp = true
				continue
			}
		}
		break
	}
	text := l.src[l.start:l.cur]
	if kind, ok := keywords[text]; ok {
		return l.token(kind)
	}
	if sharp {
		return l.token(KindNote)
	}
	return l.token(KindIdent)
}

// scanTimestamp consumes [0-9]+(\.[0-9]+)?. A dot with no digit after it is
// not consumed, so "1." yields the timestamp "1" and the dot then fails as
// unmatched input.
func (l *Lexer) scanTimestamp() Token {
	for !l.isAtEnd() && isDigit(l.src[l.cur]) {
		l.advance()
	}
	if b, ok := l.peek(); ok && b == '.' {
		if d, ok2 := l.peekN(1); ok2 && isDigit(d) {
			l.advance() // '.'
			for !l.isAtEnd() && isDigit(l.src[l.cur]) {
				l.advance()
			}
		}
	}
	return l.token(KindTimestamp)
}

// scanModule consumes a double-quoted identifier. The quotes stay in the
// token text; the transformer strips them.
func (l *Lexer) scanModule() (Token, error) {
	l.advance() // opening quote
	b, ok := l.peek()
	if !ok {
		return Token{}, l.errTok("module name was not terminated")
	}
	if !isAlpha(b) {
		return Token{}, l.errHere("module name must be a quoted identifier")
	}
	l.advance()
	for {
		b, ok := l.peek()
		if !ok {
			return Token{}, l.errTok("module name was not terminated")
		}
		if b == '"' {
			l.advance()
			return l.token(KindModule), nil
		}
		if !isAlphaNum(b) {
			return Token{}, l.errHere("module name must be a quoted identifier")
		}
		l.advance()
	}
}

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespace()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	ch, ok := l.peek()
	if !ok {
		return l.token(KindEOF), nil
	}

	switch {
	case ch == ';':
		l.advance()
		return l.token(KindSemi), nil
	case ch == '{':
		l.advance()
		return l.token(KindLBrace), nil
	case ch == '}':
		l.advance()
		return l.token(KindRBrace), nil
	case ch == '"':
		return l.scanModule()
	case isDigit(ch):
		return l.scanTimestamp(), nil
	case isAlpha(ch):
		return l.scanWord(), nil
	default:
		return Token{}, l.errHere(fmt.Sprintf("unexpected character %q", ch))
	}
}

// Scan tokenizes the entire source and returns the tokens, EOF included.
// It stops at the first unmatched input.
func (l *Lexer) Scan() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == KindEOF {
			return tokens, nil
		}
	}
}
