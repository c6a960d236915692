package dsl

import "fmt"

// parser is a single-token-lookahead recursive-descent parser over the
// token stream. The EOF token is always last, so peek never runs off the
// end.
type parser struct {
	toks []Token
	pos  int
}

func parseProgram(toks []Token) (*Program, error) {
	p := &parser{toks: toks}
	prog := &Program{}

	for p.peek().Kind == KindImport {
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		prog.Imports = append(prog.Imports, imp)
	}

	if tok := p.peek(); tok.Kind != KindBlockType {
		if tok.Kind == KindEOF {
			return nil, p.errAt(tok, "expected at least one pattern block")
		}
		return nil, p.errAt(tok, fmt.Sprintf("expected pattern block, found %s", describe(tok)))
	}

	for p.peek().Kind == KindBlockType {
		blk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		prog.Blocks = append(prog.Blocks, blk)
	}

	if tok := p.peek(); tok.Kind != KindEOF {
		return nil, p.errAt(tok, fmt.Sprintf("unexpected %s after last pattern block", describe(tok)))
	}
	return prog, nil
}

func (p *parser) parseImport() (ImportNode, error) {
	p.next() // 'import'

	instrument, err := p.expect(KindIdent, "instrument name after 'import'")
	if err != nil {
		return ImportNode{}, err
	}
	if _, err := p.expect(KindFrom, "'from' after instrument name"); err != nil {
		return ImportNode{}, err
	}
	module, err := p.expect(KindModule, "module name after 'from'")
	if err != nil {
		return ImportNode{}, err
	}
	if _, err := p.expect(KindSemi, "';' after import statement"); err != nil {
		return ImportNode{}, err
	}
	return ImportNode{Instrument: instrument, Module: module}, nil
}

func (p *parser) parseBlock() (BlockNode, error) {
	blk := BlockNode{Type: p.next()}

	if _, err := p.expect(KindLBrace, "'{' after block type"); err != nil {
		return BlockNode{}, err
	}
	for p.peek().Kind != KindRBrace {
		if p.peek().Kind == KindEOF {
			return BlockNode{}, p.errAt(p.peek(), fmt.Sprintf("expected '}' to close %s block, found end of input", blk.Type.Text))
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return BlockNode{}, err
		}
		blk.Statements = append(blk.Statements, stmt)
	}
	p.next() // '}'
	return blk, nil
}

func (p *parser) parseStatement() (StatementNode, error) {
	instrument, err := p.expect(KindIdent, "instrument name")
	if err != nil {
		return StatementNode{}, err
	}

	note := p.peek()
	if note.Kind != KindIdent && note.Kind != KindNote {
		return StatementNode{}, p.errAt(note, fmt.Sprintf("expected note after instrument, found %s", describe(note)))
	}
	if !isValidNote(note.Text) {
		return StatementNode{}, p.errAt(note, fmt.Sprintf("invalid note %q", note.Text))
	}
	p.next()

	time, err := p.expect(KindTimestamp, "timestamp after note")
	if err != nil {
		return StatementNode{}, err
	}
	if _, err := p.expect(KindSemi, "';' after statement"); err != nil {
		return StatementNode{}, err
	}
	return StatementNode{Instrument: instrument, Note: note, Time: time}, nil
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != KindEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind TokenKind, what string) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return Token{}, p.errAt(tok, fmt.Sprintf("expected %s, found %s", what, describe(tok)))
	}
	return p.next(), nil
}

func (p *parser) errAt(tok Token, msg string) error {
	return &SyntaxError{Line: tok.Line, Col: tok.Col, Msg: msg}
}

func describe(tok Token) string {
	switch tok.Kind {
	case KindIdent, KindNote, KindTimestamp, KindModule, KindBlockType:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	default:
		return tok.Kind.String()
	}
}

// isValidNote accepts either a pitch ("C4", "F#2", "Eb3") or a purely
// alphabetic sound label ("Kick"). Underscores and digits disqualify a
// label, matching the note pattern rather than the wider instrument one.
func isValidNote(s string) bool {
	if isPitchName(s) {
		return true
	}
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if !(b >= 'a' && b <= 'z') && !(b >= 'A' && b <= 'Z') {
			return false
		}
	}
	return true
}

// isPitchName matches [A-G][#b]?[0-9] exactly.
func isPitchName(s string) bool {
	if len(s) < 2 || len(s) > 3 || !isPitchLetter(s[0]) {
		return false
	}
	rest := s[1:]
	if len(rest) == 2 {
		if rest[0] != '#' && rest[0] != 'b' {
			return false
		}
		rest = rest[1:]
	}
	return len(rest) == 1 && isDigit(rest[0])
}
