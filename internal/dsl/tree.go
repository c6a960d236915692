package dsl

// Program is the root of the parse tree: imports in source order followed
// by the pattern blocks. Positions live on the tokens inside each node.
type Program struct {
	Imports []ImportNode
	Blocks  []BlockNode
}

// ImportNode is one `import INSTRUMENT from MODULE_NAME ;` statement.
type ImportNode struct {
	Instrument Token
	Module     Token // quotes still attached
}

// BlockNode is one `BLOCK_TYPE { statement* }` section.
type BlockNode struct {
	Type       Token
	Statements []StatementNode
}

// StatementNode is one `INSTRUMENT NOTE TIMESTAMP ;` line.
type StatementNode struct {
	Instrument Token
	Note       Token
	Time       Token
}
