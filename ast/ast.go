// Package ast defines the tagged-variant syntax tree produced by the
// parser: expressions and statements are disjoint closed sum types,
// each carrying a source location. A node's children are exclusively
// owned by it; the parser allocates each node individually on the Go
// heap, so discarding a Program leaves the whole tree to the garbage
// collector without per-node cleanup.
package ast

import "github.com/albanread/fasterbasic/lexer"

// Expr is the tagged-variant interface implemented by every expression
// node. exprNode is unexported so no type outside this package can
// satisfy Expr, keeping the sum type closed.
type Expr interface {
	exprNode()
	Pos() lexer.Position
}

// Stmt is the tagged-variant interface implemented by every statement
// node.
type Stmt interface {
	stmtNode()
	Pos() lexer.Position
}

// Base factors the shared source-location payload out of every
// variant; every concrete Expr/Stmt embeds it anonymously.
type Base struct {
	Loc lexer.Position
}

func (b Base) Pos() lexer.Position { return b.Loc }

// At builds a Base from a source position, for use in node literals:
// &ast.NumberLit{Base: ast.At(pos), Value: n}.
func At(pos lexer.Position) Base { return Base{Loc: pos} }

// Line is one program line: its line number (the one written in the
// source or, when none was given, one the parser assigns: 10 more than
// the previous line's, starting at 10) and the statements on it.
type Line struct {
	Number int
	Stmts  []Stmt
}

// Program is the parser's top-level output: an ordered sequence of
// program lines, immutable after parsing.
type Program struct {
	Lines []Line
}
