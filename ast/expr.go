package ast

import "github.com/albanread/fasterbasic/lexer"

// BinaryOp enumerates the binary operators the parser can produce,
// named rather than stored as raw token types so codegen switches on a
// closed, expression-specific set.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpIntDiv // \
	OpMod
	OpPow
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpXor
	OpImp
	OpEqv
	OpIsNothing
)

// UnaryOp enumerates the unary (prefix) operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpPos
	OpNot
)

// NumberLit is an integer literal.
type NumberLit struct {
	Base
	Value int64
}

func (*NumberLit) exprNode() {}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Base
	Value float64
}

func (*FloatLit) exprNode() {}

// StringLit is a string literal: the text between the quotes, taken as
// written (the lexer has no escape sequences).
type StringLit struct {
	Base
	Value string
}

func (*StringLit) exprNode() {}

// BoolLit is a TRUE/FALSE literal.
type BoolLit struct {
	Base
	Value bool
}

func (*BoolLit) exprNode() {}

// Ident is a bare variable or constant reference, optionally carrying a
// BASIC type suffix ($ % ! # &).
type Ident struct {
	Base
	Name   string
	Suffix byte // 0 if none
}

func (*Ident) exprNode() {}

// MeExpr is the `ME` self-reference inside a method body.
type MeExpr struct{ Base }

func (*MeExpr) exprNode() {}

// SuperExpr is the `SUPER` reference, only valid as the receiver of a
// method call inside an overriding method.
type SuperExpr struct{ Base }

func (*SuperExpr) exprNode() {}

// NothingExpr is the `NOTHING` null-reference literal.
type NothingExpr struct{ Base }

func (*NothingExpr) exprNode() {}

// UnaryExpr applies a prefix operator to one operand.
type UnaryExpr struct {
	Base
	Op   UnaryOp
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// BinaryExpr applies an infix operator to two operands. Precedence is
// already resolved by the parser's precedence-climbing; the tree shape
// itself encodes evaluation order.
type BinaryExpr struct {
	Base
	Op          BinaryOp
	Left, Right Expr
}

func (*BinaryExpr) exprNode() {}

// IsExpr implements the `IS <ClassName>` / `IS NOTHING` type test.
type IsExpr struct {
	Base
	Left      Expr
	ClassName string // empty when testing IS NOTHING
}

func (*IsExpr) exprNode() {}

// CallExpr is a function call, array index, or string-slice call —
// these share a syntax (`name(args)`) and the parser builds this same
// node for all three; the tree shape does not tell them apart. The
// parser's prescanned name sets (IsUserFunction/IsUserSub) identify
// user function and sub names. The codegen package does not lower
// CallExpr.
type CallExpr struct {
	Base
	Callee Expr
	Args   []Expr
}

func (*CallExpr) exprNode() {}

// MemberExpr is `.member` field access in a postfix chain.
type MemberExpr struct {
	Base
	Receiver Expr
	Name     string
}

func (*MemberExpr) exprNode() {}

// MethodCallExpr is `.method(args)` in a postfix chain.
type MethodCallExpr struct {
	Base
	Receiver Expr
	Name     string
	Args     []Expr
}

func (*MethodCallExpr) exprNode() {}

// IIFExpr is the three-argument inline conditional `IIF(cond, t, f)`.
type IIFExpr struct {
	Base
	Cond, Then, Else Expr
}

func (*IIFExpr) exprNode() {}

// NewExpr constructs a heap-allocated class instance: `NEW
// ClassName(args)`.
type NewExpr struct {
	Base
	ClassName string
	Args      []Expr
}

func (*NewExpr) exprNode() {}

// FieldInit is one `Field := value` entry in a CREATE expression with
// named fields.
type FieldInit struct {
	Name  string
	Value Expr
}

// CreateExpr constructs a value-type instance: `CREATE TypeName(args)`
// (positional, Fields empty) or `CREATE TypeName(Field := v, ...)`
// (named, Args empty).
type CreateExpr struct {
	Base
	TypeName string
	Args     []Expr
	Fields   []FieldInit
}

func (*CreateExpr) exprNode() {}

// ListExpr is the `LIST(e1, e2, ...)` list constructor.
type ListExpr struct {
	Base
	Elements []Expr
}

func (*ListExpr) exprNode() {}

func loc(p lexer.Position) Base { return Base{Loc: p} }
