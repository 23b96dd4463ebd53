package parser

import (
	"strconv"
	"strings"

	"github.com/albanread/fasterbasic/ast"
	"github.com/albanread/fasterbasic/lexer"
)

// parseExpr is the entry point into the precedence-climbing expression
// grammar, lowest precedence first: IMP, EQV, OR, XOR, AND, NOT,
// comparisons (incl. IS), additive, multiplicative, unary +/-,
// exponentiation, postfix `(args)` chain, primary. Member access and
// method calls (`.name`) are not parsed: the lexer has no '.' token.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseImp()
}

func (p *Parser) parseImp() ast.Expr {
	left := p.parseEqv()
	for p.isKeyword("IMP") {
		pos := p.advance().Pos
		right := p.parseEqv()
		left = &ast.BinaryExpr{Op: ast.OpImp, Left: left, Right: right}
		_ = pos
	}
	return left
}

func (p *Parser) parseEqv() ast.Expr {
	left := p.parseOr()
	for p.isKeyword("EQV") {
		p.advance()
		right := p.parseOr()
		left = &ast.BinaryExpr{Op: ast.OpEqv, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseXor()
	for p.isKeyword("OR") {
		p.advance()
		right := p.parseXor()
		left = &ast.BinaryExpr{Op: ast.OpOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseXor() ast.Expr {
	left := p.parseAnd()
	for p.isKeyword("XOR") {
		p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Op: ast.OpXor, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseNot()
	for p.isKeyword("AND") {
		p.advance()
		right := p.parseNot()
		left = &ast.BinaryExpr{Op: ast.OpAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseNot() ast.Expr {
	if p.isKeyword("NOT") {
		pos := p.advance().Pos
		operand := p.parseNot()
		return &ast.UnaryExpr{Base: ast.At(pos), Op: ast.OpNot, Expr: operand}
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for {
		var op ast.BinaryOp
		switch p.cur().Type {
		case lexer.TokenAssign:
			op = ast.OpEq
		case lexer.TokenNotEqual:
			op = ast.OpNe
		case lexer.TokenLess:
			op = ast.OpLt
		case lexer.TokenLessEqual:
			op = ast.OpLe
		case lexer.TokenGreater:
			op = ast.OpGt
		case lexer.TokenGreaterEqual:
			op = ast.OpGe
		default:
			if p.isKeyword("IS") {
				pos := p.advance().Pos
				if p.isKeyword("NOTHING") {
					p.advance()
					left = &ast.IsExpr{Base: ast.At(pos), Left: left}
					continue
				}
				name := p.cur().Literal
				if p.cur().Type == lexer.TokenIdentifier {
					p.advance()
				}
				left = &ast.IsExpr{Base: ast.At(pos), Left: left, ClassName: name}
				continue
			}
			return left
		}
		pos := p.advance().Pos
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Base: ast.At(pos), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for {
		var op ast.BinaryOp
		switch p.cur().Type {
		case lexer.TokenPlus:
			op = ast.OpAdd
		case lexer.TokenMinus:
			op = ast.OpSub
		default:
			return left
		}
		pos := p.advance().Pos
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Base: ast.At(pos), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for {
		var op ast.BinaryOp
		switch {
		case p.cur().Type == lexer.TokenStar:
			op = ast.OpMul
		case p.cur().Type == lexer.TokenSlash:
			op = ast.OpDiv
		case p.cur().Literal == `\` :
			op = ast.OpIntDiv
		case p.isKeyword("MOD"):
			op = ast.OpMod
		default:
			return left
		}
		pos := p.advance().Pos
		right := p.parseUnary()
		left = &ast.BinaryExpr{Base: ast.At(pos), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	if p.cur().Type == lexer.TokenMinus {
		pos := p.advance().Pos
		return &ast.UnaryExpr{Base: ast.At(pos), Op: ast.OpNeg, Expr: p.parseUnary()}
	}
	if p.cur().Type == lexer.TokenPlus {
		pos := p.advance().Pos
		return &ast.UnaryExpr{Base: ast.At(pos), Op: ast.OpPos, Expr: p.parseUnary()}
	}
	return p.parseExponent()
}

// parseExponent implements `^`, left-associative to match the
// reference implementation rather than the source dialect's usual
// right-associative intent (see Design Notes).
func (p *Parser) parseExponent() ast.Expr {
	left := p.parsePostfix()
	for p.cur().Type == lexer.TokenCaret {
		pos := p.advance().Pos
		right := p.parsePostfix()
		left = &ast.BinaryExpr{Base: ast.At(pos), Op: ast.OpPow, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.cur().Type {
		case lexer.TokenLParen:
			pos := p.advance().Pos
			args := p.parseArgList()
			expr = &ast.CallExpr{Base: ast.At(pos), Callee: expr, Args: args}
		case lexer.TokenColon:
			// A statement separator ends the postfix chain.
			return expr
		default:
			if p.cur().Type == lexer.TokenIdentifier && strings.HasPrefix(p.cur().Literal, ".") {
				// The lexer passes a stray '.' on as a one-character
				// identifier after reporting it; member access is not
				// parsed, so the chain ends here as well.
			}
			return expr
		}
	}
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	if p.cur().Type == lexer.TokenRParen {
		p.advance()
		return args
	}
	for {
		args = append(args, p.parseExpr())
		if p.cur().Type == lexer.TokenComma {
			p.advance()
			continue
		}
		break
	}
	if p.cur().Type == lexer.TokenRParen {
		p.advance()
	} else {
		p.errorf("expected ')' after argument list, got %q", p.cur().Literal)
	}
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Type {
	case lexer.TokenNumber:
		p.advance()
		n, _ := strconv.ParseInt(t.Literal, 0, 64)
		return &ast.NumberLit{Base: ast.At(t.Pos), Value: n}
	case lexer.TokenFloatNumber:
		p.advance()
		f, _ := strconv.ParseFloat(t.Literal, 64)
		return &ast.FloatLit{Base: ast.At(t.Pos), Value: f}
	case lexer.TokenString:
		p.advance()
		return &ast.StringLit{Base: ast.At(t.Pos), Value: t.Literal}
	case lexer.TokenLParen:
		p.advance()
		inner := p.parseExpr()
		if p.cur().Type == lexer.TokenRParen {
			p.advance()
		} else {
			p.errorf("expected ')', got %q", p.cur().Literal)
		}
		return inner
	case lexer.TokenIdentifier:
		p.advance()
		return p.identOrTrailer(t)
	case lexer.TokenKeyword:
		switch t.Literal {
		case "TRUE":
			p.advance()
			return &ast.BoolLit{Base: ast.At(t.Pos), Value: true}
		case "FALSE":
			p.advance()
			return &ast.BoolLit{Base: ast.At(t.Pos), Value: false}
		}
	}
	p.errorf("unexpected token %q in expression", t.Literal)
	p.advance()
	return &ast.NothingExpr{Base: ast.At(t.Pos)}
}

// identOrTrailer builds an Ident, splitting off a trailing type-suffix
// character that the lexer keeps as part of the identifier literal
// when it is one of the five sigils $ % ! # &.
func (p *Parser) identOrTrailer(t lexer.Token) ast.Expr {
	name := t.Literal
	var suffix byte
	if n := len(name); n > 1 {
		last := name[n-1]
		if last == '$' || last == '%' || last == '!' || last == '#' || last == '&' {
			suffix = last
			name = name[:n-1]
		}
	}
	return &ast.Ident{Base: ast.At(t.Pos), Name: name, Suffix: suffix}
}
