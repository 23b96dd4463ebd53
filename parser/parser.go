// Package parser implements a recursive-descent, precedence-climbing
// parser for FasterBASIC. It consumes a lexer.Token stream and
// produces an ast.Program, reporting every syntax error it finds
// rather than stopping at the first one.
package parser

import (
	"github.com/albanread/fasterbasic/ast"
	"github.com/albanread/fasterbasic/lexer"
)

// Parser holds the token stream and parse state. Tokens are slurped
// up front (not streamed) so the forward-reference prescan and the
// occasional lookahead the grammar needs (e.g. disambiguating a
// single-line IF from a block IF) can both index freely into Tokens.
type Parser struct {
	Tokens []lexer.Token
	pos    int
	errors *ErrorList

	userFuncs map[string]bool
	userSubs  map[string]bool

	nextLineNumber int
}

// New creates a Parser over an already-tokenized source (typically
// lexer.New(src, filename).TokenizeAll()).
func New(tokens []lexer.Token) *Parser {
	p := &Parser{
		Tokens:         filterTrivia(tokens),
		errors:         &ErrorList{},
		userFuncs:      map[string]bool{},
		userSubs:       map[string]bool{},
		nextLineNumber: 10,
	}
	p.prescan()
	return p
}

// filterTrivia drops comment tokens; they carry no grammatical weight
// and complicate every lookahead if left in the stream.
func filterTrivia(toks []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(toks))
	for _, t := range toks {
		if t.Type != lexer.TokenComment {
			out = append(out, t)
		}
	}
	return out
}

// Parse runs the full parse and returns the resulting (possibly
// partial, on error) Program plus the accumulated error list.
func Parse(tokens []lexer.Token) (*ast.Program, *ErrorList) {
	p := New(tokens)
	return p.ParseProgram(), p.errors
}

// ParseProgram parses every line until EOF.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.atEnd() {
		p.skipBlankLines()
		if p.atEnd() {
			break
		}
		line := p.parseLine()
		if len(line.Stmts) > 0 || line.Number != 0 {
			prog.Lines = append(prog.Lines, line)
		}
	}
	return prog
}

func (p *Parser) parseLine() ast.Line {
	num := 0
	if p.cur().Type == lexer.TokenNumber {
		if n, ok := parseIntLiteral(p.cur().Literal); ok {
			num = int(n)
			p.advance()
		}
	}
	if num == 0 {
		num = p.nextLineNumber
	}
	p.nextLineNumber = num + 10

	var stmts []ast.Stmt
	for !p.atLineEnd() {
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
		if p.cur().Type == lexer.TokenColon {
			p.advance()
			continue
		}
		break
	}
	p.consumeLineTerminator()
	return ast.Line{Number: num, Stmts: stmts}
}

func (p *Parser) skipBlankLines() {
	for p.cur().Type == lexer.TokenNewline {
		p.advance()
	}
}

func (p *Parser) consumeLineTerminator() {
	for p.cur().Type == lexer.TokenNewline {
		p.advance()
	}
}

func (p *Parser) atLineEnd() bool {
	t := p.cur().Type
	return t == lexer.TokenEOF || t == lexer.TokenNewline
}

func (p *Parser) atEnd() bool { return p.cur().Type == lexer.TokenEOF }

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.Tokens) {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return p.Tokens[p.pos]
}

func (p *Parser) peek(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.Tokens) {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return p.Tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.Tokens) {
		p.pos++
	}
	return t
}

// isKeyword reports whether the current token is the keyword kw
// (already-canonicalized uppercase, per lexer.Keywords).
func (p *Parser) isKeyword(kw string) bool {
	t := p.cur()
	return t.Type == lexer.TokenKeyword && t.Literal == kw
}

// expectKeyword consumes kw or records a recoverable error.
func (p *Parser) expectKeyword(kw string) bool {
	if p.isKeyword(kw) {
		p.advance()
		return true
	}
	p.errorf("expected %s, got %q", kw, p.cur().Literal)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors.add(p.cur().Pos, format, args...)
}

// recoverToLineEnd implements the statement-granularity recovery the
// spec requires: on any parse error, skip forward to the next
// statement separator or line end so later diagnostics aren't lost.
func (p *Parser) recoverToLineEnd() {
	for {
		t := p.cur().Type
		if t == lexer.TokenEOF || t == lexer.TokenNewline || t == lexer.TokenColon {
			return
		}
		p.advance()
	}
}

// Errors returns the accumulated parse error list.
func (p *Parser) Errors() *ErrorList { return p.errors }

// IsUserFunction reports whether name was prescanned as a FUNCTION.
func (p *Parser) IsUserFunction(name string) bool { return p.userFuncs[upper(name)] }

// IsUserSub reports whether name was prescanned as a SUB.
func (p *Parser) IsUserSub(name string) bool { return p.userSubs[upper(name)] }
