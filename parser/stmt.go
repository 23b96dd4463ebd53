package parser

import (
	"github.com/albanread/fasterbasic/ast"
	"github.com/albanread/fasterbasic/lexer"
)

// parseStatement dispatches on the current token to one statement
// parser. It never consumes a block-closing keyword sequence that
// belongs to an enclosing construct (ELSE/ELSEIF/ENDIF/NEXT/WEND/LOOP/
// UNTIL/END *) — each block parser below stops as soon as it sees its
// own terminator and lets the caller consume it.
func (p *Parser) parseStatement() ast.Stmt {
	t := p.cur()
	if t.Type == lexer.TokenKeyword {
		switch t.Literal {
		case "PRINT":
			return p.parsePrint()
		case "LET":
			return p.parseLet(true)
		case "INPUT":
			return p.parseInput()
		case "GOTO":
			return p.parseGoto()
		case "GOSUB":
			return p.parseGosub()
		case "RETURN":
			return p.parseReturn()
		case "END":
			return p.parseEnd()
		case "CALL":
			return p.parseCall()
		case "IF":
			return p.parseIf()
		case "FOR":
			return p.parseFor()
		case "WHILE":
			return p.parseWhile()
		case "DO":
			return p.parseDoLoop()
		case "REPEAT":
			return p.parseRepeat()
		case "SELECT":
			return p.parseSelectCase()
		case "DIM":
			return p.parseDim(false)
		case "REDIM":
			return p.parseReDim()
		case "TYPE":
			return p.parseTypeDecl()
		case "CLASS":
			return p.parseClassDecl()
		case "FUNCTION":
			return p.parseFunctionDecl()
		case "SUB":
			return p.parseSubDecl()
		case "DEF":
			return p.parseDef()
		case "TRY":
			return p.parseTry()
		case "THROW":
			return p.parseThrow()
		case "ON":
			return p.parseOn()
		case "OPTION":
			return p.parseOption()
		case "EXIT":
			return p.parseExit()
		case "CONST":
			return p.parseDim(false)
		}
	}
	// No keyword matched: either a bare assignment (`x = 1`) or an
	// expression used in statement position (a bare CALL-less sub/method
	// invocation).
	return p.parseExprOrAssignStmt()
}

func (p *Parser) parsePrint() ast.Stmt {
	pos := p.advance().Pos // PRINT
	stmt := &ast.PrintStmt{Base: ast.At(pos)}
	for !p.atLineEnd() && p.cur().Type != lexer.TokenColon {
		stmt.Items = append(stmt.Items, p.parseExpr())
		switch p.cur().Type {
		case lexer.TokenComma:
			p.advance()
			stmt.Seps = append(stmt.Seps, ',')
		case lexer.TokenSemicolon:
			p.advance()
			stmt.Seps = append(stmt.Seps, ';')
		default:
			stmt.Seps = append(stmt.Seps, 0)
		}
	}
	return stmt
}

func (p *Parser) parseLet(explicit bool) ast.Stmt {
	pos := p.cur().Pos
	if explicit {
		p.advance() // LET
		pos = p.cur().Pos
	}
	target := p.parsePostfix()
	if !p.expectAssign() {
		p.recoverToLineEnd()
		return &ast.LetStmt{Base: ast.At(pos), Target: target}
	}
	value := p.parseExpr()
	return &ast.LetStmt{Base: ast.At(pos), Target: target, Value: value}
}

// expectAssign consumes the `=` that separates an assignment's target
// from its value. FasterBASIC reuses TokenAssign for both equality and
// assignment; the parser tells them apart purely by position.
func (p *Parser) expectAssign() bool {
	if p.cur().Type == lexer.TokenAssign {
		p.advance()
		return true
	}
	p.errorf("expected '=', got %q", p.cur().Literal)
	return false
}

func (p *Parser) parseInput() ast.Stmt {
	pos := p.advance().Pos // INPUT
	stmt := &ast.InputStmt{Base: ast.At(pos)}
	if p.cur().Type == lexer.TokenString {
		stmt.Prompt = p.cur().Literal
		p.advance()
		if p.cur().Type == lexer.TokenComma || p.cur().Type == lexer.TokenSemicolon {
			p.advance()
		}
	}
	for {
		stmt.Vars = append(stmt.Vars, p.parseExpr())
		if p.cur().Type == lexer.TokenComma {
			p.advance()
			continue
		}
		break
	}
	return stmt
}

func (p *Parser) parseGoto() ast.Stmt {
	pos := p.advance().Pos
	label := p.cur().Literal
	if p.cur().Type == lexer.TokenNumber || p.cur().Type == lexer.TokenIdentifier {
		p.advance()
	}
	return &ast.GotoStmt{Base: ast.At(pos), Label: label}
}

func (p *Parser) parseGosub() ast.Stmt {
	pos := p.advance().Pos
	label := p.cur().Literal
	if p.cur().Type == lexer.TokenNumber || p.cur().Type == lexer.TokenIdentifier {
		p.advance()
	}
	return &ast.GosubStmt{Base: ast.At(pos), Label: label}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.advance().Pos
	stmt := &ast.ReturnStmt{Base: ast.At(pos)}
	if !p.atLineEnd() && p.cur().Type != lexer.TokenColon {
		stmt.Value = p.parseExpr()
	}
	return stmt
}

func (p *Parser) parseEnd() ast.Stmt {
	pos := p.advance().Pos
	return &ast.EndStmt{Base: ast.At(pos)}
}

func (p *Parser) parseCall() ast.Stmt {
	pos := p.advance().Pos
	call := p.parseExpr()
	return &ast.CallStmt{Base: ast.At(pos), Call: call}
}

// parseExprOrAssignStmt handles the two statement shapes that don't
// start with a distinguishing keyword: `target = value` and a bare
// call expression used for its side effect.
func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	pos := p.cur().Pos
	start, nerr := p.pos, len(p.errors.Errors)
	target := p.parsePostfix()
	if p.cur().Type == lexer.TokenAssign {
		p.advance()
		value := p.parseExpr()
		return &ast.LetStmt{Base: ast.At(pos), Target: target, Value: value}
	}
	// Not an assignment: re-parse from the start as a full expression.
	p.pos, p.errors.Errors = start, p.errors.Errors[:nerr]
	expr := p.parseExpr()
	return &ast.ExprStmt{Base: ast.At(pos), X: expr}
}

// blockEndNames is the set of names that, following a bare END
// keyword, spell the two-token form of a block terminator (`END IF`,
// `END SUB`, ...) rather than the stand-alone program-termination
// statement. blockBody must recognize this pairing to avoid mistaking
// a real `END` statement inside a body for its enclosing terminator.
var blockEndNames = map[string]bool{
	"IF": true, "SUB": true, "FUNCTION": true, "SELECT": true, "TYPE": true,
	"CLASS": true, "TRY": true, "METHOD": true, "CONSTRUCTOR": true,
	"DESTRUCTOR": true,
}

// blockBody parses statements until the current token is one of the
// given terminating keywords, or a bare END immediately followed by a
// block-closing name, or EOF — without consuming the terminator
// itself.
func (p *Parser) blockBody(terminators ...string) []ast.Stmt {
	var body []ast.Stmt
	for {
		p.skipBlankLines()
		if p.atEnd() {
			return body
		}
		if p.cur().Type == lexer.TokenKeyword {
			if p.cur().Literal == "END" && blockEndNames[p.peek(1).Literal] {
				return body
			}
			for _, kw := range terminators {
				if p.cur().Literal == kw {
					return body
				}
			}
		}
		s := p.parseStatement()
		if s != nil {
			body = append(body, s)
		}
		if s == nil {
			p.recoverToLineEnd()
		}
		if p.cur().Type == lexer.TokenColon {
			p.advance()
			continue
		}
		if p.cur().Type == lexer.TokenNewline {
			p.advance()
			continue
		}
	}
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.advance().Pos // IF
	cond := p.parseExpr()
	p.expectKeyword("THEN")
	if !p.atLineEnd() && p.cur().Type != lexer.TokenNewline && !p.isKeyword("ELSE") {
		// Single-line form: body runs to end of line (or ELSE).
		stmt := &ast.IfStmt{Base: ast.At(pos), Cond: cond, SingleLine: true}
		for !p.atLineEnd() && p.cur().Type != lexer.TokenColon && !p.isKeyword("ELSE") {
			s := p.parseStatement()
			if s != nil {
				stmt.Then = append(stmt.Then, s)
			}
		}
		if p.isKeyword("ELSE") {
			p.advance()
			for !p.atLineEnd() && p.cur().Type != lexer.TokenColon {
				s := p.parseStatement()
				if s != nil {
					stmt.Else = append(stmt.Else, s)
				}
			}
		}
		return stmt
	}

	stmt := &ast.IfStmt{Base: ast.At(pos), Cond: cond}
	stmt.Then = p.blockBody("ELSEIF", "ELSE", "ENDIF")
	for p.isKeyword("ELSEIF") {
		p.advance()
		eiCond := p.parseExpr()
		p.expectKeyword("THEN")
		ei := ast.ElseIfClause{Cond: eiCond, Body: p.blockBody("ELSEIF", "ELSE", "ENDIF")}
		stmt.ElseIfs = append(stmt.ElseIfs, ei)
	}
	if p.isKeyword("ELSE") {
		p.advance()
		stmt.Else = p.blockBody("ENDIF")
	}
	p.consumeBlockEnd("ENDIF", "IF")
	return stmt
}

// consumeBlockEnd consumes either the single composite keyword `kw`
// (e.g. ENDIF) or the two-token form `END <name>` (e.g. END IF),
// whichever the source used.
func (p *Parser) consumeBlockEnd(composite, name string) {
	if p.isKeyword(composite) {
		p.advance()
		return
	}
	if p.isKeyword("END") {
		p.advance()
		if p.isKeyword(name) {
			p.advance()
		}
		return
	}
	p.errorf("expected %s, got %q", composite, p.cur().Literal)
}

func (p *Parser) parseFor() ast.Stmt {
	pos := p.advance().Pos // FOR
	varName := p.cur().Literal
	if p.cur().Type == lexer.TokenIdentifier {
		p.advance()
	}
	p.expectAssign()
	start := p.parseExpr()
	p.expectKeyword("TO")
	end := p.parseExpr()
	var step ast.Expr
	if p.isKeyword("STEP") {
		p.advance()
		step = p.parseExpr()
	}
	body := p.blockBody("NEXT")
	if p.isKeyword("NEXT") {
		p.advance()
		if p.cur().Type == lexer.TokenIdentifier {
			p.advance()
		}
	}
	return &ast.ForStmt{Base: ast.At(pos), Var: varName, Start: start, End: end, Step: step, Body: body}
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.advance().Pos
	cond := p.parseExpr()
	body := p.blockBody("WEND")
	if p.isKeyword("WEND") {
		p.advance()
	}
	return &ast.WhileStmt{Base: ast.At(pos), Cond: cond, Body: body}
}

func (p *Parser) parseDoLoop() ast.Stmt {
	pos := p.advance().Pos // DO
	stmt := &ast.DoLoopStmt{Base: ast.At(pos)}
	if p.isKeyword("WHILE") {
		p.advance()
		stmt.PreCond = p.parseExpr()
	} else if p.isKeyword("UNTIL") {
		p.advance()
		stmt.PreCond = p.parseExpr()
		stmt.PreUntil = true
	}
	stmt.Body = p.blockBody("LOOP")
	if p.isKeyword("LOOP") {
		p.advance()
		if p.isKeyword("WHILE") {
			p.advance()
			stmt.PostCond = p.parseExpr()
		} else if p.isKeyword("UNTIL") {
			p.advance()
			stmt.PostCond = p.parseExpr()
			stmt.PostUntil = true
		}
	}
	return stmt
}

func (p *Parser) parseRepeat() ast.Stmt {
	pos := p.advance().Pos
	body := p.blockBody("UNTIL")
	var cond ast.Expr
	if p.isKeyword("UNTIL") {
		p.advance()
		cond = p.parseExpr()
	}
	return &ast.RepeatStmt{Base: ast.At(pos), Body: body, Cond: cond}
}

func (p *Parser) parseSelectCase() ast.Stmt {
	pos := p.advance().Pos // SELECT
	p.expectKeyword("CASE")
	subject := p.parseExpr()
	stmt := &ast.SelectCaseStmt{Base: ast.At(pos), Subject: subject}
	p.skipBlankLines()
	for p.isKeyword("CASE") {
		p.advance()
		clause := ast.CaseClause{}
		if p.isKeyword("ELSE") {
			p.advance()
			clause.IsElse = true
		} else {
			for {
				clause.Values = append(clause.Values, p.parseExpr())
				if p.cur().Type == lexer.TokenComma {
					p.advance()
					continue
				}
				break
			}
		}
		clause.Body = p.blockBody("CASE", "ENDSELECT")
		stmt.Cases = append(stmt.Cases, clause)
		p.skipBlankLines()
	}
	p.consumeBlockEnd("ENDSELECT", "SELECT")
	return stmt
}

func (p *Parser) parseDimEntries() []ast.DimEntry {
	var entries []ast.DimEntry
	for {
		name := p.cur().Literal
		if p.cur().Type == lexer.TokenIdentifier {
			p.advance()
		}
		entry := ast.DimEntry{Name: name}
		if p.cur().Type == lexer.TokenLParen {
			p.advance()
			for p.cur().Type != lexer.TokenRParen && !p.atLineEnd() {
				entry.Dims = append(entry.Dims, p.parseExpr())
				if p.cur().Type == lexer.TokenComma {
					p.advance()
					continue
				}
				break
			}
			if p.cur().Type == lexer.TokenRParen {
				p.advance()
			}
		}
		if p.isKeyword("AS") {
			p.advance()
			entry.Type = p.cur().Literal
			p.advance()
		}
		entries = append(entries, entry)
		if p.cur().Type == lexer.TokenComma {
			p.advance()
			continue
		}
		break
	}
	return entries
}

func (p *Parser) parseDim(shared bool) ast.Stmt {
	pos := p.advance().Pos // DIM or CONST
	if p.isKeyword("SHARED") {
		p.advance()
		shared = true
	}
	entries := p.parseDimEntries()
	return &ast.DimStmt{Base: ast.At(pos), Entries: entries, Shared: shared}
}

func (p *Parser) parseReDim() ast.Stmt {
	pos := p.advance().Pos
	preserve := false
	if p.isKeyword("PRESERVE") {
		p.advance()
		preserve = true
	}
	entries := p.parseDimEntries()
	return &ast.ReDimStmt{Base: ast.At(pos), Entries: entries, Preserve: preserve}
}

func (p *Parser) parseFieldDecls(terminator string) []ast.FieldDecl {
	var fields []ast.FieldDecl
	p.skipBlankLines()
	for !p.atEnd() && !p.isKeyword(terminator) && !p.isKeyword("END") {
		name := p.cur().Literal
		if p.cur().Type == lexer.TokenIdentifier {
			p.advance()
		}
		typ := ""
		if p.isKeyword("AS") {
			p.advance()
			typ = p.cur().Literal
			p.advance()
		}
		fields = append(fields, ast.FieldDecl{Name: name, Type: typ})
		p.skipBlankLines()
	}
	return fields
}

func (p *Parser) parseTypeDecl() ast.Stmt {
	pos := p.advance().Pos // TYPE
	name := p.cur().Literal
	if p.cur().Type == lexer.TokenIdentifier {
		p.advance()
	}
	fields := p.parseFieldDecls("ENDTYPE")
	p.consumeBlockEnd("ENDTYPE", "TYPE")
	return &ast.TypeDecl{Base: ast.At(pos), Name: name, Fields: fields}
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if p.cur().Type != lexer.TokenLParen {
		return params
	}
	p.advance()
	for p.cur().Type != lexer.TokenRParen && !p.atLineEnd() {
		param := ast.Param{}
		if p.isKeyword("AS") {
			// unreachable guard; keeps the loop well-formed if a stray AS appears
			p.advance()
		}
		param.Name = p.cur().Literal
		if p.cur().Type == lexer.TokenIdentifier {
			p.advance()
		}
		if p.isKeyword("AS") {
			p.advance()
			param.Type = p.cur().Literal
			p.advance()
		}
		params = append(params, param)
		if p.cur().Type == lexer.TokenComma {
			p.advance()
			continue
		}
		break
	}
	if p.cur().Type == lexer.TokenRParen {
		p.advance()
	}
	return params
}

func (p *Parser) parseClassDecl() ast.Stmt {
	pos := p.advance().Pos // CLASS
	name := p.cur().Literal
	if p.cur().Type == lexer.TokenIdentifier {
		p.advance()
	}
	extends := ""
	if p.isKeyword("EXTENDS") {
		p.advance()
		extends = p.cur().Literal
		p.advance()
	}
	decl := &ast.ClassDecl{Base: ast.At(pos), Name: name, Extends: extends}
	p.skipBlankLines()
	for !p.atEnd() && !p.isKeyword("END") && !p.isKeyword("ENDCLASS") {
		switch {
		case p.isKeyword("METHOD"):
			decl.Methods = append(decl.Methods, p.parseMethodDecl(ast.MethodPlain))
		case p.isKeyword("CONSTRUCTOR"):
			decl.Methods = append(decl.Methods, p.parseMethodDecl(ast.MethodConstructor))
		case p.isKeyword("DESTRUCTOR"):
			decl.Methods = append(decl.Methods, p.parseMethodDecl(ast.MethodDestructor))
		case p.cur().Type == lexer.TokenIdentifier:
			name := p.advance().Literal
			typ := ""
			if p.isKeyword("AS") {
				p.advance()
				typ = p.cur().Literal
				p.advance()
			}
			decl.Fields = append(decl.Fields, ast.FieldDecl{Name: name, Type: typ})
		default:
			p.recoverToLineEnd()
		}
		p.skipBlankLines()
	}
	p.consumeBlockEnd("ENDCLASS", "CLASS")
	return decl
}

func (p *Parser) parseMethodDecl(kind ast.MethodKind) ast.MethodDecl {
	p.advance() // METHOD/CONSTRUCTOR/DESTRUCTOR
	name := ""
	if p.cur().Type == lexer.TokenIdentifier {
		name = p.advance().Literal
	}
	params := p.parseParamList()
	returns := ""
	if p.isKeyword("AS") {
		p.advance()
		returns = p.cur().Literal
		p.advance()
	}
	body := p.blockBody()
	if p.isKeyword("END") {
		p.advance()
		p.advance() // METHOD/CONSTRUCTOR/DESTRUCTOR/SUB/FUNCTION
	}
	return ast.MethodDecl{Name: name, Params: params, Returns: returns, Body: body, Kind: kind}
}

func (p *Parser) parseFunctionDecl() ast.Stmt {
	pos := p.advance().Pos // FUNCTION
	name := p.cur().Literal
	if p.cur().Type == lexer.TokenIdentifier {
		p.advance()
	}
	params := p.parseParamList()
	returns := ""
	if p.isKeyword("AS") {
		p.advance()
		returns = p.cur().Literal
		p.advance()
	}
	body := p.blockBody("ENDFUNCTION")
	p.consumeBlockEnd("ENDFUNCTION", "FUNCTION")
	return &ast.FunctionDecl{Base: ast.At(pos), Name: name, Params: params, Returns: returns, Body: body}
}

func (p *Parser) parseSubDecl() ast.Stmt {
	pos := p.advance().Pos // SUB
	name := p.cur().Literal
	if p.cur().Type == lexer.TokenIdentifier {
		p.advance()
	}
	params := p.parseParamList()
	body := p.blockBody("ENDSUB")
	p.consumeBlockEnd("ENDSUB", "SUB")
	return &ast.SubDecl{Base: ast.At(pos), Name: name, Params: params, Body: body}
}

func (p *Parser) parseDef() ast.Stmt {
	pos := p.advance().Pos // DEF
	name := p.cur().Literal
	if p.cur().Type == lexer.TokenIdentifier {
		p.advance()
	}
	var params []string
	if p.cur().Type == lexer.TokenLParen {
		p.advance()
		for p.cur().Type != lexer.TokenRParen && !p.atLineEnd() {
			params = append(params, p.cur().Literal)
			if p.cur().Type == lexer.TokenIdentifier {
				p.advance()
			}
			if p.cur().Type == lexer.TokenComma {
				p.advance()
				continue
			}
			break
		}
		if p.cur().Type == lexer.TokenRParen {
			p.advance()
		}
	}
	p.expectAssign()
	body := p.parseExpr()
	return &ast.DefStmt{Base: ast.At(pos), Name: name, Params: params, Body: body}
}

func (p *Parser) parseTry() ast.Stmt {
	pos := p.advance().Pos // TRY
	stmt := &ast.TryStmt{Base: ast.At(pos)}
	stmt.Body = p.blockBody("CATCH", "FINALLY", "ENDTRY")
	for p.isKeyword("CATCH") {
		p.advance()
		clause := ast.CatchClause{}
		if p.cur().Type == lexer.TokenIdentifier {
			clause.VarName = p.advance().Literal
			if p.isKeyword("AS") {
				p.advance()
				clause.Type = p.cur().Literal
				p.advance()
			}
		}
		clause.Body = p.blockBody("CATCH", "FINALLY", "ENDTRY")
		stmt.Catches = append(stmt.Catches, clause)
	}
	if p.isKeyword("FINALLY") {
		p.advance()
		stmt.Finally = p.blockBody("ENDTRY")
	}
	p.consumeBlockEnd("ENDTRY", "TRY")
	return stmt
}

func (p *Parser) parseThrow() ast.Stmt {
	pos := p.advance().Pos
	return &ast.ThrowStmt{Base: ast.At(pos), Value: p.parseExpr()}
}

func (p *Parser) parseOn() ast.Stmt {
	pos := p.advance().Pos // ON
	stmt := &ast.OnStmt{Base: ast.At(pos)}
	if p.isKeyword("ERROR") {
		p.advance()
		stmt.IsError = true
	} else {
		stmt.Subject = p.parseExpr()
	}
	if p.isKeyword("GOSUB") {
		p.advance()
		stmt.IsGosub = true
	} else {
		p.expectKeyword("GOTO")
	}
	for {
		stmt.Labels = append(stmt.Labels, p.cur().Literal)
		if p.cur().Type == lexer.TokenNumber || p.cur().Type == lexer.TokenIdentifier {
			p.advance()
		}
		if p.cur().Type == lexer.TokenComma {
			p.advance()
			continue
		}
		break
	}
	return stmt
}

func (p *Parser) parseOption() ast.Stmt {
	pos := p.advance().Pos
	name := p.cur().Literal
	p.advance()
	value := ""
	if !p.atLineEnd() && p.cur().Type != lexer.TokenColon {
		value = p.cur().Literal
		p.advance()
	}
	return &ast.OptionStmt{Base: ast.At(pos), Name: name, Value: value}
}

func (p *Parser) parseExit() ast.Stmt {
	pos := p.advance().Pos
	kind := p.cur().Literal
	if p.cur().Type == lexer.TokenKeyword {
		p.advance()
	}
	return &ast.ExitStmt{Base: ast.At(pos), Kind: kind}
}
