package parser

import "github.com/albanread/fasterbasic/lexer"

// prescan records every FUNCTION and SUB name before the main parse,
// so that IsUserFunction/IsUserSub can tell an identifier followed by
// `(` apart from an array index. The main parse itself does not consult
// these sets: it builds an ast.CallExpr for every `name(args)`, whichever
// it is. This must complete before any
// statement or expression parsing begins — the spec's testable
// property 6 is exactly that every declared name is in one of these
// two sets before the main parse starts, which New() guarantees by
// calling prescan in its constructor.
func (p *Parser) prescan() {
	for i := 0; i < len(p.Tokens); i++ {
		t := p.Tokens[i]
		if t.Type != lexer.TokenKeyword {
			continue
		}
		if t.Literal != "FUNCTION" && t.Literal != "SUB" {
			continue
		}
		if i+1 >= len(p.Tokens) {
			continue
		}
		name := p.Tokens[i+1]
		if name.Type != lexer.TokenIdentifier {
			continue
		}
		if t.Literal == "FUNCTION" {
			p.userFuncs[upper(name.Literal)] = true
		} else {
			p.userSubs[upper(name.Literal)] = true
		}
	}
}
