package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders p back to FasterBASIC source text. Re-parsing the
// result is expected to yield an AST equal to p modulo whitespace and
// auto-assigned line numbers (spec's parse/print/re-parse round-trip
// law); Print always emits an explicit line number so that law holds
// literally, not just up to renumbering.
func Print(p *Program) string {
	var sb strings.Builder
	for _, line := range p.Lines {
		sb.WriteString(strconv.Itoa(line.Number))
		sb.WriteByte(' ')
		parts := make([]string, len(line.Stmts))
		for i, s := range line.Stmts {
			parts[i] = printStmt(s)
		}
		sb.WriteString(strings.Join(parts, " : "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func printStmt(s Stmt) string {
	switch v := s.(type) {
	case *PrintStmt:
		var sb strings.Builder
		sb.WriteString("PRINT ")
		for i, item := range v.Items {
			sb.WriteString(printExpr(item))
			if i < len(v.Seps) && v.Seps[i] != 0 {
				sb.WriteByte(v.Seps[i])
				sb.WriteByte(' ')
			} else if i < len(v.Items)-1 {
				sb.WriteByte(' ')
			}
		}
		return sb.String()
	case *LetStmt:
		return fmt.Sprintf("%s = %s", printExpr(v.Target), printExpr(v.Value))
	case *GotoStmt:
		return "GOTO " + v.Label
	case *GosubStmt:
		return "GOSUB " + v.Label
	case *ReturnStmt:
		if v.Value == nil {
			return "RETURN"
		}
		return "RETURN " + printExpr(v.Value)
	case *EndStmt:
		return "END"
	case *CallStmt:
		return "CALL " + printExpr(v.Call)
	case *ExprStmt:
		return printExpr(v.X)
	case *IfStmt:
		return printIf(v)
	case *ForStmt:
		return printFor(v)
	case *WhileStmt:
		return printWhile(v)
	case *DimStmt:
		return printDim(v)
	case *FunctionDecl:
		return printFunction(v)
	case *SubDecl:
		return printSub(v)
	case *ExitStmt:
		return "EXIT " + v.Kind
	case *ThrowStmt:
		return "THROW " + printExpr(v.Value)
	case *InputStmt:
		return printInput(v)
	case *ReDimStmt:
		return printReDim(v)
	case *DoLoopStmt:
		return printDoLoop(v)
	case *RepeatStmt:
		return printRepeat(v)
	case *SelectCaseStmt:
		return printSelectCase(v)
	case *TypeDecl:
		return printTypeDecl(v)
	case *ClassDecl:
		return printClassDecl(v)
	case *DefStmt:
		return printDef(v)
	case *TryStmt:
		return printTry(v)
	case *OnStmt:
		return printOn(v)
	case *OptionStmt:
		if v.Value == "" {
			return "OPTION " + v.Name
		}
		return "OPTION " + v.Name + " " + v.Value
	default:
		return fmt.Sprintf("/* unsupported statement %T */", s)
	}
}

func printBlock(indent string, body []Stmt) string {
	var sb strings.Builder
	for _, s := range body {
		sb.WriteString(indent)
		sb.WriteString(printStmt(s))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func printIf(v *IfStmt) string {
	if v.SingleLine {
		var sb strings.Builder
		fmt.Fprintf(&sb, "IF %s THEN", printExpr(v.Cond))
		for _, s := range v.Then {
			sb.WriteString(" " + printStmt(s))
		}
		if v.Else != nil {
			sb.WriteString(" ELSE")
			for _, s := range v.Else {
				sb.WriteString(" " + printStmt(s))
			}
		}
		return sb.String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "IF %s THEN\n", printExpr(v.Cond))
	sb.WriteString(printBlock("  ", v.Then))
	for _, ei := range v.ElseIfs {
		fmt.Fprintf(&sb, "ELSEIF %s THEN\n", printExpr(ei.Cond))
		sb.WriteString(printBlock("  ", ei.Body))
	}
	if v.Else != nil {
		sb.WriteString("ELSE\n")
		sb.WriteString(printBlock("  ", v.Else))
	}
	sb.WriteString("ENDIF")
	return sb.String()
}

func printFor(v *ForStmt) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "FOR %s = %s TO %s", v.Var, printExpr(v.Start), printExpr(v.End))
	if v.Step != nil {
		fmt.Fprintf(&sb, " STEP %s", printExpr(v.Step))
	}
	sb.WriteByte('\n')
	sb.WriteString(printBlock("  ", v.Body))
	sb.WriteString("NEXT")
	return sb.String()
}

func printWhile(v *WhileStmt) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "WHILE %s\n", printExpr(v.Cond))
	sb.WriteString(printBlock("  ", v.Body))
	sb.WriteString("WEND")
	return sb.String()
}

func printDim(v *DimStmt) string {
	prefix := "DIM "
	if v.Shared {
		prefix = "DIM SHARED "
	}
	return prefix + printDimEntries(v.Entries)
}

func printReDim(v *ReDimStmt) string {
	if v.Preserve {
		return "REDIM PRESERVE " + printDimEntries(v.Entries)
	}
	return "REDIM " + printDimEntries(v.Entries)
}

func printDimEntries(entries []DimEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		s := e.Name
		if len(e.Dims) > 0 {
			dims := make([]string, len(e.Dims))
			for j, d := range e.Dims {
				dims[j] = printExpr(d)
			}
			s += "(" + strings.Join(dims, ", ") + ")"
		}
		if e.Type != "" {
			s += " AS " + e.Type
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

func printInput(v *InputStmt) string {
	var sb strings.Builder
	sb.WriteString("INPUT ")
	if v.Prompt != "" {
		fmt.Fprintf(&sb, "%q, ", v.Prompt)
	}
	parts := make([]string, len(v.Vars))
	for i, e := range v.Vars {
		parts[i] = printExpr(e)
	}
	sb.WriteString(strings.Join(parts, ", "))
	return sb.String()
}

func printDoLoop(v *DoLoopStmt) string {
	var sb strings.Builder
	sb.WriteString("DO")
	if v.PreCond != nil {
		if v.PreUntil {
			fmt.Fprintf(&sb, " UNTIL %s", printExpr(v.PreCond))
		} else {
			fmt.Fprintf(&sb, " WHILE %s", printExpr(v.PreCond))
		}
	}
	sb.WriteByte('\n')
	sb.WriteString(printBlock("  ", v.Body))
	sb.WriteString("LOOP")
	if v.PostCond != nil {
		if v.PostUntil {
			fmt.Fprintf(&sb, " UNTIL %s", printExpr(v.PostCond))
		} else {
			fmt.Fprintf(&sb, " WHILE %s", printExpr(v.PostCond))
		}
	}
	return sb.String()
}

func printRepeat(v *RepeatStmt) string {
	var sb strings.Builder
	sb.WriteString("REPEAT\n")
	sb.WriteString(printBlock("  ", v.Body))
	fmt.Fprintf(&sb, "UNTIL %s", printExpr(v.Cond))
	return sb.String()
}

func printSelectCase(v *SelectCaseStmt) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT CASE %s\n", printExpr(v.Subject))
	for _, c := range v.Cases {
		if c.IsElse {
			sb.WriteString("CASE ELSE\n")
		} else {
			parts := make([]string, len(c.Values))
			for i, val := range c.Values {
				parts[i] = printExpr(val)
			}
			fmt.Fprintf(&sb, "CASE %s\n", strings.Join(parts, ", "))
		}
		sb.WriteString(printBlock("  ", c.Body))
	}
	sb.WriteString("ENDSELECT")
	return sb.String()
}

func printFieldDecls(fields []FieldDecl) string {
	var sb strings.Builder
	for _, f := range fields {
		if f.Type == "" {
			fmt.Fprintf(&sb, "  %s\n", f.Name)
			continue
		}
		fmt.Fprintf(&sb, "  %s AS %s\n", f.Name, f.Type)
	}
	return sb.String()
}

func printTypeDecl(v *TypeDecl) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "TYPE %s\n", v.Name)
	sb.WriteString(printFieldDecls(v.Fields))
	sb.WriteString("ENDTYPE")
	return sb.String()
}

func printClassDecl(v *ClassDecl) string {
	var sb strings.Builder
	sb.WriteString("CLASS " + v.Name)
	if v.Extends != "" {
		sb.WriteString(" EXTENDS " + v.Extends)
	}
	sb.WriteByte('\n')
	sb.WriteString(printFieldDecls(v.Fields))
	for _, m := range v.Methods {
		sb.WriteString(printMethodDecl(m))
		sb.WriteByte('\n')
	}
	sb.WriteString("ENDCLASS")
	return sb.String()
}

func printMethodDecl(m MethodDecl) string {
	kw := "METHOD"
	switch m.Kind {
	case MethodConstructor:
		kw = "CONSTRUCTOR"
	case MethodDestructor:
		kw = "DESTRUCTOR"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s(%s)", kw, m.Name, printParams(m.Params))
	if m.Returns != "" {
		fmt.Fprintf(&sb, " AS %s", m.Returns)
	}
	sb.WriteByte('\n')
	sb.WriteString(printBlock("    ", m.Body))
	sb.WriteString("  END " + kw)
	return sb.String()
}

func printDef(v *DefStmt) string {
	return fmt.Sprintf("DEF %s(%s) = %s", v.Name, strings.Join(v.Params, ", "), printExpr(v.Body))
}

func printTry(v *TryStmt) string {
	var sb strings.Builder
	sb.WriteString("TRY\n")
	sb.WriteString(printBlock("  ", v.Body))
	for _, c := range v.Catches {
		sb.WriteString("CATCH")
		if c.VarName != "" {
			sb.WriteString(" " + c.VarName)
			if c.Type != "" {
				sb.WriteString(" AS " + c.Type)
			}
		}
		sb.WriteByte('\n')
		sb.WriteString(printBlock("  ", c.Body))
	}
	if v.Finally != nil {
		sb.WriteString("FINALLY\n")
		sb.WriteString(printBlock("  ", v.Finally))
	}
	sb.WriteString("ENDTRY")
	return sb.String()
}

func printOn(v *OnStmt) string {
	verb := "GOTO"
	if v.IsGosub {
		verb = "GOSUB"
	}
	if v.IsError {
		return "ON ERROR " + verb + " " + strings.Join(v.Labels, ", ")
	}
	return fmt.Sprintf("ON %s %s %s", printExpr(v.Subject), verb, strings.Join(v.Labels, ", "))
}

func printParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		s := p.Name
		if p.Type != "" {
			s += " AS " + p.Type
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

func printFunction(v *FunctionDecl) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "FUNCTION %s(%s)", v.Name, printParams(v.Params))
	if v.Returns != "" {
		fmt.Fprintf(&sb, " AS %s", v.Returns)
	}
	sb.WriteByte('\n')
	sb.WriteString(printBlock("  ", v.Body))
	sb.WriteString("ENDFUNCTION")
	return sb.String()
}

func printSub(v *SubDecl) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SUB %s(%s)\n", v.Name, printParams(v.Params))
	sb.WriteString(printBlock("  ", v.Body))
	sb.WriteString("ENDSUB")
	return sb.String()
}

var binOpText = map[BinaryOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpIntDiv: "\\", OpMod: "MOD",
	OpPow: "^", OpEq: "=", OpNe: "<>", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpAnd: "AND", OpOr: "OR", OpXor: "XOR", OpImp: "IMP", OpEqv: "EQV",
}

func printExpr(e Expr) string {
	switch v := e.(type) {
	case *NumberLit:
		return strconv.FormatInt(v.Value, 10)
	case *FloatLit:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	case *StringLit:
		return `"` + v.Value + `"`
	case *BoolLit:
		if v.Value {
			return "TRUE"
		}
		return "FALSE"
	case *Ident:
		if v.Suffix != 0 {
			return v.Name + string(v.Suffix)
		}
		return v.Name
	case *MeExpr:
		return "ME"
	case *SuperExpr:
		return "SUPER"
	case *NothingExpr:
		return "NOTHING"
	case *UnaryExpr:
		switch v.Op {
		case OpNeg:
			return "-" + printExpr(v.Expr)
		case OpPos:
			return "+" + printExpr(v.Expr)
		default:
			return "NOT " + printExpr(v.Expr)
		}
	case *BinaryExpr:
		return fmt.Sprintf("%s %s %s", printExpr(v.Left), binOpText[v.Op], printExpr(v.Right))
	case *IsExpr:
		if v.ClassName == "" {
			return printExpr(v.Left) + " IS NOTHING"
		}
		return printExpr(v.Left) + " IS " + v.ClassName
	case *CallExpr:
		return printExpr(v.Callee) + "(" + printExprList(v.Args) + ")"
	case *MemberExpr:
		return printExpr(v.Receiver) + "." + v.Name
	case *MethodCallExpr:
		return printExpr(v.Receiver) + "." + v.Name + "(" + printExprList(v.Args) + ")"
	case *IIFExpr:
		return fmt.Sprintf("IIF(%s, %s, %s)", printExpr(v.Cond), printExpr(v.Then), printExpr(v.Else))
	case *NewExpr:
		return "NEW " + v.ClassName + "(" + printExprList(v.Args) + ")"
	case *CreateExpr:
		if len(v.Fields) > 0 {
			parts := make([]string, len(v.Fields))
			for i, f := range v.Fields {
				parts[i] = f.Name + " := " + printExpr(f.Value)
			}
			return "CREATE " + v.TypeName + "(" + strings.Join(parts, ", ") + ")"
		}
		return "CREATE " + v.TypeName + "(" + printExprList(v.Args) + ")"
	case *ListExpr:
		return "LIST(" + printExprList(v.Elements) + ")"
	default:
		return fmt.Sprintf("/* unsupported expr %T */", e)
	}
}

func printExprList(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = printExpr(a)
	}
	return strings.Join(parts, ", ")
}
