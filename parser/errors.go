package parser

import (
	"fmt"
	"strings"

	"github.com/albanread/fasterbasic/lexer"
)

// Error is a single non-fatal parse error: a message and the source
// location it occurred at. The parser records one of these per failure
// and keeps going rather than aborting the whole parse.
type Error struct {
	Pos     lexer.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: error: %s", e.Pos, e.Message)
}

// ErrorList accumulates every parse error found across a file. It
// never causes the parser to stop early; HasErrors lets the caller
// decide whether to trust the resulting (possibly partial) AST.
type ErrorList struct {
	Errors []*Error
}

func (el *ErrorList) add(pos lexer.Position, format string, args ...any) {
	el.Errors = append(el.Errors, &Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any error was recorded.
func (el *ErrorList) HasErrors() bool { return len(el.Errors) > 0 }

// Error implements the error interface over the whole list, one line
// per entry.
func (el *ErrorList) Error() string {
	var sb strings.Builder
	for _, e := range el.Errors {
		sb.WriteString(e.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}
