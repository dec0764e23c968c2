package assembler

// All assembly errors are fatal: the driver halts the current pass on the
// first one and returns no partial listing. Each error carries the
// zero-based source line so the language server can place a diagnostic.

type assemblyErrors struct{}

var Errors assemblyErrors

type DuplicateSymbolError struct {
	Name string
	Line int
}

func (e *DuplicateSymbolError) Error() string {
	return "duplicate symbol: \"" + e.Name + "\""
}

type UnrecognizedStatementError struct {
	Token string
	Line  int
}

func (e *UnrecognizedStatementError) Error() string {
	return "expected directive or opcode, got: \"" + e.Token + "\""
}

type UndefinedSymbolError struct {
	Name string
	Line int
}

func (e *UndefinedSymbolError) Error() string {
	return "undefined symbol: \"" + e.Name + "\""
}

type InvalidDirectiveOperandError struct {
	Directive string
	Token     string
	Line      int
}

func (e *InvalidDirectiveOperandError) Error() string {
	return "invalid operand for " + e.Directive + ": \"" + e.Token + "\""
}

type UnrecognizedOperandSyntaxError struct {
	Text string
	Line int
}

func (e *UnrecognizedOperandSyntaxError) Error() string {
	return "unrecognized operand syntax: \"" + e.Text + "\""
}

// MalformedEncodingError reports a violated encoder invariant, such as a
// register number that does not fit its 5-bit field. It should be
// unreachable for input that passed the other checks.
type MalformedEncodingError struct {
	Reason string
	Line   int
}

func (e *MalformedEncodingError) Error() string {
	return "malformed encoding: " + e.Reason
}

func (assemblyErrors) DuplicateSymbol(name string, line int) *DuplicateSymbolError {
	return &DuplicateSymbolError{Name: name, Line: line}
}

func (assemblyErrors) UnrecognizedStatement(token string, line int) *UnrecognizedStatementError {
	return &UnrecognizedStatementError{Token: token, Line: line}
}

func (assemblyErrors) UndefinedSymbol(name string, line int) *UndefinedSymbolError {
	return &UndefinedSymbolError{Name: name, Line: line}
}

func (assemblyErrors) InvalidDirectiveOperand(directive, token string, line int) *InvalidDirectiveOperandError {
	return &InvalidDirectiveOperandError{Directive: directive, Token: token, Line: line}
}

func (assemblyErrors) UnrecognizedOperandSyntax(text string, line int) *UnrecognizedOperandSyntaxError {
	return &UnrecognizedOperandSyntaxError{Text: text, Line: line}
}

func (assemblyErrors) MalformedEncoding(reason string, line int) *MalformedEncodingError {
	return &MalformedEncodingError{Reason: reason, Line: line}
}

func (assemblyErrors) IsDuplicateSymbolError(err error) bool {
	_, ok := err.(*DuplicateSymbolError)
	return ok
}

func (assemblyErrors) IsUnrecognizedStatementError(err error) bool {
	_, ok := err.(*UnrecognizedStatementError)
	return ok
}

func (assemblyErrors) IsUndefinedSymbolError(err error) bool {
	_, ok := err.(*UndefinedSymbolError)
	return ok
}

func (assemblyErrors) IsInvalidDirectiveOperandError(err error) bool {
	_, ok := err.(*InvalidDirectiveOperandError)
	return ok
}

func (assemblyErrors) IsUnrecognizedOperandSyntaxError(err error) bool {
	_, ok := err.(*UnrecognizedOperandSyntaxError)
	return ok
}

func (assemblyErrors) IsMalformedEncodingError(err error) bool {
	_, ok := err.(*MalformedEncodingError)
	return ok
}

type lineError interface {
	errorLine() int
}

func (e *DuplicateSymbolError) errorLine() int           { return e.Line }
func (e *UnrecognizedStatementError) errorLine() int     { return e.Line }
func (e *UndefinedSymbolError) errorLine() int           { return e.Line }
func (e *InvalidDirectiveOperandError) errorLine() int   { return e.Line }
func (e *UnrecognizedOperandSyntaxError) errorLine() int { return e.Line }
func (e *MalformedEncodingError) errorLine() int         { return e.Line }

// DiagnosticForError converts a fatal assembly error into a single LSP
// diagnostic spanning the offending source line.
func DiagnosticForError(err error, source string) Diagnostic {
	line := 0
	if le, ok := err.(lineError); ok {
		line = le.errorLine()
	}

	length := 0
	lines := splitLines(source)
	if line < len(lines) {
		length = len(lines[line])
	}

	return Diagnostic{
		Range: TextRange{
			Start: TextPosition{Line: line, Char: 0},
			End:   TextPosition{Line: line, Char: length},
		},
		Message:  err.Error(),
		Source:   "Assembler",
		Severity: Error,
	}
}
