package assembler

// SymbolTable maps label names (trailing ':' stripped) to absolute
// addresses. It is populated during pass 1 and read-only afterwards.
type SymbolTable map[string]uint32

// Define inserts a label. It reports false if the label already exists;
// labels must be unique.
func (t SymbolTable) Define(name string, address uint32) bool {
	if _, ok := t[name]; ok {
		return false
	}
	t[name] = address
	return true
}

func (t SymbolTable) Lookup(name string) (uint32, bool) {
	address, ok := t[name]
	return address, ok
}

// Statement is one assembled unit of program text: either a directive or an
// instruction. Statements are constructed in pass 1 and never mutated;
// symbolic operands are resolved at encode time through the symbol table.
type Statement interface {
	// NextAddress computes the address following this statement given the
	// address before it.
	NextAddress(address uint32) (uint32, error)
	// Address is where pass 1 placed this statement. Pass 2 recomputes the
	// same sequence independently and must reproduce it for every statement.
	Address() uint32
	// SourceLine is the zero-based line the statement came from.
	SourceLine() int
}

// Program is the result of pass 1: the ordered statement list plus the
// populated symbol table. The language server reuses it for hover lookups.
type Program struct {
	Statements []Statement
	Symbols    SymbolTable
	LabelLines map[string]int // label name to zero-based source line
	lines      []string       // source split into lines, comments intact
	table      *MnemonicTable // the table the program was classified against
}

type TextPosition struct {
	Line int `json:"line"`
	Char int `json:"character"`
}

type TextRange struct {
	Start TextPosition `json:"start"`
	End   TextPosition `json:"end"`
}

type DiagnosticSeverity int

const (
	Error       DiagnosticSeverity = 1
	Warning     DiagnosticSeverity = 2
	Information DiagnosticSeverity = 3
	Hint        DiagnosticSeverity = 4
)

type Diagnostic struct {
	Range    TextRange          `json:"range"`
	Message  string             `json:"message"`
	Source   string             `json:"source,omitempty"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
}
