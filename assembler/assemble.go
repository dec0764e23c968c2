package assembler

import (
	"fmt"
	"strings"
)

const commentMarker = ";"

// Assemble converts one program's source text into its address-stamped hex
// listing using the built-in mnemonic table. Assembly is fail-fast: the
// first error aborts and no partial listing is returned.
func Assemble(source string) (string, error) {
	return AssembleWithTable(source, DefaultTable())
}

// AssembleWithTable assembles against a caller-supplied mnemonic table.
func AssembleWithTable(source string, table *MnemonicTable) (string, error) {
	program, err := ParseProgram(source, table)
	if err != nil {
		return "", err
	}
	return program.EncodeListing()
}

// ParseProgram is pass 1: it classifies every line, collects labels into the
// symbol table, and builds the ordered statement list. The address counter
// threaded through here determines where each label binds; pass 2 recomputes
// the identical sequence.
func ParseProgram(source string, table *MnemonicTable) (*Program, error) {
	program := &Program{
		Symbols:    SymbolTable{},
		LabelLines: map[string]int{},
		lines:      splitLines(source),
		table:      table,
	}

	address := uint32(0)
	for lineNumber, raw := range program.lines {
		text := raw
		if i := strings.Index(text, commentMarker); i != -1 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		tokens := strings.Fields(text)
		first := tokens[0]
		if strings.HasSuffix(first, ":") {
			label := strings.TrimSuffix(first, ":")
			if !program.Symbols.Define(label, address) {
				return nil, Errors.DuplicateSymbol(label, lineNumber)
			}
			program.LabelLines[label] = lineNumber

			text = strings.TrimSpace(text[len(first):])
			if text == "" {
				// A label cannot point at a vacuum; a no-op anchors it to a
				// real address.
				text = "nop"
			}
			tokens = strings.Fields(text)
			first = tokens[0]
		}

		var statement Statement
		switch {
		case IsDirective(first):
			directive := NewDirective(first, directiveArgs(tokens[1:]), lineNumber)
			directive.address = address
			next, err := directive.NextAddress(address)
			if err != nil {
				return nil, err
			}
			address = next
			statement = directive
		case table.Has(first):
			entry, _ := table.Lookup(first)
			operands, matched := MatchOperands(text)
			if !matched && len(tokens) > 1 {
				return nil, Errors.UnrecognizedOperandSyntax(text, lineNumber)
			}
			instruction := NewInstruction(first, entry, operands, lineNumber)
			instruction.address = address
			address += 4
			statement = instruction
		default:
			return nil, Errors.UnrecognizedStatement(first, lineNumber)
		}
		program.Statements = append(program.Statements, statement)
	}
	return program, nil
}

// EncodeListing is pass 2: it walks the statement list in order with an
// independently tracked address counter, asks each statement to encode
// itself, and stamps every emitted line. Statements that emit nothing still
// advance the counter.
func (p *Program) EncodeListing() (string, error) {
	output := make([]string, 0, len(p.Statements))
	address := uint32(0)

	for _, statement := range p.Statements {
		switch s := statement.(type) {
		case *DirectiveStatement:
			encoded, err := s.Encode()
			if err != nil {
				return "", err
			}
			if len(encoded) > 0 {
				addresses, err := s.ItemAddresses(address)
				if err != nil {
					return "", err
				}
				// .asciiz supplies one surplus address slot; zip by encoding
				// index and leave it unused.
				for i, blob := range encoded {
					output = append(output, fmt.Sprintf("%08x: %s", addresses[i], blob))
				}
			}
			next, err := s.NextAddress(address)
			if err != nil {
				return "", err
			}
			address = next
		case *InstructionStatement:
			var word string
			var err error
			if s.RequiresAddress() {
				word, err = s.EncodeRelative(p.Symbols, address)
			} else {
				word, err = s.Encode(p.Symbols)
			}
			if err != nil {
				return "", err
			}
			output = append(output, fmt.Sprintf("%08x: %s", address, word))
			address += 4
		}
	}
	return strings.Join(output, "\n"), nil
}

// directiveArgs re-joins the whitespace-split argument tokens and re-splits
// them on ", ", so quoted strings with spaces survive as single arguments.
func directiveArgs(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	return strings.Split(strings.Join(tokens, " "), ", ")
}

func splitLines(source string) []string {
	return strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
}
