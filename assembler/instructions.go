package assembler

import (
	"fmt"
	"strconv"
)

// Immediate is a two-state operand value: either a literal integer or an
// unresolved symbol. Symbols are resolved against the symbol table at
// encode time only; instruction state is never mutated.
type Immediate struct {
	literal  int64
	symbol   string
	symbolic bool
}

func LiteralImmediate(value int64) Immediate {
	return Immediate{literal: value}
}

func SymbolImmediate(symbol string) Immediate {
	return Immediate{symbol: symbol, symbolic: true}
}

func (imm Immediate) Symbolic() bool { return imm.symbolic }
func (imm Immediate) Symbol() string { return imm.symbol }

// Resolve produces the operand's integer value. A symbolic operand that
// spells a plain number is that number; anything else is looked up in the
// symbol table. The second return is false when the symbol is undefined.
func (imm Immediate) Resolve(symbols SymbolTable) (int64, bool) {
	if !imm.symbolic {
		return imm.literal, true
	}
	if value, err := strconv.ParseInt(imm.symbol, 10, 64); err == nil {
		return value, true
	}
	address, ok := symbols.Lookup(imm.symbol)
	return int64(address), ok
}

// InstructionStatement is one parsed instruction with its opcode resolved
// from the mnemonic table at parse time. Symbolic immediates stay unresolved
// until encode.
type InstructionStatement struct {
	Kind     InstructionKind
	Mnemonic string
	Opcode   uint32
	Func     uint32
	Rs1      uint32
	Rs2      uint32
	Rdest    uint32
	Imm      Immediate

	address uint32
	line    int
}

// NewInstruction builds the statement for one classified instruction line.
// Branches adopt the target format's register-slot convention here: the
// register the matcher bound to rdest occupies the rs1 field and vice versa.
func NewInstruction(mnemonic string, entry OpcodeEntry, operands OperandSet, line int) *InstructionStatement {
	statement := &InstructionStatement{
		Kind:     entry.Kind,
		Mnemonic: mnemonic,
		Opcode:   entry.Opcode,
		Func:     entry.Func,
		line:     line,
	}

	switch entry.Kind {
	case KindBranch:
		statement.Rs1 = operands.Rdest
		statement.Rdest = operands.Rs1
		statement.Imm = operands.Target()
	case KindTrap, KindJump:
		statement.Imm = operands.Target()
	case KindRegisterALU, KindRegisterFPU:
		statement.Rs1 = operands.Rs1
		statement.Rs2 = operands.Rs2
		statement.Rdest = operands.Rdest
	default:
		statement.Rs1 = operands.Rs1
		statement.Rdest = operands.Rdest
		statement.Imm = operands.Target()
	}
	return statement
}

func (s *InstructionStatement) NextAddress(address uint32) (uint32, error) {
	return address + 4, nil
}

func (s *InstructionStatement) Address() uint32 { return s.address }
func (s *InstructionStatement) SourceLine() int { return s.line }

// RequiresAddress reports whether encoding needs the current address for
// PC-relative resolution. It is a fixed property of the kind, decided at
// construction, and selects which encode path pass 2 uses.
func (s *InstructionStatement) RequiresAddress() bool {
	return s.Kind == KindBranch || s.Kind == KindJump
}

func (s *InstructionStatement) checkRegisters() error {
	if s.Rs1 > 31 || s.Rs2 > 31 || s.Rdest > 31 {
		return Errors.MalformedEncoding(
			fmt.Sprintf("register number out of range in %s", s.Mnemonic), s.line)
	}
	return nil
}

func (s *InstructionStatement) resolve(symbols SymbolTable) (int64, error) {
	value, ok := s.Imm.Resolve(symbols)
	if !ok {
		return 0, Errors.UndefinedSymbol(s.Imm.Symbol(), s.line)
	}
	return value, nil
}

// Encode produces the 32-bit word as eight lowercase hex digits for every
// kind that does not need the current address.
func (s *InstructionStatement) Encode(symbols SymbolTable) (string, error) {
	if err := s.checkRegisters(); err != nil {
		return "", err
	}

	switch s.Kind {
	case KindImmediate, KindTrap:
		value, err := s.resolve(symbols)
		if err != nil {
			return "", err
		}
		return formatWord(makeImmediateWord(s.Opcode, s.Rs1, s.Rdest, uint32(value))), nil
	case KindRegisterALU:
		return formatWord(makeRegisterALUWord(s.Opcode, s.Rs1, s.Rs2, s.Rdest, s.Func)), nil
	case KindRegisterFPU:
		return formatWord(makeRegisterFPUWord(s.Opcode, s.Rs1, s.Rs2, s.Rdest, s.Func)), nil
	}
	return "", Errors.MalformedEncoding(
		fmt.Sprintf("%s requires the current address to encode", s.Mnemonic), s.line)
}

// EncodeRelative produces the word for the PC-relative kinds. The offset is
// taken from the address following the instruction.
func (s *InstructionStatement) EncodeRelative(symbols SymbolTable, address uint32) (string, error) {
	if err := s.checkRegisters(); err != nil {
		return "", err
	}

	target, err := s.resolve(symbols)
	if err != nil {
		return "", err
	}
	relative := target - int64(address) - 4

	switch s.Kind {
	case KindBranch:
		return formatWord(makeImmediateWord(s.Opcode, s.Rs1, s.Rdest, uint32(relative))), nil
	case KindJump:
		return formatWord(makeJumpWord(s.Opcode, uint32(relative))), nil
	}
	return "", Errors.MalformedEncoding(
		fmt.Sprintf("%s does not take the current address", s.Mnemonic), s.line)
}

func formatWord(word uint32) string {
	return fmt.Sprintf("%08x", word)
}
