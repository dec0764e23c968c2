package assembler

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// InstructionKind selects both the bit layout and the encode path of an
// instruction statement. The set is closed; pass 2 dispatches on it.
type InstructionKind int

const (
	KindImmediate InstructionKind = iota
	KindBranch
	KindTrap
	KindJump
	KindRegisterALU
	KindRegisterFPU
)

type registerEntry struct {
	opcode   uint32
	funcCode uint32
}

// MnemonicTable holds the three opcode tables keyed by mnemonic, plus the
// fixed override set that maps specific mnemonics to non-default instruction
// kinds. The engine only ever reads it.
type MnemonicTable struct {
	immediate map[string]uint32
	jump      map[string]uint32
	register  map[string]registerEntry
	variants  map[string]InstructionKind
}

// OpcodeEntry is the registry's answer for one mnemonic.
type OpcodeEntry struct {
	Kind   InstructionKind
	Opcode uint32
	Func   uint32
}

func (t *MnemonicTable) Has(mnemonic string) bool {
	if _, ok := t.immediate[mnemonic]; ok {
		return true
	}
	if _, ok := t.jump[mnemonic]; ok {
		return true
	}
	_, ok := t.register[mnemonic]
	return ok
}

func (t *MnemonicTable) Lookup(mnemonic string) (OpcodeEntry, bool) {
	if opcode, ok := t.immediate[mnemonic]; ok {
		kind := KindImmediate
		if variant, ok := t.variants[mnemonic]; ok {
			kind = variant
		}
		return OpcodeEntry{Kind: kind, Opcode: opcode}, true
	}
	if opcode, ok := t.jump[mnemonic]; ok {
		return OpcodeEntry{Kind: KindJump, Opcode: opcode}, true
	}
	if entry, ok := t.register[mnemonic]; ok {
		// Register mnemonics under opcode 0 are ALU operations; every other
		// register opcode belongs to the FPU format.
		kind := KindRegisterALU
		if entry.opcode != 0 {
			kind = KindRegisterFPU
		}
		return OpcodeEntry{Kind: kind, Opcode: entry.opcode, Func: entry.funcCode}, true
	}
	return OpcodeEntry{}, false
}

// Mnemonics returns every mnemonic the table knows, for hover support.
func (t *MnemonicTable) Mnemonics() []string {
	names := make([]string, 0, len(t.immediate)+len(t.jump)+len(t.register))
	for name := range t.immediate {
		names = append(names, name)
	}
	for name := range t.jump {
		names = append(names, name)
	}
	for name := range t.register {
		names = append(names, name)
	}
	return names
}

func defaultVariants() map[string]InstructionKind {
	return map[string]InstructionKind{
		"beqz": KindBranch,
		"bnez": KindBranch,
		"trap": KindTrap,
	}
}

// LoadMnemonicTable reads the three table files: each line is
// "mnemonic opcode" for the immediate and jump tables and
// "mnemonic opcode func" for the register table, all numbers decimal.
// Blank lines are skipped.
func LoadMnemonicTable(itypes, jtypes, rtypes io.Reader) (*MnemonicTable, error) {
	table := &MnemonicTable{
		immediate: map[string]uint32{},
		jump:      map[string]uint32{},
		register:  map[string]registerEntry{},
		variants:  defaultVariants(),
	}

	scan := func(r io.Reader, columns int, accept func(fields []string, values []uint32)) error {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			if len(fields) < columns+1 {
				return fmt.Errorf("mnemonic table: malformed line %q", scanner.Text())
			}
			values := make([]uint32, columns)
			for i := 0; i < columns; i++ {
				v, err := strconv.ParseUint(fields[i+1], 10, 32)
				if err != nil {
					return fmt.Errorf("mnemonic table: bad number %q", fields[i+1])
				}
				values[i] = uint32(v)
			}
			accept(fields, values)
		}
		return scanner.Err()
	}

	if err := scan(itypes, 1, func(fields []string, values []uint32) {
		table.immediate[fields[0]] = values[0]
	}); err != nil {
		return nil, err
	}
	if err := scan(jtypes, 1, func(fields []string, values []uint32) {
		table.jump[fields[0]] = values[0]
	}); err != nil {
		return nil, err
	}
	if err := scan(rtypes, 2, func(fields []string, values []uint32) {
		table.register[fields[0]] = registerEntry{opcode: values[0], funcCode: values[1]}
	}); err != nil {
		return nil, err
	}
	return table, nil
}

// The built-in table follows the classic DLX opcode assignment: register
// ALU operations under opcode 0, floating point under opcode 1, nop at 0x15.
const defaultITypes = `
addi 8
addui 9
subi 10
subui 11
andi 12
ori 13
xori 14
lhi 15
trap 17
jr 18
jalr 19
slli 20
nop 21
srli 22
srai 23
seqi 24
snei 25
slti 26
sgti 27
slei 28
sgei 29
lb 32
lh 33
lw 35
lbu 36
lhu 37
lf 38
ld 39
sb 40
sh 41
sw 43
sf 46
sd 47
beqz 4
bnez 5
`

const defaultJTypes = `
j 2
jal 3
`

const defaultRTypes = `
sll 0 4
srl 0 6
sra 0 7
add 0 32
addu 0 33
sub 0 34
subu 0 35
and 0 36
or 0 37
xor 0 38
seq 0 40
sne 0 41
slt 0 42
sgt 0 43
sle 0 44
sge 0 45
movi2s 0 48
movs2i 0 49
movf 0 50
movd 0 51
movfp2i 0 52
movi2fp 0 53
addf 1 0
subf 1 1
multf 1 2
divf 1 3
addd 1 4
subd 1 5
multd 1 6
divd 1 7
cvtf2d 1 8
cvtf2i 1 9
cvtd2f 1 10
cvtd2i 1 11
cvti2f 1 12
cvti2d 1 13
mult 1 14
div 1 15
eqf 1 16
nef 1 17
ltf 1 18
gtf 1 19
lef 1 20
gef 1 21
multu 1 22
divu 1 23
`

var (
	defaultTable     *MnemonicTable
	defaultTableOnce sync.Once
)

// DefaultTable returns the built-in DLX mnemonic table. The embedded
// definitions use the same text format LoadMnemonicTable accepts. The table
// is built once; concurrent callers share it.
func DefaultTable() *MnemonicTable {
	defaultTableOnce.Do(func() {
		table, err := LoadMnemonicTable(
			strings.NewReader(defaultITypes),
			strings.NewReader(defaultJTypes),
			strings.NewReader(defaultRTypes))
		if err != nil {
			// The embedded table is constant; a parse failure here is a bug.
			panic(err)
		}
		defaultTable = table
	})
	return defaultTable
}
