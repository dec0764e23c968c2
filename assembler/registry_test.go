package assembler_test

import (
	"strings"
	"testing"

	"github.gatech.edu/ECEInnovation/DLX-Assembler/assembler"
)

func TestLoadMnemonicTable(t *testing.T) {
	itypes := strings.NewReader("addi 8\nbeqz 4\ntrap 17\n")
	jtypes := strings.NewReader("j 2\njal 3\n")
	rtypes := strings.NewReader("add 0 32\naddf 1 0\n")

	table, err := assembler.LoadMnemonicTable(itypes, jtypes, rtypes)
	if err != nil {
		t.Fatalf("Expected table to load, got error: %v", err)
	}

	cases := []struct {
		mnemonic string
		kind     assembler.InstructionKind
		opcode   uint32
		funcCode uint32
	}{
		{"addi", assembler.KindImmediate, 8, 0},
		{"beqz", assembler.KindBranch, 4, 0},
		{"trap", assembler.KindTrap, 17, 0},
		{"j", assembler.KindJump, 2, 0},
		{"jal", assembler.KindJump, 3, 0},
		{"add", assembler.KindRegisterALU, 0, 32},
		{"addf", assembler.KindRegisterFPU, 1, 0},
	}

	for _, c := range cases {
		if !table.Has(c.mnemonic) {
			t.Errorf("Expected table to know %s", c.mnemonic)
			continue
		}
		entry, ok := table.Lookup(c.mnemonic)
		if !ok {
			t.Errorf("Expected lookup of %s to succeed", c.mnemonic)
			continue
		}
		if entry.Kind != c.kind || entry.Opcode != c.opcode || entry.Func != c.funcCode {
			t.Errorf("%s: expected kind %d opcode %d func %d, got kind %d opcode %d func %d",
				c.mnemonic, c.kind, c.opcode, c.funcCode, entry.Kind, entry.Opcode, entry.Func)
		}
	}

	if table.Has("frobnicate") {
		t.Error("Expected unknown mnemonic to be absent")
	}
	if _, ok := table.Lookup("frobnicate"); ok {
		t.Error("Expected lookup of unknown mnemonic to fail")
	}
}

func TestLoadMnemonicTableRejectsMalformedLines(t *testing.T) {
	_, err := assembler.LoadMnemonicTable(
		strings.NewReader("addi\n"),
		strings.NewReader(""),
		strings.NewReader(""))
	if err == nil {
		t.Error("Expected error for missing opcode column")
	}

	_, err = assembler.LoadMnemonicTable(
		strings.NewReader("addi eight\n"),
		strings.NewReader(""),
		strings.NewReader(""))
	if err == nil {
		t.Error("Expected error for non-numeric opcode")
	}

	_, err = assembler.LoadMnemonicTable(
		strings.NewReader(""),
		strings.NewReader(""),
		strings.NewReader("add 0\n"))
	if err == nil {
		t.Error("Expected error for register line missing its function code")
	}
}

func TestDefaultTable(t *testing.T) {
	table := assembler.DefaultTable()

	cases := []struct {
		mnemonic string
		kind     assembler.InstructionKind
		opcode   uint32
	}{
		{"addi", assembler.KindImmediate, 8},
		{"nop", assembler.KindImmediate, 21},
		{"lw", assembler.KindImmediate, 35},
		{"sw", assembler.KindImmediate, 43},
		{"beqz", assembler.KindBranch, 4},
		{"bnez", assembler.KindBranch, 5},
		{"trap", assembler.KindTrap, 17},
		{"j", assembler.KindJump, 2},
		{"jal", assembler.KindJump, 3},
		{"add", assembler.KindRegisterALU, 0},
		{"sub", assembler.KindRegisterALU, 0},
		{"addf", assembler.KindRegisterFPU, 1},
		{"divd", assembler.KindRegisterFPU, 1},
	}

	for _, c := range cases {
		entry, ok := table.Lookup(c.mnemonic)
		if !ok {
			t.Errorf("Expected built-in table to know %s", c.mnemonic)
			continue
		}
		if entry.Kind != c.kind || entry.Opcode != c.opcode {
			t.Errorf("%s: expected kind %d opcode %d, got kind %d opcode %d",
				c.mnemonic, c.kind, c.opcode, entry.Kind, entry.Opcode)
		}
	}

	if table != assembler.DefaultTable() {
		t.Error("Expected the built-in table to be built once")
	}
}

func TestMnemonicsListsEveryEntry(t *testing.T) {
	table, err := assembler.LoadMnemonicTable(
		strings.NewReader("addi 8\n"),
		strings.NewReader("j 2\n"),
		strings.NewReader("add 0 32\n"))
	if err != nil {
		t.Fatalf("Expected table to load, got error: %v", err)
	}

	names := table.Mnemonics()
	if len(names) != 3 {
		t.Fatalf("Expected 3 mnemonics, got %d (%v)", len(names), names)
	}
	seen := map[string]bool{}
	for _, name := range names {
		seen[name] = true
	}
	for _, expected := range []string{"addi", "j", "add"} {
		if !seen[expected] {
			t.Errorf("Expected %s to be listed", expected)
		}
	}
}
