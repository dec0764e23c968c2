package assembler_test

import (
	"strings"
	"testing"

	"github.gatech.edu/ECEInnovation/DLX-Assembler/assembler"
)

func parseForHover(t *testing.T, source string) *assembler.Program {
	t.Helper()
	program, err := assembler.ParseProgram(source, assembler.DefaultTable())
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}
	return program
}

func TestHoverLabelDefinition(t *testing.T) {
	program := parseForHover(t, "loop: addi r1, r1, 1\nj loop")

	markdown, ok := program.EvaluateHover(assembler.TextPosition{Line: 0, Char: 1})
	if !ok {
		t.Fatal("Expected hover content over the label definition")
	}
	if !strings.Contains(markdown, "loop") || !strings.Contains(markdown, "00000000") {
		t.Errorf("Expected label name and address, got %q", markdown)
	}
}

func TestHoverLabelReference(t *testing.T) {
	program := parseForHover(t, "loop: addi r1, r1, 1\nj loop")

	markdown, ok := program.EvaluateHover(assembler.TextPosition{Line: 1, Char: 3})
	if !ok {
		t.Fatal("Expected hover content over the label reference")
	}
	if !strings.Contains(markdown, "loop") {
		t.Errorf("Expected label name, got %q", markdown)
	}
}

func TestHoverMnemonic(t *testing.T) {
	program := parseForHover(t, "addi r1, r1, 1")

	markdown, ok := program.EvaluateHover(assembler.TextPosition{Line: 0, Char: 0})
	if !ok {
		t.Fatal("Expected hover content over the mnemonic")
	}
	if !strings.Contains(markdown, "addi") {
		t.Errorf("Expected the mnemonic, got %q", markdown)
	}
}

func TestHoverRegister(t *testing.T) {
	program := parseForHover(t, "add r1, r0, r2")

	markdown, ok := program.EvaluateHover(assembler.TextPosition{Line: 0, Char: 8})
	if !ok {
		t.Fatal("Expected hover content over the register")
	}
	if !strings.Contains(markdown, "r0") {
		t.Errorf("Expected the zero register, got %q", markdown)
	}
}

func TestHoverUsesProgramTable(t *testing.T) {
	table, err := assembler.LoadMnemonicTable(
		strings.NewReader("frob 9\n"),
		strings.NewReader(""),
		strings.NewReader(""))
	if err != nil {
		t.Fatalf("Expected table to load, got error: %v", err)
	}

	program, err := assembler.ParseProgram("frob r1, 4", table)
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}

	markdown, ok := program.EvaluateHover(assembler.TextPosition{Line: 0, Char: 0})
	if !ok {
		t.Fatal("Expected hover content for a mnemonic from the supplied table")
	}
	if !strings.Contains(markdown, "frob") {
		t.Errorf("Expected the mnemonic, got %q", markdown)
	}
}

func TestHoverNothingInComments(t *testing.T) {
	program := parseForHover(t, "nop ; addi lives here")

	if markdown, ok := program.EvaluateHover(assembler.TextPosition{Line: 0, Char: 6}); ok {
		t.Errorf("Expected no hover inside a comment, got %q", markdown)
	}
}

func TestHoverOutOfRange(t *testing.T) {
	program := parseForHover(t, "nop")

	if _, ok := program.EvaluateHover(assembler.TextPosition{Line: 5, Char: 0}); ok {
		t.Error("Expected no hover past the last line")
	}
	if _, ok := program.EvaluateHover(assembler.TextPosition{Line: 0, Char: 40}); ok {
		t.Error("Expected no hover past the end of the line")
	}
}
