package assembler_test

import (
	"strings"
	"sync"
	"testing"

	"github.gatech.edu/ECEInnovation/DLX-Assembler/assembler"
)

func validateListing(t *testing.T, source string, expected []string) {
	t.Helper()
	listing, err := assembler.Assemble(source)
	if err != nil {
		t.Fatalf("Expected successful assembly, got error: %v", err)
	}

	lines := []string{}
	if listing != "" {
		lines = strings.Split(listing, "\n")
	}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d output lines, got %d (%v)", len(expected), len(lines), lines)
	}
	for i, line := range lines {
		if line != expected[i] {
			t.Errorf("Expected line %d to be %q, got %q", i, expected[i], line)
		}
	}
}

func TestProgramImmediateInstructions(t *testing.T) {
	source := `
	addi r1, r1, 1
	subi r2, r1, 3
	`
	validateListing(t, source, []string{
		"00000000: 20210001",
		"00000004: 28220003",
	})
}

func TestProgramBackwardJump(t *testing.T) {
	source := `
	loop: addi r1, r1, 1
	j loop
	`
	// the jump's target offset is 0 - (4 + 4) = -8, masked to 26 bits
	validateListing(t, source, []string{
		"00000000: 20210001",
		"00000004: 0bfffff8",
	})
}

func TestProgramForwardBranch(t *testing.T) {
	source := `
	beqz r1, done
	nop
	done: nop
	`
	validateListing(t, source, []string{
		"00000000: 10200004",
		"00000004: 54000000",
		"00000008: 54000000",
	})
}

func TestProgramRegisterInstructions(t *testing.T) {
	source := `
	add r1, r2, r3
	addf f1, f2, f3
	`
	validateListing(t, source, []string{
		"00000000: 00430820",
		"00000004: 04430800",
	})
}

func TestProgramLoadsAndStores(t *testing.T) {
	source := `
	lw r1, 4(r2)
	sw 8(r2), r1
	`
	validateListing(t, source, []string{
		"00000000: 8c410004",
		"00000004: ac410008",
	})
}

func TestProgramDataReference(t *testing.T) {
	source := `
	lw r1, value
	.data
	value: .word 42
	`
	validateListing(t, source, []string{
		"00000000: 8c010200",
		"00000200: 0000002a",
	})
}

func TestProgramTrap(t *testing.T) {
	validateListing(t, "trap 3", []string{
		"00000000: 44000003",
	})
}

func TestWordDirective(t *testing.T) {
	validateListing(t, ".word 10, 0x1F", []string{
		"00000000: 0000000a",
		"00000004: 0000001f",
	})
}

func TestAsciizDirective(t *testing.T) {
	source := `
	.text 10
	.asciiz "hi"
	nop
	`
	validateListing(t, source, []string{
		"00000010: 686900",
		"00000013: 54000000",
	})
}

func TestAlignDirective(t *testing.T) {
	source := `
	.space 3
	.align 2
	nop
	`
	validateListing(t, source, []string{
		"00000004: 54000000",
	})
}

func TestBareLabelAnchorsNop(t *testing.T) {
	source := `
	label:
	nop
	`
	validateListing(t, source, []string{
		"00000000: 54000000",
		"00000004: 54000000",
	})

	program, err := assembler.ParseProgram(source, assembler.DefaultTable())
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}
	if address, ok := program.Symbols.Lookup("label"); !ok || address != 0 {
		t.Errorf("Expected label at address 0, got %d (defined: %v)", address, ok)
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	source := `
	; a full-line comment

	addi r1, r0, 5 ; a trailing comment
	`
	validateListing(t, source, []string{
		"00000000: 20010005",
	})
}

func TestDuplicateLabelRejected(t *testing.T) {
	source := `
	loop: nop
	loop: nop
	`
	_, err := assembler.Assemble(source)
	if err == nil {
		t.Fatal("Expected duplicate symbol error, got none")
	}
	if !assembler.Errors.IsDuplicateSymbolError(err) {
		t.Fatalf("Expected duplicate symbol error, got: %v", err)
	}
	if dup := err.(*assembler.DuplicateSymbolError); dup.Name != "loop" {
		t.Errorf("Expected duplicate symbol \"loop\", got %q", dup.Name)
	}
}

func TestUndefinedSymbolRejected(t *testing.T) {
	_, err := assembler.Assemble("beqz r1, nowhere")
	if err == nil {
		t.Fatal("Expected undefined symbol error, got none")
	}
	if !assembler.Errors.IsUndefinedSymbolError(err) {
		t.Fatalf("Expected undefined symbol error, got: %v", err)
	}
}

func TestUnrecognizedStatementRejected(t *testing.T) {
	_, err := assembler.Assemble("frobnicate r1, r2")
	if err == nil {
		t.Fatal("Expected unrecognized statement error, got none")
	}
	if !assembler.Errors.IsUnrecognizedStatementError(err) {
		t.Fatalf("Expected unrecognized statement error, got: %v", err)
	}
}

func TestUnrecognizedOperandSyntaxRejected(t *testing.T) {
	// negative literal immediates are not part of the operand syntax
	_, err := assembler.Assemble("addi r1, r1, -5")
	if err == nil {
		t.Fatal("Expected operand syntax error, got none")
	}
	if !assembler.Errors.IsUnrecognizedOperandSyntaxError(err) {
		t.Fatalf("Expected operand syntax error, got: %v", err)
	}
}

func TestInvalidDirectiveOperandRejected(t *testing.T) {
	_, err := assembler.Assemble(".word banana")
	if err == nil {
		t.Fatal("Expected invalid directive operand error, got none")
	}
	if !assembler.Errors.IsInvalidDirectiveOperandError(err) {
		t.Fatalf("Expected invalid directive operand error, got: %v", err)
	}
}

func TestOversizedAlignWidthRejected(t *testing.T) {
	_, err := assembler.Assemble(".align 32\nnop")
	if err == nil {
		t.Fatal("Expected invalid directive operand error, got none")
	}
	if !assembler.Errors.IsInvalidDirectiveOperandError(err) {
		t.Fatalf("Expected invalid directive operand error, got: %v", err)
	}
}

func TestConcurrentAssembly(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			listing, err := assembler.Assemble("addi r1, r0, 1")
			if err != nil {
				t.Errorf("Expected successful assembly, got error: %v", err)
				return
			}
			if listing != "00000000: 20010001" {
				t.Errorf("Expected \"00000000: 20010001\", got %q", listing)
			}
		}()
	}
	wg.Wait()
}

func TestErrorCarriesSourceLine(t *testing.T) {
	source := "nop\nnop\nfrobnicate"
	_, err := assembler.Assemble(source)
	if err == nil {
		t.Fatal("Expected error, got none")
	}
	diagnostic := assembler.DiagnosticForError(err, source)
	if diagnostic.Range.Start.Line != 2 {
		t.Errorf("Expected diagnostic on line 2, got %d", diagnostic.Range.Start.Line)
	}
	if diagnostic.Severity != assembler.Error {
		t.Errorf("Expected error severity, got %d", diagnostic.Severity)
	}
}

// The address sequence computed in pass 1 must match what pass 2 recomputes
// while walking the same statement list, for every statement.
func TestPassAddressIdentity(t *testing.T) {
	source := `
	start: addi r1, r0, 1
	.data
	words: .word 1, 2, 3
	.align 3
	str: .asciiz "hello", "world"
	.text 100
	loop: addi r1, r1, 1
	bnez r1, loop
	j start
	`
	program, err := assembler.ParseProgram(source, assembler.DefaultTable())
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}

	address := uint32(0)
	for i, statement := range program.Statements {
		if statement.Address() != address {
			t.Errorf("Statement %d: pass 1 placed it at %08x, pass 2 recomputed %08x",
				i, statement.Address(), address)
		}
		next, err := statement.NextAddress(address)
		if err != nil {
			t.Fatalf("Statement %d: next address failed: %v", i, err)
		}
		address = next
	}

	if _, err := program.EncodeListing(); err != nil {
		t.Fatalf("Expected successful encode, got error: %v", err)
	}
}

func TestForwardReferenceResolution(t *testing.T) {
	source := `
	j end
	nop
	end: nop
	`
	validateListing(t, source, []string{
		"00000000: 08000004",
		"00000004: 54000000",
		"00000008: 54000000",
	})
}

func TestListingFormat(t *testing.T) {
	listing, err := assembler.Assemble("nop")
	if err != nil {
		t.Fatalf("Expected successful assembly, got error: %v", err)
	}
	if listing != "00000000: 54000000" {
		t.Errorf("Expected \"00000000: 54000000\", got %q", listing)
	}
	if strings.HasSuffix(listing, "\n") {
		t.Error("Expected no trailing newline")
	}
}
