package assembler

import (
	"fmt"
	"strconv"
	"strings"
)

// EvaluateHover returns markdown for the token under the given position,
// and whether there is anything to show.
func (p *Program) EvaluateHover(position TextPosition) (string, bool) {
	if position.Line < 0 || position.Line >= len(p.lines) {
		return "", false
	}
	line := p.lines[position.Line]
	if i := strings.Index(line, commentMarker); i != -1 {
		line = line[:i]
	}

	token := tokenAt(line, position.Char)
	if token == "" {
		return "", false
	}

	if label := strings.TrimSuffix(token, ":"); label != token {
		if address, ok := p.Symbols.Lookup(label); ok {
			return fmt.Sprintf(hoverLabelDefinition, label, address), true
		}
		return "", false
	}

	if address, ok := p.Symbols.Lookup(token); ok {
		return fmt.Sprintf(hoverLabelReference, token, address), true
	}

	if registerToken.MatchString(token) {
		return hoverForRegister(token), true
	}

	if entry, ok := p.table.Lookup(token); ok {
		return hoverForMnemonic(token, entry), true
	}

	if value, err := strconv.ParseInt(strings.TrimPrefix(token, "0x"), numberBase(token), 64); err == nil {
		return fmt.Sprintf(hoverIntegerLiteral, value, uint64(value)&0xffffffff), true
	}

	return "", false
}

func numberBase(token string) int {
	if strings.Contains(token, "0x") {
		return 16
	}
	return 10
}

// tokenAt extracts the operand or mnemonic the cursor rests on. Operand
// separators delimit tokens so "4(r2)" yields its parts individually.
func tokenAt(line string, char int) string {
	if char < 0 || char >= len(line) {
		return ""
	}
	isSeparator := func(c byte) bool {
		return c == ' ' || c == '\t' || c == ',' || c == '(' || c == ')'
	}
	if isSeparator(line[char]) {
		return ""
	}
	start := char
	for start > 0 && !isSeparator(line[start-1]) {
		start--
	}
	end := char
	for end < len(line) && !isSeparator(line[end]) {
		end++
	}
	return line[start:end]
}

func hoverForMnemonic(mnemonic string, entry OpcodeEntry) string {
	description, ok := hoverDescriptions[mnemonic]
	if !ok {
		description = "DLX instruction"
	}

	switch entry.Kind {
	case KindRegisterALU:
		return fmt.Sprintf("**%s** — %s\n\nR-type (ALU), opcode 0x%02x, function 0x%02x",
			mnemonic, description, entry.Opcode, entry.Func)
	case KindRegisterFPU:
		return fmt.Sprintf("**%s** — %s\n\nR-type (FPU), opcode 0x%02x, function 0x%02x",
			mnemonic, description, entry.Opcode, entry.Func)
	case KindJump:
		return fmt.Sprintf("**%s** — %s\n\nJ-type, opcode 0x%02x, PC-relative 26-bit target",
			mnemonic, description, entry.Opcode)
	case KindBranch:
		return fmt.Sprintf("**%s** — %s\n\nI-type branch, opcode 0x%02x, PC-relative 16-bit offset",
			mnemonic, description, entry.Opcode)
	case KindTrap:
		return fmt.Sprintf("**%s** — %s\n\nI-type, opcode 0x%02x",
			mnemonic, description, entry.Opcode)
	}
	return fmt.Sprintf("**%s** — %s\n\nI-type, opcode 0x%02x, 16-bit immediate",
		mnemonic, description, entry.Opcode)
}

func hoverForRegister(token string) string {
	number, _ := strconv.Atoi(token[1:])
	if token[0] == 'f' || token[0] == 'F' {
		return fmt.Sprintf(hoverFloatRegister, number)
	}
	switch number {
	case 0:
		return hoverZeroRegister
	case 31:
		return hoverLinkRegister
	}
	return fmt.Sprintf(hoverIntRegister, number)
}
