package assembler

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DirectiveKind is the closed set of memory-layout directives.
type DirectiveKind int

const (
	DirectiveText DirectiveKind = iota
	DirectiveData
	DirectiveAlign
	DirectiveAsciiz
	DirectiveDouble
	DirectiveFloat
	DirectiveWord
	DirectiveSpace
)

var directiveKinds = map[string]DirectiveKind{
	".text":   DirectiveText,
	".data":   DirectiveData,
	".align":  DirectiveAlign,
	".asciiz": DirectiveAsciiz,
	".double": DirectiveDouble,
	".float":  DirectiveFloat,
	".word":   DirectiveWord,
	".space":  DirectiveSpace,
}

func (k DirectiveKind) String() string {
	for name, kind := range directiveKinds {
		if kind == k {
			return name
		}
	}
	return ".?"
}

// IsDirective reports whether a token names a known directive.
func IsDirective(token string) bool {
	if !strings.HasPrefix(token, ".") {
		return false
	}
	_, ok := directiveKinds[token]
	return ok
}

// DirectiveStatement is one parsed directive with its raw argument tokens.
// Arguments were re-joined with spaces and split on ", ", so a quoted
// string with embedded spaces stays one token.
type DirectiveStatement struct {
	Kind DirectiveKind
	Args []string

	address uint32
	line    int
}

// NewDirective builds the statement for one classified directive line.
func NewDirective(name string, args []string, line int) *DirectiveStatement {
	return &DirectiveStatement{Kind: directiveKinds[name], Args: args, line: line}
}

func (d *DirectiveStatement) Address() uint32 { return d.address }
func (d *DirectiveStatement) SourceLine() int { return d.line }

// NextAddress applies the directive's address policy to the address before
// it. The relocating directives ignore the incoming address entirely.
func (d *DirectiveStatement) NextAddress(address uint32) (uint32, error) {
	switch d.Kind {
	case DirectiveText:
		return d.absoluteAddress(0)
	case DirectiveData:
		return d.absoluteAddress(0x200)
	case DirectiveAlign:
		n, err := d.numericArg(0)
		if err != nil {
			return 0, err
		}
		// the width is an exponent; anything past 31 cannot describe a
		// 32-bit address boundary
		if n < 0 || n > 31 {
			return 0, Errors.InvalidDirectiveOperand(d.Kind.String(), d.Args[0], d.line)
		}
		return alignAddress(address, uint(n)), nil
	case DirectiveAsciiz:
		total := address
		for _, arg := range d.Args {
			total += uint32(len(stripQuotes(arg))) + 1
		}
		return total, nil
	case DirectiveDouble:
		return address + 8*uint32(len(d.Args)), nil
	case DirectiveFloat, DirectiveWord:
		return address + 4*uint32(len(d.Args)), nil
	case DirectiveSpace:
		n, err := d.numericArg(0)
		if err != nil {
			return 0, err
		}
		return address + uint32(n), nil
	}
	return address, nil
}

// ItemAddresses lists the address of each emitted datum. For .asciiz the
// historical scheme yields one surplus slot: a leading entry at the incoming
// address followed by every cumulative end offset, so N strings produce N+1
// slots and the final slot goes unused.
func (d *DirectiveStatement) ItemAddresses(address uint32) ([]uint32, error) {
	switch d.Kind {
	case DirectiveAsciiz:
		addresses := []uint32{address}
		for _, arg := range d.Args {
			address += uint32(len(stripQuotes(arg))) + 1
			addresses = append(addresses, address)
		}
		return addresses, nil
	case DirectiveDouble:
		return spacedAddresses(address, 8, len(d.Args)), nil
	case DirectiveFloat, DirectiveWord:
		return spacedAddresses(address, 4, len(d.Args)), nil
	}
	next, err := d.NextAddress(address)
	if err != nil {
		return nil, err
	}
	return []uint32{next}, nil
}

// Encode produces one hex blob per emitted datum. Directives that only
// reposition the counter emit nothing.
func (d *DirectiveStatement) Encode() ([]string, error) {
	switch d.Kind {
	case DirectiveAsciiz:
		encoded := make([]string, 0, len(d.Args))
		for _, arg := range d.Args {
			bytes := append([]byte(stripQuotes(arg)), 0)
			encoded = append(encoded, hex.EncodeToString(bytes))
		}
		return encoded, nil
	case DirectiveWord:
		return d.encodeNumeric(func(token string) (string, error) {
			value, err := parseNumber(token)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%08x", uint32(int32(value))), nil
		})
	case DirectiveFloat:
		return d.encodeNumeric(func(token string) (string, error) {
			value, err := strconv.ParseFloat(token, 32)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%08x", math.Float32bits(float32(value))), nil
		})
	case DirectiveDouble:
		return d.encodeNumeric(func(token string) (string, error) {
			value, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%016x", math.Float64bits(value)), nil
		})
	}
	return nil, nil
}

func (d *DirectiveStatement) encodeNumeric(encode func(token string) (string, error)) ([]string, error) {
	encoded := make([]string, 0, len(d.Args))
	for _, arg := range d.Args {
		token := strings.Trim(arg, ", ")
		one, err := encode(token)
		if err != nil {
			return nil, Errors.InvalidDirectiveOperand(d.Kind.String(), arg, d.line)
		}
		encoded = append(encoded, one)
	}
	return encoded, nil
}

// absoluteAddress parses the sole argument as a hex literal, falling back
// to the default when no argument was given.
func (d *DirectiveStatement) absoluteAddress(fallback uint32) (uint32, error) {
	if len(d.Args) == 0 {
		return fallback, nil
	}
	token := strings.Trim(d.Args[0], ", ")
	value, err := strconv.ParseUint(strings.TrimPrefix(token, "0x"), 16, 32)
	if err != nil {
		return 0, Errors.InvalidDirectiveOperand(d.Kind.String(), d.Args[0], d.line)
	}
	return uint32(value), nil
}

func (d *DirectiveStatement) numericArg(index int) (int64, error) {
	if index >= len(d.Args) {
		return 0, Errors.InvalidDirectiveOperand(d.Kind.String(), "", d.line)
	}
	value, err := parseNumber(strings.Trim(d.Args[index], ", "))
	if err != nil {
		return 0, Errors.InvalidDirectiveOperand(d.Kind.String(), d.Args[index], d.line)
	}
	return value, nil
}

// parseNumber reads a directive numeral: a 0x substring marks hex,
// anything else is decimal.
func parseNumber(token string) (int64, error) {
	if strings.Contains(token, "0x") {
		return strconv.ParseInt(strings.Replace(token, "0x", "", 1), 16, 64)
	}
	return strconv.ParseInt(token, 10, 64)
}

// alignAddress rounds up to the next multiple of 2^n; an already aligned
// address is unchanged, so the operation is idempotent.
func alignAddress(address uint32, n uint) uint32 {
	size := uint32(1) << n
	if address%size == 0 {
		return address
	}
	return (address/size)*size + size
}

func stripQuotes(s string) string {
	return strings.Trim(s, `"`)
}

func spacedAddresses(start uint32, size uint32, count int) []uint32 {
	addresses := make([]uint32, count)
	for i := range addresses {
		addresses[i] = start + size*uint32(i)
	}
	return addresses
}
