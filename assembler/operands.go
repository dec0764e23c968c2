package assembler

import (
	"regexp"
	"strconv"
	"strings"
)

// OperandSet is the pattern matcher's output: the named operand roles an
// instruction line supplied. Absent roles keep their zero values, matching
// the zero defaults of every instruction field.
type OperandSet struct {
	Rdest, Rs1, Rs2          uint32
	HasRdest, HasRs1, HasRs2 bool
	Immediate                Immediate
	HasImmediate             bool
	Name                     string
	HasName                  bool
}

func (o OperandSet) Empty() bool {
	return !o.HasRdest && !o.HasRs1 && !o.HasRs2 && !o.HasImmediate && !o.HasName
}

// Target is the branch/jump/trap operand: the immediate role if present,
// otherwise the bare name.
func (o OperandSet) Target() Immediate {
	if o.HasImmediate {
		return o.Immediate
	}
	if o.HasName {
		return SymbolImmediate(o.Name)
	}
	return Immediate{}
}

var registerToken = regexp.MustCompile(`^[rRfF]\d{1,2}$`)

// operandPattern is one entry of the ordered syntax pattern list. Several
// addressing-mode spellings overlap, so a pattern is tried only after every
// earlier one failed; the ordering is load-bearing.
//
// Go's RE2 has no negative lookahead, so patterns that must capture a
// "not a register" token instead scan every candidate match and reject the
// ones whose checked group spells a register.
type operandPattern struct {
	re         *regexp.Regexp
	checkGroup int // group that must not be a register token; 0 disables
	branchOnly bool
	build      func(groups []string) OperandSet
}

var operandPatterns = []operandPattern{
	{ // rdest, offset(rs1)
		re: regexp.MustCompile(`\w+\s+[rRfF](\d{1,2}),\s*(\d+)\([rRfF](\d{1,2})\)`),
		build: func(g []string) OperandSet {
			return OperandSet{
				Rdest: atoiReg(g[1]), HasRdest: true,
				Immediate: LiteralImmediate(atoiVal(g[2])), HasImmediate: true,
				Rs1: atoiReg(g[3]), HasRs1: true,
			}
		},
	},
	{ // rdest, label
		re:         regexp.MustCompile(`\w+\s+[rRfF](\d{1,2}),\s*([A-Za-z_]\w*)`),
		checkGroup: 2,
		build: func(g []string) OperandSet {
			return OperandSet{
				Rdest: atoiReg(g[1]), HasRdest: true,
				Immediate: SymbolImmediate(g[2]), HasImmediate: true,
			}
		},
	},
	{ // offset(rs1), rdest
		re: regexp.MustCompile(`\w+\s+(-?\d+)\([rRfF](\d{1,2})\),\s*[rRfF](\d{1,2})`),
		build: func(g []string) OperandSet {
			return OperandSet{
				Immediate: LiteralImmediate(atoiVal(g[1])), HasImmediate: true,
				Rs1: atoiReg(g[2]), HasRs1: true,
				Rdest: atoiReg(g[3]), HasRdest: true,
			}
		},
	},
	{ // immediate, rdest
		re:         regexp.MustCompile(`\w+\s+(\w+),\s*[rRfF](\d{1,2})`),
		checkGroup: 1,
		build: func(g []string) OperandSet {
			return OperandSet{
				Immediate: SymbolImmediate(g[1]), HasImmediate: true,
				Rdest: atoiReg(g[2]), HasRdest: true,
			}
		},
	},
	{ // rdest, rs1 and nothing else
		re: regexp.MustCompile(`^\w+\s+[rRfF](\d{1,2}),\s*[rRfF](\d{1,2})$`),
		build: func(g []string) OperandSet {
			return OperandSet{
				Rdest: atoiReg(g[1]), HasRdest: true,
				Rs1: atoiReg(g[2]), HasRs1: true,
			}
		},
	},
	{ // rdest, rs1, rs2
		re: regexp.MustCompile(`\w+\s+[rRfF](\d{1,2}),\s*[rRfF](\d{1,2}),\s*[rRfF](\d{1,2})`),
		build: func(g []string) OperandSet {
			return OperandSet{
				Rdest: atoiReg(g[1]), HasRdest: true,
				Rs1: atoiReg(g[2]), HasRs1: true,
				Rs2: atoiReg(g[3]), HasRs2: true,
			}
		},
	},
	{ // rdest, rs1, immediate
		re: regexp.MustCompile(`\w+\s+[rRfF](\d{1,2}),\s*[rRfF](\d{1,2}),\s*(\w+)`),
		build: func(g []string) OperandSet {
			return OperandSet{
				Rdest: atoiReg(g[1]), HasRdest: true,
				Rs1: atoiReg(g[2]), HasRs1: true,
				Immediate: SymbolImmediate(g[3]), HasImmediate: true,
			}
		},
	},
	{ // rdest, immediate
		re: regexp.MustCompile(`\w+\s+[rRfF](\d{1,2}),\s*(\d+)`),
		build: func(g []string) OperandSet {
			return OperandSet{
				Rdest: atoiReg(g[1]), HasRdest: true,
				Immediate: LiteralImmediate(atoiVal(g[2])), HasImmediate: true,
			}
		},
	},
	{ // bare name
		re:         regexp.MustCompile(`^\w+\s+(\w+)$`),
		checkGroup: 1,
		build: func(g []string) OperandSet {
			return OperandSet{Name: g[1], HasName: true}
		},
	},
	{ // bare rs1
		re: regexp.MustCompile(`^\w+\s+[rRfF](\d{1,2})$`),
		build: func(g []string) OperandSet {
			return OperandSet{Rs1: atoiReg(g[1]), HasRs1: true}
		},
	},
	{ // rs1 then a name, for branch mnemonics only
		re:         regexp.MustCompile(`^[bB]\w*\s+[rRfF](\d{1,2}),\s*(\w+)`),
		checkGroup: 2,
		branchOnly: true,
		build: func(g []string) OperandSet {
			return OperandSet{
				Rs1: atoiReg(g[1]), HasRs1: true,
				Name: g[2], HasName: true,
			}
		},
	},
}

// MatchOperands extracts named operand values from one instruction line
// (the mnemonic plus its argument text, label already stripped). The second
// return is false when no pattern matched; that is only valid for
// zero-operand instructions.
func MatchOperands(text string) (OperandSet, bool) {
	branch := strings.HasPrefix(text, "b") || strings.HasPrefix(text, "B")
	for _, pattern := range operandPatterns {
		if pattern.branchOnly && !branch {
			continue
		}
		if pattern.checkGroup == 0 {
			if groups := pattern.re.FindStringSubmatch(text); groups != nil {
				return pattern.build(groups), true
			}
			continue
		}
		for _, groups := range pattern.re.FindAllStringSubmatch(text, -1) {
			if registerToken.MatchString(groups[pattern.checkGroup]) {
				continue
			}
			return pattern.build(groups), true
		}
	}
	return OperandSet{}, false
}

// atoiReg and atoiVal only ever see digit runs the patterns captured.
func atoiReg(s string) uint32 {
	v, _ := strconv.ParseUint(s, 10, 32)
	return uint32(v)
}

func atoiVal(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
