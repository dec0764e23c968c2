package assembler

const (
	hoverLabelDefinition = "**%s** — label bound to address `0x%08x`"
	hoverLabelReference  = "Reference to label **%s** at address `0x%08x`"
	hoverIntegerLiteral  = "Integer literal `%d` (`0x%x`)"

	hoverZeroRegister  = "**r0** — hardwired to zero; writes are discarded"
	hoverLinkRegister  = "**r31** — link register, written by `jal` and `jalr`"
	hoverIntRegister   = "**r%d** — general purpose integer register"
	hoverFloatRegister = "**f%d** — floating point register"
)

var hoverDescriptions = map[string]string{
	"add":   "integer addition",
	"addu":  "unsigned integer addition",
	"sub":   "integer subtraction",
	"subu":  "unsigned integer subtraction",
	"and":   "bitwise and",
	"or":    "bitwise or",
	"xor":   "bitwise exclusive or",
	"sll":   "shift left logical",
	"srl":   "shift right logical",
	"sra":   "shift right arithmetic",
	"seq":   "set if equal",
	"sne":   "set if not equal",
	"slt":   "set if less than",
	"sgt":   "set if greater than",
	"sle":   "set if less than or equal",
	"sge":   "set if greater than or equal",
	"addi":  "add immediate",
	"addui": "add unsigned immediate",
	"subi":  "subtract immediate",
	"subui": "subtract unsigned immediate",
	"andi":  "and immediate",
	"ori":   "or immediate",
	"xori":  "exclusive or immediate",
	"lhi":   "load high immediate into the upper halfword",
	"slli":  "shift left logical by immediate",
	"srli":  "shift right logical by immediate",
	"srai":  "shift right arithmetic by immediate",
	"seqi":  "set if equal to immediate",
	"snei":  "set if not equal to immediate",
	"slti":  "set if less than immediate",
	"sgti":  "set if greater than immediate",
	"slei":  "set if less than or equal to immediate",
	"sgei":  "set if greater than or equal to immediate",
	"lb":    "load byte, sign extended",
	"lbu":   "load byte, zero extended",
	"lh":    "load halfword, sign extended",
	"lhu":   "load halfword, zero extended",
	"lw":    "load word",
	"lf":    "load single precision float",
	"ld":    "load double precision float",
	"sb":    "store byte",
	"sh":    "store halfword",
	"sw":    "store word",
	"sf":    "store single precision float",
	"sd":    "store double precision float",
	"beqz":  "branch if register equals zero",
	"bnez":  "branch if register is nonzero",
	"j":     "unconditional jump",
	"jal":   "jump and link through r31",
	"jr":    "jump to register",
	"jalr":  "jump to register and link through r31",
	"trap":  "transfer control to the operating system",
	"nop":   "no operation",
	"addf":  "single precision addition",
	"subf":  "single precision subtraction",
	"multf": "single precision multiplication",
	"divf":  "single precision division",
	"addd":  "double precision addition",
	"subd":  "double precision subtraction",
	"multd": "double precision multiplication",
	"divd":  "double precision division",
	"mult":  "integer multiplication",
	"div":   "integer division",
	"multu": "unsigned integer multiplication",
	"divu":  "unsigned integer division",
	"cvtf2d": "convert single to double precision",
	"cvtf2i": "convert single precision to integer",
	"cvtd2f": "convert double to single precision",
	"cvtd2i": "convert double precision to integer",
	"cvti2f": "convert integer to single precision",
	"cvti2d": "convert integer to double precision",
	"eqf":   "set if floats are equal",
	"nef":   "set if floats are not equal",
	"ltf":   "set if float is less than",
	"gtf":   "set if float is greater than",
	"lef":   "set if float is less than or equal",
	"gef":   "set if float is greater than or equal",
	"eqd":   "set if doubles are equal",
	"ned":   "set if doubles are not equal",
	"ltd":   "set if double is less than",
	"gtd":   "set if double is greater than",
	"led":   "set if double is less than or equal",
	"ged":   "set if double is greater than or equal",
}
