package assembler

// Raw word builders for the three DLX formats, with matching decoders used
// by tests and tooling. Note the trailing 11 bits split differently between
// the two register layouts: ALU reserves 5 bits ahead of a 6-bit function
// code, the FPU reserves 6 bits ahead of a 5-bit one.

func makeImmediateWord(opcode, rs1, rdest, immediate uint32) uint32 {
	return opcode<<26 | (rs1&0x1f)<<21 | (rdest&0x1f)<<16 | immediate&0xffff
}

func makeJumpWord(opcode, target uint32) uint32 {
	return opcode<<26 | target&0x3ffffff
}

func makeRegisterALUWord(opcode, rs1, rs2, rdest, funcCode uint32) uint32 {
	return opcode<<26 | (rs1&0x1f)<<21 | (rs2&0x1f)<<16 | (rdest&0x1f)<<11 | funcCode&0x3f
}

func makeRegisterFPUWord(opcode, rs1, rs2, rdest, funcCode uint32) uint32 {
	return opcode<<26 | (rs1&0x1f)<<21 | (rs2&0x1f)<<16 | (rdest&0x1f)<<11 | funcCode&0x1f
}

func DecodeImmediateWord(word uint32) (opcode, rs1, rdest, immediate uint32) {
	opcode = word >> 26
	rs1 = (word >> 21) & 0x1f
	rdest = (word >> 16) & 0x1f
	immediate = word & 0xffff
	return
}

func DecodeJumpWord(word uint32) (opcode, target uint32) {
	opcode = word >> 26
	target = word & 0x3ffffff
	return
}

func DecodeRegisterALUWord(word uint32) (opcode, rs1, rs2, rdest, funcCode uint32) {
	opcode = word >> 26
	rs1 = (word >> 21) & 0x1f
	rs2 = (word >> 16) & 0x1f
	rdest = (word >> 11) & 0x1f
	funcCode = word & 0x3f
	return
}

func DecodeRegisterFPUWord(word uint32) (opcode, rs1, rs2, rdest, funcCode uint32) {
	opcode = word >> 26
	rs1 = (word >> 21) & 0x1f
	rs2 = (word >> 16) & 0x1f
	rdest = (word >> 11) & 0x1f
	funcCode = word & 0x1f
	return
}

// SignExtend16 and SignExtend26 recover the signed PC-relative offsets from
// their masked immediate fields.
func SignExtend16(value uint32) int32 {
	return int32(int16(value))
}

func SignExtend26(value uint32) int32 {
	return int32(value<<6) >> 6
}
