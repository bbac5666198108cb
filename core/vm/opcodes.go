package vm

import "fmt"

// OpCode is a single instruction byte.
type OpCode byte

const (
	STOP   OpCode = 0x00
	ADD    OpCode = 0x01
	MUL    OpCode = 0x02
	SUB    OpCode = 0x03
	DIV    OpCode = 0x04
	MOD    OpCode = 0x06
	ADDMOD OpCode = 0x08
	MULMOD OpCode = 0x09
	EXP    OpCode = 0x0a

	LT     OpCode = 0x10
	GT     OpCode = 0x11
	EQ     OpCode = 0x14
	ISZERO OpCode = 0x15
	AND    OpCode = 0x16
	OR     OpCode = 0x17
	XOR    OpCode = 0x18
	NOT    OpCode = 0x19
	BYTE   OpCode = 0x1a
	SHL    OpCode = 0x1b
	SHR    OpCode = 0x1c

	KECCAK256 OpCode = 0x20

	POP     OpCode = 0x50
	MLOAD   OpCode = 0x51
	MSTORE  OpCode = 0x52
	MSTORE8 OpCode = 0x53
	PC      OpCode = 0x58
	MSIZE   OpCode = 0x59
	GAS     OpCode = 0x5a

	PUSH0  OpCode = 0x5f
	PUSH1  OpCode = 0x60
	PUSH32 OpCode = 0x7f

	DUP1   OpCode = 0x80
	DUP16  OpCode = 0x8f
	SWAP1  OpCode = 0x90
	SWAP16 OpCode = 0x9f

	INVALID OpCode = 0xfe
)

// Opcodes owned by collaborators outside this interpreter. They are named
// for disassembly and code analysis but have no handler, so executing them
// fails with ErrInvalidOpCode.
const (
	SLOAD    OpCode = 0x54
	SSTORE   OpCode = 0x55
	JUMP     OpCode = 0x56
	JUMPI    OpCode = 0x57
	JUMPDEST OpCode = 0x5b
)

var opCodeNames = map[OpCode]string{
	STOP: "STOP", ADD: "ADD", MUL: "MUL", SUB: "SUB",
	DIV: "DIV", MOD: "MOD", ADDMOD: "ADDMOD", MULMOD: "MULMOD", EXP: "EXP",
	LT: "LT", GT: "GT", EQ: "EQ", ISZERO: "ISZERO",
	AND: "AND", OR: "OR", XOR: "XOR", NOT: "NOT", BYTE: "BYTE",
	SHL: "SHL", SHR: "SHR",
	KECCAK256: "KECCAK256",
	POP: "POP", MLOAD: "MLOAD", MSTORE: "MSTORE", MSTORE8: "MSTORE8",
	SLOAD: "SLOAD", SSTORE: "SSTORE", JUMP: "JUMP", JUMPI: "JUMPI",
	PC: "PC", MSIZE: "MSIZE", GAS: "GAS", JUMPDEST: "JUMPDEST",
	PUSH0:   "PUSH0",
	INVALID: "INVALID",
}

func init() {
	for i := 0; i < 32; i++ {
		opCodeNames[PUSH1+OpCode(i)] = fmt.Sprintf("PUSH%d", i+1)
	}
	for i := 0; i < 16; i++ {
		opCodeNames[DUP1+OpCode(i)] = fmt.Sprintf("DUP%d", i+1)
		opCodeNames[SWAP1+OpCode(i)] = fmt.Sprintf("SWAP%d", i+1)
	}
}

// String returns the mnemonic of the opcode.
func (op OpCode) String() string {
	if name, ok := opCodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("opcode 0x%x", byte(op))
}

// IsPush reports whether op is one of PUSH1..PUSH32.
func (op OpCode) IsPush() bool {
	return op >= PUSH1 && op <= PUSH32
}

// PushSize returns the number of immediate bytes that follow op.
func (op OpCode) PushSize() int {
	if !op.IsPush() {
		return 0
	}
	return int(op-PUSH1) + 1
}
