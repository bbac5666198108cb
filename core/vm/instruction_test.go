package vm

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		code string
		pc   uint64
		op   OpCode
		size uint64
		imm  Word
	}{
		{"add", "0x01", 0, ADD, 1, Word{}},
		{"push1", "0x60ff", 0, PUSH1, 2, NewWord(0xff)},
		{"push2", "0x610102", 0, PUSH1 + 1, 3, NewWord(0x0102)},
		{"push0", "0x5f", 0, PUSH0, 1, Word{}},
		{"push at offset", "0x00600a", 1, PUSH1, 2, NewWord(0x0a)},
		{"truncated push2", "0x6101", 0, PUSH1 + 1, 3, NewWord(0x0100)},
		{"truncated push4", "0x63aabb", 0, PUSH1 + 3, 5, mustWord("0xaabb0000")},
		{"push1 at end", "0x60", 0, PUSH1, 2, Word{}},
		{"past end", "0x01", 5, STOP, 1, Word{}},
		{"push32", "0x7f" + "ff00000000000000000000000000000000000000000000000000000000000001", 0, PUSH32, 33,
			mustWord("0xff00000000000000000000000000000000000000000000000000000000000001")},
	}
	for _, tt := range tests {
		ins, err := Decode(hexutil.MustDecode(tt.code), tt.pc)
		if err != nil {
			t.Fatalf("%s: Decode error: %v", tt.name, err)
		}
		if ins.Op != tt.op || ins.Size != tt.size || ins.Immediate != tt.imm || ins.PC != tt.pc {
			t.Fatalf("%s: Decode = {pc %d, %v, size %d, %v}, want {pc %d, %v, size %d, %v}",
				tt.name, ins.PC, ins.Op, ins.Size, ins.Immediate.Hex(), tt.pc, tt.op, tt.size, tt.imm.Hex())
		}
		if ins.Next() != tt.pc+tt.size {
			t.Fatalf("%s: Next() = %d, want %d", tt.name, ins.Next(), tt.pc+tt.size)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, b := range []byte{0x0c, 0x21, 0xfe, 0xff, byte(SLOAD), byte(JUMP), byte(JUMPDEST)} {
		ins, err := Decode([]byte{b}, 0)
		if !errors.Is(err, ErrInvalidOpCode) {
			t.Fatalf("Decode(%#x) error = %v, want %v", b, err, ErrInvalidOpCode)
		}
		if ins.Op != OpCode(b) || ins.Size != 1 {
			t.Fatalf("Decode(%#x) = {%v, size %d}, want single byte", b, ins.Op, ins.Size)
		}
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"0x01", "00000 ADD"},
		{"0x602a", "00000 PUSH1 0x2a"},
		{"0x5f", "00000 PUSH0"},
		{"0x0c", "00000 opcode 0xc"},
	}
	for _, tt := range tests {
		ins, _ := Decode(hexutil.MustDecode(tt.code), 0)
		if got := ins.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDisassemble(t *testing.T) {
	// PUSH2 0x5b5b, JUMPDEST, invalid 0x0c, PUSH1 truncated
	code := hexutil.MustDecode("0x615b5b5b0c60")
	got := Disassemble(code)
	want := []struct {
		pc       uint64
		op       OpCode
		jumpDest bool
	}{
		{0, PUSH1 + 1, false},
		{3, JUMPDEST, true},
		{4, OpCode(0x0c), false},
		{5, PUSH1, false},
	}
	if len(got) != len(want) {
		t.Fatalf("Disassemble returned %d instructions, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].PC != w.pc || got[i].Op != w.op || got[i].JumpDest != w.jumpDest {
			t.Fatalf("instruction %d = {%d %v %v}, want {%d %v %v}",
				i, got[i].PC, got[i].Op, got[i].JumpDest, w.pc, w.op, w.jumpDest)
		}
	}
	if got[0].Immediate != NewWord(0x5b5b) {
		t.Fatalf("PUSH2 immediate = %v, want 0x5b5b", got[0].Immediate.Hex())
	}
	if len(Disassemble(nil)) != 0 {
		t.Fatal("Disassemble(nil) returned instructions")
	}
}

func TestOpCodeNames(t *testing.T) {
	tests := []struct {
		op   OpCode
		want string
	}{
		{ADD, "ADD"}, {MSTORE8, "MSTORE8"}, {PUSH0, "PUSH0"}, {PUSH1, "PUSH1"},
		{PUSH32, "PUSH32"}, {DUP1, "DUP1"}, {DUP16, "DUP16"}, {SWAP1, "SWAP1"},
		{SWAP16, "SWAP16"}, {KECCAK256, "KECCAK256"}, {INVALID, "INVALID"},
		{OpCode(0xef), "opcode 0xef"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Fatalf("OpCode(%#x).String() = %q, want %q", byte(tt.op), got, tt.want)
		}
	}
	if PUSH0.IsPush() || PUSH0.PushSize() != 0 {
		t.Fatal("PUSH0 must not carry an immediate")
	}
	if PUSH32.PushSize() != 32 {
		t.Fatalf("PUSH32.PushSize() = %d, want 32", PUSH32.PushSize())
	}
}

func TestConstantGas(t *testing.T) {
	tests := []struct {
		op   OpCode
		want uint64
	}{
		{STOP, 0}, {ADD, 3}, {SUB, 3}, {MUL, 5}, {DIV, 5}, {MOD, 5},
		{LT, 3}, {GT, 3}, {EQ, 3}, {AND, 3}, {POP, 2}, {PUSH0, 2},
		{PUSH1, 3}, {PUSH32, 3}, {MSTORE, 3}, {MSTORE8, 3}, {EXP, 10},
		{KECCAK256, 30}, {INVALID, 0},
	}
	for _, tt := range tests {
		if got := tt.op.ConstantGas(); got != tt.want {
			t.Fatalf("%v.ConstantGas() = %d, want %d", tt.op, got, tt.want)
		}
	}
}
