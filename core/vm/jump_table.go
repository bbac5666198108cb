package vm

// dynamicGasFunc returns the operand-dependent part of an operation's cost,
// excluding memory growth which the interpreter prices separately.
type dynamicGasFunc func(stack *Stack) (uint64, error)

// memorySizeFunc returns the memory high-water mark an operation needs.
// The bool reports that the size does not fit in 64 bits; the caller
// treats that as out of gas.
type memorySizeFunc func(stack *Stack) (uint64, bool)

// operation describes how one opcode executes and what it costs.
type operation struct {
	execute     executionFunc
	constantGas uint64
	dynamicGas  dynamicGasFunc
	pops        int // items consumed from the stack
	pushes      int // items produced onto the stack
	memorySize  memorySizeFunc
	halts       bool // STOP
}

// JumpTable maps every opcode byte to its operation. Nil entries are
// unrecognized opcodes.
type JumpTable [256]*operation

// instructionSet is shared by all runs; it is never mutated after init.
var instructionSet = newInstructionSet()

func newInstructionSet() JumpTable {
	var jt JumpTable

	jt[STOP] = &operation{execute: opStop, constantGas: GasZeroStep, halts: true}

	jt[ADD] = &operation{execute: opAdd, constantGas: GasFastestStep, pops: 2, pushes: 1}
	jt[MUL] = &operation{execute: opMul, constantGas: GasFastStep, pops: 2, pushes: 1}
	jt[SUB] = &operation{execute: opSub, constantGas: GasFastestStep, pops: 2, pushes: 1}
	jt[DIV] = &operation{execute: opDiv, constantGas: GasFastStep, pops: 2, pushes: 1}
	jt[MOD] = &operation{execute: opMod, constantGas: GasFastStep, pops: 2, pushes: 1}
	jt[ADDMOD] = &operation{execute: opAddmod, constantGas: GasMidStep, pops: 3, pushes: 1}
	jt[MULMOD] = &operation{execute: opMulmod, constantGas: GasMidStep, pops: 3, pushes: 1}
	jt[EXP] = &operation{execute: opExp, constantGas: GasSlowStep, dynamicGas: gasExp, pops: 2, pushes: 1}

	jt[LT] = &operation{execute: opLt, constantGas: GasFastestStep, pops: 2, pushes: 1}
	jt[GT] = &operation{execute: opGt, constantGas: GasFastestStep, pops: 2, pushes: 1}
	jt[EQ] = &operation{execute: opEq, constantGas: GasFastestStep, pops: 2, pushes: 1}
	jt[ISZERO] = &operation{execute: opIsZero, constantGas: GasFastestStep, pops: 1, pushes: 1}
	jt[AND] = &operation{execute: opAnd, constantGas: GasFastestStep, pops: 2, pushes: 1}
	jt[OR] = &operation{execute: opOr, constantGas: GasFastestStep, pops: 2, pushes: 1}
	jt[XOR] = &operation{execute: opXor, constantGas: GasFastestStep, pops: 2, pushes: 1}
	jt[NOT] = &operation{execute: opNot, constantGas: GasFastestStep, pops: 1, pushes: 1}
	jt[BYTE] = &operation{execute: opByte, constantGas: GasFastestStep, pops: 2, pushes: 1}
	jt[SHL] = &operation{execute: opShl, constantGas: GasFastestStep, pops: 2, pushes: 1}
	jt[SHR] = &operation{execute: opShr, constantGas: GasFastestStep, pops: 2, pushes: 1}

	jt[KECCAK256] = &operation{
		execute:     opKeccak256,
		constantGas: GasKeccak256,
		dynamicGas:  gasKeccak256,
		pops:        2,
		pushes:      1,
		memorySize:  memoryKeccak256,
	}

	jt[POP] = &operation{execute: opPop, constantGas: GasQuickStep, pops: 1}
	jt[MLOAD] = &operation{execute: opMload, constantGas: GasFastestStep, pops: 1, pushes: 1, memorySize: memoryMload}
	jt[MSTORE] = &operation{execute: opMstore, constantGas: GasFastestStep, pops: 2, memorySize: memoryMstore}
	jt[MSTORE8] = &operation{execute: opMstore8, constantGas: GasFastestStep, pops: 2, memorySize: memoryMstore8}
	jt[PC] = &operation{execute: opPc, constantGas: GasQuickStep, pushes: 1}
	jt[MSIZE] = &operation{execute: opMsize, constantGas: GasQuickStep, pushes: 1}
	jt[GAS] = &operation{execute: opGas, constantGas: GasQuickStep, pushes: 1}

	jt[PUSH0] = &operation{execute: opPush, constantGas: GasQuickStep, pushes: 1}
	for op := PUSH1; op <= PUSH32; op++ {
		jt[op] = &operation{execute: opPush, constantGas: GasFastestStep, pushes: 1}
	}
	for i := 0; i < 16; i++ {
		jt[DUP1+OpCode(i)] = &operation{execute: makeDup(i + 1), constantGas: GasFastestStep, pops: i + 1, pushes: i + 2}
		jt[SWAP1+OpCode(i)] = &operation{execute: makeSwap(i + 1), constantGas: GasFastestStep, pops: i + 2, pushes: i + 2}
	}
	return jt
}

// Valid reports whether op has a handler.
func (op OpCode) Valid() bool {
	return instructionSet[op] != nil
}

// ConstantGas returns the fixed cost of op, or 0 for unrecognized opcodes.
func (op OpCode) ConstantGas() uint64 {
	if o := instructionSet[op]; o != nil {
		return o.constantGas
	}
	return 0
}

func gasExp(stack *Stack) (uint64, error) {
	expByteLen := uint64(stack.back(1).ByteLen())
	return expByteLen * GasExpByte, nil
}

func gasKeccak256(stack *Stack) (uint64, error) {
	size, overflow := wordToUint64(stack.back(1))
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return ToWordSize(size) * GasKeccak256Word, nil
}
