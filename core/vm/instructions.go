package vm

import "golang.org/x/crypto/sha3"

// scopeContext is the mutable state a handler may touch.
type scopeContext struct {
	Stack  *Stack
	Memory *Memory
	Gas    *GasMeter
}

// executionFunc runs one decoded instruction. Handlers are only invoked
// after the interpreter has validated the stack depth and charged gas, so
// they cannot fail.
type executionFunc func(ins *Instruction, scope *scopeContext)

// Binary operations pop x (the top) and then y, and replace y with f(x, y):
// the first popped element is always the left-hand operand.

func opAdd(ins *Instruction, scope *scopeContext) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	*y = Add(x, *y)
}

func opSub(ins *Instruction, scope *scopeContext) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	*y = Sub(x, *y)
}

func opMul(ins *Instruction, scope *scopeContext) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	*y = Mul(x, *y)
}

func opDiv(ins *Instruction, scope *scopeContext) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	*y = Div(x, *y)
}

func opMod(ins *Instruction, scope *scopeContext) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	*y = Mod(x, *y)
}

func opAddmod(ins *Instruction, scope *scopeContext) {
	x, y, z := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.peek()
	*z = AddMod(x, y, *z)
}

func opMulmod(ins *Instruction, scope *scopeContext) {
	x, y, z := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.peek()
	*z = MulMod(x, y, *z)
}

func opExp(ins *Instruction, scope *scopeContext) {
	base, exponent := scope.Stack.pop(), scope.Stack.peek()
	*exponent = Exp(base, *exponent)
}

func opLt(ins *Instruction, scope *scopeContext) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	*y = Lt(x, *y)
}

func opGt(ins *Instruction, scope *scopeContext) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	*y = Gt(x, *y)
}

func opEq(ins *Instruction, scope *scopeContext) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	*y = Eq(x, *y)
}

func opIsZero(ins *Instruction, scope *scopeContext) {
	x := scope.Stack.peek()
	*x = IsZero(*x)
}

func opAnd(ins *Instruction, scope *scopeContext) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	*y = And(x, *y)
}

func opOr(ins *Instruction, scope *scopeContext) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	*y = Or(x, *y)
}

func opXor(ins *Instruction, scope *scopeContext) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	*y = Xor(x, *y)
}

func opNot(ins *Instruction, scope *scopeContext) {
	x := scope.Stack.peek()
	*x = Not(*x)
}

func opByte(ins *Instruction, scope *scopeContext) {
	th, val := scope.Stack.pop(), scope.Stack.peek()
	*val = Byte(th, *val)
}

func opShl(ins *Instruction, scope *scopeContext) {
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	*value = Shl(shift, *value)
}

func opShr(ins *Instruction, scope *scopeContext) {
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	*value = Shr(shift, *value)
}

func opKeccak256(ins *Instruction, scope *scopeContext) {
	offset, size := scope.Stack.pop(), scope.Stack.peek()
	data := scope.Memory.getPtr(offset.Uint64(), size.Uint64())

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	*size = WordFromBytes(hasher.Sum(nil))
}

func opPop(ins *Instruction, scope *scopeContext) {
	scope.Stack.pop()
}

func opMload(ins *Instruction, scope *scopeContext) {
	offset := scope.Stack.peek()
	*offset = scope.Memory.Load32(offset.Uint64())
}

func opMstore(ins *Instruction, scope *scopeContext) {
	offset, val := scope.Stack.pop(), scope.Stack.pop()
	scope.Memory.Store32(offset.Uint64(), val)
}

func opMstore8(ins *Instruction, scope *scopeContext) {
	offset, val := scope.Stack.pop(), scope.Stack.pop()
	scope.Memory.Store8(offset.Uint64(), val)
}

func opPc(ins *Instruction, scope *scopeContext) {
	w := NewWord(ins.PC)
	scope.Stack.push(&w)
}

// opMsize reports the memory high-water mark rounded up to whole words,
// which is the size memory is billed for.
func opMsize(ins *Instruction, scope *scopeContext) {
	w := NewWord(ToWordSize(uint64(scope.Memory.Len())) * 32)
	scope.Stack.push(&w)
}

func opGas(ins *Instruction, scope *scopeContext) {
	w := NewWord(scope.Gas.Remaining())
	scope.Stack.push(&w)
}

// opPush covers PUSH0 through PUSH32; the decoder has already extracted the
// immediate operand.
func opPush(ins *Instruction, scope *scopeContext) {
	scope.Stack.push(&ins.Immediate)
}

// makeDup returns a handler that duplicates the nth item (1 = top).
func makeDup(n int) executionFunc {
	return func(ins *Instruction, scope *scopeContext) {
		scope.Stack.dup(n)
	}
}

// makeSwap returns a handler that swaps the top with the nth item below it.
func makeSwap(n int) executionFunc {
	return func(ins *Instruction, scope *scopeContext) {
		scope.Stack.swap(n)
	}
}

func opStop(ins *Instruction, scope *scopeContext) {}
