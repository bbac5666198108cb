package vm

import "fmt"

// DefaultStackLimit is the maximum stack depth used when no limit is
// configured.
const DefaultStackLimit = 1024

// Stack is the operand stack of 256-bit words. The exported methods check
// depth and return ErrStackUnderflow / ErrStackOverflow. The unexported
// helpers skip the checks and are only used by opcode handlers after the
// interpreter has validated the stack against the operation's requirements.
type Stack struct {
	data  []Word
	limit int
}

// NewStack returns an empty stack holding at most limit items. A
// non-positive limit selects DefaultStackLimit.
func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultStackLimit
	}
	return &Stack{data: make([]Word, 0, 16), limit: limit}
}

// Push pushes w onto the stack.
func (st *Stack) Push(w Word) error {
	if len(st.data) >= st.limit {
		return fmt.Errorf("%w: limit %d", ErrStackOverflow, st.limit)
	}
	st.data = append(st.data, w)
	return nil
}

// Pop removes and returns the top element.
func (st *Stack) Pop() (Word, error) {
	if len(st.data) == 0 {
		return Word{}, ErrStackUnderflow
	}
	return st.pop(), nil
}

// Peek returns the element depth positions below the top (0 = top)
// without removing it.
func (st *Stack) Peek(depth int) (Word, error) {
	if depth < 0 || depth >= len(st.data) {
		return Word{}, fmt.Errorf("%w: peek %d of %d", ErrStackUnderflow, depth, len(st.data))
	}
	return *st.back(depth), nil
}

// Dup duplicates the nth element from the top (1 = top) and pushes it.
func (st *Stack) Dup(n int) error {
	if n < 1 || n > len(st.data) {
		return fmt.Errorf("%w: need %d elements for DUP%d, have %d",
			ErrStackUnderflow, n, n, len(st.data))
	}
	if len(st.data) >= st.limit {
		return fmt.Errorf("%w: limit %d", ErrStackOverflow, st.limit)
	}
	st.dup(n)
	return nil
}

// Swap swaps the top element with the nth element below it.
func (st *Stack) Swap(n int) error {
	if n < 1 || n+1 > len(st.data) {
		return fmt.Errorf("%w: need %d elements for SWAP%d, have %d",
			ErrStackUnderflow, n+1, n, len(st.data))
	}
	st.swap(n)
	return nil
}

// Len returns the number of items on the stack.
func (st *Stack) Len() int {
	return len(st.data)
}

// Limit returns the maximum depth of the stack.
func (st *Stack) Limit() int {
	return st.limit
}

// Data returns a copy of the stack contents, bottom first and top last.
func (st *Stack) Data() []Word {
	out := make([]Word, len(st.data))
	copy(out, st.data)
	return out
}

func (st *Stack) push(w *Word) {
	st.data = append(st.data, *w)
}

func (st *Stack) pop() Word {
	ret := st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return ret
}

// peek returns a pointer to the top element so handlers can overwrite it in
// place.
func (st *Stack) peek() *Word {
	return &st.data[len(st.data)-1]
}

func (st *Stack) back(n int) *Word {
	return &st.data[len(st.data)-1-n]
}

func (st *Stack) swap(n int) {
	top := len(st.data) - 1
	st.data[top], st.data[top-n] = st.data[top-n], st.data[top]
}

func (st *Stack) dup(n int) {
	st.data = append(st.data, st.data[len(st.data)-n])
}
