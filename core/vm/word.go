package vm

import "github.com/holiman/uint256"

// Word is the 256-bit unsigned machine word. It is a value type: copying a
// Word copies all four limbs.
type Word = uint256.Int

// NewWord returns a Word holding v.
func NewWord(v uint64) Word {
	var w Word
	w.SetUint64(v)
	return w
}

// WordFromBytes interprets b as a big-endian unsigned integer. Inputs longer
// than 32 bytes keep only the low-order 32 bytes.
func WordFromBytes(b []byte) Word {
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	var w Word
	w.SetBytes(b)
	return w
}

// boolWord returns 1 for true and 0 for false.
func boolWord(b bool) Word {
	if b {
		return NewWord(1)
	}
	return Word{}
}

// Add returns (a + b) mod 2^256.
func Add(a, b Word) Word {
	var z Word
	z.Add(&a, &b)
	return z
}

// Sub returns (a - b) mod 2^256.
func Sub(a, b Word) Word {
	var z Word
	z.Sub(&a, &b)
	return z
}

// Mul returns (a * b) mod 2^256.
func Mul(a, b Word) Word {
	var z Word
	z.Mul(&a, &b)
	return z
}

// Div returns floor(a / b), or 0 when b is 0.
func Div(a, b Word) Word {
	var z Word
	if b.IsZero() {
		return z
	}
	z.Div(&a, &b)
	return z
}

// Mod returns a mod b, or 0 when b is 0.
func Mod(a, b Word) Word {
	var z Word
	if b.IsZero() {
		return z
	}
	z.Mod(&a, &b)
	return z
}

// AddMod returns (a + b) mod m computed without intermediate wraparound,
// or 0 when m is 0.
func AddMod(a, b, m Word) Word {
	var z Word
	if m.IsZero() {
		return z
	}
	z.AddMod(&a, &b, &m)
	return z
}

// MulMod returns (a * b) mod m computed over the full 512-bit product,
// or 0 when m is 0.
func MulMod(a, b, m Word) Word {
	var z Word
	if m.IsZero() {
		return z
	}
	z.MulMod(&a, &b, &m)
	return z
}

// Exp returns base^exponent mod 2^256.
func Exp(base, exponent Word) Word {
	var z Word
	z.Exp(&base, &exponent)
	return z
}

// Lt returns 1 if a < b, else 0.
func Lt(a, b Word) Word { return boolWord(a.Lt(&b)) }

// Gt returns 1 if a > b, else 0.
func Gt(a, b Word) Word { return boolWord(a.Gt(&b)) }

// Eq returns 1 if a == b, else 0.
func Eq(a, b Word) Word { return boolWord(a.Eq(&b)) }

// IsZero returns 1 if a == 0, else 0.
func IsZero(a Word) Word { return boolWord(a.IsZero()) }

// And returns the bitwise AND of a and b.
func And(a, b Word) Word {
	var z Word
	z.And(&a, &b)
	return z
}

// Or returns the bitwise OR of a and b.
func Or(a, b Word) Word {
	var z Word
	z.Or(&a, &b)
	return z
}

// Xor returns the bitwise XOR of a and b.
func Xor(a, b Word) Word {
	var z Word
	z.Xor(&a, &b)
	return z
}

// Not returns the 256-bit complement of a, i.e. 2^256 - 1 - a.
func Not(a Word) Word {
	var z Word
	z.Not(&a)
	return z
}

// Shl shifts value left by shift bits. Shifts of 256 or more yield 0.
func Shl(shift, value Word) Word {
	var z Word
	if !shift.LtUint64(256) {
		return z
	}
	z.Lsh(&value, uint(shift.Uint64()))
	return z
}

// Shr shifts value right (logically) by shift bits. Shifts of 256 or more
// yield 0.
func Shr(shift, value Word) Word {
	var z Word
	if !shift.LtUint64(256) {
		return z
	}
	z.Rsh(&value, uint(shift.Uint64()))
	return z
}

// Byte returns the i-th byte of value counting from the most significant
// byte, or 0 when i >= 32.
func Byte(i, value Word) Word {
	if !i.LtUint64(32) {
		return Word{}
	}
	b := value.Bytes32()
	return NewWord(uint64(b[i.Uint64()]))
}
