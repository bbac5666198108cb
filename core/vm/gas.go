package vm

import (
	"fmt"

	"github.com/ethereum/go-ethereum/params"
)

// Fixed per-opcode gas tiers.
const (
	GasZeroStep    uint64 = 0  // STOP
	GasQuickStep   uint64 = 2  // POP, PC, MSIZE, GAS, PUSH0
	GasFastestStep uint64 = 3  // ADD, SUB, comparisons, bitwise, PUSHn, DUPn, SWAPn, MLOAD, MSTORE, MSTORE8
	GasFastStep    uint64 = 5  // MUL, DIV, MOD
	GasMidStep     uint64 = 8  // ADDMOD, MULMOD
	GasSlowStep    uint64 = 10 // EXP base cost

	GasExpByte uint64 = 50 // EXP, per byte of exponent

	GasKeccak256     = params.Keccak256Gas
	GasKeccak256Word = params.Keccak256WordGas
)

// GasMeter tracks the remaining gas budget of a single run.
type GasMeter struct {
	limit     uint64
	remaining uint64
}

// NewGasMeter returns a meter holding the full budget.
func NewGasMeter(limit uint64) *GasMeter {
	return &GasMeter{limit: limit, remaining: limit}
}

// Charge deducts amount from the budget. If the budget cannot cover it,
// nothing is deducted and ErrOutOfGas is returned.
func (g *GasMeter) Charge(amount uint64) error {
	if g.remaining < amount {
		return fmt.Errorf("%w: have %d, want %d", ErrOutOfGas, g.remaining, amount)
	}
	g.remaining -= amount
	return nil
}

// Remaining returns the unspent gas.
func (g *GasMeter) Remaining() uint64 { return g.remaining }

// Used returns the gas consumed so far.
func (g *GasMeter) Used() uint64 { return g.limit - g.remaining }

// Limit returns the initial budget.
func (g *GasMeter) Limit() uint64 { return g.limit }
