package vm

import (
	"fmt"

	"github.com/eth2030/stackvm/log"
)

// DefaultMaxMemory caps memory growth at 32 MiB unless configured
// otherwise.
const DefaultMaxMemory uint64 = 32 << 20

// Config holds the tunables of an interpreter run. Zero-valued fields are
// filled from DefaultConfig by New.
type Config struct {
	// StackLimit is the maximum stack depth.
	StackLimit int
	// MaxMemory is the largest memory size in bytes a run may grow to.
	// Growth past it fails the run with OutOfGas.
	MaxMemory uint64
	// MemoryGas prices memory growth.
	MemoryGas MemoryGasFunc

	Tracer Tracer      // optional per-step observer
	Logger *log.Logger // defaults to the "vm" module of log.Default()

	// DisableMetrics stops the run from updating the process-wide
	// interpreter metrics.
	DisableMetrics bool
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		StackLimit: DefaultStackLimit,
		MaxMemory:  DefaultMaxMemory,
		MemoryGas:  QuadraticMemoryGas,
	}
}

// Validate checks that c can drive a run.
func (c Config) Validate() error {
	if c.StackLimit <= 0 {
		return fmt.Errorf("%w: stack limit %d must be positive", ErrInvalidConfig, c.StackLimit)
	}
	if c.MaxMemory == 0 {
		return fmt.Errorf("%w: max memory must be positive", ErrInvalidConfig)
	}
	if c.MaxMemory > maxMemoryWordSize {
		return fmt.Errorf("%w: max memory %d exceeds %d", ErrInvalidConfig, c.MaxMemory, uint64(maxMemoryWordSize))
	}
	if c.MemoryGas == nil {
		return fmt.Errorf("%w: missing memory gas function", ErrInvalidConfig)
	}
	return nil
}

// withDefaults returns c with zero-valued fields replaced by defaults.
// Negative stack limits are left in place for Validate to reject.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.StackLimit == 0 {
		c.StackLimit = def.StackLimit
	}
	if c.MaxMemory == 0 {
		c.MaxMemory = def.MaxMemory
	}
	if c.MemoryGas == nil {
		c.MemoryGas = def.MemoryGas
	}
	if c.Logger == nil {
		c.Logger = log.Default().Module("vm")
	}
	return c
}
