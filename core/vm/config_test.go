package vm

import (
	"errors"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.StackLimit != 1024 || cfg.MaxMemory != 32<<20 {
		t.Fatalf("defaults = %d/%d, want 1024/%d", cfg.StackLimit, cfg.MaxMemory, 32<<20)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero stack limit", func(c *Config) { c.StackLimit = 0 }},
		{"negative stack limit", func(c *Config) { c.StackLimit = -1 }},
		{"zero max memory", func(c *Config) { c.MaxMemory = 0 }},
		{"max memory too large", func(c *Config) { c.MaxMemory = ^uint64(0) }},
		{"no memory gas", func(c *Config) { c.MemoryGas = nil }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: Validate() = %v, want %v", tt.name, err, ErrInvalidConfig)
		}
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{StackLimit: 8}.withDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if cfg.StackLimit != 8 {
		t.Fatalf("StackLimit = %d, want 8", cfg.StackLimit)
	}
	if cfg.MaxMemory != DefaultMaxMemory || cfg.Logger == nil {
		t.Fatal("zero fields were not filled")
	}
}
