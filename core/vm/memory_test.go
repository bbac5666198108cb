package vm

import (
	"bytes"
	"testing"
)

func TestMemoryResize(t *testing.T) {
	mem := NewMemory()
	if mem.Len() != 0 {
		t.Fatalf("initial Len() = %d, want 0", mem.Len())
	}
	mem.Resize(64)
	if mem.Len() != 64 {
		t.Fatalf("after Resize(64), Len() = %d, want 64", mem.Len())
	}
	// Resize to smaller should not shrink
	mem.Resize(32)
	if mem.Len() != 64 {
		t.Fatalf("after Resize(32), Len() = %d, want 64", mem.Len())
	}
}

func TestMemoryStore8SingleByte(t *testing.T) {
	mem := NewMemory()
	mem.Store8(5, NewWord(0x1ff))

	if mem.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", mem.Len())
	}
	want := []byte{0, 0, 0, 0, 0, 0xff}
	if got := mem.Data(); !bytes.Equal(got, want) {
		t.Fatalf("Data() = %x, want %x", got, want)
	}

	// Overwriting a byte inside a stored word touches nothing else.
	mem.Store32(0, maxWord)
	mem.Store8(10, Word{})
	data := mem.Data()
	for i, b := range data {
		want := byte(0xff)
		if i == 10 {
			want = 0
		}
		if b != want {
			t.Fatalf("byte %d = %#x, want %#x", i, b, want)
		}
	}
}

func TestMemoryStore32(t *testing.T) {
	mem := NewMemory()
	mem.Store32(1, NewWord(0xff))
	if mem.Len() != 33 {
		t.Fatalf("Len() = %d, want 33", mem.Len())
	}
	data := mem.Data()
	if data[32] != 0xff {
		t.Fatalf("byte 32 = %#x, want 0xff", data[32])
	}
	for i := 0; i < 32; i++ {
		if data[i] != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, data[i])
		}
	}
	if got := mem.Load32(1); got != NewWord(0xff) {
		t.Fatalf("Load32(1) = %v, want 0xff", got.Hex())
	}
}

func TestMemoryZeroBeforeWrite(t *testing.T) {
	mem := NewMemory()
	if got := mem.Load32(100); !got.IsZero() {
		t.Fatalf("Load32 of untouched memory = %v, want 0", got.Hex())
	}
	if mem.Len() != 132 {
		t.Fatalf("Len() = %d, want 132", mem.Len())
	}
	if got := mem.Get(0, 132); !bytes.Equal(got, make([]byte, 132)) {
		t.Fatalf("Get() of untouched memory is not zero: %x", got)
	}
}

func TestMemoryGrowthPreserves(t *testing.T) {
	mem := NewMemory()
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	mem.Set(10, uint64(len(data)), data)
	mem.Store32(200, maxWord)

	if got := mem.Get(10, uint64(len(data))); !bytes.Equal(got, data) {
		t.Fatalf("Get() after growth = %x, want %x", got, data)
	}
	if mem.Len() != 232 {
		t.Fatalf("Len() = %d, want 232", mem.Len())
	}
}

func TestMemoryGetIsCopy(t *testing.T) {
	mem := NewMemory()
	mem.Set(0, 2, []byte{1, 2})
	got := mem.Get(0, 2)
	got[0] = 9
	if b := mem.Get(0, 1); b[0] != 1 {
		t.Fatalf("modifying Get() result changed memory to %#x", b[0])
	}
	if mem.Get(0, 0) != nil {
		t.Fatal("Get with size 0 should return nil")
	}
}

func TestMemoryOffsetOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Store32 with an overflowing offset did not panic")
		}
	}()
	mem := NewMemory()
	mem.Store32(^uint64(0)-8, Word{})
}

func TestToWordSize(t *testing.T) {
	tests := []struct {
		size, want uint64
	}{
		{0, 0}, {1, 1}, {31, 1}, {32, 1}, {33, 2}, {64, 2},
		{^uint64(0), ^uint64(0)/32 + 1},
	}
	for _, tt := range tests {
		if got := ToWordSize(tt.size); got != tt.want {
			t.Fatalf("ToWordSize(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestQuadraticMemoryGas(t *testing.T) {
	tests := []struct {
		cur, next uint64
		want      uint64
	}{
		{0, 0, 0},
		{0, 1, 3},
		{0, 32, 3},
		{0, 33, 6},
		{32, 64, 3},
		{64, 32, 0},
		{0, 1024, 32*3 + 32*32/512},
		{1024, 2048, (64*3 + 64*64/512) - (32*3 + 32*32/512)},
	}
	for _, tt := range tests {
		got, err := QuadraticMemoryGas(tt.cur, tt.next)
		if err != nil {
			t.Fatalf("QuadraticMemoryGas(%d, %d) error: %v", tt.cur, tt.next, err)
		}
		if got != tt.want {
			t.Fatalf("QuadraticMemoryGas(%d, %d) = %d, want %d", tt.cur, tt.next, got, tt.want)
		}
	}
	if _, err := QuadraticMemoryGas(0, maxMemoryWordSize+1); err == nil {
		t.Fatal("QuadraticMemoryGas past the maximum size returned no error")
	}
}
