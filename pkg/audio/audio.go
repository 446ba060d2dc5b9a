// Package audio provides sinks for the samples produced by the APU.
package audio

import (
	"sync"

	"github.com/gamelin-emu/gamelin/internal/apu"
)

// Buffer collects samples in memory. It is safe to read the
// samples from one goroutine while the emulator plays into it
// from another.
type Buffer struct {
	mu      sync.Mutex
	samples []int16
}

var _ apu.Output = (*Buffer)(nil)

// Play implements apu.Output.
func (b *Buffer) Play(left, right int16) {
	b.mu.Lock()
	b.samples = append(b.samples, left, right)
	b.mu.Unlock()
}

// Drain returns the interleaved samples played since the last
// call, and empties the buffer.
func (b *Buffer) Drain() []int16 {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.samples
	b.samples = nil
	return s
}

// Len returns the number of stereo frames buffered.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples) / 2
}
