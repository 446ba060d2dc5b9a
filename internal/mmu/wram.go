package mmu

import "github.com/gamelin-emu/gamelin/internal/ram"

// WRAM is the 8 KiB of work RAM mapped at 0xC000 - 0xDFFF, which
// is mirrored by the echo RAM at 0xE000 - 0xFDFF.
type WRAM struct {
	*ram.RAM
}

func NewWRAM() *WRAM {
	return &WRAM{RAM: ram.NewRAM(0x2000)}
}

// Read reads from the work RAM, or its echo.
func (w *WRAM) Read(addr uint16) uint8 {
	return w.RAM.Read(addr & 0x1FFF)
}

// Write writes to the work RAM, or its echo.
func (w *WRAM) Write(addr uint16, v uint8) {
	w.RAM.Write(addr&0x1FFF, v)
}
