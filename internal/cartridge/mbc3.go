package cartridge

// MemoryBankedCartridge3 represents a MBC3 cartridge. This cartridge type
// has up to 128 ROM banks, selected by a single 7 bit register, and up to
// 4 RAM banks. The real time clock is not emulated.
type MemoryBankedCartridge3 struct {
	*memoryBankedCartridge
}

// newMemoryBankedCartridge3 returns a new MemoryBankedCartridge3 cartridge.
func newMemoryBankedCartridge3(base *memoryBankedCartridge) *MemoryBankedCartridge3 {
	return &MemoryBankedCartridge3{memoryBankedCartridge: base}
}

func (m *MemoryBankedCartridge3) HasController() bool {
	return true
}

func (m *MemoryBankedCartridge3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.setROMBank(int(value & 0x7F))
	case address < 0x6000:
		m.setRAMBank(int(value & 0x03))
	case address < 0x8000:
		// clock latch
	default:
		m.memoryBankedCartridge.Write(address, value)
	}
}
