package cartridge

// bankCount1MB is the bank count from which MBC1 routes its upper
// register into the ROM bank number.
const bankCount1MB = 64

// MemoryBankedCartridge1 represents a MBC1 cartridge. This cartridge type has
// up to 125 ROM banks, and up to 4 RAM banks.
type MemoryBankedCartridge1 struct {
	*memoryBankedCartridge

	// lower 5 bits of the ROM bank number, never 0
	lower uint8
	// 2 bit register used as the upper ROM bits or the RAM bank
	upper uint8
	// ramMode selects the RAM banking mode (true), or extended
	// ROM banking mode (false).
	ramMode bool
}

// newMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func newMemoryBankedCartridge1(base *memoryBankedCartridge) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		memoryBankedCartridge: base,
		lower:                 1,
	}
}

func (m *MemoryBankedCartridge1) HasController() bool {
	return true
}

// Write handles writes to the control registers in the ROM area, and
// writes to the external RAM.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.lower = value & 0x1F
		if m.lower == 0 {
			m.lower = 1
		}
		m.updateBanks()
	case address < 0x6000:
		m.upper = value & 0x03
		m.updateBanks()
	case address < 0x8000:
		m.ramMode = value&0x01 == 0x01
		m.updateBanks()
	default:
		m.memoryBankedCartridge.Write(address, value)
	}
}

func (m *MemoryBankedCartridge1) updateBanks() {
	bank := int(m.lower)
	if !m.ramMode && m.header.ROMBanks >= bankCount1MB {
		bank |= int(m.upper) << 5
	}
	m.setROMBank(bank)

	if m.ramMode && m.header.RAMBanks == 4 {
		m.setRAMBank(int(m.upper))
	} else {
		m.ramBank = 0
	}
}
