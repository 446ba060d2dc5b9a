package cartridge

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no MBC, so its external RAM can never be enabled.
type ROMCartridge struct {
	*memoryBankedCartridge
}

// newROMCartridge returns a new ROM cartridge.
func newROMCartridge(base *memoryBankedCartridge) *ROMCartridge {
	return &ROMCartridge{memoryBankedCartridge: base}
}

// HasController returns false, writes to the ROM area go nowhere.
func (r *ROMCartridge) HasController() bool {
	return false
}
