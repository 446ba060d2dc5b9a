// Package cartridge provides the game cartridges understood by the
// emulator. A cartridge holds the game ROM and any external RAM, and
// translates bus addresses into its banked storage.
package cartridge

import (
	"strconv"

	"github.com/pkg/errors"
)

// Cartridge represents a game cartridge, as seen from the bus. It
// serves 0x0000-0x7FFF and 0xA000-0xBFFF.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	Header() *Header
	Title() string
	ExtendedTitle() string
	// SaveKey identifies the cartridge's RAM image in a RAMStore.
	SaveKey() string
	// HasController reports whether the cartridge has a bank controller
	// listening to writes in the ROM area.
	HasController() bool

	ROMBank() int
	RAMBank() int
	RAM() []byte

	// Save persists the external RAM, if the cartridge has any.
	Save(store RAMStore) error
}

// RAMStore persists the external RAM of cartridges between sessions.
type RAMStore interface {
	// LoadRAM returns the RAM image stored under key. A nil slice
	// and a nil error mean no image has been saved yet.
	LoadRAM(key string) ([]byte, error)
	SaveRAM(key string, data []byte) error
}

// New creates the cartridge described by the header of rom. The
// external RAM is loaded from store when the cartridge has any, store
// may be nil.
func New(rom []byte, store RAMStore) (Cartridge, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	if len(rom) < header.ROMBanks*romBankSize {
		return nil, errors.Wrapf(ErrROMTooSmall, "%d bytes for %d banks", len(rom), header.ROMBanks)
	}

	base := &memoryBankedCartridge{
		rom:     rom,
		romBank: 1,
		header:  header,
	}
	if err := base.loadRAM(store); err != nil {
		return nil, err
	}

	switch t := header.CartridgeType; {
	case t >= MBC1 && t <= MBC1RAMBATT:
		return newMemoryBankedCartridge1(base), nil
	case t >= MBC3TIMERBATT && t <= MBC3RAMBATT:
		return newMemoryBankedCartridge3(base), nil
	}
	return newROMCartridge(base), nil
}

// memoryBankedCartridge is the behaviour shared by every cartridge,
// a fixed bank 0, a switchable ROM bank and a switchable RAM bank.
type memoryBankedCartridge struct {
	rom, ram []byte
	romBank  int
	ramBank  int

	ramEnabled bool

	header *Header
}

func (m *memoryBankedCartridge) Header() *Header {
	return m.header
}

func (m *memoryBankedCartridge) Title() string {
	return m.header.Title
}

func (m *memoryBankedCartridge) ExtendedTitle() string {
	return m.header.ExtendedTitle
}

// SaveKey is the extended title followed by the destination code,
// printed as a signed decimal.
func (m *memoryBankedCartridge) SaveKey() string {
	return m.header.ExtendedTitle + strconv.Itoa(int(int8(m.header.Destination)))
}

func (m *memoryBankedCartridge) ROMBank() int {
	return m.romBank
}

func (m *memoryBankedCartridge) RAMBank() int {
	return m.ramBank
}

func (m *memoryBankedCartridge) RAM() []byte {
	return m.ram
}

func (m *memoryBankedCartridge) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address] // first bank is always fixed
	case address < 0x8000:
		return m.rom[int(address&0x3FFF)+m.romBank*romBankSize]
	case address >= 0xA000 && address < 0xC000:
		if m.ramAvailable() {
			return m.ram[int(address&0x1FFF)+m.ramBank*ramBankSize]
		}
	}
	return 0xFF
}

func (m *memoryBankedCartridge) Write(address uint16, value uint8) {
	if address >= 0xA000 && address < 0xC000 && m.ramAvailable() {
		m.ram[int(address&0x1FFF)+m.ramBank*ramBankSize] = value
	}
}

func (m *memoryBankedCartridge) ramAvailable() bool {
	return m.ramEnabled && len(m.ram) > 0
}

// setROMBank selects bank modulo the number of banks on the
// cartridge, never selecting bank 0.
func (m *memoryBankedCartridge) setROMBank(bank int) {
	m.romBank = bank % m.header.ROMBanks
	if m.romBank == 0 {
		m.romBank = 1
	}
}

// setRAMBank selects bank, wrapping around the banks present.
func (m *memoryBankedCartridge) setRAMBank(bank int) {
	if m.header.RAMBanks == 0 {
		m.ramBank = 0
		return
	}
	m.ramBank = bank % m.header.RAMBanks
}

func (m *memoryBankedCartridge) loadRAM(store RAMStore) error {
	m.ram = make([]byte, m.header.RAMBanks*ramBankSize)
	if store == nil || len(m.ram) == 0 {
		return nil
	}

	saved, err := store.LoadRAM(m.SaveKey())
	if err != nil {
		return errors.Wrapf(err, "loading RAM for %q", m.SaveKey())
	}
	copy(m.ram, saved)
	return nil
}

func (m *memoryBankedCartridge) Save(store RAMStore) error {
	if m.header.RAMBanks == 0 || store == nil {
		return nil
	}
	return store.SaveRAM(m.SaveKey(), m.ram)
}
