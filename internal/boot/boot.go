// Package boot provides a boot ROM implementation for the Game Boy. Whilst
// this package is not strictly required for the emulator to function, it
// can be used to emulate the boot process of the Game Boy.
package boot

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/pkg/errors"
)

// Size is the size of a DMG boot ROM.
const Size = 256

// ErrInvalidBootROM is returned when a boot ROM is not Size bytes long.
var ErrInvalidBootROM = errors.New("invalid boot ROM")

// ROM represents a boot ROM for the Game Boy. When the Game Boy first
// powers on, the boot ROM is mapped to memory addresses 0x0000 - 0x00FF.
//
// The boot ROM performs a series of tasks, such as initializing the
// hardware, setting the stack pointer, scrolling the Nintendo logo, etc.
//
// Once the boot ROM has completed its tasks, it is unmapped from memory
// (by writing to the types.BDIS register, or to types.BootSwitch), and
// the cartridge is mapped over the boot ROM.
type ROM struct {
	raw      []byte // the raw boot rom
	checksum string // the MD5 checksum of the boot rom
}

// LoadBootROM copies b into a new ROM, calculating its MD5 checksum.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, errors.Wrapf(ErrInvalidBootROM, "length %d", len(b))
	}

	bootChecksum := md5.Sum(b)
	return &ROM{
		raw:      append([]byte(nil), b...),
		checksum: hex.EncodeToString(bootChecksum[:]),
	}, nil
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the model of the boot rom. The model
// is determined by the checksum of the boot rom.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

// knownBootROMChecksums is a map of known boot rom checksums,
// with the key being the checksum, and the value being the
// model of the boot rom.
var knownBootROMChecksums = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
	SGB:  "Super Game Boy",
	SGB2: "Super Game Boy 2",
}

const (
	// DMG0 is the checksum of the DMG early boot ROM, found in
	// very early DMG units. On a boot failure it flashes the
	// screen rather than hanging after the Nintendo logo.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the DMG boot rom, which is
	// the most common boot ROM found in the original DMG-01
	// models.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB is the checksum of the MGB boot ROM, which differs
	// only by a single byte from the DMG boot ROM, loading
	// the value 0xFF into the A register, rather than 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB is the checksum of the SGB boot ROM.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 is the checksum of the SGB2 boot ROM, which like the
	// MGB loads 0xFF into the A register.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)
