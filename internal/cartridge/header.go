package cartridge

import (
	"fmt"

	"github.com/pkg/errors"
)

// Offsets of the fields of the cartridge header.
const (
	titleStart         = 0x0134
	titleEnd           = 0x013E
	extendedTitleEnd   = 0x0142
	cgbFlagAddress     = 0x0143
	kindAddress        = 0x0147
	romSizeAddress     = 0x0148
	ramSizeAddress     = 0x0149
	destinationAddress = 0x014A
	checksumAddress    = 0x014D

	headerEnd = 0x0150
)

const (
	// cgbOnly is the value of the CGB flag for cartridges that
	// will not run on a DMG.
	cgbOnly = 0xC0

	romBankSize = 0x4000
	ramBankSize = 0x2000
)

// Type is the controller kind stored at 0x0147 of the header.
type Type uint8

const (
	ROM              Type = 0x00
	MBC1             Type = 0x01
	MBC1RAM          Type = 0x02
	MBC1RAMBATT      Type = 0x03
	MBC3TIMERBATT    Type = 0x0F
	MBC3TIMERRAMBATT Type = 0x10
	MBC3             Type = 0x11
	MBC3RAM          Type = 0x12
	MBC3RAMBATT      Type = 0x13
)

func (t Type) String() string {
	switch {
	case t == ROM:
		return "ROM"
	case t >= MBC1 && t <= MBC1RAMBATT:
		return "MBC1"
	case t >= MBC3TIMERBATT && t <= MBC3RAMBATT:
		return "MBC3"
	}
	return fmt.Sprintf("Type(%02X)", uint8(t))
}

// ramBanks maps the RAM size header byte to the number
// of 8 KiB RAM banks on the cartridge.
var ramBanks = map[uint8]int{
	0x00: 0,
	0x01: 0,
	0x02: 1,
	0x03: 4,
	0x04: 16,
	0x05: 8,
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x013E - Title of the game, NUL terminated.
	Title string
	// 0x0134-0x0142 - Title of the game including the manufacturer code,
	// used to tell apart games that share a short title.
	ExtendedTitle string

	// 0x0143 - bit 7 is set when the game supports the Colour Game Boy,
	// the whole byte is 0xC0 when it requires it.
	SupportsCGB bool
	RequiresCGB bool

	CartridgeType Type
	ROMBanks      int
	RAMBanks      int

	// 0x014A - Destination code, 0x00 for Japan and 0x01 for everywhere else.
	Destination uint8

	HeaderChecksum uint8
	checksum       uint8
}

// ParseHeader parses the header of the given ROM.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd {
		return nil, errors.Wrapf(ErrROMTooSmall, "%d bytes is shorter than the header", len(rom))
	}

	h := &Header{
		Title:          readTitle(rom, titleEnd),
		ExtendedTitle:  readTitle(rom, extendedTitleEnd),
		SupportsCGB:    rom[cgbFlagAddress]&0x80 != 0,
		RequiresCGB:    rom[cgbFlagAddress] == cgbOnly,
		CartridgeType:  Type(rom[kindAddress]),
		Destination:    rom[destinationAddress],
		HeaderChecksum: rom[checksumAddress],
	}

	switch {
	case h.CartridgeType == ROM:
	case h.CartridgeType >= MBC1 && h.CartridgeType <= MBC1RAMBATT:
	case h.CartridgeType >= MBC3TIMERBATT && h.CartridgeType <= MBC3RAMBATT:
	default:
		return nil, errors.Wrapf(ErrUnsupportedController, "kind %02X", rom[kindAddress])
	}

	// 32 KiB << n, i.e. 2 << n banks of 16 KiB
	if rom[romSizeAddress] > 8 {
		return nil, errors.Wrapf(ErrUnsupportedROMSize, "size byte %02X", rom[romSizeAddress])
	}
	h.ROMBanks = 2 << rom[romSizeAddress]

	ramCount, ok := ramBanks[rom[ramSizeAddress]]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedRAMSize, "size byte %02X", rom[ramSizeAddress])
	}
	h.RAMBanks = ramCount

	for _, b := range rom[titleStart:checksumAddress] {
		h.checksum = h.checksum - b - 1
	}

	return h, nil
}

// readTitle reads the ASCII title from 0x0134 up to and including
// end, stopping at the first NUL byte.
func readTitle(rom []byte, end int) string {
	title := make([]byte, 0, end-titleStart+1)
	for _, b := range rom[titleStart : end+1] {
		if b == 0 {
			break
		}
		title = append(title, b)
	}
	return string(title)
}

// ValidChecksum reports whether the header checksum stored at 0x014D
// matches the checksum computed over 0x0134-0x014C.
func (h *Header) ValidChecksum() bool {
	return h.checksum == h.HeaderChecksum
}

// Hardware returns the model the cartridge was made for.
func (h *Header) Hardware() string {
	switch {
	case h.RequiresCGB:
		return "CGB"
	case h.SupportsCGB:
		return "DMG/CGB"
	}
	return "DMG"
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB",
		h.Title, h.Hardware(), h.CartridgeType, h.ROMBanks*16, h.RAMBanks*8)
}
