package cartridge

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildROM returns a ROM image with the given header bytes, where the
// first byte of every bank holds the bank number.
func buildROM(kind Type, romSize, ramSize uint8) []byte {
	banks := 2 << romSize
	rom := make([]byte, banks*romBankSize)
	for i := 0; i < banks; i++ {
		rom[i*romBankSize] = uint8(i)
	}
	copy(rom[titleStart:], "GAMELINTESTGAME")
	rom[kindAddress] = uint8(kind)
	rom[romSizeAddress] = romSize
	rom[ramSizeAddress] = ramSize
	rom[destinationAddress] = 0x01
	return rom
}

type memoryStore map[string][]byte

func (m memoryStore) LoadRAM(key string) ([]byte, error) {
	return m[key], nil
}

func (m memoryStore) SaveRAM(key string, data []byte) error {
	m[key] = append([]byte(nil), data...)
	return nil
}

func TestNewSelectsController(t *testing.T) {
	tests := []struct {
		kind       Type
		controller bool
	}{
		{ROM, false},
		{MBC1, true},
		{MBC1RAMBATT, true},
		{MBC3TIMERBATT, true},
		{MBC3RAMBATT, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			c, err := New(buildROM(tt.kind, 0, 0), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.controller, c.HasController())
			assert.Equal(t, 1, c.ROMBank())
		})
	}
}

func TestNewRejectsBadImages(t *testing.T) {
	t.Run("controller", func(t *testing.T) {
		for _, kind := range []uint8{0x05, 0x19, 0xFF} {
			_, err := New(buildROM(Type(kind), 0, 0), nil)
			assert.True(t, errors.Is(err, ErrUnsupportedController), "kind %02X: %v", kind, err)
		}
	})
	t.Run("ram size", func(t *testing.T) {
		_, err := New(buildROM(MBC1, 0, 0x07), nil)
		assert.True(t, errors.Is(err, ErrUnsupportedRAMSize))
	})
	t.Run("too small", func(t *testing.T) {
		rom := buildROM(MBC1, 2, 0)
		_, err := New(rom[:0x8000], nil)
		assert.True(t, errors.Is(err, ErrROMTooSmall))

		_, err = New(rom[:0x100], nil)
		assert.True(t, errors.Is(err, ErrROMTooSmall))
	})
}

func TestHeader(t *testing.T) {
	rom := buildROM(MBC3RAMBATT, 1, 3)
	rom[cgbFlagAddress] = 0x80

	h, err := ParseHeader(rom)
	require.NoError(t, err)
	assert.Equal(t, 4, h.ROMBanks)
	assert.Equal(t, 4, h.RAMBanks)
	assert.True(t, h.SupportsCGB)
	assert.False(t, h.RequiresCGB)
	assert.Equal(t, "GAMELINTEST", h.Title)
	assert.Equal(t, "GAMELINTESTGAME", h.ExtendedTitle)

	rom[cgbFlagAddress] = cgbOnly
	h, err = ParseHeader(rom)
	require.NoError(t, err)
	assert.True(t, h.RequiresCGB)
	assert.Equal(t, "CGB", h.Hardware())
}

func TestHeaderChecksum(t *testing.T) {
	rom := buildROM(ROM, 0, 0)
	var x uint8
	for i := titleStart; i < checksumAddress; i++ {
		x = x - rom[i] - 1
	}
	rom[checksumAddress] = x

	h, err := ParseHeader(rom)
	require.NoError(t, err)
	assert.True(t, h.ValidChecksum())

	rom[checksumAddress]++
	h, err = ParseHeader(rom)
	require.NoError(t, err)
	assert.False(t, h.ValidChecksum())
}

func TestTitleStopsAtNUL(t *testing.T) {
	rom := buildROM(ROM, 0, 0)
	copy(rom[titleStart:], "TETRIS\x00\x00\x00\x00\x00\x00\x00\x00\x00")

	c, err := New(rom, nil)
	require.NoError(t, err)
	assert.Equal(t, "TETRIS", c.Title())
	assert.Equal(t, "TETRIS", c.ExtendedTitle())
	assert.Equal(t, "TETRIS1", c.SaveKey())
}

func TestMBC1ROMBankNeverZero(t *testing.T) {
	for size := uint8(0); size <= 6; size++ {
		c, err := New(buildROM(MBC1, size, 0), nil)
		require.NoError(t, err)

		for _, addr := range []uint16{0x2000, 0x2ABC, 0x3FFF} {
			c.Write(addr, 0x00)
			assert.Equal(t, 1, c.ROMBank(), "size %d", size)
			assert.Equal(t, uint8(1), c.Read(0x4000), "size %d", size)
		}
	}
}

func TestMBC1ROMBanking(t *testing.T) {
	c, err := New(buildROM(MBC1, 3, 0), nil) // 16 banks
	require.NoError(t, err)

	c.Write(0x2000, 0x05)
	assert.Equal(t, uint8(5), c.Read(0x4000))
	assert.Equal(t, uint8(0), c.Read(0x0000), "bank 0 is fixed")

	// wraps around the bank count
	c.Write(0x2000, 0x13)
	assert.Equal(t, 3, c.ROMBank())
}

func TestMBC1ExtendedROMMode(t *testing.T) {
	c, err := New(buildROM(MBC1, 5, 0), nil) // 64 banks
	require.NoError(t, err)

	c.Write(0x4000, 0x01)
	c.Write(0x2000, 0x02)
	assert.Equal(t, 34, c.ROMBank())
	assert.Equal(t, uint8(34), c.Read(0x4000))

	// RAM banking mode drops the upper bits
	c.Write(0x6000, 0x01)
	assert.Equal(t, 2, c.ROMBank())
}

func TestMBC1RAMBanking(t *testing.T) {
	c, err := New(buildROM(MBC1RAMBATT, 2, 3), nil) // 4 RAM banks
	require.NoError(t, err)

	assert.Equal(t, uint8(0xFF), c.Read(0xA000), "disabled RAM reads open bus")
	c.Write(0xA000, 0x12)
	c.Write(0x0000, 0x0A)
	assert.Equal(t, uint8(0x00), c.Read(0xA000), "write while disabled is dropped")

	c.Write(0xA000, 0x11)
	c.Write(0x6000, 0x01)
	c.Write(0x4000, 0x02)
	assert.Equal(t, 2, c.RAMBank())
	c.Write(0xA000, 0x22)
	assert.Equal(t, uint8(0x22), c.Read(0xA000))

	c.Write(0x4000, 0x00)
	assert.Equal(t, uint8(0x11), c.Read(0xA000))

	c.Write(0x0000, 0x00)
	assert.Equal(t, uint8(0xFF), c.Read(0xA000))
}

func TestMBC3Banking(t *testing.T) {
	c, err := New(buildROM(MBC3RAMBATT, 6, 3), nil) // 128 banks
	require.NoError(t, err)

	c.Write(0x2000, 0x45)
	assert.Equal(t, uint8(0x45), c.Read(0x4000))
	c.Write(0x2000, 0x00)
	assert.Equal(t, 1, c.ROMBank())

	c.Write(0x0000, 0x0A)
	c.Write(0x4000, 0x03)
	c.Write(0xBFFF, 0x99)
	assert.Equal(t, 3, c.RAMBank())
	assert.Equal(t, uint8(0x99), c.RAM()[3*ramBankSize+0x1FFF])
}

func TestRAMPersistence(t *testing.T) {
	store := memoryStore{}
	rom := buildROM(MBC1RAMBATT, 0, 2)

	c, err := New(rom, store)
	require.NoError(t, err)
	assert.Len(t, c.RAM(), ramBankSize)

	c.Write(0x0000, 0x0A)
	c.Write(0xA010, 0x42)
	require.NoError(t, c.Save(store))
	assert.Contains(t, store, "GAMELINTESTGAME1")

	c, err = New(rom, store)
	require.NoError(t, err)
	c.Write(0x0000, 0x0A)
	assert.Equal(t, uint8(0x42), c.Read(0xA010))
}

func TestSaveWithoutRAM(t *testing.T) {
	store := memoryStore{}
	c, err := New(buildROM(MBC1, 0, 0), store)
	require.NoError(t, err)
	require.NoError(t, c.Save(store))
	assert.Empty(t, store)
}
