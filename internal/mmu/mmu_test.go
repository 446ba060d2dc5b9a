package mmu

import (
	"bytes"
	"testing"

	"github.com/gamelin-emu/gamelin/internal/boot"
	"github.com/gamelin-emu/gamelin/internal/cartridge"
	"github.com/gamelin-emu/gamelin/internal/interrupts"
	"github.com/gamelin-emu/gamelin/internal/types"
	"github.com/gamelin-emu/gamelin/pkg/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMMU(t *testing.T, kind cartridge.Type) (*MMU, *bytes.Buffer) {
	t.Helper()

	rom := make([]byte, 0x10000)
	for bank := 0; bank < 4; bank++ {
		rom[bank*0x4000] = uint8(bank)
	}
	copy(rom[0x134:], "MMUTEST")
	rom[0x147] = uint8(kind)
	rom[0x148] = 1 // 4 banks
	cart, err := cartridge.New(rom, nil)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	m := NewMMU(interrupts.NewService(), log.NewWithWriter(buf, logrus.InfoLevel))
	m.LoadCartridge(cart)
	return m, buf
}

type register struct {
	value  uint8
	writes int
}

func (r *register) Read(uint16) uint8 { return r.value }

func (r *register) Write(_ uint16, v uint8) {
	r.value = v
	r.writes++
}

func TestEchoRAM(t *testing.T) {
	m, _ := newTestMMU(t, cartridge.ROM)

	m.Write(0xC123, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0xE123))

	m.Write(0xFDFF, 0x24)
	assert.Equal(t, uint8(0x24), m.Read(0xDDFF))
}

func TestUnusableRegion(t *testing.T) {
	m, _ := newTestMMU(t, cartridge.ROM)

	for addr := uint16(0xFEA0); addr < 0xFF00; addr++ {
		m.Write(addr, 0xAB)
		assert.Equal(t, uint8(0), m.Read(addr))
	}
}

func TestRegions(t *testing.T) {
	m, _ := newTestMMU(t, cartridge.ROM)

	for _, addr := range []uint16{0x8000, 0x9FFF, 0xC000, 0xFE00, 0xFE9F, 0xFF80, 0xFFFE} {
		m.Write(addr, uint8(addr))
		assert.Equal(t, uint8(addr), m.Read(addr), "%04X", addr)
	}
	assert.Equal(t, uint8(0), m.Read(0x0000))
	assert.Equal(t, uint8(1), m.Read(0x4000))
}

func TestWriteOnlyRegister(t *testing.T) {
	m, logs := newTestMMU(t, cartridge.ROM)

	m.Write(types.BGP, 0xE4)
	assert.Equal(t, uint8(0xFF), m.Read(types.BGP))
	assert.Equal(t, uint8(0xE4), m.ReadAny(types.BGP))
	assert.Contains(t, logs.String(), "write-only")
}

func TestReadOnlyRegister(t *testing.T) {
	m, logs := newTestMMU(t, cartridge.ROM)

	m.WriteAny(types.LY, 0x90)
	m.Write(types.LY, 0x00)
	assert.Equal(t, uint8(0x90), m.Read(types.LY))
	assert.Contains(t, logs.String(), "read-only")
}

func TestROMWrites(t *testing.T) {
	t.Run("no controller", func(t *testing.T) {
		m, logs := newTestMMU(t, cartridge.ROM)
		m.Write(0x2000, 0x02)
		assert.Equal(t, uint8(1), m.Read(0x4000))
		assert.Equal(t, uint8(0), m.Read(0x2000))
		assert.Contains(t, logs.String(), "ROM address 2000")
	})
	t.Run("MBC1", func(t *testing.T) {
		m, _ := newTestMMU(t, cartridge.MBC1)
		m.Write(0x2000, 0x02)
		assert.Equal(t, uint8(2), m.Read(0x4000))
		assert.Equal(t, 2, m.Cart.ROMBank())
	})
}

func TestNoCartridge(t *testing.T) {
	m := NewMMU(interrupts.NewService(), nil)
	assert.Equal(t, uint8(0xFF), m.Read(0x0100))
	assert.Equal(t, uint8(0xFF), m.Read(0xA000))
	m.Write(0x2000, 0x01)
}

func TestBootROM(t *testing.T) {
	bootROM := make([]byte, boot.Size)
	for i := range bootROM {
		bootROM[i] = 0xBB
	}

	t.Run("invalid", func(t *testing.T) {
		m, _ := newTestMMU(t, cartridge.ROM)
		err := m.SetBootROM(make([]byte, 100))
		assert.True(t, errors.Is(err, boot.ErrInvalidBootROM))
		assert.False(t, m.BootROMActive())
	})

	for name, addr := range map[string]uint16{"boot switch": types.BootSwitch, "BDIS": types.BDIS} {
		t.Run(name, func(t *testing.T) {
			m, _ := newTestMMU(t, cartridge.ROM)
			require.NoError(t, m.SetBootROM(bootROM))
			assert.True(t, m.BootROMActive())
			assert.Equal(t, uint8(0xBB), m.Read(0x0000))
			assert.Equal(t, uint8(0xBB), m.Read(0x00FF))
			assert.Equal(t, uint8(0x00), m.Read(0x0100))

			m.Write(addr, 0x01)
			assert.False(t, m.BootROMActive())
			assert.Equal(t, uint8(0x00), m.Read(0x0000))

			m.Reset()
			assert.True(t, m.BootROMActive())
		})
	}
}

func TestInterruptRegisters(t *testing.T) {
	m, _ := newTestMMU(t, cartridge.ROM)

	m.Write(types.IF, 0xFF)
	assert.Equal(t, uint8(0x1F), m.IRQ.Flag)
	assert.Equal(t, uint8(0xFF), m.Read(types.IF))

	m.Write(types.IF, 0x00)
	m.RequestInterrupt(interrupts.Timer)
	assert.Equal(t, uint8(0xE4), m.Read(types.IF))

	m.Write(types.IE, 0x15)
	assert.Equal(t, uint8(0x15), m.Read(types.IE))
	assert.Equal(t, uint8(0x04), m.Interrupts().Pending())
}

func TestAttachDevice(t *testing.T) {
	m, _ := newTestMMU(t, cartridge.ROM)
	dev := &register{value: 0x5A}
	m.AttachDevice(dev, types.TIMA, types.TMA)

	assert.Equal(t, uint8(0x5A), m.Read(types.TIMA))
	m.Write(types.TMA, 0x11)
	assert.Equal(t, 1, dev.writes)
	assert.Equal(t, uint8(0x11), m.Read(types.TIMA))

	// registers without a device are stored by the bus
	m.Write(types.SB, 0x77)
	assert.Equal(t, uint8(0x77), m.Read(types.SB))

	assert.Panics(t, func() { m.AttachDevice(dev, 0xFF80) })
}

func TestReset(t *testing.T) {
	m, _ := newTestMMU(t, cartridge.ROM)
	m.Write(0xC000, 0x01)
	m.Write(0xFF80, 0x02)
	m.Write(types.SB, 0x03)

	m.Reset()
	assert.Equal(t, uint8(0), m.Read(0xC000))
	assert.Equal(t, uint8(0), m.Read(0xFF80))
	assert.Equal(t, uint8(0), m.Read(types.SB))
	assert.False(t, m.BootROMActive())
}
