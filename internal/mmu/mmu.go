// Package mmu provides a memory management unit for the Game Boy. The
// MMU owns the internal RAM regions, and delegates the cartridge regions
// and the hardware registers to the components that serve them.
package mmu

import (
	"fmt"

	"github.com/gamelin-emu/gamelin/internal/boot"
	"github.com/gamelin-emu/gamelin/internal/cartridge"
	"github.com/gamelin-emu/gamelin/internal/interrupts"
	"github.com/gamelin-emu/gamelin/internal/ram"
	"github.com/gamelin-emu/gamelin/internal/types"
	"github.com/gamelin-emu/gamelin/pkg/log"
)

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the other components through the IODevice interface.
type MMU struct {
	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	vRAM *ram.RAM

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *WRAM

	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	oam *ram.RAM

	// 0xFF00 - 0xFF7F - I/O Registers
	registers HardwareRegisters
	io        [0x80]uint8

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM *ram.RAM

	// 0xFF0F, 0xFFFF - interrupt flag and enable registers
	IRQ *interrupts.Service

	Log log.Logger
}

// NewMMU returns a new MMU without a cartridge. Reads from the
// cartridge regions return 0xFF until one is loaded.
func NewMMU(irq *interrupts.Service, logger log.Logger) *MMU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &MMU{
		bootROMDone: true,
		vRAM:        ram.NewRAM(0x2000),
		wRAM:        NewWRAM(),
		oam:         ram.NewRAM(0xA0),
		zRAM:        ram.NewRAM(0x7F),
		IRQ:         irq,
		Log:         logger,
	}
}

// SetBootROM maps rom over 0x0000 - 0x00FF until it is disabled by the
// running program.
func (m *MMU) SetBootROM(rom []byte) error {
	b, err := boot.LoadBootROM(rom)
	if err != nil {
		return err
	}
	m.bootROM = b
	m.bootROMDone = false
	m.Log.Debugf("mmu: boot ROM loaded (%s)", b.Model())
	return nil
}

// BootROMActive reports whether the boot ROM is currently mapped.
func (m *MMU) BootROMActive() bool {
	return m.bootROM != nil && !m.bootROMDone
}

// DisableBootROM unmaps the boot ROM, exposing the cartridge ROM.
func (m *MMU) DisableBootROM() {
	m.bootROMDone = true
}

// LoadCartridge inserts cart into the cartridge slot.
func (m *MMU) LoadCartridge(cart cartridge.Cartridge) {
	m.Cart = cart
}

// AttachDevice maps dev to each of the given I/O register addresses.
func (m *MMU) AttachDevice(dev IODevice, addresses ...uint16) {
	m.registers.Attach(dev, addresses...)
}

// RequestInterrupt latches the given interrupt in the IF register.
func (m *MMU) RequestInterrupt(kind interrupts.Kind) {
	m.IRQ.Request(kind)
}

// Interrupts returns the interrupt service owning IF and IE.
func (m *MMU) Interrupts() *interrupts.Service {
	return m.IRQ
}

// Reset zeroes the internal RAM and remaps the boot ROM, if one was set.
// The cartridge and the attached devices are left as they are.
func (m *MMU) Reset() {
	m.vRAM.Reset()
	m.wRAM.Reset()
	m.oam.Reset()
	m.zRAM.Reset()
	m.io = [0x80]uint8{}
	m.bootROMDone = m.bootROM == nil
}

// Read returns the value at the given address as seen by the CPU.
// Write-only registers read back as 0xFF.
func (m *MMU) Read(address uint16) uint8 {
	if address == types.BGP {
		m.Log.Infof("mmu: read from write-only register %04X", address)
		return 0xFF
	}
	return m.ReadAny(address)
}

// Write writes the value to the given address on behalf of the CPU,
// discarding writes to read-only memory.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address == types.BootSwitch && m.BootROMActive():
		m.bootROMDone = true
		m.Log.Debugf("mmu: boot ROM disabled by write to %04X", address)
	case address < 0x8000:
		if m.Cart == nil || !m.Cart.HasController() {
			m.Log.Infof("mmu: discarded write %02X to ROM address %04X", value, address)
			return
		}
		m.Cart.Write(address, value)
	case address == types.LY:
		m.Log.Infof("mmu: discarded write %02X to read-only register %04X", value, address)
	default:
		m.WriteAny(address, value)
	}
}

// ReadAny returns the value at the given address without applying
// any of the CPU's access restrictions.
func (m *MMU) ReadAny(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.readCart(address)
	case address < 0xA000:
		return m.vRAM.Read(address & 0x1FFF)
	case address < 0xC000:
		return m.readCart(address)
	case address < 0xFE00:
		return m.wRAM.Read(address)
	case address < 0xFEA0:
		return m.oam.Read(address & 0xFF)
	case address < 0xFF00:
		return 0
	case address == types.IF:
		return m.IRQ.Read(address)
	case address < 0xFF80:
		if dev := m.registers.Device(address); dev != nil {
			return dev.Read(address)
		}
		return m.io[address&0x7F]
	case address < 0xFFFF:
		return m.zRAM.Read(address & 0x7F)
	case address == types.IE:
		return m.IRQ.Read(address)
	}
	panic(fmt.Sprintf("mmu: unmapped read from %04X", address))
}

// WriteAny writes the value to the given address without applying
// any of the CPU's access restrictions. The ROM image itself is never
// modified, writes to the ROM area reach the cartridge as they would
// on the bus.
func (m *MMU) WriteAny(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		if m.Cart != nil {
			m.Cart.Write(address, value)
		}
	case address < 0xA000:
		m.vRAM.Write(address&0x1FFF, value)
	case address < 0xC000:
		if m.Cart != nil {
			m.Cart.Write(address, value)
		}
	case address < 0xFE00:
		m.wRAM.Write(address, value)
	case address < 0xFEA0:
		m.oam.Write(address&0xFF, value)
	case address < 0xFF00:
		// unusable
	case address == types.IF:
		m.IRQ.Write(address, value)
	case address < 0xFF80:
		if address == types.BDIS {
			// any write to this register disables the boot rom
			m.bootROMDone = true
		}
		if dev := m.registers.Device(address); dev != nil {
			dev.Write(address, value)
			return
		}
		m.io[address&0x7F] = value
	case address < 0xFFFF:
		m.zRAM.Write(address&0x7F, value)
	case address == types.IE:
		m.IRQ.Write(address, value)
	default:
		panic(fmt.Sprintf("mmu: unmapped write to %04X", address))
	}
}

func (m *MMU) readCart(address uint16) uint8 {
	// handle the boot ROM (if enabled)
	if address < 0x100 && m.BootROMActive() {
		return m.bootROM.Read(address)
	}
	if m.Cart == nil {
		return 0xFF
	}
	return m.Cart.Read(address)
}
