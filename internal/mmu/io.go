package mmu

import "fmt"

// IODevice is a memory mapped device, such as the timer or
// the APU. Devices receive the full address that was accessed.
type IODevice interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// HardwareRegisters maps the I/O registers to the devices that
// serve them. It is indexed by the address of the register
// ANDed with 0x007F.
type HardwareRegisters [0x80]IODevice

// Attach maps dev to each of the given addresses.
func (h *HardwareRegisters) Attach(dev IODevice, addresses ...uint16) {
	for _, addr := range addresses {
		if addr < 0xFF00 || addr > 0xFF7F {
			panic(fmt.Sprintf("mmu: %04X is not an I/O register", addr))
		}
		h[addr&0x007F] = dev
	}
}

// Device returns the device attached to address, or nil.
func (h *HardwareRegisters) Device(address uint16) IODevice {
	return h[address&0x007F]
}
