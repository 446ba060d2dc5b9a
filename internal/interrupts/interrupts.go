// Package interrupts implements the interrupt flag (IF) and
// interrupt enable (IE) registers of the Game Boy.
package interrupts

import (
	"fmt"

	"github.com/gamelin-emu/gamelin/internal/types"
)

// Kind is one of the five interrupt sources. The value of a
// Kind is its bit position in IF and IE, where a lower
// position has a higher priority.
type Kind uint8

const (
	// VBlank is requested every time the PPU enters
	// its vertical blanking period.
	VBlank Kind = iota
	// LCDC is requested by the LCD STAT register when
	// certain conditions are met.
	LCDC
	// Timer is requested when TIMA overflows, 4 cycles
	// after the overflow occurred.
	Timer
	// Serial is requested when a serial transfer is
	// completed.
	Serial
	// Joypad is requested when any of the P1 input lines
	// go from high to low.
	Joypad
)

// Kinds lists every interrupt in priority order.
var Kinds = [...]Kind{VBlank, LCDC, Timer, Serial, Joypad}

// Position returns the bit position of the interrupt in
// the IF and IE registers.
func (k Kind) Position() uint8 {
	return uint8(k)
}

// Mask returns the IF/IE bit of the interrupt.
func (k Kind) Mask() uint8 {
	return 1 << k
}

// Vector returns the address of the interrupt's service routine.
func (k Kind) Vector() uint16 {
	return 0x0040 + uint16(k)*8
}

func (k Kind) String() string {
	switch k {
	case VBlank:
		return "VBlank"
	case LCDC:
		return "LCDC"
	case Timer:
		return "Timer"
	case Serial:
		return "Serial"
	case Joypad:
		return "Joypad"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Service is the interrupt service, used to request
// interrupts and to find the next interrupt to handle.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the IME is set, the CPU will jump to the interrupt
// vector, and the corresponding bit in the Flag register
// will be cleared.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// Read implements the mmu.IODevice interface for IF and IE.
func (s *Service) Read(address uint16) uint8 {
	switch address {
	case types.IF:
		return s.Flag | 0xE0 // the upper 3 bits are always set
	case types.IE:
		return s.Enable
	}
	panic(fmt.Sprintf("interrupts: illegal read from %04X", address))
}

// Write implements the mmu.IODevice interface for IF and IE.
func (s *Service) Write(address uint16, value uint8) {
	switch address {
	case types.IF:
		s.Flag = value & 0x1F // only the first 5 bits are used
	case types.IE:
		s.Enable = value
	default:
		panic(fmt.Sprintf("interrupts: illegal write to %04X", address))
	}
}

// Pending returns the interrupts that are both requested
// and enabled.
func (s *Service) Pending() uint8 {
	return s.Enable & s.Flag & 0x1F
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Pending() != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(kind Kind) {
	s.Flag |= kind.Mask()
}

// Acknowledge clears the Flag bit of the specified interrupt.
func (s *Service) Acknowledge(kind Kind) {
	s.Flag &^= kind.Mask()
}

// Next returns the highest priority interrupt that is
// requested and enabled. ok is false when nothing is pending.
func (s *Service) Next() (kind Kind, ok bool) {
	pending := s.Pending()
	for _, k := range Kinds {
		if pending&k.Mask() != 0 {
			return k, true
		}
	}
	return 0, false
}

// Reset clears both registers.
func (s *Service) Reset() {
	s.Flag = 0
	s.Enable = 0
}
