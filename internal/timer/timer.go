// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"fmt"

	"github.com/gamelin-emu/gamelin/internal/interrupts"
	"github.com/gamelin-emu/gamelin/internal/types"
)

// overflowDelay is the number of cycles between TIMA
// overflowing and it being reloaded from TMA.
const overflowDelay = 4

// periods maps TAC bits 0-1 to the number of cycles
// between TIMA increments.
var periods = [4]int{1024, 16, 64, 256}

// InterruptRequester is used by the timer to raise the
// timer interrupt, once TIMA has been reloaded.
type InterruptRequester interface {
	RequestInterrupt(kind interrupts.Kind)
}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
type Controller struct {
	divider uint16 // the upper 8 bits are visible as types.DIV

	tima uint8
	tma  uint8
	tac  uint8

	running bool
	period  int
	// counter accumulates cycles towards the next TIMA increment
	counter int
	// interruptIn counts down the cycles until TIMA is reloaded,
	// 0 when no reload is pending.
	interruptIn int

	irq InterruptRequester
}

// NewController returns a new timer controller.
func NewController(irq InterruptRequester) *Controller {
	c := &Controller{irq: irq}
	c.Reset()
	return c
}

// Reset returns the timer to its power on state.
func (c *Controller) Reset() {
	c.divider = 0
	c.tima = 0
	c.tma = 0
	c.tac = 0
	c.running = false
	c.period = periods[0]
	c.counter = 0
	c.interruptIn = 0
}

// Step advances the timer by the given number of T-cycles.
func (c *Controller) Step(cycles int) {
	c.divider += uint16(cycles)

	if c.interruptIn > 0 {
		c.interruptIn -= cycles
		if c.interruptIn <= 0 {
			c.interruptIn = 0
			c.tima = c.tma
			c.irq.RequestInterrupt(interrupts.Timer)
		}
	}

	if c.running {
		c.counter += cycles
		for c.counter >= c.period {
			c.counter -= c.period
			c.tima++
			if c.tima == 0 {
				c.interruptIn = overflowDelay
			}
		}
	}
}

// Divider returns the full 16-bit internal divider.
func (c *Controller) Divider() uint16 {
	return c.divider
}

// Read implements the mmu.IODevice interface.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return uint8(c.divider >> 8)
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	case types.TAC:
		return c.tac | 0xF8
	}
	panic(fmt.Sprintf("timer: illegal read from %04X", address))
}

// Write implements the mmu.IODevice interface.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		// any write resets the divider
		c.divider = 0
		c.counter = 0
	case types.TIMA:
		// writing TIMA while a reload is pending cancels the reload
		c.tima = value
		c.interruptIn = 0
	case types.TMA:
		c.tma = value
	case types.TAC:
		c.tac = value & 0x07
		c.running = c.tac&types.Bit2 != 0
		c.period = periods[c.tac&0x03]
	default:
		panic(fmt.Sprintf("timer: illegal write to %04X", address))
	}
}
