// Package cpu implements the Sharp SM83 CPU of the Game Boy, along with
// the dispatch of interrupts latched by the other components.
package cpu

import (
	"github.com/gamelin-emu/gamelin/internal/interrupts"
)

// Bus is the memory the CPU executes from.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Clock is advanced by the CPU after every step, by the number of
// M-cycles the step took. It is responsible for driving the other
// components by the same amount.
type Clock interface {
	Advance(mCycles int)
}

// interruptCycles is the cost of dispatching an interrupt.
const interruptCycles = 5

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	ime     bool
	halt    bool
	haltBug bool

	bus   Bus
	clock Clock
	irq   *interrupts.Service
}

// New creates a new CPU executing from bus, advancing clock and
// servicing the interrupts latched in irq.
func New(bus Bus, clock Clock, irq *interrupts.Service) *CPU {
	c := &CPU{
		bus:   bus,
		clock: clock,
		irq:   irq,
	}
	c.Registers.initPairs()
	return c
}

// Reset returns the CPU to its power on state.
func (c *CPU) Reset() {
	c.PC = 0
	c.SP = 0
	c.ime = false
	c.halt = false
	c.haltBug = false
	c.Registers.reset()
}

// IME returns the interrupt master enable flag.
func (c *CPU) IME() bool {
	return c.ime
}

// SetIME sets the interrupt master enable flag.
func (c *CPU) SetIME(enabled bool) {
	c.ime = enabled
}

// Halted returns true while the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.halt
}

// NextInstruction executes a single step of the CPU. A step is either
// one instruction, or a single cycle spent halted, followed by the
// dispatch of at most one interrupt.
func (c *CPU) NextInstruction() {
	// a change to IME only takes effect after the following instruction
	ime := c.ime

	if c.halt {
		c.halt = c.irq.Pending() == 0
		c.clock.Advance(1)
	} else {
		c.clock.Advance(c.execute())
	}

	if ime && c.ime {
		if cycles := c.serviceInterrupt(); cycles > 0 {
			c.clock.Advance(cycles)
		}
	}
}

// execute runs the instruction at PC, returning the M-cycles taken.
func (c *CPU) execute() int {
	instruction := c.decode()

	if instruction.Kind == Branching {
		if instruction.branch(c) {
			return instruction.CyclesBranch
		}
		c.PC += uint16(instruction.Size)
		return instruction.Cycles
	}

	haltBug := c.haltBug
	c.haltBug = false
	instruction.fn(c)
	if !instruction.NoPCIncrement && !haltBug {
		c.PC += uint16(instruction.Size)
	}
	return instruction.Cycles
}

// decode returns the instruction at PC.
func (c *CPU) decode() *Instruction {
	opcode := c.bus.Read(c.PC)
	if opcode == 0xCB {
		return &InstructionSetCB[c.bus.Read(c.PC+1)]
	}
	return &InstructionSet[opcode]
}

// serviceInterrupt dispatches the highest priority interrupt that is
// both enabled and requested, returning the M-cycles taken.
func (c *CPU) serviceInterrupt() int {
	kind, ok := c.irq.Next()
	if !ok {
		return 0
	}

	c.halt = false
	c.irq.Acknowledge(kind)
	c.ime = false
	c.push(c.PC)
	c.PC = kind.Vector()

	return interruptCycles
}

// enterHalt is the effect of the HALT instruction. With IME clear and
// an interrupt already pending the CPU does not halt, and fails to
// increment PC past the following instruction.
func (c *CPU) enterHalt() {
	if !c.ime && c.irq.Pending() != 0 {
		c.haltBug = true
		return
	}
	c.halt = true
}

// d8 returns the immediate byte operand of the current instruction.
func (c *CPU) d8() uint8 {
	return c.bus.Read(c.PC + 1)
}

// d16 returns the immediate word operand of the current instruction.
func (c *CPU) d16() uint16 {
	return uint16(c.bus.Read(c.PC+1)) | uint16(c.bus.Read(c.PC+2))<<8
}

// push pushes a 16 bit value onto the stack, high byte first.
func (c *CPU) push(value uint16) {
	c.SP--
	c.bus.Write(c.SP, uint8(value>>8))
	c.SP--
	c.bus.Write(c.SP, uint8(value))
}

// pop pops a 16 bit value off the stack.
func (c *CPU) pop() uint16 {
	low := uint16(c.bus.Read(c.SP))
	c.SP++
	high := uint16(c.bus.Read(c.SP))
	c.SP++
	return high<<8 | low
}
