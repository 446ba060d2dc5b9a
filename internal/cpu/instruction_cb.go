package cpu

import "fmt"

// shiftOps are the rotate and shift operations of the first 64 CB
// prefixed instructions, in the order they are encoded.
var shiftOps = [8]struct {
	name string
	fn   func(c *CPU, n uint8) uint8
}{
	{"RLC", (*CPU).rotateLeftCarry},
	{"RRC", (*CPU).rotateRightCarry},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

func init() {
	for op := 0; op < 256; op++ {
		opcode := uint8(op)
		r := opcode & 7
		y := (opcode >> 3) & 7

		// (HL) takes 2 more cycles, or 1 for BIT which only reads it
		cycles := 2
		if r == 6 {
			cycles = 4
			if opcode>>6 == 1 {
				cycles = 3
			}
		}

		var instruction Instruction
		switch opcode >> 6 {
		case 0:
			shift := shiftOps[y]
			instruction = fixed(shift.name+" "+operands[r], 2, cycles, func(c *CPU) {
				c.set8(r, shift.fn(c, c.get8(r)))
			})
		case 1:
			instruction = fixed(fmt.Sprintf("BIT %d, %s", y, operands[r]), 2, cycles, func(c *CPU) {
				c.testBit(c.get8(r), y)
			})
		case 2:
			instruction = fixed(fmt.Sprintf("RES %d, %s", y, operands[r]), 2, cycles, func(c *CPU) {
				c.set8(r, c.get8(r)&^(1<<y))
			})
		case 3:
			instruction = fixed(fmt.Sprintf("SET %d, %s", y, operands[r]), 2, cycles, func(c *CPU) {
				c.set8(r, c.get8(r)|1<<y)
			})
		}
		InstructionSetCB[opcode] = instruction
	}
}
