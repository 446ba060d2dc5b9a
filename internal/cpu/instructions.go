package cpu

import "fmt"

// pairs lists the register pairs in the order they are encoded by
// the 16-bit load and arithmetic instructions.
var pairs = [4]string{"BC", "DE", "HL", "SP"}

// stackPairs lists the register pairs in the order they are encoded
// by PUSH and POP.
var stackPairs = [4]string{"BC", "DE", "HL", "AF"}

// conditions lists the branch conditions in the order they are encoded.
var conditions = [4]string{"NZ", "Z", "NC", "C"}

func (c *CPU) getPair(index uint8) uint16 {
	if index == 3 {
		return c.SP
	}
	return c.ReadD(DReg(index))
}

func (c *CPU) setPair(index uint8, value uint16) {
	if index == 3 {
		c.SP = value
		return
	}
	c.WriteD(DReg(index), value)
}

func (c *CPU) getStackPair(index uint8) uint16 {
	return c.ReadD([4]DReg{RegBC, RegDE, RegHL, RegAF}[index])
}

func (c *CPU) setStackPair(index uint8, value uint16) {
	c.WriteD([4]DReg{RegBC, RegDE, RegHL, RegAF}[index], value)
}

func (c *CPU) condition(index uint8) bool {
	switch index {
	case 0:
		return !c.Flag(FlagZero)
	case 1:
		return c.Flag(FlagZero)
	case 2:
		return !c.Flag(FlagCarry)
	}
	return c.Flag(FlagCarry)
}

// jumpRelative sets PC to the address following the current
// instruction, offset by the signed immediate operand.
func (c *CPU) jumpRelative() {
	c.PC = uint16(int32(c.PC) + 2 + int32(int8(c.d8())))
}

// call pushes the address of the instruction following the current
// one, and jumps to address.
func (c *CPU) call(address uint16, size uint8) {
	c.push(c.PC + uint16(size))
	c.PC = address
}

// ret pops the return address off the stack into PC.
func (c *CPU) ret() {
	c.PC = c.pop()
}

// aluOps are the 8 operations performed on A, in the order
// they are encoded.
var aluOps = [8]struct {
	name string
	fn   func(c *CPU, n uint8)
}{
	{"ADD A,", func(c *CPU, n uint8) { c.add(n, false) }},
	{"ADC A,", func(c *CPU, n uint8) { c.add(n, true) }},
	{"SUB", func(c *CPU, n uint8) { c.sub(n, false) }},
	{"SBC A,", func(c *CPU, n uint8) { c.sub(n, true) }},
	{"AND", (*CPU).and},
	{"XOR", (*CPU).xor},
	{"OR", (*CPU).or},
	{"CP", (*CPU).compare},
}

func init() {
	// 8-bit loads, arithmetic and logic on registers
	for op := 0x40; op < 0xC0; op++ {
		opcode := uint8(op)
		src := opcode & 7
		cycles := 1
		if src == 6 {
			cycles = 2
		}

		if opcode < 0x80 {
			dst := (opcode >> 3) & 7
			if dst == 6 {
				cycles = 2
			}
			InstructionSet[opcode] = fixed(
				fmt.Sprintf("LD %s, %s", operands[dst], operands[src]), 1, cycles,
				func(c *CPU) { c.set8(dst, c.get8(src)) },
			)
			continue
		}

		alu := aluOps[(opcode>>3)&7]
		InstructionSet[opcode] = fixed(
			fmt.Sprintf("%s %s", alu.name, operands[src]), 1, cycles,
			func(c *CPU) { alu.fn(c, c.get8(src)) },
		)
	}
	InstructionSet[0x76] = fixed("HALT", 1, 1, (*CPU).enterHalt)

	for i := uint8(0); i < 8; i++ {
		r := i
		cycles, immediateCycles := 1, 2
		if r == 6 {
			cycles, immediateCycles = 3, 3
		}
		InstructionSet[0x04+r<<3] = fixed("INC "+operands[r], 1, cycles, func(c *CPU) {
			c.set8(r, c.increment(c.get8(r)))
		})
		InstructionSet[0x05+r<<3] = fixed("DEC "+operands[r], 1, cycles, func(c *CPU) {
			c.set8(r, c.decrement(c.get8(r)))
		})
		InstructionSet[0x06+r<<3] = fixed("LD "+operands[r]+", d8", 2, immediateCycles, func(c *CPU) {
			c.set8(r, c.d8())
		})

		// ALU A, d8
		alu := aluOps[r]
		InstructionSet[0xC6+r<<3] = fixed(alu.name+" d8", 2, 2, func(c *CPU) {
			alu.fn(c, c.d8())
		})

		// RST n
		vector := uint16(r) << 3
		InstructionSet[0xC7+r<<3] = jump(fmt.Sprintf("RST %02XH", vector), 1, 4, func(c *CPU) {
			c.call(vector, 1)
		})
	}

	for i := uint8(0); i < 4; i++ {
		rp := i
		InstructionSet[0x01+rp<<4] = fixed("LD "+pairs[rp]+", d16", 3, 3, func(c *CPU) {
			c.setPair(rp, c.d16())
		})
		InstructionSet[0x03+rp<<4] = fixed("INC "+pairs[rp], 1, 2, func(c *CPU) {
			c.setPair(rp, c.getPair(rp)+1)
		})
		InstructionSet[0x0B+rp<<4] = fixed("DEC "+pairs[rp], 1, 2, func(c *CPU) {
			c.setPair(rp, c.getPair(rp)-1)
		})
		InstructionSet[0x09+rp<<4] = fixed("ADD HL, "+pairs[rp], 1, 2, func(c *CPU) {
			c.addHL(c.getPair(rp))
		})
		InstructionSet[0xC1+rp<<4] = fixed("POP "+stackPairs[rp], 1, 3, func(c *CPU) {
			c.setStackPair(rp, c.pop())
		})
		InstructionSet[0xC5+rp<<4] = fixed("PUSH "+stackPairs[rp], 1, 4, func(c *CPU) {
			c.push(c.getStackPair(rp))
		})

		cc := i
		InstructionSet[0x20+cc<<3] = branching("JR "+conditions[cc]+", r8", 2, 2, 3, func(c *CPU) bool {
			if !c.condition(cc) {
				return false
			}
			c.jumpRelative()
			return true
		})
		InstructionSet[0xC0+cc<<3] = branching("RET "+conditions[cc], 1, 2, 5, func(c *CPU) bool {
			if !c.condition(cc) {
				return false
			}
			c.ret()
			return true
		})
		InstructionSet[0xC2+cc<<3] = branching("JP "+conditions[cc]+", a16", 3, 3, 4, func(c *CPU) bool {
			if !c.condition(cc) {
				return false
			}
			c.PC = c.d16()
			return true
		})
		InstructionSet[0xC4+cc<<3] = branching("CALL "+conditions[cc]+", a16", 3, 3, 6, func(c *CPU) bool {
			if !c.condition(cc) {
				return false
			}
			c.call(c.d16(), 3)
			return true
		})
	}

	InstructionSet[0x00] = fixed("NOP", 1, 1, func(c *CPU) {})
	InstructionSet[0x02] = fixed("LD (BC), A", 1, 2, func(c *CPU) {
		c.bus.Write(c.BC.Uint16(), c.A)
	})
	InstructionSet[0x07] = fixed("RLCA", 1, 1, func(c *CPU) {
		c.A = c.rotateLeftCarry(c.A)
		c.SetFlag(FlagZero, false)
	})
	InstructionSet[0x08] = fixed("LD (a16), SP", 3, 5, func(c *CPU) {
		address := c.d16()
		c.bus.Write(address, uint8(c.SP))
		c.bus.Write(address+1, uint8(c.SP>>8))
	})
	InstructionSet[0x0A] = fixed("LD A, (BC)", 1, 2, func(c *CPU) {
		c.A = c.bus.Read(c.BC.Uint16())
	})
	InstructionSet[0x0F] = fixed("RRCA", 1, 1, func(c *CPU) {
		c.A = c.rotateRightCarry(c.A)
		c.SetFlag(FlagZero, false)
	})
	// STOP is only used by the CGB to switch speeds, on the DMG it
	// behaves as a 2 byte NOP when no button is held
	InstructionSet[0x10] = fixed("STOP", 2, 1, func(c *CPU) {})
	InstructionSet[0x12] = fixed("LD (DE), A", 1, 2, func(c *CPU) {
		c.bus.Write(c.DE.Uint16(), c.A)
	})
	InstructionSet[0x17] = fixed("RLA", 1, 1, func(c *CPU) {
		c.A = c.rotateLeftThroughCarry(c.A)
		c.SetFlag(FlagZero, false)
	})
	InstructionSet[0x18] = jump("JR r8", 2, 3, (*CPU).jumpRelative)
	InstructionSet[0x1A] = fixed("LD A, (DE)", 1, 2, func(c *CPU) {
		c.A = c.bus.Read(c.DE.Uint16())
	})
	InstructionSet[0x1F] = fixed("RRA", 1, 1, func(c *CPU) {
		c.A = c.rotateRightThroughCarry(c.A)
		c.SetFlag(FlagZero, false)
	})
	InstructionSet[0x22] = fixed("LD (HL+), A", 1, 2, func(c *CPU) {
		hl := c.HL.Uint16()
		c.bus.Write(hl, c.A)
		c.HL.SetUint16(hl + 1)
	})
	InstructionSet[0x27] = fixed("DAA", 1, 1, (*CPU).decimalAdjust)
	InstructionSet[0x2A] = fixed("LD A, (HL+)", 1, 2, func(c *CPU) {
		hl := c.HL.Uint16()
		c.A = c.bus.Read(hl)
		c.HL.SetUint16(hl + 1)
	})
	InstructionSet[0x2F] = fixed("CPL", 1, 1, func(c *CPU) {
		c.A = ^c.A
		c.SetFlag(FlagSubtract, true)
		c.SetFlag(FlagHalfCarry, true)
	})
	InstructionSet[0x32] = fixed("LD (HL-), A", 1, 2, func(c *CPU) {
		hl := c.HL.Uint16()
		c.bus.Write(hl, c.A)
		c.HL.SetUint16(hl - 1)
	})
	InstructionSet[0x37] = fixed("SCF", 1, 1, func(c *CPU) {
		c.SetFlag(FlagSubtract, false)
		c.SetFlag(FlagHalfCarry, false)
		c.SetFlag(FlagCarry, true)
	})
	InstructionSet[0x3A] = fixed("LD A, (HL-)", 1, 2, func(c *CPU) {
		hl := c.HL.Uint16()
		c.A = c.bus.Read(hl)
		c.HL.SetUint16(hl - 1)
	})
	InstructionSet[0x3F] = fixed("CCF", 1, 1, func(c *CPU) {
		c.SetFlag(FlagSubtract, false)
		c.SetFlag(FlagHalfCarry, false)
		c.SetFlag(FlagCarry, !c.Flag(FlagCarry))
	})

	InstructionSet[0xC3] = jump("JP a16", 3, 4, func(c *CPU) {
		c.PC = c.d16()
	})
	InstructionSet[0xC9] = jump("RET", 1, 4, (*CPU).ret)
	InstructionSet[0xCB] = fixed("PREFIX CB", 2, 1, func(c *CPU) {
		panic("cpu: CB prefixed instructions are decoded from InstructionSetCB")
	})
	InstructionSet[0xCD] = jump("CALL a16", 3, 6, func(c *CPU) {
		c.call(c.d16(), 3)
	})
	InstructionSet[0xD9] = jump("RETI", 1, 4, func(c *CPU) {
		c.ime = true
		c.ret()
	})
	InstructionSet[0xE0] = fixed("LDH (a8), A", 2, 3, func(c *CPU) {
		c.bus.Write(0xFF00+uint16(c.d8()), c.A)
	})
	InstructionSet[0xE2] = fixed("LD (C), A", 1, 2, func(c *CPU) {
		c.bus.Write(0xFF00+uint16(c.C), c.A)
	})
	InstructionSet[0xE8] = fixed("ADD SP, r8", 2, 4, func(c *CPU) {
		c.SP = c.addSPSigned()
	})
	InstructionSet[0xE9] = jump("JP HL", 1, 1, func(c *CPU) {
		c.PC = c.HL.Uint16()
	})
	InstructionSet[0xEA] = fixed("LD (a16), A", 3, 4, func(c *CPU) {
		c.bus.Write(c.d16(), c.A)
	})
	InstructionSet[0xF0] = fixed("LDH A, (a8)", 2, 3, func(c *CPU) {
		c.A = c.bus.Read(0xFF00 + uint16(c.d8()))
	})
	InstructionSet[0xF2] = fixed("LD A, (C)", 1, 2, func(c *CPU) {
		c.A = c.bus.Read(0xFF00 + uint16(c.C))
	})
	InstructionSet[0xF3] = fixed("DI", 1, 1, func(c *CPU) {
		c.ime = false
	})
	InstructionSet[0xF8] = fixed("LD HL, SP+r8", 2, 3, func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned())
	})
	InstructionSet[0xF9] = fixed("LD SP, HL", 1, 2, func(c *CPU) {
		c.SP = c.HL.Uint16()
	})
	InstructionSet[0xFA] = fixed("LD A, (a16)", 3, 4, func(c *CPU) {
		c.A = c.bus.Read(c.d16())
	})
	InstructionSet[0xFB] = fixed("EI", 1, 1, func(c *CPU) {
		c.ime = true
	})

	for _, opcode := range illegalOpcodes {
		InstructionSet[opcode] = illegal(opcode)
	}
}
