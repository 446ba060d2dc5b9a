package cpu

import "fmt"

// Kind distinguishes instructions that always take the same number
// of cycles from those whose cost depends on a condition.
type Kind uint8

const (
	// Fixed instructions execute their effect, after which PC is
	// advanced past them unless NoPCIncrement is set.
	Fixed Kind = iota
	// Branching instructions evaluate a condition. When it holds they
	// jump themselves and cost CyclesBranch, otherwise PC is advanced
	// past them and they cost Cycles.
	Branching
)

// Instruction represents a single instruction of the CPU. Cycle
// counts are given in M-cycles.
type Instruction struct {
	Name string
	// Size is the length of the instruction in bytes, including any
	// prefix and immediate operands.
	Size         uint8
	Cycles       int
	CyclesBranch int
	Kind         Kind
	// NoPCIncrement is set by instructions that set PC themselves.
	NoPCIncrement bool

	fn     func(*CPU)
	branch func(*CPU) bool
}

// InstructionSet holds the first 256 instructions.
var InstructionSet [256]Instruction

// InstructionSetCB holds the 256 instructions prefixed by 0xCB.
var InstructionSetCB [256]Instruction

// fixed returns an instruction that always costs cycles.
func fixed(name string, size uint8, cycles int, fn func(*CPU)) Instruction {
	return Instruction{Name: name, Size: size, Cycles: cycles, Kind: Fixed, fn: fn}
}

// jump returns an unconditional instruction that sets PC itself.
func jump(name string, size uint8, cycles int, fn func(*CPU)) Instruction {
	i := fixed(name, size, cycles, fn)
	i.NoPCIncrement = true
	return i
}

// branching returns an instruction that costs taken cycles when
// fn reports a branch, and notTaken otherwise.
func branching(name string, size uint8, notTaken, taken int, fn func(*CPU) bool) Instruction {
	return Instruction{
		Name:         name,
		Size:         size,
		Cycles:       notTaken,
		CyclesBranch: taken,
		Kind:         Branching,
		branch:       fn,
	}
}

// illegal returns an instruction for an opcode the CPU does not
// implement. Executing it is a fatal error.
func illegal(opcode uint8) Instruction {
	return fixed(fmt.Sprintf("ILLEGAL %02X", opcode), 1, 1, func(c *CPU) {
		panic(fmt.Sprintf("cpu: illegal opcode %02X at %04X", opcode, c.PC))
	})
}

// String returns the mnemonic of the instruction.
func (i Instruction) String() string {
	return i.Name
}

var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// operands lists the 8-bit operands in the order they are encoded
// in the low 3 bits of an opcode.
var operands = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// get8 returns the operand encoded by index.
func (c *CPU) get8(index uint8) uint8 {
	switch index {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.bus.Read(c.HL.Uint16())
	case 7:
		return c.A
	}
	panic(fmt.Sprintf("cpu: invalid operand %d", index))
}

// set8 writes value to the operand encoded by index.
func (c *CPU) set8(index uint8, value uint8) {
	switch index {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.bus.Write(c.HL.Uint16(), value)
	case 7:
		c.A = value
	default:
		panic(fmt.Sprintf("cpu: invalid operand %d", index))
	}
}
