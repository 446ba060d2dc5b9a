package cpu

import (
	"fmt"
	"strings"
)

// Disassemble returns the instruction at pc in a human readable form,
// with any immediate operand substituted into the mnemonic.
func Disassemble(bus Bus, pc uint16) string {
	opcode := bus.Read(pc)
	if opcode == 0xCB {
		return fmt.Sprintf("%04X: CB %02X    %s", pc, bus.Read(pc+1), InstructionSetCB[bus.Read(pc+1)].Name)
	}

	instruction := InstructionSet[opcode]
	name := instruction.Name
	switch instruction.Size {
	case 2:
		operand := bus.Read(pc + 1)
		name = strings.NewReplacer(
			"d8", fmt.Sprintf("$%02X", operand),
			"a8", fmt.Sprintf("$FF%02X", operand),
			"r8", fmt.Sprintf("%+d", int8(operand)),
		).Replace(name)
		return fmt.Sprintf("%04X: %02X %02X    %s", pc, opcode, operand, name)
	case 3:
		low, high := bus.Read(pc+1), bus.Read(pc+2)
		value := fmt.Sprintf("$%02X%02X", high, low)
		name = strings.NewReplacer("d16", value, "a16", value).Replace(name)
		return fmt.Sprintf("%04X: %02X %02X %02X %s", pc, opcode, low, high, name)
	}
	return fmt.Sprintf("%04X: %02X       %s", pc, opcode, name)
}

// String returns the state of the registers.
func (c *CPU) String() string {
	return fmt.Sprintf(
		"A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X IME:%t",
		c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP, c.PC, c.ime,
	)
}
