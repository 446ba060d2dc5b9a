package cpu

import (
	"fmt"

	"github.com/gamelin-emu/gamelin/internal/types"
)

// Reg identifies one of the eight 8-bit registers.
type Reg uint8

const (
	RegA Reg = iota
	RegB
	RegC
	RegD
	RegE
	RegF
	RegH
	RegL
)

func (r Reg) String() string {
	return [...]string{"A", "B", "C", "D", "E", "F", "H", "L"}[r]
}

// DReg identifies one of the four register pairs. The first
// register of a pair holds the high byte.
type DReg uint8

const (
	RegBC DReg = iota
	RegDE
	RegHL
	RegAF
)

func (d DReg) String() string {
	return [...]string{"BC", "DE", "HL", "AF"}[d]
}

// High returns the register holding the high byte of the pair.
func (d DReg) High() Reg {
	return [...]Reg{RegB, RegD, RegH, RegA}[d]
}

// Low returns the register holding the low byte of the pair.
func (d DReg) Low() Reg {
	return [...]Reg{RegC, RegE, RegL, RegF}[d]
}

// Registers holds the 8-bit registers of the CPU, as well as
// the 16-bit register pairs composed from them.
type Registers struct {
	A types.Register
	B types.Register
	C types.Register
	D types.Register
	E types.Register
	F types.Register
	H types.Register
	L types.Register

	BC *types.RegisterPair
	DE *types.RegisterPair
	HL *types.RegisterPair
	AF *types.RegisterPair
}

func (r *Registers) initPairs() {
	r.BC = types.NewRegisterPair(&r.B, &r.C)
	r.DE = types.NewRegisterPair(&r.D, &r.E)
	r.HL = types.NewRegisterPair(&r.H, &r.L)
	// F only exposes the flag bits
	r.AF = types.NewMaskedRegisterPair(&r.A, &r.F, 0xF0)
}

func (r *Registers) reg(reg Reg) *types.Register {
	switch reg {
	case RegA:
		return &r.A
	case RegB:
		return &r.B
	case RegC:
		return &r.C
	case RegD:
		return &r.D
	case RegE:
		return &r.E
	case RegF:
		return &r.F
	case RegH:
		return &r.H
	case RegL:
		return &r.L
	}
	panic(fmt.Sprintf("cpu: invalid register %d", reg))
}

func (r *Registers) pair(reg DReg) *types.RegisterPair {
	switch reg {
	case RegBC:
		return r.BC
	case RegDE:
		return r.DE
	case RegHL:
		return r.HL
	case RegAF:
		return r.AF
	}
	panic(fmt.Sprintf("cpu: invalid register pair %d", reg))
}

// Read returns the value of the given register.
func (r *Registers) Read(reg Reg) uint8 {
	return *r.reg(reg)
}

// Write sets the given register. The lower nibble of F
// is always zero.
func (r *Registers) Write(reg Reg, value uint8) {
	if reg == RegF {
		value &= 0xF0
	}
	*r.reg(reg) = value
}

// ReadD returns the value of the given register pair.
func (r *Registers) ReadD(reg DReg) uint16 {
	return r.pair(reg).Uint16()
}

// WriteD sets the given register pair.
func (r *Registers) WriteD(reg DReg, value uint16) {
	r.pair(reg).SetUint16(value)
}

func (r *Registers) reset() {
	r.A, r.B, r.C, r.D, r.E, r.F, r.H, r.L = 0, 0, 0, 0, 0, 0, 0, 0
}
