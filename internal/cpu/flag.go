package cpu

// Flag is the bit position of a flag in the F register.
type Flag uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// Mask returns the bit of the flag in F.
func (f Flag) Mask() uint8 {
	return 1 << f
}

// InvMask returns every bit of F except the flag's.
func (f Flag) InvMask() uint8 {
	return ^f.Mask()
}

func (f Flag) String() string {
	switch f {
	case FlagZero:
		return "Z"
	case FlagSubtract:
		return "N"
	case FlagHalfCarry:
		return "H"
	case FlagCarry:
		return "C"
	}
	return "?"
}

// Flag returns true if the given flag is set.
func (c *CPU) Flag(flag Flag) bool {
	return c.F&flag.Mask() != 0
}

// SetFlag sets or clears the given flag.
func (c *CPU) SetFlag(flag Flag, value bool) {
	c.F &= flag.InvMask()
	if value {
		c.F |= flag.Mask()
	}
}

// setFlags sets all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.SetFlag(FlagZero, zero)
	c.SetFlag(FlagSubtract, subtract)
	c.SetFlag(FlagHalfCarry, halfCarry)
	c.SetFlag(FlagCarry, carry)
}
