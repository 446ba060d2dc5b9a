package apu

import "github.com/gamelin-emu/gamelin/internal/types"

const (
	// lengthDivider is the number of cycles between length clocks.
	lengthDivider = types.ClockSpeed / 256
	maxLength     = 64
)

// LengthCounter silences a channel once its length has expired,
// if the length has been enabled through NRx4.
type LengthCounter struct {
	length  int
	enabled bool
	counter int

	// disable is called when the length expires
	disable func()
}

// SetNR1 loads the length from bits 0-5 of NRx1.
func (l *LengthCounter) SetNR1(value uint8) {
	l.length = maxLength - int(value&0x3F)
}

// SetNR4 updates the length enable flag from bit 6 of NRx4.
func (l *LengthCounter) SetNR4(value uint8) {
	l.enabled = value&types.Bit6 != 0
}

// Enabled reports whether the length is being counted down.
func (l *LengthCounter) Enabled() bool {
	return l.enabled
}

// Length returns the remaining length.
func (l *LengthCounter) Length() int {
	return l.length
}

// Trigger reloads an expired length.
func (l *LengthCounter) Trigger() {
	if l.length == 0 {
		l.length = maxLength
	}
}

// Cycle advances the length counter by the given number of T-cycles.
func (l *LengthCounter) Cycle(cycles int) {
	l.counter += cycles
	for l.counter >= lengthDivider {
		l.counter -= lengthDivider
		if l.enabled && l.length > 0 {
			l.length--
			if l.length == 0 && l.disable != nil {
				l.disable()
			}
		}
	}
}

// Reset clears the length counter.
func (l *LengthCounter) Reset() {
	l.length = 0
	l.enabled = false
	l.counter = 0
}
