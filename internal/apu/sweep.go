package apu

import "github.com/gamelin-emu/gamelin/internal/types"

// sweepDivider is the number of cycles between sweep clocks.
const sweepDivider = types.ClockSpeed / 128

// FrequencySweep periodically raises or lowers the frequency of
// channel 1, as configured through NR10.
type FrequencySweep struct {
	channel *SquareWave

	timer   uint8
	enabled bool
	shift   uint8
	period  uint8
	negate  bool
	counter int

	// shadow is the working copy of the channel frequency
	shadow int

	// Clearing the negate bit in NR10 after at least one calculation
	// has been made in negate mode since the last trigger disables
	// the channel.
	calculationMade bool
}

// NewFrequencySweep returns a sweep unit driving channel.
func NewFrequencySweep(channel *SquareWave) *FrequencySweep {
	return &FrequencySweep{channel: channel}
}

// Enabled reports whether the sweep unit is running.
func (f *FrequencySweep) Enabled() bool {
	return f.enabled
}

// Shadow returns the shadow frequency.
func (f *FrequencySweep) Shadow() int {
	return f.shadow
}

// Cycle advances the sweep unit by the given number of T-cycles.
func (f *FrequencySweep) Cycle(cycles int) {
	f.counter += cycles
	for f.counter > sweepDivider {
		f.counter -= sweepDivider
		f.step()
	}
}

func (f *FrequencySweep) step() {
	if !f.enabled {
		return
	}

	f.timer--
	if f.timer != 0 {
		return
	}
	f.reloadTimer()

	if f.period == 0 {
		return
	}
	freq := f.calculate()
	// an overflow will have disabled the sweep
	if f.enabled && f.shift != 0 {
		f.shadow = freq
		f.channel.frequency = uint16(freq)
		f.calculate()
	}
}

// calculate returns the next frequency, disabling the channel
// when it would overflow 11 bits.
func (f *FrequencySweep) calculate() int {
	f.calculationMade = true

	freq := f.shadow >> f.shift
	if f.negate {
		freq = f.shadow - freq
	} else {
		freq = f.shadow + freq
	}

	if freq > 2047 {
		f.enabled = false
		f.channel.enabled = false
	}
	if freq > 2048 {
		freq = 2048
	}
	return freq
}

func (f *FrequencySweep) reloadTimer() {
	if f.period == 0 {
		f.timer = 8
	} else {
		f.timer = f.period
	}
}

// SetNR10 writes the NR10 register.
func (f *FrequencySweep) SetNR10(value uint8) {
	f.period = value >> 4 & 0x07
	negate := value&types.Bit3 != 0
	f.shift = value & 0x07

	if negate && !f.negate {
		f.calculationMade = false
	}
	if f.calculationMade && f.negate && !negate {
		f.enabled = false
		f.channel.enabled = false
	}

	f.negate = negate
}

// NR10 reads the NR10 register, bit 7 always reads as set.
func (f *FrequencySweep) NR10() uint8 {
	b := uint8(0x80) | f.period<<4 | f.shift
	if f.negate {
		b |= types.Bit3
	}
	return b
}

// Trigger restarts the sweep from the channel's current frequency.
// With a non zero shift the overflow check is made immediately.
func (f *FrequencySweep) Trigger() {
	f.shadow = int(f.channel.frequency)
	f.reloadTimer()
	f.enabled = f.period != 0 || f.shift != 0
	f.calculationMade = false

	if f.shift > 0 {
		f.calculate()
	}
}

// Reset clears the sweep unit.
func (f *FrequencySweep) Reset() {
	f.timer = 0
	f.enabled = false
	f.shift = 0
	f.period = 0
	f.negate = false
	f.counter = 0
	f.shadow = 0
	f.calculationMade = false
}
