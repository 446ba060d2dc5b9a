// Package apu emulates the square channels of the Game Boy's audio
// processing unit, along with the master control registers.
package apu

import (
	"fmt"

	"github.com/gamelin-emu/gamelin/internal/types"
)

const (
	// SampleRate is the rate at which samples are handed to the Output.
	SampleRate = 22050
	// samplePeriod is the number of T-cycles between samples.
	samplePeriod = types.ClockSpeed / SampleRate

	// sampleScale converts a mixed sample (0-240) to the int16 range.
	sampleScale = 64
)

// Output receives the stereo samples produced by the APU.
type Output interface {
	Play(left, right int16)
}

// APU represents the GameBoy's audio processing unit. Channel 1
// and 2 are both square channels, where channel 1 can also sweep
// its frequency. The wave and noise channels are not emulated,
// writes to their registers are stored by the bus.
type APU struct {
	enabled bool

	channel1 *SquareWave
	channel2 *SquareWave

	nr50, nr51 uint8

	samples [2]int
	counter int
	output  Output
}

// NewAPU returns a new powered on APU. output may be nil.
func NewAPU(output Output) *APU {
	a := &APU{
		channel1: NewSweepSquareWave(),
		channel2: NewSquareWave(),
		output:   output,
	}
	a.Reset()
	return a
}

// Addresses returns every register address served by the APU.
func (a *APU) Addresses() []uint16 {
	return []uint16{
		types.NR10, types.NR11, types.NR12, types.NR13, types.NR14,
		types.NR21, types.NR22, types.NR23, types.NR24,
		types.NR50, types.NR51, types.NR52,
	}
}

// Channel1 returns the sweep square channel.
func (a *APU) Channel1() *SquareWave {
	return a.channel1
}

// Channel2 returns the second square channel.
func (a *APU) Channel2() *SquareWave {
	return a.channel2
}

// Reset powers the APU on with cleared registers.
func (a *APU) Reset() {
	a.channel1.Reset()
	a.channel2.Reset()
	a.channel1.off = false
	a.channel2.off = false
	a.nr50 = 0
	a.nr51 = 0
	a.counter = 0
	a.enabled = true
}

// Cycle advances the APU by the given number of T-cycles,
// emitting a sample to the output every samplePeriod cycles.
func (a *APU) Cycle(cycles int) {
	if a.enabled {
		a.samples[0] = a.channel1.Cycle(cycles)
		a.samples[1] = a.channel2.Cycle(cycles)
	}

	a.counter += cycles
	for a.counter >= samplePeriod {
		a.counter -= samplePeriod
		if a.output != nil {
			a.output.Play(a.mix())
		}
	}
}

// mix pans the channel samples according to NR51 and scales them
// by the master volume in NR50.
func (a *APU) mix() (left, right int16) {
	if !a.enabled {
		return 0, 0
	}
	var l, r int
	for i, sample := range a.samples {
		if a.nr51&(1<<(i+4)) != 0 {
			l += sample
		}
		if a.nr51&(1<<i) != 0 {
			r += sample
		}
	}
	l *= int(a.nr50>>4&0x07) + 1
	r *= int(a.nr50&0x07) + 1
	return int16(l * sampleScale), int16(r * sampleScale)
}

// Read implements the mmu.IODevice interface.
func (a *APU) Read(address uint16) uint8 {
	switch {
	case address >= types.NR10 && address <= types.NR14:
		return a.channel1.Read(address - types.NR10)
	case address >= types.NR21 && address <= types.NR24:
		return a.channel2.Read(address - types.NR21 + 1)
	case address == types.NR50:
		return a.nr50
	case address == types.NR51:
		return a.nr51
	case address == types.NR52:
		b := uint8(0x70)
		if a.enabled {
			b |= types.Bit7
		}
		if a.channel1.Enabled() {
			b |= types.Bit0
		}
		if a.channel2.Enabled() {
			b |= types.Bit1
		}
		return b
	}
	panic(fmt.Sprintf("apu: illegal read from %04X", address))
}

// Write implements the mmu.IODevice interface. While powered off
// only NR52 and the length bits of NRx1 may be written.
func (a *APU) Write(address uint16, value uint8) {
	if address == types.NR52 {
		a.setPower(value&types.Bit7 != 0)
		return
	}
	if !a.enabled && address != types.NR11 && address != types.NR21 {
		return
	}

	switch {
	case address >= types.NR10 && address <= types.NR14:
		a.channel1.Write(address-types.NR10, value)
	case address >= types.NR21 && address <= types.NR24:
		a.channel2.Write(address-types.NR21+1, value)
	case address == types.NR50:
		a.nr50 = value
	case address == types.NR51:
		a.nr51 = value
	default:
		panic(fmt.Sprintf("apu: illegal write to %04X", address))
	}
}

func (a *APU) setPower(on bool) {
	if on == a.enabled {
		return
	}
	if on {
		a.enabled = true
		a.channel1.off = false
		a.channel2.off = false
		return
	}

	a.channel1.Reset()
	a.channel2.Reset()
	a.channel1.off = true
	a.channel2.off = true
	a.nr50 = 0
	a.nr51 = 0
	a.samples = [2]int{}
	a.enabled = false
}
