package apu

import "github.com/gamelin-emu/gamelin/internal/types"

// envelopeDivider is the number of cycles between envelope clocks.
const envelopeDivider = types.ClockSpeed / 64

// VolumeEnvelope is the NRx2 unit of a channel, which ramps the
// volume of the channel up or down over time.
type VolumeEnvelope struct {
	initialVolume uint8
	volume        uint8
	increase      bool
	period        uint8

	timer   uint8
	counter int
}

// SetNR2 writes the NRx2 register.
//
//	Bit 7-4: Initial volume
//	Bit 3:   Direction (0=Decrease, 1=Increase)
//	Bit 2-0: Period
func (v *VolumeEnvelope) SetNR2(value uint8) {
	v.initialVolume = value >> 4
	v.increase = value&types.Bit3 != 0
	v.period = value & 0x07
}

func (v *VolumeEnvelope) NR2() uint8 {
	b := v.initialVolume<<4 | v.period
	if v.increase {
		b |= types.Bit3
	}
	return b
}

// DAC reports whether the channel's DAC is powered, which is the
// case while any of the upper 5 bits of NRx2 are set.
func (v *VolumeEnvelope) DAC() bool {
	return v.initialVolume != 0 || v.increase
}

// Volume returns the current volume, 0-15.
func (v *VolumeEnvelope) Volume() uint8 {
	return v.volume
}

// Trigger restarts the envelope from its initial volume.
func (v *VolumeEnvelope) Trigger() {
	v.volume = v.initialVolume
	v.timer = v.period
	v.counter = 0
}

// Cycle advances the envelope by the given number of T-cycles.
func (v *VolumeEnvelope) Cycle(cycles int) {
	v.counter += cycles
	for v.counter >= envelopeDivider {
		v.counter -= envelopeDivider
		v.step()
	}
}

func (v *VolumeEnvelope) step() {
	if v.period == 0 || v.timer == 0 {
		return
	}
	v.timer--
	if v.timer != 0 {
		return
	}
	v.timer = v.period
	if v.increase && v.volume < 0x0F {
		v.volume++
	} else if !v.increase && v.volume > 0 {
		v.volume--
	}
}

// Reset clears the envelope.
func (v *VolumeEnvelope) Reset() {
	*v = VolumeEnvelope{}
}
