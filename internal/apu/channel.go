package apu

import "github.com/gamelin-emu/gamelin/internal/types"

// dutyPatterns holds the waveform of each duty setting, read
// from bit 0 to bit 7.
//
//	0: 12.5%
//	1: 25%
//	2: 50%
//	3: 75%
var dutyPatterns = [4]uint8{
	0b0000_0001,
	0b1000_0001,
	0b1000_0111,
	0b0111_1110,
}

// SquareWave is one of the two square channels of the APU. Channel
// 1 additionally owns a FrequencySweep.
type SquareWave struct {
	enabled bool
	// off is set while the APU is powered down
	off bool

	// NRx1
	duty         uint8
	dutyPosition uint8
	lastOutput   uint8

	// NRx3/NRx4
	frequency uint16
	timer     int

	envelope *VolumeEnvelope
	length   *LengthCounter
	sweep    *FrequencySweep
}

// NewSquareWave returns a square channel without a sweep unit.
func NewSquareWave() *SquareWave {
	s := &SquareWave{
		envelope: &VolumeEnvelope{},
		length:   &LengthCounter{},
	}
	s.length.disable = func() {
		s.enabled = false
	}
	return s
}

// NewSweepSquareWave returns a square channel with a sweep unit
// attached, as used by channel 1.
func NewSweepSquareWave() *SquareWave {
	s := NewSquareWave()
	s.sweep = NewFrequencySweep(s)
	return s
}

// Enabled reports whether the channel is currently producing sound.
func (s *SquareWave) Enabled() bool {
	return s.enabled
}

// Frequency returns the 11-bit frequency of the channel.
func (s *SquareWave) Frequency() uint16 {
	return s.frequency
}

// Sweep returns the sweep unit of the channel, or nil.
func (s *SquareWave) Sweep() *FrequencySweep {
	return s.sweep
}

// Cycle advances the channel by the given number of T-cycles and
// returns the current output sample, 0-15.
func (s *SquareWave) Cycle(cycles int) int {
	if s.sweep != nil {
		s.sweep.Cycle(cycles)
	}
	s.envelope.Cycle(cycles)
	s.length.Cycle(cycles)

	s.timer -= cycles
	for s.timer < 0 {
		period := 2048 - int(s.frequency)
		if period == 0 {
			s.timer = 0
		} else {
			s.timer += period * 4
		}
		s.dutyPosition = (s.dutyPosition + 1) & 7
		s.lastOutput = dutyPatterns[s.duty] >> s.dutyPosition & 1
	}

	if !s.enabled {
		return 0
	}
	return int(s.lastOutput) * int(s.envelope.Volume())
}

// Trigger restarts the channel, as done by writing bit 7 of NRx4.
func (s *SquareWave) Trigger() {
	s.enabled = s.envelope.DAC()
	s.length.Trigger()
	s.envelope.Trigger()
	s.timer = (2048 - int(s.frequency)) * 4
	if s.sweep != nil {
		s.sweep.Trigger()
	}
}

// Read returns the value of the channel register at offset
// 0-4 from NRx0.
func (s *SquareWave) Read(offset uint16) uint8 {
	switch offset {
	case 0:
		if s.sweep != nil {
			return s.sweep.NR10()
		}
	case 1:
		return s.duty<<6 | 0x3F // only the duty can be read
	case 2:
		return s.envelope.NR2()
	case 4:
		if s.length.Enabled() {
			return 0xFF
		}
		return 0xBF
	}
	return 0xFF
}

// Write writes the channel register at offset 0-4 from NRx0.
func (s *SquareWave) Write(offset uint16, value uint8) {
	switch offset {
	case 0:
		if s.sweep != nil {
			s.sweep.SetNR10(value)
		}
	case 1:
		if !s.off {
			s.duty = value >> 6
		}
		s.length.SetNR1(value)
	case 2:
		s.envelope.SetNR2(value)
		if !s.envelope.DAC() {
			s.enabled = false
		}
	case 3:
		s.frequency = s.frequency&0x700 | uint16(value)
	case 4:
		s.frequency = s.frequency&0x00FF | uint16(value&0x07)<<8
		s.length.SetNR4(value)
		if value&types.Bit7 != 0 {
			s.Trigger()
		}
	}
}

// Reset clears all channel state.
func (s *SquareWave) Reset() {
	s.enabled = false
	s.duty = 0
	s.dutyPosition = 0
	s.lastOutput = 0
	s.frequency = 0
	s.timer = 0
	s.envelope.Reset()
	s.length.Reset()
	if s.sweep != nil {
		s.sweep.Reset()
	}
}
