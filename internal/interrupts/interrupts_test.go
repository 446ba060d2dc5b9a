package interrupts

import (
	"testing"

	"github.com/gamelin-emu/gamelin/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindVectors(t *testing.T) {
	expected := map[Kind]uint16{
		VBlank: 0x40,
		LCDC:   0x48,
		Timer:  0x50,
		Serial: 0x58,
		Joypad: 0x60,
	}
	for k, v := range expected {
		assert.Equal(t, v, k.Vector(), k.String())
		assert.Equal(t, uint8(1)<<k.Position(), k.Mask(), k.String())
	}
}

func TestFlagRegisterMasks(t *testing.T) {
	s := NewService()
	s.Write(types.IF, 0xFF)
	assert.Equal(t, uint8(0x1F), s.Flag)
	assert.Equal(t, uint8(0xFF), s.Read(types.IF))

	s.Write(types.IF, 0x00)
	assert.Equal(t, uint8(0xE0), s.Read(types.IF))

	s.Write(types.IE, 0xFF)
	assert.Equal(t, uint8(0xFF), s.Read(types.IE))
}

func TestNextFollowsPriority(t *testing.T) {
	s := NewService()
	s.Enable = 0x1F
	s.Flag = 0x06

	k, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, LCDC, k)

	s.Acknowledge(k)
	assert.Equal(t, uint8(0x04), s.Flag)

	k, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, Timer, k)
}

func TestNextIgnoresDisabled(t *testing.T) {
	s := NewService()
	s.Request(VBlank)
	s.Request(Joypad)
	s.Enable = Joypad.Mask()

	k, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, Joypad, k)

	s.Enable = 0
	_, ok = s.Next()
	assert.False(t, ok)
	assert.False(t, s.HasInterrupts())
}
