package timer

import (
	"testing"

	"github.com/gamelin-emu/gamelin/internal/interrupts"
	"github.com/gamelin-emu/gamelin/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requests struct {
	kinds []interrupts.Kind
}

func (r *requests) RequestInterrupt(kind interrupts.Kind) {
	r.kinds = append(r.kinds, kind)
}

func TestDividerIncrementsAfter256Cycles(t *testing.T) {
	c := NewController(&requests{})

	c.Step(255)
	assert.Equal(t, uint8(0), c.Read(types.DIV))
	c.Step(1)
	assert.Equal(t, uint8(1), c.Read(types.DIV))

	for i := 0; i < 255*256; i++ {
		c.Step(1)
	}
	assert.Equal(t, uint8(0), c.Read(types.DIV), "DIV wraps")
}

func TestDividerWriteResets(t *testing.T) {
	for _, v := range []uint8{0x00, 0x5A, 0xFF} {
		c := NewController(&requests{})
		c.Write(types.TAC, 0x05) // 16 cycle period
		c.Step(0x0F00)
		require.NotZero(t, c.Read(types.DIV))

		c.Write(types.DIV, v)
		assert.Equal(t, uint16(0), c.Divider())
		assert.Equal(t, uint8(0), c.Read(types.DIV))

		// the accumulator was reset too, so 15 cycles do not increment TIMA
		tima := c.Read(types.TIMA)
		c.Step(15)
		assert.Equal(t, tima, c.Read(types.TIMA))
		c.Step(1)
		assert.Equal(t, tima+1, c.Read(types.TIMA))
	}
}

func TestTACReadMask(t *testing.T) {
	c := NewController(&requests{})
	assert.Equal(t, uint8(0xF8), c.Read(types.TAC))
	c.Write(types.TAC, 0xFF)
	assert.Equal(t, uint8(0xFF), c.Read(types.TAC))
	c.Write(types.TAC, 0x05)
	assert.Equal(t, uint8(0xFD), c.Read(types.TAC))
}

func TestTimerPeriods(t *testing.T) {
	for tac, period := range map[uint8]int{0x04: 1024, 0x05: 16, 0x06: 64, 0x07: 256} {
		c := NewController(&requests{})
		c.Write(types.TAC, tac)
		c.Step(period - 1)
		assert.Equal(t, uint8(0), c.Read(types.TIMA), "TAC %02X", tac)
		c.Step(1)
		assert.Equal(t, uint8(1), c.Read(types.TIMA), "TAC %02X", tac)
	}
}

func TestTimerStopped(t *testing.T) {
	c := NewController(&requests{})
	c.Write(types.TAC, 0x01)
	c.Step(4096)
	assert.Equal(t, uint8(0), c.Read(types.TIMA))
}

func TestTimerReloadLatency(t *testing.T) {
	r := &requests{}
	c := NewController(r)
	c.Write(types.TMA, 0xAB)
	c.Write(types.TIMA, 0xFF)
	c.Write(types.TAC, 0x05)

	// overflow on the 16th cycle
	for i := 0; i < 16; i++ {
		c.Step(1)
	}
	assert.Equal(t, uint8(0x00), c.Read(types.TIMA))
	assert.Empty(t, r.kinds)

	for i := 0; i < 3; i++ {
		c.Step(1)
		assert.Equal(t, uint8(0x00), c.Read(types.TIMA), "cycle %d after overflow", i+1)
		assert.Empty(t, r.kinds)
	}

	c.Step(1)
	assert.Equal(t, uint8(0xAB), c.Read(types.TIMA))
	assert.Equal(t, []interrupts.Kind{interrupts.Timer}, r.kinds)
}

func TestTimerCanInterrupt(t *testing.T) {
	r := &requests{}
	c := NewController(r)
	c.Write(types.TAC, 0x05)

	// 256 increments overflow TIMA, and the reload follows 4 cycles later
	for i := 0; i < 256*16+4; i += 4 {
		c.Step(4)
	}
	assert.Equal(t, []interrupts.Kind{interrupts.Timer}, r.kinds)
}

func TestTIMAWriteCancelsReload(t *testing.T) {
	r := &requests{}
	c := NewController(r)
	c.Write(types.TMA, 0x10)
	c.Write(types.TIMA, 0xFF)
	c.Write(types.TAC, 0x05)

	c.Step(16)
	c.Write(types.TIMA, 0x33)
	c.Step(4)
	assert.Equal(t, uint8(0x33), c.Read(types.TIMA))
	assert.Empty(t, r.kinds)
}
