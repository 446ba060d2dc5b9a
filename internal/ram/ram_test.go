package ram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAM(t *testing.T) {
	r := NewRAM(0x2000)
	assert.Equal(t, 0x2000, r.Len())

	r.Write(0x1FFF, 0xAB)
	assert.Equal(t, uint8(0xAB), r.Read(0x1FFF))
	assert.Zero(t, r.Read(0))

	r.Reset()
	assert.Zero(t, r.Read(0x1FFF))
	assert.Equal(t, 0x2000, r.Len())

	assert.Panics(t, func() { r.Read(0x2000) })
}
