package tests

import (
	"testing"
	"time"

	"github.com/gamelin-emu/gamelin/internal/cartridge"
	"github.com/gamelin-emu/gamelin/internal/gameboy"
	"github.com/gamelin-emu/gamelin/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fibonacciProgram computes the fibonacci sequence into WRAM, seeded
// with a 1 read from ROM bank 2, then loads 3/5/8/13/21/34 into
// B, C, D, E, H and L the way a passing mooneye ROM does.
var fibonacciProgram = []byte{
	0x3E, 0x02, // LD A, 2
	0xEA, 0x00, 0x20, // LD (0x2000), A
	0xFA, 0x00, 0x40, // LD A, (0x4000)
	0x21, 0x00, 0xC0, // LD HL, 0xC000
	0x22,       // LD (HL+), A
	0x22,       // LD (HL+), A
	0x06, 0x07, // LD B, 7
	// loop:
	0x2B,       // DEC HL
	0x3A,       // LD A, (HL-)
	0x4E,       // LD C, (HL)
	0x81,       // ADD A, C
	0x23,       // INC HL
	0x23,       // INC HL
	0x22,       // LD (HL+), A
	0x05,       // DEC B
	0x20, 0xF6, // JR NZ, loop
	0x21, 0x03, 0xC0, // LD HL, 0xC003
	0x2A, 0x47, // LD A, (HL+); LD B, A
	0x2A, 0x4F, // LD A, (HL+); LD C, A
	0x2A, 0x57, // LD A, (HL+); LD D, A
	0x2A, 0x5F, // LD A, (HL+); LD E, A
	0x2A,       // LD A, (HL+)
	0x6E,       // LD L, (HL)
	0x67,       // LD H, A
	0xAF,       // XOR A
	0x18, 0xFE, // JR -2
}

type programTest struct {
	name    string
	rom     []byte
	passed  bool
	romBank int
	seconds time.Duration
}

func (p *programTest) Name() string {
	return p.name
}

func (p *programTest) Passed() bool {
	return p.passed
}

func (p *programTest) Run(t *testing.T) {
	g := gameboy.NewGameBoy(gameboy.WithLogger(log.NewNullLogger()))
	require.NoError(t, g.LoadGame(p.rom))
	require.False(t, g.MooneyeFinished())

	g.RunFor(p.seconds)

	p.passed = assert.True(t, g.MooneyeFinished()) &&
		assert.Equal(t, p.romBank, g.MMU.Cart.ROMBank())
}

// newMBC1ROM returns a 128kB MBC1 image with program at 0x0150,
// and a 1 at the start of bank 2.
func newMBC1ROM(program []byte) []byte {
	rom := make([]byte, 0x20000)
	copy(rom[0x0100:], []byte{0x00, 0xC3, 0x50, 0x01}) // NOP; JP 0x0150
	copy(rom[0x0134:], "FIBONACCI")
	rom[0x0147] = uint8(cartridge.MBC1)
	rom[0x0148] = 2
	copy(rom[0x0150:], program)
	rom[2*0x4000] = 1
	return rom
}

func TestPrograms(t *testing.T) {
	suite := &TestSuite{name: "programs"}
	suite.NewTestCollection("mbc1").Add(&programTest{
		name:    "fibonacci",
		rom:     newMBC1ROM(fibonacciProgram),
		romBank: 2,
		seconds: time.Millisecond,
	})

	runSuite(t, suite)

	passed, total := suite.Summary()
	assert.Equal(t, total, passed)
}
