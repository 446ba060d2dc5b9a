// Package gameboy provides an emulation of a Nintendo Game Boy. The
// GameBoy wires the CPU, bus and devices together, and drives the
// devices forward by the cycles each CPU step consumed.
package gameboy

import (
	"context"
	"io"
	"time"

	"github.com/gamelin-emu/gamelin/internal/apu"
	"github.com/gamelin-emu/gamelin/internal/cartridge"
	"github.com/gamelin-emu/gamelin/internal/cpu"
	"github.com/gamelin-emu/gamelin/internal/interrupts"
	"github.com/gamelin-emu/gamelin/internal/joypad"
	"github.com/gamelin-emu/gamelin/internal/mmu"
	"github.com/gamelin-emu/gamelin/internal/timer"
	"github.com/gamelin-emu/gamelin/internal/types"
	"github.com/gamelin-emu/gamelin/pkg/log"
	"github.com/pkg/errors"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = types.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = 70224 // 4194304 / 59.7
	// FrameTime is the wall clock duration of a single frame.
	FrameTime = time.Second * CyclesPerFrame / ClockSpeed
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	APU        *apu.APU
	Joypad     *joypad.State
	Interrupts *interrupts.Service
	Timer      *timer.Controller

	log.Logger

	bootROM []byte
	store   cartridge.RAMStore
	audio   apu.Output
	speed   float64

	// cycles counts the T-cycles elapsed since the last reset
	cycles uint64
}

// NewGameBoy returns a new GameBoy without a game. The machine
// is reset, and ready to run once a game has been loaded.
func NewGameBoy(opts ...Opt) *GameBoy {
	irq := interrupts.NewService()
	g := &GameBoy{
		Interrupts: irq,
		Logger:     log.New(),
		speed:      1,
	}

	for _, opt := range opts {
		opt(g)
	}

	g.MMU = mmu.NewMMU(irq, g.Logger)
	g.Timer = timer.NewController(g.MMU)
	g.APU = apu.NewAPU(g.audio)
	g.Joypad = joypad.New(g.MMU)
	g.CPU = cpu.New(g.MMU, g, irq)

	g.MMU.AttachDevice(g.Joypad, types.P1)
	g.MMU.AttachDevice(g.Timer, types.DIV, types.TIMA, types.TMA, types.TAC)
	g.MMU.AttachDevice(g.APU, g.APU.Addresses()...)

	if g.bootROM != nil {
		if err := g.MMU.SetBootROM(g.bootROM); err != nil {
			g.Errorf("ignoring boot ROM: %v", err)
		}
	}

	g.Reset()
	return g
}

// SetBootROM maps rom over the start of the address space on the
// next reset. Without a boot ROM, Reset skips straight to the state
// the boot ROM leaves behind.
func (g *GameBoy) SetBootROM(rom []byte) error {
	if err := g.MMU.SetBootROM(rom); err != nil {
		return err
	}
	g.Reset()
	return nil
}

// LoadGame inserts the game in rom, and resets the machine. If the
// game cannot be loaded the machine is left untouched.
func (g *GameBoy) LoadGame(rom []byte) error {
	// the new game may share its save key with the inserted one,
	// so its RAM has to reach the store before the new game loads
	if err := g.Save(); err != nil {
		g.Errorf("saving %s: %v", g.MMU.Cart.Title(), err)
	}

	cart, err := cartridge.New(rom, g.store)
	if err != nil {
		return errors.Wrap(err, "loading game")
	}

	g.MMU.LoadCartridge(cart)
	g.Infof("loaded %s", cart.Header())
	g.Reset()
	return nil
}

// Reset returns every component to its power on state. The
// cartridge stays inserted.
func (g *GameBoy) Reset() {
	g.CPU.Reset()
	g.MMU.Reset()
	g.Interrupts.Reset()
	g.Timer.Reset()
	g.APU.Reset()
	g.Joypad.Reset()
	g.cycles = 0

	if !g.MMU.BootROMActive() {
		g.SkipBios()
	}
}

// SkipBios puts the machine into the state the DMG boot ROM
// leaves it in when handing control to the cartridge.
func (g *GameBoy) SkipBios() {
	g.MMU.DisableBootROM()

	g.CPU.PC = 0x0100
	g.CPU.SP = 0xFFFE
	g.CPU.WriteD(cpu.RegAF, 0x01B0)
	g.CPU.WriteD(cpu.RegBC, 0x0013)
	g.CPU.WriteD(cpu.RegDE, 0x00D8)
	g.CPU.WriteD(cpu.RegHL, 0x014D)

	g.MMU.Write(types.NR52, 0xF1)
	g.MMU.Write(types.NR51, 0xF3)
	g.MMU.Write(types.NR50, 0x77)
	g.MMU.Write(types.LCDC, 0x91)
	g.MMU.Write(types.BGP, 0xFC)
}

// Step executes a single CPU step, advancing every other
// component by the cycles it took.
func (g *GameBoy) Step() {
	g.CPU.NextInstruction()
}

// Advance implements cpu.Clock, stepping the timer and then the
// APU by m M-cycles.
func (g *GameBoy) Advance(m int) {
	t := m * 4
	g.cycles += uint64(t)
	g.Timer.Step(t)
	g.APU.Cycle(t)
}

// Cycles returns the T-cycles elapsed since the last reset.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// RunFor steps the machine until d of emulated time has passed.
func (g *GameBoy) RunFor(d time.Duration) {
	target := g.cycles + uint64(d.Seconds()*ClockSpeed)
	for g.cycles < target {
		g.Step()
	}
}

// Run emulates the machine in real time, scaled by the configured
// speed, until ctx is cancelled.
func (g *GameBoy) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(float64(FrameTime) / g.speed))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			g.RunFor(FrameTime)
		}
	}
}

// Read returns the value of the given CPU register.
func (g *GameBoy) Read(reg cpu.Reg) uint8 {
	return g.CPU.Read(reg)
}

// Flag returns the value of the given CPU flag.
func (g *GameBoy) Flag(flag cpu.Flag) bool {
	return g.CPU.Flag(flag)
}

// MooneyeFinished returns true once a mooneye test ROM has passed,
// signalled by the Fibonacci numbers in B, C, D, E, H and L.
func (g *GameBoy) MooneyeFinished() bool {
	return g.Read(cpu.RegA) == 0 &&
		g.Read(cpu.RegB) == 3 && g.Read(cpu.RegC) == 5 &&
		g.Read(cpu.RegD) == 8 && g.Read(cpu.RegE) == 13 &&
		g.Read(cpu.RegH) == 21 && g.Read(cpu.RegL) == 34
}

// Save persists the external RAM of the inserted cartridge.
func (g *GameBoy) Save() error {
	if g.MMU.Cart == nil || g.store == nil {
		return nil
	}
	return g.MMU.Cart.Save(g.store)
}

// Close saves the game, and closes the audio output if it
// needs closing.
func (g *GameBoy) Close() error {
	err := g.Save()
	if closer, ok := g.audio.(io.Closer); ok {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
