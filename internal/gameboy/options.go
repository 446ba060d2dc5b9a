package gameboy

import (
	"github.com/gamelin-emu/gamelin/internal/apu"
	"github.com/gamelin-emu/gamelin/internal/cartridge"
	"github.com/gamelin-emu/gamelin/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the emulator and its bus.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBootROM sets the boot ROM for the emulator. If we have a boot
// ROM, execution starts at 0x0000 with the registers cleared,
// otherwise the emulator will start at 0x100 with the registers set
// to the values upon completion of the boot ROM.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithRAMStore sets where cartridge RAM is loaded from and saved to.
func WithRAMStore(store cartridge.RAMStore) Opt {
	return func(gb *GameBoy) {
		gb.store = store
	}
}

// WithAudioOutput sets where the APU sends its samples.
func WithAudioOutput(output apu.Output) Opt {
	return func(gb *GameBoy) {
		gb.audio = output
	}
}

// WithSpeed scales the real time speed of Run.
func WithSpeed(speed float64) Opt {
	return func(gb *GameBoy) {
		if speed > 0 {
			gb.speed = speed
		}
	}
}
