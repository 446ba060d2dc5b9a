package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/cespare/xxhash"
	"github.com/gamelin-emu/gamelin/internal/boot"
	"github.com/gamelin-emu/gamelin/internal/cartridge"
	"github.com/gamelin-emu/gamelin/internal/gameboy"
	"github.com/gamelin-emu/gamelin/pkg/audio"
	"github.com/gamelin-emu/gamelin/pkg/log"
	"github.com/gamelin-emu/gamelin/pkg/saves"
	"github.com/gamelin-emu/gamelin/pkg/utils"
	"github.com/pkg/errors"
)

type Globals struct {
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"info" enum:"debug,info,warn,error"`

	logger log.Logger
}

type runCmd struct {
	BootROM string        `name:"boot" help:"Use boot ROM" type:"existingfile"`
	Saves   string        `help:"Folder to keep battery saves in" default:"saves" type:"path"`
	Record  string        `help:"Record the audio output to a WAV file" type:"path"`
	Seconds time.Duration `help:"Emulate for this long as fast as possible, then exit"`
	Speed   float64       `help:"Speed multiplier when running in real time" default:"1"`

	Path string `arg:"" name:"path" help:"Path to ROM" type:"existingfile"`
}

func (r *runCmd) Run(g *Globals) error {
	rom, err := utils.LoadFile(r.Path)
	if err != nil {
		return err
	}

	store, err := saves.NewFileStore(r.Saves)
	if err != nil {
		return err
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(g.logger),
		gameboy.WithRAMStore(store),
		gameboy.WithSpeed(r.Speed),
	}
	if r.BootROM != "" {
		b, err := utils.LoadFile(r.BootROM)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(b))
	}
	if r.Record != "" {
		rec, err := audio.NewWAVRecorder(r.Record)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithAudioOutput(rec))
	}

	gb := gameboy.NewGameBoy(opts...)
	defer func() {
		if err := gb.Close(); err != nil {
			g.logger.Errorf("closing: %v", err)
		}
	}()
	if err := gb.LoadGame(rom); err != nil {
		return err
	}

	if r.Seconds > 0 {
		start := time.Now()
		gb.RunFor(r.Seconds)
		g.logger.Infof("emulated %s in %s", r.Seconds, time.Since(start).Round(time.Millisecond))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := gb.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type infoCmd struct {
	BootROM string `name:"boot" help:"Also identify a boot ROM" type:"existingfile"`

	Path string `arg:"" name:"path" help:"Path to ROM" type:"existingfile"`
}

func (i *infoCmd) Run(ctx *kong.Context) error {
	rom, err := utils.LoadFile(i.Path)
	if err != nil {
		return err
	}
	h, err := cartridge.ParseHeader(rom)
	if err != nil {
		return err
	}
	printInfo(ctx.Stdout, rom, h)

	if i.BootROM != "" {
		b, err := utils.LoadFile(i.BootROM)
		if err != nil {
			return err
		}
		bootROM, err := boot.LoadBootROM(b)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.Stdout, "Boot ROM:    %s (%s)\n", bootROM.Model(), bootROM.Checksum())
	}
	return nil
}

func printInfo(w io.Writer, rom []byte, h *cartridge.Header) {
	fmt.Fprintf(w, "Title:       %s\n", h.Title)
	fmt.Fprintf(w, "Hardware:    %s\n", h.Hardware())
	fmt.Fprintf(w, "Type:        %s\n", h.CartridgeType)
	fmt.Fprintf(w, "ROM:         %dkB (%d banks)\n", h.ROMBanks*16, h.ROMBanks)
	fmt.Fprintf(w, "RAM:         %dkB (%d banks)\n", h.RAMBanks*8, h.RAMBanks)
	fmt.Fprintf(w, "Checksum:    %02X (valid: %t)\n", h.HeaderChecksum, h.ValidChecksum())
	fmt.Fprintf(w, "Fingerprint: %016x\n", xxhash.Sum64(rom))
}

var cli struct {
	Globals

	Run  runCmd  `cmd:"" help:"Run a ROM"`
	Info infoCmd `cmd:"" help:"Print the cartridge header of a ROM"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("gamelin"),
		kong.Description("A Game Boy (DMG) emulator."),
		kong.UsageOnError(),
	)

	level, err := log.ParseLevel(cli.LogLevel)
	ctx.FatalIfErrorf(err)
	cli.logger = log.NewWithWriter(os.Stderr, level)

	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}
