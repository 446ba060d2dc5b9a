// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"fmt"

	"github.com/gamelin-emu/gamelin/internal/interrupts"
	"github.com/gamelin-emu/gamelin/internal/types"
)

// Button represents a physical button on the Game Boy.
type Button uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

func (b Button) String() string {
	return [...]string{"A", "B", "Select", "Start", "Right", "Left", "Up", "Down"}[b]
}

// InterruptRequester latches the joypad interrupt.
type InterruptRequester interface {
	RequestInterrupt(kind interrupts.Kind)
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// pressed holds a 1 for every button currently held, the
	// lower 4 bits are used for the action buttons, and the
	// upper 4 bits are used for the direction buttons.
	pressed uint8
	// selected holds bits 4 and 5 of the register.
	selected uint8

	irq InterruptRequester
}

// New returns a new joypad state.
func New(irq InterruptRequester) *State {
	s := &State{irq: irq}
	s.Reset()
	return s
}

// Reset releases every button and deselects both groups.
func (s *State) Reset() {
	s.pressed = 0
	s.selected = types.Bit4 | types.Bit5
}

// Read implements the mmu.IODevice interface for P1.
func (s *State) Read(address uint16) uint8 {
	if address != types.P1 {
		panic(fmt.Sprintf("joypad: illegal read from %04X", address))
	}

	d := uint8(0)
	if s.selected&types.Bit4 == 0 {
		d |= s.pressed >> 4 & 0xf
	}
	if s.selected&types.Bit5 == 0 {
		d |= s.pressed & 0xf
	}
	return 0xC0 | s.selected | (d ^ 0xf)
}

// Write implements the mmu.IODevice interface for P1. Only
// the selection bits are writable.
func (s *State) Write(address uint16, value uint8) {
	if address != types.P1 {
		panic(fmt.Sprintf("joypad: illegal write to %04X", address))
	}
	s.selected = value & (types.Bit4 | types.Bit5)
}

// Press presses a button.
func (s *State) Press(button Button) {
	if s.pressed&(1<<button) != 0 {
		return
	}
	s.pressed |= 1 << button
	s.irq.RequestInterrupt(interrupts.Joypad)
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.pressed &^= 1 << button
}
