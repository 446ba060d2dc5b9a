package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware registers are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// SB is the address of the SB hardware register. The SB
	// hardware register holds the byte being shifted over the
	// serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. The SC
	// hardware register is used to control the serial port.
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. The DIV
	// hardware register is incremented at a rate of 16384Hz. Internally
	// it is a 16-bit counter, of which only the upper 8 bits may be read.
	// Writing any value resets the whole counter to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. The TIMA
	// hardware register is incremented at a rate specified by the TAC
	// hardware register. When TIMA overflows it reads 0 for 4 cycles,
	// after which it is reloaded from TMA and a timer interrupt is
	// requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register. The TAC
	// hardware register is used to control the timer.
	//
	//  Bit 2:   Timer Enable (0=Stop, 1=Start)
	//  Bit 1-0: Input Clock Select
	//           00: 4096 Hz   (1024 cycles)
	//           01: 262144 Hz (16 cycles)
	//           10: 65536 Hz  (64 cycles)
	//           11: 16384 Hz  (256 cycles)
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// NR10 is the sweep register of channel 1.
	//
	//  Bit 6-4: Sweep period
	//  Bit 3:   Negate (0=Addition, 1=Subtraction)
	//  Bit 2-0: Shift
	NR10 HardwareAddress = 0xFF10
	// NR11 holds the wave duty (bits 6-7) and length load
	// (bits 0-5) of channel 1.
	NR11 HardwareAddress = 0xFF11
	// NR12 is the volume envelope of channel 1.
	NR12 HardwareAddress = 0xFF12
	// NR13 holds the lower 8 bits of channel 1's frequency.
	NR13 HardwareAddress = 0xFF13
	// NR14 holds the trigger (bit 7), length enable (bit 6)
	// and upper 3 frequency bits of channel 1.
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR23 HardwareAddress = 0xFF18
	NR24 HardwareAddress = 0xFF19
	// NR50 controls the master volume of the left (bits 4-6)
	// and right (bits 0-2) outputs.
	NR50 HardwareAddress = 0xFF24
	// NR51 selects which channels are panned to which output.
	NR51 HardwareAddress = 0xFF25
	// NR52 is the sound on/off register. Bit 7 powers the APU,
	// bits 0-3 report which channels are currently enabled.
	NR52 HardwareAddress = 0xFF26
	// LCDC is the address of the LCDC hardware register. The LCDC
	// hardware register is used to control the LCD.
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the STAT hardware register.
	STAT HardwareAddress = 0xFF41
	// LY is the address of the LY hardware register. The LY
	// hardware register is the current scanline being rendered,
	// and may not be written to by the CPU.
	LY HardwareAddress = 0xFF44
	// BGP is the address of the BGP hardware register. The BGP
	// hardware register is used to set the shade of grey to use for
	// the background palette. The CPU may only write to it, reads
	// return 0xFF.
	//
	// The palette is set as follows:
	//  Bit 7-6 - Shade for Color Number 3
	//  Bit 5-4 - Shade for Color Number 2
	//  Bit 3-2 - Shade for Color Number 1
	//  Bit 1-0 - Shade for Color Number 0
	BGP HardwareAddress = 0xFF47
	// BDIS is the address of the BDIS hardware register. The BDIS
	// hardware register is used only to disable the boot ROM.
	BDIS HardwareAddress = 0xFF50
	// IE is the address of the IE hardware register. The IE
	// hardware register is used to Enable interrupts. Writing a 1
	// to a bit in IE Enables the corresponding interrupt, and writing
	// a 0 disables the interrupt.
	IE HardwareAddress = 0xFFFF
)

// BootSwitch is the address that the boot ROM writes to on
// completion, disabling the boot overlay.
const BootSwitch uint16 = 0x01FE
