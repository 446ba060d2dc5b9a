package cartridge

import "github.com/pkg/errors"

var (
	// ErrUnsupportedController is returned when the header names a
	// controller other than none, MBC1 or MBC3.
	ErrUnsupportedController = errors.New("unsupported cartridge controller")
	// ErrUnsupportedROMSize is returned for an unknown ROM size byte.
	ErrUnsupportedROMSize = errors.New("unsupported ROM size")
	// ErrUnsupportedRAMSize is returned for an unknown RAM size byte.
	ErrUnsupportedRAMSize = errors.New("unsupported RAM size")
	// ErrROMTooSmall is returned when the image is shorter than its
	// header claims.
	ErrROMTooSmall = errors.New("ROM image too small")
)
