// Package ram provides a basic RAM implementation.
package ram

// RAM represents a fixed size block of RAM, indexed from 0.
type RAM struct {
	data []byte
}

// NewRAM returns a new zeroed RAM of size bytes.
func NewRAM(size int) *RAM {
	return &RAM{
		data: make([]byte, size),
	}
}

// Read returns the value at the given offset.
func (r *RAM) Read(offset uint16) uint8 {
	return r.data[offset]
}

// Write writes the value to the given offset.
func (r *RAM) Write(offset uint16, value uint8) {
	r.data[offset] = value
}

// Len returns the size of the RAM.
func (r *RAM) Len() int {
	return len(r.data)
}

// Reset zeroes the RAM in place.
func (r *RAM) Reset() {
	for i := range r.data {
		r.data[i] = 0
	}
}
