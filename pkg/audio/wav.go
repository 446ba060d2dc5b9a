package audio

import (
	"os"
	"sync"

	"github.com/gamelin-emu/gamelin/internal/apu"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

const (
	bitDepth = 16
	channels = 2
	// pcmFormat is the WAVE format tag for integer PCM.
	pcmFormat = 1

	chunkFrames = 4096
)

// WAVRecorder writes the samples it is played into a 16-bit
// stereo WAV file. The file is only valid once Close has been
// called.
type WAVRecorder struct {
	mu  sync.Mutex
	f   *os.File
	enc *wav.Encoder
	buf *goaudio.IntBuffer

	frames int
	err    error
}

var _ apu.Output = (*WAVRecorder)(nil)

// NewWAVRecorder creates the file at path, and records into it.
func NewWAVRecorder(path string) (*WAVRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating recording")
	}

	return &WAVRecorder{
		f:   f,
		enc: wav.NewEncoder(f, apu.SampleRate, bitDepth, channels, pcmFormat),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: apu.SampleRate},
			Data:           make([]int, 0, chunkFrames*channels),
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// Play implements apu.Output.
func (w *WAVRecorder) Play(left, right int16) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Data = append(w.buf.Data, int(left), int(right))
	w.frames++
	if len(w.buf.Data) >= chunkFrames*channels {
		w.flush()
	}
}

// Frames returns the number of stereo frames recorded.
func (w *WAVRecorder) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// flush encodes the buffered samples. The first error is kept
// and reported by Close.
func (w *WAVRecorder) flush() {
	if w.err == nil && len(w.buf.Data) > 0 {
		w.err = w.enc.Write(w.buf)
	}
	w.buf.Data = w.buf.Data[:0]
}

// Close writes the remaining samples, finalises the WAV header
// and closes the file.
func (w *WAVRecorder) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.flush()
	if err := w.enc.Close(); err != nil && w.err == nil {
		w.err = err
	}
	if err := w.f.Close(); err != nil && w.err == nil {
		w.err = err
	}
	return errors.Wrap(w.err, "closing recording")
}
