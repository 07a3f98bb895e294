// Package bitio adapts github.com/icza/bitio's MSB-first bit reader and
// writer to the arithcode.BitSink and arithcode.BitSource capabilities,
// the same role icza/bitio plays for github.com/mewkiz/flac's frame
// encoder and decoder. Callers that don't want the dependency are free
// to implement BitSink/BitSource themselves — these are conveniences,
// not part of the core contract.
package bitio

import (
	"io"

	"github.com/icza/bitio"
)

// Sink writes bits MSB-first to an underlying io.Writer, satisfying
// arithcode.BitSink and arithcode.BytePadder.
type Sink struct {
	w *bitio.Writer
}

// NewSink wraps w for bit-at-a-time writes.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: bitio.NewWriter(w)}
}

// WriteBit writes a single bit.
func (s *Sink) WriteBit(bit bool) error {
	return s.w.WriteBool(bit)
}

// PadToByte flushes any partial byte, padding with zero bits.
func (s *Sink) PadToByte() error {
	_, err := s.w.Align()
	return err
}

// Close flushes any partial byte and releases the writer. Callers that
// wrap an io.Writer needing an explicit Close (e.g. a file) should call
// this instead of, or in addition to, PadToByte.
func (s *Sink) Close() error {
	return s.w.Close()
}

// Source reads bits MSB-first from an underlying io.Reader, satisfying
// arithcode.BitSource.
type Source struct {
	r *bitio.Reader
}

// NewSource wraps r for bit-at-a-time reads.
func NewSource(r io.Reader) *Source {
	return &Source{r: bitio.NewReader(r)}
}

// ReadBit reads a single bit. Once the underlying reader is exhausted,
// every subsequent call returns an error, which arithcode.Decoder
// treats as a run of virtual zero bits.
func (s *Source) ReadBit() (bool, error) {
	return s.r.ReadBool()
}
