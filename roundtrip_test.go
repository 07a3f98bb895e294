package arithcode

import (
	"errors"
	"testing"
)

// bitBuffer is an in-memory BitSink and BitSource backed by a []bool,
// used so these tests exercise only the coder logic, not an I/O adapter.
type bitBuffer struct {
	bits []bool
	pos  int
}

func (b *bitBuffer) WriteBit(bit bool) error {
	b.bits = append(b.bits, bit)
	return nil
}

func (b *bitBuffer) ReadBit() (bool, error) {
	if b.pos >= len(b.bits) {
		return false, errIOEOF
	}
	bit := b.bits[b.pos]
	b.pos++
	return bit, nil
}

func (b *bitBuffer) bytes() []byte {
	out := make([]byte, (len(b.bits)+7)/8)
	for i, bit := range b.bits {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

var errIOEOF = errors.New("bitBuffer: exhausted")

func TestCanonicalEncodeVector(t *testing.T) {
	model := NewModelBuilder().NumSymbols(10).EOF(EOFEnd()).Build()
	enc := NewEncoder(30)
	buf := &bitBuffer{}

	for _, s := range []uint32{7, 2, 2, 2, 7} {
		if err := enc.Encode(s, model, buf); err != nil {
			t.Fatalf("Encode(%d): %v", s, err)
		}
		model.UpdateSymbol(s)
	}
	if err := enc.Encode(model.EOF(), model, buf); err != nil {
		t.Fatalf("Encode(EOF): %v", err)
	}
	if err := enc.Finish(buf); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	want := []byte{184, 96, 208}
	got := buf.bytes()
	if len(got) != len(want) {
		t.Fatalf("encoded length = %d, want %d (bytes: %v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	input := []uint32{7, 2, 2, 2, 7}

	encModel := NewModelBuilder().NumSymbols(10).EOF(EOFEnd()).Build()
	enc := NewEncoder(30)
	buf := &bitBuffer{}
	for _, s := range input {
		if err := enc.Encode(s, encModel, buf); err != nil {
			t.Fatalf("Encode(%d): %v", s, err)
		}
		encModel.UpdateSymbol(s)
	}
	if err := enc.Encode(encModel.EOF(), encModel, buf); err != nil {
		t.Fatalf("Encode(EOF): %v", err)
	}
	if err := enc.Finish(buf); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	decModel := NewModelBuilder().NumSymbols(10).EOF(EOFEnd()).Build()
	dec := NewDecoder(30)
	var got []uint32
	for !dec.Finished() {
		sym, err := dec.Decode(decModel, buf)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		decModel.UpdateSymbol(sym)
		if sym == decModel.EOF() {
			break
		}
		got = append(got, sym)
	}

	if len(got) != len(input) {
		t.Fatalf("decoded %v, want %v", got, input)
	}
	for i := range input {
		if got[i] != input[i] {
			t.Fatalf("decoded %v, want %v", got, input)
		}
	}
}

func TestByteRoundTripText(t *testing.T) {
	text := "Sherlock Holmes and the speckled band."

	encModel := NewModelBuilder().NumBits(8).EOF(EOFEndAddOne()).Build()
	enc := NewEncoder(48)
	buf := &bitBuffer{}
	for _, c := range []byte(text) {
		if err := enc.Encode(uint32(c), encModel, buf); err != nil {
			t.Fatalf("Encode(%d): %v", c, err)
		}
		encModel.UpdateSymbol(uint32(c))
	}
	if err := enc.Encode(encModel.EOF(), encModel, buf); err != nil {
		t.Fatalf("Encode(EOF): %v", err)
	}
	encModel.UpdateSymbol(encModel.EOF())
	if err := enc.Finish(buf); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if got := len(buf.bytes()); got >= len(text) {
		t.Errorf("compressed length %d not smaller than input length %d", got, len(text))
	}

	decModel := NewModelBuilder().NumBits(8).EOF(EOFEndAddOne()).Build()
	dec := NewDecoder(48)
	var out []byte
	for !dec.Finished() {
		sym, err := dec.Decode(decModel, buf)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		decModel.UpdateSymbol(sym)
		if sym == decModel.EOF() {
			break
		}
		out = append(out, byte(sym))
	}

	if string(out) != text {
		t.Fatalf("decoded %q, want %q", out, text)
	}
}

func TestUniformAdaptiveNearShannonBound(t *testing.T) {
	var input []uint32
	for i := 0; i < 1000; i++ {
		input = append(input, 0, 1, 2, 3)
	}

	encModel := NewModelBuilder().NumSymbols(5).EOF(EOFEnd()).Build()
	enc := NewEncoder(32)
	buf := &bitBuffer{}
	for _, s := range input {
		if err := enc.Encode(s, encModel, buf); err != nil {
			t.Fatalf("Encode(%d): %v", s, err)
		}
		encModel.UpdateSymbol(s)
	}
	if err := enc.Encode(encModel.EOF(), encModel, buf); err != nil {
		t.Fatalf("Encode(EOF): %v", err)
	}
	if err := enc.Finish(buf); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	want := 8000.0
	got := float64(len(buf.bits))
	if got > want*1.05 {
		t.Errorf("encoded %v bits, want within 5%% of Shannon bound %v", got, want)
	}
}

func TestContextSwitchedModels(t *testing.T) {
	const alphabet = 257
	const eof = 256

	input := []uint32{10, 20, 30, 40, 50, eof}

	encModels := make([]*Model, alphabet)
	for i := range encModels {
		encModels[i] = NewModelBuilder().NumSymbols(alphabet).EOF(EOFSpecify(eof)).Build()
	}
	enc := NewEncoder(40)
	buf := &bitBuffer{}
	ctx := uint32(0)
	for _, s := range input {
		m := encModels[ctx]
		if err := enc.Encode(s, m, buf); err != nil {
			t.Fatalf("Encode(%d) in context %d: %v", s, ctx, err)
		}
		m.UpdateSymbol(s)
		ctx = s % alphabet
	}
	if err := enc.Finish(buf); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	decModels := make([]*Model, alphabet)
	for i := range decModels {
		decModels[i] = NewModelBuilder().NumSymbols(alphabet).EOF(EOFSpecify(eof)).Build()
	}
	dec := NewDecoder(40)
	ctx = 0
	var got []uint32
	for !dec.Finished() {
		m := decModels[ctx]
		sym, err := dec.Decode(m, buf)
		if err != nil {
			t.Fatalf("Decode in context %d: %v", ctx, err)
		}
		m.UpdateSymbol(sym)
		got = append(got, sym)
		if sym == uint32(eof) {
			break
		}
		ctx = sym % alphabet
	}

	if len(got) != len(input) {
		t.Fatalf("decoded %v, want %v", got, input)
	}
	for i := range input {
		if got[i] != input[i] {
			t.Fatalf("decoded %v, want %v", got, input)
		}
	}
}

func TestTruncatedStreamReturnsUnexpectedEOF(t *testing.T) {
	model := NewModelBuilder().NumBits(8).EOF(EOFEndAddOne()).Build()
	enc := NewEncoder(48)
	buf := &bitBuffer{}
	for _, c := range []byte("hello world") {
		if err := enc.Encode(uint32(c), model, buf); err != nil {
			t.Fatalf("Encode: %v", err)
		}
		model.UpdateSymbol(uint32(c))
	}
	if err := enc.Encode(model.EOF(), model, buf); err != nil {
		t.Fatalf("Encode(EOF): %v", err)
	}
	if err := enc.Finish(buf); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	// Keep only a handful of real bits so the decoder must substitute far
	// more than precision virtual zero bits to finish the stream.
	truncated := &bitBuffer{bits: buf.bits[:8]}

	decModel := NewModelBuilder().NumBits(8).EOF(EOFEndAddOne()).Build()
	dec := NewDecoder(48)
	var sawErr error
	for !dec.Finished() {
		sym, err := dec.Decode(decModel, truncated)
		if err != nil {
			sawErr = err
			break
		}
		decModel.UpdateSymbol(sym)
		if sym == decModel.EOF() {
			break
		}
	}

	if sawErr == nil {
		t.Fatal("expected an error decoding a truncated stream, got none")
	}
	if !errors.Is(sawErr, ErrUnexpectedEOF) {
		t.Fatalf("error = %v, want one wrapping ErrUnexpectedEOF", sawErr)
	}
}
