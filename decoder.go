package arithcode

import "fmt"

// Decoder drives the interval-renormalization engine on the read side.
// It owns a Range, a precision-wide input register, and the bookkeeping
// needed to tolerate up to precision virtual zero bits past physical
// end-of-stream, matching the Encoder's one-bit Finish protocol.
type Decoder struct {
	precision uint
	rng       Range
	started   bool
	input     uint64
	finished  bool
	bitsLeft  uint
}

// NewDecoder returns a Decoder at the given bit precision. It must
// match the precision the corresponding Encoder used.
func NewDecoder(precision uint) *Decoder {
	if precision < 8 || precision >= 64 {
		panic(fmt.Sprintf("arithcode: NewDecoder: precision %d out of range [8, 64)", precision))
	}
	return &Decoder{precision: precision, rng: newRange(precision), bitsLeft: precision}
}

// Finished reports whether the EOF symbol has been decoded. Callers
// stop calling Decode once it returns true.
func (d *Decoder) Finished() bool { return d.finished }

// Decode locates the symbol whose subinterval under model contains the
// input register, renormalizing in lockstep with the Encoder that
// produced the stream. It returns model.EOF() (and sets Finished) once
// the end-of-stream symbol is found, without renormalizing further —
// the caller drops that symbol from its output.
//
// As with Encode, the caller must call model.UpdateSymbol on the
// decoded symbol afterward, not before, to keep both sides' adaptive
// state in lockstep.
func (d *Decoder) Decode(model *Model, in BitSource) (uint32, error) {
	if !d.started {
		for i := uint(0); i < d.precision; i++ {
			bit, err := d.bit(in)
			if err != nil {
				return 0, err
			}
			d.input = (d.input << 1) | bit
		}
		d.started = true
	}

	symbol, lo, hi, err := d.search(model)
	if err != nil {
		return 0, err
	}

	if symbol == model.eof {
		d.finished = true
		return symbol, nil
	}

	d.rng.updateRange(lo, hi)

	for d.rng.inBottomHalf() || d.rng.inUpperHalf() {
		if d.rng.inBottomHalf() {
			d.rng.scaleBottomHalf()
			bit, err := d.bit(in)
			if err != nil {
				return 0, err
			}
			d.input = (2 * d.input) | bit
		} else {
			d.rng.scaleUpperHalf()
			bit, err := d.bit(in)
			if err != nil {
				return 0, err
			}
			d.input = (2*(d.input-d.rng.halfMark()) | bit)
		}
	}

	for d.rng.inMiddleHalf() {
		d.rng.scaleMiddleHalf()
		bit, err := d.bit(in)
		if err != nil {
			return 0, err
		}
		d.input = (2*(d.input-d.rng.quarterMark()) | bit)
	}

	return symbol, nil
}

// search binary-searches [0, num_symbols) for the symbol whose
// cumulative interval under model contains the input register, relying
// on the Fenwick tree's guarantee that the cumulative distribution is
// monotonically nondecreasing. It returns the symbol along with the
// subinterval that matched, so Decode can commit it without
// recomputing.
func (d *Decoder) search(model *Model) (symbol uint32, lo, hi uint64, err error) {
	low, high := int64(0), int64(model.symbols)-1
	for {
		mid := low + (high-low)/2
		lo, hi = d.rng.calculateRange(uint32(mid), model)
		if lo <= d.input && d.input < hi {
			return uint32(mid), lo, hi, nil
		} else if d.input >= hi {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
}

// bit reads the next input bit, substituting a virtual zero for up to
// precision reads past physical end-of-stream before escalating to
// ErrUnexpectedEOF — the mechanism the Encoder's one-bit Finish relies
// on to round-trip correctly.
func (d *Decoder) bit(in BitSource) (uint64, error) {
	b, err := in.ReadBit()
	if err == nil {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	if d.bitsLeft == 0 {
		return 0, fmt.Errorf("arithcode: %w", ErrUnexpectedEOF)
	}
	d.bitsLeft--
	return 0, nil
}
