package arithcode

import "fmt"

// Encoder drives the interval-renormalization engine on the write side.
// It owns a Range and a pending_bits counter; it does not own a Model —
// the caller passes one (or swaps between several, for context
// modeling) on every call to Encode.
type Encoder struct {
	precision uint
	rng       Range
	pending   uint32
}

// NewEncoder returns an Encoder at the given bit precision. precision
// must satisfy 8 <= precision < 64; Encoder and Decoder on the two ends
// of a stream must agree on it.
func NewEncoder(precision uint) *Encoder {
	if precision < 8 || precision >= 64 {
		panic(fmt.Sprintf("arithcode: NewEncoder: precision %d out of range [8, 64)", precision))
	}
	return &Encoder{precision: precision, rng: newRange(precision)}
}

// Encode narrows the interval to symbol's subinterval under model, then
// renormalizes, writing committed bits to out. The caller must call
// model.UpdateSymbol(symbol) afterward — never before — if the model is
// adaptive.
func (e *Encoder) Encode(symbol uint32, model *Model, out BitSink) error {
	if symbol >= model.symbols {
		panic(fmt.Sprintf("arithcode: Encode: symbol %d out of range [0, %d)", symbol, model.symbols))
	}

	lo, hi := e.rng.calculateRange(symbol, model)
	e.rng.updateRange(lo, hi)

	for e.rng.inBottomHalf() || e.rng.inUpperHalf() {
		if e.rng.inBottomHalf() {
			e.rng.scaleBottomHalf()
			if err := e.emit(false, out); err != nil {
				return err
			}
		} else {
			e.rng.scaleUpperHalf()
			if err := e.emit(true, out); err != nil {
				return err
			}
		}
	}

	for e.rng.inMiddleHalf() {
		e.pending++
		e.rng.scaleMiddleHalf()
	}

	return nil
}

// emit writes bit, then flushes any pending bits with the complementary
// polarity — the resolution of the deferred decisions middle-half
// scaling accumulated.
func (e *Encoder) emit(bit bool, out BitSink) error {
	if err := out.WriteBit(bit); err != nil {
		return err
	}
	for ; e.pending > 0; e.pending-- {
		if err := out.WriteBit(!bit); err != nil {
			return err
		}
	}
	return nil
}

// Finish emits the trailing bit that disambiguates the final interval
// from its siblings and flushes any pending bits. Call it exactly once,
// after encoding the model's EOF symbol (or after the last symbol, if
// the caller tracks length out of band). If out also implements
// BytePadder, Finish pads the output to a byte boundary.
func (e *Encoder) Finish(out BitSink) error {
	e.pending++
	if e.rng.inBottomQuarter() {
		if err := e.emit(false, out); err != nil {
			return err
		}
	} else {
		if err := e.emit(true, out); err != nil {
			return err
		}
	}
	if padder, ok := out.(BytePadder); ok {
		return padder.PadToByte()
	}
	return nil
}
