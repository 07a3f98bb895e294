package arithcode

import "math/big"

// Range is the finite-precision integer representation of the current
// code interval [low, high). It is embedded in both Encoder and Decoder
// and is never shared between them.
//
// The interval is half-open: low is inclusive, high is exclusive, and
// the invariant 0 <= low < high <= 2^precision holds at every externally
// observable point.
type Range struct {
	low, high             uint64
	half, quarter, three4 uint64
}

// newRange constructs a Range at full width for the given precision.
func newRange(precision uint) Range {
	top := uint64(1) << precision
	return Range{
		low:     0,
		high:    top,
		half:    top / 2,
		quarter: top / 4,
		three4:  (top / 4) * 3,
	}
}

// calculateRange computes the subinterval a symbol narrows the current
// range to, without mutating r. The model's cumulative counts are
// widened through math/big so the multiply-then-divide is exact
// regardless of how large total_count grows — the same reason
// google-wuffs's interval package reaches for math/big rather than
// risking silent overflow in fixed-width interval arithmetic.
func (r *Range) calculateRange(symbol uint32, m *Model) (lo, hi uint64) {
	width := r.high - r.low
	cLow, cHigh := m.cumulative(symbol)

	w := new(big.Int).SetUint64(width)
	total := new(big.Int).SetUint64(uint64(m.total))

	loOffset := new(big.Int).Mul(w, big.NewInt(int64(cLow)))
	loOffset.Quo(loOffset, total)

	hiOffset := new(big.Int).Mul(w, big.NewInt(int64(cHigh)))
	hiOffset.Quo(hiOffset, total)

	return r.low + loOffset.Uint64(), r.low + hiOffset.Uint64()
}

// updateRange commits a previously computed subinterval.
func (r *Range) updateRange(lo, hi uint64) {
	r.low, r.high = lo, hi
}

// halfMark and quarterMark expose the boundary constants the Decoder needs to
// re-center its input register during renormalization.
func (r *Range) halfMark() uint64    { return r.half }
func (r *Range) quarterMark() uint64 { return r.quarter }

func (r *Range) inBottomHalf() bool    { return r.high < r.half }
func (r *Range) inUpperHalf() bool     { return r.low > r.half }
func (r *Range) inMiddleHalf() bool    { return r.low > r.quarter && r.high < r.three4 }
func (r *Range) inBottomQuarter() bool { return r.low <= r.quarter }

// scaleBottomHalf doubles the interval in place, assuming it sits below
// the midpoint.
func (r *Range) scaleBottomHalf() {
	r.low <<= 1
	r.high <<= 1
}

// scaleUpperHalf doubles the interval in place, assuming it sits above
// the midpoint.
func (r *Range) scaleUpperHalf() {
	r.low = (r.low - r.half) << 1
	r.high = (r.high - r.half) << 1
}

// scaleMiddleHalf doubles the interval in place, assuming it straddles
// the midpoint but stays within the central half.
func (r *Range) scaleMiddleHalf() {
	r.low = (r.low - r.quarter) << 1
	r.high = (r.high - r.quarter) << 1
}
