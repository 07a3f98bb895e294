package arithcode

import "github.com/mrjoshuak/arithcode/internal/fenwick"

// Model is an adaptive frequency table over num_symbols symbols. Its
// cumulative sums are maintained in a Fenwick tree so that both the
// per-symbol probability lookup and the incremental update after each
// coded symbol are O(log n).
//
// A Model is built with a ModelBuilder, never constructed directly. It
// may be shared by reference between an Encoder and a Decoder coding
// the same stream, and swapped per symbol for context modeling, but
// must not be mutated concurrently with an in-flight encode/decode call
// that reads it — the caller owns that exclusion.
type Model struct {
	counts  []uint32
	tree    *fenwick.Tree
	total   uint32
	eof     uint32
	symbols uint32
}

// cumulative returns the (low, high) cumulative counts for symbol,
// i.e. the raw integers behind probability, used by Range for exact
// integer interval arithmetic.
func (m *Model) cumulative(symbol uint32) (lo, hi uint32) {
	hi = m.tree.PrefixSum(int(symbol))
	lo = hi - m.counts[symbol]
	return lo, hi
}

// Probability returns the (low, high) cumulative probability of symbol
// as a fraction of total_count, in [0, 1].
func (m *Model) Probability(symbol uint32) (low, high float64) {
	lo, hi := m.cumulative(symbol)
	total := float64(m.total)
	return float64(lo) / total, float64(hi) / total
}

// UpdateSymbol increments the count for symbol by one, preserving the
// Fenwick invariant. It must be called after the encode/decode of that
// symbol, never before — encoder and decoder must see identical model
// state at the moment they code a given symbol.
func (m *Model) UpdateSymbol(symbol uint32) {
	if symbol >= m.symbols {
		panic("arithcode: update_symbol: symbol out of range")
	}
	if m.total == ^uint32(0) {
		panic("arithcode: update_symbol: total_count would overflow u32")
	}
	m.counts[symbol]++
	m.tree.Add(int(symbol), 1)
	m.total++
}

// EOF returns the symbol index designated as end-of-stream, or
// NumSymbols() if there is no in-band EOF.
func (m *Model) EOF() uint32 { return m.eof }

// NumSymbols returns the size of the alphabet.
func (m *Model) NumSymbols() uint32 { return m.symbols }

// Counts returns the current per-symbol counts. The returned slice
// aliases Model's internal storage and must not be mutated.
func (m *Model) Counts() []uint32 { return m.counts }

// TotalCount returns the sum of all counts.
func (m *Model) TotalCount() uint32 { return m.total }

// Snapshot captures enough state to reconstruct this Model later via
// ModelFromSnapshot, mirroring the original library's from_values restore
// path. The returned slices are copies.
func (m *Model) Snapshot() (counts, fenwickBits []uint32, total, eof uint32) {
	c := make([]uint32, len(m.counts))
	copy(c, m.counts)
	return c, append([]uint32(nil), m.tree.Bits()...), m.total, m.eof
}

// ModelFromSnapshot restores a Model from a previously captured
// Snapshot. The caller is responsible for consistency between counts,
// fenwickBits, total and eof; this constructor performs no validation
// beyond basic shape checks.
func ModelFromSnapshot(counts, fenwickBits []uint32, total, eof uint32) *Model {
	if len(counts) != len(fenwickBits) {
		panic("arithcode: from_snapshot: counts and fenwick length mismatch")
	}
	return &Model{
		counts:  counts,
		tree:    fenwick.FromBits(fenwickBits),
		total:   total,
		eof:     eof,
		symbols: uint32(len(counts)),
	}
}
