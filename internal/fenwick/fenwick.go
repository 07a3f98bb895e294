// Package fenwick implements a binary-indexed tree over u32 counts,
// giving O(log n) prefix-sum queries and point updates. It backs the
// Model's cumulative-frequency table.
package fenwick

// Tree is a 0-indexed Fenwick tree. The zero value is not usable; build
// one with New or Build.
type Tree struct {
	bits []uint32
}

// New allocates an empty tree over n elements, all zero.
func New(n int) *Tree {
	return &Tree{bits: make([]uint32, n)}
}

// Build constructs a tree whose prefix sums match the given counts.
func Build(counts []uint32) *Tree {
	t := New(len(counts))
	for i, c := range counts {
		t.Add(i, c)
	}
	return t
}

// FromBits restores a tree from an already-Fenwick-encoded slice, as
// produced by Bits. The caller is responsible for the slice actually
// being a valid Fenwick encoding.
func FromBits(bits []uint32) *Tree {
	cp := make([]uint32, len(bits))
	copy(cp, bits)
	return &Tree{bits: cp}
}

// Bits exposes the raw Fenwick-encoded storage, e.g. for snapshotting.
func (t *Tree) Bits() []uint32 {
	return t.bits
}

// Len returns the number of elements the tree was built over.
func (t *Tree) Len() int {
	return len(t.bits)
}

// Add increments the value at i by delta (amortized O(log n)).
func (t *Tree) Add(i int, delta uint32) {
	for ; i < len(t.bits); i |= i + 1 {
		t.bits[i] += delta
	}
}

// PrefixSum returns the sum of elements in [0, i], inclusive.
func (t *Tree) PrefixSum(i int) uint32 {
	var sum uint32
	for ; i >= 0; i = i&(i+1) - 1 {
		sum += t.bits[i]
	}
	return sum
}
