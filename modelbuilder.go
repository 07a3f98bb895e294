package arithcode

import "github.com/mrjoshuak/arithcode/internal/fenwick"

// EOFKind selects how ModelBuilder assigns the end-of-stream symbol.
type EOFKind struct {
	kind byte
	at   uint32
}

const (
	eofSpecify byte = iota
	eofStart
	eofEnd
	eofEndAddOne
	eofNone
)

// EOFSpecify designates symbol index i as EOF; i must be a valid index
// into the counts the builder ends up with.
func EOFSpecify(i uint32) EOFKind { return EOFKind{kind: eofSpecify, at: i} }

// EOFStart designates symbol 0 as EOF.
func EOFStart() EOFKind { return EOFKind{kind: eofStart} }

// EOFEnd designates the last symbol (len(counts)-1) as EOF.
func EOFEnd() EOFKind { return EOFKind{kind: eofEnd} }

// EOFEndAddOne appends one more symbol with count 1 and designates it
// EOF.
func EOFEndAddOne() EOFKind { return EOFKind{kind: eofEndAddOne} }

// EOFNone disables in-band EOF; the sentinel index equals num_symbols.
func EOFNone() EOFKind { return EOFKind{kind: eofNone} }

// ModelBuilder configures and constructs a Model. Later option calls
// override earlier ones within the same build, and symbol-defining
// options are applied in the precedence order counts > pdf > num_bits >
// num_symbols > binary.
type ModelBuilder struct {
	counts     []uint32
	hasCounts  bool
	numBits    uint
	hasNumBits bool
	numSymbols uint32
	hasSymbols bool
	pdf        []float64
	hasPdf     bool
	scale      uint32
	hasScale   bool
	binary     bool
	eof        EOFKind
	hasEOF     bool
}

// NewModelBuilder returns an empty builder.
func NewModelBuilder() *ModelBuilder {
	return &ModelBuilder{}
}

// NumSymbols sets counts to [1]*n.
func (b *ModelBuilder) NumSymbols(n uint32) *ModelBuilder {
	b.numSymbols = n
	b.hasSymbols = true
	return b
}

// NumBits is equivalent to NumSymbols(1 << bits), but ranks ahead of
// NumSymbols in the builder's precedence order regardless of call
// order: NumBits(3).NumSymbols(10) and NumSymbols(10).NumBits(3) both
// yield 8 symbols.
func (b *ModelBuilder) NumBits(bits uint) *ModelBuilder {
	b.numBits = bits
	b.hasNumBits = true
	return b
}

// Counts takes the given counts verbatim; len(counts) must be >= 1.
func (b *ModelBuilder) Counts(counts []uint32) *ModelBuilder {
	if len(counts) == 0 {
		panic("arithcode: ModelBuilder.Counts: counts must not be empty")
	}
	b.counts = append([]uint32(nil), counts...)
	b.hasCounts = true
	return b
}

// PDF derives counts from a probability distribution: counts[i] =
// max(floor(p[i] * scale), 1). Scale defaults to max(len(p), 10) unless
// overridden by Scale.
func (b *ModelBuilder) PDF(p []float64) *ModelBuilder {
	b.pdf = append([]float64(nil), p...)
	b.hasPdf = true
	return b
}

// Scale overrides the default PDF scale; s must be >= 10.
func (b *ModelBuilder) Scale(s uint32) *ModelBuilder {
	if s < 10 {
		panic("arithcode: ModelBuilder.Scale: scale must be >= 10")
	}
	b.scale = s
	b.hasScale = true
	return b
}

// Binary is equivalent to NumSymbols(2).
func (b *ModelBuilder) Binary() *ModelBuilder {
	b.binary = true
	return b
}

// EOF sets the end-of-stream policy; the default is EOFNone.
func (b *ModelBuilder) EOF(kind EOFKind) *ModelBuilder {
	b.eof = kind
	b.hasEOF = true
	return b
}

// Build applies the settled options and returns the Model.
func (b *ModelBuilder) Build() *Model {
	var counts []uint32
	switch {
	case b.hasCounts:
		counts = append([]uint32(nil), b.counts...)
	case b.hasPdf:
		scale := b.scale
		if !b.hasScale {
			scale = uint32(len(b.pdf))
			if scale < 10 {
				scale = 10
			}
		}
		counts = make([]uint32, len(b.pdf))
		for i, p := range b.pdf {
			c := int64(p * float64(scale))
			if c < 1 {
				c = 1
			}
			counts[i] = uint32(c)
		}
	case b.hasNumBits:
		counts = make([]uint32, uint32(1)<<b.numBits)
		for i := range counts {
			counts[i] = 1
		}
	case b.hasSymbols:
		counts = make([]uint32, b.numSymbols)
		for i := range counts {
			counts[i] = 1
		}
	default:
		counts = []uint32{1, 1}
	}

	var eof uint32
	if !b.hasEOF {
		eof = uint32(len(counts))
	} else {
		switch b.eof.kind {
		case eofSpecify:
			if b.eof.at >= uint32(len(counts)) {
				panic("arithcode: ModelBuilder.EOF: Specify index out of range")
			}
			eof = b.eof.at
		case eofStart:
			eof = 0
		case eofEnd:
			eof = uint32(len(counts)) - 1
		case eofEndAddOne:
			counts = append(counts, 1)
			eof = uint32(len(counts)) - 1
		case eofNone:
			eof = uint32(len(counts))
		}
	}

	tree := fenwick.New(len(counts))
	var total uint32
	for i, c := range counts {
		tree.Add(i, c)
		total += c
	}

	return &Model{
		counts:  counts,
		tree:    tree,
		total:   total,
		eof:     eof,
		symbols: uint32(len(counts)),
	}
}
