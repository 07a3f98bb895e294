package arithcode

import "math/bits"

// BinaryCoder codes a w-bit unsigned integer as w independent binary
// decisions, most-significant bit first, each backed by its own
// adaptive two-symbol Model. It relies on an outer framing scheme
// (a known symbol count, or an outer EOF carried by a separate model)
// to know when to stop — the binary submodels here carry no EOF symbol
// of their own.
type BinaryCoder struct {
	models []*Model
}

// NewBinaryCoder allocates w independent binary submodels, each
// starting from counts {1, 1}.
func NewBinaryCoder(w uint) *BinaryCoder {
	models := make([]*Model, w)
	for i := range models {
		models[i] = NewModelBuilder().Binary().Build()
	}
	return &BinaryCoder{models: models}
}

// NewBinaryCoderFromMax picks the bit width needed to represent
// maxValue and returns a BinaryCoder of that width.
func NewBinaryCoderFromMax(maxValue uint32) *BinaryCoder {
	w := 32 - bits.LeadingZeros32(maxValue)
	if w == 0 {
		w = 1
	}
	return NewBinaryCoder(uint(w))
}

// Width returns the number of bit positions (submodels) this coder
// handles.
func (c *BinaryCoder) Width() int { return len(c.models) }

// Encode writes value's w bits, most-significant first, updating each
// submodel after it codes its bit.
func (c *BinaryCoder) Encode(enc *Encoder, out BitSink, value uint32) error {
	w := len(c.models)
	for i := 0; i < w; i++ {
		bit := (value >> uint(w-1-i)) & 1
		if err := enc.Encode(bit, c.models[i], out); err != nil {
			return err
		}
		c.models[i].UpdateSymbol(bit)
	}
	return nil
}

// Decode reads w bits, most-significant first, updating each submodel
// after it decodes its bit, and reassembles them into a value.
func (c *BinaryCoder) Decode(dec *Decoder, in BitSource) (uint32, error) {
	var v uint32
	for _, m := range c.models {
		bit, err := dec.Decode(m, in)
		if err != nil {
			return 0, err
		}
		m.UpdateSymbol(bit)
		v = 2*v + bit
	}
	return v, nil
}
