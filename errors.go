package arithcode

import "errors"

// ErrUnexpectedEOF is returned by Decoder.Decode when the bitstream is
// exhausted — more than precision virtual zero bits have been consumed
// — before the EOF symbol was decoded. The usual cause is a truncated
// stream, or an encoder that never emitted its model's EOF symbol.
var ErrUnexpectedEOF = errors.New("arithcode: EOF symbol was not decoded")
