// Command arithcode is a small demonstration driver for the arithcode
// library: it compresses or decompresses a file using an adaptive
// 8-bit-alphabet model with an appended EOF symbol. It is not a stable
// file format — arithcode itself defines none — it exists to exercise
// the library end to end, the same role github.com/mewkiz/flac/cmd/wav2flac
// plays for that codec.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/mrjoshuak/arithcode"
	"github.com/mrjoshuak/arithcode/bitio"
)

const precision = 48

func main() {
	var (
		decompress bool
		outPath    string
	)
	flag.BoolVar(&decompress, "d", false, "decompress instead of compress")
	flag.StringVar(&outPath, "o", "", "output path (default: stdout)")
	flag.Parse()

	if err := run(decompress, outPath, flag.Args()); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(decompress bool, outPath string, args []string) error {
	in := io.Reader(os.Stdin)
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		out = f
	}

	if decompress {
		return decompressStream(in, out)
	}
	return compressStream(in, out)
}

func compressStream(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.WithStack(err)
	}

	model := arithcode.NewModelBuilder().NumBits(8).EOF(arithcode.EOFEndAddOne()).Build()
	enc := arithcode.NewEncoder(precision)
	sink := bitio.NewSink(w)

	for _, b := range data {
		if err := enc.Encode(uint32(b), model, sink); err != nil {
			return errors.WithStack(err)
		}
		model.UpdateSymbol(uint32(b))
	}
	if err := enc.Encode(model.EOF(), model, sink); err != nil {
		return errors.WithStack(err)
	}
	if err := enc.Finish(sink); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(sink.Close())
}

func decompressStream(r io.Reader, w io.Writer) error {
	model := arithcode.NewModelBuilder().NumBits(8).EOF(arithcode.EOFEndAddOne()).Build()
	dec := arithcode.NewDecoder(precision)
	source := bitio.NewSource(r)

	for !dec.Finished() {
		sym, err := dec.Decode(model, source)
		if err != nil {
			return errors.WithStack(err)
		}
		model.UpdateSymbol(sym)
		if sym == model.EOF() {
			break
		}
		if _, err := w.Write([]byte{byte(sym)}); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
