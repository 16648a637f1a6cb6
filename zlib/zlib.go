// Package zlib implements RFC 1950 framing (CMF/FLG header, optional
// preset-dictionary id, Adler-32 trailer) around a raw deflate stream.
package zlib

import (
	"encoding/binary"
	"hash"
	"hash/adler32"
	"io"

	"github.com/nicolaou-labs/blockcodec/codec"
	"github.com/nicolaou-labs/blockcodec/deflate"
)

// options configures a Writer/Reader via functional options, the
// teacher's own configuration idiom.
type options struct {
	dict []byte
}

// Option configures a Writer or Reader.
type Option func(*options)

// WithDict sets the preset dictionary: the encoder seeds its window with
// it and records its Adler-32 in the header (FDICT); the decoder must be
// given the same bytes, or decoding fails with a data error (spec.md
// §12's "wrong dict fails" law).
func WithDict(dict []byte) Option {
	return func(o *options) { o.dict = dict }
}

// Writer is a zlib encoder.
type Writer struct {
	w     io.Writer
	dw    *deflate.Writer
	adler hash.Hash32
}

// NewWriter creates a zlib encoder writing framed output to w.
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	cmf := byte(0x78) // CM=8 (deflate), CINFO=7 (32K window)
	var flg byte
	if len(o.dict) > 0 {
		flg |= 0x20 // FDICT
	}
	flg |= 0x80 // FLEVEL=2 (default)
	if rem := (int(cmf)*256 + int(flg)) % 31; rem != 0 {
		flg += byte(31 - rem)
	}
	if _, err := w.Write([]byte{cmf, flg}); err != nil {
		return nil, err
	}
	if len(o.dict) > 0 {
		var id [4]byte
		binary.BigEndian.PutUint32(id[:], adler32.Checksum(o.dict))
		if _, err := w.Write(id[:]); err != nil {
			return nil, err
		}
	}

	var dopts []deflate.Option
	if len(o.dict) > 0 {
		dopts = append(dopts, deflate.WithDict(o.dict))
	}
	return &Writer{w: w, dw: deflate.NewWriter(w, dopts...), adler: adler32.New()}, nil
}

// Write compresses p, folding it into the running Adler-32 checksum.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.dw.Write(p)
	if n > 0 {
		w.adler.Write(p[:n])
	}
	return n, err
}

// Flush flushes the underlying deflate stream to a byte boundary without
// ending it.
func (w *Writer) Flush() error {
	return w.dw.Flush()
}

// Close ends the deflate stream and appends the big-endian Adler-32
// trailer, per RFC 1950.
func (w *Writer) Close() error {
	if err := w.dw.Close(); err != nil {
		return err
	}
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], w.adler.Sum32())
	_, err := w.w.Write(sum[:])
	return err
}

// Reader is a zlib decoder.
type Reader struct {
	dr          *deflate.Reader
	adler       hash.Hash32
	dict        []byte
	trailerRead bool
}

// NewReader wraps r as a zlib decoder. If the stream was encoded with a
// preset dictionary, the same bytes must be supplied via WithDict.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, codec.UnexpectedEOFf("zlib: truncated header")
	}
	cmf, flg := hdr[0], hdr[1]
	if (int(cmf)*256+int(flg))%31 != 0 {
		return nil, codec.DataErrorf("zlib: header checksum failed")
	}
	if cmf&0x0f != 8 {
		return nil, codec.DataErrorf("zlib: unsupported compression method %d", cmf&0x0f)
	}
	if flg&0x20 != 0 {
		var id [4]byte
		if _, err := io.ReadFull(r, id[:]); err != nil {
			return nil, codec.UnexpectedEOFf("zlib: truncated dictionary id")
		}
		if len(o.dict) == 0 {
			return nil, codec.DataErrorf("zlib: stream requires a preset dictionary")
		}
		if binary.BigEndian.Uint32(id[:]) != adler32.Checksum(o.dict) {
			return nil, codec.DataErrorf("zlib: wrong preset dictionary")
		}
	}

	var dopts []deflate.Option
	if len(o.dict) > 0 {
		dopts = append(dopts, deflate.WithDict(o.dict))
	}
	return &Reader{dr: deflate.NewReader(r, dopts...), adler: adler32.New(), dict: o.dict}, nil
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.dr.Read(p)
	if n > 0 {
		r.adler.Write(p[:n])
	}
	if err == io.EOF {
		if terr := r.readTrailer(); terr != nil {
			return n, terr
		}
	}
	return n, err
}

func (r *Reader) readTrailer() error {
	if r.trailerRead {
		return nil
	}
	r.trailerRead = true
	br := r.dr.BitReader()
	br.SkipToNextByte()
	var buf [4]byte
	for i := range buf {
		b, err := br.ReadAlignedByte()
		if err != nil {
			return codec.UnexpectedEOFf("zlib: truncated trailer")
		}
		buf[i] = b
	}
	want := binary.BigEndian.Uint32(buf[:])
	if got := r.adler.Sum32(); got != want {
		return codec.DataErrorf("zlib: adler32 mismatch: got %#x want %#x", got, want)
	}
	return nil
}
