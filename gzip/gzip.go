// Package gzip implements RFC 1952 framing (fixed 10-byte header, CRC-32
// + ISIZE trailer) around a raw deflate stream.
package gzip

import (
	"encoding/binary"
	"hash"
	"hash/crc32"
	"io"

	"github.com/nicolaou-labs/blockcodec/codec"
	"github.com/nicolaou-labs/blockcodec/deflate"
)

// header is the fixed 10-byte gzip header this package always writes:
// magic 0x1F 0x8B, CM=8 (deflate), FLG=0, MTIME=0, XFL=0, OS=0xFF
// (unknown) — matching the literal header constant
// original_source/src/gzip/encoder.rs writes rather than deriving one
// from the local clock, which would make output non-reproducible.
var header = [10]byte{0x1F, 0x8B, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF}

// Writer is a gzip encoder.
type Writer struct {
	w     io.Writer
	dw    *deflate.Writer
	crc   hash.Hash32
	isize uint32

	headerWritten bool
}

// NewWriter creates a gzip encoder writing framed output to w.
func NewWriter(w io.Writer, opts ...deflate.Option) *Writer {
	return &Writer{w: w, dw: deflate.NewWriter(w, opts...), crc: crc32.NewIEEE()}
}

func (w *Writer) writeHeader() error {
	if w.headerWritten {
		return nil
	}
	w.headerWritten = true
	_, err := w.w.Write(header[:])
	return err
}

// Write compresses p, folding it into the running CRC-32 and byte count.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.writeHeader(); err != nil {
		return 0, err
	}
	n, err := w.dw.Write(p)
	if n > 0 {
		w.crc.Write(p[:n])
		w.isize += uint32(n)
	}
	return n, err
}

// Flush flushes the underlying deflate stream to a byte boundary without
// ending it.
func (w *Writer) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	return w.dw.Flush()
}

// Close ends the deflate stream and appends the little-endian CRC-32 and
// ISIZE (input size mod 2^32) trailer, per RFC 1952.
func (w *Writer) Close() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	if err := w.dw.Close(); err != nil {
		return err
	}
	var trailer [8]byte
	binary.LittleEndian.PutUint32(trailer[0:4], w.crc.Sum32())
	binary.LittleEndian.PutUint32(trailer[4:8], w.isize)
	_, err := w.w.Write(trailer[:])
	return err
}

// Reader is a gzip decoder.
type Reader struct {
	dr          *deflate.Reader
	crc         hash.Hash32
	isize       uint32
	trailerRead bool
}

// NewReader wraps r as a gzip decoder, validating the fixed header.
func NewReader(r io.Reader, opts ...deflate.Option) (*Reader, error) {
	var hdr [10]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, codec.UnexpectedEOFf("gzip: truncated header")
	}
	if hdr[0] != 0x1F || hdr[1] != 0x8B {
		return nil, codec.DataErrorf("gzip: bad magic bytes %#x %#x", hdr[0], hdr[1])
	}
	if hdr[2] != 0x08 {
		return nil, codec.DataErrorf("gzip: unsupported compression method %d", hdr[2])
	}
	flg := hdr[3]
	if flg != 0 {
		if err := skipOptionalFields(r, flg); err != nil {
			return nil, err
		}
	}
	return &Reader{dr: deflate.NewReader(r, opts...), crc: crc32.NewIEEE()}, nil
}

// skipOptionalFields consumes FEXTRA/FNAME/FCOMMENT/FHCRC when present,
// per RFC 1952 §2.3.1's flag bits. This package never sets these flags
// itself on encode, but must be able to read streams that do.
func skipOptionalFields(r io.Reader, flg byte) error {
	const (
		fextra  = 1 << 2
		fname   = 1 << 3
		fcomm   = 1 << 4
		fhcrc   = 1 << 1
	)
	if flg&fextra != 0 {
		var lenBuf [2]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return codec.UnexpectedEOFf("gzip: truncated extra field length")
		}
		n := binary.LittleEndian.Uint16(lenBuf[:])
		if _, err := io.CopyN(io.Discard, r, int64(n)); err != nil {
			return codec.UnexpectedEOFf("gzip: truncated extra field")
		}
	}
	if flg&fname != 0 {
		if err := skipCString(r); err != nil {
			return err
		}
	}
	if flg&fcomm != 0 {
		if err := skipCString(r); err != nil {
			return err
		}
	}
	if flg&fhcrc != 0 {
		var crcBuf [2]byte
		if _, err := io.ReadFull(r, crcBuf[:]); err != nil {
			return codec.UnexpectedEOFf("gzip: truncated header crc")
		}
	}
	return nil
}

func skipCString(r io.Reader) error {
	var b [1]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return codec.UnexpectedEOFf("gzip: truncated string field")
		}
		if b[0] == 0 {
			return nil
		}
	}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.dr.Read(p)
	if n > 0 {
		r.crc.Write(p[:n])
		r.isize += uint32(n)
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
	var buf [8]byte
	for i := range buf {
		b, err := br.ReadAlignedByte()
		if err != nil {
			return codec.UnexpectedEOFf("gzip: truncated trailer")
		}
		buf[i] = b
	}
	wantCRC := binary.LittleEndian.Uint32(buf[0:4])
	wantSize := binary.LittleEndian.Uint32(buf[4:8])
	if got := r.crc.Sum32(); got != wantCRC {
		return codec.DataErrorf("gzip: crc32 mismatch: got %#x want %#x", got, wantCRC)
	}
	if r.isize != wantSize {
		return codec.DataErrorf("gzip: isize mismatch: got %d want %d", r.isize, wantSize)
	}
	return nil
}
