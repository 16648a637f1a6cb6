package lzss

import (
	"fmt"
	"io"
)

// Window reconstructs a byte stream from literals and length/distance
// back-references, writing each produced byte to w immediately while
// keeping enough trailing history to resolve further back-references.
// Used by deflate and lzhuf decoders, which only need to replay already
// length/distance-decoded tokens — no hash table is needed on this side.
type Window struct {
	w    io.Writer
	buf  []byte
	size int
}

// NewWindow creates a decode window of the given size (matching the
// encoder's window size for the format in use).
func NewWindow(w io.Writer, size int) *Window {
	return &Window{w: w, size: size}
}

// Seed primes the window with preset-dictionary bytes, without writing
// them to w (they are history, not output) — the decode side of
// spec.md §12's preset-dictionary support.
func (win *Window) Seed(dict []byte) {
	win.buf = append(win.buf, dict...)
	win.trim()
}

// Literal emits one literal byte.
func (win *Window) Literal(b byte) error {
	win.buf = append(win.buf, b)
	_, err := win.w.Write([]byte{b})
	win.trim()
	return err
}

// Copy emits length bytes copied from distance bytes behind the current
// position. distance may be less than length, in which case the copy
// reads bytes it has itself just written (the standard LZ77 overlap
// case, e.g. encoding a long run of one repeated byte).
func (win *Window) Copy(length, distance int) error {
	if distance <= 0 || distance > len(win.buf) {
		return fmt.Errorf("lzss: back-reference distance %d invalid (window holds %d bytes)", distance, len(win.buf))
	}
	start := len(win.buf) - distance
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		b := win.buf[start+i]
		win.buf = append(win.buf, b)
		out[i] = b
	}
	if _, err := win.w.Write(out); err != nil {
		return err
	}
	win.trim()
	return nil
}

// trim bounds buf's growth once it holds more than twice the window size.
func (win *Window) trim() {
	if len(win.buf) > win.size*2 {
		drop := len(win.buf) - win.size
		win.buf = append([]byte(nil), win.buf[drop:]...)
	}
}
