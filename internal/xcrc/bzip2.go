// Package xcrc implements the one CRC variant this module cannot get from
// the standard library as-is: bzip2's MSB-first CRC-32, plus the
// cross-block combine rule bzip2 streams use. gzip and zlib use stdlib
// hash/crc32 and hash/adler32 directly (see gzip/ and zlib/) since those
// formats use the ordinary reflected CRC-32 and Adler-32 the standard
// library already implements; grounded on
// _examples/cosnicolaou-pbzip2/internal/bzip2/crc.go, which reaches for
// the same stdlib hash/crc32 table but bit-reverses every byte in and out
// because bzip2 processes the stream MSB-first.
package xcrc

import (
	"hash/crc32"
	"math/bits"
)

// BZIP2CRC accumulates bzip2's MSB-first CRC-32 one byte at a time, the
// same running total each compressed block (and the stream trailer)
// reports.
type BZIP2CRC struct {
	crc uint32
}

// NewBZIP2CRC returns a zeroed accumulator.
func NewBZIP2CRC() *BZIP2CRC { return &BZIP2CRC{} }

// WriteByte folds one more input byte into the running CRC, using the
// stdlib IEEE table but bit-reversed on the way in and out to match
// bzip2's MSB-first convention — the same trick as the teacher's crc.go.
func (c *BZIP2CRC) WriteByte(b byte) {
	idx := byte(c.crc>>24) ^ bits.Reverse8(b)
	c.crc = (c.crc << 8) ^ crc32.IEEETable[idx]
}

// Write folds a whole byte slice.
func (c *BZIP2CRC) Write(p []byte) {
	for _, b := range p {
		c.WriteByte(b)
	}
}

// Sum32 returns the reversed-bit CRC-32 bzip2 expects to see on the wire.
func (c *BZIP2CRC) Sum32() uint32 {
	return bits.Reverse32(c.crc)
}

// Reset clears the accumulator for reuse, e.g. starting the next block.
func (c *BZIP2CRC) Reset() { c.crc = 0 }

// Combine folds a just-finished block's CRC into the running stream-level
// combined CRC, per bzip2's combinedCRC = rotl(combined, 1) ^ blockCRC.
func Combine(combined, blockCRC uint32) uint32 {
	return bits.RotateLeft32(combined, 1) ^ blockCRC
}
