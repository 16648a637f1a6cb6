package lzhuf

import "github.com/nicolaou-labs/blockcodec/bitio"

// encLen writes a code length using LZHUF's 3-bit-plus-escape scheme:
// values below 7 are written directly in 3 bits; 7 and above are written
// as 7 followed by one "continue" bit per unit past 7 and a final stop
// bit (e.g. length 9 is 7, 1, 1, 0). Ported from enc_len in
// original_source/src/lzhuf/encoder.rs.
func encLen(w *bitio.Writer, length uint8) error {
	if length >= 7 {
		if err := w.Write(7, 3); err != nil {
			return err
		}
		for i := uint8(7); i < length; i++ {
			if err := w.WriteBit(1); err != nil {
				return err
			}
		}
		return w.WriteBit(0)
	}
	return w.Write(uint64(length), 3)
}

// decLen reads a length written by encLen.
func decLen(r *bitio.Reader) (uint8, error) {
	v, err := r.Read(3)
	if err != nil {
		return 0, err
	}
	c := uint8(v)
	if c == 7 {
		for {
			b, err := r.ReadBit()
			if err != nil {
				return 0, err
			}
			if b != 1 {
				break
			}
			c++
		}
	}
	return c, nil
}
