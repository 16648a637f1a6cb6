package bzip2

import (
	"github.com/nicolaou-labs/blockcodec/bitio"
	"github.com/nicolaou-labs/blockcodec/codec"
)

// pickGroupNum chooses how many Huffman tables (2-6) to use for a block,
// based on the post-MTF/ZLE symbol count. Grounded on the group_num match
// in write_blockdata, original_source/src/bzip2/encoder.rs.
func pickGroupNum(mtfCount int) int {
	switch {
	case mtfCount < 200:
		return 2
	case mtfCount < 600:
		return 3
	case mtfCount < 1200:
		return 4
	case mtfCount < 2400:
		return 5
	default:
		return 6
	}
}

// initialGroupTables builds groupNum starting cost tables by partitioning
// the alphabet into contiguous ranges of roughly equal frequency mass,
// used only to pick the very first iteration's selectors before any real
// Huffman lengths exist. Grounded on the "Generate an initial set of
// coding tables" scan in write_blockdata, original_source/src/bzip2/
// encoder.rs. Ranges are scanned from the lowest symbol up and stored in
// reverse: the first range scanned becomes the last table.
func initialGroupTables(groupNum, alphaSize int, mtfFreq []uint64, mtfCount int) [][]uint8 {
	scanOrder := make([][]uint8, groupNum)
	remaining := uint64(mtfCount)
	ge := -1
	for idx := 0; idx < groupNum; idx++ {
		nPart := groupNum - idx
		tFreq := remaining / uint64(nPart)
		gs := ge + 1
		aFreq := uint64(0)
		for aFreq < tFreq && ge < alphaSize-1 {
			ge++
			aFreq += mtfFreq[ge]
		}
		if ge > gs && nPart != groupNum && nPart != 1 && (groupNum-nPart)&1 == 1 {
			aFreq -= mtfFreq[ge]
			ge--
		}
		remaining -= aFreq

		t := make([]uint8, alphaSize)
		for i := range t {
			if i >= gs && i <= ge {
				t[i] = lesserICost
			} else {
				t[i] = greaterICost
			}
		}
		scanOrder[idx] = t
	}

	tables := make([][]uint8, groupNum)
	for i, t := range scanOrder {
		tables[groupNum-1-i] = t
	}
	return tables
}

// writeCodeLengths writes one per-group code-length table: a 5-bit
// starting length, then for every symbol a run of "1,dir" continuation
// bits moving the running length up or down to the symbol's own length,
// terminated by a single 0 bit. Grounded on the "Now the coding tables"
// loop in write_blockdata, original_source/src/bzip2/encoder.rs.
func writeCodeLengths(w *bitio.Writer, lengths []uint8) error {
	curr := lengths[0]
	if err := w.Write(uint64(curr), 5); err != nil {
		return err
	}
	for _, li := range lengths {
		for curr < li {
			if err := w.Write(2, 2); err != nil {
				return err
			}
			curr++
		}
		for curr > li {
			if err := w.Write(3, 2); err != nil {
				return err
			}
			curr--
		}
		if err := w.WriteBit(0); err != nil {
			return err
		}
	}
	return nil
}

// readCodeLengths is writeCodeLengths' mirror, grounded on the "Now the
// coding tables" loop in init_block, original_source/src/bzip2/
// decoder.rs.
func readCodeLengths(r *bitio.Reader, n int) ([]uint8, error) {
	lengths := make([]uint8, n)
	v, err := r.Read(5)
	if err != nil {
		return nil, err
	}
	curr := uint8(v)
	for i := 0; i < n; i++ {
		for {
			cont, err := r.ReadBit()
			if err != nil {
				return nil, err
			}
			if cont == 0 {
				break
			}
			if curr < 1 || curr > 20 {
				return nil, codec.DataErrorf("bzip2: code length out of range")
			}
			dir, err := r.ReadBit()
			if err != nil {
				return nil, err
			}
			if dir == 0 {
				curr++
			} else {
				curr--
			}
		}
		lengths[i] = curr
	}
	return lengths, nil
}

// identityAlphabet returns {0, 1, ..., n-1}, the selector MTF table's
// initial front-to-back order.
func identityAlphabet(n int) []byte {
	a := make([]byte, n)
	for i := range a {
		a[i] = byte(i)
	}
	return a
}
