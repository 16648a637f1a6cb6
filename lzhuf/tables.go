package lzhuf

import (
	"github.com/nicolaou-labs/blockcodec/bitio"
	"github.com/nicolaou-labs/blockcodec/codec"
	"github.com/nicolaou-labs/blockcodec/huffman"
)

const (
	lenTableBits = 5  // TBIT_SIZE: width of the length-table's own count field
	symTableBits = 9  // CBIT_SIZE: width of the symbol table's count field
	clAlphabet   = 19 // meta-Huffman alphabet compressing the symbol length table
)

type clToken struct {
	class int
	value int
}

func nonzeroIndices(lengths []uint8) []int {
	var out []int
	for i, l := range lengths {
		if l > 0 {
			out = append(out, i)
		}
	}
	return out
}

// buildSymbolTokens gap-encodes a symbol code-length table into a token
// stream over the 19-symbol "length table" alphabet: class 0 is a single
// zero-length entry, classes 1/2 are zero-length runs with 4-bit/9-bit
// extents, and class 3 carries an actual code length (offset by 2 to
// stay clear of the escape classes). Ported from the gap-building loop
// in write_symb_tab, original_source/src/lzhuf/encoder.rs.
func buildSymbolTokens(lengths []uint8) ([]clToken, []uint64) {
	freq := make([]uint64, clAlphabet)
	var toks []clToken
	i := 0
	for idx, l := range lengths {
		if l == 0 {
			continue
		}
		gap := idx - i
		i = idx + 1
		switch {
		case gap > 19:
			toks = append(toks, clToken{2, gap - 20})
			freq[2]++
		case gap == 19:
			toks = append(toks, clToken{1, 15}, clToken{0, 0})
			freq[1]++
			freq[0]++
		case gap > 2:
			toks = append(toks, clToken{1, gap - 3})
			freq[1]++
		case gap > 0:
			toks = append(toks, clToken{0, 0})
			if gap == 2 {
				toks = append(toks, clToken{0, 0})
			}
			freq[0] += uint64(gap)
		}
		toks = append(toks, clToken{3, int(l) + 2})
		freq[int(l)+2]++
	}
	return toks, freq
}

// writeLengthListEntries writes a plain (non-Huffman) code-length list,
// padding skipped indices with zero-length placeholders, with one
// historical quirk ported verbatim: the moment the running index reaches
// 3, a 2-bit field may skip up to 3 more zero entries before resuming the
// per-index format. This mirrors LHA's "NT" table transmission exactly as
// original_source/src/lzhuf/encoder.rs's write_symb_tab implements it.
func writeLengthListEntries(w *bitio.Writer, nonzero []int, lengths []uint8) error {
	i := 0
	for _, idx := range nonzero {
		for idx >= i {
			if i == 3 {
				skip := 3
				if idx <= 6 {
					skip = idx - 3
				}
				if err := w.Write(uint64(skip), 2); err != nil {
					return err
				}
				i += skip
			}
			var l uint8
			if idx == i {
				l = lengths[idx]
			}
			if err := encLen(w, l); err != nil {
				return err
			}
			i++
		}
	}
	return nil
}

func readLengthList(r *bitio.Reader, n uint64) ([]uint8, error) {
	ll := make([]uint8, 0, n)
	for uint64(len(ll)) < n {
		if len(ll) == 3 {
			skip, err := r.Read(2)
			if err != nil {
				return nil, err
			}
			for k := uint64(0); k < skip; k++ {
				ll = append(ll, 0)
			}
			if uint64(len(ll)) > n {
				return nil, codec.DataErrorf("lzhuf: length table overrun")
			}
			if uint64(len(ll)) == n {
				break
			}
		}
		l, err := decLen(r)
		if err != nil {
			return nil, err
		}
		ll = append(ll, l)
	}
	return ll, nil
}

// writeSymbolTable writes LZHUF's two-level symbol code-length table
// header: a secondary Huffman table compressing the symbol length array
// itself, followed by its gap-encoded tokens. Grounded on write_symb_tab,
// original_source/src/lzhuf/encoder.rs.
func writeSymbolTable(w *bitio.Writer, symLengths []uint8) error {
	nz := nonzeroIndices(symLengths)
	switch len(nz) {
	case 0:
		for _, width := range []uint{lenTableBits, lenTableBits, symTableBits, symTableBits} {
			if err := w.Write(0, width); err != nil {
				return err
			}
		}
		return nil
	case 1:
		if err := w.Write(0, lenTableBits); err != nil {
			return err
		}
		if err := w.Write(0, lenTableBits); err != nil {
			return err
		}
		if err := w.Write(0, symTableBits); err != nil {
			return err
		}
		return w.Write(uint64(nz[0]), symTableBits)
	}

	toks, freq := buildSymbolTokens(symLengths)
	lenLengths := huffman.BuildLengths(freq, 16)
	lenNZ := nonzeroIndices(lenLengths)

	var lenCoder *tableEncoder
	switch len(lenNZ) {
	case 0:
		return codec.Unexpectedf("lzhuf: empty length table for a nonempty symbol table")
	case 1:
		if err := w.Write(0, lenTableBits); err != nil {
			return err
		}
		if err := w.Write(uint64(lenNZ[0]), lenTableBits); err != nil {
			return err
		}
		lenCoder = &tableEncoder{}
	default:
		if err := w.Write(uint64(lenNZ[len(lenNZ)-1]+1), lenTableBits); err != nil {
			return err
		}
		if err := writeLengthListEntries(w, lenNZ, lenLengths); err != nil {
			return err
		}
		lenCoder = newTableEncoder(lenLengths)
	}

	if err := w.Write(uint64(nz[len(nz)-1]+1), symTableBits); err != nil {
		return err
	}
	for _, t := range toks {
		switch t.class {
		case 0:
			if err := lenCoder.encode(w, 0); err != nil {
				return err
			}
		case 1:
			if err := lenCoder.encode(w, 1); err != nil {
				return err
			}
			if err := w.Write(uint64(t.value), 4); err != nil {
				return err
			}
		case 2:
			if err := lenCoder.encode(w, 2); err != nil {
				return err
			}
			if err := w.Write(uint64(t.value), 9); err != nil {
				return err
			}
		default:
			if err := lenCoder.encode(w, t.value); err != nil {
				return err
			}
		}
	}
	return nil
}

func readLengthTree(r *bitio.Reader) (*tableDecoder, error) {
	n, err := r.Read(lenTableBits)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		v, err := r.Read(lenTableBits)
		if err != nil {
			return nil, err
		}
		return &tableDecoder{fixed: int(v)}, nil
	}
	ll, err := readLengthList(r, n)
	if err != nil {
		return nil, err
	}
	tree, err := huffman.NewTree(ll, bitio.Left)
	if err != nil {
		return nil, codec.DataErrorf("lzhuf: bad length table: %v", err)
	}
	return &tableDecoder{tree: tree}, nil
}

// readSymbolTable is dec_symb_tree's counterpart to writeSymbolTable.
func readSymbolTable(r *bitio.Reader) (*tableDecoder, error) {
	lenDec, err := readLengthTree(r)
	if err != nil {
		return nil, err
	}
	n, err := r.Read(symTableBits)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		v, err := r.Read(symTableBits)
		if err != nil {
			return nil, err
		}
		return &tableDecoder{fixed: int(v)}, nil
	}
	ll := make([]uint8, 0, n)
	for uint64(len(ll)) < n {
		sym, err := lenDec.decode(r)
		if err != nil {
			return nil, err
		}
		switch sym {
		case 0:
			ll = append(ll, 0)
		case 1:
			v, err := r.Read(4)
			if err != nil {
				return nil, err
			}
			for k := uint64(0); k < 3+v; k++ {
				ll = append(ll, 0)
			}
		case 2:
			v, err := r.Read(9)
			if err != nil {
				return nil, err
			}
			for k := uint64(0); k < 20+v; k++ {
				ll = append(ll, 0)
			}
		default:
			ll = append(ll, uint8(sym-2))
		}
	}
	tree, err := huffman.NewTree(ll, bitio.Left)
	if err != nil {
		return nil, codec.DataErrorf("lzhuf: bad symbol table: %v", err)
	}
	return &tableDecoder{tree: tree}, nil
}

// writeOffsetTable writes a plain code-length list (no secondary
// Huffman layer — offset alphabets are small enough that LHA transmits
// them directly). Grounded on write_offset_tab,
// original_source/src/lzhuf/encoder.rs.
func writeOffsetTable(w *bitio.Writer, offLengths []uint8, pbitLen uint) error {
	nz := nonzeroIndices(offLengths)
	switch len(nz) {
	case 0:
		if err := w.Write(0, pbitLen); err != nil {
			return err
		}
		return w.Write(0, pbitLen)
	case 1:
		if err := w.Write(0, pbitLen); err != nil {
			return err
		}
		return w.Write(uint64(nz[0]), pbitLen)
	default:
		if err := w.Write(uint64(nz[len(nz)-1]+1), pbitLen); err != nil {
			return err
		}
		i := 0
		for _, idx := range nz {
			for idx >= i {
				var l uint8
				if idx == i {
					l = offLengths[idx]
				}
				if err := encLen(w, l); err != nil {
					return err
				}
				i++
			}
		}
		return nil
	}
}

func readOffsetTable(r *bitio.Reader, pbitLen uint) (*tableDecoder, error) {
	n, err := r.Read(pbitLen)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		v, err := r.Read(pbitLen)
		if err != nil {
			return nil, err
		}
		return &tableDecoder{fixed: int(v)}, nil
	}
	ll := make([]uint8, n)
	for i := range ll {
		l, err := decLen(r)
		if err != nil {
			return nil, err
		}
		ll[i] = l
	}
	tree, err := huffman.NewTree(ll, bitio.Left)
	if err != nil {
		return nil, codec.DataErrorf("lzhuf: bad offset table: %v", err)
	}
	return &tableDecoder{tree: tree}, nil
}
