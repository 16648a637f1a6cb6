package huffman

import (
	"fmt"
	"math/bits"

	"github.com/nicolaou-labs/blockcodec/bitio"
)

// invalidNode marks a leaf slot in node.left/right, mirroring the
// teacher's invalidNodeValue sentinel in internal/bzip2/huffman.go.
const invalidNode = 0xffffffff

// tableBits is the width of Tree's shortcut lookup table (2^tableBits
// entries), the Go analogue of the teacher's 256-entry (8-bit) shortcut in
// internal/bzip2/huffman.go; 12 bits covers the great majority of codes
// any of this module's tables assign (bzip2 caps group tables at 17 bits,
// deflate's dynamic tables at 15) while keeping table-build cost modest.
const tableBits = 12

type node struct {
	left, right           uint32
	leftValue, rightValue uint32
	leftIsLeaf            bool
	rightIsLeaf            bool
}

// shortcutEntry is one slot of Tree's lookup table: either a fully
// resolved leaf (consuming length <= tableBits bits) or, for codes longer
// than tableBits, the node to resume the bit-by-bit walk from after
// consuming exactly tableBits bits.
type shortcutEntry struct {
	leaf   bool
	length uint8
	value  uint32
}

// Tree is a canonical Huffman decode tree, built from per-symbol code
// lengths. Decode indexes a tableBits-wide shortcut table built once at
// construction (table, buildTable) for the common case, falling back to
// walk's bit-by-bit trie traversal for codes longer than tableBits or when
// too few bits remain buffered for a full table lookup. Ported from the
// teacher's huffmanTree.Decode/buildShortcut (internal/bzip2/huffman.go),
// generalized from a fixed 8-bit/MSB-first shortcut to tableBits bits
// under either bitio.Direction: dir records which way dir's caller packs
// bits, so the table can be indexed directly (Left, MSB-first, matches
// the teacher's own convention) or bit-reversed first (Right, LSB-first,
// used by DEFLATE).
type Tree struct {
	nodes []node
	root  uint32
	dir   bitio.Direction
	table []shortcutEntry
}

// code/length pair used to build the tree from AssignCodes' output.
type symCode struct {
	symbol int
	code   uint32
	length uint8
}

// NewTree builds a decode tree from per-symbol code lengths (zero length
// means the symbol is unused). dir must match the bitio.Direction of any
// *bitio.Reader later passed to Decode, so the shortcut table is indexed
// correctly.
func NewTree(lengths []uint8, dir bitio.Direction) (*Tree, error) {
	codes := AssignCodes(lengths)
	var syms []symCode
	for sym, l := range lengths {
		if l > 0 {
			syms = append(syms, symCode{sym, codes[sym], l})
		}
	}
	if len(syms) < 2 {
		return nil, fmt.Errorf("huffman: need at least 2 symbols, got %d", len(syms))
	}
	t := &Tree{nodes: make([]node, 0, len(syms)), dir: dir}
	root, err := t.build(syms, 0)
	if err != nil {
		return nil, err
	}
	t.root = root
	t.buildTable()
	return t, nil
}

// buildTable walks, for every possible tableBits-bit prefix, the same
// left/right trie buildHuffmanNode produces, recording either the leaf it
// reaches or (if the code is longer than tableBits) the node to resume
// from. idx's bits are read MSB-first (bit tableBits-1 is the first bit
// consumed), matching how AssignCodes lays out codes; Decode is
// responsible for presenting the stream's next tableBits bits in that
// same order regardless of dir.
func (t *Tree) buildTable() {
	t.table = make([]shortcutEntry, 1<<tableBits)
	for idx := range t.table {
		n := t.root
		e := shortcutEntry{leaf: false, length: tableBits, value: n}
		for i := 0; i < tableBits; i++ {
			bit := (idx >> (tableBits - 1 - i)) & 1
			nd := &t.nodes[n]
			var isLeaf bool
			var value, next uint32
			if bit == 1 {
				isLeaf, value, next = nd.leftIsLeaf, nd.leftValue, nd.left
			} else {
				isLeaf, value, next = nd.rightIsLeaf, nd.rightValue, nd.right
			}
			if isLeaf {
				e = shortcutEntry{leaf: true, length: uint8(i + 1), value: value}
				break
			}
			n = next
			e.value = n
		}
		t.table[idx] = e
	}
}

func (t *Tree) build(syms []symCode, level uint8) (uint32, error) {
	var left, right []symCode
	for _, s := range syms {
		if s.length <= level {
			return 0, fmt.Errorf("huffman: code shorter than tree depth")
		}
		bit := (s.code >> (s.length - level - 1)) & 1
		if bit == 1 {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		if len(syms) < 2 {
			return 0, fmt.Errorf("huffman: degenerate tree")
		}
		if len(left) == 0 {
			return t.build(right, level+1)
		}
		return t.build(left, level+1)
	}

	idx := uint32(len(t.nodes))
	t.nodes = append(t.nodes, node{})

	var n node
	if len(left) == 1 && left[0].length == level+1 {
		n.leftIsLeaf = true
		n.leftValue = uint32(left[0].symbol)
	} else {
		child, err := t.build(left, level+1)
		if err != nil {
			return 0, err
		}
		n.left = child
	}
	if len(right) == 1 && right[0].length == level+1 {
		n.rightIsLeaf = true
		n.rightValue = uint32(right[0].symbol)
	} else {
		child, err := t.build(right, level+1)
		if err != nil {
			return 0, err
		}
		n.right = child
	}
	t.nodes[idx] = n
	return idx, nil
}

// Decode reads one symbol from r. The common case is a single table
// lookup against the next tableBits bits; it falls back to walk's
// bit-by-bit traversal for codes longer than tableBits and for the tail
// of a stream where fewer than tableBits bits remain buffered.
func (t *Tree) Decode(r *bitio.Reader) (int, error) {
	v, err := r.Peek(tableBits)
	if err != nil {
		return t.walk(t.root, r)
	}

	idx := uint32(v)
	if t.dir == bitio.Right {
		idx = uint32(bits.Reverse16(uint16(v))) >> (16 - tableBits)
	}

	e := t.table[idx]
	if e.leaf {
		r.Skip(uint(e.length))
		return int(e.value), nil
	}
	r.Skip(tableBits)
	return t.walk(e.value, r)
}

// walk traverses the trie bit by bit from idx, the teacher's
// huffmanTree.Decode loop (internal/bzip2/huffman.go) before its own
// shortcut kicks in.
func (t *Tree) walk(idx uint32, r *bitio.Reader) (int, error) {
	for {
		n := &t.nodes[idx]
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 1 {
			if n.leftIsLeaf {
				return int(n.leftValue), nil
			}
			idx = n.left
		} else {
			if n.rightIsLeaf {
				return int(n.rightValue), nil
			}
			idx = n.right
		}
	}
}
