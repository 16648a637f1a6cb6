package huffman

import (
	"bytes"
	"testing"

	"github.com/nicolaou-labs/blockcodec/bitio"
)

func TestBuildLengthsKraft(t *testing.T) {
	freqs := []uint64{5, 9, 12, 13, 16, 45}
	lengths := BuildLengths(freqs, 15)
	var sum float64
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		sum += 1.0 / float64(uint64(1)<<l)
	}
	if sum > 1.0001 {
		t.Fatalf("kraft inequality violated: sum=%v lengths=%v", sum, lengths)
	}
}

func TestBuildLengthsRespectsLimit(t *testing.T) {
	freqs := make([]uint64, 20)
	freqs[0] = 1
	for i := 1; i < len(freqs); i++ {
		freqs[i] = uint64(1) << uint(i)
	}
	lengths := BuildLengths(freqs, 6)
	for i, l := range lengths {
		if l > 6 {
			t.Errorf("symbol %d: length %d exceeds limit 6", i, l)
		}
	}
}

func TestTreeRoundTrip(t *testing.T) {
	lengths := []uint8{3, 3, 3, 3, 3, 2, 4, 4}
	enc := NewEncoder(lengths)
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, bitio.Left)
	seq := []int{5, 0, 6, 7, 5, 1, 2, 3, 4}
	for _, sym := range seq {
		if err := enc.Encode(w, sym); err != nil {
			t.Fatalf("encode %d: %v", sym, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	tree, err := NewTree(lengths, bitio.Left)
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	r := bitio.NewReader(bytes.NewReader(buf.Bytes()), bitio.Left)
	for i, want := range seq {
		got, err := tree.Decode(r)
		if err != nil {
			t.Fatalf("decode %d: %v", i, err)
		}
		if got != want {
			t.Errorf("symbol %d: got %d want %d", i, got, want)
		}
	}
}

// TestTreeRoundTripRightDirection exercises Decode's bit-reversed shortcut
// indexing (the path huffman.NewTree(..., bitio.Right) takes, matching
// DEFLATE's LSB-first packing).
func TestTreeRoundTripRightDirection(t *testing.T) {
	lengths := []uint8{3, 3, 3, 3, 3, 2, 4, 4}
	enc := NewEncoder(lengths)
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, bitio.Right)
	seq := []int{5, 0, 6, 7, 5, 1, 2, 3, 4}
	for _, sym := range seq {
		if err := enc.Encode(w, sym); err != nil {
			t.Fatalf("encode %d: %v", sym, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	tree, err := NewTree(lengths, bitio.Right)
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	r := bitio.NewReader(bytes.NewReader(buf.Bytes()), bitio.Right)
	for i, want := range seq {
		got, err := tree.Decode(r)
		if err != nil {
			t.Fatalf("decode %d: %v", i, err)
		}
		if got != want {
			t.Errorf("symbol %d: got %d want %d", i, got, want)
		}
	}
}

// TestTreeRoundTripLongCodes uses a heavily skewed frequency table so some
// assigned codes exceed tableBits, exercising the shortcut table's
// resume-from-node fallback (and walk's own bit-by-bit path beyond it).
func TestTreeRoundTripLongCodes(t *testing.T) {
	freqs := make([]uint64, 18)
	for i := range freqs {
		freqs[i] = uint64(1) << uint(i)
	}
	freqs[0] = 1
	lengths := BuildLengths(freqs, 32)

	enc := NewEncoder(lengths)
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, bitio.Left)
	var seq []int
	for sym, l := range lengths {
		if l > 0 {
			seq = append(seq, sym)
		}
	}
	for _, sym := range seq {
		if err := enc.Encode(w, sym); err != nil {
			t.Fatalf("encode %d: %v", sym, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	tree, err := NewTree(lengths, bitio.Left)
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	r := bitio.NewReader(bytes.NewReader(buf.Bytes()), bitio.Left)
	for i, want := range seq {
		got, err := tree.Decode(r)
		if err != nil {
			t.Fatalf("decode %d: %v", i, err)
		}
		if got != want {
			t.Errorf("symbol %d: got %d want %d", i, got, want)
		}
	}
}
