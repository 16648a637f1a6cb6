package lzss

import (
	"bytes"
	"testing"
)

func decodeAll(t *testing.T, codes []Code, windowSize int) []byte {
	t.Helper()
	var out bytes.Buffer
	win := NewWindow(&out, windowSize)
	for _, c := range codes {
		var err error
		if c.IsRef {
			err = win.Copy(c.Length, c.Distance)
		} else {
			err = win.Literal(c.Literal)
		}
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return out.Bytes()
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte("the quick brown fox jumps over the lazy dog the quick brown fox"),
		bytes.Repeat([]byte("ab"), 200),
		[]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		[]byte(""),
		[]byte("x"),
	}
	for _, in := range cases {
		e := NewEncoder(15, 1<<15, 3, 258, 4, Greedy)
		e.Write(in)
		codes := e.Encode(true)
		got := decodeAll(t, codes, 1<<15)
		if !bytes.Equal(got, in) {
			t.Errorf("round trip mismatch: got %q want %q", got, in)
		}
	}
}

func TestEncodeStreaming(t *testing.T) {
	in := []byte("abcabcabcabcabcabcabcabcabcabcabcabcabc")
	e := NewEncoder(15, 1<<15, 3, 258, 4, Greedy)
	var codes []Code
	for i := 0; i < len(in); i += 5 {
		end := i + 5
		if end > len(in) {
			end = len(in)
		}
		e.Write(in[i:end])
		codes = append(codes, e.Encode(false)...)
	}
	codes = append(codes, e.Encode(true)...)
	got := decodeAll(t, codes, 1<<15)
	if !bytes.Equal(got, in) {
		t.Errorf("streaming round trip mismatch: got %q want %q", got, in)
	}
}

func TestPresetDictionary(t *testing.T) {
	dict := []byte("the quick brown fox")
	in := []byte("the quick brown fox jumps over")
	e := NewEncoderWithDict(15, 1<<15, 3, 258, 4, Greedy, dict)
	e.Write(in)
	codes := e.Encode(true)

	var out bytes.Buffer
	win := NewWindow(&out, 1<<15)
	win.Seed(dict)
	for _, c := range codes {
		var err error
		if c.IsRef {
			err = win.Copy(c.Length, c.Distance)
		} else {
			err = win.Literal(c.Literal)
		}
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	if !bytes.Equal(out.Bytes(), in) {
		t.Errorf("dict round trip mismatch: got %q want %q", out.Bytes(), in)
	}
}

// TestCustomComparator checks that a non-default Comparator still
// produces a valid, round-trippable parse: nearest ranks candidates by
// distance alone, ignoring length, where Greedy ranks by length first. The
// round trip shows such a parse still decodes correctly; it does not by
// itself show which comparator the encoder consulted.
func TestCustomComparator(t *testing.T) {
	nearest := func(a, b MatchInfo) int { return a.Pos - b.Pos }

	in := []byte("the quick brown fox jumps over the quick brown fox")
	e := NewEncoder(15, 1<<15, 3, 258, 4, nearest)
	e.Write(in)
	codes := e.Encode(true)
	got := decodeAll(t, codes, 1<<15)
	if !bytes.Equal(got, in) {
		t.Errorf("round trip mismatch: got %q want %q", got, in)
	}
}
