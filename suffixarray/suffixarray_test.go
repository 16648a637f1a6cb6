package suffixarray

import "testing"

func TestBWTRoundTrip(t *testing.T) {
	cases := []string{
		"banana",
		"abracadabra",
		"mississippi",
		"aaaaaaaaaa",
		"a",
		"",
	}
	for _, s := range cases {
		out, ptr := Forward([]byte(s))
		got := Inverse(out, ptr)
		if string(got) != s {
			t.Errorf("BWT round trip for %q: got %q (ptr=%d, bwt=%q)", s, got, ptr, out)
		}
	}
}

func TestMTFRoundTrip(t *testing.T) {
	alphabet := []byte("abcdefghij")
	input := []byte("jihgfedcbaabcdefghij")
	enc := NewMTFEncoder(alphabet)
	ranks := make([]int, len(input))
	for i, b := range input {
		ranks[i] = enc.Encode(b)
	}
	dec := NewMTFDecoder(alphabet)
	for i, r := range ranks {
		got := dec.Decode(r)
		if got != input[i] {
			t.Errorf("mtf decode %d: got %q want %q", i, got, input[i])
		}
	}
}
