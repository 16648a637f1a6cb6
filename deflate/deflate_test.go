package deflate

import (
	"bytes"
	"io"
	"testing"
)

func roundTrip(t *testing.T, data []byte, opts ...Option) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf, opts...)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	r := NewReader(&buf, opts...)
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return got
}

func TestEmptyStreamVector(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	want := []byte{0x03, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("empty stream: got %#v want %#v", buf.Bytes(), want)
	}
}

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("hello, hello, hello, world"),
		bytes.Repeat([]byte("abcdefgh"), 5000),
		bytes.Repeat([]byte{0}, 100000),
	}
	for _, in := range cases {
		got := roundTrip(t, in)
		if !bytes.Equal(got, in) {
			t.Errorf("round trip mismatch for input of length %d", len(in))
		}
	}
}

func TestRoundTripWithDict(t *testing.T) {
	dict := []byte("the quick brown fox jumps over the lazy dog")
	in := []byte("the quick brown fox is quick")
	got := roundTrip(t, in, WithDict(dict))
	if !bytes.Equal(got, in) {
		t.Errorf("dict round trip mismatch: got %q want %q", got, in)
	}
}
