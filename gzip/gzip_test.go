package gzip

import (
	"bytes"
	"io"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte(""),
		[]byte("hello, gzip world"),
		bytes.Repeat([]byte("abcdefgh"), 5000),
	}
	for _, in := range cases {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		if _, err := w.Write(in); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}

		r, err := NewReader(&buf)
		if err != nil {
			t.Fatalf("new reader: %v", err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if !bytes.Equal(got, in) {
			t.Errorf("round trip mismatch for input of length %d", len(in))
		}
	}
}

func TestHeaderMagic(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	got := buf.Bytes()[:10]
	want := []byte{0x1F, 0x8B, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("header = %#v, want %#v", got, want)
	}
}

func TestCorruptTrailerRejected(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if _, err := w.Write([]byte("some data")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xFF

	r, err := NewReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	if _, err := io.ReadAll(r); err == nil {
		t.Errorf("expected a trailer mismatch error")
	}
}
