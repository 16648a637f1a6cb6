package zlib

import (
	"bytes"
	"io"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte(""),
		[]byte("hello, zlib world"),
		bytes.Repeat([]byte("abcdefgh"), 5000),
	}
	for _, in := range cases {
		var buf bytes.Buffer
		w, err := NewWriter(&buf)
		if err != nil {
			t.Fatalf("new writer: %v", err)
		}
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

func TestHeaderChecksum(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	hdr := buf.Bytes()[:2]
	if (int(hdr[0])*256+int(hdr[1]))%31 != 0 {
		t.Errorf("header %x fails the FCHECK invariant", hdr)
	}
	if hdr[0] != 0x78 {
		t.Errorf("CMF = %#x, want 0x78", hdr[0])
	}
}

func TestPresetDictionary(t *testing.T) {
	dict := []byte("the quick brown fox jumps over the lazy dog")
	in := []byte("the quick brown fox is quick")

	var buf bytes.Buffer
	w, err := NewWriter(&buf, WithDict(dict))
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if _, err := w.Write(in); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	r, err := NewReader(&buf, WithDict(dict))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, in) {
		t.Errorf("dict round trip mismatch: got %q want %q", got, in)
	}
}

func TestWrongDictionaryRejected(t *testing.T) {
	dict := []byte("the quick brown fox jumps over the lazy dog")
	wrong := []byte("a completely different dictionary text")

	var buf bytes.Buffer
	w, err := NewWriter(&buf, WithDict(dict))
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if _, err := w.Write([]byte("the quick brown fox")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := NewReader(&buf, WithDict(wrong)); err == nil {
		t.Errorf("expected an error decoding with the wrong preset dictionary")
	}
}
