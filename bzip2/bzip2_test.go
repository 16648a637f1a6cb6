package bzip2

import (
	"bytes"
	"io"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, data []byte, opts ...Option) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := NewEncoder(&buf, opts...)
	if _, err := enc.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dec := NewDecoder(&buf)
	out, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return out
}

func TestRoundTripSmall(t *testing.T) {
	for _, s := range []string{"", "a", "a\n", "aaaa", "aaaaa", "abcabcabc"} {
		got := roundTrip(t, []byte(s))
		if !bytes.Equal(got, []byte(s)) {
			t.Fatalf("round trip %q: got %q", s, got)
		}
	}
}

func TestRoundTripText(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 2000)
	got := roundTrip(t, data, WithBlockSize(1))
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(data))
	}
}

func TestRoundTripMultiBlock(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	data := make([]byte, 150000)
	for i := range data {
		data[i] = byte(r.Intn(12) + 'a')
	}
	got := roundTrip(t, data, WithBlockSize(1))
	if !bytes.Equal(got, data) {
		t.Fatalf("multi-block round trip mismatch: got %d bytes, want %d", len(got), len(data))
	}
}

func TestRoundTripIncompressible(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	data := make([]byte, 8192)
	r.Read(data)
	got := roundTrip(t, data)
	if !bytes.Equal(got, data) {
		t.Fatalf("incompressible round trip mismatch")
	}
}

func TestRoundTripConcatenatedStreams(t *testing.T) {
	var buf bytes.Buffer
	for _, s := range []string{"first stream here", "second stream follows"} {
		enc := NewEncoder(&buf)
		if _, err := enc.Write([]byte(s)); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := enc.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	dec := NewDecoder(&buf)
	out, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got, want := string(out), "first stream heresecond stream follows"; got != want {
		t.Fatalf("concatenated streams: got %q, want %q", got, want)
	}
}

func TestRandomiserTable(t *testing.T) {
	var r randomiser
	seen := false
	for i := 0; i < 2000; i++ {
		if r.next() {
			seen = true
		}
	}
	if !seen {
		t.Fatalf("randomiser never flipped a bit over 2000 steps")
	}
}

func TestRLERoundTrip(t *testing.T) {
	in := []byte("aaaabccccccddddddddddddefg")
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	enc.Write(in)
	enc.Close()
	dec := NewDecoder(&buf)
	out, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("got %q, want %q", out, in)
	}
}
