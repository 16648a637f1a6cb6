package lzhuf

import (
	"bytes"
	"io"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, method Method, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf, method)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r := NewReader(&buf, method)
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return out
}

func TestRoundTripMethods(t *testing.T) {
	data := []byte(bytesRepeat("the quick brown fox jumps over the lazy dog. ", 200))
	for _, m := range []Method{LH4, LH5, LH6, LH7} {
		got := roundTrip(t, m, data)
		if !bytes.Equal(got, data) {
			t.Fatalf("%v: round trip mismatch: got %d bytes, want %d", m, len(got), len(data))
		}
	}
}

func TestRoundTripEmpty(t *testing.T) {
	got := roundTrip(t, LH5, nil)
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(got))
	}
}

func TestRoundTripShort(t *testing.T) {
	got := roundTrip(t, LH5, []byte("a"))
	if !bytes.Equal(got, []byte("a")) {
		t.Fatalf("got %q, want %q", got, "a")
	}
}

func TestRoundTripMultiBlock(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	data := make([]byte, 3*maxBlockLen)
	for i := range data {
		data[i] = byte(r.Intn(6) + 'a')
	}
	got := roundTrip(t, LH7, data)
	if !bytes.Equal(got, data) {
		t.Fatalf("multi-block round trip mismatch: got %d bytes, want %d", len(got), len(data))
	}
}

func TestRoundTripIncompressible(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	data := make([]byte, 4096)
	r.Read(data)
	got := roundTrip(t, LH6, data)
	if !bytes.Equal(got, data) {
		t.Fatalf("incompressible round trip mismatch")
	}
}

func bytesRepeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
