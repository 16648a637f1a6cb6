package bitio

import (
	"bytes"
	"io"
	"testing"
)

// TestReaderDirections is grounded on the unit tests in
// original_source/src/bitio/reader.rs, which read lengths (1,2,3,2) from
// the byte 0b1100_1100 and assert the resulting values.
func TestReaderDirections(t *testing.T) {
	data := []byte{0b1100_1100}

	t.Run("left", func(t *testing.T) {
		r := NewReader(bytes.NewReader(data), Left)
		want := []uint64{0b1, 0b10, 0b011, 0b00}
		for i, l := range []uint{1, 2, 3, 2} {
			v, err := r.Read(l)
			if err != nil {
				t.Fatalf("read %d: %v", i, err)
			}
			if v != want[i] {
				t.Errorf("read %d: got %0b want %0b", i, v, want[i])
			}
		}
	})

	t.Run("right", func(t *testing.T) {
		r := NewReader(bytes.NewReader(data), Right)
		want := []uint64{0b0, 0b10, 0b0001, 0b11}
		for i, l := range []uint{1, 2, 3, 2} {
			v, err := r.Read(l)
			if err != nil {
				t.Fatalf("read %d: %v", i, err)
			}
			if v != want[i] {
				t.Errorf("read %d: got %0b want %0b", i, v, want[i])
			}
		}
	})
}

func TestWriterRoundTrip(t *testing.T) {
	for _, dir := range []Direction{Left, Right} {
		var buf bytes.Buffer
		w := NewWriter(&buf, dir)
		fields := []struct {
			v uint64
			n uint
		}{
			{0x3, 2}, {0x15, 5}, {0x1, 1}, {0xAB, 8}, {0x7F, 7},
		}
		for _, f := range fields {
			if err := w.Write(f.v, f.n); err != nil {
				t.Fatalf("dir %v: write: %v", dir, err)
			}
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("dir %v: flush: %v", dir, err)
		}

		r := NewReader(bytes.NewReader(buf.Bytes()), dir)
		for i, f := range fields {
			v, err := r.Read(f.n)
			if err != nil {
				t.Fatalf("dir %v: read %d: %v", dir, i, err)
			}
			if v != f.v {
				t.Errorf("dir %v: field %d: got %#x want %#x", dir, i, v, f.v)
			}
		}
	}
}

func TestSkipToNextByte(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xFF, 0x00, 0xAB}), Right)
	if _, err := r.Read(3); err != nil {
		t.Fatal(err)
	}
	r.SkipToNextByte()
	if !r.Aligned() {
		t.Fatalf("expected aligned after SkipToNextByte")
	}
	b, err := r.ReadAlignedByte()
	if err != nil {
		t.Fatal(err)
	}
	if b != 0x00 {
		t.Errorf("got %#x want 0x00", b)
	}
	b, err = r.ReadAlignedByte()
	if err != nil {
		t.Fatal(err)
	}
	if b != 0xAB {
		t.Errorf("got %#x want 0xAB", b)
	}
}

func TestUnexpectedEOF(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xFF}), Left)
	if _, err := r.Read(4); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := r.Read(5); err != io.ErrUnexpectedEOF {
		t.Fatalf("got %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestCleanEOF(t *testing.T) {
	r := NewReader(bytes.NewReader(nil), Left)
	if _, err := r.Read(1); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}
