package codec

// OutQueue buffers a decoder's pending output: a decoder produces output a
// block (or a back-reference) at a time, and the caller's next Read just
// drains whatever is queued. Grounded on src/io_queue.rs's IoQueue, adapted to a plain
// growable []byte since Go's append already gives amortized O(1) growth;
// rust-compression's fixed-size ring exists to avoid allocation in a
// no_std/embedded build, a constraint this module doesn't share.
type OutQueue struct {
	buf []byte
}

// Push appends bytes to the queue.
func (q *OutQueue) Push(p []byte) {
	q.buf = append(q.buf, p...)
}

// Len reports how many bytes are pending.
func (q *OutQueue) Len() int { return len(q.buf) }

// Drain copies as many pending bytes as fit into p, removing them from
// the queue, and returns the count copied.
func (q *OutQueue) Drain(p []byte) int {
	n := copy(p, q.buf)
	q.buf = q.buf[n:]
	return n
}

// Write implements io.Writer, so decoders' lzss.Window can write directly
// into a queue.
func (q *OutQueue) Write(p []byte) (int, error) {
	q.buf = append(q.buf, p...)
	return len(p), nil
}

// Take removes and returns all pending bytes.
func (q *OutQueue) Take() []byte {
	b := q.buf
	q.buf = nil
	return b
}
