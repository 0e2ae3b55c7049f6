package transfer

// Buffer accumulates the raw bytes of one in-progress upload.
//
// It is a plain growable byte sequence: Append is O(1) amortized and Drain
// returns the accumulated bytes in exactly the order they were appended.
// The buffer enforces no maximum size of its own; the transport layer bounds
// individual writes and available memory bounds the total. Buffer is not
// safe for concurrent use; the owning Session serializes access.
type Buffer struct {
	data []byte
}

// Append adds a chunk to the end of the buffer. The chunk is copied, so the
// caller may reuse its slice after Append returns.
func (b *Buffer) Append(chunk []byte) {
	b.data = append(b.data, chunk...)
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the buffered contents without clearing them. The returned
// slice aliases the buffer and is invalidated by the next Append or Reset.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Drain returns the buffered contents and clears the buffer.
func (b *Buffer) Drain() []byte {
	data := b.data
	b.data = nil
	return data
}

// Reset discards the buffered contents.
func (b *Buffer) Reset() {
	b.data = nil
}
