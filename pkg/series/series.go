package series

// DefaultCapacity is the number of readings kept when no capacity is configured.
const DefaultCapacity = 100

// Buffer is a fixed-capacity sliding window of readings.
// Appending to a full buffer evicts the oldest reading (FIFO).
//
// Buffer is not safe for concurrent use; the owner serializes access.
type Buffer struct {
	buf   []float32
	pos   int // next write index
	count int
}

// New creates a buffer holding at most capacity readings.
// A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		buf: make([]float32, capacity),
	}
}

// Append adds v as the newest reading, evicting the oldest one when full.
func (b *Buffer) Append(v float32) {
	b.buf[b.pos] = v
	b.pos = (b.pos + 1) % len(b.buf)
	if b.count < len(b.buf) {
		b.count++
	}
}

// Snapshot returns a copy of the readings ordered oldest to newest.
func (b *Buffer) Snapshot() []float32 {
	return b.AppendTo(nil)
}

// AppendTo appends the readings, oldest first, to dst and returns the extended slice.
// It lets callers reuse a destination slice between snapshots.
func (b *Buffer) AppendTo(dst []float32) []float32 {
	if b.count == 0 {
		return dst
	}
	if b.count < len(b.buf) {
		return append(dst, b.buf[:b.count]...)
	}
	dst = append(dst, b.buf[b.pos:]...)
	return append(dst, b.buf[:b.pos]...)
}

// Last returns the newest reading. ok is false when the buffer is empty.
func (b *Buffer) Last() (v float32, ok bool) {
	if b.count == 0 {
		return 0, false
	}
	idx := (b.pos - 1 + len(b.buf)) % len(b.buf)
	return b.buf[idx], true
}

// IsEmpty reports whether no reading has been appended since creation or Reset.
func (b *Buffer) IsEmpty() bool {
	return b.count == 0
}

// Len returns the number of stored readings.
func (b *Buffer) Len() int {
	return b.count
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// Reset drops all readings, keeping the capacity.
func (b *Buffer) Reset() {
	b.pos = 0
	b.count = 0
}
