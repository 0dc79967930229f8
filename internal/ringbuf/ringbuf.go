package ringbuf

// Buffer is a bounded FIFO of strings. Once full, pushing a new entry
// evicts the oldest one.
type Buffer struct {
	items    []string
	capacity int
}

// New returns an empty buffer holding at most capacity entries.
// A capacity below 1 is treated as 1.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		items:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Push appends s, dropping the oldest entry when the buffer is full.
func (b *Buffer) Push(s string) {
	if len(b.items) >= b.capacity {
		copy(b.items, b.items[1:])
		b.items = b.items[:len(b.items)-1]
	}
	b.items = append(b.items, s)
}

// Drain returns every entry in arrival order and empties the buffer.
func (b *Buffer) Drain() []string {
	if len(b.items) == 0 {
		return nil
	}
	out := make([]string, len(b.items))
	copy(out, b.items)
	b.items = b.items[:0]
	return out
}

// Items returns a copy of the entries in arrival order.
func (b *Buffer) Items() []string {
	out := make([]string, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Buffer) Len() int { return len(b.items) }

func (b *Buffer) Cap() int { return b.capacity }
