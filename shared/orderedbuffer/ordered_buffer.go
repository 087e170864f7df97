package orderedbuffer

import (
	"context"
	"sort"
	"sync"
)

type CompareFunc[T any] func(a, b T) int

// OrderedBoundedBuffer keeps up to maxBufLen values sorted by compare.
// Inserting beyond that bound evicts the smallest value to Source; Close
// flushes the rest in order and closes Source. Insert is safe for
// concurrent producers.
type OrderedBoundedBuffer[T any] struct {
	mu        sync.Mutex
	data      []T
	maxBufLen int
	compare   CompareFunc[T]
	closed    bool

	sink chan T
}

func NewOrderedBoundedBuffer[T any](maxBufLen int, cmp CompareFunc[T]) *OrderedBoundedBuffer[T] {
	if maxBufLen < 1 {
		panic("orderedbuffer: maxBufLen must be positive")
	}
	return &OrderedBoundedBuffer[T]{
		data:      make([]T, 0, maxBufLen+1),
		maxBufLen: maxBufLen,
		compare:   cmp,
		sink:      make(chan T, maxBufLen*2),
	}
}

// Insert places val after any equal values. It returns false once the
// buffer is closed or when ctx ends while an eviction waits on Source.
func (b *OrderedBoundedBuffer[T]) Insert(ctx context.Context, val T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}

	idx := sort.Search(len(b.data), func(i int) bool {
		return b.compare(val, b.data[i]) < 0
	})
	b.data = append(b.data, val)
	copy(b.data[idx+1:], b.data[idx:])
	b.data[idx] = val

	if len(b.data) > b.maxBufLen {
		evicted := b.data[0]
		b.data = b.data[1:]
		select {
		case <-ctx.Done():
			return false
		case b.sink <- evicted:
		}
	}
	return true
}

// Len is the number of values held back from Source.
func (b *OrderedBoundedBuffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

func (b *OrderedBoundedBuffer[T]) Source() <-chan T {
	return b.sink
}

// Close flushes the held values to Source and closes it. Later calls are no-ops.
// If ctx ends first the flush continues in the background.
func (b *OrderedBoundedBuffer[T]) Close(ctx context.Context) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	pending := b.data
	b.data = nil
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(b.sink)
		for _, v := range pending {
			b.sink <- v
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}
