package channel

import (
	"errors"
	"sync"
)

var ErrFull = errors.New("channel is full")

// Channel is a bounded FIFO conduit for passing values between tasks.
// Send and Receive never block; a full channel rejects the send and an
// empty channel reports no value.
type Channel[T any] struct {
	mux  sync.Mutex
	buf  []T
	head int
	size int
}

// New creates a channel holding at most capacity pending values.
// A capacity below 1 is treated as 1.
func New[T any](capacity int) *Channel[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Channel[T]{
		buf: make([]T, capacity),
	}
}

// Send enqueues value. It returns ErrFull when the channel already holds
// Cap() unconsumed values; no pending value is ever dropped or overwritten.
func (c *Channel[T]) Send(value T) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.size == len(c.buf) {
		return ErrFull
	}
	c.buf[(c.head+c.size)%len(c.buf)] = value
	c.size++
	return nil
}

// Receive removes and returns the oldest pending value. The second return
// is false when the channel is empty.
func (c *Channel[T]) Receive() (T, bool) {
	c.mux.Lock()
	defer c.mux.Unlock()

	var zero T
	if c.size == 0 {
		return zero, false
	}
	value := c.buf[c.head]
	c.buf[c.head] = zero
	c.head = (c.head + 1) % len(c.buf)
	c.size--
	return value, true
}

// Len returns the number of pending values.
func (c *Channel[T]) Len() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.size
}

// Cap returns the channel capacity.
func (c *Channel[T]) Cap() int {
	return len(c.buf)
}
