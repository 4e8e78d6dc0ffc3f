package ui

import (
	"io"
	"sync"
)

// AudioRingBuffer is a thread-safe byte ring buffer implementing
// io.Reader and io.Writer. The render goroutine writes encoded samples
// and oto's player reads them in a pull model. Read blocks when empty.
// Write never blocks; on overflow the oldest data is dropped.
//
// Data is kept in whole frames of frameSize bytes. Overflow drops and
// reads are rounded to frame boundaries so a reader never sees half a
// sample.
type AudioRingBuffer struct {
	mu        sync.Mutex
	cond      *sync.Cond
	buf       []byte
	frameSize int
	readPos   int
	writePos  int
	count     int
	dropped   int
	closed    bool
}

// NewAudioRingBuffer creates a ring buffer holding up to capacity
// bytes, rounded down to a whole number of frames.
func NewAudioRingBuffer(capacity, frameSize int) *AudioRingBuffer {
	if frameSize < 1 {
		frameSize = 1
	}
	capacity -= capacity % frameSize
	if capacity < frameSize {
		capacity = frameSize
	}
	rb := &AudioRingBuffer{
		buf:       make([]byte, capacity),
		frameSize: frameSize,
	}
	rb.cond = sync.NewCond(&rb.mu)
	return rb
}

// Write appends p, which should hold whole frames. A trailing partial
// frame is discarded. Writes after Close fail with io.ErrClosedPipe.
func (rb *AudioRingBuffer) Write(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.closed {
		return 0, io.ErrClosedPipe
	}

	written := len(p)
	p = p[:len(p)-len(p)%rb.frameSize]
	n := len(p)
	if n == 0 {
		return written, nil
	}

	capacity := len(rb.buf)
	if n > capacity {
		rb.dropped += n - capacity
		p = p[n-capacity:]
		n = capacity
	}

	if overflow := rb.count + n - capacity; overflow > 0 {
		rb.readPos = (rb.readPos + overflow) % capacity
		rb.count -= overflow
		rb.dropped += overflow
	}

	first := capacity - rb.writePos
	if first >= n {
		copy(rb.buf[rb.writePos:], p)
	} else {
		copy(rb.buf[rb.writePos:], p[:first])
		copy(rb.buf, p[first:])
	}
	rb.writePos = (rb.writePos + n) % capacity
	rb.count += n

	rb.cond.Signal()
	return written, nil
}

// Read implements io.Reader. It blocks until data is available or the
// buffer is closed, and returns io.EOF once closed and drained.
func (rb *AudioRingBuffer) Read(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for rb.count == 0 {
		if rb.closed {
			return 0, io.EOF
		}
		rb.cond.Wait()
	}

	n := len(p)
	if n >= rb.frameSize {
		n -= n % rb.frameSize
	}
	if n > rb.count {
		n = rb.count
	}

	capacity := len(rb.buf)
	first := capacity - rb.readPos
	if first >= n {
		copy(p, rb.buf[rb.readPos:rb.readPos+n])
	} else {
		copy(p, rb.buf[rb.readPos:])
		copy(p[first:], rb.buf[:n-first])
	}
	rb.readPos = (rb.readPos + n) % capacity
	rb.count -= n

	return n, nil
}

// Buffered returns the number of bytes waiting to be read.
func (rb *AudioRingBuffer) Buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Dropped returns the total bytes discarded by overflow.
func (rb *AudioRingBuffer) Dropped() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.dropped
}

// Clear discards all buffered data.
func (rb *AudioRingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.readPos = 0
	rb.writePos = 0
	rb.count = 0
}

// Close unblocks pending reads. Buffered data can still be drained.
func (rb *AudioRingBuffer) Close() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.closed = true
	rb.cond.Broadcast()
}
