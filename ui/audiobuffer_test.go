package ui

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

func TestAudioRingBuffer_WriteRead(t *testing.T) {
	rb := NewAudioRingBuffer(16, 4)
	in := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if n, err := rb.Write(in); n != len(in) || err != nil {
		t.Fatalf("Write: got (%d, %v), want (%d, nil)", n, err, len(in))
	}
	if got := rb.Buffered(); got != 8 {
		t.Errorf("Buffered: got %d, want 8", got)
	}

	out := make([]byte, 16)
	n, err := rb.Read(out)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(out[:n], in) {
		t.Errorf("Read: got %v, want %v", out[:n], in)
	}
}

func TestAudioRingBuffer_CapacityRoundsToFrames(t *testing.T) {
	rb := NewAudioRingBuffer(10, 4)
	if got := len(rb.buf); got != 8 {
		t.Errorf("capacity: got %d, want 8", got)
	}
}

func TestAudioRingBuffer_OverflowDropsOldestFrames(t *testing.T) {
	rb := NewAudioRingBuffer(8, 4)
	rb.Write([]byte{1, 1, 1, 1, 2, 2, 2, 2})
	rb.Write([]byte{3, 3, 3, 3})

	if got := rb.Dropped(); got != 4 {
		t.Errorf("Dropped: got %d, want 4", got)
	}
	out := make([]byte, 8)
	n, _ := rb.Read(out)
	want := []byte{2, 2, 2, 2, 3, 3, 3, 3}
	if !bytes.Equal(out[:n], want) {
		t.Errorf("Read: got %v, want %v", out[:n], want)
	}
}

func TestAudioRingBuffer_OversizedWriteKeepsTail(t *testing.T) {
	rb := NewAudioRingBuffer(8, 4)
	rb.Write([]byte{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3})
	out := make([]byte, 8)
	n, _ := rb.Read(out)
	want := []byte{2, 2, 2, 2, 3, 3, 3, 3}
	if !bytes.Equal(out[:n], want) {
		t.Errorf("Read: got %v, want %v", out[:n], want)
	}
}

func TestAudioRingBuffer_PartialFrameDiscarded(t *testing.T) {
	rb := NewAudioRingBuffer(16, 4)
	n, err := rb.Write([]byte{1, 2, 3, 4, 5, 6})
	if n != 6 || err != nil {
		t.Fatalf("Write: got (%d, %v), want (6, nil)", n, err)
	}
	if got := rb.Buffered(); got != 4 {
		t.Errorf("Buffered: got %d, want 4", got)
	}
}

func TestAudioRingBuffer_ReadRoundsToFrames(t *testing.T) {
	rb := NewAudioRingBuffer(16, 4)
	rb.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	out := make([]byte, 6)
	n, _ := rb.Read(out)
	if n != 4 {
		t.Errorf("Read: got %d bytes, want 4", n)
	}
}

func TestAudioRingBuffer_Wraparound(t *testing.T) {
	rb := NewAudioRingBuffer(8, 2)
	out := make([]byte, 8)
	for i := 0; i < 10; i++ {
		in := []byte{byte(i), byte(i), byte(i + 1), byte(i + 1), byte(i + 2), byte(i + 2)}
		rb.Write(in)
		n, _ := rb.Read(out)
		if !bytes.Equal(out[:n], in) {
			t.Fatalf("round %d: got %v, want %v", i, out[:n], in)
		}
	}
}

func TestAudioRingBuffer_ReadBlocksUntilWrite(t *testing.T) {
	rb := NewAudioRingBuffer(16, 4)
	done := make(chan int)
	go func() {
		out := make([]byte, 4)
		n, _ := rb.Read(out)
		done <- n
	}()

	select {
	case <-done:
		t.Fatal("Read returned before any data was written")
	case <-time.After(20 * time.Millisecond):
	}

	rb.Write([]byte{9, 9, 9, 9})
	select {
	case n := <-done:
		if n != 4 {
			t.Errorf("Read: got %d bytes, want 4", n)
		}
	case <-time.After(time.Second):
		t.Fatal("Read did not wake after Write")
	}
}

func TestAudioRingBuffer_Close(t *testing.T) {
	rb := NewAudioRingBuffer(16, 4)
	rb.Write([]byte{1, 2, 3, 4})
	rb.Close()

	if _, err := rb.Write([]byte{5, 6, 7, 8}); !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("Write after Close: got %v, want io.ErrClosedPipe", err)
	}

	out := make([]byte, 8)
	if n, err := rb.Read(out); n != 4 || err != nil {
		t.Errorf("draining Read: got (%d, %v), want (4, nil)", n, err)
	}
	if _, err := rb.Read(out); err != io.EOF {
		t.Errorf("Read on drained buffer: got %v, want io.EOF", err)
	}
}

func TestAudioRingBuffer_Clear(t *testing.T) {
	rb := NewAudioRingBuffer(16, 4)
	rb.Write([]byte{1, 2, 3, 4})
	rb.Clear()
	if got := rb.Buffered(); got != 0 {
		t.Errorf("Buffered after Clear: got %d, want 0", got)
	}
}

func TestEncodeFloat32LE(t *testing.T) {
	got := encodeFloat32LE(nil, []float32{1, -2})
	want := []byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x00, 0xc0}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestDurationBytes(t *testing.T) {
	if got := durationBytes(48000, 100*time.Millisecond); got != 4800*bytesPerFrame {
		t.Errorf("got %d, want %d", got, 4800*bytesPerFrame)
	}
}
