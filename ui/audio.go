package ui

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Samples are mono float32, little endian.
const (
	audioChannels = 1
	bytesPerFrame = 4 * audioChannels
)

// ringBufferDuration bounds the latency the ring buffer can hold.
const ringBufferDuration = 200 * time.Millisecond

// playerBufferDuration is oto's own read-ahead per player.
const playerBufferDuration = 40 * time.Millisecond

// ErrSampleRateMismatch is returned when a player is requested at a rate
// other than the one the process-wide audio context was opened with.
var ErrSampleRateMismatch = errors.New("audio context already open at a different sample rate")

// AudioPlayer streams mono float32 samples to the default output device
// via oto. Samples are encoded into a ring buffer that oto's player
// reads from in a pull model.
type AudioPlayer struct {
	player     *oto.Player
	ringBuffer *AudioRingBuffer
	sampleRate int
	audioBytes []byte // reused float32-to-byte scratch
}

// oto allows a single context per process.
var (
	otoCtx      *oto.Context
	otoRate     int
	otoInitOnce sync.Once
	otoInitErr  error
)

// ensureOtoContext opens the oto context on first use.
func ensureOtoContext(sampleRate int) (*oto.Context, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: audioChannels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   50 * time.Millisecond,
		}
		var readyChan chan struct{}
		otoCtx, readyChan, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		otoRate = sampleRate
		<-readyChan
	})
	if otoInitErr != nil {
		return nil, otoInitErr
	}
	if otoRate != sampleRate {
		return nil, fmt.Errorf("%w: open at %d Hz, want %d Hz", ErrSampleRateMismatch, otoRate, sampleRate)
	}
	return otoCtx, nil
}

// NewAudioPlayer opens playback at sampleRate with the given volume
// (0.0 silent, 1.0 full).
func NewAudioPlayer(sampleRate int, volume float64) (*AudioPlayer, error) {
	ctx, err := ensureOtoContext(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("oto audio not available: %w", err)
	}

	rb := NewAudioRingBuffer(durationBytes(sampleRate, ringBufferDuration), bytesPerFrame)
	player := ctx.NewPlayer(rb)
	player.SetBufferSize(durationBytes(sampleRate, playerBufferDuration))
	player.SetVolume(volume)
	player.Play()

	return &AudioPlayer{
		player:     player,
		ringBuffer: rb,
		sampleRate: sampleRate,
		audioBytes: make([]byte, 0, 4096),
	}, nil
}

// durationBytes converts a duration at rate into whole frames of bytes.
func durationBytes(rate int, d time.Duration) int {
	return int(int64(rate)*int64(d)/int64(time.Second)) * bytesPerFrame
}

// encodeFloat32LE appends the little-endian IEEE-754 bytes of samples
// to dst.
func encodeFloat32LE(dst []byte, samples []float32) []byte {
	for _, s := range samples {
		b := math.Float32bits(s)
		dst = append(dst, byte(b), byte(b>>8), byte(b>>16), byte(b>>24))
	}
	return dst
}

// QueueSamples encodes samples and hands them to the player.
func (a *AudioPlayer) QueueSamples(samples []float32) {
	if len(samples) == 0 {
		return
	}
	needed := len(samples) * bytesPerFrame
	if cap(a.audioBytes) < needed {
		a.audioBytes = make([]byte, 0, needed)
	}
	a.audioBytes = encodeFloat32LE(a.audioBytes[:0], samples)
	a.ringBuffer.Write(a.audioBytes)
}

// BufferLevel returns the number of samples queued but not yet played,
// counting both the ring buffer and oto's internal buffer. Used for
// render pacing.
func (a *AudioPlayer) BufferLevel() int {
	return (a.ringBuffer.Buffered() + a.player.BufferedSize()) / bytesPerFrame
}

// SampleRate returns the playback rate.
func (a *AudioPlayer) SampleRate() int {
	return a.sampleRate
}

// SetVolume sets the playback volume (0.0 = silent, 1.0 = full).
func (a *AudioPlayer) SetVolume(vol float64) {
	a.player.SetVolume(vol)
}

// Close stops playback. The process-wide context stays open.
func (a *AudioPlayer) Close() {
	if a.ringBuffer != nil {
		a.ringBuffer.Close()
	}
	if a.player != nil {
		a.player.Close()
	}
}
