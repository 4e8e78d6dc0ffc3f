// Package export renders hits offline and writes them as WAV files.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth  = 16
	wavChannels  = 1
	wavPCMFormat = 1
	pcmFullScale = 32767
)

var (
	// ErrInvalidSampleRate is returned for non-positive sample rates.
	ErrInvalidSampleRate = errors.New("export: invalid sample rate")
	// ErrNoSamples is returned when there is nothing to write.
	ErrNoSamples = errors.New("export: no samples")
)

// WriteWAV encodes mono samples in [-1, 1] as 16-bit PCM. Values
// outside the range are clipped.
func WriteWAV(w io.WriteSeeker, samples []float32, rate int) error {
	if rate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, rate)
	}
	if len(samples) == 0 {
		return ErrNoSamples
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: wavChannels,
			SampleRate:  rate,
		},
		Data:           toPCM16(samples),
		SourceBitDepth: wavBitDepth,
	}

	enc := wav.NewEncoder(w, rate, wavBitDepth, wavChannels, wavPCMFormat)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("export: write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("export: finalize wav: %w", err)
	}
	return nil
}

// toPCM16 scales and rounds samples to 16-bit integer codes.
func toPCM16(samples []float32) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		v := float64(s)
		if v != v {
			v = 0
		}
		v = math.Max(-1, math.Min(1, v))
		out[i] = int(math.Round(v * pcmFullScale))
	}
	return out
}
