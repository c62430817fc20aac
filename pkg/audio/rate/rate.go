// Package rate converts PCM sample rates using a pure Go resampler
// (no CGO/FFI dependencies).
//
// The emotion model is trained at a fixed sample rate; recordings made
// on other devices may arrive at 44.1 or 48 kHz. Convert brings them to
// the model rate in one shot. Conversion is whole-clip, not streaming:
// the entire recording is in memory before analysis anyway.
package rate

import (
	"fmt"

	resampling "github.com/tphakala/go-audio-resampling"
)

// Convert resamples mono 16-bit PCM from one sample rate to another.
// If from == to the input slice is returned unchanged.
func Convert(samples []int16, from, to int) ([]int16, error) {
	if from <= 0 || to <= 0 {
		return nil, fmt.Errorf("rate: invalid rates %d -> %d", from, to)
	}
	if from == to {
		return samples, nil
	}

	config := &resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	}
	rs, err := resampling.New(config)
	if err != nil {
		return nil, fmt.Errorf("rate: create resampler: %w", err)
	}

	input := make([]float64, len(samples))
	for i, s := range samples {
		input[i] = float64(s) / 32768.0
	}

	output, err := rs.Process(input)
	if err != nil {
		return nil, fmt.Errorf("rate: %w", err)
	}

	out := make([]int16, len(output))
	for i, v := range output {
		switch {
		case v > 1.0:
			out[i] = 32767
		case v < -1.0:
			out[i] = -32768
		default:
			out[i] = int16(v * 32767.0)
		}
	}
	return out, nil
}
