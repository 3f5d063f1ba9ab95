// wav.go - Writes rendered beeper samples to a WAV file

package main

import (
	"fmt"
	"math"
	"os"

	"github.com/youpy/go-wav"
)

// toSamples converts float samples in [-1, 1] to 16-bit mono WAV samples.
func toSamples(in []float32) []wav.Sample {
	out := make([]wav.Sample, len(in))
	for i, s := range in {
		v := math.Max(-1, math.Min(1, float64(s)))
		out[i].Values[0] = int(v * math.MaxInt16)
	}
	return out
}

func writeWAV(path string, samples []float32, rate int) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wav: %w", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(samples)), 1, uint32(rate), 16)
	if err := enc.WriteSamples(toSamples(samples)); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}
