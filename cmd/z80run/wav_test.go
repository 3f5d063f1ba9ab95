package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSamplesClamps(t *testing.T) {
	got := toSamples([]float32{0, 0.5, 1, 2, -3})
	want := []int{0, math.MaxInt16 / 2, math.MaxInt16, math.MaxInt16, -math.MaxInt16}
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w, got[i].Values[0], "sample %d", i)
	}
}

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beep.wav")
	samples := []float32{0, 0.25, -0.25, 0.25}
	require.NoError(t, writeWAV(path, samples, sampleRate))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 44+2*len(samples))
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
}

func TestWriteWAVBadPath(t *testing.T) {
	err := writeWAV(filepath.Join(t.TempDir(), "missing", "x.wav"), nil, sampleRate)
	assert.ErrorContains(t, err, "wav:")
}
