package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/chordmidi/midi"
	"github.com/jsphweid/chordmidi/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// longestFit always takes the largest multiplier still offered.
func longestFit(multipliers []int, probs []float64) (int, error) {
	return multipliers[len(multipliers)-1], nil
}

// everyOther rests on every second call.
func everyOther() sequence.RestChooser {
	calls := 0
	return func(float64) bool {
		calls++
		return calls%2 == 0
	}
}

func TestWriteRhythm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rhythm.mid")
	opts := rhythmOptions{
		renderOptions: renderOptions{instrument: "Bass", transpose: 2},
		spec: sequence.RhythmSpec{
			MinUnit:     0.25,
			Duration:    1.5,
			Multipliers: []int{1, 4},
			Probs:       []float64{1, 1},
		},
	}

	got, seq, err := writeRhythm(opts, path, longestFit, everyOther())
	require.NoError(t, err)
	assert.Equal(t, path, got)

	assert := assert.New(t)
	assert.Equal(3, seq.Len())
	assert.Equal(1, seq.RestCount())
	assert.Equal(1.5, seq.Duration())
	assert.Equal(38, seq.Notes()[0].Number)

	s, err := midi.ReadMidiFile(path)
	require.NoError(t, err)
	line, err := midi.ExtractSequence(s, 1)
	require.NoError(t, err)
	assert.Equal(seq.Len(), line.Len())
	assert.Equal(seq.RestCount(), line.RestCount())
	assert.InDelta(seq.Duration(), line.Duration(), 1e-9)
	assert.Equal(38, line.Notes()[0].Number)
}

func TestWriteRhythmSeededIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	opts := rhythmOptions{
		spec: sequence.RhythmSpec{
			MinUnit:     0.125,
			Duration:    2,
			Multipliers: []int{1, 2, 4},
			Probs:       []float64{0.5, 0.3, 0.2},
			RestProb:    0.2,
		},
		seed: 42,
	}

	_, a, err := writeRhythm(opts, filepath.Join(dir, "a.mid"), nil, nil)
	require.NoError(t, err)
	_, b, err := writeRhythm(opts, filepath.Join(dir, "b.mid"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Notes(), b.Notes())
	assert.Equal(t, 2.0, a.Duration())
}

func TestWriteRhythmRejectsBadSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rhythm.mid")
	opts := rhythmOptions{spec: sequence.RhythmSpec{MinUnit: 0.25, Duration: 1, Multipliers: []int{1, 2}, Probs: []float64{1}}}

	_, _, err := writeRhythm(opts, path, longestFit, everyOther())
	assert.ErrorIs(t, err, sequence.ErrBadRhythm)
	assert.True(t, isUserError(err))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
