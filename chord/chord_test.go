package chord

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jsphweid/chordmidi/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNote(t *testing.T, pc note.PitchClass, octave int, duration float64) note.Note {
	t.Helper()
	n, err := note.New(pc, octave, duration, 127)
	require.NoError(t, err)
	return n
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse("G7|1/4")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(note.PitchClass(7), c.Root)
	assert.Equal("G", c.Root.String())
	assert.Equal("7", c.Color)
	assert.Equal("Dominant Seventh", c.Type.Name)
	assert.Equal(0.25, c.DurationSpan())
	assert.Equal(4, c.Len())
	for _, n := range c.Notes() {
		assert.Equal(3, n.Octave())
		assert.Equal(uint8(127), n.Velocity)
		assert.Equal(0.25, n.Duration)
	}
	assert.Equal(note.NewPitchClassSet(7, 11, 2, 5), c.Components)
}

func TestParseAllFields(t *testing.T) {
	c, err := Parse("D|2*|4|100")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(note.PitchClass(2), c.Root)
	assert.Equal("", c.Color)
	assert.Equal(0.5, c.DurationSpan())
	numbers := []int{}
	for _, n := range c.Notes() {
		numbers = append(numbers, n.Number)
		assert.Equal(uint8(100), n.Velocity)
	}
	assert.Equal([]int{50, 54, 57}, numbers)
}

func TestParseDurationForms(t *testing.T) {
	cases := map[string]float64{
		"C":       1,
		"C|2":     2,
		"C|0.5":   0.5,
		"C|3/4":   0.75,
		"C|8*":    0.125,
		"C|3/2*":  2.0 / 3,
		"C| 1/2 ": 0.5,
	}
	for token, want := range cases {
		t.Run(token, func(t *testing.T) {
			c, err := Parse(token)
			require.NoError(t, err)
			assert.InDelta(t, want, c.DurationSpan(), 1e-12)
		})
	}
}

func TestParseSharpRaisesRoot(t *testing.T) {
	c, err := Parse("C#m7")
	require.NoError(t, err)
	assert.Equal(t, note.PitchClass(1), c.Root)
	assert.Equal(t, "m7", c.Color)

	c, err = Parse("B#")
	require.NoError(t, err)
	assert.Equal(t, note.PitchClass(0), c.Root)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		token string
		want  error
	}{
		{"", ErrInvalidPitch},
		{"H", ErrInvalidPitch},
		{"c", ErrInvalidPitch},
		{"#C", ErrInvalidPitch},
		{"Cxyz", ErrUnknownColor},
		{"Bb", ErrUnknownColor},
		{"C#M", ErrUnknownColor},
		{"C|", ErrInvalidDuration},
		{"C|abc", ErrInvalidDuration},
		{"C|-1", ErrInvalidDuration},
		{"C|0", ErrInvalidDuration},
		{"C|0*", ErrInvalidDuration},
		{"C|1/0", ErrInvalidDuration},
		{"C|1/x", ErrInvalidDuration},
		{"C|inf", ErrInvalidDuration},
		{"C|1|11", ErrInvalidOctave},
		{"C|1|-3", ErrInvalidOctave},
		{"C|1|three", ErrInvalidOctave},
		{"C|1|3|128", ErrInvalidVelocity},
		{"C|1|3|-1", ErrInvalidVelocity},
		{"C|1|3|loud", ErrInvalidVelocity},
		{"C|1|3|100|x", ErrTooManyFields},
	}
	for _, c := range cases {
		t.Run(c.token, func(t *testing.T) {
			chord, err := Parse(c.token)
			assert.Nil(t, chord)
			assert.True(t, errors.Is(err, c.want), "got %v", err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, c.token, pe.Token)
		})
	}
}

func TestParseOctaveBounds(t *testing.T) {
	low, err := Parse("C|1|-2")
	require.NoError(t, err)
	assert.Equal(t, -24, low.Notes()[0].Number)

	high, err := Parse("C|1|10|0")
	require.NoError(t, err)
	assert.Equal(t, 120, high.Notes()[0].Number)
	assert.Equal(t, uint8(0), high.Notes()[0].Velocity)
}

func TestNameRoundTrip(t *testing.T) {
	for _, color := range Colors() {
		for _, letter := range []string{"C", "D", "F#", "A", "G#"} {
			token := letter + color
			t.Run(token, func(t *testing.T) {
				c, err := Parse(token + "|1/2|4")
				require.NoError(t, err)
				assert.Equal(t, token, c.Name())
			})
		}
	}
}

func TestNotesStayInsideComponents(t *testing.T) {
	for _, color := range Colors() {
		c, err := Parse("E" + color)
		require.NoError(t, err)
		ct, _ := Lookup(color)
		assert.Equal(t, len(ct.Intervals), c.Len())
		for _, n := range c.Notes() {
			assert.True(t, c.Components.Has(n.PitchClass()), "%s: %v", color, n)
		}
	}
}

func TestNinthFoldsIntoOctave(t *testing.T) {
	c, err := Parse("Cm9")
	require.NoError(t, err)

	var numbers []int
	for _, n := range c.Notes() {
		numbers = append(numbers, n.Number)
	}
	assert.Equal(t, []int{36, 39, 43, 46, 38}, numbers)
	assert.Equal(t, note.NewPitchClassSet(0, 2, 3, 7, 10), c.Components)
}

func TestTransposeShiftsEverythingTogether(t *testing.T) {
	for _, s := range []int{-25, -13, -1, 0, 1, 2, 7, 12, 14, 30} {
		t.Run(fmt.Sprintf("by %d", s), func(t *testing.T) {
			c, err := Parse("Am7")
			require.NoError(t, err)
			before := c.Notes()
			components := c.Components

			c.Transpose(s)

			assert := assert.New(t)
			assert.Equal(note.Mod12(9+s), c.Root)
			assert.Equal(components.Shift(s), c.Components)
			for i, n := range c.Notes() {
				assert.Equal(before[i].Number+s, n.Number)
				assert.Equal(before[i].PitchClass().Shift(s), n.PitchClass())
				assert.True(c.Components.Has(n.PitchClass()))
			}
		})
	}
}

func TestHarmonyDurationSpanTracksMax(t *testing.T) {
	h := NewHarmony()
	assert := assert.New(t)
	assert.Equal(0.0, h.DurationSpan())

	h.Add(mustNote(t, 0, 3, 0.25))
	assert.Equal(0.25, h.DurationSpan())
	h.Add(mustNote(t, 4, 3, 1))
	assert.Equal(1.0, h.DurationSpan())
	h.Add(mustNote(t, 7, 3, 0.5))
	assert.Equal(1.0, h.DurationSpan())
	assert.Equal(3, h.Len())
}

func TestHarmonyNotesIsACopy(t *testing.T) {
	h := NewHarmony(mustNote(t, 0, 3, 1))
	notes := h.Notes()
	notes[0].Number = 99
	assert.Equal(t, 36, h.Notes()[0].Number)
}

func TestChordKeyIgnoresOrderAndRests(t *testing.T) {
	rest, err := note.NewRest(1)
	require.NoError(t, err)
	notes := []note.Note{mustNote(t, 7, 3, 1), mustNote(t, 0, 3, 1), rest, mustNote(t, 4, 3, 1)}
	assert.Equal(t, "36-40-43", CreateChordKey(notes))
	assert.Equal(t, "", CreateChordKey(nil))
}

func TestChordNotesAreReadOnly(t *testing.T) {
	c, err := Parse("C")
	require.NoError(t, err)

	notes := c.Notes()
	notes[0].Transpose(2, 0)

	assert := assert.New(t)
	assert.Equal(3, c.Len())
	assert.Equal(note.PitchClass(0), c.Root)
	assert.Equal(note.NewPitchClassSet(0, 4, 7), c.Components)
	for _, n := range c.Notes() {
		assert.True(c.Components.Has(n.PitchClass()), "%v", n)
	}
	assert.Equal(1.0, c.DurationSpan())
}

func TestLookupReturnsCopy(t *testing.T) {
	ct, ok := Lookup("m7")
	require.True(t, ok)
	ct.Intervals[0] = 5

	again, _ := Lookup("m7")
	assert.Equal(t, []int{0, 3, 7, 10}, again.Intervals)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
