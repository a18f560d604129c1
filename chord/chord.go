package chord

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/chordmidi/note"
)

const (
	ParameterDelim = "|"
	InverseChar    = "*"

	maxFields = 4
)

// Chord is a Harmony built from a root and a color. Its notes are not
// exposed for mutation: Root, Components and every note's number only
// change together through Transpose.
type Chord struct {
	harmony    *Harmony
	Root       note.PitchClass
	Color      string
	Type       ChordType
	Components note.PitchClassSet
}

// Spec holds the fields of a parsed chord token.
type Spec struct {
	Root     note.PitchClass
	Color    string
	Type     ChordType
	Duration float64
	Octave   int
	Velocity uint8
}

// Parse turns a token like "Am7|1/4|4|100" into a Chord.
func Parse(s string) (*Chord, error) {
	spec, err := ParseSpec(s)
	if err != nil {
		return nil, err
	}
	return FromSpec(spec)
}

func FromSpec(spec Spec) (*Chord, error) {
	c := &Chord{
		harmony: NewHarmony(),
		Root:    spec.Root,
		Color:   spec.Color,
		Type:    spec.Type,
	}
	for _, interval := range spec.Type.Intervals {
		pc := spec.Root.Shift(interval)
		n, err := note.New(pc, spec.Octave, spec.Duration, spec.Velocity)
		if err != nil {
			return nil, err
		}
		c.harmony.Add(n)
		c.Components = c.Components.Add(pc)
	}
	return c, nil
}

// ParseSpec validates a chord token without building notes.
func ParseSpec(s string) (Spec, error) {
	spec := Spec{Duration: 1, Octave: note.DefaultOctave, Velocity: note.DefaultVelocity}
	fail := func(kind error, value string) (Spec, error) {
		return Spec{}, &ParseError{Token: s, Value: value, Kind: kind}
	}

	fields := strings.Split(s, ParameterDelim)
	if len(fields) > maxFields {
		return fail(ErrTooManyFields, strings.Join(fields[maxFields:], ParameterDelim))
	}

	head := fields[0]
	if head == "" {
		return fail(ErrInvalidPitch, head)
	}
	root, ok := note.PitchFromLetter(head[0])
	if !ok {
		return fail(ErrInvalidPitch, head[:1])
	}
	consumed := 1
	if len(head) > 1 && head[1] == '#' {
		root = root.Shift(1)
		consumed = 2
	}
	spec.Root = root
	spec.Color = head[consumed:]
	ct, ok := Lookup(spec.Color)
	if !ok {
		return fail(ErrUnknownColor, spec.Color)
	}
	spec.Type = ct

	if len(fields) > 1 {
		d, err := parseDuration(fields[1])
		if err != nil {
			return fail(ErrInvalidDuration, fields[1])
		}
		spec.Duration = d
	}

	if len(fields) > 2 {
		o, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil || o < note.MinOctave || o > note.MaxOctave {
			return fail(ErrInvalidOctave, fields[2])
		}
		spec.Octave = o
	}

	if len(fields) > 3 {
		v, err := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err != nil || v < 0 || v > 127 {
			return fail(ErrInvalidVelocity, fields[3])
		}
		spec.Velocity = uint8(v)
	}

	return spec, nil
}

// parseDuration accepts "2", "0.5", "1/4" and the reciprocal forms "4*", "3/2*".
func parseDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	invert := strings.HasSuffix(s, InverseChar)
	if invert {
		s = strings.TrimSuffix(s, InverseChar)
	}
	d, err := parseNumFrac(s)
	if err != nil {
		return 0, err
	}
	if invert {
		if d == 0 {
			return 0, fmt.Errorf("cannot invert zero")
		}
		d = 1 / d
	}
	if !(d > 0) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("duration %v is not a positive finite value", d)
	}
	return d, nil
}

func parseNumFrac(s string) (float64, error) {
	num, den, isFrac := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	if !isFrac {
		return n, nil
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("zero denominator in %q", s)
	}
	return n / d, nil
}

// Transpose moves the root and components by semitones mod 12 and every note
// by the raw semitone count, so octave register is preserved.
func (c *Chord) Transpose(semitones int) {
	c.Root = c.Root.Shift(semitones)
	c.Components = c.Components.Shift(semitones)
	c.harmony.Transpose(semitones)
}

// Notes returns a copy of the chord's notes.
func (c *Chord) Notes() []note.Note {
	return c.harmony.Notes()
}

func (c *Chord) Len() int {
	return c.harmony.Len()
}

func (c *Chord) DurationSpan() float64 {
	return c.harmony.DurationSpan()
}

func (c *Chord) Name() string {
	return c.Root.String() + c.Color
}

func (c *Chord) String() string {
	return fmt.Sprintf("[Chord] Name: %s | Duration: %v | Components %v", c.Name(), c.DurationSpan(), c.Components)
}
