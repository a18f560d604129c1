package note

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultVelocity uint8 = 127
	DefaultOctave         = 3

	MinOctave = -2
	MaxOctave = 10
)

var (
	ErrInvalidPitch    = errors.New("pitch class must be within [0,11]")
	ErrInvalidOctave   = errors.New("octave must be within [-2,10]")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidVelocity = errors.New("velocity must be within [0,127]")
)

// Note is a single pitched event or a rest. Pitch class and octave are
// always derived from Number.
type Note struct {
	Rest     bool
	Duration float64 // whole-note units
	Number   int
	Velocity uint8
}

func New(pc PitchClass, octave int, duration float64, velocity uint8) (Note, error) {
	if pc < 0 || pc > 11 {
		return Note{}, fmt.Errorf("%w: %d", ErrInvalidPitch, pc)
	}
	if octave < MinOctave || octave > MaxOctave {
		return Note{}, fmt.Errorf("%w: %d", ErrInvalidOctave, octave)
	}
	return FromNumber(12*octave+int(pc), duration, velocity)
}

func FromNumber(number int, duration float64, velocity uint8) (Note, error) {
	if !(duration > 0) || math.IsInf(duration, 0) {
		return Note{}, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	if velocity > 127 {
		return Note{}, fmt.Errorf("%w: %d", ErrInvalidVelocity, velocity)
	}
	return Note{Duration: duration, Number: number, Velocity: velocity}, nil
}

func NewRest(duration float64) (Note, error) {
	n, err := FromNumber(0, duration, DefaultVelocity)
	if err != nil {
		return Note{}, err
	}
	n.Rest = true
	return n, nil
}

func (n Note) PitchClass() PitchClass {
	return Mod12(n.Number)
}

// Octave uses floored division so negative numbers stay consistent with
// PitchClass.
func (n Note) Octave() int {
	o := n.Number / 12
	if n.Number%12 < 0 {
		o--
	}
	return o
}

func (n Note) PitchName() string {
	return n.PitchClass().String()
}

func (n *Note) Transpose(semitones, octaves int) {
	n.Number += semitones + 12*octaves
}

func (n Note) String() string {
	return fmt.Sprintf("[Note]: Type: %s%d | Duration: %v (%s) | Rest: %v",
		n.PitchName(), n.Octave(), n.Duration, DurationName(n.Duration), n.Rest)
}
