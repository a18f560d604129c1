package sequence

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jsphweid/chordmidi/note"
	"github.com/jsphweid/chordmidi/util"
)

var ErrBadRhythm = errors.New("invalid rhythm spec")

// Sequence is a monophonic line. Duration and RestCount always reflect the
// notes it holds.
type Sequence struct {
	notes     []note.Note
	duration  float64
	restCount int
}

func New(notes ...note.Note) *Sequence {
	s := &Sequence{}
	for _, n := range notes {
		s.Add(n)
	}
	return s
}

func (s *Sequence) Add(n note.Note) {
	s.notes = append(s.notes, n)
	s.duration += n.Duration
	if n.Rest {
		s.restCount++
	}
}

func (s *Sequence) Notes() []note.Note {
	return append([]note.Note(nil), s.notes...)
}

func (s *Sequence) Len() int {
	return len(s.notes)
}

func (s *Sequence) Duration() float64 {
	return s.duration
}

func (s *Sequence) RestCount() int {
	return s.restCount
}

func (s *Sequence) Transpose(semitones int) {
	for i := range s.notes {
		s.notes[i].Transpose(semitones, 0)
	}
}

func (s *Sequence) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total notes in rhythm: %d\n", len(s.notes))
	fmt.Fprintf(&b, "Rests: %d, Tones: %d\n", s.restCount, len(s.notes)-s.restCount)
	fmt.Fprintf(&b, "Total duration: %v\n", s.duration)
	return b.String()
}

func (s *Sequence) String() string {
	var b strings.Builder
	b.WriteString(s.Summary())
	for _, n := range s.notes {
		b.WriteString(n.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Chooser picks one multiplier, weighted by the matching probability.
type Chooser func(multipliers []int, probs []float64) (int, error)

// RandomChooser returns a Chooser backed by r.
func RandomChooser(r *rand.Rand) Chooser {
	return func(multipliers []int, probs []float64) (int, error) {
		return util.WeightedChoice(r, multipliers, probs)
	}
}

// RestChooser decides whether a generated note is a rest.
type RestChooser func(restProb float64) bool

func RandomRestChooser(r *rand.Rand) RestChooser {
	return func(restProb float64) bool {
		return r.Float64() < restProb
	}
}

// RhythmSpec describes a random rhythm: Duration whole notes built from steps
// of MinUnit, each note lasting a multiple of MinUnit.
type RhythmSpec struct {
	MinUnit     float64
	Duration    float64
	Multipliers []int
	Probs       []float64
	RestProb    float64
}

// GenerateRhythm appends notes to s until the spec's duration is filled.
// Only multipliers that still fit are offered to choose, so generation
// always terminates. Nil choosers fall back to a time seeded source.
func (s *Sequence) GenerateRhythm(spec RhythmSpec, choose Chooser, rest RestChooser) error {
	if !(spec.MinUnit > 0) || spec.Duration < 0 || len(spec.Multipliers) == 0 || len(spec.Multipliers) != len(spec.Probs) {
		return ErrBadRhythm
	}
	if choose == nil || rest == nil {
		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		if choose == nil {
			choose = RandomChooser(r)
		}
		if rest == nil {
			rest = RandomRestChooser(r)
		}
	}

	total := int(math.Round(spec.Duration / spec.MinUnit))
	pos := 0
	for pos < total {
		var fits []int
		var probs []float64
		for i, m := range spec.Multipliers {
			if m > 0 && pos+m <= total {
				fits = append(fits, m)
				probs = append(probs, spec.Probs[i])
			}
		}
		if len(fits) == 0 {
			return fmt.Errorf("%w: no multiplier fits the remaining %d units", ErrBadRhythm, total-pos)
		}
		m, err := choose(fits, probs)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadRhythm, err)
		}
		if m <= 0 || pos+m > total {
			return fmt.Errorf("%w: chooser returned %d", ErrBadRhythm, m)
		}

		d := float64(m) * spec.MinUnit
		var n note.Note
		if rest(spec.RestProb) {
			n, err = note.NewRest(d)
		} else {
			n, err = note.New(0, note.DefaultOctave, d, note.DefaultVelocity)
		}
		if err != nil {
			return err
		}
		s.Add(n)
		pos += m
	}
	return nil
}
