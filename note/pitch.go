package note

import (
	"math"
	"strings"
)

type PitchClass int

var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Mod12 maps any semitone count into [0,11].
func Mod12(n int) PitchClass {
	return PitchClass(((n % 12) + 12) % 12)
}

func (p PitchClass) String() string {
	return pitchNames[Mod12(int(p))]
}

func (p PitchClass) Shift(semitones int) PitchClass {
	return Mod12(int(p) + semitones)
}

// PitchFromLetter resolves a natural pitch letter A-G.
func PitchFromLetter(b byte) (PitchClass, bool) {
	switch b {
	case 'C':
		return 0, true
	case 'D':
		return 2, true
	case 'E':
		return 4, true
	case 'F':
		return 5, true
	case 'G':
		return 7, true
	case 'A':
		return 9, true
	case 'B':
		return 11, true
	}
	return 0, false
}

// PitchClassSet is a bitmask over the twelve pitch classes.
type PitchClassSet uint16

func NewPitchClassSet(pcs ...PitchClass) PitchClassSet {
	var s PitchClassSet
	for _, pc := range pcs {
		s = s.Add(pc)
	}
	return s
}

func (s PitchClassSet) Add(pc PitchClass) PitchClassSet {
	return s | 1<<uint(Mod12(int(pc)))
}

func (s PitchClassSet) Has(pc PitchClass) bool {
	return s&(1<<uint(Mod12(int(pc)))) != 0
}

func (s PitchClassSet) Len() int {
	var n int
	for pc := PitchClass(0); pc < 12; pc++ {
		if s.Has(pc) {
			n++
		}
	}
	return n
}

// Shift rotates every member by semitones, wrapping mod 12.
func (s PitchClassSet) Shift(semitones int) PitchClassSet {
	var out PitchClassSet
	for _, pc := range s.Slice() {
		out = out.Add(pc.Shift(semitones))
	}
	return out
}

// Slice returns the members in ascending order.
func (s PitchClassSet) Slice() []PitchClass {
	var res []PitchClass
	for pc := PitchClass(0); pc < 12; pc++ {
		if s.Has(pc) {
			res = append(res, pc)
		}
	}
	return res
}

func (s PitchClassSet) String() string {
	names := make([]string, 0, 12)
	for _, pc := range s.Slice() {
		names = append(names, pc.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

var durationNames = []struct {
	value float64
	name  string
}{
	{1, "Whole"},
	{1.0 / 2, "Half"},
	{1.0 / 4, "Quarter"},
	{1.0 / 8, "Eighth"},
	{1.0 / 16, "Sixteenth"},
	{1.0 / 32, "Thirty-second"},
	{1.0 / 64, "Sixty Fourth"},
	{1.0 / 12, "Third of a Quarter"},
	{1.0 / 24, "Sixth of a Quarter"},
}

// DurationName names common note values, or returns "" for anything else.
func DurationName(d float64) string {
	for _, dn := range durationNames {
		if math.Abs(dn.value-d) < 1e-9 {
			return dn.name
		}
	}
	return ""
}
