package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/chordmidi/note"
)

// Harmony is a group of notes that start together. It owns its notes.
type Harmony struct {
	notes        []note.Note
	durationSpan float64
}

func NewHarmony(notes ...note.Note) *Harmony {
	h := &Harmony{}
	for _, n := range notes {
		h.Add(n)
	}
	return h
}

func (h *Harmony) Add(n note.Note) {
	h.notes = append(h.notes, n)
	if n.Duration > h.durationSpan {
		h.durationSpan = n.Duration
	}
}

// Notes returns a copy of the notes in insertion order.
func (h *Harmony) Notes() []note.Note {
	return append([]note.Note(nil), h.notes...)
}

func (h *Harmony) Len() int {
	return len(h.notes)
}

// DurationSpan is the longest duration among the notes, 0 when empty.
func (h *Harmony) DurationSpan() float64 {
	return h.durationSpan
}

func (h *Harmony) Transpose(semitones int) {
	for i := range h.notes {
		h.notes[i].Transpose(semitones, 0)
	}
}

// CreateChordKey identifies the sounding notes regardless of order.
func CreateChordKey(notes []note.Note) string {
	var numbers []int
	for _, n := range notes {
		if !n.Rest {
			numbers = append(numbers, n.Number)
		}
	}
	sort.Ints(numbers)
	var res string
	for i, n := range numbers {
		res += fmt.Sprintf("%v", n)
		if i < len(numbers)-1 {
			res += "-"
		}
	}
	return res
}
