package chord

import (
	"sort"

	"github.com/jsphweid/chordmidi/util"
)

// ChordType is an interval template keyed by its color token.
type ChordType struct {
	Name      string
	Symbol    string
	Intervals []int
}

// registry is filled once in init and only read afterwards.
var registry = map[string]ChordType{}

func register(name, symbol string, intervals ...int) {
	registry[symbol] = ChordType{Name: name, Symbol: symbol, Intervals: intervals}
}

func init() {
	register("Major Triad", "", 0, 4, 7)
	register("Major Triad", "maj", 0, 4, 7)
	register("Major Sixth", "maj6", 0, 4, 7, 9)
	register("Dominant Seventh", "7", 0, 4, 7, 10)
	register("Major Seventh", "maj7", 0, 4, 7, 11)
	register("Augmented Triad", "aug", 0, 4, 8)
	register("Augmented Seventh", "aug7", 0, 4, 8, 10)
	register("Minor Triad", "m", 0, 3, 7)
	register("Minor Sixth", "m6", 0, 3, 7, 9)
	register("Minor Seventh", "m7", 0, 3, 7, 10)
	register("Minor Ninth", "m9", 0, 3, 7, 10, 14)
	register("Half Diminished Seventh", "m7b5", 0, 3, 6, 10)
	register("Minor-Major Seventh", "m(M7)", 0, 3, 7, 11)
	register("Diminished Triad", "dim", 0, 3, 6)
	register("Diminished Seventh", "dim7", 0, 3, 6, 9)
	register("Suspended Fourth", "sus4", 0, 5, 7)
	register("Suspended Second", "sus2", 0, 2, 7)
	register("Fifth", "5", 0, 7)
}

// Lookup returns a copy of the chord type for a color token.
func Lookup(color string) (ChordType, bool) {
	ct, ok := registry[color]
	if !ok {
		return ChordType{}, false
	}
	ct.Intervals = append([]int(nil), ct.Intervals...)
	return ct, true
}

// Colors lists every registered color token in sorted order.
func Colors() []string {
	keys := util.GetKeys(registry)
	sort.Strings(keys)
	return keys
}
