package model

import "fmt"

type EventKind uint8

const (
	NoteOn EventKind = iota + 1
	NoteOff
	ProgramChange
	MetaTempo
	MetaMeter
	MetaTrackName
)

var eventKindNames = map[EventKind]string{
	NoteOn:        "note_on",
	NoteOff:       "note_off",
	ProgramChange: "program_change",
	MetaTempo:     "meta_tempo",
	MetaMeter:     "meta_meter",
	MetaTrackName: "meta_track_name",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(text []byte) error {
	for kind, name := range eventKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// Event is one timed entry of a track. Only the fields relevant to Kind are
// meaningful.
type Event struct {
	Kind     EventKind `json:"kind"`
	Delta    uint32    `json:"delta"`
	Channel  uint8     `json:"channel"`
	Key      uint8     `json:"key,omitempty"`
	Velocity uint8     `json:"velocity,omitempty"`
	Program  uint8     `json:"program,omitempty"`
	BPM      float64   `json:"bpm,omitempty"`
	Num      uint8     `json:"num,omitempty"`
	Denom    uint8     `json:"denom,omitempty"`
	Text     string    `json:"text,omitempty"`
}

// Track is the ordered event list of one channel. End carries silence still
// owed after the last event and becomes the end-of-track delta.
type Track struct {
	Name    string  `json:"name"`
	Channel uint8   `json:"channel"`
	Events  []Event `json:"events"`
	End     uint32  `json:"end"`
}

// Ticks is the track length: every delta plus End.
func (t Track) Ticks() uint64 {
	total := uint64(t.End)
	for _, e := range t.Events {
		total += uint64(e.Delta)
	}
	return total
}
