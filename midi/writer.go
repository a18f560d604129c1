package midi

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/jsphweid/chordmidi/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrInvalidEvent = errors.New("event cannot be encoded")

// Encode builds a format 1 SMF from engine tracks. Every track is closed with
// its End delta so trailing rests keep their length.
func Encode(ticksPerQuarter uint16, tracks []model.Track) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	for i, t := range tracks {
		var track smf.Track
		for j, ev := range t.Events {
			msg, err := message(ev)
			if err != nil {
				return nil, errors.Wrapf(err, "track %d event %d", i, j)
			}
			track.Add(ev.Delta, msg)
		}
		track.Close(t.End)
		if err := s.Add(track); err != nil {
			return nil, errors.Wrapf(err, "error adding track %d", i)
		}
	}
	return s, nil
}

func message(ev model.Event) ([]byte, error) {
	if ev.Channel > 15 || ev.Key > 127 || ev.Velocity > 127 || ev.Program > 127 {
		return nil, errors.Wrapf(ErrInvalidEvent, "%s %+v", ev.Kind, ev)
	}
	switch ev.Kind {
	case model.NoteOn:
		return gomidi.NoteOn(ev.Channel, ev.Key, ev.Velocity), nil
	case model.NoteOff:
		return gomidi.NoteOffVelocity(ev.Channel, ev.Key, ev.Velocity), nil
	case model.ProgramChange:
		return gomidi.ProgramChange(ev.Channel, ev.Program), nil
	case model.MetaTempo:
		return smf.MetaTempo(ev.BPM), nil
	case model.MetaMeter:
		return smf.MetaMeter(ev.Num, ev.Denom), nil
	case model.MetaTrackName:
		return smf.MetaTrackSequenceName(ev.Text), nil
	}
	return nil, errors.Wrapf(ErrInvalidEvent, "unknown kind %s", ev.Kind)
}

// StreamWriter writes the encoded file to W.
type StreamWriter struct {
	W io.Writer
}

func (sw StreamWriter) Write(ticksPerQuarter uint16, tracks []model.Track) error {
	s, err := Encode(ticksPerQuarter, tracks)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(sw.W); err != nil {
		return errors.Wrap(err, "error writing MIDI stream")
	}
	return nil
}

// FileWriter writes the encoded file to Path. The file only appears once it
// is complete.
type FileWriter struct {
	Path string
}

func (fw FileWriter) Write(ticksPerQuarter uint16, tracks []model.Track) error {
	var buf bytes.Buffer
	if err := (StreamWriter{W: &buf}).Write(ticksPerQuarter, tracks); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fw.Path), ".chordmidi-*")
	if err != nil {
		return errors.Wrap(err, "error writing MIDI file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrap(err, "error writing MIDI file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "error writing MIDI file")
	}
	if err := os.Rename(tmp.Name(), fw.Path); err != nil {
		return errors.Wrap(err, "error writing MIDI file")
	}
	return nil
}
