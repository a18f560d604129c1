package midi

import (
	"github.com/jsphweid/chordmidi/constants"
	"github.com/jsphweid/chordmidi/engine"
	"github.com/jsphweid/chordmidi/note"
	"github.com/jsphweid/chordmidi/sequence"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	ErrUnsupportedTimeFormat = errors.New("only metric ticks are supported")
	ErrNoSuchTrack           = errors.New("no such track")
)

// Summary describes a read file.
type Summary struct {
	TicksPerQuarter uint16
	TimeSigNum      uint8
	TimeSigDen      uint8
	TempoBPM        float64
	Tracks          int
}

func Summarize(s *smf.SMF) (Summary, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return Summary{}, ErrUnsupportedTimeFormat
	}
	sum := Summary{
		TicksPerQuarter: uint16(mt),
		TimeSigNum:      constants.DefaultTimeSigNum,
		TimeSigDen:      constants.DefaultTimeSigDen,
		TempoBPM:        constants.DefaultTempoBPM,
		Tracks:          len(s.Tracks),
	}
	if tc := s.TempoChanges(); len(tc) > 0 {
		sum.TempoBPM = tc[0].BPM
	}

FindMeter:
	for _, track := range s.Tracks {
		for _, ev := range track {
			var num, denom uint8
			if ev.Message.GetMetaMeter(&num, &denom) {
				sum.TimeSigNum, sum.TimeSigDen = num, denom
				break FindMeter
			}
		}
	}
	return sum, nil
}

// Config returns the engine configuration matching the file, so ticks map
// back onto the same durations they were written from.
func (s Summary) Config() engine.Config {
	return engine.Config{
		TicksPerQuarter: s.TicksPerQuarter,
		TimeSigNum:      s.TimeSigNum,
		TimeSigDen:      s.TimeSigDen,
		TempoBPM:        s.TempoBPM,
	}
}

// ExtractSequence rebuilds a monophonic line from one track. Gaps between
// notes become rests and the first sounding key owns the line until it is
// released; keys pressed meanwhile are ignored.
func ExtractSequence(s *smf.SMF, trackIdx int) (*sequence.Sequence, error) {
	sum, err := Summarize(s)
	if err != nil {
		return nil, err
	}
	if trackIdx < 0 || trackIdx >= len(s.Tracks) {
		return nil, errors.Wrapf(ErrNoSuchTrack, "track %d of %d", trackIdx, len(s.Tracks))
	}
	cfg := sum.Config()
	seq := sequence.New()

	addRest := func(ticks uint32) error {
		r, err := note.NewRest(cfg.TicksToDuration(ticks))
		if err != nil {
			return err
		}
		seq.Add(r)
		return nil
	}

	var absTicks, lastEnd, onset uint32
	var velocity uint8
	active := -1
	for _, ev := range s.Tracks[trackIdx] {
		absTicks += ev.Delta
		var ch, key, vel uint8
		switch {
		case ev.Message.GetNoteStart(&ch, &key, &vel):
			if active >= 0 {
				continue
			}
			if absTicks > lastEnd {
				if err := addRest(absTicks - lastEnd); err != nil {
					return nil, err
				}
			}
			active, onset, velocity = int(key), absTicks, vel
		case ev.Message.GetNoteEnd(&ch, &key):
			if int(key) != active {
				continue
			}
			if absTicks > onset {
				n, err := note.FromNumber(active, cfg.TicksToDuration(absTicks-onset), velocity)
				if err != nil {
					return nil, err
				}
				seq.Add(n)
			}
			lastEnd = absTicks
			active = -1
		}
	}

	if active < 0 && absTicks > lastEnd {
		if err := addRest(absTicks - lastEnd); err != nil {
			return nil, err
		}
	}
	return seq, nil
}
