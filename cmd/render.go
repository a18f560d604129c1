package cmd

import (
	"github.com/jsphweid/chordmidi/chord"
	"github.com/jsphweid/chordmidi/constants"
	"github.com/jsphweid/chordmidi/engine"
	"github.com/jsphweid/chordmidi/sequence"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultInstrument = "Piano"

type renderOptions struct {
	progression string
	instrument  string
	tempo       float64
	tpq         uint16
	transpose   int
	skipInvalid bool
}

func (o renderOptions) withDefaults() renderOptions {
	if o.instrument == "" {
		o.instrument = defaultInstrument
	}
	if o.tempo <= 0 {
		o.tempo = constants.GetTempoBPM()
	}
	if o.tpq == 0 {
		o.tpq = constants.GetTicksPerQuarter()
	}
	return o
}

// render parses, transposes and emits a progression on a single instrument
// track. With skipInvalid, malformed tokens are dropped and returned.
func render(o renderOptions) (*engine.Engine, []error, error) {
	o = o.withDefaults()

	var p *chord.Progression
	var skipped []error
	if o.skipInvalid {
		p, skipped = chord.ParseProgressionPartial(o.progression)
		for _, err := range skipped {
			zlog.Warn("skipping chord", zap.Error(err))
		}
	} else {
		var err error
		p, err = chord.ParseProgression(o.progression)
		if err != nil {
			return nil, nil, err
		}
	}
	p.Transpose(o.transpose)

	e := engine.New(engine.Config{TicksPerQuarter: o.tpq, TempoBPM: o.tempo}, engine.WithLogger(zlog))
	idx, err := e.AddInstrument(o.instrument)
	if err != nil {
		return nil, nil, err
	}
	if err := e.WriteProgression(idx, p); err != nil {
		return nil, nil, errors.WithMessage(err, "render")
	}
	zlog.Debug("rendered", zap.Strings("chords", p.Names()), zap.Float64("duration", p.Duration()))
	return e, skipped, nil
}

// isUserError reports whether err was caused by the request rather than by
// the program.
func isUserError(err error) bool {
	var pe *chord.ParseError
	return errors.As(err, &pe) ||
		errors.Is(err, sequence.ErrBadRhythm) ||
		errors.Is(err, engine.ErrUnknownCategory) ||
		errors.Is(err, engine.ErrNoteOutOfRange)
}
