package cmd

import (
	"fmt"
	"math/rand"

	"github.com/jsphweid/chordmidi/engine"
	"github.com/jsphweid/chordmidi/midi"
	"github.com/jsphweid/chordmidi/sequence"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rhythmOptions struct {
	renderOptions
	spec sequence.RhythmSpec
	// 0 seeds from the clock
	seed int64
}

var (
	rhythmOut  string
	rhythmOpts rhythmOptions
)

func init() {
	f := rhythmCmd.Flags()
	f.StringVarP(&rhythmOut, "out", "o", "", "output file (default: a new file in $OUTPUT_PATH)")
	f.Float64Var(&rhythmOpts.spec.MinUnit, "min-unit", 0.125, "smallest step in whole notes")
	f.Float64Var(&rhythmOpts.spec.Duration, "duration", 1, "total length in whole notes")
	f.IntSliceVar(&rhythmOpts.spec.Multipliers, "multipliers", []int{1, 2, 4}, "note lengths as multiples of --min-unit")
	f.Float64SliceVar(&rhythmOpts.spec.Probs, "probs", []float64{0.5, 0.3, 0.2}, "weight of each multiplier")
	f.Float64Var(&rhythmOpts.spec.RestProb, "rest-prob", 0.1, "chance that a note is a rest")
	f.Int64Var(&rhythmOpts.seed, "seed", 0, "random seed")
	f.StringVar(&rhythmOpts.instrument, "instrument", defaultInstrument, "instrument category")
	f.Float64Var(&rhythmOpts.tempo, "tempo", 0, "tempo in BPM (default: $CHORDMIDI_TEMPO or 120)")
	f.Uint16Var(&rhythmOpts.tpq, "tpq", 0, "ticks per quarter note (default: $CHORDMIDI_TPQ or 480)")
	f.IntVar(&rhythmOpts.transpose, "transpose", 0, "semitones to move the generated line from C3")
	rootCmd.AddCommand(rhythmCmd)
}

var rhythmCmd = &cobra.Command{
	Use:   "rhythm",
	Short: "Writes a random rhythm to a MIDI file",
	Long:  `Generates a weighted random rhythm on a single pitch and writes it to a MIDI file`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, seq, err := writeRhythm(rhythmOpts, rhythmOut, nil, nil)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), seq.Summary())
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// writeRhythm generates a rhythm and saves it. Nil choosers are backed by a
// source seeded from o.seed.
func writeRhythm(o rhythmOptions, out string, choose sequence.Chooser, rest sequence.RestChooser) (string, *sequence.Sequence, error) {
	if o.seed != 0 && (choose == nil || rest == nil) {
		r := rand.New(rand.NewSource(o.seed))
		if choose == nil {
			choose = sequence.RandomChooser(r)
		}
		if rest == nil {
			rest = sequence.RandomRestChooser(r)
		}
	}

	seq := sequence.New()
	if err := seq.GenerateRhythm(o.spec, choose, rest); err != nil {
		return "", nil, errors.WithMessage(err, "rhythm")
	}
	seq.Transpose(o.transpose)

	if out == "" {
		var err error
		if out, err = defaultOutputPath(); err != nil {
			return "", nil, err
		}
	}

	ro := o.withDefaults()
	e := engine.New(engine.Config{TicksPerQuarter: ro.tpq, TempoBPM: ro.tempo}, engine.WithLogger(zlog))
	idx, err := e.AddInstrument(ro.instrument)
	if err != nil {
		return "", nil, err
	}
	if err := e.WriteSequence(idx, seq); err != nil {
		return "", nil, err
	}
	if err := e.Save(midi.FileWriter{Path: out}); err != nil {
		return "", nil, err
	}
	zlog.Info("wrote rhythm",
		zap.String("path", out),
		zap.Int("notes", seq.Len()),
		zap.Int("rests", seq.RestCount()))
	return out, seq, nil
}
