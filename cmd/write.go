package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/chordmidi/constants"
	"github.com/jsphweid/chordmidi/midi"
	"github.com/jsphweid/chordmidi/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	writeOut  string
	writeOpts renderOptions
)

func init() {
	f := writeCmd.Flags()
	f.StringVarP(&writeOut, "out", "o", "", "output file (default: a new file in $OUTPUT_PATH)")
	f.StringVar(&writeOpts.instrument, "instrument", defaultInstrument, "instrument category")
	f.Float64Var(&writeOpts.tempo, "tempo", 0, "tempo in BPM (default: $CHORDMIDI_TEMPO or 120)")
	f.Uint16Var(&writeOpts.tpq, "tpq", 0, "ticks per quarter note (default: $CHORDMIDI_TPQ or 480)")
	f.IntVar(&writeOpts.transpose, "transpose", 0, "semitones to transpose by")
	f.BoolVar(&writeOpts.skipInvalid, "skip-invalid", false, "drop malformed chords instead of failing")
	rootCmd.AddCommand(writeCmd)
}

var writeCmd = &cobra.Command{
	Use:   "write <progression>",
	Short: "Writes a chord progression to a MIDI file",
	Long:  `Writes a chord progression to a MIDI file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := writeOpts
		opts.progression = args[0]
		path, err := write(opts, writeOut)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func defaultOutputPath() (string, error) {
	dir := constants.GetOutputDir()
	if err := util.EnsureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, uuid.New().String()+constants.MidiExt), nil
}

func write(opts renderOptions, out string) (string, error) {
	if out == "" {
		var err error
		if out, err = defaultOutputPath(); err != nil {
			return "", err
		}
	}
	e, _, err := render(opts)
	if err != nil {
		return "", err
	}
	if err := e.Save(midi.FileWriter{Path: out}); err != nil {
		return "", err
	}
	zlog.Info("wrote midi file", zap.String("path", out))
	return out, nil
}
