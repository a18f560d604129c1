package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/chordmidi/midi"
	"github.com/spf13/cobra"
)

var inspectTrack int

func init() {
	inspectCmd.Flags().IntVar(&inspectTrack, "track", 1, "track to read the melodic line from")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long:  `Prints the header of a MIDI file and the melodic line of one track`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0], inspectTrack)
	},
}

func inspect(w io.Writer, path string, track int) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	sum, err := midi.Summarize(s)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "tracks: %v\n", sum.Tracks)
	fmt.Fprintf(w, "ticks per quarter: %v\n", sum.TicksPerQuarter)
	fmt.Fprintf(w, "meter: %v/%v\n", sum.TimeSigNum, sum.TimeSigDen)
	fmt.Fprintf(w, "tempo: %.6g\n", sum.TempoBPM)

	seq, err := midi.ExtractSequence(s, track)
	if err != nil {
		return err
	}
	fmt.Fprint(w, seq.String())
	return nil
}
