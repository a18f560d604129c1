package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/chordmidi/chord"
	"github.com/jsphweid/chordmidi/engine"
	"github.com/jsphweid/chordmidi/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chordsCmd)
}

var chordsCmd = &cobra.Command{
	Use:   "chords",
	Short: "Lists chord colors and instrument categories",
	Long:  `Lists chord colors and instrument categories`,
	Run: func(cmd *cobra.Command, args []string) {
		listChords(cmd.OutOrStdout())
	},
}

func chordInfos() []model.ChordInfo {
	var res []model.ChordInfo
	for _, color := range chord.Colors() {
		ct, _ := chord.Lookup(color)
		res = append(res, model.ChordInfo{Symbol: color, Name: ct.Name, Intervals: ct.Intervals})
	}
	return res
}

func listChords(w io.Writer) {
	for _, ci := range chordInfos() {
		fmt.Fprintf(w, "%-8q %-24s %v\n", ci.Symbol, ci.Name, ci.Intervals)
	}
	fmt.Fprintln(w)
	for _, name := range engine.CategoryNames() {
		fmt.Fprintln(w, name)
	}
}
