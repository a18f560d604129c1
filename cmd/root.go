package cmd

import (
	"github.com/jsphweid/chordmidi/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel string
	zlog     = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "chordmidi",
	Short: "Chord progressions to MIDI",
	Long:  `Parses chord progressions like "C,Am7|1/2,F|1|4|100" and writes them as Standard MIDI Files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(logLevel)
		if err != nil {
			return err
		}
		zlog = l
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
}

func Execute() {
	defer zlog.Sync()
	cobra.CheckErr(rootCmd.Execute())
}
