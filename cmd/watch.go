package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watchOut      string
	watchInterval time.Duration
	watchOpts     renderOptions
)

func init() {
	f := watchCmd.Flags()
	f.StringVarP(&watchOut, "out", "o", "", "output file (default: a new file in $OUTPUT_PATH)")
	f.DurationVar(&watchInterval, "interval", 500*time.Millisecond, "poll and debounce interval")
	f.StringVar(&watchOpts.instrument, "instrument", defaultInstrument, "instrument category")
	f.Float64Var(&watchOpts.tempo, "tempo", 0, "tempo in BPM")
	f.IntVar(&watchOpts.transpose, "transpose", 0, "semitones to transpose by")
	f.BoolVar(&watchOpts.skipInvalid, "skip-invalid", true, "drop malformed chords instead of failing")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <progression file>",
	Short: "Re-renders a progression file whenever it changes",
	Long:  `Re-renders a progression file whenever it changes`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := watchOut
		if out == "" {
			var err error
			if out, err = defaultOutputPath(); err != nil {
				return err
			}
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, args[0], out, watchInterval, watchOpts)
	},
}

func renderFile(path, out string, opts renderOptions) error {
	dat, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	opts.progression = strings.TrimSpace(string(dat))
	_, err = write(opts, out)
	return err
}

// watch polls path every interval and renders it once edits settle.
func watch(ctx context.Context, path, out string, interval time.Duration, opts renderOptions) error {
	debounced := debounce.New(interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastMod time.Time
	check := func() {
		info, err := os.Stat(path)
		if err != nil {
			zlog.Warn("could not stat progression file", zap.String("path", path), zap.Error(err))
			return
		}
		if !info.ModTime().After(lastMod) {
			return
		}
		lastMod = info.ModTime()
		debounced(func() {
			if err := renderFile(path, out, opts); err != nil {
				zlog.Error("render failed", zap.String("path", path), zap.Error(err))
			}
		})
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			check()
		}
	}
}
