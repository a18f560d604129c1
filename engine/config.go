package engine

import (
	"math"

	"github.com/jsphweid/chordmidi/constants"
)

// Config carries the container resolution and the meter used to turn
// whole-note durations into ticks.
type Config struct {
	TicksPerQuarter uint16
	TimeSigNum      uint8
	TimeSigDen      uint8
	TempoBPM        float64
}

func DefaultConfig() Config {
	return Config{
		TicksPerQuarter: constants.DefaultTicksPerQuarter,
		TimeSigNum:      constants.DefaultTimeSigNum,
		TimeSigDen:      constants.DefaultTimeSigDen,
		TempoBPM:        constants.DefaultTempoBPM,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TicksPerQuarter == 0 {
		c.TicksPerQuarter = d.TicksPerQuarter
	}
	if c.TimeSigNum == 0 {
		c.TimeSigNum = d.TimeSigNum
	}
	if c.TimeSigDen == 0 {
		c.TimeSigDen = d.TimeSigDen
	}
	if c.TempoBPM <= 0 {
		c.TempoBPM = d.TempoBPM
	}
	return c
}

// DurationToTicks converts whole-note units to ticks. It is the only place
// ticks are derived from durations.
func (c Config) DurationToTicks(duration float64) uint32 {
	if !(duration > 0) {
		return 0
	}
	ticks := math.Round(float64(c.TimeSigNum) * float64(c.TicksPerQuarter) * duration)
	if ticks > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(ticks)
}

// TicksToDuration is the inverse of DurationToTicks, used when rebuilding
// notes from a container.
func (c Config) TicksToDuration(ticks uint32) float64 {
	return float64(ticks) / (float64(c.TimeSigNum) * float64(c.TicksPerQuarter))
}
