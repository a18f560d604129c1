package constants

import (
	"os"
	"strconv"
)

const (
	DefaultTicksPerQuarter = 480
	DefaultTempoBPM        = 120.0
	DefaultTimeSigNum      = 4
	DefaultTimeSigDen      = 4

	SettingsTrackName = "Settings"
	MidiExt           = ".mid"
)

func GetOutputDir() string {
	path := os.Getenv("OUTPUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

// GetTicksPerQuarter falls back to the default when CHORDMIDI_TPQ is unset or
// not a positive 16 bit value.
func GetTicksPerQuarter() uint16 {
	v, err := strconv.ParseUint(os.Getenv("CHORDMIDI_TPQ"), 10, 16)
	if err != nil || v == 0 {
		return DefaultTicksPerQuarter
	}
	return uint16(v)
}

func GetTempoBPM() float64 {
	v, err := strconv.ParseFloat(os.Getenv("CHORDMIDI_TEMPO"), 64)
	if err != nil || v <= 0 {
		return DefaultTempoBPM
	}
	return v
}
