package constants

import (
	"os"
	"strconv"
	"time"
)

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return port
	}
	return "8080"
}

// GetSeed returns CHORDS_SEED, or a time based seed when it is unset or not a
// number.
func GetSeed() uint64 {
	if s := os.Getenv("CHORDS_SEED"); s != "" {
		if seed, err := strconv.ParseUint(s, 10, 64); err == nil {
			return seed
		}
	}
	return uint64(time.Now().UnixNano())
}

func GetMidiOutPort() string {
	return os.Getenv("MIDI_OUT_PORT")
}

func GetMidiInPort() string {
	return os.Getenv("MIDI_IN_PORT")
}

func GetExportDir() string {
	path := os.Getenv("EXPORT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

func GetLogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		return level
	}
	return "info"
}

// tempo bounds of the metronome page
const MinBPM = 20
const MaxBPM = 300

// ClickDuration is how long the metronome note sounds on each beat
const ClickDuration = 50 * time.Millisecond

// PedalDebounce swallows repeated MIDI-in presses closer together than this
const PedalDebounce = 150 * time.Millisecond

var BeatsPerChordOptions = []string{"1", "2", "3", "4", "5", "6", "7", "8", "∞"}
