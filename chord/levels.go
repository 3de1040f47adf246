package chord

import (
	"fmt"

	"github.com/jsphweid/chordtrainer/model"
	"golang.org/x/exp/slices"
)

var DifficultyLevels = []model.DifficultyLevel{
	model.Easy,
	model.Medium,
	model.Hard,
	model.Harder,
	model.Hardest,
}

var AccidentalLevels = []model.AccidentalLevel{"0", "1", "2", "3", "4", "5", "6", "7"}

// keysOrganized groups every key by the number of accidentals in its
// signature. Major and minor lists at the same level are relative keys.
var keysOrganized = map[model.AccidentalLevel]map[model.MajorOrMinor][]string{
	"0": {model.Major: {"C"}, model.Minor: {"A"}},
	"1": {model.Major: {"G", "F"}, model.Minor: {"E", "D"}},
	"2": {model.Major: {"D", "Bb"}, model.Minor: {"B", "G"}},
	"3": {model.Major: {"A", "Eb"}, model.Minor: {"F#", "C"}},
	"4": {model.Major: {"E", "Ab"}, model.Minor: {"C#", "F"}},
	"5": {model.Major: {"B", "Db"}, model.Minor: {"G#", "Bb"}},
	"6": {model.Major: {"F#", "Gb"}, model.Minor: {"D#", "Eb"}},
	"7": {model.Major: {"C#", "Cb"}, model.Minor: {"A#", "Ab"}},
}

// extensionsOrganized maps each difficulty to the extensions it introduces.
var extensionsOrganized = map[model.DifficultyLevel][]model.Extension{
	model.Easy: {
		{IsMinor: false, Segments: []string{}},
		{IsMinor: true, Segments: []string{}},
		{IsMinor: false, Segments: []string{"7"}},
		{IsMinor: true, Segments: []string{"7"}},
		{IsMinor: false, Segments: []string{"maj7"}},
	},
	model.Medium: {
		{IsMinor: false, Segments: []string{"6"}},
		{IsMinor: true, Segments: []string{"6"}},
		{IsMinor: false, Segments: []string{"9"}},
		{IsMinor: true, Segments: []string{"9"}},
		{IsMinor: false, Segments: []string{"maj9"}},
		{IsMinor: true, Segments: []string{"7", "b5"}},
		{IsMinor: false, Segments: []string{"7", "sus4"}},
	},
	model.Hard: {
		{IsMinor: false, Segments: []string{"7", "b9"}},
		{IsMinor: false, Segments: []string{"7", "#9"}},
		{IsMinor: false, Segments: []string{"13"}},
		{IsMinor: true, Segments: []string{"11"}},
		{IsMinor: false, Segments: []string{"6", "9"}},
	},
	model.Harder: {
		{IsMinor: false, Segments: []string{"maj7", "#11"}},
		{IsMinor: false, Segments: []string{"7", "#11"}},
		{IsMinor: false, Segments: []string{"7", "b13"}},
		{IsMinor: true, Segments: []string{"maj7"}},
		{IsMinor: false, Segments: []string{"7", "#5"}},
	},
	model.Hardest: {
		{IsMinor: false, Segments: []string{"13", "b9"}},
		{IsMinor: false, Segments: []string{"7", "b9", "b13"}},
		{IsMinor: false, Segments: []string{"13", "#11"}},
		{IsMinor: true, Segments: []string{"maj9"}},
		{IsMinor: false, Segments: []string{"7", "alt"}},
	},
}

var keyLevels = map[model.MajorOrMinor]map[model.Key]model.AccidentalLevel{
	model.Major: {},
	model.Minor: {},
}

func init() {
	for level, byQuality := range keysOrganized {
		for q, keys := range byQuality {
			for _, s := range keys {
				k, err := ParseKey(s)
				if err != nil {
					panic(fmt.Sprintf("bad key %q in level table: %v", s, err))
				}
				keyLevels[q][k] = level
			}
		}
	}
}

// IndexOf gives the position of v in an ordered level list, or -1.
func IndexOf[T comparable](list []T, v T) int {
	return slices.Index(list, v)
}

// KeyExists reports whether key is a real key signature for the quality. The
// accidental level does not matter, any bucket counts.
func KeyExists(key model.Key, isMinor bool) bool {
	_, ok := keyLevels[model.QualityOf(isMinor)][key]
	return ok
}

// AccidentalLevelOf returns the level of key for the quality, if it exists.
func AccidentalLevelOf(key model.Key, isMinor bool) (model.AccidentalLevel, bool) {
	level, ok := keyLevels[model.QualityOf(isMinor)][key]
	return level, ok
}

// KeysAt returns the keys of one bucket in table order.
func KeysAt(level model.AccidentalLevel, q model.MajorOrMinor) []model.Key {
	var res []model.Key
	for _, s := range keysOrganized[level][q] {
		k, _ := ParseKey(s)
		res = append(res, k)
	}
	return res
}

// ExtensionsAt returns copies of the extensions introduced at a difficulty.
func ExtensionsAt(level model.DifficultyLevel) []model.Extension {
	var res []model.Extension
	for _, e := range extensionsOrganized[level] {
		res = append(res, e.Clone())
	}
	return res
}
