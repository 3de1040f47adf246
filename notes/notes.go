// Package notes spells the tones of a chord from its key and extension.
package notes

import (
	"sort"
	"strings"

	"github.com/jsphweid/chordtrainer/model"
)

var letters = []model.Letter{model.C, model.D, model.E, model.F, model.G, model.A, model.B}

var naturalPitch = map[model.Letter]int{
	model.C: 0,
	model.D: 2,
	model.E: 4,
	model.F: 5,
	model.G: 7,
	model.A: 9,
	model.B: 11,
}

type tone struct {
	degree    int
	semitones int
}

// segment tokens that GetNotes understands
var knownSegments = map[string]bool{
	"6": true, "7": true, "maj7": true, "9": true, "maj9": true, "add9": true,
	"11": true, "13": true, "b5": true, "#5": true, "b9": true, "#9": true,
	"#11": true, "b13": true, "sus4": true, "alt": true,
}

func KnownSegment(s string) bool {
	return knownSegments[s]
}

func PitchClass(k model.Key) int {
	pc := naturalPitch[k.Base]
	switch k.Accidental {
	case model.Flat:
		pc--
	case model.Sharp:
		pc++
	}
	return (pc + 12) % 12
}

func tones(ext model.Extension) []tone {
	t := map[string]tone{
		"1": {1, 0},
		"3": {3, 4},
		"5": {5, 7},
	}
	if ext.IsMinor {
		t["3"] = tone{3, 3}
	}
	ensureSeventh := func() {
		if _, ok := t["7"]; ok {
			return
		}
		if _, ok := t["6"]; ok {
			return
		}
		t["7"] = tone{7, 10}
	}
	ensureNinth := func() {
		_, b := t["b9"]
		_, s := t["#9"]
		if !b && !s {
			t["9"] = tone{9, 14}
		}
	}

	for _, seg := range ext.Segments {
		switch seg {
		case "6":
			t["6"] = tone{6, 9}
		case "7":
			t["7"] = tone{7, 10}
		case "maj7":
			t["7"] = tone{7, 11}
		case "9":
			ensureSeventh()
			ensureNinth()
		case "maj9":
			t["7"] = tone{7, 11}
			ensureNinth()
		case "add9":
			ensureNinth()
		case "11":
			ensureSeventh()
			ensureNinth()
			t["11"] = tone{11, 17}
		case "13":
			ensureSeventh()
			ensureNinth()
			t["13"] = tone{13, 21}
		case "b5":
			t["5"] = tone{5, 6}
		case "#5":
			t["5"] = tone{5, 8}
		case "sus4":
			t["3"] = tone{4, 5}
		case "b9":
			delete(t, "9")
			t["b9"] = tone{9, 13}
		case "#9":
			delete(t, "9")
			t["#9"] = tone{9, 15}
		case "#11":
			delete(t, "11")
			t["#11"] = tone{11, 18}
		case "b13":
			delete(t, "13")
			t["b13"] = tone{13, 20}
		case "alt":
			ensureSeventh()
			delete(t, "9")
			t["b9"] = tone{9, 13}
			t["#9"] = tone{9, 15}
			t["#11"] = tone{11, 18}
			t["b13"] = tone{13, 20}
		}
	}

	res := make([]tone, 0, len(t))
	for _, v := range t {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].semitones < res[j].semitones
	})
	return res
}

func spell(root model.Key, t tone) string {
	rootIdx := 0
	for i, l := range letters {
		if l == root.Base {
			rootIdx = i
		}
	}
	letter := letters[(rootIdx+(t.degree-1)%7)%7]
	target := (PitchClass(root) + t.semitones) % 12
	diff := (target - naturalPitch[letter] + 12) % 12
	if diff > 6 {
		diff -= 12
	}
	if diff < 0 {
		return string(letter) + strings.Repeat("b", -diff)
	}
	return string(letter) + strings.Repeat("#", diff)
}

// GetNotes returns the spelled chord tones in root position, lowest first.
func GetNotes(key model.Key, ext model.Extension) model.Notes {
	ts := tones(ext)
	res := make(model.Notes, 0, len(ts))
	for _, t := range ts {
		res = append(res, spell(key, t))
	}
	return res
}

// Pitches returns MIDI note numbers for GetNotes, rooted in the octave
// below middle C.
func Pitches(key model.Key, ext model.Extension) []uint8 {
	base := 48 + PitchClass(key)
	ts := tones(ext)
	res := make([]uint8, 0, len(ts))
	for _, t := range ts {
		res = append(res, uint8(base+t.semitones))
	}
	return res
}
