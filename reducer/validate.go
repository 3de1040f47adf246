package reducer

import (
	"strconv"

	"github.com/jsphweid/chordtrainer/chord"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/notes"
)

// validate checks that the payload fields an action type reads are present
// and well formed. Types that carry no payload always pass.
func validate(a model.Action) error {
	p := a.Payload
	need := func(field string, present bool) error {
		if p == nil {
			return malformed(a.Type, "", "missing payload")
		}
		if !present {
			return malformed(a.Type, field, "missing")
		}
		return nil
	}

	switch a.Type {
	case model.SetBPC:
		if err := need("beatsPerChord", p != nil && p.BeatsPerChord != nil); err != nil {
			return err
		}
		if !validBeatsPerChord(*p.BeatsPerChord) {
			return malformed(a.Type, "beatsPerChord", "want a positive number or "+model.BeatsPerChordInfinite)
		}
	case model.SetBPM:
		if err := need("beatsPerMinute", p != nil && p.BeatsPerMinute != nil); err != nil {
			return err
		}
		if _, err := strconv.Atoi(*p.BeatsPerMinute); err != nil {
			return malformed(a.Type, "beatsPerMinute", "not a number")
		}
	case model.SetMuted:
		return need("isMuted", p != nil && p.IsMuted != nil)
	case model.SetDifficultyMin:
		if err := need("difficultyMin", p != nil && p.DifficultyMin != nil); err != nil {
			return err
		}
		return inList(a.Type, "difficultyMin", chord.DifficultyLevels, *p.DifficultyMin)
	case model.SetDifficultyMax:
		if err := need("difficultyMax", p != nil && p.DifficultyMax != nil); err != nil {
			return err
		}
		return inList(a.Type, "difficultyMax", chord.DifficultyLevels, *p.DifficultyMax)
	case model.SetAccidentalsMin:
		if err := need("accidentalsMin", p != nil && p.AccidentalsMin != nil); err != nil {
			return err
		}
		return inList(a.Type, "accidentalsMin", chord.AccidentalLevels, *p.AccidentalsMin)
	case model.SetAccidentalsMax:
		if err := need("accidentalsMax", p != nil && p.AccidentalsMax != nil); err != nil {
			return err
		}
		return inList(a.Type, "accidentalsMax", chord.AccidentalLevels, *p.AccidentalsMax)
	case model.SetBeat:
		if err := need("beat", p != nil && p.Beat != nil); err != nil {
			return err
		}
		if *p.Beat < 0 {
			return malformed(a.Type, "beat", "negative")
		}
	case model.SetNotationKey:
		if err := need("notationKey", p != nil && p.NotationKey != nil); err != nil {
			return err
		}
		if !chord.ValidKey(*p.NotationKey) {
			return malformed(a.Type, "notationKey", "no such key "+p.NotationKey.String())
		}
	case model.SetNotationExtension:
		if err := need("notationExtension", p != nil && p.NotationExtension != nil); err != nil {
			return err
		}
		for _, seg := range p.NotationExtension.Segments {
			if !notes.KnownSegment(seg) {
				return malformed(a.Type, "notationExtension", "unknown segment "+strconv.Quote(seg))
			}
		}
	}
	return nil
}

func validBeatsPerChord(s string) bool {
	if s == model.BeatsPerChordInfinite {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

func inList[T comparable](t model.ActionType, field string, list []T, v T) error {
	if chord.IndexOf(list, v) < 0 {
		return malformed(t, field, "not a known level")
	}
	return nil
}
