package model

import "github.com/jsphweid/chordtrainer/bag"

// ProgramState is everything the trainer knows. Only the reducer produces new
// values of it; nothing else should write to its fields.
type ProgramState struct {
	// player
	IsMuted                 bool            `json:"isMuted"`
	DifficultyMin           DifficultyLevel `json:"difficultyMin"`
	DifficultyMax           DifficultyLevel `json:"difficultyMax"`
	AccidentalsMin          AccidentalLevel `json:"accidentalsMin"`
	AccidentalsMax          AccidentalLevel `json:"accidentalsMax"`
	ShowRandomTopNote       bool            `json:"showRandomTopNote"`
	RandomTopNoteIndexRange IndexRange      `json:"randomTopNoteIndexRange"`
	ChordIndex              int             `json:"chordIndex"`
	BeatsPerChord           string          `json:"beatsPerChord"`
	BeatsPerMinute          string          `json:"beatsPerMinute"`
	Beat                    int             `json:"beat"`
	KeyLocked               bool            `json:"keyLocked"`
	ExtensionLocked         bool            `json:"extensionLocked"`

	// notation
	NotationKey       Key       `json:"notationKey"`
	NotationExtension Extension `json:"notationExtension"`

	MajorsShuffled     bag.Bag[Key]       `json:"-"`
	MinorsShuffled     bag.Bag[Key]       `json:"-"`
	ExtensionsShuffled bag.Bag[Extension] `json:"-"`
	Chords             []Chord            `json:"chords"`
}

// VisibleChords returns the pair starting at ChordIndex, or fewer when the
// list runs out.
func (s ProgramState) VisibleChords() []Chord {
	if s.ChordIndex < 0 || s.ChordIndex >= len(s.Chords) {
		return nil
	}
	end := s.ChordIndex + 2
	if end > len(s.Chords) {
		end = len(s.Chords)
	}
	return s.Chords[s.ChordIndex:end]
}
