package chord

import (
	"github.com/jsphweid/chordtrainer/bag"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/pkg/errors"
)

// NoteResolver fills in the notes of a chord. The reducer hands in
// notes.GetNotes; tests may pass nil to skip notes entirely.
type NoteResolver func(model.Key, model.Extension) model.Notes

func levelsBetween[T comparable](list []T, min, max T) []T {
	lo, hi := IndexOf(list, min), IndexOf(list, max)
	if lo < 0 || hi < 0 || lo > hi {
		return nil
	}
	return list[lo : hi+1]
}

// CandidateExtensions lists every extension whose difficulty lies within
// [min, max], easiest first.
func CandidateExtensions(min, max model.DifficultyLevel) []model.Extension {
	var res []model.Extension
	for _, level := range levelsBetween(DifficultyLevels, min, max) {
		res = append(res, ExtensionsAt(level)...)
	}
	return res
}

// CandidateKeys lists every key of the given quality whose accidental level
// lies within [min, max].
func CandidateKeys(min, max model.AccidentalLevel, q model.MajorOrMinor) []model.Key {
	var res []model.Key
	for _, level := range levelsBetween(AccidentalLevels, min, max) {
		res = append(res, KeysAt(level, q)...)
	}
	return res
}

type KeysShuffled struct {
	Majors bag.Bag[model.Key]
	Minors bag.Bag[model.Key]
}

func GenerateKeysShuffled(s model.ProgramState, rng bag.Rand) KeysShuffled {
	return KeysShuffled{
		Majors: bag.New(CandidateKeys(s.AccidentalsMin, s.AccidentalsMax, model.Major), rng),
		Minors: bag.New(CandidateKeys(s.AccidentalsMin, s.AccidentalsMax, model.Minor), rng),
	}
}

func GenerateExtensionsShuffled(s model.ProgramState, rng bag.Rand) bag.Bag[model.Extension] {
	return bag.New(CandidateExtensions(s.DifficultyMin, s.DifficultyMax), rng)
}

type GenerateOptions struct {
	Number int
	State  model.ProgramState
	Append bool
	Notes  NoteResolver
}

// Generated carries the new chord list together with the bags it drew from,
// which the caller stores back into the state.
type Generated struct {
	Chords             []model.Chord
	MajorsShuffled     bag.Bag[model.Key]
	MinorsShuffled     bag.Bag[model.Key]
	ExtensionsShuffled bag.Bag[model.Extension]
}

// GenerateChords draws opts.Number chords. Each chord takes its extension
// first and then a key from the bag matching the extension's quality. A
// locked key or extension is copied from the previous chord instead of drawn.
func GenerateChords(opts GenerateOptions, rng bag.Rand) (Generated, error) {
	s := opts.State
	g := Generated{
		MajorsShuffled:     s.MajorsShuffled,
		MinorsShuffled:     s.MinorsShuffled,
		ExtensionsShuffled: s.ExtensionsShuffled,
	}
	if opts.Append {
		g.Chords = append([]model.Chord{}, s.Chords...)
	} else {
		g.Chords = []model.Chord{}
	}

	for i := 0; i < opts.Number; i++ {
		var prev *model.Chord
		if len(g.Chords) > 0 {
			prev = &g.Chords[len(g.Chords)-1]
		}

		var ext model.Extension
		if s.ExtensionLocked && prev != nil {
			ext = prev.Extension.Clone()
		} else {
			drawn, next, err := g.ExtensionsShuffled.Draw(rng)
			if err != nil {
				return g, errors.Wrap(err, "drawing extension")
			}
			ext = drawn.Clone()
			g.ExtensionsShuffled = next
		}

		var key model.Key
		if s.KeyLocked && prev != nil {
			key = LockedKey(prev.Key, ext.IsMinor)
		} else {
			var err error
			if ext.IsMinor {
				key, g.MinorsShuffled, err = g.MinorsShuffled.Draw(rng)
			} else {
				key, g.MajorsShuffled, err = g.MajorsShuffled.Draw(rng)
			}
			if err != nil {
				return g, errors.Wrap(err, "drawing key")
			}
		}

		c := model.Chord{Key: key, Extension: ext}
		g.Chords = append(g.Chords, Complete(c, opts.Notes, s.RandomTopNoteIndexRange, rng))
	}

	return g, nil
}

// LockedKey carries key over to a chord of the given quality, re-spelling it
// when the spelling is not a real key for that quality (D# minor becomes Eb
// major).
func LockedKey(key model.Key, isMinor bool) model.Key {
	if KeyExists(key, isMinor) {
		return key
	}
	return ChangeEnharmonically(key)
}

// Complete fills in the notes and top note of c.
func Complete(c model.Chord, resolve NoteResolver, r model.IndexRange, rng bag.Rand) model.Chord {
	c.Notes = nil
	c.TopNote = nil
	if resolve == nil {
		return c
	}
	c.Notes = resolve(c.Key, c.Extension)
	c.TopNote = RandomTopNote(c.Notes, r, rng)
	return c
}
