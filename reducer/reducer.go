// Package reducer holds the trainer's state machine. Reduce is a total
// function from (state, action) to the next state; the only thing it reads
// besides its arguments is the Reducer's random source.
package reducer

import (
	"strconv"
	"time"

	"github.com/jsphweid/chordtrainer/bag"
	"github.com/jsphweid/chordtrainer/chord"
	"github.com/jsphweid/chordtrainer/constants"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/notes"
	"github.com/jsphweid/chordtrainer/util"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

type Reducer struct {
	rng   bag.Rand
	notes chord.NoteResolver
}

type Option func(*Reducer)

func WithRand(rng bag.Rand) Option {
	return func(r *Reducer) {
		r.rng = rng
	}
}

// WithSeed is WithRand over a fresh golang.org/x/exp/rand source.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithNoteResolver(fn chord.NoteResolver) Option {
	return func(r *Reducer) {
		r.notes = fn
	}
}

func New(opts ...Option) *Reducer {
	r := &Reducer{notes: notes.GetNotes}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return r
}

// InitialState returns the default settings with fresh bags and the first
// two chords.
func (r *Reducer) InitialState() (model.ProgramState, error) {
	s := model.ProgramState{
		IsMuted:                 false,
		DifficultyMin:           model.Easy,
		DifficultyMax:           model.Medium,
		AccidentalsMin:          "0",
		AccidentalsMax:          "7",
		ShowRandomTopNote:       true,
		RandomTopNoteIndexRange: model.IndexRange{Min: 7, Max: 14}, // C2 to C3
		ChordIndex:              0,
		BeatsPerChord:           "4",
		BeatsPerMinute:          "86",
		Beat:                    0,
		KeyLocked:               false,
		ExtensionLocked:         false,

		NotationKey:       model.Key{Base: model.C},
		NotationExtension: model.Extension{IsMinor: false, Segments: []string{"7"}},
	}
	return r.regenerate(s)
}

// Reduce applies a to s. Unknown action types return s unchanged. A payload
// that does not fit the action type gives a *MalformedActionError and s.
func (r *Reducer) Reduce(s model.ProgramState, a model.Action) (model.ProgramState, error) {
	if err := validate(a); err != nil {
		return s, err
	}
	p := a.Payload

	switch a.Type {
	/// SETTINGS
	case model.SetBPC:
		bpc := *p.BeatsPerChord
		s.BeatsPerChord = bpc
		s.Beat = 0
		if bpc == "1" {
			s.Beat = 1
		}
		return s, nil

	case model.SetBPM:
		bpm, _ := strconv.Atoi(*p.BeatsPerMinute)
		s.BeatsPerMinute = strconv.Itoa(util.Clamp(bpm, constants.MinBPM, constants.MaxBPM))
		return s, nil

	case model.SetMuted:
		s.IsMuted = *p.IsMuted
		return s, nil

	case model.SetDifficultyMin:
		s.DifficultyMin = *p.DifficultyMin
		s.DifficultyMax = ResolveRange(RangeEdit[model.DifficultyLevel]{
			PayloadValue:      *p.DifficultyMin,
			CurrentBoundValue: s.DifficultyMax,
			List:              chord.DifficultyLevels,
			Inverse:           false,
		})
		return r.regenerate(s)

	case model.SetDifficultyMax:
		s.DifficultyMax = *p.DifficultyMax
		s.DifficultyMin = ResolveRange(RangeEdit[model.DifficultyLevel]{
			PayloadValue:      *p.DifficultyMax,
			CurrentBoundValue: s.DifficultyMin,
			List:              chord.DifficultyLevels,
			Inverse:           true,
		})
		return r.regenerate(s)

	case model.SetAccidentalsMin:
		s.AccidentalsMin = *p.AccidentalsMin
		s.AccidentalsMax = ResolveRange(RangeEdit[model.AccidentalLevel]{
			PayloadValue:      *p.AccidentalsMin,
			CurrentBoundValue: s.AccidentalsMax,
			List:              chord.AccidentalLevels,
			Inverse:           false,
		})
		return r.regenerate(s)

	case model.SetAccidentalsMax:
		s.AccidentalsMax = *p.AccidentalsMax
		s.AccidentalsMin = ResolveRange(RangeEdit[model.AccidentalLevel]{
			PayloadValue:      *p.AccidentalsMax,
			CurrentBoundValue: s.AccidentalsMin,
			List:              chord.AccidentalLevels,
			Inverse:           true,
		})
		return r.regenerate(s)

	case model.ResetSettings:
		return r.InitialState()

	/// PLAYER
	case model.SetBeat:
		s.Beat = *p.Beat
		return s, nil

	case model.IncrementBeat:
		s.Beat++
		return s, nil

	case model.AppendChordList:
		g, err := chord.GenerateChords(chord.GenerateOptions{
			Number: 1,
			State:  s,
			Append: true,
			Notes:  r.notes,
		}, r.rng)
		if err != nil {
			return s, errors.Wrap(err, "appending chord")
		}
		s = withGenerated(s, g)
		s.ChordIndex = util.Clamp(s.ChordIndex+1, 0, len(s.Chords)-1)
		return s, nil

	case model.IncrementChordIndex:
		s.ChordIndex = util.Clamp(s.ChordIndex+1, 0, util.Max(len(s.Chords)-1, 0))
		return s, nil

	case model.DecrementChordIndex:
		s.ChordIndex = util.Max(s.ChordIndex-1, 0)
		return s, nil

	case model.SwitchKeyLock:
		if chords, ok := r.lockWindow(s, func(first, second model.Chord) model.Chord {
			second.Key = chord.LockedKey(first.Key, second.Extension.IsMinor)
			return second
		}, s.KeyLocked); ok {
			s.Chords = chords
			s.ChordIndex = 0
		}
		s.KeyLocked = !s.KeyLocked
		return s, nil

	case model.SwitchExtensionLock:
		if chords, ok := r.lockWindow(s, func(first, second model.Chord) model.Chord {
			second.Extension = first.Extension.Clone()
			second.Key = chord.LockedKey(second.Key, second.Extension.IsMinor)
			return second
		}, s.ExtensionLocked); ok {
			s.Chords = chords
			s.ChordIndex = 0
		}
		s.ExtensionLocked = !s.ExtensionLocked
		return s, nil

	case model.ToggleShowRandomTopNote:
		s.ShowRandomTopNote = !s.ShowRandomTopNote
		return s, nil

	/// NOTATION
	case model.SetNotationKey:
		s.NotationKey, s.NotationExtension = resolveNotationKey(*p.NotationKey, s.NotationExtension)
		return s, nil

	case model.SetNotationExtension:
		ext := p.NotationExtension.Clone()
		s.NotationKey, s.NotationExtension = resolveNotationExtension(s.NotationKey, ext)
		return s, nil
	}

	return s, nil
}

// regenerate rebuilds the bags for the current ranges and replaces the chord
// list with two new chords.
func (r *Reducer) regenerate(s model.ProgramState) (model.ProgramState, error) {
	keys := chord.GenerateKeysShuffled(s, r.rng)
	s.MajorsShuffled = keys.Majors
	s.MinorsShuffled = keys.Minors
	s.ExtensionsShuffled = chord.GenerateExtensionsShuffled(s, r.rng)

	g, err := chord.GenerateChords(chord.GenerateOptions{
		Number: 2,
		State:  s,
		Notes:  r.notes,
	}, r.rng)
	if err != nil {
		return s, errors.Wrap(err, "generating chords")
	}
	s = withGenerated(s, g)
	s.ChordIndex = 0
	return s, nil
}

// lockWindow cuts the list down to the visible pair. When the lock is being
// switched on, the second chord is rewritten by lock. ok is false when fewer
// than two chords are visible, in which case nothing changes.
func (r *Reducer) lockWindow(s model.ProgramState, lock func(first, second model.Chord) model.Chord, locked bool) ([]model.Chord, bool) {
	window := s.VisibleChords()
	if len(window) < 2 {
		return nil, false
	}
	chords := []model.Chord{window[0], window[1]}
	if !locked {
		chords[1] = chord.Complete(lock(chords[0], chords[1]), r.notes, s.RandomTopNoteIndexRange, r.rng)
	}
	return chords, true
}

func withGenerated(s model.ProgramState, g chord.Generated) model.ProgramState {
	s.Chords = g.Chords
	s.MajorsShuffled = g.MajorsShuffled
	s.MinorsShuffled = g.MinorsShuffled
	s.ExtensionsShuffled = g.ExtensionsShuffled
	return s
}
