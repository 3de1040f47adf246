package reducer

import (
	"sort"
	"testing"

	"github.com/jsphweid/chordtrainer/chord"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newReducer(t *testing.T, seed uint64) (*Reducer, model.ProgramState) {
	r := New(WithSeed(seed))
	s, err := r.InitialState()
	require.NoError(t, err)
	return r, s
}

func reduce(t *testing.T, r *Reducer, s model.ProgramState, a model.Action) model.ProgramState {
	next, err := r.Reduce(s, a)
	require.NoError(t, err, a.Type)
	return next
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func keyOf(t *testing.T, s string) model.Key {
	k, err := chord.ParseKey(s)
	require.NoError(t, err)
	return k
}

func TestInitialState(t *testing.T) {
	_, s := newReducer(t, 1)

	assert := assert.New(t)
	assert.Equal("4", s.BeatsPerChord)
	assert.Equal("86", s.BeatsPerMinute)
	assert.Equal(0, s.Beat)
	assert.Equal(0, s.ChordIndex)
	assert.Len(s.Chords, 2)
	assert.Equal(model.Easy, s.DifficultyMin)
	assert.Equal(model.Medium, s.DifficultyMax)
	assert.True(chord.KeyExists(s.NotationKey, s.NotationExtension.IsMinor))
	for _, c := range s.Chords {
		assert.NotEmpty(c.Notes)
		assert.True(chord.KeyExists(c.Key, c.Extension.IsMinor), c.Symbol())
	}
}

func TestUnknownActionIsIdentity(t *testing.T) {
	r, s := newReducer(t, 1)
	next, err := r.Reduce(s, model.Action{Type: "NOPE"})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(s, next)
}

func TestMalformedActions(t *testing.T) {
	r, s := newReducer(t, 1)
	badLevel := model.DifficultyLevel("impossible")
	badAcc := model.AccidentalLevel("9")
	fb := model.Key{Base: model.F, Accidental: model.Flat}

	cases := map[string]model.Action{
		"no payload":        {Type: model.SetBPM},
		"missing field":     {Type: model.SetBPC, Payload: &model.Payload{BeatsPerMinute: strPtr("90")}},
		"bpm not a number":  {Type: model.SetBPM, Payload: &model.Payload{BeatsPerMinute: strPtr("fast")}},
		"bpc zero":          {Type: model.SetBPC, Payload: &model.Payload{BeatsPerChord: strPtr("0")}},
		"unknown level":     {Type: model.SetDifficultyMin, Payload: &model.Payload{DifficultyMin: &badLevel}},
		"unknown accidents": {Type: model.SetAccidentalsMax, Payload: &model.Payload{AccidentalsMax: &badAcc}},
		"negative beat":     {Type: model.SetBeat, Payload: &model.Payload{Beat: intPtr(-1)}},
		"invalid key":       {Type: model.SetNotationKey, Payload: &model.Payload{NotationKey: &fb}},
		"unknown segment": {Type: model.SetNotationExtension, Payload: &model.Payload{
			NotationExtension: &model.Extension{Segments: []string{"maj"}},
		}},
		"muted missing": {Type: model.SetMuted, Payload: &model.Payload{}},
	}

	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			next, err := r.Reduce(s, a)
			assert.ErrorIs(t, err, ErrMalformedAction)
			var mae *MalformedActionError
			assert.ErrorAs(t, err, &mae)
			assert.Equal(t, a.Type, mae.Type)
			assert.Equal(t, s, next)
		})
	}
}

func TestSetBPC(t *testing.T) {
	r, s := newReducer(t, 1)
	s.Beat = 3

	s = reduce(t, r, s, model.Action{Type: model.SetBPC, Payload: &model.Payload{BeatsPerChord: strPtr("1")}})
	assert.Equal(t, 1, s.Beat)
	assert.Equal(t, "1", s.BeatsPerChord)

	s = reduce(t, r, s, model.Action{Type: model.SetBPC, Payload: &model.Payload{BeatsPerChord: strPtr(model.BeatsPerChordInfinite)}})
	assert.Equal(t, 0, s.Beat)
	assert.Equal(t, model.BeatsPerChordInfinite, s.BeatsPerChord)
}

func TestSetBPMClamps(t *testing.T) {
	r, s := newReducer(t, 1)

	s = reduce(t, r, s, model.Action{Type: model.SetBPM, Payload: &model.Payload{BeatsPerMinute: strPtr("120")}})
	assert.Equal(t, "120", s.BeatsPerMinute)
	s = reduce(t, r, s, model.Action{Type: model.SetBPM, Payload: &model.Payload{BeatsPerMinute: strPtr("5")}})
	assert.Equal(t, "20", s.BeatsPerMinute)
	s = reduce(t, r, s, model.Action{Type: model.SetBPM, Payload: &model.Payload{BeatsPerMinute: strPtr("1000")}})
	assert.Equal(t, "300", s.BeatsPerMinute)
}

func TestSimpleFields(t *testing.T) {
	r, s := newReducer(t, 1)

	s = reduce(t, r, s, model.Action{Type: model.SetMuted, Payload: &model.Payload{IsMuted: boolPtr(true)}})
	assert.True(t, s.IsMuted)

	s = reduce(t, r, s, model.Action{Type: model.SetBeat, Payload: &model.Payload{Beat: intPtr(3)}})
	s = reduce(t, r, s, model.Action{Type: model.IncrementBeat})
	assert.Equal(t, 4, s.Beat)

	shown := s.ShowRandomTopNote
	s = reduce(t, r, s, model.Action{Type: model.ToggleShowRandomTopNote})
	assert.Equal(t, !shown, s.ShowRandomTopNote)
}

func TestResolveRange(t *testing.T) {
	list := chord.DifficultyLevels
	cases := []struct {
		name string
		edit RangeEdit[model.DifficultyLevel]
		want model.DifficultyLevel
	}{
		{"min below max keeps max", RangeEdit[model.DifficultyLevel]{model.Easy, model.Hard, list, false}, model.Hard},
		{"min above max pulls max up", RangeEdit[model.DifficultyLevel]{model.Hardest, model.Medium, list, false}, model.Hardest},
		{"min equal to max keeps max", RangeEdit[model.DifficultyLevel]{model.Hard, model.Hard, list, false}, model.Hard},
		{"max above min keeps min", RangeEdit[model.DifficultyLevel]{model.Hard, model.Easy, list, true}, model.Easy},
		{"max below min pulls min down", RangeEdit[model.DifficultyLevel]{model.Easy, model.Hard, list, true}, model.Easy},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ResolveRange(c.edit))
		})
	}
}

func TestRangeEditRegenerates(t *testing.T) {
	r, s := newReducer(t, 3)
	s.ChordIndex = 1
	level := model.Hardest

	s = reduce(t, r, s, model.Action{Type: model.SetDifficultyMin, Payload: &model.Payload{DifficultyMin: &level}})

	assert := assert.New(t)
	assert.Equal(model.Hardest, s.DifficultyMin)
	assert.Equal(model.Hardest, s.DifficultyMax)
	assert.Equal(0, s.ChordIndex)
	assert.Len(s.Chords, 2)
	assert.ElementsMatch(chord.ExtensionsAt(model.Hardest), s.ExtensionsShuffled.Candidates())
	for _, c := range s.Chords {
		assert.Contains(chord.ExtensionsAt(model.Hardest), c.Extension)
	}
}

func TestRangeInvariantUnderRandomEdits(t *testing.T) {
	r, s := newReducer(t, 17)
	pick := rand.New(rand.NewSource(99))

	for i := 0; i < 300; i++ {
		var a model.Action
		switch pick.Intn(4) {
		case 0:
			v := chord.DifficultyLevels[pick.Intn(len(chord.DifficultyLevels))]
			a = model.Action{Type: model.SetDifficultyMin, Payload: &model.Payload{DifficultyMin: &v}}
		case 1:
			v := chord.DifficultyLevels[pick.Intn(len(chord.DifficultyLevels))]
			a = model.Action{Type: model.SetDifficultyMax, Payload: &model.Payload{DifficultyMax: &v}}
		case 2:
			v := chord.AccidentalLevels[pick.Intn(len(chord.AccidentalLevels))]
			a = model.Action{Type: model.SetAccidentalsMin, Payload: &model.Payload{AccidentalsMin: &v}}
		case 3:
			v := chord.AccidentalLevels[pick.Intn(len(chord.AccidentalLevels))]
			a = model.Action{Type: model.SetAccidentalsMax, Payload: &model.Payload{AccidentalsMax: &v}}
		}
		s = reduce(t, r, s, a)

		assert.LessOrEqual(t, chord.IndexOf(chord.DifficultyLevels, s.DifficultyMin), chord.IndexOf(chord.DifficultyLevels, s.DifficultyMax))
		assert.LessOrEqual(t, chord.IndexOf(chord.AccidentalLevels, s.AccidentalsMin), chord.IndexOf(chord.AccidentalLevels, s.AccidentalsMax))
		assert.Len(t, s.Chords, 2)
	}
}

func TestBagsStayConservedWhilePlaying(t *testing.T) {
	r, s := newReducer(t, 21)
	for i := 0; i < 60; i++ {
		s = reduce(t, r, s, model.Action{Type: model.AppendChordList})

		ext := s.ExtensionsShuffled
		assert.Len(t, append(ext.Fresh(), ext.Used()...), ext.Len())
		for _, b := range []struct{ fresh, used, all []model.Key }{
			{s.MajorsShuffled.Fresh(), s.MajorsShuffled.Used(), s.MajorsShuffled.Candidates()},
			{s.MinorsShuffled.Fresh(), s.MinorsShuffled.Used(), s.MinorsShuffled.Candidates()},
		} {
			got := append(b.fresh, b.used...)
			assert.ElementsMatch(t, sortKeys(b.all), sortKeys(got))
		}
	}
	assert.Len(t, s.Chords, 62)
	assert.Equal(t, 60, s.ChordIndex)
}

func sortKeys(keys []model.Key) []model.Key {
	res := append([]model.Key{}, keys...)
	sort.Slice(res, func(i, j int) bool { return res[i].String() < res[j].String() })
	return res
}

func TestChordIndexIsClamped(t *testing.T) {
	r, s := newReducer(t, 1)

	s = reduce(t, r, s, model.Action{Type: model.DecrementChordIndex})
	assert.Equal(t, 0, s.ChordIndex)

	for i := 0; i < 5; i++ {
		s = reduce(t, r, s, model.Action{Type: model.IncrementChordIndex})
	}
	assert.Equal(t, len(s.Chords)-1, s.ChordIndex)

	s = reduce(t, r, s, model.Action{Type: model.DecrementChordIndex})
	assert.Equal(t, len(s.Chords)-2, s.ChordIndex)
}

func TestSwitchKeyLockCopiesKey(t *testing.T) {
	r, s := newReducer(t, 1)
	maj7 := model.Extension{Segments: []string{"maj7"}}
	s.Chords = []model.Chord{
		{Key: keyOf(t, "C"), Extension: maj7},
		{Key: keyOf(t, "D"), Extension: maj7.Clone()},
	}
	s.ChordIndex = 0
	s.KeyLocked = false

	next := reduce(t, r, s, model.Action{Type: model.SwitchKeyLock})

	assert := assert.New(t)
	assert.True(next.KeyLocked)
	assert.Equal(next.Chords[0].Key, next.Chords[1].Key)
	assert.Equal(notes.GetNotes(keyOf(t, "C"), maj7), next.Chords[1].Notes)
	assert.Equal(keyOf(t, "D"), s.Chords[1].Key, "input state must not change")

	next = reduce(t, r, next, model.Action{Type: model.SwitchKeyLock})
	assert.False(next.KeyLocked)
}

func TestSwitchKeyLockRespellsForQuality(t *testing.T) {
	r, s := newReducer(t, 1)
	s.Chords = []model.Chord{
		{Key: keyOf(t, "D#"), Extension: model.Extension{IsMinor: true, Segments: []string{}}},
		{Key: keyOf(t, "G"), Extension: model.Extension{IsMinor: false, Segments: []string{"7"}}},
	}

	next := reduce(t, r, s, model.Action{Type: model.SwitchKeyLock})
	assert.Equal(t, keyOf(t, "Eb"), next.Chords[1].Key)
}

func TestSwitchExtensionLockUsesVisibleWindow(t *testing.T) {
	r, s := newReducer(t, 4)
	for i := 0; i < 3; i++ {
		s = reduce(t, r, s, model.Action{Type: model.AppendChordList})
	}
	s = reduce(t, r, s, model.Action{Type: model.DecrementChordIndex})
	visible := s.VisibleChords()
	require.Len(t, visible, 2)

	next := reduce(t, r, s, model.Action{Type: model.SwitchExtensionLock})

	assert := assert.New(t)
	assert.True(next.ExtensionLocked)
	assert.Equal(0, next.ChordIndex)
	assert.Len(next.Chords, 2)
	assert.Equal(visible[0], next.Chords[0])
	assert.Equal(visible[0].Extension, next.Chords[1].Extension)
	assert.True(chord.KeyExists(next.Chords[1].Key, next.Chords[1].Extension.IsMinor))
}

func TestLockWithoutPairOnlyFlipsFlag(t *testing.T) {
	r, s := newReducer(t, 1)
	s.Chords = s.Chords[:1]
	s.ChordIndex = 0

	next := reduce(t, r, s, model.Action{Type: model.SwitchKeyLock})

	assert := assert.New(t)
	assert.True(next.KeyLocked)
	assert.Equal(s.Chords, next.Chords)
	assert.Equal(s.ChordIndex, next.ChordIndex)
}

func TestLockedAppendKeepsKey(t *testing.T) {
	r, s := newReducer(t, 8)
	s = reduce(t, r, s, model.Action{Type: model.SwitchKeyLock})
	for i := 0; i < 10; i++ {
		s = reduce(t, r, s, model.Action{Type: model.AppendChordList})
	}
	for i := 1; i < len(s.Chords); i++ {
		assert.Equal(t, notes.PitchClass(s.Chords[0].Key), notes.PitchClass(s.Chords[i].Key))
	}
}

func TestSetNotationKeyFlipsQuality(t *testing.T) {
	r, s := newReducer(t, 1)
	d := keyOf(t, "D#")

	s = reduce(t, r, s, model.Action{Type: model.SetNotationKey, Payload: &model.Payload{NotationKey: &d}})

	assert := assert.New(t)
	assert.Equal(d, s.NotationKey)
	assert.True(s.NotationExtension.IsMinor)
	assert.Empty(s.NotationExtension.Segments)
}

func TestSetNotationExtensionRespellsKey(t *testing.T) {
	r, s := newReducer(t, 1)
	db := keyOf(t, "Db")
	s = reduce(t, r, s, model.Action{Type: model.SetNotationKey, Payload: &model.Payload{NotationKey: &db}})
	require.Equal(t, db, s.NotationKey)

	m7 := model.Extension{IsMinor: true, Segments: []string{"7"}}
	s = reduce(t, r, s, model.Action{Type: model.SetNotationExtension, Payload: &model.Payload{NotationExtension: &m7}})

	assert := assert.New(t)
	assert.Equal(keyOf(t, "C#"), s.NotationKey)
	assert.Equal(m7, s.NotationExtension)
}

func TestNotationConsistencyUnderRandomEdits(t *testing.T) {
	r, s := newReducer(t, 1)
	pick := rand.New(rand.NewSource(5))
	keys := chord.AllKeys()
	exts := chord.CandidateExtensions(model.Easy, model.Hardest)

	for i := 0; i < 500; i++ {
		var a model.Action
		if pick.Intn(2) == 0 {
			k := keys[pick.Intn(len(keys))]
			a = model.Action{Type: model.SetNotationKey, Payload: &model.Payload{NotationKey: &k}}
		} else {
			e := exts[pick.Intn(len(exts))]
			a = model.Action{Type: model.SetNotationExtension, Payload: &model.Payload{NotationExtension: &e}}
		}
		s = reduce(t, r, s, a)
		assert.True(t, chord.KeyExists(s.NotationKey, s.NotationExtension.IsMinor), "%v %v", s.NotationKey, s.NotationExtension)
	}
}

func TestResetSettings(t *testing.T) {
	r, s := newReducer(t, 1)
	level := model.Hardest
	s = reduce(t, r, s, model.Action{Type: model.SetDifficultyMax, Payload: &model.Payload{DifficultyMax: &level}})
	s = reduce(t, r, s, model.Action{Type: model.SetMuted, Payload: &model.Payload{IsMuted: boolPtr(true)}})

	s = reduce(t, r, s, model.Action{Type: model.ResetSettings})

	assert := assert.New(t)
	assert.Equal(model.Medium, s.DifficultyMax)
	assert.False(s.IsMuted)
	assert.Len(s.Chords, 2)
}

func TestSameSeedSameChords(t *testing.T) {
	_, a := newReducer(t, 77)
	_, b := newReducer(t, 77)
	assert.Equal(t, a.Chords, b.Chords)
}
