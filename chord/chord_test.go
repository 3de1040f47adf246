package chord

import (
	"fmt"
	"testing"

	"github.com/jsphweid/chordtrainer/bag"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustKey(t *testing.T, s string) model.Key {
	k, err := ParseKey(s)
	require.NoError(t, err)
	return k
}

func stateWithBags(rng bag.Rand, mutate func(*model.ProgramState)) model.ProgramState {
	s := model.ProgramState{
		DifficultyMin:           model.Easy,
		DifficultyMax:           model.Medium,
		AccidentalsMin:          "0",
		AccidentalsMax:          "7",
		RandomTopNoteIndexRange: model.IndexRange{Min: 7, Max: 14},
	}
	if mutate != nil {
		mutate(&s)
	}
	keys := GenerateKeysShuffled(s, rng)
	s.MajorsShuffled = keys.Majors
	s.MinorsShuffled = keys.Minors
	s.ExtensionsShuffled = GenerateExtensionsShuffled(s, rng)
	return s
}

func TestAllKeys(t *testing.T) {
	keys := AllKeys()

	assert := assert.New(t)
	assert.Len(keys, 18)
	for _, bad := range []model.Key{
		{Base: model.F, Accidental: model.Flat},
		{Base: model.E, Accidental: model.Sharp},
		{Base: model.B, Accidental: model.Sharp},
	} {
		assert.NotContains(keys, bad)
		assert.False(ValidKey(bad))
	}
}

func TestParseKey(t *testing.T) {
	assert := assert.New(t)

	k, err := ParseKey("Db")
	assert.NoError(err)
	assert.Equal(model.Key{Base: model.D, Accidental: model.Flat}, k)

	for _, s := range []string{"", "Fb", "E#", "B#", "H", "Cbb", "c"} {
		_, err := ParseKey(s)
		assert.ErrorIs(err, ErrInvalidKey, s)
	}
}

func TestEveryKeyExistsSomewhere(t *testing.T) {
	for _, k := range AllKeys() {
		assert.True(t, KeyExists(k, false) || KeyExists(k, true), k.String())
	}
}

func TestKeyExists(t *testing.T) {
	assert := assert.New(t)
	assert.True(KeyExists(mustKey(t, "Db"), false))
	assert.False(KeyExists(mustKey(t, "Db"), true))
	assert.True(KeyExists(mustKey(t, "D#"), true))
	assert.False(KeyExists(mustKey(t, "D#"), false))
	assert.True(KeyExists(mustKey(t, "C"), true))
}

func TestEnharmonicInvolution(t *testing.T) {
	for _, k := range AllKeys() {
		t.Run(k.String(), func(t *testing.T) {
			alt := ChangeEnharmonically(k)
			assert.True(t, ValidKey(alt))
			assert.Equal(t, k, ChangeEnharmonically(alt))
		})
	}
}

func TestEnharmonicPairs(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(mustKey(t, "Db"), ChangeEnharmonically(mustKey(t, "C#")))
	assert.Equal(mustKey(t, "Cb"), ChangeEnharmonically(mustKey(t, "B")))
	assert.Equal(mustKey(t, "E"), ChangeEnharmonically(mustKey(t, "E")))
}

func TestRespellingAlwaysRepairs(t *testing.T) {
	for _, k := range AllKeys() {
		for _, isMinor := range []bool{false, true} {
			name := fmt.Sprintf("%v minor=%v", k, isMinor)
			assert.True(t, KeyExists(LockedKey(k, isMinor), isMinor), name)
		}
	}
}

func TestIndexOf(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, IndexOf(DifficultyLevels, model.Easy))
	assert.Equal(4, IndexOf(DifficultyLevels, model.Hardest))
	assert.Equal(7, IndexOf(AccidentalLevels, model.AccidentalLevel("7")))
	assert.Equal(-1, IndexOf(AccidentalLevels, model.AccidentalLevel("8")))
}

func TestCandidateExtensions(t *testing.T) {
	assert := assert.New(t)
	assert.Len(CandidateExtensions(model.Easy, model.Easy), 5)
	assert.Len(CandidateExtensions(model.Easy, model.Medium), 12)
	assert.Empty(CandidateExtensions(model.Hard, model.Easy))

	for _, level := range DifficultyLevels {
		assert.NotEmpty(ExtensionsAt(level), level)
		for _, e := range ExtensionsAt(level) {
			for _, seg := range e.Segments {
				assert.True(notes.KnownSegment(seg), seg)
			}
		}
	}
}

func TestCandidateKeys(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]model.Key{mustKey(t, "C")}, CandidateKeys("0", "0", model.Major))
	assert.Equal([]model.Key{mustKey(t, "A")}, CandidateKeys("0", "0", model.Minor))
	assert.Len(CandidateKeys("0", "7", model.Major), 15)
	assert.Len(CandidateKeys("0", "7", model.Minor), 15)
	assert.Equal([]model.Key{mustKey(t, "C#"), mustKey(t, "Cb")}, CandidateKeys("7", "7", model.Major))
}

func TestGenerateChordsDrawsFromCandidates(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s := stateWithBags(rng, func(s *model.ProgramState) {
		s.AccidentalsMin = "2"
		s.AccidentalsMax = "3"
	})

	g, err := GenerateChords(GenerateOptions{Number: 30, State: s, Notes: notes.GetNotes}, rng)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(g.Chords, 30)
	exts := CandidateExtensions(model.Easy, model.Medium)
	for _, c := range g.Chords {
		level, ok := AccidentalLevelOf(c.Key, c.Extension.IsMinor)
		assert.True(ok, c.Symbol())
		assert.Contains([]model.AccidentalLevel{"2", "3"}, level)
		assert.Contains(exts, c.Extension)
		assert.Equal(notes.GetNotes(c.Key, c.Extension), c.Notes)
	}
}

func TestGenerateChordsAppend(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	s := stateWithBags(rng, nil)
	g, err := GenerateChords(GenerateOptions{Number: 2, State: s}, rng)
	require.NoError(t, err)

	s.Chords = g.Chords
	s.MajorsShuffled, s.MinorsShuffled, s.ExtensionsShuffled = g.MajorsShuffled, g.MinorsShuffled, g.ExtensionsShuffled

	appended, err := GenerateChords(GenerateOptions{Number: 1, State: s, Append: true}, rng)
	require.NoError(t, err)
	replaced, err := GenerateChords(GenerateOptions{Number: 1, State: s}, rng)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(appended.Chords, 3)
	assert.Equal(s.Chords, appended.Chords[:2])
	assert.Len(replaced.Chords, 1)
	assert.Len(s.Chords, 2)
}

func TestGenerateChordsHonorsLocks(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := stateWithBags(rng, func(s *model.ProgramState) {
		s.KeyLocked = true
	})

	g, err := GenerateChords(GenerateOptions{Number: 10, State: s}, rng)
	require.NoError(t, err)
	for i := 1; i < len(g.Chords); i++ {
		prev, cur := g.Chords[i-1], g.Chords[i]
		assert.Equal(t, notes.PitchClass(prev.Key), notes.PitchClass(cur.Key))
		assert.True(t, KeyExists(cur.Key, cur.Extension.IsMinor))
	}

	s.KeyLocked = false
	s.ExtensionLocked = true
	g, err = GenerateChords(GenerateOptions{Number: 10, State: s}, rng)
	require.NoError(t, err)
	for i := 1; i < len(g.Chords); i++ {
		assert.Equal(t, g.Chords[0].Extension, g.Chords[i].Extension)
	}
}

func TestGenerateChordsEmptyCandidates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := stateWithBags(rng, func(s *model.ProgramState) {
		s.DifficultyMin = model.Hardest
		s.DifficultyMax = model.Easy
	})

	_, err := GenerateChords(GenerateOptions{Number: 1, State: s}, rng)
	assert.ErrorIs(t, err, bag.ErrEmptyCandidateSet)
}

func TestRandomTopNote(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	chordNotes := model.Notes{"Eb", "G", "Bb"}
	r := model.IndexRange{Min: 7, Max: 14}

	for i := 0; i < 50; i++ {
		top := RandomTopNote(chordNotes, r, rng)
		require.NotNil(t, top)
		assert.Contains(t, chordNotes, top.Name)
		assert.GreaterOrEqual(t, top.StaffIndex, r.Min)
		assert.LessOrEqual(t, top.StaffIndex, r.Max)
		assert.Equal(t, top.Name[0], staffLetters[top.StaffIndex%7])
		assert.Equal(t, 2, top.Octave)
	}

	assert.Nil(t, RandomTopNote(model.Notes{"D"}, model.IndexRange{Min: 7, Max: 7}, rng))
}
