package chord

import (
	"github.com/jsphweid/chordtrainer/bag"
	"github.com/jsphweid/chordtrainer/model"
)

const staffLetters = "CDEFGAB"

// RandomTopNote picks a staff position inside r whose letter is a chord tone.
// Staff index 0 is C1, 7 is C2 and so on. Returns nil when no position in r
// fits.
func RandomTopNote(notes model.Notes, r model.IndexRange, rng bag.Rand) *model.TopNote {
	byLetter := make(map[byte]string)
	for _, n := range notes {
		if len(n) > 0 {
			if _, ok := byLetter[n[0]]; !ok {
				byLetter[n[0]] = n
			}
		}
	}

	var candidates []int
	for i := r.Min; i <= r.Max; i++ {
		if i < 0 {
			continue
		}
		if _, ok := byLetter[staffLetters[i%7]]; ok {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	idx := candidates[rng.Intn(len(candidates))]
	return &model.TopNote{
		Name:       byLetter[staffLetters[idx%7]],
		Octave:     idx/7 + 1,
		StaffIndex: idx,
	}
}
