package chord

import (
	"github.com/jsphweid/chordtrainer/model"
	"github.com/pkg/errors"
)

var ErrInvalidKey = errors.New("invalid key")

var bases = []model.Letter{model.C, model.D, model.E, model.F, model.G, model.A, model.B}

// ValidKey rejects unknown letters and the spellings that are never used as
// keys: Fb, E# and B#.
func ValidKey(k model.Key) bool {
	if IndexOf(bases, k.Base) < 0 {
		return false
	}
	switch k.Accidental {
	case model.Natural:
		return true
	case model.Flat:
		return k.Base != model.F
	case model.Sharp:
		return k.Base != model.E && k.Base != model.B
	}
	return false
}

// AllKeys lists every selectable key, flat before natural before sharp for
// each letter.
func AllKeys() []model.Key {
	var res []model.Key
	for _, base := range bases {
		for _, acc := range []model.Accidental{model.Flat, model.Natural, model.Sharp} {
			k := model.Key{Base: base, Accidental: acc}
			if ValidKey(k) {
				res = append(res, k)
			}
		}
	}
	return res
}

func ParseKey(s string) (model.Key, error) {
	if len(s) == 0 || len(s) > 2 {
		return model.Key{}, errors.Wrapf(ErrInvalidKey, "%q", s)
	}
	k := model.Key{Base: model.Letter(s[:1])}
	if len(s) == 2 {
		k.Accidental = model.Accidental(s[1:])
	}
	if !ValidKey(k) {
		return model.Key{}, errors.Wrapf(ErrInvalidKey, "%q", s)
	}
	return k, nil
}

var enharmonics = map[model.Key]model.Key{}

func init() {
	pairs := [][2]string{
		{"C#", "Db"},
		{"D#", "Eb"},
		{"F#", "Gb"},
		{"G#", "Ab"},
		{"A#", "Bb"},
		{"B", "Cb"},
	}
	for _, p := range pairs {
		a, _ := ParseKey(p[0])
		b, _ := ParseKey(p[1])
		enharmonics[a] = b
		enharmonics[b] = a
	}
}

// ChangeEnharmonically returns the other spelling of the same pitch. Keys
// whose only alternative would be Fb, E# or B# come back unchanged.
func ChangeEnharmonically(k model.Key) model.Key {
	if alt, ok := enharmonics[k]; ok {
		return alt
	}
	return k
}
