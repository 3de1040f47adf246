package reducer

import (
	"github.com/jsphweid/chordtrainer/chord"
	"github.com/jsphweid/chordtrainer/model"
)

// A new key is kept as given. If it is not a key of the current quality the
// extension flips quality and falls back to a bare triad.
func resolveNotationKey(key model.Key, ext model.Extension) (model.Key, model.Extension) {
	if chord.KeyExists(key, ext.IsMinor) {
		return key, ext
	}
	return key, model.Extension{IsMinor: !ext.IsMinor, Segments: []string{}}
}

// A new extension is kept as given. If the current key does not exist in the
// new quality it is re-spelled instead.
func resolveNotationExtension(key model.Key, ext model.Extension) (model.Key, model.Extension) {
	if chord.KeyExists(key, ext.IsMinor) {
		return key, ext
	}
	return chord.ChangeEnharmonically(key), ext
}
