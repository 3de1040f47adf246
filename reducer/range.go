package reducer

import (
	"github.com/jsphweid/chordtrainer/chord"
)

// RangeEdit describes an edit to one bound of a min/max pair. Inverse is false
// when the minimum moved and true when the maximum moved.
type RangeEdit[T comparable] struct {
	PayloadValue      T
	CurrentBoundValue T
	List              []T
	Inverse           bool
}

// ResolveRange returns the new value of the other bound. It stays put while
// the edit keeps min <= max, otherwise it is pushed along to the edited value.
func ResolveRange[T comparable](e RangeEdit[T]) T {
	greater := chord.IndexOf(e.List, e.PayloadValue) > chord.IndexOf(e.List, e.CurrentBoundValue)
	if e.Inverse != greater {
		return e.PayloadValue
	}
	return e.CurrentBoundValue
}
