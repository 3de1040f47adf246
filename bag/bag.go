// Package bag implements a draw-without-replacement sampler over an immutable
// candidate list. Bags are values: Draw never mutates the receiver and returns
// the successor bag instead.
package bag

import (
	"github.com/pkg/errors"
)

var ErrEmptyCandidateSet = errors.New("bag: empty candidate set")

// Rand is the random source a bag draws from. *rand.Rand from
// golang.org/x/exp/rand and math/rand both satisfy it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Bag holds indexes into candidates split into two disjoint sets. fresh and
// used together always cover every candidate exactly once.
type Bag[T any] struct {
	candidates []T
	fresh      []int
	used       []int
	last       int
	hasLast    bool
}

// New places every candidate in fresh, shuffled, with nothing used.
func New[T any](candidates []T, rng Rand) Bag[T] {
	c := make([]T, len(candidates))
	copy(c, candidates)

	fresh := make([]int, len(c))
	for i := range fresh {
		fresh[i] = i
	}
	rng.Shuffle(len(fresh), func(i, j int) {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	})

	return Bag[T]{candidates: c, fresh: fresh, used: []int{}}
}

// Draw removes a random element from fresh and moves it to used. When fresh is
// empty the cycle restarts: everything but the last drawn candidate goes back
// into fresh so the same value never comes out twice in a row.
func (b Bag[T]) Draw(rng Rand) (T, Bag[T], error) {
	var zero T
	if len(b.candidates) == 0 {
		return zero, b, ErrEmptyCandidateSet
	}

	fresh := append([]int{}, b.fresh...)
	used := append([]int{}, b.used...)

	if len(fresh) == 0 {
		fresh, used = refill(len(b.candidates), b.last, b.hasLast)
		rng.Shuffle(len(fresh), func(i, j int) {
			fresh[i], fresh[j] = fresh[j], fresh[i]
		})
	}

	pick := rng.Intn(len(fresh))
	idx := fresh[pick]
	fresh = append(fresh[:pick], fresh[pick+1:]...)
	used = append(used, idx)

	next := Bag[T]{
		candidates: b.candidates,
		fresh:      fresh,
		used:       used,
		last:       idx,
		hasLast:    true,
	}
	return b.candidates[idx], next, nil
}

func refill(n, last int, hasLast bool) (fresh, used []int) {
	used = []int{}
	for i := 0; i < n; i++ {
		if hasLast && n > 1 && i == last {
			used = append(used, i)
			continue
		}
		fresh = append(fresh, i)
	}
	return fresh, used
}

func (b Bag[T]) Candidates() []T {
	return append([]T{}, b.candidates...)
}

func (b Bag[T]) Fresh() []T {
	return b.lookup(b.fresh)
}

func (b Bag[T]) Used() []T {
	return b.lookup(b.used)
}

// Last returns the most recently drawn value, if any.
func (b Bag[T]) Last() (T, bool) {
	var zero T
	if !b.hasLast {
		return zero, false
	}
	return b.candidates[b.last], true
}

func (b Bag[T]) Len() int {
	return len(b.candidates)
}

func (b Bag[T]) lookup(idxs []int) []T {
	res := make([]T, 0, len(idxs))
	for _, i := range idxs {
		res = append(res, b.candidates[i])
	}
	return res
}
