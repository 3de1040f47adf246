// Package player owns the trainer state for one session and turns metronome
// beats and transport buttons into reducer actions.
package player

import (
	"strconv"
	"sync"
	"time"

	"github.com/jsphweid/chordtrainer/constants"
	"github.com/jsphweid/chordtrainer/logging"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/reducer"
	"github.com/jsphweid/chordtrainer/util"
	"github.com/pkg/errors"
)

type Player struct {
	mu      sync.Mutex
	reducer *reducer.Reducer
	state   model.ProgramState
	log     logging.Logger

	// Notify listeners (TUI, tests) that the state changed
	updates chan struct{}
}

func New(r *reducer.Reducer, log logging.Logger) (*Player, error) {
	s, err := r.InitialState()
	if err != nil {
		return nil, errors.Wrap(err, "initial state")
	}
	return &Player{
		reducer: r,
		state:   s,
		log:     log.WithFields(logging.Fields{"component": "player"}),
		updates: make(chan struct{}, 1),
	}, nil
}

// State returns a snapshot. The reducer never mutates a state it was given,
// so the snapshot stays valid after later dispatches.
func (p *Player) State() model.ProgramState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) Updates() <-chan struct{} {
	return p.updates
}

func (p *Player) Dispatch(a model.Action) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.dispatch(a); err != nil {
		return err
	}
	p.notify()
	return nil
}

func (p *Player) dispatch(a model.Action) error {
	next, err := p.reducer.Reduce(p.state, a)
	if err != nil {
		p.log.Debug("action rejected", logging.Fields{"type": a.Type, "error": err.Error()})
		return err
	}
	p.state = next
	p.log.Debug("action", logging.Fields{"type": a.Type, "chordIndex": next.ChordIndex, "beat": next.Beat})
	return nil
}

func (p *Player) notify() {
	select {
	case p.updates <- struct{}{}:
	default:
	}
}

// Tick handles one metronome beat. Every beatsPerChord beats the player moves
// to the next chord and the count restarts at 1. With beatsPerChord set to ∞
// nothing happens. advanced reports whether the chord changed.
func (p *Player) Tick() (advanced bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.state
	if s.BeatsPerChord == model.BeatsPerChordInfinite {
		return false, nil
	}
	bpc, err := strconv.Atoi(s.BeatsPerChord)
	if err != nil || bpc <= 0 {
		return false, errors.Errorf("bad beats per chord %q", s.BeatsPerChord)
	}

	if s.Beat != 0 && s.Beat%bpc == 0 {
		if err := p.next(); err != nil {
			return false, err
		}
		one := 1
		if err := p.dispatch(model.Action{Type: model.SetBeat, Payload: &model.Payload{Beat: &one}}); err != nil {
			return false, err
		}
		advanced = true
	} else if err := p.dispatch(model.Action{Type: model.IncrementBeat}); err != nil {
		return false, err
	}

	p.notify()
	return advanced, nil
}

// Next moves to the following chord, drawing a new one when the visible pair
// would run off the end of the list.
func (p *Player) Next() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.next(); err != nil {
		return err
	}
	p.notify()
	return nil
}

func (p *Player) next() error {
	if p.state.ChordIndex >= len(p.state.Chords)-2 {
		// appending also advances the index
		return p.dispatch(model.Action{Type: model.AppendChordList})
	}
	return p.dispatch(model.Action{Type: model.IncrementChordIndex})
}

func (p *Player) Previous() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.ChordIndex <= 0 {
		return nil
	}
	if err := p.dispatch(model.Action{Type: model.DecrementChordIndex}); err != nil {
		return err
	}
	p.notify()
	return nil
}

// ChangeTempo adds delta to the current tempo, clamped to the metronome's
// range.
func (p *Player) ChangeTempo(delta int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	bpm, err := strconv.Atoi(p.state.BeatsPerMinute)
	if err != nil {
		return errors.Wrapf(err, "bad tempo %q", p.state.BeatsPerMinute)
	}
	next := strconv.Itoa(util.Clamp(bpm+delta, constants.MinBPM, constants.MaxBPM))
	if err := p.dispatch(model.Action{Type: model.SetBPM, Payload: &model.Payload{BeatsPerMinute: &next}}); err != nil {
		return err
	}
	p.notify()
	return nil
}

// BeatPeriod is the metronome interval for the current tempo.
func (p *Player) BeatPeriod() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return BeatPeriod(p.state.BeatsPerMinute)
}

func BeatPeriod(bpm string) time.Duration {
	n, err := strconv.Atoi(bpm)
	if err != nil || n <= 0 {
		n = constants.MinBPM
	}
	return time.Minute / time.Duration(n)
}
