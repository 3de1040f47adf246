// Package metronome calls a function once per beat until its context ends.
package metronome

import (
	"context"
	"sync"
	"time"

	"github.com/jsphweid/chordtrainer/logging"
)

type Metronome struct {
	mu       sync.Mutex
	period   time.Duration
	callback func()
	log      logging.Logger

	// signal a running loop to pick up a new period
	periodChan chan struct{}
}

func New(period time.Duration, callback func(), log logging.Logger) *Metronome {
	return &Metronome{
		period:     period,
		callback:   callback,
		log:        log.WithFields(logging.Fields{"component": "metronome"}),
		periodChan: make(chan struct{}, 1),
	}
}

func (m *Metronome) Period() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.period
}

// SetPeriod changes the interval. A running loop restarts its ticker so the
// next beat lands one new period from now.
func (m *Metronome) SetPeriod(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	if m.period == d {
		m.mu.Unlock()
		return
	}
	m.period = d
	m.mu.Unlock()

	select {
	case m.periodChan <- struct{}{}:
	default:
	}
}

// Run blocks, calling the callback on every tick, until ctx is done.
func (m *Metronome) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.Period())
	defer ticker.Stop()
	m.log.Debug("started", logging.Fields{"period": m.Period()})

	for {
		select {
		case <-ctx.Done():
			m.log.Debug("stopped")
			return ctx.Err()
		case <-m.periodChan:
			d := m.Period()
			ticker.Reset(d)
			m.log.Debug("period changed", logging.Fields{"period": d})
		case <-ticker.C:
			m.callback()
		}
	}
}
