package midi

import (
	"strings"
	"time"

	"github.com/jsphweid/chordtrainer/logging"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// GM percussion side stick on channel 10
const clickChannel = 9
const clickNote = 37
const clickVelocity = 100

var ErrPortNotFound = errors.New("midi port not found")

// Clicker sounds one short note per metronome beat.
type Clicker struct {
	send     func(gomidi.Message) error
	duration time.Duration
	log      logging.Logger
}

func NewClicker(send func(gomidi.Message) error, duration time.Duration, log logging.Logger) *Clicker {
	return &Clicker{
		send:     send,
		duration: duration,
		log:      log.WithFields(logging.Fields{"component": "click"}),
	}
}

// OpenClicker opens the first output port whose name contains portName.
func OpenClicker(portName string, duration time.Duration, log logging.Logger) (*Clicker, error) {
	out, err := findOutPort(portName)
	if err != nil {
		return nil, err
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", out.String())
	}
	log.Info("click output", logging.Fields{"port": out.String()})
	return NewClicker(send, duration, log), nil
}

func findOutPort(portName string) (drivers.Out, error) {
	for _, port := range gomidi.GetOutPorts() {
		if strings.Contains(port.String(), portName) {
			return port, nil
		}
	}
	return nil, errors.Wrapf(ErrPortNotFound, "output %q", portName)
}

// Click sends note on now and note off after the click duration. Nothing is
// sent while muted.
func (c *Clicker) Click(muted bool) {
	if muted {
		return
	}
	if err := c.send(gomidi.NoteOn(clickChannel, clickNote, clickVelocity)); err != nil {
		c.log.Error(err, "click note on")
		return
	}
	time.AfterFunc(c.duration, func() {
		if err := c.send(gomidi.NoteOff(clickChannel, clickNote)); err != nil {
			c.log.Error(err, "click note off")
		}
	})
}
