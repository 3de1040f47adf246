package midi

import (
	"strings"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/chordtrainer/logging"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// PedalHandler returns a MIDI receive function that calls advance once any
// burst of note starts or sustain presses has been quiet for wait.
func PedalHandler(advance func(), wait time.Duration) func(msg gomidi.Message, timestampms int32) {
	debounced := debounce.New(wait)
	return func(msg gomidi.Message, timestampms int32) {
		var ch, key, vel, controller, value uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			debounced(advance)
		case msg.GetControlChange(&ch, &controller, &value):
			// sustain pedal down
			if controller == 64 && value >= 64 {
				debounced(advance)
			}
		}
	}
}

// ListenPedal opens the first input port whose name contains portName and
// advances on every press. Call stop to close the listener.
func ListenPedal(portName string, advance func(), wait time.Duration, log logging.Logger) (stop func(), err error) {
	var in drivers.In
	for _, port := range gomidi.GetInPorts() {
		if strings.Contains(port.String(), portName) {
			in = port
			break
		}
	}
	if in == nil {
		return nil, errors.Wrapf(ErrPortNotFound, "input %q", portName)
	}

	stop, err = gomidi.ListenTo(in, PedalHandler(advance, wait))
	if err != nil {
		return nil, errors.Wrapf(err, "listening to %s", in.String())
	}
	log.Info("pedal input", logging.Fields{"port": in.String()})
	return stop, nil
}
