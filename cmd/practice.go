package cmd

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jsphweid/chordtrainer/constants"
	"github.com/jsphweid/chordtrainer/logging"
	"github.com/jsphweid/chordtrainer/metronome"
	"github.com/jsphweid/chordtrainer/midi"
	"github.com/jsphweid/chordtrainer/player"
	"github.com/jsphweid/chordtrainer/tui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	practiceRanges ranges
	midiOut        string
	midiIn         string
	logFile        string
)

func init() {
	practiceRanges.addFlags(practiceCmd)
	practiceCmd.Flags().StringVar(&midiOut, "midi-out", constants.GetMidiOutPort(), "output port for the click (name substring)")
	practiceCmd.Flags().StringVar(&midiIn, "midi-in", constants.GetMidiInPort(), "input port whose notes or sustain pedal advance (name substring)")
	practiceCmd.Flags().StringVar(&logFile, "log-file", "", "write logs here while the screen is in use")
	rootCmd.AddCommand(practiceCmd)
}

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice in the terminal",
	Long:  `Shows the current and next chord, advancing with the metronome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var out io.Writer = io.Discard
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return errors.Wrap(err, "opening log file")
			}
			defer f.Close()
			out = f
		}
		log := logging.NewLogger(out, out, false)
		log.SetLevel(logging.ParseLevel(logLevel))
		logging.SetGlobalLogger(log)

		p, err := newPlayer()
		if err != nil {
			return err
		}
		if err := practiceRanges.apply(p); err != nil {
			return err
		}
		return practice(cmd.Context(), p, log)
	},
}

func practice(ctx context.Context, p *player.Player, log logging.Logger) error {
	defer gomidi.CloseDriver()

	var clicker *midi.Clicker
	if midiOut != "" {
		c, err := midi.OpenClicker(midiOut, constants.ClickDuration, log)
		if err != nil {
			return err
		}
		clicker = c
	}

	if midiIn != "" {
		stop, err := midi.ListenPedal(midiIn, func() {
			if err := p.Next(); err != nil {
				log.Error(err, "pedal advance")
			}
		}, constants.PedalDebounce, log)
		if err != nil {
			return err
		}
		defer stop()
	}

	metro := metronome.New(p.BeatPeriod(), func() {
		if _, err := p.Tick(); err != nil {
			log.Error(err, "tick")
		}
		if clicker != nil {
			clicker.Click(p.State().IsMuted)
		}
	}, log)

	t := newTransport(ctx, metro, log)
	_, err := tea.NewProgram(tui.NewModel(p, t), tea.WithAltScreen()).Run()
	t.stop()
	return err
}

// transport runs the metronome in the background between Toggle calls.
type transport struct {
	mu     sync.Mutex
	ctx    context.Context
	metro  *metronome.Metronome
	cancel context.CancelFunc
	log    logging.Logger
}

func newTransport(ctx context.Context, metro *metronome.Metronome, log logging.Logger) *transport {
	if ctx == nil {
		ctx = context.Background()
	}
	return &transport{ctx: ctx, metro: metro, log: log}
}

func (t *transport) Toggle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
		return false
	}
	ctx, cancel := context.WithCancel(t.ctx)
	t.cancel = cancel
	go func() {
		if err := t.metro.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			t.log.Error(err, "metronome stopped")
		}
	}()
	return true
}

func (t *transport) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

func (t *transport) SetPeriod(d time.Duration) {
	t.metro.SetPeriod(d)
}

func (t *transport) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
