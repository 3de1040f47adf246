package cmd

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/jsphweid/chordtrainer/constants"
	"github.com/jsphweid/chordtrainer/logging"
	"github.com/jsphweid/chordtrainer/midi"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/notes"
	"github.com/jsphweid/chordtrainer/player"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	exportCount int
	exportPath  string
)

func init() {
	exportCmd.Flags().IntVarP(&exportCount, "count", "n", 16, "number of chords")
	exportCmd.Flags().StringVarP(&exportPath, "out", "o", "", "output file (default EXPORT_DIR/<uuid>.mid)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Writes generated chords to a MIDI file",
	Long:  `Draws chords with the default settings and writes them as block chords to a standard MIDI file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPlayer()
		if err != nil {
			return err
		}
		path := exportPath
		if path == "" {
			path = filepath.Join(constants.GetExportDir(), uuid.New().String()+".mid")
		}
		if err := Export(p, exportCount, path); err != nil {
			return err
		}
		logging.Info("exported", logging.Fields{"path": path, "chords": exportCount})
		return nil
	},
}

// Export advances p until it holds at least count chords and writes the first
// count of them to path.
func Export(p *player.Player, count int, path string) error {
	if count <= 0 {
		return errors.Errorf("count must be positive, got %d", count)
	}
	for len(p.State().Chords) < count {
		if err := p.Next(); err != nil {
			return errors.Wrap(err, "drawing chords")
		}
	}

	s := p.State()
	bpm, bpc, err := exportTiming(s)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating export dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	defer f.Close()

	return midi.WriteChords(f, s.Chords[:count], notes.Pitches, bpm, bpc)
}

// exportTiming reads tempo and chord length from the state. An endless chord
// is written as one bar.
func exportTiming(s model.ProgramState) (float64, int, error) {
	bpm, err := strconv.Atoi(s.BeatsPerMinute)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "bad tempo %q", s.BeatsPerMinute)
	}
	if s.BeatsPerChord == model.BeatsPerChordInfinite {
		return float64(bpm), 4, nil
	}
	bpc, err := strconv.Atoi(s.BeatsPerChord)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "bad beats per chord %q", s.BeatsPerChord)
	}
	return float64(bpm), bpc, nil
}
