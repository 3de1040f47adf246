package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/chordtrainer/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Pitcher turns a chord into MIDI note numbers; notes.Pitches fits.
type Pitcher func(model.Key, model.Extension) []uint8

const exportChannel = 0
const exportVelocity = 100

// WriteChords writes a single track file with one block chord every
// beatsPerChord quarter notes at the given tempo.
func WriteChords(w io.Writer, chords []model.Chord, pitches Pitcher, bpm float64, beatsPerChord int) error {
	if beatsPerChord <= 0 {
		return errors.Errorf("beats per chord must be positive, got %d", beatsPerChord)
	}
	ticks := smf.MetricTicks(960)
	s := smf.New()
	s.TimeFormat = ticks

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("chords"))
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(bpm))

	length := ticks.Ticks4th() * uint32(beatsPerChord)
	for _, c := range chords {
		keys := pitches(c.Key, c.Extension)
		if len(keys) == 0 {
			continue
		}
		for _, k := range keys {
			tr.Add(0, gomidi.NoteOn(exportChannel, k, exportVelocity))
		}
		for i, k := range keys {
			var delta uint32
			if i == 0 {
				delta = length
			}
			tr.Add(delta, gomidi.NoteOff(exportChannel, k))
		}
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return errors.Wrap(err, "adding track")
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing smf")
	}
	return nil
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &smf.SMF{}, errors.Wrap(err, "reading midi file")
	}
	return ReadMidi(bytes.NewReader(dat))
}

func ReadMidi(r io.Reader) (s *smf.SMF, e error) {
	// smf can panic on broken files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s = &smf.SMF{}
			e = errors.New(fmt.Sprint(rec))
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return &smf.SMF{}, errors.Wrap(err, "parsing midi file")
	}
	return res, nil
}

// ChordPitches groups note-ons that start on the same tick, in time order.
// It is the inverse of WriteChords, used to check exports.
func ChordPitches(s *smf.SMF) [][]uint8 {
	byTick := make(map[int64][]uint8)
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			if event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
				byTick[absTicks] = append(byTick[absTicks], key)
			}
		}
	}

	ticks := make([]int64, 0, len(byTick))
	for t := range byTick {
		ticks = append(ticks, t)
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i] < ticks[j] })

	res := make([][]uint8, 0, len(ticks))
	for _, t := range ticks {
		notes := byTick[t]
		sort.Slice(notes, func(i, j int) bool { return notes[i] < notes[j] })
		res = append(res, notes)
	}
	return res
}
