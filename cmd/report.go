package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/chordtrainer/player"
	"github.com/jsphweid/chordtrainer/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	reportCount  int
	reportRanges ranges
)

func init() {
	reportCmd.Flags().IntVarP(&reportCount, "count", "n", 1000, "number of chords to draw")
	reportRanges.addFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report",
	Long:  `Draws many chords and reports how often each key and extension came up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPlayer()
		if err != nil {
			return err
		}
		if err := reportRanges.apply(p); err != nil {
			return err
		}
		r, err := analyzeDraws(p, reportCount)
		if err != nil {
			return err
		}
		r.print(os.Stdout)
		return nil
	},
}

type drawReport struct {
	numChords       int
	keyCounts       map[string]int
	extensionCounts map[string]int
	// same chord symbol twice in a row
	repeats int
}

func analyzeDraws(p *player.Player, n int) (drawReport, error) {
	report := drawReport{
		keyCounts:       make(map[string]int),
		extensionCounts: make(map[string]int),
	}
	if n <= 0 {
		return report, errors.Errorf("count must be positive, got %d", n)
	}
	for len(p.State().Chords) < n {
		if err := p.Next(); err != nil {
			return report, errors.Wrap(err, "drawing chords")
		}
	}

	chords := p.State().Chords[:n]
	for i, c := range chords {
		quality := "major"
		if c.Extension.IsMinor {
			quality = "minor"
		}
		report.keyCounts[c.Key.String()+" "+quality] += 1
		report.extensionCounts[c.Extension.String()] += 1
		if i > 0 && chords[i-1].Symbol() == c.Symbol() {
			report.repeats += 1
		}
	}
	report.numChords = n
	return report, nil
}

func spread(counts map[string]int) (int, int) {
	lo, hi := -1, 0
	for _, v := range counts {
		hi = util.Max(hi, v)
		if lo < 0 {
			lo = v
		}
		lo = util.Min(lo, v)
	}
	return util.Max(lo, 0), hi
}

func (r drawReport) print(w io.Writer) {
	fmt.Fprintf(w, "numChords: %v\n", r.numChords)
	fmt.Fprintf(w, "repeats: %v\n", r.repeats)

	fmt.Fprintf(w, "keys:\n")
	for _, k := range util.GetKeysSorted(r.keyCounts) {
		fmt.Fprintf(w, "  %-10v %v\n", k, r.keyCounts[k])
	}
	lo, hi := spread(r.keyCounts)
	fmt.Fprintf(w, "key spread (min/max): %v/%v\n", lo, hi)

	fmt.Fprintf(w, "extensions:\n")
	for _, k := range util.GetKeysSorted(r.extensionCounts) {
		fmt.Fprintf(w, "  %-10v %v\n", k, r.extensionCounts[k])
	}
	lo, hi = spread(r.extensionCounts)
	fmt.Fprintf(w, "extension spread (min/max): %v/%v\n", lo, hi)
}
