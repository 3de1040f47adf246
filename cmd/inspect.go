package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/chordtrainer/chord"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/notes"
	"github.com/spf13/cobra"
)

var inspectRanges ranges

func init() {
	inspectRanges.addFlags(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspects the level tables",
	Long:  `Prints the key and extension tables and the candidates a range would draw from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inspect(os.Stdout, inspectRanges)
		return nil
	},
}

func inspect(w io.Writer, r ranges) {
	fmt.Fprintf(w, "keys by accidentals:\n")
	for _, level := range chord.AccidentalLevels {
		fmt.Fprintf(w, "  %v: major %v  minor %v\n", level,
			chord.KeysAt(level, model.Major), chord.KeysAt(level, model.Minor))
	}

	fmt.Fprintf(w, "extensions by difficulty:\n")
	for _, level := range chord.DifficultyLevels {
		fmt.Fprintf(w, "  %v:", level)
		for _, ext := range chord.ExtensionsAt(level) {
			fmt.Fprintf(w, " %v", ext)
		}
		fmt.Fprintf(w, "\n")
	}

	dMin, dMax := model.DifficultyLevel(r.difficultyMin), model.DifficultyLevel(r.difficultyMax)
	aMin, aMax := model.AccidentalLevel(r.accidentalsMin), model.AccidentalLevel(r.accidentalsMax)
	fmt.Fprintf(w, "candidates for %v..%v, %v..%v accidentals:\n", dMin, dMax, aMin, aMax)
	fmt.Fprintf(w, "  majors: %v\n", chord.CandidateKeys(aMin, aMax, model.Major))
	fmt.Fprintf(w, "  minors: %v\n", chord.CandidateKeys(aMin, aMax, model.Minor))
	for _, ext := range chord.CandidateExtensions(dMin, dMax) {
		fmt.Fprintf(w, "  %-8v C%v: %v\n", ext, ext, notes.GetNotes(model.Key{Base: model.C}, ext))
	}
}
