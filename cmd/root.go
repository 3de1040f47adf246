package cmd

import (
	"github.com/jsphweid/chordtrainer/constants"
	"github.com/jsphweid/chordtrainer/logging"
	"github.com/jsphweid/chordtrainer/player"
	"github.com/jsphweid/chordtrainer/reducer"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	seed     uint64
)

var rootCmd = &cobra.Command{
	Use:   "chordtrainer",
	Short: "Chord reading practice",
	Long: `Shows an endless stream of randomly drawn chord symbols, two at a time,
advancing with a metronome. Keys and extensions are limited to the chosen
accidental and difficulty ranges.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetGlobalLogger(logging.NewDefaultLogger())
		logging.GetGlobalLogger().SetLevel(logging.ParseLevel(logLevel))
		if !cmd.Flags().Changed("seed") {
			seed = constants.GetSeed()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "debug, info, warn or error")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (default from CHORDS_SEED or the clock)")
}

func newPlayer() (*player.Player, error) {
	log := logging.GetGlobalLogger()
	log.Debug("new session", logging.Fields{"seed": seed})
	return player.New(reducer.New(reducer.WithSeed(seed)), log)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
