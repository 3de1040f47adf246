package cmd

import (
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/player"
	"github.com/spf13/cobra"
)

type ranges struct {
	difficultyMin  string
	difficultyMax  string
	accidentalsMin string
	accidentalsMax string
}

func (r *ranges) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.difficultyMin, "difficulty-min", string(model.Easy), "easiest extensions to draw")
	cmd.Flags().StringVar(&r.difficultyMax, "difficulty-max", string(model.Medium), "hardest extensions to draw")
	cmd.Flags().StringVar(&r.accidentalsMin, "accidentals-min", "0", "fewest accidentals in a drawn key")
	cmd.Flags().StringVar(&r.accidentalsMax, "accidentals-max", "7", "most accidentals in a drawn key")
}

// apply dispatches the ranges to p. When min and max cross, min wins.
func (r ranges) apply(p *player.Player) error {
	dMin, dMax := model.DifficultyLevel(r.difficultyMin), model.DifficultyLevel(r.difficultyMax)
	aMin, aMax := model.AccidentalLevel(r.accidentalsMin), model.AccidentalLevel(r.accidentalsMax)
	actions := []model.Action{
		{Type: model.SetDifficultyMax, Payload: &model.Payload{DifficultyMax: &dMax}},
		{Type: model.SetDifficultyMin, Payload: &model.Payload{DifficultyMin: &dMin}},
		{Type: model.SetAccidentalsMax, Payload: &model.Payload{AccidentalsMax: &aMax}},
		{Type: model.SetAccidentalsMin, Payload: &model.Payload{AccidentalsMin: &aMin}},
	}
	for _, a := range actions {
		if err := p.Dispatch(a); err != nil {
			return err
		}
	}
	return nil
}
