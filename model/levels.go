package model

type DifficultyLevel string

const (
	Easy    DifficultyLevel = "easy"
	Medium  DifficultyLevel = "medium"
	Hard    DifficultyLevel = "hard"
	Harder  DifficultyLevel = "harder"
	Hardest DifficultyLevel = "hardest"
)

// AccidentalLevel is the number of accidentals in a key signature, "0".."7".
type AccidentalLevel string

// BeatsPerChordInfinite means the player never advances on its own.
const BeatsPerChordInfinite = "∞"
