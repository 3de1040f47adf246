package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

// StateResponse is ProgramState plus the chords currently on screen.
type StateResponse struct {
	ProgramState
	Visible []Chord `json:"visible"`
}

type NotationResponse struct {
	Key       Key       `json:"key"`
	Extension Extension `json:"extension"`
	Notes     Notes     `json:"notes"`
}

type LevelsResponse struct {
	DifficultyLevels     []DifficultyLevel `json:"difficultyLevels"`
	AccidentalLevels     []AccidentalLevel `json:"accidentalLevels"`
	Keys                 []Key             `json:"keys"`
	BeatsPerChordOptions []string          `json:"beatsPerChordOptions"`
	MinBPM               int               `json:"minBpm"`
	MaxBPM               int               `json:"maxBpm"`
}

type TickResponse struct {
	Advanced bool `json:"advanced"`
	StateResponse
}
