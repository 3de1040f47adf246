package model

type ActionType string

const (
	// settings
	SetBPC            ActionType = "SET_BPC"
	SetBPM            ActionType = "SET_BPM"
	SetMuted          ActionType = "SET_MUTED"
	SetDifficultyMin  ActionType = "SET_DIFFICULTY_MIN"
	SetDifficultyMax  ActionType = "SET_DIFFICULTY_MAX"
	SetAccidentalsMin ActionType = "SET_ACCIDENTALS_MIN"
	SetAccidentalsMax ActionType = "SET_ACCIDENTALS_MAX"
	ResetSettings     ActionType = "RESET_SETTINGS"

	// player
	SetBeat                 ActionType = "SET_BEAT"
	IncrementBeat           ActionType = "INCREMENT_BEAT"
	AppendChordList         ActionType = "APPEND_CHORD_LIST"
	IncrementChordIndex     ActionType = "INCREMENT_CHORD_INDEX"
	DecrementChordIndex     ActionType = "DECREMENT_CHORD_INDEX"
	SwitchKeyLock           ActionType = "SWITCH_KEY_LOCK"
	SwitchExtensionLock     ActionType = "SWITCH_EXTENSION_LOCK"
	ToggleShowRandomTopNote ActionType = "TOGGLE_SHOW_RANDOM_TOP_NOTE"

	// notation
	SetNotationKey       ActionType = "SET_NOTATION_KEY"
	SetNotationExtension ActionType = "SET_NOTATION_EXTENSION"
)

// Action is what the UI sends to the reducer. Which Payload field must be set
// depends on Type.
type Action struct {
	Type    ActionType `json:"type"`
	Payload *Payload   `json:"payload,omitempty"`
}

type Payload struct {
	BeatsPerChord     *string          `json:"beatsPerChord,omitempty"`
	BeatsPerMinute    *string          `json:"beatsPerMinute,omitempty"`
	IsMuted           *bool            `json:"isMuted,omitempty"`
	DifficultyMin     *DifficultyLevel `json:"difficultyMin,omitempty"`
	DifficultyMax     *DifficultyLevel `json:"difficultyMax,omitempty"`
	AccidentalsMin    *AccidentalLevel `json:"accidentalsMin,omitempty"`
	AccidentalsMax    *AccidentalLevel `json:"accidentalsMax,omitempty"`
	Beat              *int             `json:"beat,omitempty"`
	NotationKey       *Key             `json:"notationKey,omitempty"`
	NotationExtension *Extension       `json:"notationExtension,omitempty"`
}
