package model

import "strings"

type Notes = []string

// Extension is a chord quality plus the tokens layered on top of the triad,
// e.g. {IsMinor: false, Segments: ["7", "b9"]}.
type Extension struct {
	IsMinor  bool     `json:"isMinor"`
	Segments []string `json:"segments"`
}

func (e Extension) String() string {
	var res string
	if e.IsMinor {
		res = "m"
	}
	return res + strings.Join(e.Segments, "")
}

func (e Extension) Equal(o Extension) bool {
	if e.IsMinor != o.IsMinor || len(e.Segments) != len(o.Segments) {
		return false
	}
	for i := range e.Segments {
		if e.Segments[i] != o.Segments[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing array with e.
func (e Extension) Clone() Extension {
	segments := make([]string, len(e.Segments))
	copy(segments, e.Segments)
	return Extension{IsMinor: e.IsMinor, Segments: segments}
}

type Chord struct {
	Key       Key       `json:"key"`
	Extension Extension `json:"extension"`
	Notes     Notes     `json:"notes"`

	// NOTE: always computed, only shown when ShowRandomTopNote is set
	TopNote *TopNote `json:"topNote,omitempty"`
}

// Symbol is the printed chord symbol, e.g. "Ebm7".
func (c Chord) Symbol() string {
	return c.Key.String() + c.Extension.String()
}

type TopNote struct {
	Name       string `json:"name"`
	Octave     int    `json:"octave"`
	StaffIndex int    `json:"staffIndex"`
}

type IndexRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}
