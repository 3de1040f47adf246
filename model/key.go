package model

type Letter string

const (
	C Letter = "C"
	D Letter = "D"
	E Letter = "E"
	F Letter = "F"
	G Letter = "G"
	A Letter = "A"
	B Letter = "B"
)

type Accidental string

const (
	Natural Accidental = ""
	Flat    Accidental = "b"
	Sharp   Accidental = "#"
)

// Key is a chord root or tonal center. The zero Accidental is natural.
type Key struct {
	Base       Letter     `json:"base"`
	Accidental Accidental `json:"accidental,omitempty"`
}

// String renders the key the way it is written in a chord symbol, e.g. "Db".
func (k Key) String() string {
	return string(k.Base) + string(k.Accidental)
}

type MajorOrMinor string

const (
	Major MajorOrMinor = "major"
	Minor MajorOrMinor = "minor"
)

func QualityOf(isMinor bool) MajorOrMinor {
	if isMinor {
		return Minor
	}
	return Major
}
